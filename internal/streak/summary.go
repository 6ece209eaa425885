package streak

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/verte-zerg/onething/internal/model"
)

// Named window sizes.
const (
	WindowWeek  = 7
	WindowMonth = 30
	WindowYear  = 365
	WindowGrid  = 42
)

var windowSizes = map[string]int{
	"week":  WindowWeek,
	"month": WindowMonth,
	"year":  WindowYear,
	"grid":  WindowGrid,
}

// ParseWindow resolves a window name to its size in days.
func ParseWindow(name string) (int, error) {
	size, ok := windowSizes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%q (available: %s): %w", name, strings.Join(WindowNames(), ", "), ErrInvalidWindow)
	}
	return size, nil
}

// WindowNames lists the known window names, shortest first.
func WindowNames() []string {
	names := make([]string, 0, len(windowSizes))
	for name := range windowSizes {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return windowSizes[names[i]] < windowSizes[names[j]]
	})
	return names
}

// Summarize aggregates a window of day views.
func Summarize(views []model.DayView) model.Summary {
	sum := model.Summary{Days: len(views)}
	for _, v := range views {
		switch v.State {
		case model.StateShipped:
			sum.Shipped++
		case model.StateNotShipped:
			sum.NotShipped++
		default:
			sum.Empty++
		}
		if v.Streak > sum.BestStreak {
			sum.BestStreak = v.Streak
		}
	}
	if len(views) > 0 {
		sum.CurrentStreak = views[len(views)-1].Streak
	}
	return sum
}

// RenderSummary prints a short summary block for a window.
func RenderSummary(w io.Writer, sum model.Summary) error {
	if sum.Days == 0 {
		_, err := fmt.Fprintln(w, "No days in window.")
		return err
	}
	lines := []string{
		fmt.Sprintf("Days: %d", sum.Days),
		fmt.Sprintf("Current streak: %d", sum.CurrentStreak),
		fmt.Sprintf("Best streak: %d", sum.BestStreak),
		fmt.Sprintf("Shipped: %d  Not shipped: %d  No entry: %d", sum.Shipped, sum.NotShipped, sum.Empty),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
