package streak

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/onething/internal/model"
)

const (
	sparkChars          = " .:-=+*#%@"
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
	minGridColumns      = 7
	cellWidth           = 2
)

type cellStyle struct {
	glyph string
	color string
	label string
}

var cellStyles = map[model.DayState]cellStyle{
	model.StateShipped:    {glyph: "●", color: "\x1b[32m", label: "shipped"},
	model.StateNotShipped: {glyph: "○", color: "\x1b[31m", label: "not shipped"},
	model.StateNone:       {glyph: "·", color: "\x1b[90m", label: "no entry"},
}

// RenderGrid prints views as rows of cols cells followed by a legend.
// A non-positive cols fits the grid to the terminal width.
func RenderGrid(w io.Writer, views []model.DayView, cols int, useColor bool) error {
	if len(views) == 0 {
		_, err := fmt.Fprintln(w, "No days to show.")
		return err
	}
	if cols <= 0 {
		cols = GridColumnsFor(terminalWidth())
	}
	if _, err := fmt.Fprintf(w, "%s .. %s\n", views[0].Date, views[len(views)-1].Date); err != nil {
		return err
	}
	for start := 0; start < len(views); start += cols {
		end := start + cols
		if end > len(views) {
			end = len(views)
		}
		var row strings.Builder
		for i, v := range views[start:end] {
			if i > 0 {
				row.WriteByte(' ')
			}
			row.WriteString(renderCell(v.State, useColor))
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, renderLegend(useColor))
	return err
}

// GridColumnsFor returns the widest multiple of a week that fits totalWidth.
func GridColumnsFor(totalWidth int) int {
	cols := totalWidth / cellWidth
	cols -= cols % minGridColumns
	if cols < minGridColumns {
		return minGridColumns
	}
	return cols
}

func renderCell(state model.DayState, useColor bool) string {
	style := cellStyles[state]
	if !useColor {
		return style.glyph
	}
	return style.color + style.glyph + colorReset
}

func renderLegend(useColor bool) string {
	order := []model.DayState{model.StateShipped, model.StateNotShipped, model.StateNone}
	parts := make([]string, 0, len(order))
	for _, state := range order {
		parts = append(parts, renderCell(state, useColor)+" "+cellStyles[state].label)
	}
	return "Legend: " + strings.Join(parts, "  ")
}

// Sparkline renders the streak of each view as a single-line strip.
func Sparkline(views []model.DayView) string {
	if len(views) == 0 {
		return ""
	}
	maxVal := 0
	for _, v := range views {
		if v.Streak > maxVal {
			maxVal = v.Streak
		}
	}
	if maxVal == 0 {
		return strings.Repeat(string(sparkChars[0]), len(views))
	}
	var b strings.Builder
	for _, v := range views {
		pos := float64(v.Streak) / float64(maxVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// ShouldUseColor reports whether ANSI colors should be written to w.
func ShouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
