package tui

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/onething/internal/model"
	"github.com/verte-zerg/onething/internal/streak"
)

const (
	minChartWidth = 20
	chartHeight   = 8
	chartBarWidth = 2
	defaultWidth  = 80
)

func (m *Model) updateGraph(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.PrevWindow):
		if m.windowIdx > 0 {
			m.windowIdx--
			m.refresh()
		}
	case key.Matches(msg, keys.NextWindow):
		if m.windowIdx < len(m.windows)-1 {
			m.windowIdx++
			m.refresh()
		}
	}
	return m, nil
}

func (m *Model) contentWidth() int {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	// panel border and padding
	return width - 10
}

// buildChart redraws the streak bar chart for the trailing days that fit.
func (m *Model) buildChart() {
	chartWidth := m.contentWidth()
	if chartWidth < minChartWidth {
		chartWidth = minChartWidth
	}
	m.chart = barchart.New(chartWidth, chartHeight)

	views := m.views
	if fit := chartWidth / chartBarWidth; len(views) > fit {
		views = views[len(views)-fit:]
	}
	bars := make([]barchart.BarData, 0, len(views))
	for _, v := range views {
		style := lipgloss.NewStyle().Foreground(colorSubtle)
		if v.State == model.StateShipped {
			style = lipgloss.NewStyle().Foreground(colorShipped)
		}
		bars = append(bars, barchart.BarData{
			Values: []barchart.BarValue{{
				Name:  v.Date,
				Value: float64(v.Streak),
				Style: style,
			}},
		})
	}
	if len(bars) == 0 {
		return
	}
	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m *Model) viewGraph() string {
	var b strings.Builder
	windowNames := make([]string, 0, len(m.windows))
	for i, name := range m.windows {
		if i == m.windowIdx {
			windowNames = append(windowNames, taskStyle.Render(name))
		} else {
			windowNames = append(windowNames, mutedStyle.Render(name))
		}
	}
	b.WriteString(titleStyle.Render("Streaks"))
	b.WriteString("  ")
	b.WriteString(strings.Join(windowNames, mutedStyle.Render(" · ")))
	b.WriteString("\n\n")

	if len(m.views) == 0 {
		b.WriteString(mutedStyle.Render("No days to show."))
		return b.String()
	}

	var grid bytes.Buffer
	if err := streak.RenderGrid(&grid, m.views, streak.GridColumnsFor(m.contentWidth()), false); err == nil {
		b.WriteString(colorGrid(grid.String()))
	}
	b.WriteString("\n")
	b.WriteString(m.chart.View())
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(streak.Sparkline(m.views)))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Current %s  Best %s  Shipped %d  Not shipped %d  No entry %d",
		shippedStyle.Render(strconv.Itoa(m.summary.CurrentStreak)),
		shippedStyle.Render(strconv.Itoa(m.summary.BestStreak)),
		m.summary.Shipped, m.summary.NotShipped, m.summary.Empty,
	))
	return b.String()
}

// colorGrid restyles the plain grid glyphs with the TUI palette.
func colorGrid(plain string) string {
	return strings.NewReplacer(
		"●", shippedStyle.Render("●"),
		"○", errorStyle.Render("○"),
		"·", mutedStyle.Render("·"),
	).Replace(plain)
}
