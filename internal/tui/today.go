package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/onething/internal/store"
	"github.com/verte-zerg/onething/internal/streak"
)

const (
	defaultLookback  = 7
	defaultThreshold = 2
)

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Commit):
		m.commit()
		return m, nil
	case msg.Type == tea.KeyEsc:
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateToday(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Ship):
		m.ship()
	case key.Matches(msg, keys.NotToday):
		m.notToday()
	case key.Matches(msg, keys.Commit):
		if !m.hasEntry {
			return m, m.input.Focus()
		}
	}
	return m, nil
}

func (m *Model) commit() {
	task := m.input.Value()
	if _, err := m.store.CommitTask(m.todayKey, task, m.now()); err != nil {
		m.setError(err)
		return
	}
	m.input.Reset()
	m.refresh()
	m.setStatus("Committed. Go ship it.")
}

func (m *Model) ship() {
	if !m.hasEntry {
		m.setError(fmt.Errorf("commit a task first: %w", store.ErrNoEntry))
		return
	}
	if m.entry.Shipped {
		m.setStatus("Already shipped today.")
		return
	}
	if _, err := m.store.MarkShipped(m.todayKey); err != nil {
		if errors.Is(err, store.ErrNoEntry) {
			m.refresh()
		}
		m.setError(err)
		return
	}
	m.skipped = false
	m.refresh()
	m.setStatus("Shipped. See you tomorrow.")
}

func (m *Model) notToday() {
	if _, ok := m.store.NotToday(m.todayKey); !ok {
		m.setError(fmt.Errorf("nothing committed today: %w", store.ErrNoEntry))
		return
	}
	if m.entry.Shipped {
		m.setStatus("Already shipped today.")
		return
	}
	m.skipped = true
	m.setStatus("Not today. Tomorrow is another day.")
}

func (m *Model) viewToday() string {
	var b strings.Builder
	now := m.now()
	greeting := "Today"
	if name := strings.TrimSpace(m.data.User.Name); name != "" {
		greeting = "Hi " + name
	}
	b.WriteString(titleStyle.Render(greeting))
	b.WriteString(mutedStyle.Render("  " + m.todayKey + "  " + m.data.User.DayStart + "–" + m.data.User.DayEnd))
	b.WriteString("\n\n")

	switch {
	case !m.hasEntry:
		b.WriteString("What is the one thing you will ship today?\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case m.entry.Shipped:
		b.WriteString(taskStyle.Render(m.entry.Task))
		b.WriteString("\n\n")
		b.WriteString(shippedStyle.Render("✓ shipped"))
		b.WriteString("\n")
	default:
		b.WriteString(taskStyle.Render(m.entry.Task))
		if m.entry.StartedAt > 0 {
			started := m.entry.Started(now.Location())
			b.WriteString(mutedStyle.Render("  committed " + started.Format("15:04")))
		}
		b.WriteString("\n\n")
		if m.skipped {
			b.WriteString(mutedStyle.Render("Not today."))
		} else {
			b.WriteString(mutedStyle.Render("s: shipped   n: not today"))
		}
		b.WriteString("\n")
	}

	missed, err := streak.MissedDayCount(m.data, now, m.lookback)
	if err == nil && streak.ShouldRemind(missed, m.threshold) {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("%d days without shipping. Pick something small.", missed)))
		b.WriteString("\n")
	}

	if len(m.views) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			mutedStyle.Render("Current streak: "),
			shippedStyle.Render(fmt.Sprintf("%d", m.summary.CurrentStreak)),
		))
	}
	return b.String()
}
