// Package tui provides the Bubble Tea daily-task interface.
package tui

import (
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/onething/internal/model"
	"github.com/verte-zerg/onething/internal/store"
	"github.com/verte-zerg/onething/internal/streak"
)

const (
	tabToday = iota
	tabGraph
	tabSettings
)

var tabNames = []string{"Today", "Graph", "Settings"}

// Model implements the Bubble Tea tracker UI.
type Model struct {
	store *store.Store
	now   func() time.Time

	width  int
	height int

	activeTab int
	help      help.Model
	status    string
	statusErr bool

	data     model.StorageData
	todayKey string
	entry    model.DayEntry
	hasEntry bool
	skipped  bool
	input    textinput.Model

	lookback  int
	threshold int

	windows   []string
	windowIdx int
	views     []model.DayView
	summary   model.Summary
	chart     barchart.Model

	form       *huh.Form
	formActive bool
	name       *string
	dayStart   *string
	dayEnd     *string
}

// NewModel constructs the tracker UI. now supplies the reference instant
// for every derived view; window selects the initial graph window.
func NewModel(st *store.Store, now func() time.Time, window string) *Model {
	if now == nil {
		now = time.Now
	}
	input := textinput.New()
	input.Placeholder = "one small thing for today"
	input.CharLimit = 140
	input.Prompt = "› "

	name, start, end := "", "", ""
	m := &Model{
		store:     st,
		now:       now,
		help:      help.New(),
		input:     input,
		windows:   streak.WindowNames(),
		lookback:  defaultLookback,
		threshold: defaultThreshold,
		name:      &name,
		dayStart:  &start,
		dayEnd:    &end,
	}
	for i, w := range m.windows {
		if w == window {
			m.windowIdx = i
		}
	}
	m.refresh()
	return m
}

// SetReminder overrides the missed-day lookback and reminder threshold.
func (m *Model) SetReminder(lookback, threshold int) {
	if lookback >= 0 {
		m.lookback = lookback
	}
	m.threshold = threshold
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.input.Focused() {
		return textinput.Blink
	}
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.buildChart()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch {
		case key.Matches(msg, keys.Tab):
			return m, m.switchTab(1)
		case key.Matches(msg, keys.PrevTab):
			return m, m.switchTab(-1)
		}
		if m.activeTab == tabToday && m.input.Focused() {
			return m.updateInput(msg)
		}
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		switch m.activeTab {
		case tabToday:
			return m.updateToday(msg)
		case tabGraph:
			return m.updateGraph(msg)
		case tabSettings:
			return m.updateSettings(msg)
		}
		return m, nil
	default:
		if m.input.Focused() {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	switch m.activeTab {
	case tabGraph:
		body = m.viewGraph()
	case tabSettings:
		body = m.viewSettings()
	default:
		body = m.viewToday()
	}
	if m.width > 4 {
		body = panelStyle.Width(m.width - 4).Render(body)
	} else {
		body = panelStyle.Render(body)
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderTabs(), body, m.renderFooter())
}

func (m *Model) switchTab(delta int) tea.Cmd {
	m.activeTab = (m.activeTab + delta + len(tabNames)) % len(tabNames)
	m.status = ""
	m.refresh()
	if m.activeTab == tabToday && !m.hasEntry {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

// refresh reloads state from the store and rebuilds every derived view.
func (m *Model) refresh() {
	now := m.now()
	m.data = m.store.Read()
	today := streak.TodayKey(now)
	if today != m.todayKey {
		m.skipped = false
	}
	m.todayKey = today
	m.entry, m.hasEntry = m.data.Days[today]

	views, err := streak.WindowDays(m.data, m.windowSize(), now)
	if err != nil {
		m.setError(err)
		views = nil
	}
	m.views = views
	m.summary = streak.Summarize(views)
	m.buildChart()

	if m.activeTab == tabToday && !m.hasEntry {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m *Model) windowSize() int {
	size, err := streak.ParseWindow(m.windows[m.windowIdx])
	if err != nil {
		return streak.WindowGrid
	}
	return size
}

func (m *Model) setStatus(text string) {
	m.status = text
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

func (m *Model) renderTabs() string {
	tabs := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		if i == m.activeTab {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

func (m *Model) renderFooter() string {
	line := m.help.View(keys)
	if m.status != "" {
		status := mutedStyle.Render(m.status)
		if m.statusErr {
			status = errorStyle.Render(m.status)
		}
		line = status + "  " + line
	}
	return footerStyle.Render(line)
}
