package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/verte-zerg/onething/internal/model"
	"github.com/verte-zerg/onething/internal/store"
)

func (m *Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Edit) {
		return m, m.openForm()
	}
	return m, nil
}

func (m *Model) openForm() tea.Cmd {
	user := m.data.User
	*m.name = user.Name
	*m.dayStart = user.DayStart
	*m.dayEnd = user.DayEnd

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(m.name),
			huh.NewInput().Title("Day starts (HH:MM)").Value(m.dayStart).Validate(store.ValidateClock),
			huh.NewInput().Title("Day ends (HH:MM)").Value(m.dayEnd).Validate(store.ValidateClock),
		),
	).WithShowHelp(true).WithShowErrors(true)
	m.formActive = true
	return m.form.Init()
}

func (m *Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, keys.Back) {
			m.closeForm()
			m.setStatus("Profile unchanged.")
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.closeForm()
		m.saveProfile()
		return m, nil
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

func (m *Model) closeForm() {
	m.formActive = false
	m.form = nil
}

func (m *Model) saveProfile() {
	profile := model.UserProfile{
		Name:     strings.TrimSpace(*m.name),
		DayStart: strings.TrimSpace(*m.dayStart),
		DayEnd:   strings.TrimSpace(*m.dayEnd),
	}
	if err := store.ValidateProfile(profile); err != nil {
		m.setError(err)
		return
	}
	m.store.UpdateUser(profile)
	m.refresh()
	m.setStatus("Profile saved.")
}

func (m *Model) viewSettings() string {
	if m.formActive && m.form != nil {
		return titleStyle.Render("Edit profile") + "\n\n" + m.form.View()
	}
	user := m.data.User
	name := user.Name
	if name == "" {
		name = mutedStyle.Render("(not set)")
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Profile"))
	b.WriteString("\n\n")
	b.WriteString("Name       " + name + "\n")
	b.WriteString("Day starts " + user.DayStart + "\n")
	b.WriteString("Day ends   " + user.DayEnd + "\n")
	b.WriteString("Days kept  " + strconv.Itoa(len(m.data.Days)) + "\n\n")
	b.WriteString(mutedStyle.Render("e: edit profile"))
	return b.String()
}
