package historytui

import (
	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/clinkgo/internal/history"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width-2, msg.Height-4)
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case searchResultMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.list.SetItems(entriesToItems(msg.entries))
		return m, nil

	case tea.KeyMsg:
		if m.confirm {
			return m.handleConfirmKey(msg)
		}
		if m.searching {
			return m.handleSearchKey(msg)
		}
		return m.handleListKey(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if !m.confirm {
		return m, nil
	}
	switch {
	case m.zones.Get(zoneConfirmYes).InBounds(msg):
		return m.handleConfirmKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	case m.zones.Get(zoneConfirmNo).InBounds(msg):
		return m.handleConfirmKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	}
	return m, nil
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/":
		m.searching = true
		m.search.SetValue("")
		m.search.Focus()
		return m, nil
	case "d":
		if it, ok := m.list.SelectedItem().(entryItem); ok && !it.entry.Deleted {
			m.confirm = true
			m.pending = it.entry
		}
		return m, nil
	case "esc":
		m.statusMsg = ""
		return m, m.refresh()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		return m, m.refresh()
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, m.runSearch(m.search.Value())
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.confirm = false
		if err := m.db.Remove(m.pending.ID); err != nil {
			m.err = err
		} else {
			m.statusMsg = "deleted: " + m.pending.Text
		}
		m.pending = history.Entry{}
		return m, m.refresh()
	default:
		m.confirm = false
		m.pending = history.Entry{}
		return m, nil
	}
}

func (m *Model) runSearch(substr string) tea.Cmd {
	return func() tea.Msg {
		if substr == "" {
			entries, err := m.db.Iterate()
			return searchResultMsg{entries: reverseEntries(entries), err: err}
		}
		entries, err := m.db.Search(substr)
		return searchResultMsg{entries: entries, err: err}
	}
}

type searchResultMsg struct {
	entries []history.Entry
	err     error
}

