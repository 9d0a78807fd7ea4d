// Package historytui implements the operator-facing history browser behind
// "clinkgo history browse": a scrollable, searchable view of the merged
// history bank with delete support, using a bordered-box layout with
// dim/accent styling.
package historytui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/clinkgo/internal/history"
)

var (
	accentColor = lipgloss.Color("#7C3AED")
	dimColor    = lipgloss.Color("#6B7280")
	dangerColor = lipgloss.Color("#DC2626")

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor)

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	dimStyle    = lipgloss.NewStyle().Foreground(dimColor)
	dangerStyle = lipgloss.NewStyle().Bold(true).Foreground(dangerColor)

	statusHints = "/:search  d:delete  esc:cancel  q:quit"
)

// entryItem adapts a history.Entry to bubbles/list's DefaultItem contract.
type entryItem struct {
	entry history.Entry
}

func (i entryItem) Title() string {
	if i.entry.Deleted {
		return dimStyle.Render(i.entry.Text)
	}
	return i.entry.Text
}

func (i entryItem) Description() string {
	if i.entry.Timestamp != 0 {
		return dimStyle.Render(fmt.Sprintf("%s  id=%s", formatTimestamp(i.entry.Timestamp), i.entry.ID))
	}
	return dimStyle.Render(fmt.Sprintf("id=%s", i.entry.ID))
}

func (i entryItem) FilterValue() string { return i.entry.Text }

// Model is the bubbletea model driving the history browser.
type Model struct {
	db *history.DB

	list   list.Model
	search textinput.Model

	searching bool
	confirm   bool
	pending   history.Entry

	zones *zone.Manager

	width, height int
	statusMsg     string
	err           error
}

// New builds a history browser model over db. The caller owns db's
// lifetime — New reads from it immediately to populate the initial list
// but never closes it.
func New(db *history.DB) (*Model, error) {
	entries, err := db.Iterate()
	if err != nil {
		return nil, err
	}

	ti := textinput.New()
	ti.Placeholder = "search history..."
	ti.Prompt = "/ "
	ti.CharLimit = 256

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(accentColor).BorderLeftForeground(accentColor)

	l := list.New(entriesToItems(reverseEntries(entries)), delegate, 0, 0)
	l.Title = "clinkgo history"
	l.Styles.Title = titleStyle
	l.SetShowHelp(false)
	l.SetStatusBarItemName("entry", "entries")

	return &Model{
		db:     db,
		list:   l,
		search: ti,
		zones:  zone.New(),
	}, nil
}

// Run starts the bubbletea program for a history browser over db.
func Run(db *history.DB) error {
	m, err := New(db)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func entriesToItems(entries []history.Entry) []list.Item {
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, entryItem{entry: e})
	}
	return items
}

func formatTimestamp(unixSeconds int64) string {
	return time.Unix(unixSeconds, 0).Local().Format("2006-01-02 15:04:05")
}

// reverseEntries returns entries most-recent-first, matching how an
// interactive shell history search presents results.
func reverseEntries(entries []history.Entry) []history.Entry {
	out := make([]history.Entry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out
}

func (m *Model) refresh() tea.Cmd {
	entries, err := m.db.Iterate()
	if err != nil {
		m.err = err
		return nil
	}
	m.err = nil
	m.list.SetItems(entriesToItems(reverseEntries(entries)))
	return nil
}
