package historytui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/clinkgo/internal/history"
)

func openTestDB(t *testing.T) *history.DB {
	t.Helper()
	dir := t.TempDir()
	db, err := history.Open(filepath.Join(dir, "history"), history.Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	db := openTestDB(t)
	for _, line := range []string{"dir /w", "cd projects", "git status"} {
		if err := db.Add(line); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	m, err := New(db)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m.width, m.height = 80, 24
	m.list.SetSize(78, 20)
	return m
}

func TestNewListsMostRecentFirst(t *testing.T) {
	m := newTestModel(t)
	items := m.list.Items()
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	first := items[0].(entryItem)
	if first.entry.Text != "git status" {
		t.Errorf("first item = %q, want %q", first.entry.Text, "git status")
	}
}

func TestSlashEntersSearchMode(t *testing.T) {
	m := newTestModel(t)
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	m = model.(*Model)
	if !m.searching {
		t.Fatal("expected searching to be true after '/'")
	}
}

func TestDKeyOnSelectedEntryArmsConfirm(t *testing.T) {
	m := newTestModel(t)
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	m = model.(*Model)
	if !m.confirm {
		t.Fatal("expected confirm to be armed after 'd'")
	}
	if m.pending.Text != "git status" {
		t.Errorf("pending = %q, want %q", m.pending.Text, "git status")
	}
}

func TestConfirmYesRemovesEntry(t *testing.T) {
	m := newTestModel(t)
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	m = model.(*Model)
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	m = model.(*Model)
	if m.confirm {
		t.Fatal("expected confirm to be cleared")
	}

	entries, err := m.db.Iterate()
	if err != nil {
		t.Fatalf("Iterate: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d live entries after delete, want 2", len(entries))
	}
}

func TestConfirmNoLeavesEntryIntact(t *testing.T) {
	m := newTestModel(t)
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	m = model.(*Model)
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	m = model.(*Model)
	if m.confirm {
		t.Fatal("expected confirm to be cleared")
	}

	entries, err := m.db.Iterate()
	if err != nil {
		t.Fatalf("Iterate: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d live entries, want 3 (nothing deleted)", len(entries))
	}
}

func TestRunSearchFiltersByText(t *testing.T) {
	m := newTestModel(t)
	cmd := m.runSearch("git")
	msg := cmd()
	result, ok := msg.(searchResultMsg)
	if !ok {
		t.Fatalf("got %T, want searchResultMsg", msg)
	}
	if result.err != nil {
		t.Fatalf("search error: %v", result.err)
	}
	if len(result.entries) != 1 || result.entries[0].Text != "git status" {
		t.Errorf("entries = %+v", result.entries)
	}
}

func TestReverseEntries(t *testing.T) {
	in := []history.Entry{{Text: "a"}, {Text: "b"}, {Text: "c"}}
	out := reverseEntries(in)
	if out[0].Text != "c" || out[1].Text != "b" || out[2].Text != "a" {
		t.Errorf("reverseEntries = %+v", out)
	}
}
