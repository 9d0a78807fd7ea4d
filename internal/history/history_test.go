package history

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLineIDPacking(t *testing.T) {
	id := NewLineID(BankSession, 12345, true)
	if id.Bank() != BankSession {
		t.Errorf("Bank() = %v, want session", id.Bank())
	}
	if id.Offset() != 12345 {
		t.Errorf("Offset() = %d, want 12345", id.Offset())
	}
	if !id.Live() {
		t.Error("expected Live() true")
	}

	dead := id.WithLive(false)
	if dead.Live() {
		t.Error("WithLive(false) should clear the live bit")
	}
	if dead.Offset() != 12345 || dead.Bank() != BankSession {
		t.Error("WithLive must not disturb bank/offset")
	}
}

func TestLineIDClampsOversizedOffset(t *testing.T) {
	id := NewLineID(BankMaster, MaxOffset+1000, true)
	if id.Offset() != MaxOffset {
		t.Errorf("Offset() = %d, want clamped to %d", id.Offset(), MaxOffset)
	}
	if !id.Unrecoverable() {
		t.Error("an offset at the cap should be Unrecoverable")
	}
}

func TestNewTagIsUniqueAndRecognised(t *testing.T) {
	a, b := NewTag(), NewTag()
	if a == b {
		t.Error("two successive tags should differ")
	}
	if !IsTagLine(a) || !IsTagLine(b) {
		t.Error("NewTag output should satisfy IsTagLine")
	}
}

func openTestDB(t *testing.T, opts Options) (*DB, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "history")
	db, err := Open(path, opts)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, path
}

func TestAddAndIterateRoundTrip(t *testing.T) {
	db, _ := openTestDB(t, Options{})

	if err := db.Add("dir /w"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := db.Add("cd projects"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	entries, err := db.Iterate()
	if err != nil {
		t.Fatalf("Iterate: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(entries), entries)
	}
	if entries[0].Text != "dir /w" || entries[1].Text != "cd projects" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestDupeIgnoreDropsRepeat(t *testing.T) {
	db, _ := openTestDB(t, Options{DupeMode: DupeIgnore})

	db.Add("git status")
	db.Add("git status")

	entries, _ := db.Iterate()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1: %+v", len(entries), entries)
	}
}

func TestDupeErasePrevMovesEntryToEnd(t *testing.T) {
	db, _ := openTestDB(t, Options{DupeMode: DupeErasePrev})

	db.Add("foo")
	db.Add("bar")
	db.Add("foo")

	entries, _ := db.Iterate()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(entries), entries)
	}
	if entries[0].Text != "bar" || entries[1].Text != "foo" {
		t.Errorf("entries = %+v, want [bar foo]", entries)
	}
}

func TestIgnoreLeadingSpaceSuppressesAdd(t *testing.T) {
	db, _ := openTestDB(t, Options{IgnoreLeadingSpace: true})

	db.Add(" secret")
	db.Add("visible")

	entries, _ := db.Iterate()
	if len(entries) != 1 || entries[0].Text != "visible" {
		t.Errorf("entries = %+v, want only [visible]", entries)
	}
}

func TestRemoveSessionEntryHidesIt(t *testing.T) {
	db, _ := openTestDB(t, Options{})

	db.Add("one")
	db.Add("two")
	entries, _ := db.Iterate()

	if err := db.Remove(entries[0].ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	after, _ := db.Iterate()
	if len(after) != 1 || after[0].Text != "two" {
		t.Errorf("after remove = %+v, want only [two]", after)
	}
}

func TestRemoveMasterEntryDefersThroughRemovals(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history")

	// Seed the master bank directly so the removed entry starts out there.
	seed, err := OpenMaster(path)
	if err != nil {
		t.Fatalf("OpenMaster: %v", err)
	}
	seed.LockExclusive()
	seed.Append("old command")
	seed.Unlock()
	seed.Close()

	db, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	entries, _ := db.Iterate()
	if len(entries) != 1 || entries[0].Text != "old command" {
		t.Fatalf("seed entries = %+v", entries)
	}
	if entries[0].ID.Bank() != BankMaster {
		t.Fatalf("seeded entry should be in the master bank, got %v", entries[0].ID.Bank())
	}

	if err := db.Remove(entries[0].ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	after, _ := db.Iterate()
	if len(after) != 0 {
		t.Errorf("after remove = %+v, want empty", after)
	}
}

func TestReapMergesAbandonedSession(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history")

	master, err := OpenMaster(path)
	if err != nil {
		t.Fatalf("OpenMaster: %v", err)
	}
	masterTag := master.Tag()
	master.Close()

	linesPath := filepath.Join(dir, "history_ghost.session")
	removalsPath := filepath.Join(dir, "history_ghost.removals")
	if err := os.WriteFile(linesPath, []byte("ghost command\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(removalsPath, []byte(masterTag+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	// Deliberately no .alive file: this session looks abandoned.

	db, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(linesPath); !os.IsNotExist(err) {
		t.Error("abandoned session's lines file should have been removed by reap")
	}
	if _, err := os.Stat(removalsPath); !os.IsNotExist(err) {
		t.Error("abandoned session's removals file should have been removed by reap")
	}

	entries, err := db.Iterate()
	if err != nil {
		t.Fatalf("Iterate: %v", err)
	}
	if len(entries) != 1 || entries[0].Text != "ghost command" {
		t.Fatalf("entries = %+v, want merged [ghost command]", entries)
	}
	if entries[0].ID.Bank() != BankMaster {
		t.Errorf("reaped entry should now live in the master bank, got %v", entries[0].ID.Bank())
	}
}

func TestCompactDropsSoftDeletedEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history")

	master, err := OpenMaster(path)
	if err != nil {
		t.Fatalf("OpenMaster: %v", err)
	}
	master.LockExclusive()
	master.Append("keep me", "delete me", "also keep")
	master.Unlock()

	entries, _ := master.ReadEntries(nil)
	var deleteOffset int
	for _, e := range entries {
		if e.Text == "delete me" {
			deleteOffset = e.ID.Offset()
		}
	}
	master.LockExclusive()
	master.SoftDeleteAt(deleteOffset)
	master.Unlock()

	oldTag := master.Tag()
	if err := master.Compact(CompactOptions{SessionDir: dir}); err != nil {
		t.Fatalf("Compact: %v", err)
	}
	if master.Tag() == oldTag {
		t.Error("Compact should mint a fresh concurrency tag")
	}

	after, err := master.ReadEntries(nil)
	if err != nil {
		t.Fatalf("ReadEntries after compact: %v", err)
	}
	if len(after) != 2 {
		t.Fatalf("after compact = %+v, want 2 surviving entries", after)
	}
	if after[0].Text != "keep me" || after[1].Text != "also keep" {
		t.Errorf("after compact = %+v", after)
	}
	master.Close()
}

func TestCompactUniqueKeepsMostRecentOccurrence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history")
	master, _ := OpenMaster(path)
	master.LockExclusive()
	master.Append("foo", "bar", "foo")
	master.Unlock()

	if err := master.Compact(CompactOptions{SessionDir: dir, Unique: true}); err != nil {
		t.Fatalf("Compact: %v", err)
	}
	after, _ := master.ReadEntries(nil)
	if len(after) != 2 {
		t.Fatalf("after unique compact = %+v, want 2 entries", after)
	}
	if after[0].Text != "bar" || after[1].Text != "foo" {
		t.Errorf("after unique compact = %+v, want [bar foo] (last occurrence order preserved)", after)
	}
	master.Close()
}

func TestCompactRemapsMatchingRemovalsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history")
	master, _ := OpenMaster(path)
	master.LockExclusive()
	master.Append("a", "b", "c")
	master.Unlock()

	entries, _ := master.ReadEntries(nil)
	bOffset := entries[1].ID.Offset()
	oldTag := master.Tag()

	removalsPath := filepath.Join(dir, "history_sibling.removals")
	os.WriteFile(removalsPath, []byte(oldTag+"\n"+itoaTest(bOffset)+"\n"), 0644)

	if err := master.Compact(CompactOptions{SessionDir: dir}); err != nil {
		t.Fatalf("Compact: %v", err)
	}

	rewritten, err := os.ReadFile(removalsPath)
	if err != nil {
		t.Fatalf("read removals: %v", err)
	}
	lines := splitLines(rewritten)
	if len(lines) < 1 || lines[0] != master.Tag() {
		t.Errorf("removals header = %q, want new tag %q", lines, master.Tag())
	}
	master.Close()
}

func itoaTest(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func TestExpandBangBang(t *testing.T) {
	db, _ := openTestDB(t, Options{})
	db.Add("echo hi")

	got, status, err := db.Expand("!! again")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if status != ExpandExpanded {
		t.Errorf("status = %v, want ExpandExpanded", status)
	}
	if got != "echo hi again" {
		t.Errorf("got %q, want %q", got, "echo hi again")
	}
}

func TestExpandUnchangedWithNoBang(t *testing.T) {
	db, _ := openTestDB(t, Options{})
	got, status, err := db.Expand("plain text")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if status != ExpandUnchanged || got != "plain text" {
		t.Errorf("got (%q, %v), want (%q, ExpandUnchanged)", got, status, "plain text")
	}
}

func TestExpandPrefixDesignator(t *testing.T) {
	db, _ := openTestDB(t, Options{})
	db.Add("git status")
	db.Add("git commit -m x")
	db.Add("ls")

	got, status, err := db.Expand("!git")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if status != ExpandExpanded {
		t.Fatalf("status = %v", status)
	}
	if got != "git commit -m x" {
		t.Errorf("got %q, want the most recent git-prefixed entry", got)
	}
}
