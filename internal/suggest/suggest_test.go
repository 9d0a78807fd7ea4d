package suggest

import "testing"

func TestUpdateOnlyWhenCursorAtEndNoSelection(t *testing.T) {
	src := HistorySource{Entries: func() []string { return []string{"git commit -m x"} }}
	e := New(src)

	if got := e.Update("git ", 2, 4, false); got != "" {
		t.Fatalf("cursor not at end: Update() = %q, want empty", got)
	}
	if got := e.Update("git ", 4, 4, true); got != "" {
		t.Fatalf("selection active: Update() = %q, want empty", got)
	}
	if got := e.Update("git ", 4, 4, false); got != "commit -m x" {
		t.Fatalf("Update() = %q, want %q", got, "commit -m x")
	}
}

func TestSuggestionShrinksAsUserTypesMatchingChars(t *testing.T) {
	src := HistorySource{Entries: func() []string { return []string{"git commit -m x"} }}
	e := New(src)
	e.Update("git ", 4, 4, false)

	got := e.Update("git comm", 8, 8, false)
	if got != "it -m x" {
		t.Fatalf("Update() after typing matching chars = %q, want %q", got, "it -m x")
	}
}

func TestAcceptToEnd(t *testing.T) {
	src := HistorySource{Entries: func() []string { return []string{"git commit -m x"} }}
	e := New(src)
	e.Update("git ", 4, 4, false)

	insert, replaceFrom, ok := e.Accept(AcceptToEnd)
	if !ok {
		t.Fatal("Accept() = false, want true")
	}
	if insert != "commit -m x" {
		t.Fatalf("insert = %q, want %q", insert, "commit -m x")
	}
	if replaceFrom != -1 {
		t.Fatalf("replaceFrom = %d, want -1 (append at cursor)", replaceFrom)
	}

	// Applying the insert and re-running Update should report nothing left.
	got := e.Update("git commit -m x", 15, 15, false)
	if got != "" {
		t.Fatalf("Update() after full accept = %q, want empty", got)
	}
}

func TestAcceptNextWordThenNextWord(t *testing.T) {
	src := HistorySource{Entries: func() []string { return []string{"git commit -m x"} }}
	e := New(src)
	e.Update("git ", 4, 4, false)

	insert, _, ok := e.Accept(AcceptNextWord)
	if !ok || insert != "commit" {
		t.Fatalf("first AcceptNextWord = %q,%v, want %q,true", insert, ok, "commit")
	}

	got := e.Update("git commit", 10, 10, false)
	if got != " -m x" {
		t.Fatalf("remaining suggestion after applying insert = %q, want %q", got, " -m x")
	}
}

func TestAcceptNextFullWord(t *testing.T) {
	src := HistorySource{Entries: func() []string { return []string{"cat file-name.txt extra"} }}
	e := New(src)
	e.Update("cat ", 4, 4, false)

	insert, _, ok := e.Accept(AcceptNextFullWord)
	if !ok || insert != "file-name.txt" {
		t.Fatalf("AcceptNextFullWord = %q,%v, want %q,true", insert, ok, "file-name.txt")
	}
}

func TestAcceptToEndOriginalCaseRewritesWholeLine(t *testing.T) {
	// HistorySource anchors at base 0 and matches case-sensitively, so the
	// already-typed prefix always agrees in case with the candidate; what
	// originalCase controls is whether the untyped remainder is appended
	// (the default) or the engine hands back the whole candidate for the
	// caller to splice in from offset 0, adopting the candidate's own
	// capitalization end to end rather than the cursor-relative tail.
	src := HistorySource{Entries: func() []string { return []string{"Git Commit -m X"} }}
	e := New(src)
	e.SetOriginalCase(true)
	e.Update("Git Commit", 10, 10, false)

	insert, replaceFrom, ok := e.Accept(AcceptToEnd)
	if !ok {
		t.Fatal("Accept() = false, want true")
	}
	if replaceFrom != 0 {
		t.Fatalf("replaceFrom = %d, want 0 (whole-line rewrite)", replaceFrom)
	}
	if insert != "Git Commit -m X" {
		t.Fatalf("insert = %q, want the full candidate %q", insert, "Git Commit -m X")
	}
}

func TestAcceptToEndOriginalCaseDisabledAppendsTail(t *testing.T) {
	src := HistorySource{Entries: func() []string { return []string{"Git Commit -m X"} }}
	e := New(src)
	e.Update("Git Commit", 10, 10, false)

	insert, replaceFrom, ok := e.Accept(AcceptToEnd)
	if !ok {
		t.Fatal("Accept() = false, want true")
	}
	if replaceFrom != -1 {
		t.Fatalf("replaceFrom = %d, want -1 (originalCase disabled, append at cursor)", replaceFrom)
	}
	if insert != " -m X" {
		t.Fatalf("insert = %q, want the untyped tail %q", insert, " -m X")
	}
}

func TestAcceptToEndOriginalCaseIgnoredForNonZeroBase(t *testing.T) {
	m := MatchSource{LastMatch: func() (string, bool) { return "README.md", true }}
	e := New(m)
	e.SetOriginalCase(true)
	e.Update("cat REA", 7, 7, false)

	insert, replaceFrom, ok := e.Accept(AcceptToEnd)
	if !ok {
		t.Fatal("Accept() = false, want true")
	}
	if replaceFrom != -1 {
		t.Fatalf("replaceFrom = %d, want -1 (base != 0, originalCase doesn't apply)", replaceFrom)
	}
	if insert != "DME.md" {
		t.Fatalf("insert = %q, want %q", insert, "DME.md")
	}
}

func TestDestructiveEditSuppresses(t *testing.T) {
	src := HistorySource{Entries: func() []string { return []string{"git commit -m x"} }}
	e := New(src)
	e.Update("git ", 4, 4, false)
	if got := e.Update("git c", 5, 5, false); got == "" {
		t.Fatal("extending the line should keep offering a suggestion")
	}

	// Now edit destructively: change the middle of the started prefix.
	got := e.Update("got c", 5, 5, false)
	if got != "" {
		t.Fatalf("destructive edit should suppress, got %q", got)
	}
	if got2 := e.Update("got com", 7, 7, false); got2 != "" {
		t.Fatalf("suggestions should stay suppressed until reset, got %q", got2)
	}
}

func TestPauseSuppressesGeneration(t *testing.T) {
	src := HistorySource{Entries: func() []string { return []string{"git commit"} }}
	e := New(src)
	e.Pause(true)
	if got := e.Update("git ", 4, 4, false); got != "" {
		t.Fatalf("paused engine returned %q, want empty", got)
	}
}

func TestSourceChainFallsThrough(t *testing.T) {
	empty := HistorySource{Entries: func() []string { return nil }}
	repeat := RepeatCommandSource{PreviousLine: func() (string, bool) { return "git status --short", true }}
	e := New(empty, repeat)

	got := e.Update("git ", 4, 4, false)
	if got != "status --short" {
		t.Fatalf("Update() = %q, want fallthrough to RepeatCommandSource", got)
	}
}

func TestMatchSourcePrefixConsistency(t *testing.T) {
	m := MatchSource{LastMatch: func() (string, bool) { return "README.md", true }}
	e := New(m)
	got := e.Update("cat REA", 7, 7, false)
	if got != "DME.md" {
		t.Fatalf("Update() = %q, want %q", got, "DME.md")
	}
}

func TestResetClearsState(t *testing.T) {
	src := HistorySource{Entries: func() []string { return []string{"git commit -m x"} }}
	e := New(src)
	e.Update("git ", 4, 4, false)
	e.Reset()
	if _, _, ok := e.Current(); ok {
		t.Error("Current() after Reset should report no suggestion")
	}
	if got := e.Update("git ", 4, 4, false); got != "commit -m x" {
		t.Fatalf("Update() after Reset = %q, want fresh suggestion", got)
	}
}
