// Package linebuffer implements the in-memory edit-buffer facade that sits
// between the host hook's keypress loop and the match/suggest/display
// pipelines: insert/delete/replace over a rune buffer, cursor and selection
// anchor, a small named-mark set, a need-redraw flag, and an undo-group
// stack. Snapshot caches the rune buffer's string form so the suggestion and
// display engines can share one conversion per redraw instead of each
// re-stringifying the buffer.
package linebuffer

import "fmt"

// Snapshot is an immutable view of the buffer at one point in time.
type Snapshot struct {
	Text   string
	Cursor int
	Anchor int // -1 when there is no active selection
}

// Buffer is an edit buffer over a rune slice, with cursor, selection anchor,
// named marks, and a group-based undo stack.
type Buffer struct {
	text   []rune
	cursor int
	anchor int // -1 when there is no active selection

	marks map[string]int

	undo       []undoGroup
	groupDepth int

	needDraw bool

	snap      *Snapshot
	snapValid bool
}

type undoEdit struct {
	from, to int // range in the buffer as it existed before the edit
	removed  []rune
	inserted int // length of the inserted run, for replay-free rollback
}

type undoGroup struct {
	edits []undoEdit
}

// New returns an empty Buffer.
func New() *Buffer {
	return &Buffer{anchor: -1, marks: make(map[string]int)}
}

// Reset clears the buffer back to empty, matching begin-new-line semantics:
// content, cursor, anchor, marks, and undo history are all discarded.
func (b *Buffer) Reset() {
	b.text = b.text[:0]
	b.cursor = 0
	b.anchor = -1
	for k := range b.marks {
		delete(b.marks, k)
	}
	b.undo = nil
	b.groupDepth = 0
	b.invalidate()
}

// Text returns the buffer contents as a string.
func (b *Buffer) Text() string { return string(b.text) }

// Len returns the number of runes in the buffer.
func (b *Buffer) Len() int { return len(b.text) }

// Cursor returns the current cursor position, a rune offset in [0, Len()].
func (b *Buffer) Cursor() int { return b.cursor }

// SetCursor clamps pos into [0, Len()] and moves the cursor there, clearing
// any active selection (matching the host's cua_clear_selection behavior).
func (b *Buffer) SetCursor(pos int) int {
	if pos < 0 {
		pos = 0
	}
	if pos > len(b.text) {
		pos = len(b.text)
	}
	if b.anchor != -1 {
		b.anchor = -1
		b.needDraw = true
	}
	b.cursor = pos
	return b.cursor
}

// Anchor returns the selection anchor, or -1 if there is no active
// selection.
func (b *Buffer) Anchor() int { return b.anchor }

// SetSelection marks [anchor, pos) (order-independent) as the active
// selection and moves the cursor to pos.
func (b *Buffer) SetSelection(anchor, pos int) {
	anchor = clamp(anchor, 0, len(b.text))
	pos = clamp(pos, 0, len(b.text))
	if b.anchor != anchor || b.cursor != pos {
		b.needDraw = true
	}
	b.anchor = anchor
	b.cursor = pos
}

// ClearSelection drops the active selection without moving the cursor.
func (b *Buffer) ClearSelection() {
	if b.anchor != -1 {
		b.anchor = -1
		b.needDraw = true
	}
}

// Insert inserts text at the cursor and advances the cursor past it. It
// reports whether anything was actually inserted.
func (b *Buffer) Insert(text string) bool {
	return b.InsertAt(b.cursor, text)
}

// InsertAt inserts text at the given rune offset (clamped into range),
// shifting the cursor forward by the inserted length when it sits at or
// after that offset (so Insert leaves it just past the inserted text), and
// records one undo edit in the current group (or a standalone group if
// none is open).
func (b *Buffer) InsertAt(at int, text string) bool {
	if text == "" {
		return false
	}
	at = clamp(at, 0, len(b.text))
	runes := []rune(text)

	b.recordEdit(undoEdit{from: at, to: at, removed: nil, inserted: len(runes)})

	tail := append([]rune{}, b.text[at:]...)
	b.text = append(b.text[:at], append(runes, tail...)...)

	if at <= b.cursor {
		b.cursor += len(runes)
	}
	b.shiftMarksInsert(at, len(runes))
	b.needDraw = true
	b.invalidate()
	return true
}

// Remove deletes the half-open rune range [from, to), clamped into range,
// reporting whether anything was actually removed.
func (b *Buffer) Remove(from, to int) bool {
	from = clamp(from, 0, len(b.text))
	to = clamp(to, 0, len(b.text))
	if from > to {
		from, to = to, from
	}
	if from == to {
		return false
	}

	removed := append([]rune{}, b.text[from:to]...)
	b.recordEdit(undoEdit{from: from, to: to, removed: removed, inserted: 0})

	b.text = append(b.text[:from], b.text[to:]...)
	b.shiftMarksRemove(from, to)

	switch {
	case b.cursor >= to:
		b.cursor -= to - from
	case b.cursor > from:
		b.cursor = from
	}
	b.SetCursor(b.cursor)
	b.needDraw = true
	b.invalidate()
	return true
}

// Replace deletes [from, to) and inserts text in its place, as a single undo
// group.
func (b *Buffer) Replace(from, to int, text string) bool {
	b.BeginUndoGroup()
	defer b.EndUndoGroup()
	removed := b.Remove(from, to)
	inserted := b.InsertAt(min(from, to), text)
	return removed || inserted
}

// NeedsRedraw reports whether the buffer has changed since the last
// ClearNeedsRedraw call.
func (b *Buffer) NeedsRedraw() bool { return b.needDraw }

// SetNeedsRedraw forces the need-redraw flag, e.g. after an external
// collaborator (display mode switch) invalidates the frame without editing
// the buffer.
func (b *Buffer) SetNeedsRedraw() { b.needDraw = true }

// ClearNeedsRedraw drops the flag once the display engine has drawn the
// current state.
func (b *Buffer) ClearNeedsRedraw() { b.needDraw = false }

// SetMark records a named rune offset that tracks subsequent edits (shifted
// the same way the cursor is).
func (b *Buffer) SetMark(name string, at int) {
	b.marks[name] = clamp(at, 0, len(b.text))
}

// Mark returns the current offset of a named mark, or (0, false) if unset.
func (b *Buffer) Mark(name string) (int, bool) {
	v, ok := b.marks[name]
	return v, ok
}

// ClearMark removes a named mark.
func (b *Buffer) ClearMark(name string) { delete(b.marks, name) }

// shiftMarksInsert moves marks at or after the insertion point forward by n
// runes.
func (b *Buffer) shiftMarksInsert(at, n int) {
	for name, pos := range b.marks {
		if pos >= at {
			b.marks[name] = pos + n
		}
	}
}

// shiftMarksRemove adjusts marks after deleting [from, to): marks inside the
// deleted span collapse to from; marks after it shift back by its length.
func (b *Buffer) shiftMarksRemove(from, to int) {
	n := to - from
	for name, pos := range b.marks {
		switch {
		case pos >= to:
			b.marks[name] = pos - n
		case pos > from:
			b.marks[name] = from
		}
	}
}

// BeginUndoGroup opens a new undo group; edits made until the matching
// EndUndoGroup collapse into one Undo step. Groups may nest: only the
// outermost EndUndoGroup closes the group.
func (b *Buffer) BeginUndoGroup() {
	if b.groupDepth == 0 {
		b.undo = append(b.undo, undoGroup{})
	}
	b.groupDepth++
}

// EndUndoGroup closes an undo group opened by BeginUndoGroup.
func (b *Buffer) EndUndoGroup() {
	if b.groupDepth == 0 {
		return
	}
	b.groupDepth--
}

func (b *Buffer) recordEdit(e undoEdit) {
	if b.groupDepth == 0 {
		b.undo = append(b.undo, undoGroup{edits: []undoEdit{e}})
		return
	}
	last := len(b.undo) - 1
	b.undo[last].edits = append(b.undo[last].edits, e)
}

// Undo reverts the most recent undo group, in reverse edit order within the
// group. It reports whether there was anything to undo.
func (b *Buffer) Undo() bool {
	if len(b.undo) == 0 {
		return false
	}
	group := b.undo[len(b.undo)-1]
	b.undo = b.undo[:len(b.undo)-1]

	for i := len(group.edits) - 1; i >= 0; i-- {
		e := group.edits[i]
		if e.inserted > 0 {
			b.text = append(b.text[:e.from], b.text[e.from+e.inserted:]...)
		}
		if len(e.removed) > 0 {
			tail := append([]rune{}, b.text[e.from:]...)
			b.text = append(b.text[:e.from], append(append([]rune{}, e.removed...), tail...)...)
		}
		b.SetCursor(e.from)
	}
	b.needDraw = true
	b.invalidate()
	return true
}

func (b *Buffer) invalidate() { b.snapValid = false }

// Snapshot returns the buffer's current state, stringifying the rune buffer
// at most once between mutations regardless of how many callers ask.
func (b *Buffer) Snapshot() Snapshot {
	if !b.snapValid {
		s := Snapshot{Text: string(b.text), Cursor: b.cursor, Anchor: b.anchor}
		b.snap = &s
		b.snapValid = true
	}
	return *b.snap
}

// Validate reports an error if the buffer's invariants (cursor/anchor within
// range) have been violated, which should never happen through the public
// API; it exists for tests and defensive assertions at call boundaries that
// accept raw offsets from the wire.
func (b *Buffer) Validate() error {
	if b.cursor < 0 || b.cursor > len(b.text) {
		return fmt.Errorf("linebuffer: cursor %d out of range [0,%d]", b.cursor, len(b.text))
	}
	if b.anchor != -1 && (b.anchor < 0 || b.anchor > len(b.text)) {
		return fmt.Errorf("linebuffer: anchor %d out of range [0,%d]", b.anchor, len(b.text))
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
