// Package suggest implements the ghost-text suggestion engine: given the
// current line buffer, it asks a chain of pluggable Sources for a
// completion of the word under the cursor, displays it only while the
// cursor sits at the end of the line with no active selection, and offers
// accept actions that consume it all at once, a word at a time, or a
// "full word" (through trailing non-word characters) at a time.
package suggest

import "strings"

// Source proposes a completion candidate for the current line. candidateText
// is anchored at buffer offset base — it represents what the buffer's
// content from base onward should read once fully accepted (e.g. the whole
// remaining word for a completion match, or the whole rest of the line for
// a history match with base 0). candidateText must already start with
// line[base:] (what's already typed past the anchor), or the candidate is
// rejected as malformed. endWordOffset is the offset of the end of the word
// containing the cursor. ok=false means the Source has nothing to offer.
type Source interface {
	Suggest(line string, endWordOffset int) (candidateText string, base int, ok bool)
}

// Action selects how much of the pending suggestion Accept consumes.
type Action int

const (
	AcceptToEnd Action = iota
	AcceptNextWord
	AcceptNextFullWord
)

// Engine tracks suggestion state across keypresses. The active candidate is
// anchored at a fixed buffer offset (base) with a fixed full text (full);
// the ghost text actually displayed (tail) is recomputed from full and the
// current line length on every Update, so typing characters that match the
// suggestion shrinks it automatically without the engine re-asking sources.
type Engine struct {
	sources []Source

	started string // line as of the last successful Update, for destructive-edit detection
	full    string // full candidate text from base
	base    int
	tail    string // full[len(line)-base:] as of the last Update

	suppressed   bool
	paused       bool
	originalCase bool
}

// New returns an Engine that consults sources in order, using the first one
// that offers a suggestion.
func New(sources ...Source) *Engine {
	return &Engine{sources: sources}
}

// SetOriginalCase controls whether AcceptToEnd, when the suggestion is
// anchored at the start of the line (base == 0, e.g. a history match),
// rewrites the whole line to the candidate's own capitalization instead of
// just appending the untyped tail. Mirrors Autosuggest.OriginalCase.
func (e *Engine) SetOriginalCase(v bool) {
	e.originalCase = v
}

// Pause toggles suggestion generation (keypress handlers call this around
// operations, like reverse-search, that should never show ghost text) and
// returns the previous state.
func (e *Engine) Pause(pause bool) bool {
	was := e.paused
	e.paused = pause
	return was
}

// Reset clears all suggestion state, e.g. on a new edit line.
func (e *Engine) Reset() {
	e.started = ""
	e.full = ""
	e.base = 0
	e.tail = ""
	e.suppressed = false
}

// Update recomputes the suggestion for the given line, cursor, and
// selection-anchor state (anchorSet means a selection is active). It
// returns the ghost text that should be displayed after the cursor, or ""
// if none should be.
//
// A suggestion is only ever computed/displayed when the cursor sits at the
// end of the line with no active selection; otherwise no suggestion is
// shown, though the in-flight candidate is kept so it can reappear once the
// cursor returns to the end.
func (e *Engine) Update(line string, cursor, endWordOffset int, anchorSet bool) string {
	if e.paused {
		return ""
	}
	if cursor != len(line) || anchorSet {
		return ""
	}

	if e.destructiveEditSince(line) {
		e.suppressSuggestions(line)
		return ""
	}

	if e.full != "" && len(line) >= e.base && len(line)-e.base <= len(e.full) && strings.HasPrefix(e.full, line[e.base:]) {
		e.started = line
		e.tail = e.full[len(line)-e.base:]
		return e.tail
	}

	if e.suppressed {
		return ""
	}

	for _, s := range e.sources {
		if s == nil {
			continue
		}
		full, base, ok := s.Suggest(line, endWordOffset)
		if !ok || full == "" || base < 0 || base > len(line) {
			continue
		}
		if !strings.HasPrefix(full, line[base:]) {
			// A candidate that does not extend the buffer's own text at
			// base is malformed; skip it.
			continue
		}
		e.started = line
		e.full = full
		e.base = base
		e.tail = full[len(line)-base:]
		if e.tail == "" {
			continue // fully typed already; nothing to show
		}
		return e.tail
	}

	e.full = ""
	e.tail = ""
	return ""
}

// destructiveEditSince reports whether line is no longer a pure
// continuation of e.started: a suggestion started against a shorter line
// survives further appends but must be suppressed the moment the line is
// edited in a way that is not simply "typed more at the end".
func (e *Engine) destructiveEditSince(line string) bool {
	if e.started == "" {
		return false
	}
	if len(line) >= len(e.started) {
		return line[:len(e.started)] != e.started
	}
	return e.started[:len(line)] != line
}

func (e *Engine) suppressSuggestions(line string) {
	e.full = ""
	e.tail = ""
	e.started = line
	e.suppressed = true
}

// Current returns the active ghost text and the buffer offset it would be
// inserted at (the end of the current line), or ("", 0, false) if none is
// active.
func (e *Engine) Current() (text string, offset int, ok bool) {
	if e.tail == "" {
		return "", 0, false
	}
	return e.tail, len(e.started), true
}

// Accept consumes part of the active suggestion per action. replaceFrom is
// -1 when the caller should simply insert the returned text at the cursor
// (the common case); otherwise the caller should replace the buffer from
// byte offset replaceFrom through its end with insert. The latter only
// happens for AcceptToEnd against a base-0 candidate (e.g. a history match)
// with originalCase enabled: the suggestion's own capitalization replaces
// whatever case the user had already typed, rather than just appending the
// untyped remainder. The engine does not mutate the external line buffer
// itself; the caller applies the edit and then calls Update again with the
// new line, which will naturally shrink or clear the remaining ghost text.
func (e *Engine) Accept(action Action) (insert string, replaceFrom int, ok bool) {
	if e.tail == "" {
		return "", -1, false
	}
	switch action {
	case AcceptToEnd:
		if e.originalCase && e.base == 0 && e.full != "" {
			return e.full, 0, true
		}
		insert = e.tail
	case AcceptNextWord:
		insert = nextWord(e.tail)
	case AcceptNextFullWord:
		insert = nextFullWord(e.tail)
	default:
		return "", -1, false
	}
	if insert == "" {
		return "", -1, false
	}
	return insert, -1, true
}

// nextWord returns one identifier-ish segment: a leading run of word bytes,
// or (if it doesn't start on one) a leading run of non-word, non-space
// punctuation. Either way it stops before the next space.
func nextWord(s string) string {
	if s == "" {
		return ""
	}
	i := 0
	if isWordByte(s[0]) {
		for i < len(s) && isWordByte(s[i]) {
			i++
		}
	} else {
		for i < len(s) && s[i] != ' ' && !isWordByte(s[i]) {
			i++
		}
	}
	return s[:i]
}

// nextFullWord extends nextWord through any further alternating
// word/punctuation runs until the next space or end of string, i.e. one
// complete shell word such as a whole filename with an extension.
func nextFullWord(s string) string {
	i := 0
	for i < len(s) && s[i] != ' ' {
		i++
	}
	return s[:i]
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
