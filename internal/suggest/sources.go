package suggest

import "strings"

// HistorySource suggests the most recent history entry that has line as a
// prefix.
type HistorySource struct {
	// Entries returns history lines, most recent first.
	Entries func() []string
}

func (h HistorySource) Suggest(line string, endWordOffset int) (string, int, bool) {
	if h.Entries == nil || line == "" {
		return "", 0, false
	}
	for _, entry := range h.Entries() {
		if strings.HasPrefix(entry, line) && entry != line {
			return entry, 0, true
		}
	}
	return "", 0, false
}

// MatchSource suggests the last match the completion pipeline produced for
// the word under the cursor.
type MatchSource struct {
	// LastMatch returns the most recently generated completion text for the
	// current word, if any.
	LastMatch func() (text string, ok bool)
}

func (m MatchSource) Suggest(line string, endWordOffset int) (string, int, bool) {
	if m.LastMatch == nil {
		return "", 0, false
	}
	text, ok := m.LastMatch()
	if !ok || text == "" {
		return "", 0, false
	}
	wordStart := lastWordStart(line, endWordOffset)
	needle := line[wordStart:endWordOffset]
	if !strings.HasPrefix(text, needle) {
		return "", 0, false
	}
	return text, wordStart, true
}

// RepeatCommandSource suggests the tail of the previously accepted line
// when its first word matches the current buffer's first word ("match
// after same previous command").
type RepeatCommandSource struct {
	// PreviousLine returns the last accepted line, if any.
	PreviousLine func() (string, bool)
}

func (r RepeatCommandSource) Suggest(line string, endWordOffset int) (string, int, bool) {
	if r.PreviousLine == nil || line == "" {
		return "", 0, false
	}
	prev, ok := r.PreviousLine()
	if !ok {
		return "", 0, false
	}
	if firstWord(prev) != firstWord(line) {
		return "", 0, false
	}
	if !strings.HasPrefix(prev, line) || prev == line {
		return "", 0, false
	}
	return prev, 0, true
}

func firstWord(s string) string {
	i := strings.IndexByte(s, ' ')
	if i < 0 {
		return s
	}
	return s[:i]
}

// lastWordStart finds the start of the word ending at endWordOffset,
// splitting on plain spaces (the tokenizer owns the real shell-word
// boundaries; this is a best-effort fallback for sources that only see the
// flat buffer text).
func lastWordStart(line string, endWordOffset int) int {
	if endWordOffset > len(line) {
		endWordOffset = len(line)
	}
	i := strings.LastIndexByte(line[:endWordOffset], ' ')
	if i < 0 {
		return 0
	}
	return i + 1
}
