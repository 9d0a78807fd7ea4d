package hostio

import "strings"

// promptTagHidden is written ahead of the prompt text whenever the host's
// PROMPT environment variable is tagged: each literal character is
// immediately followed by a backspace, so a plain terminal that merely
// echoes bytes renders nothing visible, while the console-write hook can
// still recognize the byte sequence and swallow the write that carries it.
const promptTagHidden = "C\bL\bI\bN\bK\b \b"

// promptTagVisible is accepted as an equivalent, visible tag for hosts
// that strip backspace sequences before the write hook ever sees them.
const promptTagVisible = "@CLINK_PROMPT"

var promptTags = []string{promptTagHidden, promptTagVisible}

// TaggedPrompt holds the prompt text captured off a console-write, once
// its leading tag (if any) has been stripped.
type TaggedPrompt struct {
	text string
	set  bool
}

// Tag prepends the hidden tag to value, unless value is already tagged.
func Tag(value string) string {
	if tagLength(value) > 0 {
		return value
	}
	return promptTagHidden + value
}

// tagLength returns the byte length of whichever accepted tag prefixes
// chars, or 0 if chars doesn't start with one.
func tagLength(chars string) int {
	for _, tag := range promptTags {
		if strings.HasPrefix(chars, tag) {
			return len(tag)
		}
	}
	return 0
}

// Capture records chars as the current prompt if it is tagged, stripping
// the tag. It reports whether chars was recognized as a tagged prompt
// write (which the caller must then swallow rather than forward).
func (p *TaggedPrompt) Capture(chars string) bool {
	n := tagLength(chars)
	if n == 0 {
		p.text = ""
		p.set = false
		return false
	}
	p.text = chars[n:]
	p.set = true
	return true
}

// Get returns the captured prompt text and whether one is set.
func (p *TaggedPrompt) Get() (string, bool) { return p.text, p.set }

// Clear drops the captured prompt, matching host_cmd::edit_line's reset
// after every edit cycle so a bare `ReadConsoleW` without an intervening
// `WriteConsoleW` (e.g. `set /p VAR=`) doesn't reuse a stale prompt.
func (p *TaggedPrompt) Clear() {
	p.text = ""
	p.set = false
}

// CollapseBackspaces applies literal backspace bytes within s, the way
// the host's own prompt text must be collapsed before it's handed to the
// editor for display. Only single-byte backspace-erases-one-rune is
// handled; multibyte characters split across a backspace, and backspaces
// produced by an OSC-expanded environment variable, are not specially
// recombined (see the corresponding Open Question decision).
func CollapseBackspaces(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '\b' {
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
