package hostio

import "strings"

// fallbackYNPrompt and fallbackYesNo are the English defaults used when a
// localized "Terminate batch job (Y/N)? " MUI string can't be resolved;
// this rewrite has no MUI resource table to query, so it always uses the
// fallback (recorded as an Open Question decision, not silently dropped).
const (
	fallbackYNPrompt = "Terminate batch job (Y/N)? "
	fallbackYes      = 'y'
	fallbackNo       = 'n'
)

// fallbackMorePrompt is the continuation prompt cmd.exe prints for
// multi-line piped input ("More? ").
const fallbackMorePrompt = "More? "

// autoAnswerState tracks the two-call Y/N/All protocol: the first call
// returns the answer character, the second returns '\n' to terminate
// cmd.exe's own PromptUser() char-at-a-time read loop.
type autoAnswerState struct {
	answered int
}

func (s *autoAnswerState) reset() { s.answered = 0 }

// check returns the rune to inject for a max_chars==1 read against the
// captured prompt text, or (0, false) if auto-answer doesn't apply.
func (s *autoAnswerState) check(mode AutoAnswerMode, capturedPrompt string, promptSet bool) (rune, bool) {
	if s.answered >= 2 || mode == AutoAnswerOff {
		return 0, false
	}
	if !promptSet || !strings.Contains(capturedPrompt, fallbackYNPrompt) {
		return 0, false
	}
	s.answered++
	if s.answered >= 2 {
		return '\n', true
	}
	if mode == AutoAnswerNo {
		return fallbackNo, true
	}
	return fallbackYes, true
}

// AutoAnswerMode mirrors settings.AutoAnswer without importing the
// settings package (hostio must not depend upward on the CLI's config
// layer; cmd/clinkgo adapts settings.AutoAnswer to this type at the call
// site, the same direction internal/history keeps with internal/settings).
type AutoAnswerMode int

const (
	AutoAnswerOff AutoAnswerMode = iota
	AutoAnswerYes
	AutoAnswerNo
)

// moreContinuationState remembers whether the last write looked like the
// "More? " prompt, biasing the next read toward queued-line continuation
// even when no prompt is currently captured.
type moreContinuationState struct {
	active bool
}

// check updates and returns the continuation flag for a write of chars.
func (s *moreContinuationState) check(chars string) bool {
	s.active = chars == fallbackMorePrompt
	return s.active
}

// take returns the current continuation flag and clears it, mirroring
// the single-shot `s_more_continuation` local in the reference read hook.
func (s *moreContinuationState) take() bool {
	v := s.active
	s.active = false
	return v
}

// readCase classifies a console read request the way read_console's three
// branches do, without touching any I/O.
type readCase int

const (
	// readCaseSingleChar is a max_chars==1 request (Y/N/All prompts).
	readCaseSingleChar readCase = iota
	// readCaseQueuedOrPassthrough is a non-edit line read: either a queued
	// line from a prior multi-segment expansion, or straight passthrough.
	readCaseQueuedOrPassthrough
	// readCaseEditLine is a full line-edit cycle against a captured prompt.
	readCaseEditLine
)

// classifyRead decides which of the three read cases applies.
func classifyRead(maxChars int, moreContinuation bool, capturedPrompt string, promptSet bool) readCase {
	if maxChars == 1 {
		return readCaseSingleChar
	}
	if moreContinuation || !promptSet || capturedPrompt == "" {
		return readCaseQueuedOrPassthrough
	}
	return readCaseEditLine
}
