package hostio

import "strings"

// Session drives one hooked console's read/write dispatch: prompt
// capture/swallow, the three-way read classification, and doskey
// multi-segment playback. It owns no terminal of its own — all real I/O
// goes through ConsoleHooks, so the same Session logic runs identically
// against a live Windows console and against hook_other.go's in-process
// fake.
type Session struct {
	hooks    ConsoleHooks
	editor   Editor
	resolver AliasResolver
	onAccept func(line string)

	autoAnswerMode AutoAnswerMode
	ctrlDExits     bool

	write        writeDispatcher
	autoAnswerSt autoAnswerState
	queue        lineQueue
}

// NewSession wires a Session against its collaborators. onAccept, if
// non-nil, is invoked with every accepted line before doskey expansion
// (the natural hook point for appending to an internal/history.DB — kept
// as a callback so this package has no import-time dependency on
// internal/history or internal/settings).
func NewSession(hooks ConsoleHooks, editor Editor, resolver AliasResolver, autoAnswer AutoAnswerMode, ctrlDExits bool, onAccept func(line string)) *Session {
	return &Session{
		hooks:          hooks,
		editor:         editor,
		resolver:       resolver,
		onAccept:       onAccept,
		autoAnswerMode: autoAnswer,
		ctrlDExits:     ctrlDExits,
	}
}

// ReadConsole implements one ReadConsoleW dispatch: Y/N/All auto-answer,
// queued-segment playback, or a full line-edit cycle, per maxChars and
// the currently captured prompt.
func (s *Session) ReadConsole(maxChars int) (string, error) {
	moreContinuation := s.write.more.take()
	promptText, promptSet := s.write.prompt.Get()

	switch classifyRead(maxChars, moreContinuation, promptText, promptSet) {
	case readCaseSingleChar:
		if r, ok := s.autoAnswerSt.check(s.autoAnswerMode, promptText, promptSet); ok {
			if err := s.hooks.WriteConsole(string(r)); err != nil {
				return "", err
			}
			return string(r), nil
		}
		r, err := s.hooks.ReadChar()
		if err != nil {
			return "", err
		}
		return string(r), nil

	case readCaseQueuedOrPassthrough:
		if line, ok := s.queue.next(); ok {
			return line, nil
		}
		return s.hooks.ReadLine()

	default: // readCaseEditLine
		return s.runEditCycle(promptText)
	}
}

// runEditCycle repeats edit_line until it's accepted or the user's
// configured Ctrl+D behavior forces an "exit", emitting a newline before
// each retry the way write_line_feed does after a cancelled edit.
func (s *Session) runEditCycle(promptText string) (string, error) {
	s.autoAnswerSt.reset()

	var result string
	for {
		accepted := false
		result, accepted = s.editor.EditLine(CollapseBackspaces(promptText), "", "")
		if accepted {
			break
		}
		if s.ctrlDExits {
			result = "exit"
			break
		}
		if err := s.hooks.WriteConsole("\n"); err != nil {
			return "", err
		}
	}
	s.write.prompt.Clear()

	if s.onAccept != nil {
		s.onAccept(result)
	}

	resolved := result
	if s.resolver != nil {
		if r, ok := s.resolver.Resolve(result); ok {
			resolved = r
		}
	}
	segments := SplitSegments(resolved)
	if len(segments) == 0 {
		segments = []string{result}
	}
	s.queue.reset(segments)

	first, _ := s.queue.next()
	return first + "\r\n", nil
}

// WriteConsole implements one WriteConsoleW dispatch: prompt capture and
// "More? " detection swallow the call; everything else is forwarded.
func (s *Session) WriteConsole(text string) error {
	if s.write.dispatch(text) {
		return nil
	}
	return s.hooks.WriteConsole(text)
}

// SetEnv tags the PROMPT variable on its way through so the subsequent
// write that echoes it can be recognized; every other variable passes
// through untouched.
func (s *Session) SetEnv(name, value string) error {
	if !strings.EqualFold(name, "prompt") {
		return s.hooks.SetEnv(name, value)
	}
	return s.hooks.SetEnv(name, Tag(value))
}

func (s *Session) GetEnv(name string) (string, bool) { return s.hooks.GetEnv(name) }
func (s *Session) SetTitle(title string) error       { return s.hooks.SetTitle(title) }
func (s *Session) Close() error                      { return s.hooks.Close() }
