// Package hostio drives the console hook layer: it captures the host
// shell's prompt, dispatches its console reads between auto-answer,
// queued-line playback and a full line-edit cycle, and plays accepted
// text (including doskey multi-command expansions) back to the host one
// segment per read.
package hostio

// HookMode selects how ConsoleHooks are installed in the host process.
// Both modes route through the same Windows implementation in this
// rewrite (see hook_windows.go); the value is still threaded through
// from the CLI surface (inject's --althook flag) so the two install
// strategies the host exposes keep their names.
type HookMode int

const (
	HookIAT HookMode = iota
	HookDetour
)

func (m HookMode) String() string {
	if m == HookDetour {
		return "detour"
	}
	return "iat"
}

// ConsoleHooks is the platform seam between Session and the host's real
// console primitives. hook_windows.go installs it against a live cmd.exe
// console; hook_other.go provides an in-process fake for tests and
// non-Windows development.
type ConsoleHooks interface {
	// ReadChar blocks for a single character, the primitive cmd.exe uses
	// for its Y/N/All prompts (ReadConsoleW with max_chars==1).
	ReadChar() (rune, error)
	// ReadLine blocks for a full line when no editor is engaged, the
	// primitive used for plain (non-prompt) line input.
	ReadLine() (string, error)
	// WriteConsole forwards text to the real console unmodified.
	WriteConsole(text string) error
	// SetEnv and GetEnv proxy the host's environment so prompt tagging
	// can intercept `PROMPT` specifically.
	SetEnv(name, value string) error
	GetEnv(name string) (string, bool)
	// SetTitle proxies the host's console-title primitive.
	SetTitle(title string) error
	// Close releases any resources (pseudo-console, pipes) the hook
	// implementation holds open.
	Close() error
}

// Editor is the external line-editing collaborator: given the captured
// prompt and an initial buffer, it runs a full edit cycle (keymap
// dispatch, match generation, suggestion overlay, display) and reports
// the accepted text, or false if the user asked to cancel/re-init.
type Editor interface {
	EditLine(prompt, rprompt, initial string) (result string, accepted bool)
}

// AliasResolver is the external doskey macro-expansion service (out of
// scope for this module per its own contract): given the accepted line,
// it returns the resolved text with internal command separators encoded
// as the reserved byte 0x01, ready for SplitSegments.
type AliasResolver interface {
	Resolve(line string) (resolved string, ok bool)
}
