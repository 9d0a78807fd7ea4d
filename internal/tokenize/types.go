// Package tokenize implements the shell-aware command/word lexer described
// by the cmd.exe host: command splitting under &, |, &&, ||, redirection and
// handle-duplication parsing, special-command word-break rules, doskey alias
// recognition, sub-shell paren skipping, and the -flag:value colon-split
// heuristic. It never fails — malformed input produces best-effort words.
package tokenize

// Word is a half-open span [Offset, Offset+Length) over the tokenized
// buffer plus classification flags.
type Word struct {
	Offset      int
	Length      int
	Quoted      bool
	IsAlias     bool
	IsRedirArg  bool
	CommandWord bool
	Delim       byte
}

// End returns the byte offset one past the word.
func (w Word) End() int { return w.Offset + w.Length }

// Command is a half-open range [Offset, Offset+Length) over the buffer,
// naming one command of a possibly multi-command line.
type Command struct {
	Offset       int
	Length       int
	AliasAllowed bool
}

// End returns the byte offset one past the command.
func (c Command) End() int { return c.Offset + c.Length }

// ArgMatcher describes the per-command argument matcher collaborator that
// the tokenizer consults to decide whether the -flag:value colon-split
// heuristic should be suppressed for a given command word.
type ArgMatcher interface {
	// Deprecated reports whether this matcher's command predates and
	// conflicts with the colon-split heuristic.
	Deprecated() bool
}

// AliasResolver is the external doskey alias-expansion collaborator. The
// tokenizer only needs to know whether a candidate token names an alias; the
// expansion itself happens later, outside the tokenizer's scope.
type AliasResolver interface {
	// HasAlias reports whether name is a registered doskey alias.
	HasAlias(name string) bool
}

// ArgMatcherLookup resolves the registered ArgMatcher for a command word, if
// any.
type ArgMatcherLookup interface {
	Lookup(commandWord string) (ArgMatcher, bool)
}
