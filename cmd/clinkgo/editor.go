package main

import (
	"bufio"
	"fmt"
	"os"

	xterm "github.com/charmbracelet/x/term"

	"gitlab.com/tinyland/lab/clinkgo/internal/display"
	"gitlab.com/tinyland/lab/clinkgo/internal/history"
	"gitlab.com/tinyland/lab/clinkgo/internal/linebuffer"
	"gitlab.com/tinyland/lab/clinkgo/internal/match"
	"gitlab.com/tinyland/lab/clinkgo/internal/settings"
	"gitlab.com/tinyland/lab/clinkgo/internal/suggest"
	"gitlab.com/tinyland/lab/clinkgo/internal/tokenize"
)

const (
	keyCtrlC      = 0x03
	keyCtrlD      = 0x04
	keyBackspace  = 0x7f
	keyBackspace2 = 0x08
	keyTab        = '\t'
	keyCR         = '\r'
	keyLF         = '\n'
)

// lineEditor implements hostio.Editor against the core line-buffer/match/
// suggest/display pipeline, standing in for the real keybinding layer
// (declared an external collaborator) with a minimal default keymap:
// printable insert, backspace, Tab-completes-first-match, Enter accepts,
// Ctrl+C/Ctrl+D cancels.
type lineEditor struct {
	cfg *settings.Config
	db  *history.DB

	buf     *linebuffer.Buffer
	suggest *suggest.Engine
	render  *display.Renderer

	lastMatch string
	haveMatch bool
}

func newLineEditor(cfg *settings.Config, db *history.DB) *lineEditor {
	e := &lineEditor{cfg: cfg, db: db, buf: linebuffer.New()}
	e.suggest = suggest.New(
		suggest.MatchSource{LastMatch: func() (string, bool) { return e.lastMatch, e.haveMatch }},
		suggest.HistorySource{Entries: e.historyEntries},
	)
	e.suggest.SetOriginalCase(cfg.Autosuggest.OriginalCase)
	width, _, err := xterm.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}
	sink := display.NewSink(os.Stdout, os.Stdout.Fd())
	e.render = display.NewRenderer(sink, width)
	return e
}

func (e *lineEditor) historyEntries() []string {
	entries, err := e.db.Iterate()
	if err != nil {
		return nil
	}
	out := make([]string, len(entries))
	for i := range entries {
		out[len(entries)-1-i] = entries[i].Text
	}
	return out
}

// EditLine runs one full edit cycle against stdin/stdout, returning the
// accepted text or ("", false) on cancellation.
func (e *lineEditor) EditLine(prompt, rprompt, initial string) (string, bool) {
	e.buf.Reset()
	if initial != "" {
		e.buf.Insert(initial)
	}
	e.suggest.Reset()

	fmt.Fprint(os.Stdout, prompt)

	state, rawErr := xterm.MakeRaw(int(os.Stdin.Fd()))
	if rawErr == nil {
		defer xterm.Restore(int(os.Stdin.Fd()), state)
	}
	in := bufio.NewReader(os.Stdin)

	for {
		e.paint()

		r, _, err := in.ReadRune()
		if err != nil {
			return e.buf.Text(), e.buf.Len() > 0
		}

		switch r {
		case keyCtrlC, keyCtrlD:
			return "", false
		case keyCR, keyLF:
			return e.buf.Text(), true
		case keyBackspace, keyBackspace2:
			if c := e.buf.Cursor(); c > 0 {
				e.buf.Remove(c-1, c)
			}
		case keyTab:
			e.complete()
		default:
			if r >= 0x20 {
				e.buf.Insert(string(r))
			}
		}
	}
}

// complete runs the match pipeline against the word under the cursor and
// replaces it with the first selected candidate, the simplest possible
// stand-in for an interactive match-list UI (itself an external
// collaborator per the help/popup-window boundary).
func (e *lineEditor) complete() {
	text := e.buf.Text()
	cursor := e.buf.Cursor()
	cmds := tokenize.SplitCommands([]byte(text), 0)
	if len(cmds) == 0 {
		return
	}
	cmd := cmds[len(cmds)-1]
	var tok tokenize.Tokenizer
	words := tok.Words([]byte(text), cmd)
	if len(words) == 0 {
		return
	}
	word := words[len(words)-1]
	for _, w := range words {
		if cursor >= w.Offset && cursor <= w.End() {
			word = w
			break
		}
	}
	needle := text[word.Offset:min(cursor, word.End())]

	set := match.Build(text, needle, []match.Generator{fsGenerator{}})
	selected := set.Select(needle, e.cfg.MatchCaseMode(), e.cfg.Match.Substring)
	if len(selected) == 0 {
		return
	}
	match.Sort(selected, match.DirBefore, set.Nosort)
	best := selected[0]
	appendStr := best.Append
	if best.SuppressAppend {
		appendStr = ""
	}
	replacement := match.TranslateSlashes(best.Text, best.Text, e.cfg.MatchSlashMode()) + appendStr

	e.buf.Replace(word.Offset, word.End(), replacement)
	e.buf.SetCursor(word.Offset + len(replacement))
	e.lastMatch = replacement
	e.haveMatch = true
}

func (e *lineEditor) paint() {
	line := []rune(e.buf.Text())
	cursor := e.buf.Cursor()
	suggestionText := e.suggest.Update(e.buf.Text(), cursor, cursor, e.buf.Anchor() != e.buf.Cursor())
	e.render.Render(line, cursor, suggestionText, display.ModeAuto, e.cfg.Clink.MaxInputRows, 24)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
