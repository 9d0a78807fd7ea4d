package tokenize

import "strings"

// specialFlag tags a recognized cmd.exe internal command with how its word
// breaks behave.
type specialFlag int

const (
	flagNone specialFlag = 0
	// flagRem marks "rem": its arguments are the remainder of the line
	// verbatim.
	flagRem specialFlag = 1 << iota
	// flagBasicWordBreaks marks commands that treat the narrow delimiter
	// set "@ \t=;,(" (special word-break characters are part of the word).
	flagBasicWordBreaks
	// flagShellWordBreaks marks commands that treat "@ \t=;,(/" as
	// ignored delimiters.
	flagShellWordBreaks
)

// basicWordBreakCommands get the narrow delimiter set.
var basicWordBreakCommands = map[string]bool{
	"assoc": true, "color": true, "ftype": true, "if": true,
	"set": true, "ver": true, "verify": true,
}

// shellWordBreakCommands get the "@ \t=;,(/" delimiter set.
var shellWordBreakCommands = map[string]bool{
	"break": true, "call": true, "cd": true, "chdir": true, "cls": true,
	"copy": true, "date": true, "del": true, "dir": true, "dpath": true,
	"echo": true, "endlocal": true, "erase": true, "exit": true, "for": true,
	"goto": true, "md": true, "mkdir": true, "mklink": true, "move": true,
	"path": true, "pause": true, "popd": true, "prompt": true, "pushd": true,
	"rd": true, "rem": true, "ren": true, "rename": true, "rmdir": true,
	"setlocal": true, "shift": true, "start": true, "time": true,
	"title": true, "type": true, "vol": true,
}

const commandDelimiters = "@ \t=;,(/"
const nameDelimiters = "@ \t=;,("
const wordDelimiters = " \t\n'`=+;,()[]{}"

// classifySpecialCommand reports the specialFlag for a candidate command
// word, accepting embedded carets (the Windows caret-escape) as if they were
// absent — "re^m" matches "rem".
func classifySpecialCommand(word string) specialFlag {
	lw := strings.ToLower(word)
	if f := lookupSpecial(lw); f != flagNone {
		return f
	}
	if !strings.ContainsRune(word, '^') {
		return flagNone
	}
	var b strings.Builder
	runes := []rune(lw)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '^' {
			i++
			if i >= len(runes) {
				break
			}
		}
		b.WriteRune(runes[i])
	}
	return lookupSpecial(b.String())
}

func lookupSpecial(lw string) specialFlag {
	if lw == "rem" {
		return flagRem | flagShellWordBreaks
	}
	if basicWordBreakCommands[lw] {
		return flagBasicWordBreaks
	}
	if shellWordBreakCommands[lw] {
		return flagShellWordBreaks
	}
	return flagNone
}

// delimsForWord picks the active delimiter set for a command's words, per
// spec §4.1: basic-word-break commands get the narrow "@ \t=;,(" set (fewer
// break points — special characters become part of the input);
// shell-word-break commands get "@ \t=;,(/"; everything else gets the full
// word-delimiter set.
func delimsForWord(flag specialFlag) string {
	switch {
	case flag&flagBasicWordBreaks != 0:
		return nameDelimiters
	case flag&flagShellWordBreaks != 0:
		return commandDelimiters
	default:
		return wordDelimiters
	}
}

func isDelim(set string, c byte) bool {
	return strings.IndexByte(set, c) >= 0
}
