package tokenize

// Tokenizer turns one command's body into classified words. It consults two
// optional collaborators: an AliasResolver (doskey alias lookup) and an
// ArgMatcherLookup (to suppress the -flag:value colon-split heuristic for
// commands whose registered matcher is deprecated).
type Tokenizer struct {
	Quote      byte // opening==closing quote byte; 0 means '"'
	Alias      AliasResolver
	ArgMatcher ArgMatcherLookup
}

func (t *Tokenizer) quote() byte {
	if t.Quote == 0 {
		return '"'
	}
	return t.Quote
}

// Words splits the command body buf[cmd.Offset : cmd.Offset+cmd.Length]
// (buf is the full input line; cmd identifies one command span within it)
// into words.
func (t *Tokenizer) Words(buf []byte, cmd Command) []Word {
	start, end := cmd.Offset, cmd.Offset+cmd.Length
	q := t.quote()
	var words []Word

	i := start
	first := true
	haveCommandWord := false
	var flag specialFlag
	var commandWordText string
	colonSplitSuppressed := false
	prevWasRedirOp := false

	for i < end {
		delims := wordDelimiters
		if haveCommandWord {
			delims = delimsForWord(flag)
		}
		var delim byte
		for i < end && isDelim(delims, buf[i]) {
			delim = buf[i]
			i++
		}
		if i >= end {
			break
		}

		if first && cmd.AliasAllowed && t.Alias != nil {
			tokLen := scanToSpace(buf, i, end)
			name := string(buf[i : i+tokLen])
			if name != "" && t.Alias.HasAlias(name) {
				words = append(words, Word{
					Offset: i, Length: tokLen, IsAlias: true,
					CommandWord: true, Delim: delim,
				})
				i += tokLen
				for i < end && isSpaceByte(buf[i]) {
					i++
				}
				first = false
				haveCommandWord = true
				commandWordText = name
				flag = classifySpecialCommand(commandWordText)
				colonSplitSuppressed = argMatcherDeprecated(t, commandWordText)
				continue
			}
		}

		if haveCommandWord && flag&flagRem != 0 {
			wend := end
			for wend > i && isSpaceByte(buf[wend-1]) {
				wend--
			}
			if wend > i {
				words = append(words, Word{Offset: i, Length: wend - i, Delim: delim})
			}
			break
		}

		isCommandWord := first
		w, next := t.scanWord(buf, i, end, q, isCommandWord, haveCommandWord, flag)
		w.Delim = delim

		isRedirOp := w.Length > 0 && redirSpan(buf, w.Offset) == w.Length
		if isRedirOp {
			w.IsRedirArg = false
		} else if prevWasRedirOp {
			w.IsRedirArg = true
		}

		if !w.IsRedirArg && !isRedirOp && !w.Quoted && w.Length > 0 && !colonSplitSuppressed {
			w, next = applyFlagColonSplit(buf, w, next, end, &words)
		}

		words = append(words, w)
		i = next
		prevWasRedirOp = isRedirOp

		if isCommandWord && !isRedirOp {
			haveCommandWord = true
			commandWordText = string(buf[w.Offset:w.End()])
			flag = classifySpecialCommand(commandWordText)
			colonSplitSuppressed = argMatcherDeprecated(t, commandWordText)
		}
		if !isRedirOp {
			first = false
		}
	}
	return words
}

func argMatcherDeprecated(t *Tokenizer, commandWord string) bool {
	if t == nil || t.ArgMatcher == nil {
		return false
	}
	m, ok := t.ArgMatcher.Lookup(commandWord)
	return ok && m.Deprecated()
}

func scanToSpace(buf []byte, i, end int) int {
	j := i
	for j < end && !isSpaceByte(buf[j]) {
		j++
	}
	return j - i
}

// scanWord scans one word starting at i (i < end, buf[i] is not a
// delimiter), returning the classified Word and the index just past it.
func (t *Tokenizer) scanWord(buf []byte, i, end int, q byte, commandWord, haveCommandWord bool, flag specialFlag) (Word, int) {
	start := i

	if rl := redirSpan(buf, i); rl > 0 {
		return Word{Offset: start, Length: rl}, i + rl
	}

	quoted := false
	delims := wordDelimiters
	if haveCommandWord || commandWord {
		delims = delimsForWord(flag)
	}

	for i < end {
		c := buf[i]
		if c == q {
			quoted = true
			i = scanQuoteRun(buf, i, q, q)
			continue
		}
		if c == '^' && i+1 < end {
			i += 2
			continue
		}
		if c == '/' && commandWord && i > start && hasByte(delims, '/') {
			break
		}
		if isDelim(delims, c) || isSpaceByte(c) {
			break
		}
		if i > start {
			if rl := redirSpan(buf, i); rl > 0 {
				break
			}
		}
		i++
	}

	length := i - start
	if quoted && buf[start] == q {
		// Quotes bounding the word are not part of its span; an
		// unterminated quote leaves the span running to end of input.
		start++
		length--
		if length > 0 && buf[start+length-1] == q {
			length--
		}
	}
	w := Word{Offset: start, Length: length, Quoted: quoted, CommandWord: commandWord}
	return w, i
}

// applyFlagColonSplit implements the "-flag:value" heuristic: for an
// unquoted word starting with '-' or '/', the first ':' splits the word
// into two (the colon becomes the second fragment's delimiter). For every
// word passed in, split or not, a run of '=' immediately following the
// resulting word is folded back into it rather than starting a new word. Returns the (possibly shortened) first
// fragment and the index to resume scanning from; if a second fragment was
// produced it has already been appended to words.
func applyFlagColonSplit(buf []byte, w Word, next, end int, words *[]Word) (Word, int) {
	c0 := buf[w.Offset]
	if c0 != '-' && c0 != '/' {
		return absorbEquals(buf, w, next, end)
	}
	colon := indexByte(buf, w.Offset, w.End(), ':')
	if colon < 0 {
		return absorbEquals(buf, w, next, end)
	}
	first := w
	first.Length = colon - w.Offset
	rest := Word{
		Offset:      colon + 1,
		Length:      w.End() - (colon + 1),
		CommandWord: w.CommandWord,
		Delim:       ':',
	}
	*words = append(*words, first)
	rest, next = absorbEquals(buf, rest, next, end)
	return rest, next
}

// absorbEquals folds a run of '=' immediately following w (up to end) into
// w's length.
func absorbEquals(buf []byte, w Word, next, end int) (Word, int) {
	j := w.End()
	if j != next {
		return w, next
	}
	for j < end && buf[j] == '=' {
		j++
	}
	w.Length = j - w.Offset
	return w, j
}

func hasByte(s string, c byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return true
		}
	}
	return false
}

func indexByte(buf []byte, start, end int, c byte) int {
	for i := start; i < end; i++ {
		if buf[i] == c {
			return i
		}
	}
	return -1
}
