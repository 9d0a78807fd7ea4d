package history

import (
	"strconv"
	"strings"
)

// Expand resolves "!"-style history designators against this DB's
// entries: "!!" repeats the last entry, "!n" / "!-n" select by absolute
// or relative index, and "!prefix" selects the most recent entry
// starting with prefix. It reports whether the line changed, and a
// status mirroring the product's own expand/display-reedit/error outcome
// set; the designator grammar itself is a small, self-contained subset
// rather than a full shell-history-expansion implementation.
func (db *DB) Expand(line string) (string, ExpandStatus, error) {
	if !strings.Contains(line, "!") {
		return line, ExpandUnchanged, nil
	}

	entries, err := db.Iterate()
	if err != nil {
		return line, ExpandError, err
	}

	var b strings.Builder
	i := 0
	changed := false
	for i < len(line) {
		c := line[i]
		if c != '!' || i+1 >= len(line) {
			b.WriteByte(c)
			i++
			continue
		}
		rest := line[i+1:]
		text, n, ok := resolveDesignator(rest, entries)
		if !ok {
			b.WriteByte(c)
			i++
			continue
		}
		b.WriteString(text)
		i += 1 + n
		changed = true
	}

	if !changed {
		return line, ExpandUnchanged, nil
	}
	return b.String(), ExpandExpanded, nil
}

// resolveDesignator parses one designator at the start of rest (the text
// immediately following '!') and returns the entry text it names, how
// many bytes of rest it consumed, and whether a designator was found at
// all.
func resolveDesignator(rest string, entries []Entry) (text string, consumed int, ok bool) {
	if len(entries) == 0 {
		return "", 0, false
	}

	if strings.HasPrefix(rest, "!") {
		return entries[len(entries)-1].Text, 1, true
	}

	if len(rest) > 0 && (rest[0] == '-' || (rest[0] >= '0' && rest[0] <= '9')) {
		j := 0
		if rest[0] == '-' {
			j = 1
		}
		for j < len(rest) && rest[j] >= '0' && rest[j] <= '9' {
			j++
		}
		if j == 0 || (j == 1 && rest[0] == '-') {
			return "", 0, false
		}
		n, err := strconv.Atoi(rest[:j])
		if err != nil {
			return "", 0, false
		}
		var idx int
		if n < 0 {
			idx = len(entries) + n
		} else {
			idx = n - 1
		}
		if idx < 0 || idx >= len(entries) {
			return "", 0, false
		}
		return entries[idx].Text, j, true
	}

	j := 0
	for j < len(rest) && rest[j] != ' ' && rest[j] != '\t' && rest[j] != '!' {
		j++
	}
	prefix := rest[:j]
	if prefix == "" {
		return "", 0, false
	}
	for i := len(entries) - 1; i >= 0; i-- {
		if strings.HasPrefix(entries[i].Text, prefix) {
			return entries[i].Text, j, true
		}
	}
	return "", 0, false
}
