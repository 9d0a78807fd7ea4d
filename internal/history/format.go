package history

import (
	"fmt"
	"strconv"
	"strings"
)

const timestampPrefix = "|\ttime="

// timestampLine renders a metadata line that precedes the entry it
// describes.
func timestampLine(unixSeconds int64) string {
	return fmt.Sprintf("%s%d", timestampPrefix, unixSeconds)
}

// parseTimestampLine extracts the unix-seconds value from a metadata line
// produced by timestampLine, or (0, false) if line isn't one.
func parseTimestampLine(line string) (int64, bool) {
	if !strings.HasPrefix(line, timestampPrefix) {
		return 0, false
	}
	v, err := strconv.ParseInt(line[len(timestampPrefix):], 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// isDeletedLine reports whether line is a soft-deleted entry: it starts
// with the delete marker byte but is neither the tag line nor a
// timestamp metadata line.
func isDeletedLine(line string) bool {
	return strings.HasPrefix(line, "|") && !IsTagLine(line) && !strings.HasPrefix(line, timestampPrefix)
}

// softDeleteMarker overwrites a line's first byte, in place, with '|'. It
// must be exactly one byte wide so no other offset in the file shifts.
const softDeleteMarker = '|'

// splitLines splits raw file content on '\n', dropping a single trailing
// empty element caused by a final newline (every stored line ends in
// exactly one '\n').
func splitLines(content []byte) []string {
	s := string(content)
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
