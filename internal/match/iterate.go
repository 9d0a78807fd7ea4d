package match

// Iterator walks a finished, sorted match list, exposing the shadow
// booleans the display engine and suggestion engine consult without
// rescanning the whole list themselves.
type Iterator struct {
	matches []Match
	pos     int

	anyPathLike bool
	allPathLike bool
}

// NewIterator wraps matches for iteration, precomputing the path-like
// shadow booleans once up front.
func NewIterator(matches []Match) *Iterator {
	it := &Iterator{matches: matches, allPathLike: len(matches) > 0}
	for _, m := range matches {
		if m.Type.IsPathLike() {
			it.anyPathLike = true
		} else {
			it.allPathLike = false
		}
	}
	return it
}

// Len reports the total number of matches.
func (it *Iterator) Len() int { return len(it.matches) }

// AnyPathLike reports whether at least one match is a file or directory.
func (it *Iterator) AnyPathLike() bool { return it.anyPathLike }

// AllPathLike reports whether every match (and there is at least one) is a
// file or directory.
func (it *Iterator) AllPathLike() bool { return it.allPathLike }

// Next returns the next match and advances the cursor, or (Match{}, false)
// once exhausted.
func (it *Iterator) Next() (Match, bool) {
	if it.pos >= len(it.matches) {
		return Match{}, false
	}
	m := it.matches[it.pos]
	it.pos++
	return m, true
}

// Reset rewinds the cursor to the start without recomputing the shadow
// booleans.
func (it *Iterator) Reset() { it.pos = 0 }

// At returns the match at index i without moving the cursor.
func (it *Iterator) At(i int) Match { return it.matches[i] }
