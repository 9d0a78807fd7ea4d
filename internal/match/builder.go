package match

// Build runs generators in order against word, appending into a fresh Set
// stamped with line (the full input line the set was generated from, per
// the match-set data model). A generator that returns handled=true stops
// the chain: later generators are not consulted, matching the "a more
// specific generator claims full authority over this word" contract (e.g.
// an environment-variable generator owns "%" words outright).
func Build(line, word string, generators []Generator) *Set {
	set := NewSet()
	set.InputLine = line
	for _, g := range generators {
		if g == nil {
			continue
		}
		if g.Generate(word, set) {
			break
		}
	}
	return set
}
