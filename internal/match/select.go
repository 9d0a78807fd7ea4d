package match

import (
	"os"
	"strings"
)

// CaseMode controls how Select compares a candidate's text against needle.
type CaseMode int

const (
	CaseExact CaseMode = iota
	CaseCaseless
	CaseRelaxed // caseless, and '-' and '_' compare equal
)

// Select returns the subset of candidates whose text has needle as a
// prefix under mode. If the prefix pass finds nothing and substring is
// true, it retries as a substring match — equivalent to rewriting needle as
// "<prefix>*<rest>" and keeping any candidate containing needle anywhere.
func Select(candidates []Match, needle string, mode CaseMode, substring bool) []Match {
	out := filterPrefix(candidates, needle, mode)
	if len(out) == 0 && substring && needle != "" {
		out = filterSubstring(candidates, needle, mode)
	}
	return out
}

// Select filters s's own matches against needle, the Set-bound form of the
// package-level Select function.
func (s *Set) Select(needle string, mode CaseMode, substring bool) []Match {
	return Select(s.All(), needle, mode, substring)
}

func filterPrefix(candidates []Match, needle string, mode CaseMode) []Match {
	var out []Match
	for _, m := range candidates {
		if hasPrefixFold(m.Text, needle, mode) {
			out = append(out, m)
		}
	}
	return out
}

func filterSubstring(candidates []Match, needle string, mode CaseMode) []Match {
	var out []Match
	nf := foldKey(needle, mode)
	for _, m := range candidates {
		if strings.Contains(foldKey(m.Text, mode), nf) {
			out = append(out, m)
		}
	}
	return out
}

func hasPrefixFold(s, prefix string, mode CaseMode) bool {
	if len(prefix) > len(s) {
		return false
	}
	return foldKey(s[:len(prefix)], mode) == foldKey(prefix, mode)
}

// foldKey normalizes s for comparison under mode. CaseRelaxed additionally
// folds '-' and '_' to the same character, leaving everything else as a
// literal rule (no wider Unicode case folding is attempted).
func foldKey(s string, mode CaseMode) string {
	switch mode {
	case CaseExact:
		return s
	case CaseCaseless:
		return strings.ToLower(s)
	case CaseRelaxed:
		lower := strings.ToLower(s)
		return strings.Map(func(r rune) rune {
			if r == '_' {
				return '-'
			}
			return r
		}, lower)
	default:
		return s
	}
}

// PromoteFSType fills in TypeFile/TypeDir (plus the link/hidden/system/
// readonly Attrs bits) for any TypeNone match by statting dir/text on disk,
// discarding the promotion (leaving TypeNone) if the stat fails or collides
// with an already-typed match of the same text.
func PromoteFSType(candidates []Match, dir string) []Match {
	seen := make(map[string]bool, len(candidates))
	for _, m := range candidates {
		if m.Type != TypeNone {
			seen[m.Text] = true
		}
	}
	out := make([]Match, len(candidates))
	copy(out, candidates)
	for i, m := range out {
		if m.Type != TypeNone || seen[m.Text] {
			continue
		}
		path := joinPath(dir, m.Text)
		info, err := os.Lstat(path)
		if err != nil {
			continue
		}
		if info.IsDir() {
			out[i].Type = TypeDir
		} else {
			out[i].Type = TypeFile
		}
		out[i].Attrs = platformAttrs(path)
	}
	return out
}

func joinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	if strings.HasSuffix(dir, "/") || strings.HasSuffix(dir, "\\") {
		return dir + name
	}
	return dir + string(os.PathSeparator) + name
}
