package match

import (
	"sort"
	"strings"
)

// DirPolicy controls where directories land relative to files in a sorted
// match list.
type DirPolicy int

const (
	DirWith DirPolicy = iota
	DirBefore
	DirAfter
)

// Sort orders matches by policy, with a case-insensitive secondary key,
// unless nosort is set (preserve generator/insertion order untouched).
func Sort(matches []Match, policy DirPolicy, nosort bool) {
	if nosort {
		return
	}
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if policy != DirWith {
			pa, pb := dirRank(a.Type, policy), dirRank(b.Type, policy)
			if pa != pb {
				return pa < pb
			}
		}
		return strings.ToLower(sortKey(a)) < strings.ToLower(sortKey(b))
	})
}

// Sort orders s's own matches by policy in place, using s.Nosort as the
// Set-bound form of the package-level Sort function's nosort parameter.
func (s *Set) Sort(policy DirPolicy) {
	Sort(s.matches, policy, s.Nosort)
}

func sortKey(m Match) string {
	if m.Display != "" {
		return m.Display
	}
	return m.Text
}

func dirRank(t Type, policy DirPolicy) int {
	isDir := t == TypeDir
	switch policy {
	case DirBefore:
		if isDir {
			return 0
		}
		return 1
	case DirAfter:
		if isDir {
			return 1
		}
		return 0
	default:
		return 0
	}
}
