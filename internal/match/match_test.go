package match

import (
	"os"
	"testing"
)

func TestSetAddDedupesByTextAndType(t *testing.T) {
	s := NewSet()
	if !s.Add(Match{Text: "foo", Type: TypeFile}) {
		t.Fatal("first Add should succeed")
	}
	if s.Add(Match{Text: "foo", Type: TypeFile}) {
		t.Error("duplicate (text,type) Add should be rejected")
	}
	if !s.Add(Match{Text: "foo", Type: TypeDir}) {
		t.Error("same text, different type should be accepted")
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
}

func TestBuildStopsOnHandled(t *testing.T) {
	calls := 0
	first := GeneratorFunc(func(word string, set *Set) bool {
		calls++
		set.Add(Match{Text: "only", Type: TypeWord})
		return true
	})
	second := GeneratorFunc(func(word string, set *Set) bool {
		calls++
		set.Add(Match{Text: "never", Type: TypeWord})
		return false
	})
	set := Build("x", "x", []Generator{first, second})
	if calls != 1 {
		t.Fatalf("calls = %d, want 1 (second generator should not run)", calls)
	}
	if set.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", set.Len())
	}
	if set.InputLine != "x" {
		t.Errorf("InputLine = %q, want %q", set.InputLine, "x")
	}
}

func TestBuildRunsAllWhenNoneHandled(t *testing.T) {
	a := GeneratorFunc(func(word string, set *Set) bool {
		set.Add(Match{Text: "a", Type: TypeWord})
		return false
	})
	b := GeneratorFunc(func(word string, set *Set) bool {
		set.Add(Match{Text: "b", Type: TypeWord})
		return false
	})
	set := Build("x", "x", []Generator{a, b})
	if set.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", set.Len())
	}
}

func TestTranslateSlashesModes(t *testing.T) {
	cases := []struct {
		mode     SlashMode
		text     string
		original string
		want     string
	}{
		{SlashOff, "a/b\\c", "a/b", "a/b\\c"},
		{SlashForward, "a\\b\\c", "a\\b", "a/b/c"},
		{SlashBackward, "a/b/c", "a/b", "a\\b\\c"},
		{SlashSystem, "a/b/c", "a/b", "a\\b\\c"},
		{SlashAutomatic, "a\\b\\c", "a/before", "a/b/c"},
		{SlashAutomatic, "a\\b\\c", "noslash", "a\\b\\c"},
	}
	for _, c := range cases {
		got := TranslateSlashes(c.text, c.original, c.mode)
		if got != c.want {
			t.Errorf("TranslateSlashes(%q,%q,%v) = %q, want %q", c.text, c.original, c.mode, got, c.want)
		}
	}
}

func TestSelectPrefixThenSubstringFallback(t *testing.T) {
	candidates := []Match{
		{Text: "readme.txt", Type: TypeFile},
		{Text: "release.md", Type: TypeFile},
		{Text: "other.go", Type: TypeFile},
	}
	prefix := Select(candidates, "rea", CaseCaseless, true)
	if len(prefix) != 1 || prefix[0].Text != "readme.txt" {
		t.Fatalf("prefix select = %v, want [readme.txt]", prefix)
	}
	sub := Select(candidates, "lease", CaseCaseless, true)
	if len(sub) != 1 || sub[0].Text != "release.md" {
		t.Fatalf("substring select = %v, want [release.md]", sub)
	}
	none := Select(candidates, "zzz", CaseCaseless, false)
	if len(none) != 0 {
		t.Fatalf("no-substring-retry select = %v, want empty", none)
	}
}

func TestSelectRelaxedCaseFoldsDashUnderscore(t *testing.T) {
	candidates := []Match{{Text: "foo_bar", Type: TypeWord}}
	got := Select(candidates, "FOO-BAR", CaseRelaxed, false)
	if len(got) != 1 {
		t.Fatalf("relaxed select = %v, want [foo_bar]", got)
	}
	strict := Select(candidates, "FOO-BAR", CaseCaseless, false)
	if len(strict) != 0 {
		t.Fatalf("caseless (non-relaxed) select = %v, want empty (dash != underscore)", strict)
	}
}

func TestSortDirPolicy(t *testing.T) {
	matches := []Match{
		{Text: "zfile.txt", Type: TypeFile},
		{Text: "adir", Type: TypeDir},
		{Text: "bfile.txt", Type: TypeFile},
	}
	Sort(matches, DirBefore, false)
	if matches[0].Type != TypeDir {
		t.Fatalf("DirBefore: first = %+v, want the directory first", matches[0])
	}

	matches2 := []Match{
		{Text: "zfile.txt", Type: TypeFile},
		{Text: "adir", Type: TypeDir},
	}
	Sort(matches2, DirAfter, false)
	if matches2[len(matches2)-1].Type != TypeDir {
		t.Fatalf("DirAfter: last = %+v, want the directory last", matches2[len(matches2)-1])
	}
}

func TestSortNosortPreservesOrder(t *testing.T) {
	matches := []Match{
		{Text: "zzz", Type: TypeFile},
		{Text: "aaa", Type: TypeFile},
	}
	Sort(matches, DirWith, true)
	if matches[0].Text != "zzz" {
		t.Fatalf("nosort reordered: %v", matches)
	}
}

func TestIteratorPathLikeShadowBooleans(t *testing.T) {
	mixed := NewIterator([]Match{{Type: TypeFile}, {Type: TypeWord}})
	if !mixed.AnyPathLike() {
		t.Error("AnyPathLike() = false, want true")
	}
	if mixed.AllPathLike() {
		t.Error("AllPathLike() = true, want false")
	}

	allPath := NewIterator([]Match{{Type: TypeFile}, {Type: TypeDir}})
	if !allPath.AllPathLike() {
		t.Error("AllPathLike() = false, want true")
	}

	empty := NewIterator(nil)
	if empty.AllPathLike() {
		t.Error("AllPathLike() on empty set = true, want false")
	}
}

func TestNewSetDefaults(t *testing.T) {
	s := NewSet()
	if s.AppendChar != DefaultAppendChar {
		t.Errorf("AppendChar = %q, want %q", s.AppendChar, DefaultAppendChar)
	}
	if s.WordBreakPos != -1 {
		t.Errorf("WordBreakPos = %d, want -1 (no override)", s.WordBreakPos)
	}
}

func TestFilenameCompletionDesiredInferredVsExplicit(t *testing.T) {
	s := NewSet()
	s.Add(Match{Text: "x", Type: TypeWord})
	if s.FilenameCompletionDesired() {
		t.Error("FilenameCompletionDesired() = true for a word-only set, want false (inferred)")
	}

	s.Add(Match{Text: "dir", Type: TypeDir})
	if !s.FilenameCompletionDesired() {
		t.Error("FilenameCompletionDesired() = false once a path-like match is present, want true (inferred)")
	}

	s.SetFilenameCompletionDesired(false)
	if s.FilenameCompletionDesired() {
		t.Error("FilenameCompletionDesired() should honor the explicit override over the inferred value")
	}
}

func TestSetSelectAndSortUseSetState(t *testing.T) {
	s := NewSet()
	s.Add(Match{Text: "zfile.txt", Type: TypeFile})
	s.Add(Match{Text: "adir", Type: TypeDir})
	s.Nosort = true

	selected := s.Select("", CaseCaseless, false)
	s2 := NewSet()
	for _, m := range selected {
		s2.Add(m)
	}
	s2.Nosort = true
	s2.Sort(DirBefore)
	if s2.All()[0].Text != "zfile.txt" {
		t.Fatalf("Nosort should have preserved insertion order, got %v", s2.All())
	}
}

func TestPromoteFSTypePromotesNoneToFile(t *testing.T) {
	dir := t.TempDir()
	hidden := dir + string(os.PathSeparator) + ".hidden"
	if err := os.WriteFile(hidden, nil, 0644); err != nil {
		t.Fatal(err)
	}
	out := PromoteFSType([]Match{{Text: ".hidden", Type: TypeNone}}, dir)
	if out[0].Type != TypeFile {
		t.Fatalf("Type = %v, want TypeFile", out[0].Type)
	}
}

func TestIteratorNextExhausts(t *testing.T) {
	it := NewIterator([]Match{{Text: "a"}, {Text: "b"}})
	count := 0
	for {
		_, ok := it.Next()
		if !ok {
			break
		}
		count++
	}
	if count != 2 {
		t.Fatalf("iterated %d matches, want 2", count)
	}
	if _, ok := it.Next(); ok {
		t.Error("Next() after exhaustion should return ok=false")
	}
}
