package main

import (
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tinyland/lab/clinkgo/internal/match"
)

// fsGenerator is the default completion generator: it lists the directory
// implied by word (its own directory component, cwd if none) and appends a
// Match per entry, classified as TypeFile or TypeDir. Concrete generators
// are pluggable, so this is the one shipped default rather than part of
// the pipeline contract itself.
type fsGenerator struct{}

func (fsGenerator) Generate(word string, set *match.Set) bool {
	set.SetFilenameCompletionDesired(true)
	dir := filepath.Dir(word)
	if dir == "." && !strings.ContainsAny(word, `/\`) {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	prefix := ""
	if dir != "." {
		prefix = dir + string(os.PathSeparator)
	}
	for _, ent := range entries {
		typ := match.TypeFile
		if ent.IsDir() {
			typ = match.TypeDir
		}
		name := prefix + ent.Name()
		m := match.Match{Text: name, Type: typ}
		if typ == match.TypeDir {
			m.Append = string(os.PathSeparator)
		} else {
			m.Append = " "
		}
		set.Add(m)
	}
	return false
}
