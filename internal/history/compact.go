package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// CompactOptions configures one compaction pass.
type CompactOptions struct {
	// SessionDir is where sibling sessions' removals files live; every
	// removals file whose header tag matches the master's pre-compaction
	// tag is rewritten with the new tag and remapped offsets.
	SessionDir string
	// Unique keeps only the most recent occurrence of each entry's text.
	Unique bool
	// MaxEntries truncates to the newest N entries, 0 means unlimited.
	MaxEntries int
}

type compactItem struct {
	oldOffset int
	text      string
	ts        int64
}

// Compact rewrites the master file to contain only its live entries
// (optionally deduplicated and/or truncated to the newest N), issues it a
// fresh concurrency tag, and remaps every sibling removals file that was
// collected against the old tag. It takes the master's exclusive lock for
// its own duration.
func (m *Master) Compact(opts CompactOptions) error {
	if err := m.LockExclusive(); err != nil {
		return err
	}
	defer m.Unlock()

	raw, err := m.readRaw()
	if err != nil {
		return err
	}

	var items []compactItem
	var pendingTS int64
	haveTS := false
	for i, rl := range raw {
		if i == 0 {
			continue
		}
		if ts, ok := parseTimestampLine(rl.text); ok {
			pendingTS, haveTS = ts, true
			continue
		}
		if isDeletedLine(rl.text) {
			haveTS = false
			continue
		}
		ts := int64(0)
		if haveTS {
			ts = pendingTS
		}
		items = append(items, compactItem{oldOffset: rl.offset, text: rl.text, ts: ts})
		haveTS = false
	}

	if opts.Unique {
		items = uniqueKeepLast(items)
	}
	if opts.MaxEntries > 0 && len(items) > opts.MaxEntries {
		items = items[len(items)-opts.MaxEntries:]
	}

	oldTag := m.tag
	newTag := NewTag()

	var b strings.Builder
	b.WriteString(newTag)
	b.WriteByte('\n')
	oldToNew := make(map[int]int, len(items))
	for _, it := range items {
		if it.ts != 0 {
			b.WriteString(timestampLine(it.ts))
			b.WriteByte('\n')
		}
		newOffset := b.Len()
		b.WriteString(it.text)
		b.WriteByte('\n')
		oldToNew[it.oldOffset] = newOffset
	}

	if err := atomicWriteFile(m.path, []byte(b.String())); err != nil {
		return err
	}
	m.tag = newTag

	if opts.SessionDir != "" {
		remapRemovals(opts.SessionDir, oldTag, newTag, oldToNew)
	}
	return nil
}

// uniqueKeepLast keeps, for each distinct text, only its last (most
// recent) occurrence, preserving the relative order of the survivors.
func uniqueKeepLast(items []compactItem) []compactItem {
	lastIndexOf := make(map[string]int, len(items))
	for i, it := range items {
		lastIndexOf[it.text] = i
	}
	out := make([]compactItem, 0, len(items))
	for i, it := range items {
		if lastIndexOf[it.text] == i {
			out = append(out, it)
		}
	}
	return out
}

// remapRemovals rewrites every session removals file in dir whose header
// tag equals oldTag, replacing the header with newTag and dropping/
// remapping offsets through oldToNew. Removals files collected against a
// different (already-stale) tag are left untouched — they belong to a
// master incarnation that no longer exists and will be ignored by the
// reader that checks tags before applying them.
func remapRemovals(dir, oldTag, newTag string, oldToNew map[int]int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, sessionFilePrefix) || !strings.HasSuffix(name, removalsFileSuffix) {
			continue
		}
		path := filepath.Join(dir, name)
		lock, err := openFileLock(path)
		if err != nil {
			continue
		}
		func() {
			defer lock.Close()
			if lock.LockExclusive() != nil {
				return
			}
			defer lock.Unlock()

			content, err := os.ReadFile(path)
			if err != nil {
				return
			}
			lines := splitLines(content)
			if len(lines) == 0 || lines[0] != oldTag {
				return
			}
			var kept []int
			for _, l := range lines[1:] {
				l = strings.TrimSpace(l)
				if l == "" {
					continue
				}
				off, convErr := strconv.Atoi(l)
				if convErr != nil {
					continue
				}
				if newOff, ok := oldToNew[off]; ok {
					kept = append(kept, newOff)
				}
			}
			var b strings.Builder
			b.WriteString(newTag)
			b.WriteByte('\n')
			for _, off := range kept {
				fmt.Fprintf(&b, "%d\n", off)
			}
			_ = atomicWriteFile(path, []byte(b.String()))
		}()
	}
}
