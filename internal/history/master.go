package history

import (
	"fmt"
	"os"
)

// Master wraps the shared master history file: its concurrency tag, its
// whole-file lock, and the read/append/soft-delete operations every other
// part of the package builds on.
type Master struct {
	path string
	lock fileLock
	tag  string
}

// OpenMaster opens (creating if necessary) the master file at path. A
// freshly created file gets a new concurrency tag as its first line; an
// existing file's tag is read back under the same exclusive lock.
func OpenMaster(path string) (*Master, error) {
	lock, err := openFileLock(path)
	if err != nil {
		return nil, fmt.Errorf("history: open master %s: %w", path, err)
	}
	m := &Master{path: path, lock: lock}

	if err := lock.LockExclusive(); err != nil {
		lock.Close()
		return nil, fmt.Errorf("history: lock master %s: %w", path, err)
	}
	defer lock.Unlock()

	info, err := lock.File().Stat()
	if err != nil {
		lock.Close()
		return nil, err
	}
	if info.Size() == 0 {
		m.tag = NewTag()
		if _, err := lock.File().WriteString(m.tag + "\n"); err != nil {
			lock.Close()
			return nil, fmt.Errorf("history: write master tag: %w", err)
		}
		return m, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		lock.Close()
		return nil, err
	}
	lines := splitLines(content)
	if len(lines) == 0 || !IsTagLine(lines[0]) {
		lock.Close()
		return nil, fmt.Errorf("history: master %s has no concurrency tag", path)
	}
	m.tag = lines[0]
	return m, nil
}

// Path returns the master file's path.
func (m *Master) Path() string { return m.path }

// Tag returns the master's current concurrency tag.
func (m *Master) Tag() string { return m.tag }

func (m *Master) LockExclusive() error { return m.lock.LockExclusive() }
func (m *Master) LockShared() error    { return m.lock.LockShared() }
func (m *Master) Unlock() error        { return m.lock.Unlock() }
func (m *Master) Close() error         { return m.lock.Close() }

// rawLine is one physical line of the master file with its byte offset
// (the position right after the previous line's '\n', i.e. where this
// line's own bytes begin).
type rawLine struct {
	offset int
	text   string
}

// readRaw reads every line of the master file along with its byte offset.
// Caller must hold at least a shared lock.
func (m *Master) readRaw() ([]rawLine, error) {
	content, err := os.ReadFile(m.path)
	if err != nil {
		return nil, err
	}
	lines := splitLines(content)
	out := make([]rawLine, 0, len(lines))
	offset := 0
	for _, l := range lines {
		out = append(out, rawLine{offset: offset, text: l})
		offset += len(l) + 1 // +1 for the '\n'
	}
	return out, nil
}

// ReadEntries walks the master file (skipping the tag line), attaching
// timestamp metadata lines to the entry they precede, marking entries
// whose first byte is the delete marker as Deleted, and marking entries
// whose offset appears in removals as Deleted too (a session-scoped
// deferred delete that hasn't been compacted away yet).
func (m *Master) ReadEntries(removals map[int]bool) ([]Entry, error) {
	raw, err := m.readRaw()
	if err != nil {
		return nil, err
	}

	var entries []Entry
	var pendingTS int64
	haveTS := false

	for i, rl := range raw {
		if i == 0 {
			continue // tag line
		}
		if ts, ok := parseTimestampLine(rl.text); ok {
			pendingTS, haveTS = ts, true
			continue
		}
		deleted := isDeletedLine(rl.text) || removals[rl.offset]
		text := rl.text
		ts := int64(0)
		if haveTS {
			ts = pendingTS
		}
		entries = append(entries, Entry{
			ID:        NewLineID(BankMaster, rl.offset, !deleted),
			Text:      text,
			Timestamp: ts,
			Deleted:   deleted,
		})
		haveTS = false
	}
	return entries, nil
}

// Append writes lines to the end of the master file, each followed by a
// single '\n'. Caller must hold the exclusive lock.
func (m *Master) Append(lines ...string) error {
	f, err := os.OpenFile(m.path, os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	for _, l := range lines {
		if _, err := f.WriteString(l + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// SoftDeleteAt overwrites the single byte at offset with the delete
// marker, turning a live entry into a deleted one without moving any
// other line's offset. Caller must hold the exclusive lock.
func (m *Master) SoftDeleteAt(offset int) error {
	f, err := os.OpenFile(m.path, os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteAt([]byte{softDeleteMarker}, int64(offset)); err != nil {
		return err
	}
	return nil
}
