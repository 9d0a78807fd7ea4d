package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

var sessionSerial uint64

// Session wraps one process's session bank: the lines file holding
// entries not yet merged into master, the removals file recording
// deferred deletes of master offsets, and the self-deleting alive file
// that signals this session is still running.
type Session struct {
	id           string
	dir          string
	linesPath    string
	removalsPath string
	alivePath    string

	linesLock     fileLock
	removalsLock  fileLock
	aliveFile     *os.File
}

// NewSession creates a fresh session bank in dir, tagged against
// masterTag so its removals file can later be validated against whichever
// master incarnation it was collected against.
func NewSession(dir, masterTag string) (*Session, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	var alive *os.File
	var id, linesPath, alivePath string
	for attempt := 0; attempt < 8; attempt++ {
		id = fmt.Sprintf("%d_%d_%d", os.Getpid(), time.Now().UnixNano(), atomic.AddUint64(&sessionSerial, 1))
		linesPath = filepath.Join(dir, sessionFilePrefix+id+sessionFileSuffix)
		alivePath = linesPath + aliveFileSuffix // a "~"-suffixed sibling of the session file
		f, err := createAlive(alivePath)
		if err == nil {
			alive = f
			break
		}
	}
	if alive == nil {
		return nil, fmt.Errorf("history: could not create a unique session alive file in %s", dir)
	}

	s := &Session{
		id:           id,
		dir:          dir,
		linesPath:    linesPath,
		removalsPath: filepath.Join(dir, sessionFilePrefix+id+removalsFileSuffix),
		alivePath:    alivePath,
		aliveFile:    alive,
	}

	linesLock, err := openFileLock(s.linesPath)
	if err != nil {
		s.cleanupFailedInit()
		return nil, err
	}
	s.linesLock = linesLock

	removalsLock, err := openFileLock(s.removalsPath)
	if err != nil {
		s.cleanupFailedInit()
		return nil, err
	}
	s.removalsLock = removalsLock

	if err := s.removalsLock.LockExclusive(); err != nil {
		s.cleanupFailedInit()
		return nil, err
	}
	defer s.removalsLock.Unlock()
	if info, err := s.removalsLock.File().Stat(); err == nil && info.Size() == 0 {
		if _, err := s.removalsLock.File().WriteString(masterTag + "\n"); err != nil {
			s.cleanupFailedInit()
			return nil, err
		}
	}

	return s, nil
}

func (s *Session) cleanupFailedInit() {
	if s.linesLock != nil {
		s.linesLock.Close()
	}
	if s.removalsLock != nil {
		s.removalsLock.Close()
	}
	if s.aliveFile != nil {
		closeAlive(s.aliveFile, s.alivePath)
	}
}

// ID returns this session's unique suffix (used to build its file names).
func (s *Session) ID() string { return s.id }

func (s *Session) LinesPath() string    { return s.linesPath }
func (s *Session) RemovalsPath() string { return s.removalsPath }

func (s *Session) LockLinesExclusive() error { return s.linesLock.LockExclusive() }
func (s *Session) LockLinesShared() error    { return s.linesLock.LockShared() }
func (s *Session) UnlockLines() error        { return s.linesLock.Unlock() }

func (s *Session) LockRemovalsExclusive() error { return s.removalsLock.LockExclusive() }
func (s *Session) LockRemovalsShared() error    { return s.removalsLock.LockShared() }
func (s *Session) UnlockRemovals() error        { return s.removalsLock.Unlock() }

// AppendLine adds a live line to the session's lines file. Caller must
// hold the lines exclusive lock.
func (s *Session) AppendLine(text string) error {
	f, err := os.OpenFile(s.linesPath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(text + "\n")
	return err
}

// ReadEntries parses the session's own lines, unlike the master file a
// session file carries no tag line, so offsets start at zero.
func (s *Session) ReadEntries() ([]Entry, error) {
	content, err := os.ReadFile(s.linesPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	lines := splitLines(content)
	entries := make([]Entry, 0, len(lines))
	offset := 0
	var pendingTS int64
	haveTS := false
	for _, l := range lines {
		if ts, ok := parseTimestampLine(l); ok {
			pendingTS, haveTS = ts, true
			offset += len(l) + 1
			continue
		}
		deleted := isDeletedLine(l)
		ts := int64(0)
		if haveTS {
			ts = pendingTS
		}
		entries = append(entries, Entry{
			ID:        NewLineID(BankSession, offset, !deleted),
			Text:      l,
			Timestamp: ts,
			Deleted:   deleted,
		})
		haveTS = false
		offset += len(l) + 1
	}
	return entries, nil
}

// MarkDeleted soft-deletes the session-local line at offset. Caller must
// hold the lines exclusive lock.
func (s *Session) MarkDeleted(offset int) error {
	f, err := os.OpenFile(s.linesPath, os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteAt([]byte{softDeleteMarker}, int64(offset))
	return err
}

// RecordRemoval appends masterOffset as a deferred delete of a master
// entry. Caller must hold the removals exclusive lock.
func (s *Session) RecordRemoval(masterOffset int) error {
	f, err := os.OpenFile(s.removalsPath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = fmt.Fprintf(f, "%d\n", masterOffset)
	return err
}

// ReadRemovals returns the removals file's header tag and the list of
// master offsets it names. Caller must hold at least a shared lock.
func (s *Session) ReadRemovals() (tag string, offsets []int, err error) {
	content, err := os.ReadFile(s.removalsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, nil
		}
		return "", nil, err
	}
	lines := splitLines(content)
	if len(lines) == 0 {
		return "", nil, nil
	}
	tag = lines[0]
	for _, l := range lines[1:] {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		off, convErr := strconv.Atoi(l)
		if convErr != nil {
			continue
		}
		offsets = append(offsets, off)
	}
	return tag, offsets, nil
}

// rewriteRemovals replaces the removals file's header with newTag and its
// offsets with kept, remapped values. Caller must hold the removals
// exclusive lock.
func (s *Session) rewriteRemovals(newTag string, offsets []int) error {
	var b strings.Builder
	b.WriteString(newTag)
	b.WriteByte('\n')
	for _, off := range offsets {
		fmt.Fprintf(&b, "%d\n", off)
	}
	return atomicWriteFile(s.removalsPath, []byte(b.String()))
}

// sessionAlive reports whether the alive file at alivePath still exists —
// used by other sessions (never by the owning session itself) to decide
// whether that session has been abandoned.
func sessionAlive(alivePath string) bool {
	_, err := os.Stat(alivePath)
	return err == nil
}

// Close releases this session's locks and closes its alive file, which on
// Windows deletes it immediately; on other platforms the file is removed
// best-effort right away, since there is no delete-on-close primitive
// there for the crash case closeAlive can't help with anyway.
func (s *Session) Close() error {
	var firstErr error
	if err := closeAlive(s.aliveFile, s.alivePath); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := s.linesLock.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := s.removalsLock.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// DeleteFiles removes this session's lines and removals files. Reaping
// removes a reaped session's files itself and does not call this.
func (s *Session) DeleteFiles() error {
	var firstErr error
	if err := os.Remove(s.linesPath); err != nil && !os.IsNotExist(err) && firstErr == nil {
		firstErr = err
	}
	if err := os.Remove(s.removalsPath); err != nil && !os.IsNotExist(err) && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
