package history

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Options configures a DB's Add/compaction behavior; it mirrors the
// history-related fields of the settings registry so callers can just
// forward their loaded config.
type Options struct {
	IgnoreLeadingSpace bool
	DupeMode           DupeMode
	Timestamp          bool
	MaxLines           int // triggers compaction (truncate) once exceeded, 0 = unlimited
	CompactThreshold   int // deleted-count threshold that forces a compaction pass
}

// DB is the history database for one master file: it owns the master
// bank, this process's session bank, and the reap/compaction bookkeeping
// that keeps them consistent with sibling processes.
type DB struct {
	master  *Master
	session *Session
	dir     string
	opts    Options

	deletedSinceCompact int
}

// Open opens (or creates) the master bank at masterPath, reaps any
// abandoned sibling sessions found beside it, and starts a fresh session
// bank for this process.
func Open(masterPath string, opts Options) (*DB, error) {
	master, err := OpenMaster(masterPath)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(masterPath)

	if err := Reap(dir, master, ""); err != nil {
		master.Close()
		return nil, err
	}

	session, err := NewSession(dir, master.Tag())
	if err != nil {
		master.Close()
		return nil, err
	}

	return &DB{master: master, session: session, dir: dir, opts: opts}, nil
}

// Close reaps any other abandoned sessions one more time (the shutdown
// half of the reap protocol), then releases this session's own alive
// file and locks — merging this session's own lines is left to whichever
// process next reaps it, by design.
func (db *DB) Close() error {
	_ = Reap(db.dir, db.master, db.session.ID())
	sErr := db.session.Close()
	mErr := db.master.Close()
	if sErr != nil {
		return sErr
	}
	return mErr
}

// Add records a new history entry in this process's session, honoring
// leading-space suppression, the configured dedup mode, and optional
// timestamping. A line containing the reserved byte 0x01 is rejected with
// an error and not stored.
func (db *DB) Add(line string) error {
	if strings.ContainsRune(line, '\x01') {
		return fmt.Errorf("history: entry contains reserved byte 0x01")
	}
	if db.opts.IgnoreLeadingSpace && strings.HasPrefix(line, " ") {
		return nil
	}

	switch db.opts.DupeMode {
	case DupeIgnore:
		if exists, err := db.anyOccurrence(line); err != nil {
			return err
		} else if exists {
			return nil
		}
	case DupeErasePrev:
		if err := db.eraseOccurrences(line); err != nil {
			return err
		}
	}

	if err := db.appendLine(line); err != nil {
		return err
	}
	return db.maybeCompact()
}

// appendLine writes (optionally timestamped) line to this session's
// lines file under its own lock scope.
func (db *DB) appendLine(line string) error {
	if err := db.session.LockLinesExclusive(); err != nil {
		return err
	}
	defer db.session.UnlockLines()

	if db.opts.Timestamp {
		if err := db.session.AppendLine(timestampLine(time.Now().Unix())); err != nil {
			return err
		}
	}
	return db.session.AppendLine(line)
}

// anyOccurrence reports whether line already exists, live, anywhere in
// master or this session.
func (db *DB) anyOccurrence(line string) (bool, error) {
	entries, err := db.Iterate()
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if e.Text == line {
			return true, nil
		}
	}
	return false, nil
}

// eraseOccurrences soft-deletes every live occurrence of line in both
// banks.
func (db *DB) eraseOccurrences(line string) error {
	entries, err := db.Iterate()
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.Text == line {
			if err := db.Remove(e.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

// Remove soft-deletes the entry identified by id. Master removals are
// deferred (recorded in this session's removals file) unless id belongs
// to this session's own lines, in which case it is struck directly.
func (db *DB) Remove(id LineID) error {
	switch id.Bank() {
	case BankSession:
		if err := db.session.LockLinesExclusive(); err != nil {
			return err
		}
		defer db.session.UnlockLines()
		return db.session.MarkDeleted(id.Offset())
	case BankMaster:
		if err := db.session.LockRemovalsExclusive(); err != nil {
			return err
		}
		defer db.session.UnlockRemovals()
		if err := db.session.RecordRemoval(id.Offset()); err != nil {
			return err
		}
		db.deletedSinceCompact++
		return db.maybeCompact()
	default:
		return fmt.Errorf("history: unknown bank in %v", id)
	}
}

// RemoveDirect soft-deletes a master entry immediately rather than
// deferring through the removals file. Nothing in this package calls it;
// compaction rewrites the master file instead.
func (db *DB) RemoveDirect(offset int) error {
	if err := db.master.LockExclusive(); err != nil {
		return err
	}
	defer db.master.Unlock()
	return db.master.SoftDeleteAt(offset)
}

// Iterate returns every live entry across master and this session, in
// file order (master first, then this session's unmerged lines),
// honoring both banks' own soft-delete markers and this session's
// deferred master removals.
func (db *DB) Iterate() ([]Entry, error) {
	if err := db.master.LockShared(); err != nil {
		return nil, err
	}
	defer db.master.Unlock()

	removals := map[int]bool{}
	if err := db.session.LockRemovalsShared(); err == nil {
		if tag, offsets, rerr := db.session.ReadRemovals(); rerr == nil && tag == db.master.Tag() {
			for _, off := range offsets {
				removals[off] = true
			}
		}
		db.session.UnlockRemovals()
	}

	masterEntries, err := db.master.ReadEntries(removals)
	if err != nil {
		return nil, err
	}

	if err := db.session.LockLinesShared(); err != nil {
		return nil, err
	}
	sessionEntries, err := db.session.ReadEntries()
	db.session.UnlockLines()
	if err != nil {
		return nil, err
	}

	all := make([]Entry, 0, len(masterEntries)+len(sessionEntries))
	for _, e := range masterEntries {
		if !e.Deleted {
			all = append(all, e)
		}
	}
	for _, e := range sessionEntries {
		if !e.Deleted {
			all = append(all, e)
		}
	}
	return all, nil
}

// Last returns the most recent live entry's text across both banks, or
// ("", false) if history is empty.
func (db *DB) Last() (string, bool) {
	entries, err := db.Iterate()
	if err != nil || len(entries) == 0 {
		return "", false
	}
	return entries[len(entries)-1].Text, true
}

// maybeCompact triggers a compaction of the master bank once the
// deferred-delete count or line count crosses the configured thresholds.
func (db *DB) maybeCompact() error {
	force := db.opts.CompactThreshold > 0 && db.deletedSinceCompact >= db.opts.CompactThreshold
	entries, err := db.Iterate()
	if err != nil {
		return err
	}
	over := db.opts.MaxLines > 0 && len(entries) > db.opts.MaxLines
	if !force && !over {
		return nil
	}
	db.deletedSinceCompact = 0
	return db.master.Compact(CompactOptions{
		SessionDir: db.dir,
		MaxEntries: db.opts.MaxLines,
	})
}

// Search returns live entries (most recent first) whose text contains
// substr.
func (db *DB) Search(substr string) ([]Entry, error) {
	entries, err := db.Iterate()
	if err != nil {
		return nil, err
	}
	var out []Entry
	for i := len(entries) - 1; i >= 0; i-- {
		if strings.Contains(entries[i].Text, substr) {
			out = append(out, entries[i])
		}
	}
	return out, nil
}
