package history

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	sessionFileSuffix  = ".session"
	removalsFileSuffix = ".removals"
	// aliveFileSuffix names the zero-byte, delete-on-close liveness file
	// as a "~"-suffixed sibling of the full session file name, per the
	// on-disk format.
	aliveFileSuffix   = "~"
	sessionFilePrefix = "history_"
)

// Reap runs the reap protocol over every session file found beside
// master that isn't selfID: sessions whose alive file is gone have their
// live lines merged into master, their pending removals applied, and
// their files deleted. It is meant to be called both at session startup
// and at normal shutdown, per the package's concurrency model.
func Reap(dir string, master *Master, selfID string) error {
	ids, err := otherSessionIDs(dir, selfID)
	if err != nil {
		return err
	}
	for _, id := range ids {
		alivePath := filepath.Join(dir, sessionFilePrefix+id+sessionFileSuffix+aliveFileSuffix)
		if sessionAlive(alivePath) {
			continue
		}
		if err := reapOne(dir, master, id); err != nil {
			// A reap failure for one abandoned session (e.g. another
			// process reaped it first) should not stop the others.
			continue
		}
	}
	return nil
}

func otherSessionIDs(dir, selfID string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var ids []string
	seen := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, sessionFilePrefix) || !strings.HasSuffix(name, sessionFileSuffix) {
			continue
		}
		id := strings.TrimSuffix(strings.TrimPrefix(name, sessionFilePrefix), sessionFileSuffix)
		if id == selfID || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

// reapOne merges one abandoned session into master under the mandatory
// lock order (master, then session) and deletes the session's files.
func reapOne(dir string, master *Master, id string) error {
	linesPath := filepath.Join(dir, sessionFilePrefix+id+sessionFileSuffix)
	removalsPath := filepath.Join(dir, sessionFilePrefix+id+removalsFileSuffix)

	linesLock, err := openFileLock(linesPath)
	if err != nil {
		return err
	}
	defer linesLock.Close()
	removalsLock, err := openFileLock(removalsPath)
	if err != nil {
		return err
	}
	defer removalsLock.Close()

	if err := master.LockExclusive(); err != nil {
		return err
	}
	defer master.Unlock()

	if err := linesLock.LockExclusive(); err != nil {
		return err
	}
	defer linesLock.Unlock()
	if err := removalsLock.LockExclusive(); err != nil {
		return err
	}
	defer removalsLock.Unlock()

	sess := &Session{id: id, dir: dir, linesPath: linesPath, removalsPath: removalsPath, linesLock: linesLock, removalsLock: removalsLock}

	entries, err := sess.ReadEntries()
	if err != nil {
		return err
	}
	var live []string
	for _, e := range entries {
		if !e.Deleted {
			live = append(live, e.Text)
		}
	}
	if len(live) > 0 {
		if err := master.Append(live...); err != nil {
			return err
		}
	}

	tag, offsets, err := sess.ReadRemovals()
	if err == nil && tag == master.Tag() {
		for _, off := range offsets {
			_ = master.SoftDeleteAt(off)
		}
	}

	os.Remove(linesPath)
	os.Remove(removalsPath)
	return nil
}
