package history

import "os"

// fileLock is a whole-file advisory lock, shared for readers and
// exclusive for writers. The two platform implementations (lock_unix.go,
// lock_windows.go) both open the file themselves so Close also closes the
// underlying handle.
type fileLock interface {
	LockShared() error
	LockExclusive() error
	Unlock() error
	Close() error
	File() *os.File
}

// openFileLock opens (creating if necessary) path and returns a fileLock
// over it. It is implemented per-OS in lock_unix.go / lock_windows.go.
