//go:build !windows

package history

import (
	"os"

	"golang.org/x/sys/unix"
)

type unixLock struct {
	f *os.File
}

func openFileLock(path string) (fileLock, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}
	return &unixLock{f: f}, nil
}

func (l *unixLock) LockShared() error    { return unix.Flock(int(l.f.Fd()), unix.LOCK_SH) }
func (l *unixLock) LockExclusive() error { return unix.Flock(int(l.f.Fd()), unix.LOCK_EX) }
func (l *unixLock) Unlock() error        { return unix.Flock(int(l.f.Fd()), unix.LOCK_UN) }
func (l *unixLock) Close() error         { return l.f.Close() }
func (l *unixLock) File() *os.File       { return l.f }

// createAlive opens path exclusively, so two sessions never collide on the
// same alive-file name; closeAlive removes it. POSIX has no delete-on-close
// primitive, so a process that is killed (not merely exits) leaves its
// alive file behind, and since reaping treats an existing alive file as a
// live session, that session is not reaped while the file remains.
func createAlive(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
}

func closeAlive(f *os.File, path string) error {
	err := f.Close()
	_ = os.Remove(path)
	return err
}
