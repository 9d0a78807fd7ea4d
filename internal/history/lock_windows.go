//go:build windows

package history

import (
	"os"

	"golang.org/x/sys/windows"
)

type windowsLock struct {
	f *os.File
	h windows.Handle
}

func openFileLock(path string) (fileLock, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}
	return &windowsLock{f: f, h: windows.Handle(f.Fd())}, nil
}

func (l *windowsLock) LockShared() error {
	var ol windows.Overlapped
	return windows.LockFileEx(l.h, 0, 0, 1, 0, &ol)
}

func (l *windowsLock) LockExclusive() error {
	var ol windows.Overlapped
	return windows.LockFileEx(l.h, windows.LOCKFILE_EXCLUSIVE_LOCK, 0, 1, 0, &ol)
}

func (l *windowsLock) Unlock() error {
	var ol windows.Overlapped
	return windows.UnlockFileEx(l.h, 0, 1, 0, &ol)
}

func (l *windowsLock) Close() error   { return l.f.Close() }
func (l *windowsLock) File() *os.File { return l.f }

// createAlive opens path with FILE_FLAG_DELETE_ON_CLOSE so the alive file
// vanishes the instant this handle (or the whole process) goes away —
// exactly the liveness signal the reap protocol depends on, with no
// separate cleanup step required even on a hard process kill.
func createAlive(path string) (*os.File, error) {
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, err
	}
	h, err := windows.CreateFile(
		pathPtr,
		windows.GENERIC_READ|windows.GENERIC_WRITE,
		0,
		nil,
		windows.CREATE_NEW,
		windows.FILE_ATTRIBUTE_NORMAL|windows.FILE_FLAG_DELETE_ON_CLOSE,
		0,
	)
	if err != nil {
		return nil, err
	}
	return os.NewFile(uintptr(h), path), nil
}

func closeAlive(f *os.File, path string) error {
	// FILE_FLAG_DELETE_ON_CLOSE already removes path; no separate Remove.
	return f.Close()
}
