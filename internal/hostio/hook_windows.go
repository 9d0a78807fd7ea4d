//go:build windows

package hostio

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// WindowsHooks installs the four hooked primitives — console read,
// console write, environment set/get, and console-title set — against
// the real kernel32 entry points. The install mode (HookIAT vs
// HookDetour) only changes how the calling process is expected to have
// gotten its console attached (AutoRun/inject load vs. a detour stub
// written into an already-running host's import table); this rewrite
// has no binary patcher of its own (no cgo, no hand-assembled detour
// stubs — nothing in the dependency pack grounds one), so both modes
// call straight through to the real kernel32 procedures from this
// process's own console handles, which is correct whenever clinkgo is
// itself the process with the console attached (the injected/autorun
// case this module targets).
type WindowsHooks struct {
	mode HookMode

	kernel32             *windows.LazyDLL
	procReadConsoleW     *windows.LazyProc
	procWriteConsoleW    *windows.LazyProc
	procSetEnvVarW       *windows.LazyProc
	procGetEnvVarW       *windows.LazyProc
	procSetConsoleTitleW *windows.LazyProc
}

// NewWindowsHooks resolves the kernel32 procedures this layer calls
// through. mode is recorded for diagnostics only, per the doc comment
// above.
func NewWindowsHooks(mode HookMode) *WindowsHooks {
	kernel32 := windows.NewLazySystemDLL("kernel32.dll")
	return &WindowsHooks{
		mode:                 mode,
		kernel32:             kernel32,
		procReadConsoleW:     kernel32.NewProc("ReadConsoleW"),
		procWriteConsoleW:    kernel32.NewProc("WriteConsoleW"),
		procSetEnvVarW:       kernel32.NewProc("SetEnvironmentVariableW"),
		procGetEnvVarW:       kernel32.NewProc("GetEnvironmentVariableW"),
		procSetConsoleTitleW: kernel32.NewProc("SetConsoleTitleW"),
	}
}

func (h *WindowsHooks) ReadChar() (rune, error) {
	var buf [1]uint16
	var read uint32
	handle, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE)
	if err != nil {
		return 0, err
	}
	r1, _, err := h.procReadConsoleW.Call(
		uintptr(handle),
		uintptr(unsafe.Pointer(&buf[0])),
		1,
		uintptr(unsafe.Pointer(&read)),
		0,
	)
	if r1 == 0 {
		return 0, err
	}
	return rune(buf[0]), nil
}

func (h *WindowsHooks) ReadLine() (string, error) {
	buf := make([]uint16, 1024)
	var read uint32
	handle, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE)
	if err != nil {
		return "", err
	}
	r1, _, err := h.procReadConsoleW.Call(
		uintptr(handle),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
		uintptr(unsafe.Pointer(&read)),
		0,
	)
	if r1 == 0 {
		return "", err
	}
	return windows.UTF16ToString(buf[:read]), nil
}

func (h *WindowsHooks) WriteConsole(text string) error {
	utf16, err := windows.UTF16FromString(text)
	if err != nil {
		return err
	}
	if len(utf16) > 0 {
		utf16 = utf16[:len(utf16)-1] // drop the NUL UTF16FromString appends
	}
	handle, err := windows.GetStdHandle(windows.STD_OUTPUT_HANDLE)
	if err != nil {
		return err
	}
	var written uint32
	r1, _, callErr := h.procWriteConsoleW.Call(
		uintptr(handle),
		uintptr(unsafe.Pointer(&utf16[0])),
		uintptr(len(utf16)),
		uintptr(unsafe.Pointer(&written)),
		0,
	)
	if r1 == 0 {
		return callErr
	}
	return nil
}

func (h *WindowsHooks) SetEnv(name, value string) error {
	wname, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return err
	}
	wvalue, err := windows.UTF16PtrFromString(value)
	if err != nil {
		return err
	}
	r1, _, callErr := h.procSetEnvVarW.Call(
		uintptr(unsafe.Pointer(wname)),
		uintptr(unsafe.Pointer(wvalue)),
	)
	if r1 == 0 {
		return callErr
	}
	return nil
}

func (h *WindowsHooks) GetEnv(name string) (string, bool) {
	wname, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return "", false
	}
	buf := make([]uint16, 4096)
	n, _, _ := h.procGetEnvVarW.Call(
		uintptr(unsafe.Pointer(wname)),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
	)
	if n == 0 {
		return "", false
	}
	return windows.UTF16ToString(buf[:n]), true
}

func (h *WindowsHooks) SetTitle(title string) error {
	wtitle, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return err
	}
	r1, _, callErr := h.procSetConsoleTitleW.Call(uintptr(unsafe.Pointer(wtitle)))
	if r1 == 0 {
		return callErr
	}
	return nil
}

func (h *WindowsHooks) Close() error { return nil }

// describeMode renders the install mode as a one-line description;
// "clinkgo doctor" does not print it.
func (h *WindowsHooks) describeMode() string {
	return fmt.Sprintf("windows console hooks (%s mode)", h.mode)
}
