package hostio

import (
	"fmt"
	"os"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// ErrParentMismatch is returned when the immediate parent process's image
// name doesn't match the configured host executable.
type ErrParentMismatch struct {
	Want string
	Got  string
}

func (e *ErrParentMismatch) Error() string {
	return fmt.Sprintf("hostio: parent process image %q does not match required host %q", e.Got, e.Want)
}

// ValidateParent walks up from the current process to its immediate
// parent and checks its image name against wantHost (case-insensitive,
// e.g. "cmd.exe"). Hooks must not be installed — and, on non-Windows dev
// builds, an edit cycle must not be simulated — unless this succeeds.
func ValidateParent(wantHost string) error {
	self, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return fmt.Errorf("hostio: resolving current process: %w", err)
	}
	ppid, err := self.Ppid()
	if err != nil {
		return fmt.Errorf("hostio: resolving parent pid: %w", err)
	}
	parent, err := process.NewProcess(ppid)
	if err != nil {
		return fmt.Errorf("hostio: resolving parent process %d: %w", ppid, err)
	}
	name, err := parent.Name()
	if err != nil {
		return fmt.Errorf("hostio: resolving parent image name: %w", err)
	}
	if !strings.EqualFold(name, wantHost) {
		return &ErrParentMismatch{Want: wantHost, Got: name}
	}
	return nil
}

// ParentImageName returns the immediate parent process's image name, or
// an empty string if it can't be resolved. Used by "clinkgo doctor" to
// report the validation result even when it fails.
func ParentImageName() (string, error) {
	self, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return "", err
	}
	ppid, err := self.Ppid()
	if err != nil {
		return "", err
	}
	parent, err := process.NewProcess(ppid)
	if err != nil {
		return "", err
	}
	return parent.Name()
}
