//go:build !windows

package main

import (
	"os"

	"gitlab.com/tinyland/lab/clinkgo/internal/hostio"
)

// newPlatformHooks builds the in-process fake on non-Windows development
// builds, since there is no real cmd.exe console to hook outside Windows.
func newPlatformHooks(mode hostio.HookMode) hostio.ConsoleHooks {
	return hostio.NewFakeHooks(os.Stdin, os.Stdout)
}
