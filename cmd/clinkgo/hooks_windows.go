//go:build windows

package main

import "gitlab.com/tinyland/lab/clinkgo/internal/hostio"

func newPlatformHooks(mode hostio.HookMode) hostio.ConsoleHooks {
	return hostio.NewWindowsHooks(mode)
}
