//go:build !windows

package main

import "errors"

// ErrUnsupportedPlatform is returned by every autorun backend function on
// non-Windows builds. cmd.exe's AutoRun registry value has no equivalent
// elsewhere, but keeping the functions present (rather than build-tagging
// out runAutorun's dispatch too) means flag parsing stays testable on any OS.
var ErrUnsupportedPlatform = errors.New("clinkgo: autorun is only supported when hosted under cmd.exe on Windows")

func autorunInstall(value string) (string, error) {
	return "", ErrUnsupportedPlatform
}

func autorunUninstall() error {
	return ErrUnsupportedPlatform
}

func autorunShow() (string, error) {
	return "", ErrUnsupportedPlatform
}
