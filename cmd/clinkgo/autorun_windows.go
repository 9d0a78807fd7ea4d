//go:build windows

package main

import (
	"os"

	"golang.org/x/sys/windows/registry"
)

const (
	autorunKeyPath = `Software\Microsoft\Command Processor`
	autorunValue   = "AutoRun"
)

func autorunInstall(value string) (string, error) {
	if value == "" {
		exe, err := os.Executable()
		if err != nil {
			return "", err
		}
		value = exe + " inject --quiet"
	}
	k, _, err := registry.CreateKey(registry.CURRENT_USER, autorunKeyPath, registry.SET_VALUE)
	if err != nil {
		return "", err
	}
	defer k.Close()
	if err := k.SetStringValue(autorunValue, value); err != nil {
		return "", err
	}
	return "installed: " + value, nil
}

func autorunUninstall() error {
	k, err := registry.OpenKey(registry.CURRENT_USER, autorunKeyPath, registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer k.Close()
	return k.DeleteValue(autorunValue)
}

func autorunShow() (string, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, autorunKeyPath, registry.QUERY_VALUE)
	if err != nil {
		return "", err
	}
	defer k.Close()
	v, _, err := k.GetStringValue(autorunValue)
	if err != nil {
		return "", err
	}
	return v, nil
}
