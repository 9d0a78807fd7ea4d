package main

import (
	"flag"
	"fmt"
	"os"
)

// runAutorun dispatches the four autorun subcommand modes against the
// platform-specific registry backend (Windows) or ErrUnsupportedPlatform
// (everywhere else, so flag parsing and dispatch stay testable off-Windows).
func runAutorun(args []string) {
	fs := flag.NewFlagSet("autorun", flag.ExitOnError)
	install := fs.Bool("install", false, "register clinkgo as cmd.exe's AutoRun command")
	uninstall := fs.Bool("uninstall", false, "remove clinkgo's AutoRun registration")
	show := fs.Bool("show", false, "print the current AutoRun value")
	value := fs.String("value", "", "install this exact AutoRun command line (implies --install)")
	fs.Parse(args)

	var (
		out string
		err error
	)
	switch {
	case *install || *value != "":
		out, err = autorunInstall(*value)
	case *uninstall:
		err = autorunUninstall()
	case *show:
		out, err = autorunShow()
	default:
		fmt.Fprintln(os.Stderr, "usage: clinkgo autorun --install|--uninstall|--show|--value <string>")
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "clinkgo: autorun: %v\n", err)
		os.Exit(1)
	}
	if out != "" {
		fmt.Println(out)
	}
}
