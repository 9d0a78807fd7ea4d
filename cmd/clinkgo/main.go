// clinkgo augments cmd.exe with a full-featured line editor: history with
// cross-session coordination, pluggable completion, and a redraw-only-
// changed-cells display engine.
//
// Usage:
//
//	clinkgo inject [--scripts <path>] [--quiet] [--althook]
//	clinkgo autorun --install|--uninstall|--show|--value <string>
//	clinkgo history browse
//	clinkgo doctor
package main

import (
	"fmt"
	"log/slog"
	"os"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	logger := newLogger(hasFlag(os.Args[2:], "--verbose"))

	switch os.Args[1] {
	case "inject":
		runInject(os.Args[2:], logger)
	case "autorun":
		runAutorun(os.Args[2:])
	case "history":
		runHistory(os.Args[2:], logger)
	case "doctor":
		runDoctor(os.Args[2:])
	case "-version", "--version", "version":
		fmt.Printf("clinkgo %s (%s)\n", version, commit)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "clinkgo: unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `usage: clinkgo <command> [flags]

commands:
  inject    install the console hooks into the current cmd.exe session
  autorun   manage the cmd.exe AutoRun registry entry
  history   browse/manage the shared history log
  doctor    print parent-process validation, settings, and history summary
  version   print version and exit
`)
}

func hasFlag(args []string, name string) bool {
	for _, a := range args {
		if a == name {
			return true
		}
	}
	return false
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
