package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tinyland/lab/clinkgo/internal/history"
	"gitlab.com/tinyland/lab/clinkgo/internal/hostio"
	"gitlab.com/tinyland/lab/clinkgo/internal/settings"
)

// defaultHostImage is the parent process clinkgo expects to be running
// under when hooks are installed. Overridable for non-Windows development.
const defaultHostImage = "cmd.exe"

func runInject(args []string, logger *slog.Logger) {
	fs := flag.NewFlagSet("inject", flag.ExitOnError)
	scriptsPath := fs.String("scripts", "", "path to a Lua-free script directory (reserved, currently unused)")
	quiet := fs.Bool("quiet", false, "suppress the startup banner")
	althook := fs.Bool("althook", false, "use inline-detour install mode instead of IAT patching")
	hostImage := fs.String("host", defaultHostImage, "required parent process image name")
	fs.Bool("verbose", false, "enable verbose logging")
	fs.Parse(args)

	if err := hostio.ValidateParent(*hostImage); err != nil {
		var mismatch *hostio.ErrParentMismatch
		if errors.As(err, &mismatch) {
			fmt.Fprintf(os.Stderr, "clinkgo: refusing to install: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "clinkgo: parent validation failed: %v\n", err)
		}
		os.Exit(1)
	}

	cfg, err := settings.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "clinkgo: loading settings: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(masterPath()), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "clinkgo: creating history directory: %v\n", err)
		os.Exit(1)
	}

	db, err := history.Open(masterPath(), cfg.HistoryOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "clinkgo: opening history database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	mode := hostio.HookIAT
	if *althook {
		mode = hostio.HookDetour
	}

	hooks := newPlatformHooks(mode)
	editor := newLineEditor(cfg, db)

	onAccept := func(line string) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			return
		}
		if err := db.Add(line); err != nil {
			logger.Warn("history add failed", "error", err)
		}
	}

	session := hostio.NewSession(hooks, editor, nil, autoAnswerMode(cfg), false, onAccept)
	defer session.Close()

	if !*quiet {
		fmt.Fprintln(os.Stderr, "clinkgo: hooks installed")
	}
	if *scriptsPath != "" {
		logger.Debug("scripts path configured but unused by this build", "path", *scriptsPath)
	}

	logger.Info("clinkgo ready", "hook_mode", mode, "host", *hostImage)

	runHookLoop(session, logger)
}

// runHookLoop drives ReadConsole/WriteConsole against the real console in a
// loop, exiting when the host's line comes back "exit" or the underlying
// read fails (EOF on the attached console, matching a closing cmd.exe).
func runHookLoop(session *hostio.Session, logger *slog.Logger) {
	for {
		line, err := session.ReadConsole(1024)
		if err != nil {
			logger.Debug("console read ended", "error", err)
			return
		}
		if strings.TrimSpace(strings.TrimRight(line, "\r\n")) == "exit" {
			return
		}
	}
}

// masterPath returns the shared history master bank's file path.
func masterPath() string {
	if p := os.Getenv("CLINKGO_HISTORY_PATH"); p != "" {
		return p
	}
	if dir := localStateDir(); dir != "" {
		return filepath.Join(dir, "clinkgo", "history")
	}
	return ".clinkgo_history"
}

func localStateDir() string {
	if v := os.Getenv("LOCALAPPDATA"); v != "" {
		return v
	}
	if v := os.Getenv("APPDATA"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share")
}

// autoAnswerMode adapts settings.AutoAnswer to hostio.AutoAnswerMode; the
// two enums are defined independently (hostio must not import settings, the
// same direction internal/settings/match.go keeps with internal/match's
// enums), so cmd/clinkgo is where the two meet.
func autoAnswerMode(cfg *settings.Config) hostio.AutoAnswerMode {
	switch cfg.Cmd.AutoAnswer {
	case settings.AutoAnswerYes:
		return hostio.AutoAnswerYes
	case settings.AutoAnswerNo:
		return hostio.AutoAnswerNo
	default:
		return hostio.AutoAnswerOff
	}
}
