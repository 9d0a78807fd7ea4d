package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"gitlab.com/tinyland/lab/clinkgo/cmd/clinkgo/historytui"
	"gitlab.com/tinyland/lab/clinkgo/internal/history"
)

func runHistory(args []string, logger *slog.Logger) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: clinkgo history <browse>")
		os.Exit(2)
	}

	switch args[0] {
	case "browse":
		fs := flag.NewFlagSet("history browse", flag.ExitOnError)
		fs.Bool("verbose", false, "enable verbose logging")
		fs.Parse(args[1:])

		db, err := history.Open(masterPath(), defaultHistoryOptions())
		if err != nil {
			fmt.Fprintf(os.Stderr, "clinkgo: opening history: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := historytui.Run(db); err != nil {
			logger.Error("history browser exited with error", "error", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "clinkgo: unknown history subcommand %q\n", args[0])
		os.Exit(2)
	}
}

func defaultHistoryOptions() history.Options {
	cfg, err := loadSettingsOrDefault()
	if err != nil {
		return history.Options{MaxLines: 10000}
	}
	return cfg.HistoryOptions()
}
