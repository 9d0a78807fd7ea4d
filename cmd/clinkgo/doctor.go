package main

import (
	"flag"
	"fmt"
	"os"

	"gitlab.com/tinyland/lab/clinkgo/internal/history"
	"gitlab.com/tinyland/lab/clinkgo/internal/hostio"
	"gitlab.com/tinyland/lab/clinkgo/internal/settings"
)

// runDoctor prints parent-process validation, the effective settings dump,
// and a history bank summary — a one-shot health check an operator can run
// without installing hooks.
func runDoctor(args []string) {
	fs := flag.NewFlagSet("doctor", flag.ExitOnError)
	hostImage := fs.String("host", defaultHostImage, "required parent process image name")
	format := fs.String("format", "toml", "settings dump format: toml or yaml")
	fs.Parse(args)

	fmt.Println("== parent process ==")
	if name, err := hostio.ParentImageName(); err != nil {
		fmt.Printf("  could not resolve: %v\n", err)
	} else {
		fmt.Printf("  image: %s\n", name)
		if err := hostio.ValidateParent(*hostImage); err != nil {
			fmt.Printf("  validation: FAIL (%v)\n", err)
		} else {
			fmt.Printf("  validation: OK (matches %s)\n", *hostImage)
		}
	}

	cfg, err := loadSettingsOrDefault()
	fmt.Println("\n== settings ==")
	if err != nil {
		fmt.Printf("  load error: %v (showing defaults)\n", err)
	}
	df, err := settings.ParseDumpFormat(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "clinkgo: %v\n", err)
		os.Exit(2)
	}
	dump, err := cfg.Dump(df)
	if err != nil {
		fmt.Printf("  dump error: %v\n", err)
	} else {
		fmt.Print(dump)
	}

	fmt.Println("== history ==")
	db, err := history.Open(masterPath(), cfg.HistoryOptions())
	if err != nil {
		fmt.Printf("  could not open %s: %v\n", masterPath(), err)
		return
	}
	defer db.Close()

	entries, err := db.Iterate()
	if err != nil {
		fmt.Printf("  iterate error: %v\n", err)
		return
	}
	fmt.Printf("  master: %s\n", masterPath())
	fmt.Printf("  entries: %d\n", len(entries))
	if last, ok := db.Last(); ok {
		fmt.Printf("  last: %s\n", last)
	}
}
