package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tilequest/internal/platform/tui"
	"github.com/vovakirdan/tilequest/internal/storage"
)

var (
	flagLatest bool
	flagRunID  string
	flagLimit  int
	flagClear  bool
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Browse recorded runtime traces",
	Long: `Show traces recorded with 'tilequest play --record'.

Without flags an interactive browser opens. --latest or --run print
the events of one run instead.

Examples:
  tilequest trace
  tilequest trace --latest
  tilequest trace --run 1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed --limit 50
  tilequest trace --clear`,
	RunE: runTrace,
}

func init() {
	traceCmd.Flags().BoolVar(&flagLatest, "latest", false, "Print the events of the most recent run")
	traceCmd.Flags().StringVar(&flagRunID, "run", "", "Print the events of this run")
	traceCmd.Flags().IntVar(&flagLimit, "limit", 100, "Maximum events to print (0 = all)")
	traceCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run")
}

func runTrace(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearRuns(); err != nil {
			return err
		}
		fmt.Println("Trace database cleared.")
		return nil

	case flagLatest || flagRunID != "":
		runID := flagRunID
		if flagLatest {
			if runID, err = store.LatestRun(); err != nil {
				return err
			}
		}
		if runID == "" {
			fmt.Println("No runs recorded yet.")
			return nil
		}
		return printRun(store, runID)
	}

	width, height := 100, 30
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return tui.RunTraceBrowser(store, width, height)
}

func printRun(store *storage.Store, runID string) error {
	events, err := store.RunEvents(runID, flagLimit)
	if err != nil {
		return err
	}
	total, err := store.CountEvents(runID)
	if err != nil {
		return err
	}

	fmt.Printf("Run %s (%d events)\n\n", runID, total)
	if len(events) == 0 {
		fmt.Println("No events recorded for this run.")
		return nil
	}

	fmt.Printf("  %-7s  %-10s  %-12s  %s\n", "Frame", "Kind", "Source", "Detail")
	fmt.Printf("  %-7s  %-10s  %-12s  %s\n", "-----", "----", "------", "------")
	for _, e := range events {
		fmt.Printf("  %-7d  %-10s  %-12s  %s\n", e.Frame, e.Kind, e.Source, e.Detail)
	}

	if total > len(events) {
		fmt.Printf("\n... %d more, use --limit 0 to show all\n", total-len(events))
	}
	return nil
}
