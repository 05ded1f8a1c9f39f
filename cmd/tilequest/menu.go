package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tilequest/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a scene interactively",
	Long: `Show the scene picker. After a scene ends you return to the picker.

Controls:
  Up/Down/j/k  - Navigate
  Enter/Space  - Play
  Q/Esc        - Quit

Examples:
  tilequest menu
  tilequest menu --pace slow`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
	}

	for {
		sceneID, err := tui.RunMenu(width)
		if err != nil {
			return err
		}
		if sceneID == "" {
			return nil
		}

		sc, cfg, err := loadScene(sceneID)
		if err != nil {
			logger.Error("cannot load scene", "scene", sceneID, "err", err)
			continue
		}

		checkTerminal(cfg.Runtime())
		if err := tui.Run(sc, cfg, tui.Options{}); err != nil {
			logger.Error("scene stopped", "scene", sceneID, "err", err)
		}
	}
}
