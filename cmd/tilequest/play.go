package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tilequest/internal/config"
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/platform/tui"
	"github.com/vovakirdan/tilequest/internal/registry"
	"github.com/vovakirdan/tilequest/internal/session"
	"github.com/vovakirdan/tilequest/internal/storage"
	"github.com/vovakirdan/tilequest/internal/trace"
)

var (
	flagRecord   bool
	flagTraceLog string
	flagHeadless bool
	flagTicks    int
)

var playCmd = &cobra.Command{
	Use:   "play <scene>",
	Short: "Play a scene",
	Long: `Start playing the specified scene.

Controls:
  Arrows/WASD  - Move
  X/J          - Attack
  O/K          - Talk (open and close the dialog)
  Ctrl+S       - Save a plain-text screenshot
  ?            - Toggle help
  Q/Esc        - Quit

Pace options:
  slow    - Two thirds of the scene's frame rate
  normal  - The scene's frame rate
  fast    - One and a half times the scene's frame rate

Examples:
  tilequest play town
  tilequest play town --pace fast
  tilequest play town --record
  tilequest play town --headless --ticks 120
  tilequest play town --config ./my-town.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagRecord, "record", false, "Record trace events to the trace database")
	playCmd.Flags().StringVar(&flagTraceLog, "trace-log", "", "Write trace events as log lines to this file")
	playCmd.Flags().BoolVar(&flagHeadless, "headless", false, "Run without a terminal UI and print the last frame")
	playCmd.Flags().IntVar(&flagTicks, "ticks", 0, "Stop after this many ticks (0 = until interrupted)")
}

// loadScene resolves the scene and its configuration from the global flags.
func loadScene(sceneID string) (registry.Scene, config.SceneConfig, error) {
	if !registry.Exists(sceneID) {
		return nil, config.SceneConfig{}, fmt.Errorf("unknown scene %q, run 'tilequest list' to see available scenes", sceneID)
	}

	sc, err := registry.Create(sceneID)
	if err != nil {
		return nil, config.SceneConfig{}, err
	}

	cfg, err := config.Load(sceneID, flagConfig)
	if err != nil {
		return nil, config.SceneConfig{}, err
	}

	if err := config.Tune(&cfg, flagFPS, flagPace); err != nil {
		return nil, config.SceneConfig{}, err
	}

	return sc, cfg, nil
}

// startTracing enables the trace hook if --record or --trace-log asks for it.
// The returned function turns tracing off and releases its resources.
func startTracing(sceneID string) (func(), error) {
	if !flagRecord && flagTraceLog == "" {
		return func() {}, nil
	}

	var closers []func()
	stop := func() {
		trace.Disable()
		trace.ClearSinks()
		for _, c := range closers {
			c()
		}
	}

	if flagRecord {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return nil, err
		}
		closers = append(closers, func() { store.Close() })

		rec, err := store.BeginRun(sceneID)
		if err != nil {
			stop()
			return nil, err
		}
		trace.AddSink(rec)
		logger.Info("recording trace", "run", rec.RunID(), "db", flagDBPath)
	}

	var logFile *os.File
	if flagTraceLog != "" {
		f, err := os.OpenFile(flagTraceLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			stop()
			return nil, fmt.Errorf("cannot open trace log: %w", err)
		}
		logFile = f
		closers = append(closers, func() { f.Close() })
	}

	if logFile != nil {
		trace.Enable(logFile)
	} else {
		trace.Enable(nil)
	}
	return stop, nil
}

// checkTerminal warns when the terminal cannot show the whole display.
func checkTerminal(rc core.RuntimeConfig) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		logger.Debug("cannot read terminal size", "err", err)
		return
	}

	// Screen cells plus the frame border, status line and help line.
	needW := (rc.GameW+core.DefaultCellW-1)/core.DefaultCellW + 2
	needH := (rc.GameH+core.DefaultCellH-1)/core.DefaultCellH + 4
	if w < needW || h < needH {
		logger.Warn("terminal is smaller than the display", "have", fmt.Sprintf("%dx%d", w, h), "need", fmt.Sprintf("%dx%d", needW, needH))
	}
}

func runPlay(_ *cobra.Command, args []string) error {
	sceneID := args[0]

	sc, cfg, err := loadScene(sceneID)
	if err != nil {
		return err
	}

	stop, err := startTracing(sceneID)
	if err != nil {
		return err
	}
	defer stop()

	if flagHeadless {
		return runHeadless(sc, cfg)
	}

	checkTerminal(cfg.Runtime())
	return tui.Run(sc, cfg, tui.Options{})
}

// runHeadless ticks the scene on a wall clock with no input and prints
// the last frame as plain text.
func runHeadless(sc registry.Scene, cfg config.SceneConfig) error {
	rc := cfg.Runtime()
	renderer := tui.NewRenderer(rc)
	s := session.New(rc, nil, renderer)
	if err := sc.Setup(s, cfg); err != nil {
		return err
	}
	renderer.RenderFullRegion(s.Layers(), rc.Bounds())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	logger.Debug("running headless", "scene", sc.ID(), "fps", rc.TickRate, "ticks", flagTicks)
	if err := s.Run(ctx, flagTicks); err != nil {
		return err
	}

	fmt.Println(renderer.Screen().String())
	fmt.Printf("%s: %d frames, %s\n", sc.Title(), s.Frame(), s.Mode())
	return nil
}
