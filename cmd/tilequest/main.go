// tilequest runs tile-based handheld scenes in the terminal.
//
// Usage:
//
//	tilequest list             - List available scenes
//	tilequest play <scene>     - Play a scene
//	tilequest menu             - Pick a scene interactively
//	tilequest trace            - Browse recorded traces
//
// Global flags:
//
//	--fps <rate>     - Base tick rate, scaled by --pace
//	--pace <preset>  - slow, normal or fast
//	--config <path>  - Custom scene YAML
//	--db <path>      - Trace database (default: ~/.tilequest/trace.db)
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import scenes to register them
	_ "github.com/vovakirdan/tilequest/internal/scenes/town"
)

var (
	// Global flags
	flagFPS    int
	flagPace   string
	flagConfig string
	flagDBPath string
	flagDebug  bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "tilequest"})

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tilequest",
	Short: "Tilequest - tile-based handheld scenes in your terminal",
	Long: `Tilequest runs small tile-map scenes built for a 160x128 handheld
display: a walkable map, an animated player and modal dialogs.

Available commands:
  list     - Show all available scenes
  play     - Play a specific scene directly
  menu     - Interactive scene picker
  trace    - Browse recorded runtime traces

Examples:
  tilequest list
  tilequest play town
  tilequest play town --pace slow --record
  tilequest trace --latest`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagDebug {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Base tick rate before --pace (0 = scene default)")
	rootCmd.PersistentFlags().StringVar(&flagPace, "pace", "", "Pace preset: slow, normal, fast")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom scene config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tilequest/trace.db", "Path to trace database")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Verbose logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(traceCmd)
}
