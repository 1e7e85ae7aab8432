// tower is an endless vertical platformer played in the terminal.
//
// Usage:
//
//	tower play               - Climb the tower
//	tower scores             - Show run history and best record
//	tower serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.tower/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tower",
	Short: "Endless Tower - Climb an infinite tower in your terminal",
	Long: `Endless Tower is a terminal-based vertical platformer. Climb between
two walls, time your wall bounces, chain combos, charge magnetic
platforms, and stay ahead of the rising death line.

Available commands:
  play     - Start climbing
  scores   - View run history and best record
  serve    - Start SSH server for remote play

Examples:
  tower play
  tower play --difficulty hard
  tower scores
  tower serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tower/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
