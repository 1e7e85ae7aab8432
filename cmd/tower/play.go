package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/TomNeyland/endless-tower/internal/core"
	"github.com/TomNeyland/endless-tower/internal/games/tower"
	"github.com/TomNeyland/endless-tower/internal/platform/tui"
	"github.com/TomNeyland/endless-tower/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Climb the tower",
	Long: `Start a climb.

Controls:
  A/D or Left/Right  - Move
  Space/W/Up         - Jump, or bounce while touching a wall
  E                  - Use oldest item
  P                  - Pause
  R                  - Restart (after game over)
  Q/Ctrl+C           - Quit

Difficulty options:
  easy   - Slower death line, later activation
  normal - Default pacing
  hard   - Faster death line, earlier activation
  fixed  - No progression, stays at config's initial level

Examples:
  tower play
  tower play --difficulty easy
  tower play --seed 42
  tower play --config ./my-tower.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(cmd *cobra.Command, args []string) {
	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Set config path and difficulty before creation
	tower.SetConfigPath(flagConfig)
	tower.SetDifficultyPreset(flagDifficulty)

	game := tower.New()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "tower",
	})

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, logger, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
