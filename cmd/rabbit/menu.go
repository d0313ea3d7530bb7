package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/run-rabbit/internal/config"
	"github.com/vovakirdan/run-rabbit/internal/core"
	"github.com/vovakirdan/run-rabbit/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a difficulty, play, repeat",
	Long: `Start with a difficulty menu showing the best score of each preset.
After a run, press B or Esc to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play
  Tab          - Scoreboard
  Q            - Quit

Examples:
  rabbit menu
  rabbit menu --fps 30`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	base, err := config.LoadRabbit(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, logCloser, err := openLogger("rabbit")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	var done cleanup
	done.add(logCloser.Close)

	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store := openStore()
	if store != nil {
		done.add(store.Close)
	}
	if err := tui.RunSession(store, cfg, base, logger); err != nil {
		done.fatalf("Error: %v", err)
	}
	done.run()
}
