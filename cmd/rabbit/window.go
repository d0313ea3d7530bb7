package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/run-rabbit/internal/core"
	"github.com/vovakirdan/run-rabbit/internal/games/rabbit"
	"github.com/vovakirdan/run-rabbit/internal/platform/gui"
	"github.com/vovakirdan/run-rabbit/internal/storage"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open a 900x600 window and play with the keyboard.

Controls:
  Space/Up/W - Jump
  P          - Pause
  R          - Restart (after game over)
  Q/Esc      - Quit

Examples:
  rabbit window
  rabbit window --difficulty hard --sound`,
	Args: cobra.NoArgs,
	Run:  runWindow,
}

func init() {
	addSessionFlags(windowCmd)
}

func runWindow(_ *cobra.Command, _ []string) {
	gameCfg, preset, err := loadGame()
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

	cfg := core.RuntimeConfig{
		ScreenW:  gui.ScreenWidth,
		ScreenH:  gui.ScreenHeight,
		TickRate: flagFPS,
		Seed:     resolveSeed(),
	}

	store := openStore()
	if store != nil {
		done.add(store.Close)
	}
	sess := newSession(cfg.Seed, preset, gameCfg)

	runErr := gui.Run(rabbit.New(gameCfg), cfg, gui.Options{
		Listeners: sess.listeners,
		OnGameOver: func(stats rabbit.RunStats) {
			runID := uuid.NewString()
			logger.Info("game over", "run", runID, "reason", stats.Reason,
				"score", stats.Score, "carrots", stats.Carrots, "ticks", stats.Ticks)
			if store == nil {
				return
			}
			_, err := store.SaveRun(storage.Run{
				RunID:      runID,
				Difficulty: string(preset),
				Score:      stats.Score,
				Carrots:    stats.Carrots,
				Strikes:    stats.Strikes,
				EndReason:  stats.Reason.String(),
				Ticks:      stats.Ticks,
			})
			if err != nil {
				logger.Warn("could not save run", "run", runID, "error", err)
			}
		},
	})

	sess.close()
	if runErr != nil {
		done.fatalf("Error running window: %v", runErr)
	}
	done.run()
}
