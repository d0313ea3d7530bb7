package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/run-rabbit/internal/config"
	"github.com/vovakirdan/run-rabbit/internal/games/rabbit"
	"github.com/vovakirdan/run-rabbit/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Re-simulate a recorded session",
	Long: `Load a recording made with --record and run it again without a screen.
The same recording always produces the same runs.

Examples:
  rabbit play --record run.rrpl
  rabbit replay run.rrpl`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(_ *cobra.Command, args []string) {
	rec, err := replay.LoadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	res, err := replay.Replay(rec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Recording %s\n", args[0])
	fmt.Printf("  Seed:       %d\n", rec.Seed)
	fmt.Printf("  Difficulty: %s\n", difficultyLabel(config.DifficultyPreset(rec.Difficulty)))
	fmt.Printf("  Recorded:   %s\n", rec.RecordedAt.Local().Format("2006-01-02 15:04"))
	fmt.Printf("  Steps:      %d (%d inputs)\n", res.Steps, len(rec.Entries))
	fmt.Println()

	for i, run := range res.Runs {
		printRun(fmt.Sprintf("Run %d", i+1), run, rec.TickRate)
	}
	if !finished(res) {
		printRun("Unfinished", res.Final, rec.TickRate)
	}
}

// finished reports whether the recording stopped on a game over screen.
func finished(res replay.Result) bool {
	return len(res.Runs) > 0 && res.Final == res.Runs[len(res.Runs)-1]
}

func printRun(label string, run rabbit.RunStats, rate int) {
	fmt.Printf("  %-10s  score %-5d  carrots %-3d  strikes %d  time %s  %s\n",
		label, run.Score, run.Carrots, run.Strikes, formatTicks(run.Ticks, rate), run.Reason)
}
