package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/run-rabbit/internal/config"
	"github.com/vovakirdan/run-rabbit/internal/platform/tui"
	"github.com/vovakirdan/run-rabbit/internal/storage"
)

var (
	flagPlain bool
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top 10 runs for a difficulty preset.

On a terminal an interactive scoreboard opens; Tab switches presets.
Use --plain for a printed table.

Examples:
  rabbit scores
  rabbit scores --difficulty hard --plain
  rabbit scores --difficulty easy --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain table instead of the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all runs of the selected difficulty")
}

func runScores(_ *cobra.Command, _ []string) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	var done cleanup
	done.add(store.Close)

	if flagClear {
		if err := store.ClearRuns(string(preset)); err != nil {
			done.fatalf("Error clearing scores: %v", err)
		}
		fmt.Printf("Cleared runs for %s\n", difficultyLabel(preset))
		done.run()
		return
	}

	if !flagPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		width, height := terminalSize()
		if err := tui.RunScoreboard(store, width, height, preset); err != nil {
			done.fatalf("Error: %v", err)
		}
		done.run()
		return
	}

	if err := printScores(store, preset); err != nil {
		done.fatalf("Error retrieving scores: %v", err)
	}
	done.run()
}

func difficultyLabel(preset config.DifficultyPreset) string {
	if preset == "" {
		return storage.DefaultDifficulty
	}
	return string(preset)
}

func printScores(store *storage.Store, preset config.DifficultyPreset) error {
	runs, err := store.TopRuns(string(preset), 10)
	if err != nil {
		return err
	}

	// Display scores
	fmt.Printf("High Scores - Run Rabbit (%s)\n", difficultyLabel(preset))
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'rabbit play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-6s  %-7s  %-6s  %-13s  %s\n", "Rank", "Score", "Carrots", "Time", "Cause", "Date")
	fmt.Printf("  %-4s  %-6s  %-7s  %-6s  %-13s  %s\n", "----", "-----", "-------", "----", "-----", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-6d  %-7d  %-6s  %-13s  %s\n",
			i+1, r.Score, r.Carrots, formatTicks(r.Ticks, flagFPS), r.EndReason, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(string(preset))
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Best: %d  Average: %.1f  Carrots: %d\n",
		stats.RunsCount, stats.HighScore, stats.AvgScore, stats.TotalCarrots)

	reasons := make([]string, 0, len(stats.Reasons))
	for reason := range stats.Reasons {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		fmt.Printf("  %-13s %d\n", reason, stats.Reasons[reason])
	}
	return nil
}

// formatTicks renders a tick count as m:ss at the given rate.
func formatTicks(ticks, rate int) string {
	if rate <= 0 {
		rate = 60
	}
	secs := ticks / rate
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
