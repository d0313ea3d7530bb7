// rabbit is an endless side-scroller: keep the rabbit running, collect
// carrots and stay out of the fox's reach.
//
// Usage:
//
//	rabbit play              - Play in the terminal
//	rabbit menu              - Pick a difficulty, play, repeat
//	rabbit window            - Play in a desktop window
//	rabbit serve             - Start SSH server for remote play
//	rabbit scores            - Show high scores
//	rabbit replay <file>     - Re-simulate a recorded session
//	rabbit config            - Print the default configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.rabbit/scores.db)
//	--config <path>       - Use a custom game config YAML
//	--difficulty <name>   - easy, normal, hard or fixed
//	--log-file <path>     - Write logs to a file
//
// RABBIT_DB, RABBIT_CONFIG, RABBIT_DIFFICULTY and RABBIT_SEED supply defaults
// for the matching flags and may be set in a .env file.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/run-rabbit/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string
)

// envFlags binds environment variables to flags they provide defaults for.
var envFlags = map[string]string{
	"db":         "RABBIT_DB",
	"config":     "RABBIT_CONFIG",
	"difficulty": "RABBIT_DIFFICULTY",
	"seed":       "RABBIT_SEED",
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env: %v\n", err)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rabbit",
	Short: "Run Rabbit - outrun the fox in your terminal",
	Long: `Run Rabbit is an endless side-scroller. The rabbit runs on its own:
jump obstacles and pits and collect carrots. Hitting an obstacle sets the
fox on your tail; a second hit during the chase ends the run.

Available commands:
  play     - Play in the terminal
  menu     - Difficulty menu, then play
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  scores   - View high scores
  replay   - Re-simulate a recorded session
  config   - Print the default configuration

Examples:
  rabbit play
  rabbit play --difficulty hard --sound
  rabbit window --record run.rrpl
  rabbit replay run.rrpl
  rabbit serve --ssh :2222
  rabbit scores --difficulty easy`,
	PersistentPreRunE: applyEnv,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.rabbit/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file (default: discard)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// applyEnv fills flags the user did not set from the environment.
func applyEnv(cmd *cobra.Command, _ []string) error {
	for name, env := range envFlags {
		v, ok := os.LookupEnv(env)
		if !ok || v == "" {
			continue
		}
		f := cmd.Flags().Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		if err := f.Value.Set(v); err != nil {
			return fmt.Errorf("invalid %s=%q: %w", env, v, err)
		}
	}
	return nil
}

// loadGame resolves the game configuration with the difficulty preset applied.
func loadGame() (config.RabbitConfig, config.DifficultyPreset, error) {
	cfg, err := config.LoadRabbit(flagConfig)
	if err != nil {
		return config.RabbitConfig{}, "", err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.RabbitConfig{}, "", err
	}
	config.ApplyRabbitPreset(&cfg, preset)
	return cfg, preset, nil
}

// resolveSeed returns the seed a session is reset with. Replays need it
// even when the player asked for a random one.
func resolveSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// openLogger returns a file logger, or a discarding one without --log-file.
// The returned closer is never nil.
func openLogger(prefix string) (*log.Logger, io.Closer, error) {
	if flagLogFile == "" {
		return log.New(io.Discard), io.NopCloser(nil), nil
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, f, nil
}

// exit is replaced in tests.
var exit = os.Exit

// cleanup holds resources a command releases before it returns or exits.
// Deferred calls do not run on os.Exit.
type cleanup []func() error

func (c *cleanup) add(f func() error) {
	*c = append(*c, f)
}

// run releases resources in reverse order of registration.
func (c cleanup) run() {
	for i := len(c) - 1; i >= 0; i-- {
		_ = c[i]()
	}
}

// fatalf reports an error on stderr, releases resources and exits with status 1.
func (c cleanup) fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	c.run()
	exit(1)
}
