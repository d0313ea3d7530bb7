package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/run-rabbit/internal/audio"
	"github.com/vovakirdan/run-rabbit/internal/config"
	"github.com/vovakirdan/run-rabbit/internal/core"
	"github.com/vovakirdan/run-rabbit/internal/games/rabbit"
	"github.com/vovakirdan/run-rabbit/internal/platform/tui"
	"github.com/vovakirdan/run-rabbit/internal/replay"
	"github.com/vovakirdan/run-rabbit/internal/storage"
)

var (
	flagSound  bool
	flagVolume float64
	flagRecord string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a run in the terminal.

Controls:
  Space/Up/W - Jump
  P          - Pause
  R          - Restart (after game over)
  Tab        - Scoreboard
  Ctrl+S     - Screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Slow start, short chases
  normal - Speeds up as you score
  hard   - Starts fast; the fox can catch you
  fixed  - No progression

Examples:
  rabbit play
  rabbit play --difficulty easy
  rabbit play --sound --record run.rrpl
  rabbit play --config ./my-rabbit.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	addSessionFlags(playCmd)
}

// addSessionFlags registers flags shared by the interactive front-ends.
func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound cues")
	cmd.Flags().Float64Var(&flagVolume, "volume", 0.6, "Sound volume (0-1)")
	cmd.Flags().StringVar(&flagRecord, "record", "", "Record the session to this file")
}

// session holds what play and window share: listeners and their cleanup.
type session struct {
	listeners []core.StepListener
	player    *audio.Player
	recorder  *replay.Recorder
}

func newSession(seed int64, preset config.DifficultyPreset, cfg config.RabbitConfig) *session {
	s := &session{}
	if flagSound {
		s.player = audio.NewPlayer(flagVolume)
		if err := s.player.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: sound disabled: %v\n", err)
			s.player = nil
		} else {
			s.listeners = append(s.listeners, s.player)
		}
	}
	if flagRecord != "" {
		s.recorder = replay.NewRecorder(seed, preset, cfg, flagFPS)
		s.listeners = append(s.listeners, s.recorder)
	}
	return s
}

func (s *session) close() {
	if s.player != nil {
		s.player.Close()
	}
	if s.recorder != nil {
		if err := s.recorder.Save(flagRecord); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			return
		}
		fmt.Printf("Recording saved to %s\n", flagRecord)
	}
}

// openStore opens the score database; failures only disable saving.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

func runPlay(_ *cobra.Command, _ []string) {
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

	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     resolveSeed(),
	}

	store := openStore()
	if store != nil {
		done.add(store.Close)
	}
	sess := newSession(cfg.Seed, preset, gameCfg)

	runErr := tui.Run(rabbit.New(gameCfg), cfg, tui.Options{
		Store:      store,
		Difficulty: preset,
		Logger:     logger,
		Listeners:  sess.listeners,
	})

	sess.close()
	if runErr != nil {
		done.fatalf("Error running game: %v", runErr)
	}
	done.run()
}
