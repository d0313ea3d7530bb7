package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/run-rabbit/internal/config"
	"github.com/vovakirdan/run-rabbit/internal/core"
	"github.com/vovakirdan/run-rabbit/internal/games/rabbit"
	"github.com/vovakirdan/run-rabbit/internal/storage"
)

// Options configures a game model.
type Options struct {
	Store      *storage.Store // nil disables score saving
	Difficulty config.DifficultyPreset
	Logger     *log.Logger // nil discards logs
	Listeners  []core.StepListener
	AllowBack  bool // b/esc leaves a finished or paused run instead of being ignored
}

// Model is the Bubble Tea model for one player's Run Rabbit session.
type Model struct {
	game       *rabbit.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	opts       Options
	logger     *log.Logger
	id         string // Stable for the model's lifetime; tags its ticks
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	board      *ScoreboardModel // non-nil while the scoreboard overlay is open
	runID      string
	best       int
	quitting   bool
	backToMenu bool
	runSaved   bool // Whether the current run has been saved
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game *rabbit.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		opts:       opts,
		logger:     logger,
		id:         uuid.NewString(),
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		runID:      uuid.NewString(),
	}
	m.best = m.highScore()
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("run started", "run", m.runID, "seed", m.config.Seed, "difficulty", m.difficulty())
	return tickCmd(m.id, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.board != nil {
			return m.updateBoard(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		// Ticks scheduled by a previous run in the same program are dropped.
		if msg.Owner != "" && msg.Owner != m.id {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.abandon()
		m.quitting = true
		return m, tea.Quit
	}

	action, _ := m.keyMapper.MapKey(msg)
	switch action {
	case core.ActionScoreboard:
		board := NewEmbeddedScoreboardModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH, m.opts.Difficulty)
		m.board = &board
	case core.ActionBack:
		if m.opts.AllowBack && (m.gameState.GameOver || m.gameState.Paused) {
			m.abandon()
			m.backToMenu = true
		}
	}

	return m, nil
}

// updateBoard forwards input to the scoreboard overlay and closes it on back.
func (m Model) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	board, ok := next.(ScoreboardModel)
	if !ok || board.IsGoingBack() || board.IsQuitting() {
		m.board = nil
		return m, nil
	}
	m.board = &board
	return m, cmd
}

// handleResize processes window resize events.
// World coordinates are normalized, so the run continues at the new size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(msg.Width, msg.Height)

	if m.board != nil {
		return m.updateBoard(msg)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}
	// The world holds still behind the scoreboard.
	if m.board != nil {
		m.inputFrame.Clear()
		return m, tickCmd(m.id, m.config.TickRate)
	}

	// Run game simulation
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// The input buffer is cleared below; listeners get their own copy.
	if len(m.opts.Listeners) > 0 {
		in := m.inputFrame.Clone()
		for _, l := range m.opts.Listeners {
			l.OnStep(in, result)
		}
	}
	m.logEvents(result.Events)

	// Save the run on game over (once)
	if m.gameState.GameOver && !m.runSaved {
		m.saveRun()
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.id, m.config.TickRate)
}

func (m *Model) logEvents(events []core.Event) {
	for _, e := range events {
		switch e.Kind {
		case core.EventStrike:
			m.logger.Debug("obstacle hit", "run", m.runID, "tick", e.Tick)
		case core.EventChaseStarted:
			m.logger.Info("fox chase started", "run", m.runID, "tick", e.Tick)
		case core.EventChaseEnded:
			m.logger.Info("fox gave up", "run", m.runID, "tick", e.Tick)
		case core.EventGameOver:
			stats := m.game.Stats()
			m.logger.Info("game over", "run", m.runID, "reason", e.Reason,
				"score", stats.Score, "carrots", stats.Carrots, "ticks", stats.Ticks)
		case core.EventRestarted:
			m.runID = uuid.NewString()
			m.runSaved = false
			m.logger.Info("run restarted", "run", m.runID)
		}
	}
}

// saveRun stores the finished run. Failures are logged; the game continues.
func (m *Model) saveRun() {
	m.runSaved = true
	m.persist(m.game.Stats())
}

// abandon records a run the player walked away from.
func (m *Model) abandon() {
	stats := m.game.Stats()
	if m.runSaved || stats.Ticks == 0 {
		return
	}
	m.runSaved = true
	stats.Reason = core.ReasonQuit
	m.logger.Info("run abandoned", "run", m.runID, "score", stats.Score, "ticks", stats.Ticks)
	if stats.Score > 0 {
		m.persist(stats)
	}
}

func (m *Model) persist(stats rabbit.RunStats) {
	if m.opts.Store == nil {
		return
	}
	_, err := m.opts.Store.SaveRun(storage.Run{
		RunID:      m.runID,
		Difficulty: string(m.opts.Difficulty),
		Score:      stats.Score,
		Carrots:    stats.Carrots,
		Strikes:    stats.Strikes,
		EndReason:  stats.Reason.String(),
		Ticks:      stats.Ticks,
	})
	if err != nil {
		m.logger.Warn("could not save run", "run", m.runID, "error", err)
		return
	}
	m.best = max(m.best, stats.Score)
}

func (m Model) highScore() int {
	if m.opts.Store == nil {
		return 0
	}
	best, err := m.opts.Store.HighScore(string(m.opts.Difficulty))
	if err != nil {
		m.logger.Warn("could not read high score", "error", err)
		return 0
	}
	return best
}

func (m Model) difficulty() string {
	if m.opts.Difficulty == "" {
		return storage.DefaultDifficulty
	}
	return string(m.opts.Difficulty)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".rabbit", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	if m.board != nil {
		return m.board.View()
	}

	// Render game to screen buffer
	m.game.Render(m.screen)
	if m.opts.Store != nil {
		best := fmt.Sprintf(" Best: %d ", max(m.best, m.gameState.Score))
		m.screen.DrawTextColored(m.screen.Width()-len(best)-2, 1, best, core.ColorYellow)
	}

	// Convert screen to string
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game.
func Run(game *rabbit.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
