package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/run-rabbit/internal/config"
	"github.com/vovakirdan/run-rabbit/internal/storage"
)

func sendMenu(m MenuModel, msg tea.Msg) MenuModel {
	next, _ := m.Update(msg)
	return next.(MenuModel)
}

func TestMenuNavigationAndSelect(t *testing.T) {
	m := NewMenuModel(nil, testRuntime())

	m = sendMenu(m, tea.KeyMsg{Type: tea.KeyEnter})
	if sel := m.Selected(); sel == nil || sel.Preset != config.DifficultyNormal {
		t.Fatalf("default selection = %+v, expected normal", sel)
	}

	m = NewMenuModel(nil, testRuntime())
	m = sendMenu(m, tea.KeyMsg{Type: tea.KeyDown})
	m = sendMenu(m, tea.KeyMsg{Type: tea.KeyDown})
	m = sendMenu(m, tea.KeyMsg{Type: tea.KeyDown}) // clamps at the last item
	m = sendMenu(m, tea.KeyMsg{Type: tea.KeyEnter})
	if sel := m.Selected(); sel == nil || sel.Preset != config.DifficultyFixed {
		t.Fatalf("selection = %+v, expected fixed", sel)
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := sendMenu(NewMenuModel(nil, testRuntime()), tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() {
		t.Error("tab should request the scoreboard")
	}

	m = sendMenu(NewMenuModel(nil, testRuntime()), runeKey("q"))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q should quit the menu")
	}
}

func TestMenuShowsBestScores(t *testing.T) {
	store := testStore(t)
	if _, err := store.SaveRun(storage.Run{RunID: "a", Difficulty: "hard", Score: 240, EndReason: "caught"}); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	m := NewMenuModel(store, testRuntime())
	for _, item := range m.items {
		if item.Preset == config.DifficultyHard && item.Best != 240 {
			t.Errorf("hard best = %d, expected 240", item.Best)
		}
	}
	if !strings.Contains(m.View(), "best 240") {
		t.Error("menu view should show the best score")
	}
}

func TestSessionMenuToRunAndBack(t *testing.T) {
	s := NewSessionModel(testStore(t), testRuntime(), config.DefaultRabbitConfig(), log.New(io.Discard))

	step := func(msg tea.Msg) {
		next, _ := s.Update(msg)
		s = next.(SessionModel)
	}

	step(tea.KeyMsg{Type: tea.KeyEnter})
	if s.gameModel == nil {
		t.Fatal("enter should start a run")
	}
	if s.gameModel.opts.Difficulty != config.DifficultyNormal || !s.gameModel.opts.AllowBack {
		t.Errorf("run options = %+v", s.gameModel.opts)
	}

	step(TickMsg{})
	step(runeKey("p"))
	step(TickMsg{})
	step(runeKey("b"))
	if s.gameModel != nil {
		t.Fatal("back from a paused run should return to the menu")
	}
	if !strings.Contains(s.View(), "Choose a difficulty") {
		t.Error("menu should be shown again")
	}

	step(tea.KeyMsg{Type: tea.KeyTab})
	if s.board == nil {
		t.Fatal("tab should open the scoreboard from the menu")
	}
	step(tea.KeyMsg{Type: tea.KeyEsc})
	if s.board != nil {
		t.Fatal("esc should close the scoreboard")
	}
}
