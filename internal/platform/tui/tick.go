// Package tui provides the Bubble Tea front-end for Run Rabbit.
// It handles the terminal UI loop, input mapping, the scoreboard and SSH sessions.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// Owner identifies the model that scheduled it; an empty owner is accepted by any model.
type TickMsg struct {
	Time  time.Time
	Owner string
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(owner string, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Owner: owner}
	})
}
