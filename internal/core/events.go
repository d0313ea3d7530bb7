package core

// EventKind identifies something notable that happened during a tick.
type EventKind int

const (
	EventCarrotCollected EventKind = iota + 1
	EventStrike                    // Obstacle hit
	EventChaseStarted
	EventChaseEnded // Chase timer ran out without a catch
	EventGameOver
	EventRestarted
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventCarrotCollected:
		return "carrot"
	case EventStrike:
		return "strike"
	case EventChaseStarted:
		return "chase_started"
	case EventChaseEnded:
		return "chase_ended"
	case EventGameOver:
		return "game_over"
	case EventRestarted:
		return "restarted"
	default:
		return "unknown"
	}
}

// EndReason describes why a run ended.
type EndReason int

const (
	ReasonNone EndReason = iota
	ReasonPit
	ReasonCaught
	ReasonSecondStrike
	ReasonQuit // Player left before the run ended
)

// String returns the stable name used in logs and the score database.
func (r EndReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonPit:
		return "pit"
	case ReasonCaught:
		return "caught"
	case ReasonSecondStrike:
		return "second_strike"
	case ReasonQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Event is emitted by a simulation step.
type Event struct {
	Kind   EventKind
	Tick   int       // Simulation tick the event happened on
	Points int       // Score awarded (carrot events)
	Reason EndReason // Set on game over events
}

// StepListener observes every simulated tick: the input that was applied and
// the result it produced. Sound and replay recording hook in here.
type StepListener interface {
	OnStep(in InputFrame, res StepResult)
}

// StepFunc adapts a function to StepListener.
type StepFunc func(in InputFrame, res StepResult)

// OnStep calls f.
func (f StepFunc) OnStep(in InputFrame, res StepResult) {
	f(in, res)
}
