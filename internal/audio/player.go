package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/run-rabbit/internal/core"
)

// SampleRate is the output rate of every cue.
const SampleRate = beep.SampleRate(44100)

// Player turns simulation events into sound through the system speaker.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewPlayer creates a player. Nothing is audible until Init succeeds.
func NewPlayer(volume float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Init opens the audio device.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Handle queues a cue for every audible event.
func (p *Player) Handle(events []core.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	for _, e := range events {
		if s := Cue(e, SampleRate, p.volume); s != nil {
			speaker.Lock()
			p.mixer.Add(s)
			speaker.Unlock()
		}
	}
}

// OnStep plays the cues of one simulation step.
func (p *Player) OnStep(_ core.InputFrame, res core.StepResult) {
	p.Handle(res.Events)
}

// Close silences pending cues and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}
