package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/run-rabbit/internal/core"
)

func drain(t *testing.T, s beep.Streamer) (total int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	for range 1000 {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = max(peak, buf[i][0], -buf[i][0])
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("streamer never finished")
	return 0, 0
}

func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(440, 100*time.Millisecond, WaveSine, rate)

	total, peak := drain(t, osc)
	if total != rate.N(100*time.Millisecond) {
		t.Errorf("streamed %d samples, expected %d", total, rate.N(100*time.Millisecond))
	}
	if peak > 1.0 {
		t.Errorf("peak %f out of range", peak)
	}
}

func TestSquareWaveValues(t *testing.T) {
	osc := NewOscillator(220, 20*time.Millisecond, WaveSquare, beep.SampleRate(44100))
	buf := make([][2]float64, 64)
	n, _ := osc.Stream(buf)
	for i := 0; i < n; i++ {
		if v := buf[i][0]; v != 1.0 && v != -1.0 {
			t.Fatalf("square sample %d = %f", i, v)
		}
	}
}

func TestEnvelopeStartsSilent(t *testing.T) {
	rate := beep.SampleRate(44100)
	d := 50 * time.Millisecond
	env := NewEnvelope(NewOscillator(0, d, WaveSquare, rate), d, 10*time.Millisecond, 10*time.Millisecond, rate)

	buf := make([][2]float64, 1)
	env.Stream(buf)
	if buf[0][0] != 0 {
		t.Errorf("first sample = %f, expected 0 at the start of the attack", buf[0][0])
	}
}

func TestCueForEveryEvent(t *testing.T) {
	tests := []struct {
		kind    core.EventKind
		audible bool
	}{
		{core.EventCarrotCollected, true},
		{core.EventStrike, true},
		{core.EventChaseStarted, true},
		{core.EventChaseEnded, true},
		{core.EventGameOver, true},
		{core.EventRestarted, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			s := Cue(core.Event{Kind: tt.kind}, SampleRate, 1)
			if (s != nil) != tt.audible {
				t.Fatalf("Cue(%v) audible = %v, expected %v", tt.kind, s != nil, tt.audible)
			}
			if s == nil {
				return
			}
			total, peak := drain(t, s)
			if total == 0 || peak == 0 {
				t.Errorf("cue produced no sound: %d samples, peak %f", total, peak)
			}
		})
	}
}

func TestMutedCueIsSilent(t *testing.T) {
	s := Cue(core.Event{Kind: core.EventStrike}, SampleRate, 0)
	if _, peak := drain(t, s); peak != 0 {
		t.Errorf("muted cue peak = %f", peak)
	}
}

func TestPlayerWithoutDeviceIgnoresEvents(t *testing.T) {
	p := NewPlayer(1)
	p.OnStep(core.InputFrame{}, core.StepResult{Events: []core.Event{{Kind: core.EventStrike}}})
	if p.mixer.Len() != 0 {
		t.Errorf("mixer has %d streamers before Init", p.mixer.Len())
	}
	p.Close()
}
