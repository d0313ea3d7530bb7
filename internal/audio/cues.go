// Package audio plays short synthesized cues for game events.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/run-rabbit/internal/core"
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a wave whose frequency moves linearly from start to end.
type oscillator struct {
	start    float64
	end      float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	noise    *rand.Rand
}

// NewOscillator creates a fixed-frequency oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding from one frequency to another.
func NewSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		start:    from,
		end:      to,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		noise:    rand.New(rand.NewSource(1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.noise.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.duration)
		freq := o.start + (o.end-o.start)*t
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s with a linear attack and release over duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = min(vol, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func tone(from, to float64, d, attack, release time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewSweep(from, to, d, wave, rate), d, attack, release, rate)
}

// Cue returns the streamer for an event, or nil if the event is silent.
func Cue(e core.Event, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch e.Kind {
	case core.EventCarrotCollected:
		d := 180 * time.Millisecond
		s = beep.Mix(
			newVolume(tone(1320, 1320, d, 2*time.Millisecond, 150*time.Millisecond, WaveSine, rate), 0.7),
			newVolume(tone(2640, 2640, d, 2*time.Millisecond, 90*time.Millisecond, WaveSine, rate), 0.3),
		)
	case core.EventStrike:
		s = tone(110, 90, 160*time.Millisecond, 5*time.Millisecond, 60*time.Millisecond, WaveSaw, rate)
	case core.EventChaseStarted:
		s = tone(300, 900, 350*time.Millisecond, 10*time.Millisecond, 80*time.Millisecond, WaveSquare, rate)
	case core.EventChaseEnded:
		s = tone(700, 250, 300*time.Millisecond, 10*time.Millisecond, 120*time.Millisecond, WaveSine, rate)
	case core.EventGameOver:
		d := 500 * time.Millisecond
		s = beep.Mix(
			newVolume(tone(0, 0, d, 5*time.Millisecond, 400*time.Millisecond, WaveNoise, rate), 0.4),
			newVolume(tone(80, 50, d, 5*time.Millisecond, 400*time.Millisecond, WaveSine, rate), 0.6),
		)
	default:
		return nil
	}
	return newVolume(s, volume)
}
