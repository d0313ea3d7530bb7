// Package replay records the inputs of a session and re-simulates them.
//
// A recording holds everything that determines a session: the seed, the
// resolved game configuration, the tick rate and the actions applied at each
// simulation step. Feeding it back through a fresh game reproduces every run.
package replay

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/run-rabbit/internal/config"
	"github.com/vovakirdan/run-rabbit/internal/core"
	"github.com/vovakirdan/run-rabbit/internal/games/rabbit"
)

// File header.
const (
	Magic   = "RRPL"
	Version = 1
)

var (
	// ErrBadMagic is returned when a file is not a recording.
	ErrBadMagic = errors.New("replay: not a recording")
	// ErrVersion is returned for recordings written by another format version.
	ErrVersion = errors.New("replay: unsupported version")
)

// Entry is the set of actions applied at one step.
type Entry struct {
	Step    int           `msgpack:"step"`
	Actions []core.Action `msgpack:"actions"`
}

// Recording is a complete, replayable session.
type Recording struct {
	Seed       int64               `msgpack:"seed"`
	Difficulty string              `msgpack:"difficulty"`
	TickRate   int                 `msgpack:"tick_rate"`
	Config     config.RabbitConfig `msgpack:"config"`
	Steps      int                 `msgpack:"steps"`
	Entries    []Entry             `msgpack:"entries"`
	RecordedAt time.Time           `msgpack:"recorded_at"`
}

// recorded lists the actions that influence the simulation.
var recorded = map[core.Action]bool{
	core.ActionJump:    true,
	core.ActionPause:   true,
	core.ActionRestart: true,
}

// Recorder captures the input of every step. It implements core.StepListener.
type Recorder struct {
	rec Recording
}

// NewRecorder starts a recording for a session that was reset with seed.
func NewRecorder(seed int64, preset config.DifficultyPreset, cfg config.RabbitConfig, tickRate int) *Recorder {
	return &Recorder{rec: Recording{
		Seed:       seed,
		Difficulty: string(preset),
		TickRate:   tickRate,
		Config:     cfg,
		RecordedAt: time.Now().UTC(),
	}}
}

// OnStep appends the step's input.
func (r *Recorder) OnStep(in core.InputFrame, _ core.StepResult) {
	var actions []core.Action
	for _, a := range in.List() {
		if recorded[a] {
			actions = append(actions, a)
		}
	}
	if len(actions) > 0 {
		r.rec.Entries = append(r.rec.Entries, Entry{Step: r.rec.Steps, Actions: actions})
	}
	r.rec.Steps++
}

// Recording returns a copy of what has been captured so far.
func (r *Recorder) Recording() Recording {
	rec := r.rec
	rec.Entries = append([]Entry(nil), r.rec.Entries...)
	return rec
}

// Save writes the recording to path.
func (r *Recorder) Save(path string) error {
	rec := r.Recording()
	return rec.SaveFile(path)
}

// Encode writes the header and the msgpack body.
func (rec *Recording) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Magic); err != nil {
		return fmt.Errorf("replay: write header: %w", err)
	}
	if err := bw.WriteByte(Version); err != nil {
		return fmt.Errorf("replay: write header: %w", err)
	}

	enc := msgpack.NewEncoder(bw)
	enc.SetCustomStructTag("yaml")
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("replay: encode: %w", err)
	}
	return bw.Flush()
}

// SaveFile writes the recording to a new file at path.
func (rec *Recording) SaveFile(path string) error {
	var buf bytes.Buffer
	if err := rec.Encode(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("replay: write %s: %w", path, err)
	}
	return nil
}

// Decode reads a recording written by Encode.
func Decode(r io.Reader) (*Recording, error) {
	br := bufio.NewReader(r)

	header := make([]byte, len(Magic)+1)
	if _, err := io.ReadFull(br, header); err != nil {
		return nil, ErrBadMagic
	}
	if string(header[:len(Magic)]) != Magic {
		return nil, ErrBadMagic
	}
	if v := header[len(Magic)]; v != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, v)
	}

	dec := msgpack.NewDecoder(br)
	dec.SetCustomStructTag("yaml")
	var rec Recording
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("replay: decode: %w", err)
	}
	return &rec, nil
}

// LoadFile reads a recording from path.
func LoadFile(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Validate checks that the recording can be replayed.
func (rec *Recording) Validate() error {
	var errs []error
	if rec.Seed == 0 {
		errs = append(errs, errors.New("seed must be set"))
	}
	if rec.Steps < 0 {
		errs = append(errs, fmt.Errorf("steps must not be negative, got %d", rec.Steps))
	}
	last := -1
	for i, e := range rec.Entries {
		if e.Step <= last || e.Step >= rec.Steps {
			errs = append(errs, fmt.Errorf("entry %d: step %d out of order", i, e.Step))
			break
		}
		last = e.Step
	}
	if err := rec.Config.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("replay: invalid recording: %w", errors.Join(errs...))
	}
	return nil
}

// Result is the outcome of a replay.
type Result struct {
	Runs  []rabbit.RunStats // Every run that ended, in order
	Final rabbit.RunStats   // State of the last run when the recording stops
	Steps int
}

// Replay re-simulates the recording headlessly.
func Replay(rec *Recording) (Result, error) {
	if err := rec.Validate(); err != nil {
		return Result{}, err
	}

	game := rabbit.New(rec.Config)
	game.Reset(core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: rec.TickRate,
		Seed:     rec.Seed,
	})

	var res Result
	next := 0
	frame := core.NewInputFrame()
	for step := range rec.Steps {
		frame.Clear()
		if next < len(rec.Entries) && rec.Entries[next].Step == step {
			for _, a := range rec.Entries[next].Actions {
				frame.Set(a)
			}
			next++
		}

		out := game.Step(frame)
		for _, e := range out.Events {
			if e.Kind == core.EventGameOver {
				res.Runs = append(res.Runs, game.Stats())
			}
		}
	}

	res.Final = game.Stats()
	res.Steps = rec.Steps
	return res, nil
}
