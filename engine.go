package audio8

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	intaudio "github.com/cbegin/audio8-go/internal/audio"
	intnotes "github.com/cbegin/audio8-go/internal/notes"
	inttone "github.com/cbegin/audio8-go/internal/tone"
)

type Effect = inttone.Effect

const (
	EffectNone   = inttone.EffectNone
	EffectFixed  = inttone.EffectFixed
	EffectUp     = inttone.EffectUp
	EffectDown   = inttone.EffectDown
	EffectBounce = inttone.EffectBounce
)

const (
	Voices    = inttone.Voices
	MaxVolume = inttone.MaxVolume
	// MinIncrement is the shortest note increment PlayNotes accepts, in ms.
	MinIncrement = 50
)

// ParseEffect accepts an effect name or number.
func ParseEffect(s string) (Effect, error) { return inttone.ParseEffect(s) }

// Tone is a play request for one voice. Duration is in milliseconds and 0
// keeps the tone playing until the voice is reused. Level and Low shape the
// effect; Low only matters for EffectBounce.
type Tone struct {
	Voice    int
	Hz       int
	Duration int
	Volume   int
	Effect   Effect
	Level    int
	Low      int
}

func (t Tone) valid() bool {
	return t.Voice >= 0 && t.Voice < Voices &&
		t.Volume >= 0 && t.Volume <= MaxVolume &&
		t.Effect.Valid() &&
		t.Duration >= 0 &&
		t.Hz >= 0
}

func (t Tone) voice(sampleRate int) inttone.Voice {
	return inttone.NewVoice(sampleRate, t.Hz, t.Duration, t.Volume, t.Effect, t.Level, t.Low)
}

// Engine owns the four voices and the device that plays them.
type Engine struct {
	bank    *inttone.Bank
	device  intaudio.Device
	spec    intaudio.Spec
	parser  *intnotes.Parser
	logger  *log.Logger
	quantum time.Duration
	after   func(time.Duration) <-chan time.Time

	closeOnce sync.Once
	closeErr  error
}

// New opens the audio device and returns an engine with every voice silent.
// A device that cannot be opened is reported as *audio.DeviceError.
func New(opts ...Option) (*Engine, error) {
	cfg := defaultEngineConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.sampleRate <= 0 {
		return nil, errors.New("sampleRate must be positive")
	}
	spec := intaudio.DefaultSpec()
	spec.SampleRate = cfg.sampleRate
	spec.Samples = cfg.bufferSize

	e := &Engine{
		bank:    inttone.NewBank(spec.Silence),
		spec:    spec,
		parser:  intnotes.NewParser(intnotes.DefaultParserConfig()),
		logger:  cfg.logger,
		quantum: cfg.quantum,
		after:   cfg.after,
	}
	dev, err := intaudio.Open(cfg.backend, spec, e.bank.Fill)
	if err != nil {
		return nil, err
	}
	e.device = dev
	e.spec = dev.Spec()
	e.logger.Printf("audio8: %d Hz, %d samples per buffer, silence %d", e.spec.SampleRate, e.spec.Samples, e.spec.Silence)
	return e, nil
}

func (e *Engine) SampleRate() int { return e.spec.SampleRate }

// PlayTone applies t to its voice and starts the device. Requests with an
// out of range voice, volume, effect, duration or frequency are ignored.
//
// With a positive Duration the call blocks in Quantum steps until the
// duration has passed and then silences the voice. Cancelling ctx ends the
// wait early; the voice is silenced and ctx.Err() returned.
func (e *Engine) PlayTone(ctx context.Context, t Tone) error {
	if !t.valid() {
		e.logger.Printf("audio8: ignoring tone %+v", t)
		return nil
	}
	e.bank.Set(t.Voice, t.voice(e.spec.SampleRate))
	e.logger.Printf("audio8: voice %d playing %d Hz for %d ms at volume %d (%s)", t.Voice, t.Hz, t.Duration, t.Volume, t.Effect)
	if err := e.device.Resume(); err != nil {
		e.logger.Printf("audio8: resume device: %v", err)
	}
	if t.Duration == 0 {
		return nil
	}
	err := e.wait(ctx, time.Duration(t.Duration)*time.Millisecond)
	e.bank.Silence(t.Voice)
	return err
}

func (e *Engine) wait(ctx context.Context, d time.Duration) error {
	for d > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.after(e.quantum):
		}
		d -= e.quantum
	}
	return nil
}

// PlayNotes plays a melody on voice 0, one token at a time; see
// notes.Parser for the syntax. increment is the length of a plain note in
// ms and must be at least MinIncrement. Unrecognized bytes are skipped.
func (e *Engine) PlayNotes(ctx context.Context, increment, volume int, notes string) error {
	if increment < MinIncrement {
		return nil
	}
	for _, tok := range e.parser.Parse(notes) {
		if !tok.Recognized() {
			e.logger.Printf("audio8: skipping %q at offset %d", tok.Byte, tok.Pos)
			continue
		}
		err := e.PlayTone(ctx, Tone{
			Voice:    0,
			Hz:       tok.Hz,
			Duration: tok.Duration(increment),
			Volume:   volume,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Stop silences a voice by playing 0 Hz at volume 0.
func (e *Engine) Stop(voice int) {
	_ = e.PlayTone(context.Background(), Tone{Voice: voice})
}

func (e *Engine) StopAll() {
	for v := 0; v < Voices; v++ {
		e.Stop(v)
	}
}

// Voice returns a snapshot of a voice's state.
func (e *Engine) Voice(i int) (inttone.Voice, bool) {
	return e.bank.Voice(i)
}

// Close pauses and shuts down the device. It is safe to call more than once.
func (e *Engine) Close() error {
	e.closeOnce.Do(func() {
		if err := e.device.Pause(); err != nil {
			e.logger.Printf("audio8: pause device: %v", err)
		}
		e.closeErr = e.device.Close()
	})
	return e.closeErr
}
