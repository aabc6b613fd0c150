package audio8

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	intaudio "github.com/cbegin/audio8-go/internal/audio"
)

// fakeClock fires every wait step immediately and records what voice 0 was
// playing at each step.
type fakeClock struct {
	mu     sync.Mutex
	engine *Engine
	ticks  int
	hz     []int
}

func (c *fakeClock) after(time.Duration) <-chan time.Time {
	c.mu.Lock()
	c.ticks++
	if c.engine != nil {
		v, _ := c.engine.Voice(0)
		c.hz = append(c.hz, v.Hz)
	}
	c.mu.Unlock()
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

func (c *fakeClock) snapshot() (int, []int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticks, append([]int(nil), c.hz...)
}

func newTestEngine(t *testing.T) (*Engine, *fakeClock) {
	t.Helper()
	clock := &fakeClock{}
	e, err := New(WithBackend("null"), WithClock(clock.after))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	clock.engine = e
	t.Cleanup(func() { _ = e.Close() })
	return e, clock
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	_, err := New(WithBackend("theremin"))
	var devErr *intaudio.DeviceError
	if !errors.As(err, &devErr) {
		t.Fatalf("expected *audio.DeviceError, got %v", err)
	}
	if _, err := New(WithBackend("null"), WithSampleRate(0)); err == nil {
		t.Fatalf("expected error for zero sample rate")
	}
}

func TestPlayToneAppliesScaledParameters(t *testing.T) {
	e, _ := newTestEngine(t)
	if err := e.PlayTone(context.Background(), Tone{Voice: 1, Hz: 440, Volume: 5, Effect: EffectBounce, Level: -2, Low: 1}); err != nil {
		t.Fatalf("play tone: %v", err)
	}
	v, _ := e.Voice(1)
	if v.Hz != 440 || v.Wavelength != 50 || v.Volume != 30 || v.Duration != 0 {
		t.Fatalf("unexpected voice %+v", v)
	}
	if v.Env.Effect() != EffectBounce {
		t.Fatalf("effect = %v, want bounce", v.Env.Effect())
	}
	if err := e.PlayTone(context.Background(), Tone{Voice: 1, Hz: 0, Volume: 5}); err != nil {
		t.Fatalf("play tone: %v", err)
	}
	if v, _ = e.Voice(1); v.Hz != 0 || v.Wavelength != 0 {
		t.Fatalf("0 Hz should clear wavelength, got %+v", v)
	}
}

func TestPlayToneIgnoresInvalidRequests(t *testing.T) {
	e, clock := newTestEngine(t)
	if err := e.PlayTone(context.Background(), Tone{Voice: 0, Hz: 440, Volume: 5, Effect: EffectFixed, Level: 3}); err != nil {
		t.Fatalf("play tone: %v", err)
	}
	before, _ := e.Voice(0)
	invalid := []Tone{
		{Voice: 4, Hz: 262, Volume: 5},
		{Voice: -1, Hz: 262, Volume: 5},
		{Voice: 0, Hz: 262, Volume: 11},
		{Voice: 0, Hz: 262, Volume: -1},
		{Voice: 0, Hz: 262, Volume: 5, Effect: Effect(99)},
		{Voice: 0, Hz: 262, Volume: 5, Duration: -50},
		{Voice: 0, Hz: -262, Volume: 5},
	}
	for _, tone := range invalid {
		if err := e.PlayTone(context.Background(), tone); err != nil {
			t.Fatalf("invalid tone %+v returned %v", tone, err)
		}
	}
	after, _ := e.Voice(0)
	if after.Hz != before.Hz || after.Wavelength != before.Wavelength || after.Volume != before.Volume ||
		after.Env.Effect() != before.Env.Effect() {
		t.Fatalf("voice changed by invalid requests: before %+v after %+v", before, after)
	}
	for i := 1; i < Voices; i++ {
		if v, _ := e.Voice(i); v.Hz != 0 {
			t.Fatalf("voice %d touched by invalid requests: %+v", i, v)
		}
	}
	if ticks, _ := clock.snapshot(); ticks != 0 {
		t.Fatalf("invalid requests waited %d steps", ticks)
	}
}

func TestPlayToneWaitsInQuanta(t *testing.T) {
	e, clock := newTestEngine(t)
	if err := e.PlayTone(context.Background(), Tone{Voice: 0, Hz: 262, Duration: 120, Volume: 5}); err != nil {
		t.Fatalf("play tone: %v", err)
	}
	ticks, hz := clock.snapshot()
	if ticks != 3 {
		t.Fatalf("120ms waited %d steps, want 3", ticks)
	}
	for _, h := range hz {
		if h != 262 {
			t.Fatalf("voice 0 played %v during the wait", hz)
		}
	}
	if v, _ := e.Voice(0); v.Hz != 0 {
		t.Fatalf("voice should be silenced after its duration, got %d Hz", v.Hz)
	}
}

func TestPlayToneCancelled(t *testing.T) {
	e, err := New(WithBackend("null"), WithClock(func(time.Duration) <-chan time.Time {
		return make(chan time.Time)
	}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	defer e.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	err = e.PlayTone(ctx, Tone{Voice: 2, Hz: 262, Duration: 60000, Volume: 5})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if v, _ := e.Voice(2); v.Hz != 0 {
		t.Fatalf("cancelled voice still playing %d Hz", v.Hz)
	}
}

func TestPlayNotesHoldsAndOctaves(t *testing.T) {
	e, clock := newTestEngine(t)
	if err := e.PlayNotes(context.Background(), 100, 5, "C--"); err != nil {
		t.Fatalf("play notes: %v", err)
	}
	ticks, hz := clock.snapshot()
	if ticks != 6 {
		t.Fatalf("C-- at 100ms waited %d steps, want 6", ticks)
	}
	for _, h := range hz {
		if h != 65 {
			t.Fatalf("expected C at 65 Hz throughout, got %v", hz)
		}
	}

	e, clock = newTestEngine(t)
	if err := e.PlayNotes(context.Background(), 50, 5, "^C D"); err != nil {
		t.Fatalf("play notes: %v", err)
	}
	_, hz = clock.snapshot()
	want := []int{131, 0, 147}
	if len(hz) != len(want) {
		t.Fatalf("played %v, want %v", hz, want)
	}
	for i := range want {
		if hz[i] != want[i] {
			t.Fatalf("played %v, want %v", hz, want)
		}
	}
}

func TestPlayNotesSkipsUnknownBytes(t *testing.T) {
	e, clock := newTestEngine(t)
	if err := e.PlayNotes(context.Background(), 50, 5, "CxD"); err != nil {
		t.Fatalf("play notes: %v", err)
	}
	_, hz := clock.snapshot()
	if len(hz) != 2 || hz[0] != 65 || hz[1] != 73 {
		t.Fatalf("played %v, want [65 73]", hz)
	}
}

func TestPlayNotesIgnoresInvalidArguments(t *testing.T) {
	e, clock := newTestEngine(t)
	if err := e.PlayNotes(context.Background(), 49, 5, "CDE"); err != nil {
		t.Fatalf("play notes: %v", err)
	}
	if err := e.PlayNotes(context.Background(), 100, 11, "CDE"); err != nil {
		t.Fatalf("play notes: %v", err)
	}
	if ticks, _ := clock.snapshot(); ticks != 0 {
		t.Fatalf("invalid melodies waited %d steps", ticks)
	}
	if v, _ := e.Voice(0); v.Hz != 0 {
		t.Fatalf("voice 0 should be untouched, got %+v", v)
	}
}

func TestPlayChordRunsVoicesConcurrently(t *testing.T) {
	e, clock := newTestEngine(t)
	err := e.PlayChord(context.Background(),
		Tone{Voice: 0, Hz: 262, Duration: 100, Volume: 5},
		Tone{Voice: 1, Hz: 330, Duration: 50, Volume: 5},
		Tone{Voice: 2, Hz: 392, Volume: 5, Effect: EffectDown, Level: 1},
		Tone{Voice: 7, Hz: 392, Volume: 5},
	)
	if err != nil {
		t.Fatalf("play chord: %v", err)
	}
	if ticks, _ := clock.snapshot(); ticks != 3 {
		t.Fatalf("chord waited %d steps, want 3", ticks)
	}
	for i, want := range []int{0, 0, 392, 0} {
		if v, _ := e.Voice(i); v.Hz != want {
			t.Fatalf("voice %d = %d Hz, want %d", i, v.Hz, want)
		}
	}
	e.StopAll()
	if v, _ := e.Voice(2); v.Hz != 0 || v.Volume != 0 {
		t.Fatalf("voice 2 still playing after StopAll: %+v", v)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	e, err := New(WithBackend("null"))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
