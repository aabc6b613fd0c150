package audio

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Format is the sample encoding a device is opened with.
type Format int

const (
	// FormatU8 is unsigned 8-bit PCM centred on SilenceU8.
	FormatU8 Format = iota + 1
)

// SilenceU8 is the zero level of FormatU8.
const SilenceU8 = 128

// Spec describes the stream a device plays.
type Spec struct {
	SampleRate int
	Format     Format
	Channels   int
	Samples    int // samples per callback buffer
	Silence    byte
}

func DefaultSpec() Spec {
	return Spec{
		SampleRate: 22050,
		Format:     FormatU8,
		Channels:   1,
		Samples:    512,
		Silence:    SilenceU8,
	}
}

// Period is the cadence at which a device asks for a new buffer.
func (s Spec) Period() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}
	return time.Duration(s.Samples) * time.Second / time.Duration(s.SampleRate)
}

func (s Spec) validate() error {
	switch {
	case s.SampleRate <= 0:
		return errors.New("sample rate must be positive")
	case s.Format != FormatU8:
		return fmt.Errorf("unsupported sample format %d", s.Format)
	case s.Channels != 1:
		return fmt.Errorf("unsupported channel count %d", s.Channels)
	case s.Samples <= 0:
		return errors.New("buffer size must be positive")
	}
	return nil
}

// FillFunc writes len(buf) samples into buf. Backends call it from their
// audio goroutine; it must not block.
type FillFunc func(buf []byte)

// Device is an opened output stream. A device starts paused.
type Device interface {
	Spec() Spec
	Resume() error
	Pause() error
	Close() error
}

// Opener opens a device for a backend.
type Opener func(spec Spec, fill FillFunc) (Device, error)

var ErrUnknownBackend = errors.New("unknown backend")

// DeviceError reports a device that could not be opened.
type DeviceError struct {
	Backend string
	Err     error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("audio: open %s device: %v", e.Backend, e.Err)
}

func (e *DeviceError) Unwrap() error { return e.Err }

var (
	backendsMu     sync.Mutex
	backends       = map[string]Opener{}
	defaultBackend = "null"
)

// Register makes a backend available to Open. Backends register from init.
func Register(name string, open Opener) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[name] = open
}

// Backends lists the registered backend names.
func Backends() []string {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultBackend is the backend Open uses for an empty name.
func DefaultBackend() string {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	return defaultBackend
}

func setDefaultBackend(name string) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	defaultBackend = name
}

// Open opens a paused device on the named backend. Every failure is a *DeviceError.
func Open(backend string, spec Spec, fill FillFunc) (Device, error) {
	if backend == "" {
		backend = DefaultBackend()
	}
	if err := spec.validate(); err != nil {
		return nil, &DeviceError{Backend: backend, Err: err}
	}
	if fill == nil {
		return nil, &DeviceError{Backend: backend, Err: errors.New("nil fill function")}
	}
	backendsMu.Lock()
	open, ok := backends[backend]
	backendsMu.Unlock()
	if !ok {
		return nil, &DeviceError{Backend: backend, Err: ErrUnknownBackend}
	}
	dev, err := open(spec, fill)
	if err != nil {
		return nil, &DeviceError{Backend: backend, Err: err}
	}
	return dev, nil
}
