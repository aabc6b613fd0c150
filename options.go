package audio8

import (
	"io"
	"log"
	"time"
)

const (
	DefaultSampleRate = 22050
	DefaultBufferSize = 512
	// Quantum is the step in which tone durations are waited out.
	Quantum = 50 * time.Millisecond
)

type Option func(*engineConfig)

type engineConfig struct {
	backend    string
	sampleRate int
	bufferSize int
	logger     *log.Logger
	quantum    time.Duration
	after      func(time.Duration) <-chan time.Time
}

func defaultEngineConfig() engineConfig {
	return engineConfig{
		sampleRate: DefaultSampleRate,
		bufferSize: DefaultBufferSize,
		logger:     log.New(io.Discard, "", 0),
		quantum:    Quantum,
		after:      time.After,
	}
}

// WithBackend selects the audio backend by name ("ebiten", "oto", "pulse",
// "null", ...). Empty picks the platform default.
func WithBackend(name string) Option {
	return func(cfg *engineConfig) {
		cfg.backend = name
	}
}

func WithSampleRate(hz int) Option {
	return func(cfg *engineConfig) {
		cfg.sampleRate = hz
	}
}

// WithBufferSize sets the number of samples per device callback.
func WithBufferSize(samples int) Option {
	return func(cfg *engineConfig) {
		cfg.bufferSize = samples
	}
}

// WithLogger enables debug traces of applied tones and skipped note bytes.
func WithLogger(l *log.Logger) Option {
	return func(cfg *engineConfig) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// WithQuantum changes the wait step used to enforce durations.
func WithQuantum(d time.Duration) Option {
	return func(cfg *engineConfig) {
		if d > 0 {
			cfg.quantum = d
		}
	}
}

// WithClock replaces time.After for duration waits.
func WithClock(after func(time.Duration) <-chan time.Time) Option {
	return func(cfg *engineConfig) {
		if after != nil {
			cfg.after = after
		}
	}
}
