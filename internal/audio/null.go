package audio

import (
	"errors"
	"sync"
	"time"
)

func init() {
	Register("null", func(spec Spec, fill FillFunc) (Device, error) {
		return NewNull(spec, fill, nil), nil
	})
}

// Null is a device without hardware: while running it calls fill once per
// Spec.Period from its own goroutine and hands each buffer to sink.
type Null struct {
	spec Spec
	fill FillFunc
	sink func([]byte)

	mu      sync.Mutex
	running bool
	closed  bool
	stop    chan struct{}
	done    chan struct{}
}

// NewNull returns a paused null device. sink may be nil.
func NewNull(spec Spec, fill FillFunc, sink func([]byte)) *Null {
	return &Null{spec: spec, fill: fill, sink: sink}
}

func (d *Null) Spec() Spec { return d.spec }

func (d *Null) Resume() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return errors.New("device closed")
	}
	if d.running {
		return nil
	}
	d.running = true
	d.stop = make(chan struct{})
	d.done = make(chan struct{})
	go d.loop(d.stop, d.done)
	return nil
}

func (d *Null) Pause() error {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return nil
	}
	d.running = false
	stop, done := d.stop, d.done
	d.mu.Unlock()
	close(stop)
	<-done
	return nil
}

func (d *Null) Close() error {
	err := d.Pause()
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	return err
}

// Running reports whether the callback loop is active.
func (d *Null) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

func (d *Null) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	period := d.spec.Period()
	if period <= 0 {
		period = time.Millisecond
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	buf := make([]byte, d.spec.Samples*d.spec.Channels)
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			d.fill(buf)
			if d.sink != nil {
				d.sink(buf)
			}
		}
	}
}
