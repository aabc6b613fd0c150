//go:build linux && !headless

package audio

import (
	"sync"

	"github.com/jfreymuth/pulse"
)

func init() {
	Register("pulse", openPulse)
}

// pulseDevice talks to a PulseAudio (or PipeWire) server over its native
// protocol; no cgo involved.
type pulseDevice struct {
	spec   Spec
	client *pulse.Client
	stream *pulse.PlaybackStream

	mu sync.Mutex
}

func openPulse(spec Spec, fill FillFunc) (Device, error) {
	client, err := pulse.NewClient(pulse.ClientApplicationName("audio8"))
	if err != nil {
		return nil, err
	}
	reader := pulse.Uint8Reader(func(buf []byte) (int, error) {
		fill(buf)
		return len(buf), nil
	})
	stream, err := client.NewPlayback(reader,
		pulse.PlaybackSampleRate(spec.SampleRate),
		pulse.PlaybackMono,
		pulse.PlaybackBufferSize(spec.Samples),
	)
	if err != nil {
		client.Close()
		return nil, err
	}
	return &pulseDevice{spec: spec, client: client, stream: stream}, nil
}

func (d *pulseDevice) Spec() Spec { return d.spec }

func (d *pulseDevice) Resume() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.stream.Running() {
		d.stream.Start()
	}
	return d.stream.Error()
}

func (d *pulseDevice) Pause() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stream.Running() {
		d.stream.Stop()
	}
	return nil
}

func (d *pulseDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stream.Close()
	d.client.Close()
	return nil
}
