//go:build portaudio

package audio

import (
	"sync"

	"github.com/gordonklaus/portaudio"
)

func init() {
	Register("portaudio", openPortAudio)
}

type portaudioDevice struct {
	spec   Spec
	fill   FillFunc
	stream *portaudio.Stream
	buf    []byte

	mu      sync.Mutex
	started bool
}

func openPortAudio(spec Spec, fill FillFunc) (Device, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	d := &portaudioDevice{spec: spec, fill: fill, buf: make([]byte, spec.Samples)}
	stream, err := portaudio.OpenDefaultStream(0, spec.Channels, float64(spec.SampleRate), spec.Samples, d.process)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	d.stream = stream
	return d, nil
}

func (d *portaudioDevice) process(out []float32) {
	if cap(d.buf) < len(out) {
		d.buf = make([]byte, len(out))
	}
	d.buf = d.buf[:len(out)]
	d.fill(d.buf)
	for i, s := range d.buf {
		out[i] = U8ToFloat32(s)
	}
}

func (d *portaudioDevice) Spec() Spec { return d.spec }

func (d *portaudioDevice) Resume() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return nil
	}
	if err := d.stream.Start(); err != nil {
		return err
	}
	d.started = true
	return nil
}

func (d *portaudioDevice) Pause() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.started {
		return nil
	}
	d.started = false
	return d.stream.Stop()
}

func (d *portaudioDevice) Close() error {
	if err := d.Pause(); err != nil {
		return err
	}
	if err := d.stream.Close(); err != nil {
		return err
	}
	return portaudio.Terminate()
}
