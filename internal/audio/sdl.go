//go:build sdl

package audio

import (
	"errors"
	"sync"
	"time"

	"github.com/faiface/mainthread"
	"github.com/veandco/go-sdl2/sdl"
)

func init() {
	Register("sdl", openSDL)
}

// sdlDevice queues AUDIO_U8 buffers on an SDL audio device. SDL must be
// initialised on the main thread, so the caller has to run the program
// under mainthread.Run.
type sdlDevice struct {
	spec Spec
	id   sdl.AudioDeviceID
	fill FillFunc

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

func openSDL(spec Spec, fill FillFunc) (Device, error) {
	var err error
	mainthread.Call(func() {
		err = sdl.InitSubSystem(sdl.INIT_AUDIO)
	})
	if err != nil {
		return nil, err
	}
	want := sdl.AudioSpec{
		Freq:     int32(spec.SampleRate),
		Format:   sdl.AUDIO_U8,
		Channels: uint8(spec.Channels),
		Samples:  uint16(spec.Samples),
	}
	var got sdl.AudioSpec
	id, err := sdl.OpenAudioDevice("", false, &want, &got, 0)
	if err != nil {
		sdl.QuitSubSystem(sdl.INIT_AUDIO)
		return nil, err
	}
	if got.Format != sdl.AUDIO_U8 {
		sdl.CloseAudioDevice(id)
		sdl.QuitSubSystem(sdl.INIT_AUDIO)
		return nil, errors.New("sdl refused AUDIO_U8")
	}
	spec.Silence = got.Silence
	return &sdlDevice{spec: spec, id: id, fill: fill}, nil
}

func (d *sdlDevice) Spec() Spec { return d.spec }

func (d *sdlDevice) Resume() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return nil
	}
	d.running = true
	d.stop = make(chan struct{})
	d.done = make(chan struct{})
	go d.pump(d.stop, d.done)
	sdl.PauseAudioDevice(d.id, false)
	return nil
}

func (d *sdlDevice) Pause() error {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return nil
	}
	d.running = false
	stop, done := d.stop, d.done
	d.mu.Unlock()
	sdl.PauseAudioDevice(d.id, true)
	close(stop)
	<-done
	return nil
}

func (d *sdlDevice) Close() error {
	err := d.Pause()
	sdl.ClearQueuedAudio(d.id)
	sdl.CloseAudioDevice(d.id)
	sdl.QuitSubSystem(sdl.INIT_AUDIO)
	return err
}

// pump keeps about two buffers queued, which is what SDL's own callback
// thread would hold.
func (d *sdlDevice) pump(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	buf := make([]byte, d.spec.Samples*d.spec.Channels)
	period := d.spec.Period() / 2
	if period <= 0 {
		period = time.Millisecond
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			for sdl.GetQueuedAudioSize(d.id) < uint32(2*len(buf)) {
				d.fill(buf)
				if err := sdl.QueueAudio(d.id, buf); err != nil {
					return
				}
			}
		}
	}
}
