//go:build !headless

package audio

import (
	"fmt"
	"sync"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

func init() {
	Register("ebiten", openEbiten)
	setDefaultBackend("ebiten")
}

var (
	audioContextOnce sync.Once
	audioContext     *ebitaudio.Context
	audioSampleRate  int
)

// ebiten allows a single audio context per process.
func sharedAudioContext(sampleRate int) (*ebitaudio.Context, error) {
	audioContextOnce.Do(func() {
		audioSampleRate = sampleRate
		audioContext = ebitaudio.NewContext(sampleRate)
	})
	if audioSampleRate != sampleRate {
		return nil, fmt.Errorf("audio context already initialized at %d Hz (requested %d Hz)", audioSampleRate, sampleRate)
	}
	return audioContext, nil
}

type ebitenDevice struct {
	spec   Spec
	player *ebitaudio.Player
	reader *StreamReader
}

func openEbiten(spec Spec, fill FillFunc) (Device, error) {
	ctx, err := sharedAudioContext(spec.SampleRate)
	if err != nil {
		return nil, err
	}
	reader := NewStreamReader(fill, LayoutF32Stereo)
	pl, err := ctx.NewPlayerF32(reader)
	if err != nil {
		return nil, err
	}
	pl.SetBufferSize(spec.Period())
	return &ebitenDevice{spec: spec, player: pl, reader: reader}, nil
}

func (d *ebitenDevice) Spec() Spec { return d.spec }

func (d *ebitenDevice) Resume() error {
	if !d.player.IsPlaying() {
		d.player.Play()
	}
	return nil
}

func (d *ebitenDevice) Pause() error {
	d.player.Pause()
	return nil
}

func (d *ebitenDevice) Close() error {
	d.player.Pause()
	if err := d.player.Close(); err != nil {
		return err
	}
	return d.reader.Close()
}
