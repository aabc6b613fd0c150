//go:build !headless

package audio

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

func init() {
	Register("oto", openOto)
}

var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoErr  error
	otoSpec Spec
)

// oto, like ebiten, allows one context per process.
func sharedOtoContext(spec Spec) (*oto.Context, error) {
	otoOnce.Do(func() {
		otoSpec = spec
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   spec.SampleRate,
			ChannelCount: spec.Channels,
			Format:       oto.FormatUnsignedInt8,
			BufferSize:   spec.Period(),
		})
		if err != nil {
			otoErr = err
			return
		}
		<-ready
		otoCtx = ctx
	})
	if otoErr != nil {
		return nil, otoErr
	}
	if otoSpec.SampleRate != spec.SampleRate || otoSpec.Channels != spec.Channels {
		return nil, fmt.Errorf("oto context already initialized at %d Hz/%d ch", otoSpec.SampleRate, otoSpec.Channels)
	}
	return otoCtx, nil
}

type otoDevice struct {
	spec   Spec
	player *oto.Player
	reader *StreamReader
}

func openOto(spec Spec, fill FillFunc) (Device, error) {
	ctx, err := sharedOtoContext(spec)
	if err != nil {
		return nil, err
	}
	reader := NewStreamReader(fill, LayoutU8Mono)
	pl := ctx.NewPlayer(reader)
	pl.SetBufferSize(spec.Samples * spec.Channels)
	return &otoDevice{spec: spec, player: pl, reader: reader}, nil
}

func (d *otoDevice) Spec() Spec { return d.spec }

func (d *otoDevice) Resume() error {
	if !d.player.IsPlaying() {
		d.player.Play()
	}
	return nil
}

func (d *otoDevice) Pause() error {
	d.player.Pause()
	return nil
}

func (d *otoDevice) Close() error {
	d.player.Pause()
	if err := d.player.Close(); err != nil {
		return err
	}
	return d.reader.Close()
}
