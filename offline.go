package audio8

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	intaudio "github.com/cbegin/audio8-go/internal/audio"
	intnotes "github.com/cbegin/audio8-go/internal/notes"
	inttone "github.com/cbegin/audio8-go/internal/tone"
)

// RenderTones mixes count samples of the given tones without a device.
// Each tone is applied to its voice as PlayTone would; durations are
// ignored and invalid tones are dropped.
func RenderTones(sampleRate, count int, tones ...Tone) []byte {
	var voices [inttone.Voices]inttone.Voice
	for _, t := range tones {
		if t.valid() {
			voices[t.Voice] = t.voice(sampleRate)
		}
	}
	out := make([]byte, count)
	inttone.Mix(&voices, out, intaudio.SilenceU8)
	return out
}

// RenderNotes renders a melody the way PlayNotes plays it, with each
// duration rounded up to whole Quantum steps as the live wait does.
func RenderNotes(sampleRate, increment, volume int, notes string) []byte {
	if increment < MinIncrement {
		return nil
	}
	var voices [inttone.Voices]inttone.Voice
	var out []byte
	for _, tok := range intnotes.Parse(notes) {
		if !tok.Recognized() {
			continue
		}
		t := Tone{Hz: tok.Hz, Duration: tok.Duration(increment), Volume: volume}
		if !t.valid() {
			continue
		}
		voices[0] = t.voice(sampleRate)
		chunk := make([]byte, samplesFor(t.Duration, sampleRate))
		inttone.Mix(&voices, chunk, intaudio.SilenceU8)
		out = append(out, chunk...)
		voices[0].Hz = 0
	}
	return out
}

func samplesFor(durationMs, sampleRate int) int {
	step := int(Quantum.Milliseconds())
	quanta := (durationMs + step - 1) / step
	return quanta * step * sampleRate / 1000
}

// EncodeWAV writes mono unsigned 8-bit samples as a PCM WAV file.
func EncodeWAV(w io.WriteSeeker, samples []byte, sampleRate int) error {
	enc := wav.NewEncoder(w, sampleRate, 8, 1, 1)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, len(samples)),
		SourceBitDepth: 8,
	}
	for i, s := range samples {
		buf.Data[i] = int(s)
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	return nil
}
