package tone

import "sync"

// Mix fills buf with silence and then adds every audible voice into it,
// one sample at a time. Sums wrap at the byte boundary. Voices are mixed
// in slot order and each voice advances its phase before its envelope is
// checked, so output is reproducible bit for bit.
func Mix(voices *[Voices]Voice, buf []byte, silence byte) {
	for i := range buf {
		buf[i] = silence
	}
	for i := range buf {
		for v := range voices {
			vc := &voices[v]
			if !vc.Audible() {
				continue
			}
			buf[i] += byte(Sample(vc.Phase, vc.Wavelength, vc.Volume, vc.Level()))
			vc.Phase++
			if vc.Env != nil && vc.Phase%uint32(vc.Wavelength) == 0 {
				vc.Env = vc.Env.step()
			}
		}
	}
}

// Bank owns the four voices shared between tone requests and the audio
// callback. Every access holds mu for one voice update or one buffer fill.
type Bank struct {
	mu      sync.Mutex
	voices  [Voices]Voice
	silence byte
}

func NewBank(silence byte) *Bank {
	b := &Bank{silence: silence}
	for i := range b.voices {
		b.voices[i].Env = None{}
	}
	return b
}

// Fill is the device callback.
func (b *Bank) Fill(buf []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	Mix(&b.voices, buf, b.silence)
}

// Set replaces voice i. Out of range indexes are ignored.
func (b *Bank) Set(i int, v Voice) {
	if i < 0 || i >= Voices {
		return
	}
	if v.Env == nil {
		v.Env = None{}
	}
	b.mu.Lock()
	b.voices[i] = v
	b.mu.Unlock()
}

// Silence stops voice i without touching the rest of its state.
func (b *Bank) Silence(i int) {
	if i < 0 || i >= Voices {
		return
	}
	b.mu.Lock()
	b.voices[i].Hz = 0
	b.mu.Unlock()
}

// Voice returns a snapshot of voice i.
func (b *Bank) Voice(i int) (Voice, bool) {
	if i < 0 || i >= Voices {
		return Voice{}, false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.voices[i], true
}

func (b *Bank) SilenceValue() byte {
	return b.silence
}
