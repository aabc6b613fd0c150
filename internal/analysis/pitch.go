package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/ktye/fft"
)

// MinWindow is the shortest buffer DominantFrequency will analyse.
const MinWindow = 64

var ErrTooShort = errors.New("analysis: buffer too short")

// DominantFrequency estimates the strongest frequency in a buffer of
// unsigned 8-bit samples. It analyses the largest power-of-two prefix under
// a Hann window and returns the centre of the loudest FFT bin, or 0 for a
// silent buffer.
func DominantFrequency(samples []byte, sampleRate int, silence byte) (float64, error) {
	n := 1
	for n*2 <= len(samples) {
		n *= 2
	}
	if n < MinWindow {
		return 0, ErrTooShort
	}
	f, err := fft.New(n)
	if err != nil {
		return 0, err
	}
	buf := make([]complex128, n)
	for i := range buf {
		w := (1 - math.Cos(2*math.Pi*float64(i)/float64(n))) / 2
		buf[i] = complex((float64(samples[i])-float64(silence))*w, 0)
	}
	buf = f.Transform(buf)

	best, bestMag := 0, 0.0
	for k := 1; k < n/2; k++ {
		if m := cmplx.Abs(buf[k]); m > bestMag {
			best, bestMag = k, m
		}
	}
	if bestMag == 0 {
		return 0, nil
	}
	return float64(best) * float64(sampleRate) / float64(n), nil
}
