package analysis

import (
	"math"
	"testing"
)

func square(n, period int, amp byte) []byte {
	out := make([]byte, n)
	for i := range out {
		if i%period < period/2 {
			out[i] = 128 + amp
		} else {
			out[i] = 128 - amp
		}
	}
	return out
}

func TestDominantFrequencySquareWave(t *testing.T) {
	cases := []struct {
		period int
		want   float64
	}{
		{period: 50, want: 441},
		{period: 100, want: 220.5},
		{period: 21, want: 1050},
	}
	for _, tc := range cases {
		got, err := DominantFrequency(square(1<<15, tc.period, 30), 22050, 128)
		if err != nil {
			t.Fatalf("period %d: %v", tc.period, err)
		}
		if math.Abs(got-tc.want) > 2 {
			t.Errorf("period %d: got %.1f Hz, want ~%.1f", tc.period, got, tc.want)
		}
	}
}

func TestDominantFrequencySilence(t *testing.T) {
	buf := make([]byte, 4096)
	for i := range buf {
		buf[i] = 128
	}
	got, err := DominantFrequency(buf, 22050, 128)
	if err != nil || got != 0 {
		t.Fatalf("silence = %v, %v; want 0, nil", got, err)
	}
}

func TestDominantFrequencyTooShort(t *testing.T) {
	if _, err := DominantFrequency(make([]byte, MinWindow-1), 22050, 128); err != ErrTooShort {
		t.Fatalf("expected ErrTooShort, got %v", err)
	}
}
