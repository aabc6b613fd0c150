package audio8

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-audio/wav"

	"github.com/cbegin/audio8-go/internal/analysis"
)

// The four voices of the "galloping through lasers" demo, one second.
func demoVoices() []Tone {
	return []Tone{
		{Voice: 0, Hz: 200, Volume: 5, Effect: EffectBounce, Level: 2, Low: 0},
		{Voice: 1, Hz: 100, Volume: 3, Effect: EffectDown, Level: 5},
		{Voice: 2, Hz: 20, Volume: 2, Effect: EffectDown, Level: 1},
		{Voice: 3, Hz: 10, Volume: 10, Effect: EffectFixed, Level: 700},
	}
}

func TestGoldenRenderSnapshot(t *testing.T) {
	samples := RenderTones(DefaultSampleRate, DefaultSampleRate, demoVoices()...)
	sum := sha256.Sum256(samples)
	got := hex.EncodeToString(sum[:])
	raw, err := os.ReadFile(filepath.Join("testdata", "golden_voices.sha256"))
	if err != nil {
		t.Fatalf("read golden hash: %v", err)
	}
	want := strings.TrimSpace(string(raw))
	if got != want {
		t.Fatalf("golden mismatch\nwant: %s\ngot:  %s", want, got)
	}
	// All four voices start on their positive half cycle.
	if samples[0] != 128+30+18+12+60 {
		t.Fatalf("first sample = %d, want 248", samples[0])
	}
}

func TestRenderTonesSilence(t *testing.T) {
	samples := RenderTones(DefaultSampleRate, 1024, Tone{Voice: 0, Hz: 0, Volume: 10}, Tone{Voice: 9, Hz: 440, Volume: 5})
	for i, s := range samples {
		if s != 128 {
			t.Fatalf("sample %d = %d, want silence", i, s)
		}
	}
}

func TestRenderTonesPitch(t *testing.T) {
	// 22050/441 is exactly 50 samples per cycle.
	samples := RenderTones(DefaultSampleRate, 1<<15, Tone{Voice: 0, Hz: 441, Volume: 5})
	freq, err := analysis.DominantFrequency(samples, DefaultSampleRate, 128)
	if err != nil {
		t.Fatalf("dominant frequency: %v", err)
	}
	if math.Abs(freq-441) > 2 {
		t.Fatalf("dominant frequency = %.1f Hz, want ~441", freq)
	}
}

func TestRenderNotesLength(t *testing.T) {
	cases := []struct {
		notes     string
		increment int
		want      int
	}{
		{notes: "C--", increment: 100, want: 6615},
		{notes: " ", increment: 50, want: 1102},
		{notes: "CxD", increment: 50, want: 2 * 1102},
		{notes: "C", increment: 70, want: 2205},
		{notes: "CDE", increment: 49, want: 0},
	}
	for _, tc := range cases {
		if got := len(RenderNotes(DefaultSampleRate, tc.increment, 5, tc.notes)); got != tc.want {
			t.Errorf("RenderNotes(%q, %d) produced %d samples, want %d", tc.notes, tc.increment, got, tc.want)
		}
	}
}

func TestRenderNotesRestIsSilent(t *testing.T) {
	samples := RenderNotes(DefaultSampleRate, 50, 5, "C C")
	rest := samples[1102 : 2*1102]
	for i, s := range rest {
		if s != 128 {
			t.Fatalf("rest sample %d = %d, want silence", i, s)
		}
	}
	if samples[0] != 128+30 {
		t.Fatalf("note sample = %d, want 158", samples[0])
	}
}

func TestEncodeWAV(t *testing.T) {
	samples := RenderNotes(DefaultSampleRate, 50, 5, "CDE")
	path := filepath.Join(t.TempDir(), "notes.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := EncodeWAV(f, samples, DefaultSampleRate); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	r, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()
	dec := wav.NewDecoder(r)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dec.SampleRate != DefaultSampleRate || dec.BitDepth != 8 || dec.NumChans != 1 {
		t.Fatalf("unexpected format: %d Hz, %d bits, %d channels", dec.SampleRate, dec.BitDepth, dec.NumChans)
	}
	if len(buf.Data) != len(samples) {
		t.Fatalf("decoded %d samples, want %d", len(buf.Data), len(samples))
	}
}
