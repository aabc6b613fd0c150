package audio

import (
	"encoding/binary"
	"math"
	"sync"
)

// Layout is the byte layout a player pulls from a StreamReader.
type Layout int

const (
	// LayoutU8Mono passes the mixer's bytes through unchanged.
	LayoutU8Mono Layout = iota
	// LayoutF32Stereo expands each sample to two little-endian float32 values.
	LayoutF32Stereo
)

// StreamReader adapts a FillFunc to the io.Reader pull model of ebiten and
// oto players.
type StreamReader struct {
	mu     sync.Mutex
	fill   FillFunc
	layout Layout
	buf    []byte
}

func NewStreamReader(fill FillFunc, layout Layout) *StreamReader {
	return &StreamReader{fill: fill, layout: layout}
}

func (r *StreamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.layout == LayoutU8Mono {
		r.fill(p)
		return len(p), nil
	}

	frames := len(p) / 8
	if frames == 0 {
		return 0, nil
	}
	if cap(r.buf) < frames {
		r.buf = make([]byte, frames)
	}
	r.buf = r.buf[:frames]
	r.fill(r.buf)
	for i, s := range r.buf {
		u := math.Float32bits(U8ToFloat32(s))
		binary.LittleEndian.PutUint32(p[i*8:], u)
		binary.LittleEndian.PutUint32(p[i*8+4:], u)
	}
	return frames * 8, nil
}

func (r *StreamReader) Close() error { return nil }

// U8ToFloat32 maps an unsigned 8-bit sample onto [-1, 1).
func U8ToFloat32(s byte) float32 {
	return (float32(s) - SilenceU8) / 128
}
