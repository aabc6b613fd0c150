package tone

import "fmt"

// Effect selects the envelope applied to a voice.
type Effect int

const (
	EffectNone Effect = iota
	EffectFixed
	EffectUp
	EffectDown
	EffectBounce
)

// EffectScale multiplies caller supplied effect levels before they are stored.
const EffectScale = 8

var effectNames = [...]string{"none", "fixed", "up", "down", "bounce"}

func (e Effect) Valid() bool {
	return e >= EffectNone && e <= EffectBounce
}

func (e Effect) String() string {
	if !e.Valid() {
		return fmt.Sprintf("effect(%d)", int(e))
	}
	return effectNames[e]
}

// ParseEffect accepts an effect name ("bounce") or its number ("4").
func ParseEffect(s string) (Effect, error) {
	for i, name := range effectNames {
		if s == name || s == fmt.Sprint(i) {
			return Effect(i), nil
		}
	}
	return EffectNone, fmt.Errorf("unknown effect %q (expected none|fixed|up|down|bounce)", s)
}

// Envelope is the per-voice gating state. The mixer reads Level every
// sample and calls step once per completed wave cycle.
type Envelope interface {
	Effect() Effect
	Level() int
	step() Envelope
}

// NewEnvelope builds the envelope for effect. level and low are caller
// magnitudes; their absolute values are scaled by EffectScale.
func NewEnvelope(effect Effect, level, low int) Envelope {
	level = abs(level) * EffectScale
	low = abs(low) * EffectScale
	switch effect {
	case EffectFixed:
		return Fixed{Top: level}
	case EffectUp:
		return CyclicUp{Top: level, Current: level}
	case EffectDown:
		return CyclicDown{Top: level, Current: level}
	case EffectBounce:
		return Bounce{Top: level, Low: low, Current: level, Dir: 1}
	default:
		return None{}
	}
}

// None never gates.
type None struct{}

func (None) Effect() Effect   { return EffectNone }
func (None) Level() int       { return 0 }
func (n None) step() Envelope { return n }

// Fixed gates at a constant level.
type Fixed struct {
	Top int
}

func (Fixed) Effect() Effect   { return EffectFixed }
func (f Fixed) Level() int     { return f.Top }
func (f Fixed) step() Envelope { return f }

// CyclicUp counts the gate level down to 1 and starts again from Top.
// Shorter gates mean faster chopping, so the pitch of the effect rises.
type CyclicUp struct {
	Top     int
	Current int
}

func (CyclicUp) Effect() Effect { return EffectUp }
func (c CyclicUp) Level() int   { return c.Current }

func (c CyclicUp) step() Envelope {
	c.Current--
	if c.Current <= 1 {
		c.Current = c.Top
	}
	return c
}

// CyclicDown counts the gate level up to Top and starts again from 1.
type CyclicDown struct {
	Top     int
	Current int
}

func (CyclicDown) Effect() Effect { return EffectDown }
func (c CyclicDown) Level() int   { return c.Current }

func (c CyclicDown) step() Envelope {
	c.Current++
	if c.Current >= c.Top {
		c.Current = 1
	}
	return c
}

// Bounce walks the gate level between Low and Top, one step per cycle.
type Bounce struct {
	Top     int
	Low     int
	Current int
	Dir     int
}

func (Bounce) Effect() Effect { return EffectBounce }
func (b Bounce) Level() int   { return b.Current }

func (b Bounce) step() Envelope {
	b.Current += b.Dir
	if b.Current < b.Low {
		b.Current += 2
		b.Dir = 1
	} else if b.Current > b.Top {
		b.Current -= 2
		b.Dir = -1
	}
	return b
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
