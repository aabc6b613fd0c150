package tone

const (
	// Voices is the number of independent tone slots.
	Voices = 4
	// MaxVolume is the loudest caller volume.
	MaxVolume = 10
	// VolumeScale maps caller volume 0-10 onto the internal 0-60 amplitude.
	VolumeScale = 6
)

// Voice is the state of one tone slot. Hz 0 is silent.
type Voice struct {
	Hz         int
	Wavelength int
	Volume     int
	Duration   int // ms, 0 plays until replaced
	Phase      uint32
	Env        Envelope
}

// NewVoice applies the caller units of a tone: volume is scaled by
// VolumeScale, the effect through NewEnvelope, and the phase starts at 0.
func NewVoice(sampleRate, hz, durationMs, volume int, effect Effect, level, low int) Voice {
	return Voice{
		Hz:         hz,
		Wavelength: Wavelength(sampleRate, hz),
		Volume:     volume * VolumeScale,
		Duration:   durationMs,
		Env:        NewEnvelope(effect, level, low),
	}
}

// Wavelength is the number of samples in one cycle of hz, rounded half up
// to the nearest integer. hz <= 0 yields 0.
func Wavelength(sampleRate, hz int) int {
	if hz <= 0 {
		return 0
	}
	return ((sampleRate*10)/hz + 5) / 10
}

// Audible reports whether the mixer renders the voice.
func (v *Voice) Audible() bool {
	return v.Hz != 0 && v.Wavelength > 0
}

// Level is the current envelope gate level; a voice without an envelope has none.
func (v *Voice) Level() int {
	if v.Env == nil {
		return 0
	}
	return v.Env.Level()
}
