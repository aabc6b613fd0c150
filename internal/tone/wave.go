package tone

// Sample returns the signed value of a 50% duty square wave at phase.
// The first half of each cycle is +volume and the second half -volume.
// A positive level gates the wave: whenever phase/level is odd the
// output is forced to zero, which is what makes the effects audible.
//
// wavelength must be positive.
func Sample(phase uint32, wavelength, volume, level int) int {
	w := uint32(wavelength)
	if level > 0 && (phase/uint32(level))%2 == 1 {
		return 0
	}
	if phase%w < w/2 {
		return volume
	}
	return -volume
}
