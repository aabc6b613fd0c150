package notes

// Accidental selects the flat, natural or sharp column of the octave table.
type Accidental int

const (
	Flat Accidental = iota
	Natural
	Sharp
)

const (
	Letters     = 7 // A through G
	Accidentals = 3
	MinOctave   = 0
	MaxOctave   = 3
	Octaves     = MaxOctave - MinOctave + 1
)

// Row 2, natural C is middle C (262 Hz).
//
//	A    B    C    D    E    F    G
var octaves = [Octaves][Accidentals][Letters]int{
	{
		{52, 58, 62, 69, 78, 82, 93},
		{55, 62, 65, 73, 82, 87, 98},
		{58, 65, 69, 78, 87, 93, 104},
	},
	{
		{104, 117, 123, 139, 156, 165, 185},
		{110, 123, 131, 147, 165, 175, 196},
		{117, 131, 139, 156, 175, 185, 208},
	},
	{
		{208, 233, 247, 277, 311, 330, 370},
		{220, 247, 262, 293, 330, 349, 392},
		{233, 262, 277, 311, 349, 370, 415},
	},
	{
		{415, 466, 494, 554, 622, 659, 740},
		{440, 494, 523, 587, 659, 698, 784},
		{466, 523, 554, 622, 698, 740, 831},
	},
}

// Frequency looks up a note in Hz. Anything outside the table is 0.
func Frequency(octave int, acc Accidental, letter int) int {
	if octave < MinOctave || octave > MaxOctave || acc < Flat || acc > Sharp || letter < 0 || letter >= Letters {
		return 0
	}
	return octaves[octave][acc][letter]
}
