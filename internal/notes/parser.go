package notes

// Kind tags a parsed token.
type Kind int

const (
	KindNote Kind = iota + 1
	KindRest
	KindSkipped
)

// Rest is the Letter of a KindRest token.
const Rest = -1

// Token is one playable step of a melody, or a byte the parser skipped.
type Token struct {
	Kind       Kind
	Pos        int  // byte offset of the note letter
	Byte       byte // the offending byte of a skipped token
	Letter     int  // 0-6 for A-G, Rest for silence
	Accidental Accidental
	Octave     int
	Holds      int
	Hz         int
}

// Recognized reports whether the token plays (a note or a rest).
func (t Token) Recognized() bool {
	return t.Kind == KindNote || t.Kind == KindRest
}

// Duration is how long the token sounds for a given increment.
func (t Token) Duration(increment int) int {
	return increment * (1 + t.Holds)
}

type ParserConfig struct {
	StartOctave int
}

func DefaultParserConfig() ParserConfig {
	return ParserConfig{StartOctave: MinOctave}
}

type Parser struct{ cfg ParserConfig }

func NewParser(cfg ParserConfig) *Parser { return &Parser{cfg: cfg} }

// Parse scans a melody left to right.
//
//	A-G     note letter        ' '  rest
//	b #     flat / sharp (directly after the letter)
//	-       hold for one more increment (repeatable)
//	^ v     octave up / down   1-4  set octave
//
// Octave changes produce no token. A byte that is neither a note, a rest
// nor an octave change becomes a KindSkipped token; its accidental and
// holds are consumed with it and parsing carries on.
func (p *Parser) Parse(input string) []Token {
	octave := clampInt(p.cfg.StartOctave, MinOctave, MaxOctave)
	tokens := make([]Token, 0, len(input))
	i := 0
	for i < len(input) {
		ch := input[i]
		switch {
		case ch == '^':
			octave = clampInt(octave+1, MinOctave, MaxOctave)
			i++
			continue
		case ch == 'v':
			octave = clampInt(octave-1, MinOctave, MaxOctave)
			i++
			continue
		case ch >= '1' && ch <= '4':
			octave = int(ch - '1')
			i++
			continue
		}

		tok := Token{Pos: i, Accidental: Natural, Octave: octave}
		switch {
		case ch >= 'A' && ch <= 'G':
			tok.Kind = KindNote
			tok.Letter = int(ch - 'A')
		case ch == ' ':
			tok.Kind = KindRest
			tok.Letter = Rest
		default:
			tok.Kind = KindSkipped
			tok.Byte = ch
		}
		i++

		if i < len(input) {
			switch input[i] {
			case 'b':
				tok.Accidental--
				i++
			case '#':
				tok.Accidental++
				i++
			}
		}
		for i < len(input) && input[i] == '-' {
			tok.Holds++
			i++
		}

		if tok.Kind == KindNote {
			tok.Hz = Frequency(tok.Octave, tok.Accidental, tok.Letter)
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Parse parses input with the default configuration.
func Parse(input string) []Token {
	return NewParser(DefaultParserConfig()).Parse(input)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
