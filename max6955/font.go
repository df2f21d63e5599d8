package max6955

import (
	"slices"

	"github.com/samber/lo"
)

// SegmentPattern is a 14-segment digit with one bit per lit segment.
//
//	    A
//	 -------
//	|\  |  /|
//	F H J K B
//	|  \|/  |
//	 -G1-G2-
//	|  /|\  |
//	E N M L C
//	|/  |  \|
//	 ------- .DP
//	    D
type SegmentPattern uint16

// Segments. 16-segment digits split A and D in two; the chip drives both halves from A and D.
const (
	SegA SegmentPattern = 1 << iota
	SegB
	SegC
	SegD
	SegE
	SegF
	SegG1
	SegG2
	SegH
	SegJ
	SegK
	SegL
	SegM
	SegN
	SegDP
)

// Glyph is what gets written for one character.
type Glyph struct {
	// Code is the character code written to a digit register. The MAX6955 font ROM is indexed by
	// ASCII code for 14-segment and 16-segment digits.
	Code byte
	// Segments are the segments the font ROM lights for Code.
	Segments SegmentPattern
}

// blank is written to clear a digit.
const blank = ' '

// font holds the canonical characters. Lowercase letters are folded to uppercase before lookup.
// No two entries share a pattern.
var font = map[rune]SegmentPattern{
	' ': 0,
	'0': SegA | SegB | SegC | SegD | SegE | SegF | SegK | SegN,
	'1': SegB | SegC,
	'2': SegA | SegB | SegG1 | SegG2 | SegE | SegD,
	'3': SegA | SegB | SegG2 | SegC | SegD,
	'4': SegF | SegG1 | SegG2 | SegB | SegC,
	'5': SegA | SegF | SegG1 | SegL | SegD,
	'6': SegA | SegF | SegE | SegD | SegC | SegG1 | SegG2,
	'7': SegA | SegB | SegC,
	'8': SegA | SegB | SegC | SegD | SegE | SegF | SegG1 | SegG2,
	'9': SegA | SegB | SegC | SegD | SegF | SegG1 | SegG2,
	'A': SegA | SegB | SegC | SegE | SegF | SegG1 | SegG2,
	'B': SegA | SegB | SegC | SegD | SegJ | SegM | SegG2,
	'C': SegA | SegD | SegE | SegF,
	'D': SegA | SegB | SegC | SegD | SegJ | SegM,
	'E': SegA | SegD | SegE | SegF | SegG1,
	'F': SegA | SegE | SegF | SegG1,
	'G': SegA | SegC | SegD | SegE | SegF | SegG2,
	'H': SegB | SegC | SegE | SegF | SegG1 | SegG2,
	'I': SegA | SegD | SegJ | SegM,
	'J': SegB | SegC | SegD | SegE,
	'K': SegE | SegF | SegG1 | SegK | SegL,
	'L': SegD | SegE | SegF,
	'M': SegB | SegC | SegE | SegF | SegH | SegK,
	'N': SegB | SegC | SegE | SegF | SegH | SegL,
	'O': SegA | SegB | SegC | SegD | SegE | SegF,
	'P': SegA | SegB | SegE | SegF | SegG1 | SegG2,
	'Q': SegA | SegB | SegC | SegD | SegE | SegF | SegL,
	'R': SegA | SegB | SegE | SegF | SegG1 | SegG2 | SegL,
	'S': SegA | SegF | SegG1 | SegG2 | SegC | SegD,
	'T': SegA | SegJ | SegM,
	'U': SegB | SegC | SegD | SegE | SegF,
	'V': SegE | SegF | SegN | SegK,
	'W': SegB | SegC | SegE | SegF | SegN | SegL,
	'X': SegH | SegK | SegL | SegN,
	'Y': SegH | SegK | SegM,
	'Z': SegA | SegD | SegK | SegN,
	'-': SegG1 | SegG2,
	'_': SegD,
	'+': SegG1 | SegG2 | SegJ | SegM,
	'*': SegG1 | SegG2 | SegH | SegJ | SegK | SegL | SegM | SegN,
	'/': SegK | SegN,
	'\\': SegH | SegL,
	'=': SegG1 | SegG2 | SegD,
	'<': SegK | SegL,
	'>': SegH | SegN,
	'.': SegDP,
	',': SegN,
	'$': SegA | SegF | SegG1 | SegG2 | SegC | SegD | SegJ | SegM,
	'%': SegF | SegC | SegK | SegN,
	'?': SegA | SegB | SegG2 | SegM,
}

// Encode looks up the glyph for ch. Lowercase ASCII letters render as their uppercase glyph;
// any other character missing from the font, including everything outside 7-bit ASCII such as
// the degree sign, returns an *UnsupportedCharacterError.
func Encode(ch rune) (Glyph, error) {
	canonical := ch
	if ch >= 'a' && ch <= 'z' {
		canonical = ch - 'a' + 'A'
	}
	pattern, ok := font[canonical]
	if !ok {
		return Glyph{}, &UnsupportedCharacterError{Char: ch}
	}
	return Glyph{Code: byte(canonical), Segments: pattern}, nil
}

// Supported returns the canonical supported characters in ascending order.
func Supported() []rune {
	chars := lo.Keys(font)
	slices.Sort(chars)
	return chars
}
