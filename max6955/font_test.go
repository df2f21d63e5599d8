package max6955

import (
	"errors"
	"testing"

	"go.viam.com/test"
)

func TestEncode(t *testing.T) {
	for _, ch := range Supported() {
		first, err := Encode(ch)
		test.That(t, err, test.ShouldBeNil)
		second, err := Encode(ch)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, second, test.ShouldResemble, first)
		test.That(t, first.Code, test.ShouldEqual, byte(ch))
	}

	glyph, err := Encode('1')
	test.That(t, err, test.ShouldBeNil)
	test.That(t, glyph.Segments, test.ShouldEqual, SegB|SegC)

	glyph, err = Encode(' ')
	test.That(t, err, test.ShouldBeNil)
	test.That(t, glyph, test.ShouldResemble, Glyph{Code: blank})
}

func TestEncodeLowercase(t *testing.T) {
	for ch := 'a'; ch <= 'z'; ch++ {
		lower, err := Encode(ch)
		test.That(t, err, test.ShouldBeNil)
		upper, err := Encode(ch - 'a' + 'A')
		test.That(t, err, test.ShouldBeNil)
		test.That(t, lower, test.ShouldResemble, upper)
	}
}

func TestEncodeUnsupported(t *testing.T) {
	for _, ch := range []rune{'°', '@', '#', '~', '\n', 'é', 0x7F} {
		_, err := Encode(ch)
		var charErr *UnsupportedCharacterError
		test.That(t, errors.As(err, &charErr), test.ShouldBeTrue)
		test.That(t, charErr.Char, test.ShouldEqual, ch)
	}

	_, err := Encode('°')
	test.That(t, err.Error(), test.ShouldEqual, `unsupported character '°' (U+00B0)`)
}

func TestFontUnique(t *testing.T) {
	patterns := map[SegmentPattern]rune{}
	codes := map[byte]rune{}
	for _, ch := range Supported() {
		glyph, err := Encode(ch)
		test.That(t, err, test.ShouldBeNil)

		other, seen := patterns[glyph.Segments]
		test.That(t, seen, test.ShouldBeFalse)
		if seen {
			t.Logf("%q and %q share a pattern", ch, other)
		}
		patterns[glyph.Segments] = ch

		_, seen = codes[glyph.Code]
		test.That(t, seen, test.ShouldBeFalse)
		codes[glyph.Code] = ch
	}
}

func TestSupported(t *testing.T) {
	chars := Supported()
	test.That(t, len(chars), test.ShouldEqual, len(font))
	for i := 1; i < len(chars); i++ {
		test.That(t, chars[i-1], test.ShouldBeLessThan, chars[i])
	}
	test.That(t, chars[0], test.ShouldEqual, ' ')
	test.That(t, chars, test.ShouldContain, 'Z')
	test.That(t, chars, test.ShouldNotContain, 'z')
}
