// Package cp437 is the string transcoder spec.md's core treats as an
// injected collaborator: bytes to text and text to bytes for CP437, the
// default encoding of SAUCE text fields, with UTF-8 as the only other
// encoding this implementation understands.
package cp437

import "strings"

// toUnicode maps the upper 128 bytes of CP437 (0x80-0xFF) to Unicode runes.
var toUnicode = [128]rune{
	'Ç', 'ü', 'é', 'â', 'ä', 'à', 'å', 'ç', // 80-87
	'ê', 'ë', 'è', 'ï', 'î', 'ì', 'Ä', 'Å', // 88-8F
	'É', 'æ', 'Æ', 'ô', 'ö', 'ò', 'û', 'ù', // 90-97
	'ÿ', 'Ö', 'Ü', '¢', '£', '¥', '₧', 'ƒ', // 98-9F
	'á', 'í', 'ó', 'ú', 'ñ', 'Ñ', 'ª', 'º', // A0-A7
	'¿', '⌐', '¬', '½', '¼', '¡', '«', '»', // A8-AF
	'░', '▒', '▓', '│', '┤', '╡', '╢', '╖', // B0-B7
	'╕', '╣', '║', '╗', '╝', '╜', '╛', '┐', // B8-BF
	'└', '┴', '┬', '├', '─', '┼', '╞', '╟', // C0-C7
	'╚', '╔', '╩', '╦', '╠', '═', '╬', '╧', // C8-CF
	'╨', '╤', '╥', '╙', '╘', '╒', '╓', '╫', // D0-D7
	'╪', '┘', '┌', '█', '▄', '▌', '▐', '▀', // D8-DF
	'α', 'ß', 'Γ', 'π', 'Σ', 'σ', 'µ', 'τ', // E0-E7
	'Φ', 'Θ', 'Ω', 'δ', '∞', 'φ', 'ε', '∩', // E8-EF
	'≡', '±', '≥', '≤', '⌠', '⌡', '÷', '≈', // F0-F7
	'°', '∙', '·', '√', 'ⁿ', '²', '■', ' ', // F8-FF
}

// fromUnicode is the inverse of toUnicode, built once at init.
var fromUnicode map[rune]byte

func init() {
	fromUnicode = make(map[rune]byte, 128)
	for i, r := range toUnicode {
		fromUnicode[r] = byte(0x80 + i)
	}
}

// Decode converts CP437-encoded bytes to a UTF-8 string. Bytes below
// 0x80 pass through as ASCII; bytes at or above 0x80 map through the
// fixed high-byte table.
func Decode(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		if b < 0x80 {
			sb.WriteByte(b)
		} else {
			sb.WriteRune(toUnicode[b-0x80])
		}
	}
	return sb.String()
}

// Encode converts a UTF-8 string to CP437 bytes. Runes below 0x80 pass
// through as ASCII; runes with a CP437 high-byte mapping are encoded to
// that byte; unmappable runes are dropped (encoded as nothing), per
// spec.md's "replacing unmappable code points with empty".
func Encode(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		switch {
		case r < 0x80:
			out = append(out, byte(r))
		default:
			if b, ok := fromUnicode[r]; ok {
				out = append(out, b)
			}
			// unmappable: dropped
		}
	}
	return out
}
