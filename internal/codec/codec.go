// Package codec implements the per-field encode/decode rules of spec.md
// §4.6: space-padded text, NUL-padded C-strings, dates, versions, and
// little-endian unsigned integers.
package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/textmode-tools/gosauce/internal/byteutil"
	"github.com/textmode-tools/gosauce/internal/cp437"
)

// EncodeText encodes a space-padded text field (title/author/group):
// trims the input, transcodes to CP437 (unmappable runes dropped), then
// right-pads with spaces or truncates to exactly width bytes.
func EncodeText(s string, width int) []byte {
	s = strings.TrimSpace(s)
	b := cp437.Encode(s)
	return byteutil.PadTruncate(b, width, []byte{' '})
}

// DecodeText decodes a space-padded text field: splits at the first NUL
// (tolerating rogue writers that NUL-terminate instead of space-padding),
// tries CP437 then falls back to raw UTF-8, and trims trailing
// whitespace. An empty or NUL-only field decodes to "".
func DecodeText(b []byte) string {
	if i := indexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	s := decodeBestEffort(b)
	return strings.TrimRight(s, " \t\r\n")
}

// EncodeCString encodes a NUL-padded C-string field (t_info_s): same
// transcoding as EncodeText, padded/truncated with NUL instead of space.
func EncodeCString(s string, width int) []byte {
	s = strings.TrimSpace(s)
	b := cp437.Encode(s)
	return byteutil.PadTruncate(b, width, []byte{0})
}

// DecodeCString decodes a NUL-padded C-string field. It returns ok=false
// for an all-NUL (or empty) field, distinguishing "no value" from a
// legitimate empty string, and ok=true with the decoded string otherwise
// (which may itself be "" if the field held only whitespace).
func DecodeCString(b []byte) (value string, ok bool) {
	trimmed := trimTrailingNUL(b)
	if len(trimmed) == 0 {
		return "", false
	}
	s := decodeBestEffort(trimmed)
	s = strings.TrimRight(s, " \t\r\n")
	return s, true
}

func trimTrailingNUL(b []byte) []byte {
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return b[:end]
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}

// decodeBestEffort tries CP437 first, since it's the field's documented
// encoding and every byte maps to something under it. CP437 decoding a
// byte sequence is only trusted when re-encoding the result reproduces
// the original bytes exactly; when it doesn't (the decoded text used a
// rune CP437 can't represent, or hit the 0xFF/space collision), that
// means the bytes were never CP437 in the first place, so a writer that
// put raw UTF-8 in the field is the more likely source and wins if the
// bytes are valid UTF-8. Bytes that round-trip under neither keep their
// CP437 reading, since decode must always produce something.
func decodeBestEffort(b []byte) string {
	decoded := cp437.Decode(b)
	if bytes.Equal(cp437.Encode(decoded), b) {
		return decoded
	}
	if utf8.Valid(b) {
		return string(b)
	}
	return decoded
}

// DefaultVersion is emitted whenever EncodeVersion receives invalid or
// empty input, and whenever DecodeVersion receives an all-blank field.
const DefaultVersion = "00"

// EncodeVersion encodes the two-byte version field, space-padded.
// Invalid or empty input encodes as DefaultVersion.
func EncodeVersion(s string) []byte {
	s = strings.TrimSpace(s)
	if !isValidVersionText(s) {
		s = DefaultVersion
	}
	return byteutil.PadTruncate([]byte(s), 2, []byte{' '})
}

// DecodeVersion decodes the two-byte version field. A blank field
// decodes to DefaultVersion. A field containing non-printable bytes
// fails to decode (this is the one field whose decode failure escalates
// to InvalidSauce at the record layer, per spec.md §4.7).
func DecodeVersion(b []byte) (string, error) {
	trimmed := strings.TrimRight(string(b), "\x00 ")
	if trimmed == "" {
		return DefaultVersion, nil
	}
	if !isValidVersionText(trimmed) {
		return "", fmt.Errorf("codec: invalid version bytes %q", b)
	}
	return trimmed, nil
}

func isValidVersionText(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < 0x20 || c > 0x7E {
			return false
		}
	}
	return true
}

// Date is a decoded SAUCE date. A nil *Date means "no date" (spec.md's
// sentinel for a missing or calendar-invalid date).
type Date struct {
	Year, Month, Day int
}

// EncodeDate encodes d as eight zero-padded ASCII digits ("CCYYMMDD").
// A nil date encodes as all-zero digits, which DecodeDate maps back to
// nil (month/day 0 is calendar-invalid), keeping encode/decode a
// faithful round trip for the "no date" case.
func EncodeDate(d *Date) []byte {
	if d == nil {
		return []byte("00000000")
	}
	return []byte(fmt.Sprintf("%04d%02d%02d", d.Year, d.Month, d.Day))
}

// DecodeDate parses an eight-digit "CCYYMMDD" field. Parse failure or a
// calendar-invalid month/day yields nil ("no date").
func DecodeDate(b []byte) *Date {
	s := string(b)
	if len(s) != 8 {
		return nil
	}
	year, err1 := strconv.Atoi(s[0:4])
	month, err2 := strconv.Atoi(s[4:6])
	day, err3 := strconv.Atoi(s[6:8])
	if err1 != nil || err2 != nil || err3 != nil {
		return nil
	}
	if month < 1 || month > 12 || day < 1 || day > daysInMonth(year, month) {
		return nil
	}
	return &Date{Year: year, Month: month, Day: day}
}

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// EncodeU8 wraps v mod 2^8, coercing negative input via two's complement.
func EncodeU8(v int) byte {
	return byte(uint8(int32(v)))
}

// DecodeU8 decodes a single unsigned byte.
func DecodeU8(b byte) int {
	return int(b)
}

// EncodeU16LE encodes v as two little-endian bytes, wrapping mod 2^16.
func EncodeU16LE(v int) []byte {
	out := make([]byte, 2)
	binary.LittleEndian.PutUint16(out, uint16(int32(v)))
	return out
}

// DecodeU16LE decodes two little-endian bytes to an int.
func DecodeU16LE(b []byte) int {
	return int(binary.LittleEndian.Uint16(b))
}

// EncodeU32LE encodes v as four little-endian bytes, wrapping mod 2^32.
func EncodeU32LE(v int64) []byte {
	out := make([]byte, 4)
	binary.LittleEndian.PutUint32(out, uint32(v))
	return out
}

// DecodeU32LE decodes four little-endian bytes to an int64 (kept 64-bit
// so callers can represent file sizes up to the u32 ceiling without
// wrapping into negative territory on 32-bit platforms).
func DecodeU32LE(b []byte) int64 {
	return int64(binary.LittleEndian.Uint32(b))
}
