// Package record implements the whole-record and comment-block codec of
// spec.md §4.7: composing/parsing the 128-byte SAUCE record from its
// sixteen fields, and the variable-length comment block.
package record

import (
	"bytes"
	"fmt"

	"github.com/textmode-tools/gosauce/internal/byteutil"
	"github.com/textmode-tools/gosauce/internal/codec"
	"github.com/textmode-tools/gosauce/internal/datatype"
	"github.com/textmode-tools/gosauce/internal/media"
	"github.com/textmode-tools/gosauce/internal/sauceerr"
	"github.com/textmode-tools/gosauce/internal/schema"
)

// Fields is the raw decoded (or to-be-encoded) form of a SAUCE record:
// L7's output, before L11 layers on media interpretation.
type Fields struct {
	Version      string
	Title        string
	Author       string
	Group        string
	Date         *codec.Date
	FileSize     int64
	DataType     datatype.ID
	FileType     int
	TInfo1       int
	TInfo2       int
	TInfo3       int
	TInfo4       int
	CommentLines int
	TFlags       byte
	TInfoS       string
	TInfoSOK     bool // false means "no value", distinct from an empty string
}

// EncodeRecord composes the 16 fields of f, in declared order, into a
// 128-byte record prefixed with "SAUCE". If (FileType, DataType) does
// not resolve to a known media type via the media registry, both are
// rewritten to the none/zero pair so the result is always decodable.
// comment_lines is derived from commentCount, clamped to 0..=255.
func EncodeRecord(f Fields, commentCount int) []byte {
	dataType := f.DataType
	fileType := f.FileType
	if media.Resolve(fileType, dataType) == "none" {
		dataType = datatype.None
		fileType = 0
	}

	buf := make([]byte, schema.RecordSize)
	copy(buf[schema.FieldOffset(schema.ID):], schema.SauceIDString)
	copy(buf[schema.FieldOffset(schema.Version):], codec.EncodeVersion(f.Version))
	copy(buf[schema.FieldOffset(schema.Title):], codec.EncodeText(f.Title, schema.FieldSize(schema.Title)))
	copy(buf[schema.FieldOffset(schema.Author):], codec.EncodeText(f.Author, schema.FieldSize(schema.Author)))
	copy(buf[schema.FieldOffset(schema.Group):], codec.EncodeText(f.Group, schema.FieldSize(schema.Group)))
	copy(buf[schema.FieldOffset(schema.Date):], codec.EncodeDate(f.Date))

	fileSize := f.FileSize
	if fileSize < 0 || fileSize > schema.FileSizeLimit {
		fileSize = 0
	}
	copy(buf[schema.FieldOffset(schema.FileSize):], codec.EncodeU32LE(fileSize))

	buf[schema.FieldOffset(schema.DataType)] = codec.EncodeU8(datatype.IntOf(dataType))
	buf[schema.FieldOffset(schema.FileType)] = codec.EncodeU8(fileType)
	copy(buf[schema.FieldOffset(schema.TInfo1):], codec.EncodeU16LE(f.TInfo1))
	copy(buf[schema.FieldOffset(schema.TInfo2):], codec.EncodeU16LE(f.TInfo2))
	copy(buf[schema.FieldOffset(schema.TInfo3):], codec.EncodeU16LE(f.TInfo3))
	copy(buf[schema.FieldOffset(schema.TInfo4):], codec.EncodeU16LE(f.TInfo4))

	lines := commentCount
	if lines < 0 {
		lines = 0
	}
	if lines > schema.MaxCommentLines {
		lines = schema.MaxCommentLines
	}
	buf[schema.FieldOffset(schema.CommentLines)] = codec.EncodeU8(lines)
	buf[schema.FieldOffset(schema.TFlags)] = f.TFlags

	if f.TInfoSOK {
		copy(buf[schema.FieldOffset(schema.TInfoS):], codec.EncodeCString(f.TInfoS, schema.FieldSize(schema.TInfoS)))
	}
	// else: leave the field zero-filled, which DecodeCString reads back
	// as "no value" (TInfoSOK == false).

	return buf
}

// emptyRecordSentinel is the byte pattern of a buggy writer that
// reserved space for a SAUCE record without populating it: "SAUCE" +
// two NUL bytes where the version should be + 121 zero bytes.
func isEmptyRecordSentinel(b []byte) bool {
	if len(b) != schema.RecordSize {
		return false
	}
	if !bytes.Equal(b[0:5], []byte(schema.SauceIDString)) {
		return false
	}
	if b[5] != 0 || b[6] != 0 {
		return false
	}
	for _, c := range b[7:] {
		if c != 0 {
			return false
		}
	}
	return true
}

// DecodeRecord parses a 128-byte record. It returns ErrNoSauce if the
// buffer isn't record-shaped, ErrInvalidSauce if it's the empty-record
// sentinel or the version field fails to decode. All other per-field
// decode failures are tolerated by falling back to codec defaults.
func DecodeRecord(b []byte) (Fields, error) {
	if len(b) != schema.RecordSize || !bytes.Equal(b[0:5], []byte(schema.SauceIDString)) {
		return Fields{}, sauceerr.ErrNoSauce
	}
	if isEmptyRecordSentinel(b) {
		return Fields{}, fmt.Errorf("%w: empty-record sentinel", sauceerr.ErrInvalidSauce)
	}

	version, err := codec.DecodeVersion(field(b, schema.Version))
	if err != nil {
		return Fields{}, fmt.Errorf("%w: %v", sauceerr.ErrInvalidSauce, err)
	}

	f := Fields{
		Version:  version,
		Title:    codec.DecodeText(field(b, schema.Title)),
		Author:   codec.DecodeText(field(b, schema.Author)),
		Group:    codec.DecodeText(field(b, schema.Group)),
		Date:     codec.DecodeDate(field(b, schema.Date)),
		FileSize: codec.DecodeU32LE(field(b, schema.FileSize)),
		DataType: datatype.IDOf(codec.DecodeU8(field(b, schema.DataType)[0])),
		FileType: codec.DecodeU8(field(b, schema.FileType)[0]),
		TInfo1:   codec.DecodeU16LE(field(b, schema.TInfo1)),
		TInfo2:   codec.DecodeU16LE(field(b, schema.TInfo2)),
		TInfo3:   codec.DecodeU16LE(field(b, schema.TInfo3)),
		TInfo4:   codec.DecodeU16LE(field(b, schema.TInfo4)),
		TFlags:   field(b, schema.TFlags)[0],
	}
	f.CommentLines = clampCommentLines(codec.DecodeU8(field(b, schema.CommentLines)[0]))
	f.TInfoS, f.TInfoSOK = codec.DecodeCString(field(b, schema.TInfoS))

	if media.Resolve(f.FileType, f.DataType) == "none" {
		f.FileType = 0
	}

	return f, nil
}

func clampCommentLines(v int) int {
	if v < 0 {
		return 0
	}
	if v > schema.MaxCommentLines {
		return 0
	}
	return v
}

func field(b []byte, id schema.Field) []byte {
	off := schema.FieldOffset(id)
	return b[off : off+schema.FieldSize(id)]
}

// WriteField overwrites a single field of an existing 128-byte record in
// place, without re-encoding the whole record. raw must be exactly
// schema.FieldSize(id) bytes.
func WriteField(recordBytes []byte, id schema.Field, raw []byte) ([]byte, error) {
	if len(raw) != schema.FieldSize(id) {
		return nil, fmt.Errorf("%w: field %d wants %d bytes, got %d", sauceerr.ErrInvalidLength, id, schema.FieldSize(id), len(raw))
	}
	out, err := byteutil.ReplaceSlice(recordBytes, schema.FieldOffset(id), raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sauceerr.ErrInvalidLength, err)
	}
	return out, nil
}

// EncodeComments emits the comment block for comments: empty input
// yields no bytes at all (no block is written); otherwise "COMNT"
// followed by each line padded/truncated to 64 bytes.
func EncodeComments(comments []string) []byte {
	if len(comments) == 0 {
		return nil
	}
	buf := make([]byte, 0, schema.CommentIDSize+schema.CommentLineSize*len(comments))
	buf = append(buf, []byte(schema.CommentIDString)...)
	for _, line := range comments {
		buf = append(buf, codec.EncodeText(line, schema.CommentLineSize)...)
	}
	return buf
}

// DecodeComments parses a comment block, expecting expectedLines lines.
// expectedLines == 0 returns an empty (nil) slice with no error. A
// buffer that isn't COMNT-prefixed and long enough returns ErrNoComments.
// Otherwise lines are peeled off until expectedLines is reached or the
// input is exhausted (tolerating a short/truncated block); lines that
// decode to "no value" (all-NUL) are dropped, matching spec.md's
// tolerance rule for reusing the C-string "no value" decode on comment
// text.
func DecodeComments(b []byte, expectedLines int) ([]string, error) {
	if expectedLines <= 0 {
		return nil, nil
	}
	if len(b) < schema.MinCommentBlock || !bytes.Equal(b[0:schema.CommentIDSize], []byte(schema.CommentIDString)) {
		return nil, sauceerr.ErrNoComments
	}

	body := b[schema.CommentIDSize:]
	var lines []string
	for i := 0; i < expectedLines; i++ {
		start := i * schema.CommentLineSize
		end := start + schema.CommentLineSize
		if end > len(body) {
			break
		}
		if value, ok := codec.DecodeCString(body[start:end]); ok {
			lines = append(lines, value)
		} else if text := codec.DecodeText(body[start:end]); text != "" {
			lines = append(lines, text)
		}
		// an all-NUL line is silently dropped; an all-blank line is kept
		// as "".
	}
	return lines, nil
}
