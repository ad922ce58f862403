// Package blockio is the tolerant SAUCE-binary layer of spec.md §4.8: it
// locates, splits, and slices the trailing SAUCE block of an in-memory
// buffer without touching unrelated bytes, and never decodes field
// values itself (that's internal/record's job).
package blockio

import (
	"bytes"

	"github.com/textmode-tools/gosauce/internal/record"
	"github.com/textmode-tools/gosauce/internal/sauceerr"
	"github.com/textmode-tools/gosauce/internal/schema"
)

// IsRecord reports whether b is shaped like a 128-byte record: length
// 128 and "SAUCE"-prefixed. This is a recognition predicate, not a full
// decode: a record with a garbled version field, or the empty-record
// sentinel a buggy writer leaves behind, is still IsRecord == true —
// DecodeRecord is what reports ErrInvalidSauce for those.
func IsRecord(b []byte) bool {
	if len(b) != schema.RecordSize {
		return false
	}
	return bytes.Equal(b[0:5], []byte(schema.SauceIDString))
}

// rawCommentLines reads the comment_lines byte directly, without going
// through the full record decode (whose version-field validation is
// irrelevant to locating the comment block).
func rawCommentLines(rec []byte) int {
	return int(rec[schema.FieldOffset(schema.CommentLines)])
}

// IsCommentBlock reports whether b looks like a complete, well-formed
// comment block: length >= 69, "COMNT"-prefixed, and (len-5) a multiple
// of 64.
func IsCommentBlock(b []byte) bool {
	if len(b) < schema.MinCommentBlock {
		return false
	}
	if !bytes.Equal(b[0:schema.CommentIDSize], []byte(schema.CommentIDString)) {
		return false
	}
	return (len(b)-schema.CommentIDSize)%schema.CommentLineSize == 0
}

// IsCommentFragment reports whether b starts with "COMNT" and is long
// enough to hold at least one line, without requiring an exact multiple
// of 64 bytes. Used by repair/diagnostic tooling to spot malformed
// comment blocks that IsCommentBlock would reject outright.
func IsCommentFragment(b []byte) bool {
	if len(b) < schema.MinCommentBlock {
		return false
	}
	return bytes.Equal(b[0:schema.CommentIDSize], []byte(schema.CommentIDString))
}

// SplitAll locates the record at the tail of buf and, if a comment block
// immediately precedes it (matching the record's comment_lines field),
// splits buf into (contents, recordBytes, commentBytes). If buf has no
// trailing record, it returns (buf, nil, nil).
func SplitAll(buf []byte) (contents, recordBytes, commentBytes []byte) {
	if len(buf) < schema.RecordSize {
		return buf, nil, nil
	}
	rec := buf[len(buf)-schema.RecordSize:]
	if !IsRecord(rec) {
		return buf, nil, nil
	}

	commentLines := rawCommentLines(rec)

	recordStart := len(buf) - schema.RecordSize
	if commentLines > 0 {
		blockSize := schema.CommentIDSize + schema.CommentLineSize*commentLines
		commentStart := recordStart - blockSize
		if commentStart >= 0 {
			candidate := buf[commentStart:recordStart]
			if IsCommentBlock(candidate) {
				return buf[:commentStart], rec, candidate
			}
		}
	}
	return buf[:recordStart], rec, nil
}

// SplitWith is the explicit-n variant of SplitAll: it checks the layout
// implied by n comment lines rather than trusting the record's own
// comment_lines field. Used by repair tooling reconciling a stale count.
func SplitWith(buf []byte, n int) (contents, recordBytes, commentBytes []byte) {
	if len(buf) < schema.RecordSize {
		return buf, nil, nil
	}
	rec := buf[len(buf)-schema.RecordSize:]
	if !IsRecord(rec) {
		return buf, nil, nil
	}
	recordStart := len(buf) - schema.RecordSize
	if n > 0 {
		size := schema.SauceBlockSize(n)
		if size <= len(buf) {
			commentStart := len(buf) - size
			candidate := buf[commentStart:recordStart]
			if IsCommentBlock(candidate) {
				return buf[:commentStart], rec, candidate
			}
		}
	}
	return buf[:recordStart], rec, nil
}

// SplitSauce is SplitAll without the leading contents slice.
func SplitSauce(buf []byte) (recordBytes, commentBytes []byte) {
	_, rec, com := SplitAll(buf)
	return rec, com
}

// SplitRecord is SplitAll without the comment slice.
func SplitRecord(buf []byte) (contents, recordBytes []byte) {
	c, rec, _ := SplitAll(buf)
	return c, rec
}

// ReadField returns the raw (undecoded) bytes of a single record field.
func ReadField(buf []byte, id schema.Field) ([]byte, error) {
	_, rec, _ := SplitAll(buf)
	if rec == nil {
		return nil, sauceerr.ErrNoSauce
	}
	off := schema.FieldOffset(id)
	size := schema.FieldSize(id)
	return rec[off : off+size], nil
}

// WriteField overwrites a single record field of buf in place and
// returns the new buffer. It fails if buf has no record.
func WriteField(buf []byte, id schema.Field, raw []byte) ([]byte, error) {
	contents, rec, com := SplitAll(buf)
	if rec == nil {
		return nil, sauceerr.ErrNoSauce
	}
	newRec, err := record.WriteField(rec, id, raw)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(contents)+len(com)+len(newRec))
	out = append(out, contents...)
	out = append(out, com...)
	out = append(out, newRec...)
	return out, nil
}

// Contents returns everything up to the SAUCE block (record plus
// comments, if present). If terminateWithEOF is true and the result
// doesn't already end with the EOF sentinel, one is appended.
func Contents(buf []byte, terminateWithEOF bool) []byte {
	contents, rec, _ := SplitAll(buf)
	if rec == nil {
		contents = buf
	}
	if terminateWithEOF && (len(contents) == 0 || contents[len(contents)-1] != schema.EOFByte) {
		out := make([]byte, len(contents)+1)
		copy(out, contents)
		out[len(out)-1] = schema.EOFByte
		return out
	}
	out := make([]byte, len(contents))
	copy(out, contents)
	return out
}

// CleanContents returns the bytes of buf strictly before the first EOF
// sentinel byte (0x1A), or the whole buffer if none is present.
func CleanContents(buf []byte) []byte {
	if i := bytes.IndexByte(buf, schema.EOFByte); i >= 0 {
		out := make([]byte, i)
		copy(out, buf[:i])
		return out
	}
	out := make([]byte, len(buf))
	copy(out, buf)
	return out
}

// EOFTerminated reports whether Contents(buf, false) already ends with
// the EOF sentinel.
func EOFTerminated(buf []byte) bool {
	contents, rec, _ := SplitAll(buf)
	if rec == nil {
		contents = buf
	}
	return len(contents) > 0 && contents[len(contents)-1] == schema.EOFByte
}

// EOFTerminate appends an EOF sentinel to buf's contents if not already
// present, returning the whole reassembled buffer (contents + comments +
// record, if any).
func EOFTerminate(buf []byte) []byte {
	contents, rec, com := SplitAll(buf)
	if rec == nil {
		contents = buf
	}
	if len(contents) == 0 || contents[len(contents)-1] != schema.EOFByte {
		contents = append(append([]byte{}, contents...), schema.EOFByte)
	}
	out := make([]byte, 0, len(contents)+len(com)+len(rec))
	out = append(out, contents...)
	out = append(out, com...)
	out = append(out, rec...)
	return out
}

// Match is the (position, length) result of a match* helper.
type Match struct {
	Pos, Len int
}

// MatchOptions configures the match* helpers' EOF-adjacency requirement.
type MatchOptions struct {
	EOFRequired bool
}

// NoMatch is returned (as the ok=false case) when a match* helper finds
// nothing.
var NoMatch = Match{-1, -1}

// MatchRecord finds the first (and only, since a record is always the
// buffer's last 128 bytes) record in buf. When opts.EOFRequired is true,
// the match must be immediately preceded by 0x1A (with no intervening
// comment block); the reported position starts at the ID byte and length
// excludes the EOF byte.
func MatchRecord(buf []byte, opts MatchOptions) (Match, bool) {
	if len(buf) < schema.RecordSize {
		return NoMatch, false
	}
	pos := len(buf) - schema.RecordSize
	if !IsRecord(buf[pos:]) {
		return NoMatch, false
	}
	if opts.EOFRequired {
		if pos == 0 || buf[pos-1] != schema.EOFByte {
			return NoMatch, false
		}
	}
	return Match{Pos: pos, Len: schema.RecordSize}, true
}

// MatchCommentBlock finds the well-formed comment block immediately
// preceding a valid trailing record (a comment block match requires a
// record to exist, since the record's comment_lines defines the block's
// length).
func MatchCommentBlock(buf []byte, opts MatchOptions) (Match, bool) {
	recMatch, ok := MatchRecord(buf, MatchOptions{})
	if !ok {
		return NoMatch, false
	}
	commentLines := rawCommentLines(buf[recMatch.Pos:])
	if commentLines == 0 {
		return NoMatch, false
	}
	blockSize := schema.CommentIDSize + schema.CommentLineSize*commentLines
	start := recMatch.Pos - blockSize
	if start < 0 || !IsCommentBlock(buf[start:recMatch.Pos]) {
		return NoMatch, false
	}
	if opts.EOFRequired {
		if start == 0 || buf[start-1] != schema.EOFByte {
			return NoMatch, false
		}
	}
	return Match{Pos: start, Len: blockSize}, true
}

// MatchCommentFragment is MatchCommentBlock without requiring a
// well-formed record or an exact-multiple-of-64 block length: it scans
// for the first "COMNT"-prefixed run of at least MinCommentBlock bytes.
func MatchCommentFragment(buf []byte, opts MatchOptions) (Match, bool) {
	tag := []byte(schema.CommentIDString)
	search := buf
	offset := 0
	for {
		i := bytes.Index(search, tag)
		if i < 0 {
			return NoMatch, false
		}
		pos := offset + i
		remaining := len(buf) - pos
		if remaining >= schema.MinCommentBlock {
			if !opts.EOFRequired || (pos > 0 && buf[pos-1] == schema.EOFByte) {
				return Match{Pos: pos, Len: remaining}, true
			}
		}
		offset = pos + 1
		search = buf[offset:]
	}
}

// CountCommentLines recovers the comment count from the comment block's
// actual byte length, for repair workflows that don't trust the
// record's own comment_lines field.
func CountCommentLines(buf []byte) int {
	m, ok := MatchCommentBlock(buf, MatchOptions{})
	if !ok {
		return 0
	}
	return (m.Len - schema.CommentIDSize) / schema.CommentLineSize
}

// CommentLinesField reads the record's comment_lines field directly,
// without cross-checking the comment block's actual length.
func CommentLinesField(buf []byte) (int, error) {
	raw, err := ReadField(buf, schema.CommentLines)
	if err != nil {
		return 0, err
	}
	return int(raw[0]), nil
}
