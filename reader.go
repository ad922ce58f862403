package sauce

import (
	"github.com/textmode-tools/gosauce/internal/blockio"
	"github.com/textmode-tools/gosauce/internal/record"
)

// Sauce decodes the full SauceBlock (record plus comments) from the tail
// of buf. A malformed or missing comment block is tolerated: the record
// still decodes and Comments comes back empty, since the record itself
// is the authoritative source of truth for everything but the comment
// text.
func Sauce(buf []byte) (*SauceBlock, error) {
	_, recBytes, comBytes := blockio.SplitAll(buf)
	if recBytes == nil {
		return nil, ErrNoSauce
	}
	fields, err := record.DecodeRecord(recBytes)
	if err != nil {
		return nil, err
	}
	comments, err := record.DecodeComments(comBytes, fields.CommentLines)
	if err != nil {
		comments = nil
	}
	return fromRecordFields(fields, comments), nil
}

// Raw returns the undecoded record and comment-block bytes at the tail
// of buf, or ErrNoSauce if buf has no trailing record.
func Raw(buf []byte) (recordBytes, commentBytes []byte, err error) {
	recBytes, comBytes := blockio.SplitSauce(buf)
	if recBytes == nil {
		return nil, nil, ErrNoSauce
	}
	return recBytes, comBytes, nil
}

// Comments decodes just the comment lines of buf's SAUCE block.
func Comments(buf []byte) ([]string, error) {
	_, recBytes, comBytes := blockio.SplitAll(buf)
	if recBytes == nil {
		return nil, ErrNoSauce
	}
	fields, err := record.DecodeRecord(recBytes)
	if err != nil {
		return nil, err
	}
	if fields.CommentLines == 0 {
		return nil, ErrNoComments
	}
	comments, err := record.DecodeComments(comBytes, fields.CommentLines)
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// Contents returns everything in buf before its SAUCE block (the whole
// buffer if it has none). When terminateWithEOF is true the result is
// guaranteed to end with the 0x1A sentinel.
func Contents(buf []byte, terminateWithEOF bool) []byte {
	return blockio.Contents(buf, terminateWithEOF)
}

// HasSauce reports whether buf ends with a recognizable SAUCE record.
func HasSauce(buf []byte) bool {
	_, rec, _ := blockio.SplitAll(buf)
	return rec != nil
}

// HasComments reports whether buf has both a record and a well-formed
// comment block matching its comment_lines count.
func HasComments(buf []byte) bool {
	_, rec, com := blockio.SplitAll(buf)
	return rec != nil && com != nil
}
