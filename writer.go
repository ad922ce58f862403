package sauce

import (
	"github.com/textmode-tools/gosauce/internal/blockio"
	"github.com/textmode-tools/gosauce/internal/record"
	"github.com/textmode-tools/gosauce/internal/schema"
)

// Write encodes block and appends it to buf's contents, replacing
// whatever SAUCE block (if any) was already there. The EOF sentinel is
// inserted ahead of the new block if buf's contents didn't already end
// with one. Only the last byte of the contents is inspected: a sentinel
// further back does not stop a new one from being added, and no
// existing sentinel is removed (sentinels are not deduplicated).
func Write(buf []byte, block *SauceBlock) []byte {
	encodedRecord := record.EncodeRecord(block.toRecordFields(), block.CommentLines())
	encodedComments := record.EncodeComments(block.Comments)
	body := blockio.Contents(buf, true)

	out := make([]byte, 0, len(body)+len(encodedComments)+len(encodedRecord))
	out = append(out, body...)
	out = append(out, encodedComments...)
	out = append(out, encodedRecord...)
	return out
}

// RemoveComments strips the comment block from buf, leaving the record
// in place with its comment_lines field zeroed. buf is returned
// unchanged if it has no record.
func RemoveComments(buf []byte) []byte {
	contents, rec, _ := blockio.SplitAll(buf)
	if rec == nil {
		return buf
	}
	zero := []byte{0}
	updated, err := record.WriteField(rec, schema.CommentLines, zero)
	if err != nil {
		return buf
	}
	out := make([]byte, 0, len(contents)+len(updated))
	out = append(out, contents...)
	out = append(out, updated...)
	return out
}

// RemoveSauce strips the entire SAUCE block (record and comments) from
// buf, without inserting an EOF sentinel.
func RemoveSauce(buf []byte) []byte {
	return blockio.Contents(buf, false)
}
