package sauce

import (
	"fmt"
	"io"

	"github.com/textmode-tools/gosauce/internal/blockio"
	"github.com/textmode-tools/gosauce/internal/record"
	"github.com/textmode-tools/gosauce/internal/schema"
)

// FileHandle is the minimal capability WriteFile and its siblings need:
// positional read/write plus the ability to shrink the underlying file.
// *os.File satisfies this directly.
type FileHandle interface {
	io.ReadWriteSeeker
	Truncate(size int64) error
}

// WriteFile encodes block and rewrites it as stream's trailing SAUCE
// block, truncating away whatever trailer (or stale comment block) was
// there before. An EOF sentinel is inserted ahead of the new block if
// stream's contents didn't already end with one.
//
// Truncate-before-write discipline: the stream is shortened to its
// contents boundary before anything new is written, so a rewrite can
// never leave a partial record sitting next to a stale comment block.
func WriteFile(stream FileHandle, block *SauceBlock) error {
	contentsSize, err := ContentsSize(stream)
	if err != nil {
		return err
	}

	needsEOF := true
	if contentsSize > 0 {
		last := make([]byte, 1)
		if err := readAt(stream, contentsSize-1, last); err != nil {
			return fmt.Errorf("sauce: read trailing byte: %w", err)
		}
		needsEOF = last[0] != schema.EOFByte
	}

	if err := stream.Truncate(contentsSize); err != nil {
		return fmt.Errorf("sauce: truncate: %w", err)
	}
	if _, err := stream.Seek(contentsSize, io.SeekStart); err != nil {
		return fmt.Errorf("sauce: seek: %w", err)
	}

	var out []byte
	if needsEOF {
		out = append(out, schema.EOFByte)
	}
	out = append(out, record.EncodeComments(block.Comments)...)
	out = append(out, record.EncodeRecord(block.toRecordFields(), block.CommentLines())...)

	if _, err := stream.Write(out); err != nil {
		return fmt.Errorf("sauce: write: %w", err)
	}
	return nil
}

// RemoveCommentsFile strips stream's comment block in place, leaving a
// zero-comment_lines record where the SAUCE block used to be. It is a
// no-op if stream has no record or the record already claims zero
// comment lines.
func RemoveCommentsFile(stream FileHandle) error {
	end, err := stream.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("sauce: seek: %w", err)
	}
	if end < schema.RecordSize {
		return nil
	}

	recBuf := make([]byte, schema.RecordSize)
	if err := readAt(stream, end-schema.RecordSize, recBuf); err != nil {
		return fmt.Errorf("sauce: read record: %w", err)
	}
	if !blockio.IsRecord(recBuf) {
		return nil
	}

	commentLines := int(recBuf[schema.FieldOffset(schema.CommentLines)])
	if commentLines == 0 {
		return nil
	}

	recordStart := end - schema.RecordSize
	blockSize := schema.CommentIDSize + schema.CommentLineSize*commentLines
	commentStart := recordStart - int64(blockSize)

	pos := recordStart
	if commentStart >= 0 {
		comBuf := make([]byte, blockSize)
		if err := readAt(stream, commentStart, comBuf); err != nil {
			return fmt.Errorf("sauce: read comments: %w", err)
		}
		if blockio.IsCommentBlock(comBuf) {
			pos = commentStart
		}
	}

	if err := stream.Truncate(pos); err != nil {
		return fmt.Errorf("sauce: truncate: %w", err)
	}
	if _, err := stream.Seek(pos, io.SeekStart); err != nil {
		return fmt.Errorf("sauce: seek: %w", err)
	}

	updated, err := record.WriteField(recBuf, schema.CommentLines, []byte{0})
	if err != nil {
		return err
	}
	if _, err := stream.Write(updated); err != nil {
		return fmt.Errorf("sauce: write: %w", err)
	}
	return nil
}

// RemoveSauceFile truncates stream at its contents boundary, discarding
// the SAUCE block (and any preceding EOF sentinel is left untouched).
func RemoveSauceFile(stream FileHandle) error {
	size, err := ContentsSize(stream)
	if err != nil {
		return err
	}
	if err := stream.Truncate(size); err != nil {
		return fmt.Errorf("sauce: truncate: %w", err)
	}
	return nil
}
