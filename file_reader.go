package sauce

import (
	"errors"
	"fmt"
	"io"

	"github.com/textmode-tools/gosauce/internal/blockio"
	"github.com/textmode-tools/gosauce/internal/record"
	"github.com/textmode-tools/gosauce/internal/schema"
)

// ReadSauce decodes a SauceBlock from the tail of stream, scanning
// backward from end-of-stream rather than reading the file forward.
// A malformed or missing comment block does not fail the read: the
// record is still returned with an empty Comments slice. This makes
// ReadSauce tolerant of "bad pointer" comment_lines counts, which are
// common among writers that never validate their own output.
func ReadSauce(stream io.ReadSeeker) (*SauceBlock, error) {
	end, err := stream.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("sauce: seek: %w", err)
	}
	if end < schema.RecordSize {
		return nil, ErrNoSauce
	}

	recBuf := make([]byte, schema.RecordSize)
	if err := readAt(stream, end-schema.RecordSize, recBuf); err != nil {
		return nil, fmt.Errorf("sauce: read record: %w", err)
	}
	if !blockio.IsRecord(recBuf) {
		return nil, ErrNoSauce
	}

	fields, err := record.DecodeRecord(recBuf)
	if err != nil {
		return nil, err
	}

	var comments []string
	if fields.CommentLines > 0 {
		blockSize := schema.CommentIDSize + schema.CommentLineSize*fields.CommentLines
		commentOffset := end - schema.RecordSize - int64(blockSize)
		if commentOffset >= 0 {
			comBuf := make([]byte, blockSize)
			if err := readAt(stream, commentOffset, comBuf); err != nil {
				return nil, fmt.Errorf("sauce: read comments: %w", err)
			}
			if blockio.IsCommentBlock(comBuf) {
				comments, err = record.DecodeComments(comBuf, fields.CommentLines)
				if err != nil {
					comments = nil
				}
			}
			// A prefix mismatch is tolerated: proceed as if
			// comment_lines were 0, per the write-side "bad pointer"
			// tolerance policy.
		}
	}

	return fromRecordFields(fields, comments), nil
}

// HasSauceFile reports whether stream ends with a recognizable SAUCE
// record, without decoding it.
func HasSauceFile(stream io.ReadSeeker) (bool, error) {
	end, err := stream.Seek(0, io.SeekEnd)
	if err != nil {
		return false, fmt.Errorf("sauce: seek: %w", err)
	}
	if end < schema.RecordSize {
		return false, nil
	}
	recBuf := make([]byte, schema.RecordSize)
	if err := readAt(stream, end-schema.RecordSize, recBuf); err != nil {
		return false, fmt.Errorf("sauce: read record: %w", err)
	}
	return blockio.IsRecord(recBuf), nil
}

// ContentsSize computes the byte offset at which stream's non-SAUCE
// contents end: the length of the whole stream if it carries no
// trailing record, otherwise the offset just before the record (and
// before its comment block, if one is present and well-formed).
//
// Deliberate policy: when an expected comment block is missing or
// mis-shaped, the bytes in that region are contents, not SAUCE — the
// record's stated comment_lines is not trusted blindly.
func ContentsSize(stream io.ReadSeeker) (int64, error) {
	end, err := stream.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, fmt.Errorf("sauce: seek: %w", err)
	}
	if end < schema.RecordSize {
		return end, nil
	}

	recBuf := make([]byte, schema.RecordSize)
	if err := readAt(stream, end-schema.RecordSize, recBuf); err != nil {
		return 0, fmt.Errorf("sauce: read record: %w", err)
	}
	if !blockio.IsRecord(recBuf) {
		return end, nil
	}

	commentLines := int(recBuf[schema.FieldOffset(schema.CommentLines)])
	recordStart := end - schema.RecordSize
	if commentLines == 0 {
		return recordStart, nil
	}

	blockSize := schema.CommentIDSize + schema.CommentLineSize*commentLines
	commentStart := recordStart - int64(blockSize)
	if commentStart < 0 {
		return recordStart, nil
	}
	comBuf := make([]byte, blockSize)
	if err := readAt(stream, commentStart, comBuf); err != nil {
		return 0, fmt.Errorf("sauce: read comments: %w", err)
	}
	if !blockio.IsCommentBlock(comBuf) {
		return recordStart, nil
	}
	return commentStart, nil
}

func readAt(stream io.ReadSeeker, offset int64, buf []byte) error {
	if _, err := stream.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	_, err := io.ReadFull(stream, buf)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
