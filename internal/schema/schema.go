// Package schema is the single source of truth for the SAUCE record's
// fixed byte layout: field ids, offsets, sizes, and the handful of
// derived constants every other layer needs to stay in step.
package schema

// Field identifies one of the sixteen fields of a SAUCE record.
type Field int

const (
	ID Field = iota
	Version
	Title
	Author
	Group
	Date
	FileSize
	DataType
	FileType
	TInfo1
	TInfo2
	TInfo3
	TInfo4
	CommentLines
	TFlags
	TInfoS
)

type fieldSpec struct {
	offset int
	size   int
}

// layout is indexed by Field and is the only place offsets/sizes are
// spelled out as literals.
var layout = [...]fieldSpec{
	ID:           {0, 5},
	Version:      {5, 2},
	Title:        {7, 35},
	Author:       {42, 20},
	Group:        {62, 20},
	Date:         {82, 8},
	FileSize:     {90, 4},
	DataType:     {94, 1},
	FileType:     {95, 1},
	TInfo1:       {96, 2},
	TInfo2:       {98, 2},
	TInfo3:       {100, 2},
	TInfo4:       {102, 2},
	CommentLines: {104, 1},
	TFlags:       {105, 1},
	TInfoS:       {106, 22},
}

const (
	// RecordSize is the fixed size of a SAUCE record in bytes.
	RecordSize = 128
	// CommentIDSize is the length of the "COMNT" tag.
	CommentIDSize = 5
	// CommentLineSize is the fixed width of one comment line.
	CommentLineSize = 64
	// MinCommentBlock is the smallest possible non-empty comment block
	// (the "COMNT" tag plus one line).
	MinCommentBlock = CommentIDSize + CommentLineSize
	// MaxCommentLines is the largest value the single-byte comment_lines
	// field can hold.
	MaxCommentLines = 255
	// FileSizeLimit is the largest file_size the u32 field can encode.
	FileSizeLimit = 1<<32 - 1

	// SauceIDString is the fixed literal at offset 0.
	SauceIDString = "SAUCE"
	// CommentIDString is the fixed literal at offset 0 of a comment block.
	CommentIDString = "COMNT"
	// EOFByte is the sentinel that precedes a well-formed SAUCE block.
	EOFByte byte = 0x1A
)

// FieldSize returns the declared byte width of a field.
func FieldSize(f Field) int {
	return layout[f].size
}

// FieldOffset returns the byte offset of a field within the 128-byte record.
func FieldOffset(f Field) int {
	return layout[f].offset
}

// RequiredFieldIDs returns every field id in on-disk order. The name
// matches spec.md's "required_field_ids"; every field in a SAUCE record
// is present unconditionally (there is no optional field within the
// fixed 128 bytes), so this is simply the full ordered set.
func RequiredFieldIDs() []Field {
	ids := make([]Field, len(layout))
	for i := range layout {
		ids[i] = Field(i)
	}
	return ids
}

// SauceBlockSize returns the total size in bytes of a SAUCE block (record
// plus comment block, if any) holding n comment lines.
func SauceBlockSize(n int) int {
	if n <= 0 {
		return RecordSize
	}
	return RecordSize + CommentIDSize + CommentLineSize*n
}
