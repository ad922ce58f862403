// Package sauce reads, writes, repairs, and introspects the SAUCE
// metadata block: a 128-byte fixed trailer plus an optional
// variable-length comment block that the text-mode art scene appends to
// arbitrary files.
//
// This file holds SauceBlock, the logical aggregate a decode produces
// and an encode consumes (spec.md §3, "Logical SauceBlock", and §4.11's
// L11 aggregate operations).
package sauce

import (
	"strconv"
	"strings"

	"github.com/textmode-tools/gosauce/internal/ansiflags"
	"github.com/textmode-tools/gosauce/internal/codec"
	"github.com/textmode-tools/gosauce/internal/datatype"
	"github.com/textmode-tools/gosauce/internal/fontdb"
	"github.com/textmode-tools/gosauce/internal/media"
	"github.com/textmode-tools/gosauce/internal/record"
	"github.com/textmode-tools/gosauce/internal/schema"
)

// Date is a calendar date as decoded from (or to be encoded into) the
// eight-digit date field. A nil *Date means "no date".
type Date struct {
	Year, Month, Day int
}

// MediaInfo is the record-level, type-dependent portion of a SauceBlock:
// file_type/data_type plus the six type-dependent slots.
type MediaInfo struct {
	FileType int
	DataType int // one of the nine canonical data type integers
	FileSize int64
	TInfo1   int
	TInfo2   int
	TInfo3   int
	TInfo4   int
	TFlags   byte
	// TInfoS is the type-dependent C-string slot. TInfoSSet distinguishes
	// an explicit empty string from "no value" (an all-NUL field).
	TInfoS    string
	TInfoSSet bool
}

// SauceBlock is the aggregate record+comments type produced by decoding
// and consumed by encoding. Decoders always produce a fresh value;
// encoders never mutate the block they're given.
type SauceBlock struct {
	// VersionRaw is the two-character ASCII version field as stored in
	// the record, e.g. "00". Use Version to parse it into components.
	VersionRaw string
	Title      string
	Author     string
	Group      string
	Date       *Date
	Comments   []string
	Media      MediaInfo
}

// NewBlock constructs a SauceBlock from a MediaInfo and its scalar
// fields. Comments start empty; use AddComments to populate them.
func NewBlock(mediaInfo MediaInfo, version, title, author, group string, date *Date) *SauceBlock {
	return &SauceBlock{
		VersionRaw: version,
		Title:      title,
		Author:     author,
		Group:      group,
		Date:       date,
		Media:      mediaInfo,
	}
}

// CommentLines returns the derived comment_lines count for b: the number
// of comment lines, clamped to the field's 0..=255 range.
func (b *SauceBlock) CommentLines() int {
	n := len(b.Comments)
	if n > schema.MaxCommentLines {
		return schema.MaxCommentLines
	}
	return n
}

// FormattedComments joins b's comment lines with separator.
func (b *SauceBlock) FormattedComments(separator string) string {
	return strings.Join(b.Comments, separator)
}

// PrependComment inserts line at the start of b's comment list.
func (b *SauceBlock) PrependComment(line string) {
	b.Comments = append([]string{line}, b.Comments...)
}

// AddComments appends lines to b's comment list, in order.
func (b *SauceBlock) AddComments(lines ...string) {
	b.Comments = append(b.Comments, lines...)
}

// ClearComments empties b's comment list.
func (b *SauceBlock) ClearComments() {
	b.Comments = nil
}

// MediaTypeID returns the symbolic media type id for b's
// (FileType, DataType) pair, e.g. "ansi", "gif", or "none".
func (b *SauceBlock) MediaTypeID() string {
	return media.Resolve(b.Media.FileType, datatype.IDOf(b.Media.DataType))
}

// DataTypeID returns the canonical data type name for b's DataType.
func (b *SauceBlock) DataTypeID() string {
	return datatype.IDOf(b.Media.DataType).Name()
}

// Version parses b's two-digit ASCII VersionRaw field into major/minor
// components, e.g. "00" -> (0, 0, true). ok is false when the field
// isn't exactly two ASCII digits, so callers don't have to hand-parse
// it themselves before deciding whether to trust it.
func (b *SauceBlock) Version() (major, minor int, ok bool) {
	if len(b.VersionRaw) != 2 {
		return 0, 0, false
	}
	hi, lo := b.VersionRaw[0], b.VersionRaw[1]
	if hi < '0' || hi > '9' || lo < '0' || lo > '9' {
		return 0, 0, false
	}
	return int(hi - '0'), int(lo - '0'), true
}

// SlotValue is a single interpreted type-dependent field: its semantic
// name (e.g. "character_width", "font_id", "ansi_flags") and typed
// value.
type SlotValue struct {
	Name  string
	Value any
}

func (b *SauceBlock) interpretNumeric(slot media.Slot, raw int) SlotValue {
	tv := media.Interpret(b.MediaTypeID(), slot, uint32(int32(raw)))
	return SlotValue{Name: string(tv.Name), Value: tv.Value}
}

// TInfo1Value interprets b.Media.TInfo1 according to its media type.
func (b *SauceBlock) TInfo1Value() SlotValue { return b.interpretNumeric(media.SlotTInfo1, b.Media.TInfo1) }

// TInfo2Value interprets b.Media.TInfo2 according to its media type.
func (b *SauceBlock) TInfo2Value() SlotValue { return b.interpretNumeric(media.SlotTInfo2, b.Media.TInfo2) }

// TInfo3Value interprets b.Media.TInfo3 according to its media type.
func (b *SauceBlock) TInfo3Value() SlotValue { return b.interpretNumeric(media.SlotTInfo3, b.Media.TInfo3) }

// TInfo4Value interprets b.Media.TInfo4 according to its media type.
func (b *SauceBlock) TInfo4Value() SlotValue { return b.interpretNumeric(media.SlotTInfo4, b.Media.TInfo4) }

// TFlagsValue interprets b.Media.TFlags according to its media type.
// When the media type doesn't define ansi_flags for t_flags, the raw
// byte is returned unnamed.
func (b *SauceBlock) TFlagsValue() SlotValue {
	meanings := media.Meanings(b.MediaTypeID())
	if meanings[media.SlotTFlags] == media.AnsiFlagsMeaning {
		return SlotValue{Name: string(media.AnsiFlagsMeaning), Value: ansiflags.Decode(b.Media.TFlags)}
	}
	return SlotValue{Value: int(b.Media.TFlags)}
}

// TInfoSValue interprets b.Media.TInfoS according to its media type. When
// the media type defines t_info_s as font_id, the string is resolved
// against the font registry; an unresolvable name still returns the raw
// string as the value, with the semantic name attached.
func (b *SauceBlock) TInfoSValue() SlotValue {
	meanings := media.Meanings(b.MediaTypeID())
	if meanings[media.SlotTInfoS] == media.FontIDMeaning {
		if !b.Media.TInfoSSet {
			return SlotValue{Name: string(media.FontIDMeaning), Value: nil}
		}
		if f, ok := fontdb.ByName(b.Media.TInfoS); ok {
			return SlotValue{Name: string(media.FontIDMeaning), Value: f.ID}
		}
		return SlotValue{Name: string(media.FontIDMeaning), Value: b.Media.TInfoS}
	}
	if !b.Media.TInfoSSet {
		return SlotValue{Value: nil}
	}
	return SlotValue{Value: b.Media.TInfoS}
}

// Details merges b's media-level interpretation with its record-level
// scalar fields into a flat descriptor suitable for driving a UI.
func (b *SauceBlock) Details() map[string]any {
	d := map[string]any{
		"version":       b.VersionRaw,
		"title":         b.Title,
		"author":        b.Author,
		"group":         b.Group,
		"media_type":    b.MediaTypeID(),
		"media_name":    media.Name(b.MediaTypeID()),
		"data_type":     b.DataTypeID(),
		"file_size":     b.Media.FileSize,
		"comment_count": b.CommentLines(),
	}
	if b.Date != nil {
		d["date"] = strconv.Itoa(b.Date.Year) + "-" + pad2(b.Date.Month) + "-" + pad2(b.Date.Day)
	} else {
		d["date"] = nil
	}
	for _, sv := range []struct {
		key string
		val SlotValue
	}{
		{"t_info_1", b.TInfo1Value()},
		{"t_info_2", b.TInfo2Value()},
		{"t_info_3", b.TInfo3Value()},
		{"t_info_4", b.TInfo4Value()},
		{"t_flags", b.TFlagsValue()},
		{"t_info_s", b.TInfoSValue()},
	} {
		if sv.val.Name != "" {
			d[sv.val.Name] = sv.val.Value
		} else {
			d[sv.key] = sv.val.Value
		}
	}
	return d
}

func pad2(n int) string {
	s := strconv.Itoa(n)
	if len(s) < 2 {
		return "0" + s
	}
	return s
}

// toRecordFields converts a SauceBlock to the raw record.Fields shape
// internal/record's codec operates on.
func (b *SauceBlock) toRecordFields() record.Fields {
	var d *codec.Date
	if b.Date != nil {
		d = &codec.Date{Year: b.Date.Year, Month: b.Date.Month, Day: b.Date.Day}
	}
	return record.Fields{
		Version:  b.VersionRaw,
		Title:    b.Title,
		Author:   b.Author,
		Group:    b.Group,
		Date:     d,
		FileSize: b.Media.FileSize,
		DataType: datatype.IDOf(b.Media.DataType),
		FileType: b.Media.FileType,
		TInfo1:   b.Media.TInfo1,
		TInfo2:   b.Media.TInfo2,
		TInfo3:   b.Media.TInfo3,
		TInfo4:   b.Media.TInfo4,
		TFlags:   b.Media.TFlags,
		TInfoS:   b.Media.TInfoS,
		TInfoSOK: b.Media.TInfoSSet,
	}
}

// fromRecordFields builds a SauceBlock from a decoded record.Fields and
// its comments.
func fromRecordFields(f record.Fields, comments []string) *SauceBlock {
	var d *Date
	if f.Date != nil {
		d = &Date{Year: f.Date.Year, Month: f.Date.Month, Day: f.Date.Day}
	}
	return &SauceBlock{
		VersionRaw: f.Version,
		Title:      f.Title,
		Author:     f.Author,
		Group:      f.Group,
		Date:       d,
		Comments:   comments,
		Media: MediaInfo{
			FileType:  f.FileType,
			DataType:  datatype.IntOf(f.DataType),
			FileSize:  f.FileSize,
			TInfo1:    f.TInfo1,
			TInfo2:    f.TInfo2,
			TInfo3:    f.TInfo3,
			TInfo4:    f.TInfo4,
			TFlags:    f.TFlags,
			TInfoS:    f.TInfoS,
			TInfoSSet: f.TInfoSOK,
		},
	}
}
