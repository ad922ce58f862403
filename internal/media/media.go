// Package media is the static ~66-entry registry mapping (file_type,
// data_type) pairs to a named media type, and the type-dependent
// interpretation of the record's t_info_1..4 / t_flags / t_info_s slots
// for each one.
package media

import (
	"github.com/textmode-tools/gosauce/internal/ansiflags"
	"github.com/textmode-tools/gosauce/internal/datatype"
)

// Slot identifies one of the six type-dependent fields of a SAUCE record.
type Slot int

const (
	SlotTInfo1 Slot = iota
	SlotTInfo2
	SlotTInfo3
	SlotTInfo4
	SlotTFlags
	SlotTInfoS
)

// Meaning names the semantic interpretation of a slot for a given media type.
type Meaning string

const (
	MeaningNone           Meaning = ""
	CharacterWidth        Meaning = "character_width"
	NumberOfLines         Meaning = "number_of_lines"
	PixelWidth            Meaning = "pixel_width"
	PixelHeight           Meaning = "pixel_height"
	PixelDepth            Meaning = "pixel_depth"
	NumberOfColors        Meaning = "number_of_colors"
	SampleRate            Meaning = "sample_rate"
	AnsiFlagsMeaning      Meaning = "ansi_flags"
	FontIDMeaning         Meaning = "font_id"
)

// Entry is one row of the media registry.
type Entry struct {
	ID       string
	FileType int
	DataType datatype.ID
	Name     string
	Meanings map[Slot]Meaning
}

// anyFileType is the sentinel FileType value used by the binary_text row,
// which spec.md documents as matching any file_type when data_type == 5.
const anyFileType = -1

var (
	byHandle = map[[2]int]*Entry{} // (file_type, data_type) -> entry, data_type keyed by int
	byID     = map[string]*Entry{}
	all      []*Entry
)

func add(id string, fileType int, dt datatype.ID, name string, meanings map[Slot]Meaning) {
	e := &Entry{ID: id, FileType: fileType, DataType: dt, Name: name, Meanings: meanings}
	all = append(all, e)
	byID[id] = e
	if fileType != anyFileType {
		byHandle[[2]int{fileType, int(dt)}] = e
	}
}

var textSlots = map[Slot]Meaning{
	SlotTInfo1: CharacterWidth,
	SlotTInfo2: NumberOfLines,
	SlotTFlags: AnsiFlagsMeaning,
	SlotTInfoS: FontIDMeaning,
}

var bitmapSlots = map[Slot]Meaning{
	SlotTInfo1: PixelWidth,
	SlotTInfo2: PixelHeight,
	SlotTInfo3: PixelDepth,
}

var audioSlots = map[Slot]Meaning{
	SlotTInfo1: SampleRate,
}

func init() {
	add("none", 0, datatype.None, "None", nil)

	character := []struct {
		id, name string
		ft       int
		slots    map[Slot]Meaning
	}{
		{"ascii", "ASCII", 0, textSlots},
		{"ansi", "ANSi", 1, textSlots},
		{"ansimation", "ANSiMation", 2, textSlots},
		{"rip_script", "RIPScript", 3, bitmapSlots},
		{"pcboard", "PCBoard", 4, textSlots},
		{"avatar", "Avatar", 5, textSlots},
		{"html", "HTML", 6, nil},
		{"source", "Source", 7, nil},
		{"tundra_draw", "TundraDraw", 8, textSlots},
	}
	for _, c := range character {
		add(c.id, c.ft, datatype.Character, c.name, c.slots)
	}

	bitmap := []struct {
		id, name string
		ft       int
	}{
		{"gif", "GIF", 0}, {"pcx", "PCX", 1}, {"lbm_iff", "LBM/IFF", 2},
		{"tga", "TGA", 3}, {"fli", "FLI", 4}, {"flc", "FLC", 5},
		{"bmp", "BMP", 6}, {"gl", "GL", 7}, {"dl", "DL", 8},
		{"wpg_bitmap", "WPG", 9}, {"png", "PNG", 10}, {"jpg", "JPG", 11},
		{"mpg", "MPG", 12}, {"avi", "AVI", 13},
	}
	for _, b := range bitmap {
		add(b.id, b.ft, datatype.Bitmap, b.name, bitmapSlots)
	}

	vector := []struct {
		id, name string
		ft       int
	}{
		{"dxf", "DXF", 0}, {"dwg", "DWG", 1}, {"wpg_vector", "WPG", 2}, {"3ds", "3DS", 3},
	}
	for _, v := range vector {
		add(v.id, v.ft, datatype.Vector, v.name, nil)
	}

	audio := []struct {
		id, name string
		ft       int
	}{
		{"mod", "MOD", 0}, {"669", "669", 1}, {"stm", "STM", 2}, {"s3m", "S3M", 3},
		{"mtm", "MTM", 4}, {"far", "FAR", 5}, {"ult", "ULT", 6}, {"amf", "AMF", 7},
		{"dmf", "DMF", 8}, {"okt", "OKT", 9}, {"rol", "ROL", 10}, {"cmf", "CMF", 11},
		{"midi", "MIDI", 12}, {"sadt", "SADT", 13}, {"voc", "VOC", 14}, {"wav", "WAV", 15},
		{"smp8", "SMP8", 16}, {"smp8s", "SMP8S", 17}, {"smp16", "SMP16", 18},
		{"smp16s", "SMP16S", 19}, {"patch8", "PATCH8", 20}, {"patch16", "PATCH16", 21},
		{"xm", "XM", 22}, {"hsc", "HSC", 23}, {"it", "IT", 24},
	}
	for _, a := range audio {
		add(a.id, a.ft, datatype.Audio, a.name, audioSlots)
	}

	add("binary_text", anyFileType, datatype.BinaryText, "BinaryText", nil)
	add("xbin", 0, datatype.XBin, "XBin", textSlots)

	archive := []struct {
		id, name string
		ft       int
	}{
		{"zip", "ZIP", 0}, {"arj", "ARJ", 1}, {"lzh", "LZH", 2}, {"arc", "ARC", 3},
		{"tar", "TAR", 4}, {"zoo", "ZOO", 5}, {"rar", "RAR", 6}, {"uc2", "UC2", 7},
		{"pak", "PAK", 8}, {"sqz", "SQZ", 9},
	}
	for _, a := range archive {
		add(a.id, a.ft, datatype.Archive, a.name, nil)
	}

	add("executable", 0, datatype.Executable, "Executable", nil)
}

// Resolve maps (fileType, dataType) to a media id. The binary_text row
// matches any fileType. An unresolved pair yields "none".
func Resolve(fileType int, dataType datatype.ID) string {
	if dataType == datatype.BinaryText {
		return "binary_text"
	}
	if e, ok := byHandle[[2]int{fileType, int(dataType)}]; ok {
		return e.ID
	}
	return "none"
}

// Handle returns the (fileType, dataType) pair a media id resolves to.
// For binary_text, fileType 0 is returned as a representative value
// (spec.md defines the relation as any-file-type-matches, so there is no
// single canonical inverse; 0 keeps Resolve(Handle(id)) == id trivially
// true for every other entry, and callers of binary_text's handle should
// not depend on fileType being anything but "a valid one").
func Handle(id string) (fileType int, dataType datatype.ID, ok bool) {
	e, ok := byID[id]
	if !ok {
		return 0, datatype.None, false
	}
	if e.FileType == anyFileType {
		return 0, e.DataType, true
	}
	return e.FileType, e.DataType, true
}

// Meanings returns the slot->meaning mapping for a media id.
func Meanings(id string) map[Slot]Meaning {
	e, ok := byID[id]
	if !ok {
		return nil
	}
	return e.Meanings
}

// Name returns the human name for a media id, or "" if unknown.
func Name(id string) string {
	if e, ok := byID[id]; ok {
		return e.Name
	}
	return ""
}

// TypedValue is a slot's interpreted value: a semantic name and a typed
// payload (an int, an ansiflags.Flags, or for font_id the raw uint32).
type TypedValue struct {
	Name  Meaning
	Value any
}

// Interpret decodes slot's raw value according to media id's meaning for
// that slot. ansi_flags gets its dedicated decoder; font_id is returned
// as the raw value unchanged (font names are resolved by
// SauceBlock.TInfoSValue); everything else passes through as an
// identity int.
func Interpret(id string, slot Slot, raw uint32) TypedValue {
	meanings := Meanings(id)
	meaning := meanings[slot]
	switch meaning {
	case FontIDMeaning:
		return TypedValue{Name: meaning, Value: raw} // caller resolves the font by name; see block.go
	case AnsiFlagsMeaning:
		return TypedValue{Name: meaning, Value: ansiflags.DecodeInt(int(raw))}
	case MeaningNone:
		return TypedValue{Name: MeaningNone, Value: int(raw)}
	default:
		return TypedValue{Name: meaning, Value: int(raw)}
	}
}

// MediaIDsForDataType returns every media id registered under dataType.
func MediaIDsForDataType(dt datatype.ID) []string {
	var ids []string
	for _, e := range all {
		if e.DataType == dt {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// FileTypesForDataType returns every file_type value registered under
// dataType (excluding the any-file-type binary_text sentinel).
func FileTypesForDataType(dt datatype.ID) []int {
	var fts []int
	for _, e := range all {
		if e.DataType == dt && e.FileType != anyFileType {
			fts = append(fts, e.FileType)
		}
	}
	return fts
}

// All returns every registered entry.
func All() []*Entry {
	return all
}
