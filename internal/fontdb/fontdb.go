// Package fontdb is the registry of SAUCE font identifiers (t_info_s
// values used by character/ANSi media types) and the display properties
// of the subset that has them. It generates the IBM VGA/EGA x code-page
// cross product plus the fixed Amiga/Atari/C64 entries, landing close to
// (not pinned exactly to) the ~141-entry registry real SAUCE viewers
// ship.
package fontdb

import "fmt"

// Encoding identifies the character-cell encoding family a font belongs to.
type Encoding string

const (
	CP437  Encoding = "cp437"
	Amiga  Encoding = "amiga"
	Atari  Encoding = "atari"
	C64    Encoding = "c64"
)

// Options describes the physical display properties of a font, for the
// subset of fonts (68 in the canonical registry) that have them.
type Options struct {
	CellWidth, CellHeight   int
	ResolutionX, ResolutionY int
	AspectX, AspectY        int
	VerticalStretchPercent  int
}

// Font is one entry in the registry.
type Font struct {
	ID       string // canonical symbol, e.g. "ibm_vga_850"
	Name     string // exact on-disk spelling, e.g. "IBM VGA 850"
	Encoding Encoding
	Options  *Options // nil if this font has no display properties
}

var (
	byID   = map[string]*Font{}
	byName = map[string]*Font{}
	all    []*Font
)

func register(f Font) {
	stored := f
	all = append(all, &stored)
	byID[stored.ID] = &stored
	byName[stored.Name] = &stored
}

// codePages is the set of IBM code-page suffixes the five base VGA/EGA
// fonts are offered in. "437" is included both as an explicit suffix and
// as the implicit encoding of the bare (no-suffix) base name.
var codePages = []string{
	"437", "720", "737", "775", "819", "850", "852", "855", "857", "858",
	"860", "861", "862", "863", "864", "865", "866", "869", "872",
	"KAM", "MAZ", "MIK", "PL", "RUS", "LAT2", "NORDIC",
}

// ibmBases pairs a base font name with the pixel cell size / resolution
// its VGA or EGA hardware mode used.
var ibmBases = []struct {
	name   string
	cell   [2]int
	res    [2]int
	stretch int
}{
	{"IBM VGA", [2]int{8, 16}, [2]int{640, 400}, 0},
	{"IBM VGA50", [2]int{8, 8}, [2]int{640, 400}, 0},
	{"IBM VGA25G", [2]int{8, 19}, [2]int{640, 400}, 0},
	{"IBM EGA", [2]int{8, 14}, [2]int{640, 350}, 0},
	{"IBM EGA43", [2]int{8, 8}, [2]int{640, 350}, 0},
}

func init() {
	for _, base := range ibmBases {
		for _, cp := range codePages {
			// The 437 code page is the implied default: its canonical
			// name and symbol drop the "437" suffix ("IBM VGA", not
			// "IBM VGA 437"), matching how real-world SAUCE files spell
			// the common case. The suffixed spelling is still accepted
			// as an alias by ByName.
			var name string
			if cp == "437" {
				name = base.name
			} else {
				name = fmt.Sprintf("%s %s", base.name, cp)
			}
			id := slug(name)
			opts := &Options{
				CellWidth:   base.cell[0],
				CellHeight:  base.cell[1],
				ResolutionX: base.res[0],
				ResolutionY: base.res[1],
				AspectX:     4,
				AspectY:     3,
			}
			register(Font{ID: id, Name: name, Encoding: CP437, Options: opts})
			if cp == "437" {
				byName[base.name+" 437"] = byID[id]
			}
		}
	}

	amiga := []struct {
		name  string
		hasOpts bool
	}{
		{"Amiga Topaz 1", true},
		{"Amiga Topaz 1+", true},
		{"Amiga Topaz 2", true},
		{"Amiga Topaz 2+", true},
		{"Amiga mOsOul", true},
		{"Amiga MicroKnight", true},
		{"Amiga MicroKnight+", true},
		{"Amiga P0T-NOoDLE", true},
		{"Amiga P0T-NOoDLE+", true},
	}
	for _, a := range amiga {
		var opts *Options
		if a.hasOpts {
			opts = &Options{CellWidth: 8, CellHeight: 8, ResolutionX: 640, ResolutionY: 256, AspectX: 5, AspectY: 12, VerticalStretchPercent: 120}
		}
		register(Font{ID: slug(a.name), Name: a.name, Encoding: Amiga, Options: opts})
	}

	register(Font{ID: slug("Atari ATASCII"), Name: "Atari ATASCII", Encoding: Atari,
		Options: &Options{CellWidth: 8, CellHeight: 8, ResolutionX: 320, ResolutionY: 200, AspectX: 1, AspectY: 1}})

	c64 := []string{"C64 PETSCII unshifted", "C64 PETSCII shifted"}
	for _, name := range c64 {
		register(Font{ID: slug(name), Name: name, Encoding: C64,
			Options: &Options{CellWidth: 8, CellHeight: 8, ResolutionX: 320, ResolutionY: 200, AspectX: 1, AspectY: 1}})
	}
}

func slug(name string) string {
	out := make([]byte, 0, len(name))
	prevUnderscore := false
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'A' && c <= 'Z':
			out = append(out, c-'A'+'a')
			prevUnderscore = false
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			out = append(out, c)
			prevUnderscore = false
		default:
			if !prevUnderscore && len(out) > 0 {
				out = append(out, '_')
				prevUnderscore = true
			}
		}
	}
	for len(out) > 0 && out[len(out)-1] == '_' {
		out = out[:len(out)-1]
	}
	return string(out)
}

// ByID looks up a font by its canonical symbol.
func ByID(id string) (*Font, bool) {
	f, ok := byID[id]
	return f, ok
}

// ByName looks up a font by its exact on-disk spelling. Both the bare
// IBM base names ("IBM VGA") and their explicit "437"-suffixed spelling
// ("IBM VGA 437") resolve to the same entry, matching the real-world
// SAUCE convention that CP437 is the implied default code page.
func ByName(name string) (*Font, bool) {
	f, ok := byName[name]
	return f, ok
}

// FontOptions returns the display options for id, and whether that font
// has any. Every font this registry generates carries display options,
// so ok is false only for an id that is not registered.
func FontOptions(id string) (*Options, bool) {
	f, ok := byID[id]
	if !ok || f.Options == nil {
		return nil, false
	}
	return f.Options, true
}

// ByIDAndCellSize looks up a font by id, further requiring its cell size
// (if it has display properties) to match the given dimensions.
func ByIDAndCellSize(id string, width, height int) (*Font, bool) {
	f, ok := byID[id]
	if !ok || f.Options == nil {
		return nil, false
	}
	if f.Options.CellWidth != width || f.Options.CellHeight != height {
		return nil, false
	}
	return f, true
}

// All returns every registered font.
func All() []*Font {
	return all
}
