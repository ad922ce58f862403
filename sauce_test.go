package sauce_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	sauce "github.com/textmode-tools/gosauce"
	"github.com/textmode-tools/gosauce/internal/ansiflags"
	"github.com/textmode-tools/gosauce/internal/media"
	"github.com/textmode-tools/gosauce/internal/schema"
)

func padRight(s string, n int) []byte {
	b := []byte(s)
	if len(b) >= n {
		return b[:n]
	}
	out := make([]byte, n)
	copy(out, b)
	for i := len(b); i < n; i++ {
		out[i] = ' '
	}
	return out
}

func le16(v int) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, uint16(v))
	return b
}

func le32(v int) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(v))
	return b
}

func concatAll(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// e1RecordBytes builds the literal 128-byte record spelled out in the
// "ACiD 1994 Member/Board Listing" end-to-end scenario.
func e1RecordBytes() []byte {
	return concatAll(
		[]byte("SAUCE"),
		[]byte("00"),
		padRight("ACiD 1994 Member/Board Listing", 35),
		padRight("", 20),
		padRight("ACiD Productions", 20),
		[]byte("19940831"),
		le32(8900),
		[]byte{1}, // data_type: Character
		[]byte{1}, // file_type: ANSi
		le16(80), le16(97), le16(16), le16(0),
		[]byte{5}, // comment_lines
		[]byte{0}, // t_flags
		make([]byte, 22),
	)
}

func e1CommentLines() []string {
	return []string{"test notes", "second line", "more test", "", "after a blank line"}
}

func e1CommentBytes() []byte {
	buf := []byte("COMNT")
	for _, line := range e1CommentLines() {
		buf = append(buf, padRight(line, 64)...)
	}
	return buf
}

func e1Buffer() []byte {
	return concatAll(e1CommentBytes(), e1RecordBytes())
}

var _ = Describe("buffer-level SAUCE decode/encode", func() {

	Describe("Invariant: roundtrip-record", func() {
		It("decodes what it just encoded, unchanged", func() {
			block := sauce.NewBlock(sauce.MediaInfo{
				FileType: 1, DataType: 1, FileSize: 4096,
				TInfo1: 80, TInfo2: 25, TInfo3: 0, TInfo4: 0, TFlags: 9,
			}, "00", "Some Title", "Some Author", "Some Group",
				&sauce.Date{Year: 2001, Month: 2, Day: 3})
			block.AddComments("hello", "world")

			buf := sauce.Write(nil, block)
			decoded, err := sauce.Sauce(buf)
			Expect(err).NotTo(HaveOccurred())

			Expect(decoded.Title).To(Equal("Some Title"))
			Expect(decoded.Author).To(Equal("Some Author"))
			Expect(decoded.Group).To(Equal("Some Group"))
			Expect(decoded.Date).To(Equal(&sauce.Date{Year: 2001, Month: 2, Day: 3}))
			Expect(decoded.Comments).To(Equal([]string{"hello", "world"}))
			Expect(decoded.Media.FileType).To(Equal(1))
			Expect(decoded.Media.TInfo1).To(Equal(80))
			Expect(decoded.Media.TInfo2).To(Equal(25))
			Expect(decoded.Media.TFlags).To(Equal(byte(9)))
		})
	})

	Describe("Invariant: idempotence of encode", func() {
		It("produces the same bytes on a second encode/decode/encode cycle", func() {
			block := sauce.NewBlock(sauce.MediaInfo{FileType: 0, DataType: 0}, "00", "T", "A", "G", nil)
			block.AddComments("one line")

			first := sauce.Write(nil, block)
			decoded, err := sauce.Sauce(first)
			Expect(err).NotTo(HaveOccurred())
			second := sauce.Write(nil, decoded)

			// re-decode and re-encode once more; bytes must be stable.
			decodedAgain, err := sauce.Sauce(second)
			Expect(err).NotTo(HaveOccurred())
			third := sauce.Write(nil, decodedAgain)
			Expect(third).To(Equal(second))
		})
	})

	Describe("Invariant: bit-exact record size", func() {
		It("always encodes exactly 128 record bytes", func() {
			block := sauce.NewBlock(sauce.MediaInfo{}, "00", "", "", "", nil)
			buf := sauce.Write(nil, block)
			rec, _, err := sauce.Raw(buf)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec).To(HaveLen(128))
		})
	})

	Describe("Invariant: bit-exact comment block size", func() {
		It("emits either zero bytes or 5 + 64*n bytes of comments", func() {
			noComments := sauce.NewBlock(sauce.MediaInfo{}, "00", "", "", "", nil)
			buf := sauce.Write(nil, noComments)
			_, com, err := sauce.Raw(buf)
			Expect(err).NotTo(HaveOccurred())
			Expect(com).To(BeEmpty())

			withComments := sauce.NewBlock(sauce.MediaInfo{}, "00", "", "", "", nil)
			withComments.AddComments("a", "b", "c")
			buf2 := sauce.Write(nil, withComments)
			_, com2, err := sauce.Raw(buf2)
			Expect(err).NotTo(HaveOccurred())
			Expect(com2).To(HaveLen(5 + 64*3))
		})
	})

	Describe("Invariant: write transparency", func() {
		It("decodes what was just written into an arbitrary buffer", func() {
			original := []byte{9, 8, 7}
			block := sauce.NewBlock(sauce.MediaInfo{}, "00", "First", "", "", nil)
			buf := sauce.Write(original, block)

			decoded, err := sauce.Sauce(buf)
			Expect(err).NotTo(HaveOccurred())
			Expect(decoded.Title).To(Equal("First"))
		})

		It("rewriting a second block over the first matches writing it directly", func() {
			original := []byte{9, 8, 7}
			block1 := sauce.NewBlock(sauce.MediaInfo{}, "00", "First", "", "", nil)
			block2 := sauce.NewBlock(sauce.MediaInfo{}, "00", "Second", "", "", nil)

			viaFirst := sauce.Write(sauce.Write(original, block1), block2)
			direct := sauce.Write(original, block2)
			Expect(viaFirst).To(Equal(direct))
		})
	})

	Describe("Invariant: remove-then-test", func() {
		It("leaves no detectable SAUCE and never grows the buffer", func() {
			block := sauce.NewBlock(sauce.MediaInfo{}, "00", "X", "", "", nil)
			buf := sauce.Write([]byte("hello world"), block)

			stripped := sauce.RemoveSauce(buf)
			Expect(sauce.HasSauce(stripped)).To(BeFalse())
			Expect(len(stripped)).To(BeNumerically("<=", len(buf)))
		})
	})

	Describe("Invariant: remove-comments preserves record presence", func() {
		It("keeps the record but drops the comments", func() {
			block := sauce.NewBlock(sauce.MediaInfo{}, "00", "X", "", "", nil)
			block.AddComments("keep me out")
			buf := sauce.Write(nil, block)

			stripped := sauce.RemoveComments(buf)
			Expect(sauce.HasSauce(stripped)).To(Equal(sauce.HasSauce(buf)))
			Expect(sauce.HasComments(stripped)).To(BeFalse())
		})
	})

	Describe("Invariant: no-op on non-SAUCE", func() {
		It("leaves a record-less buffer untouched by both remove operations", func() {
			plain := []byte("just some art, no trailer here")
			Expect(sauce.RemoveSauce(plain)).To(Equal(plain))
			Expect(sauce.RemoveComments(plain)).To(Equal(plain))
		})
	})

	Describe("Invariant: contents split additivity", func() {
		It("accounts for every byte across contents, record, and comments", func() {
			block := sauce.NewBlock(sauce.MediaInfo{}, "00", "X", "", "", nil)
			block.AddComments("a", "b")
			buf := sauce.Write([]byte("body bytes"), block)

			rec, com, err := sauce.Raw(buf)
			Expect(err).NotTo(HaveOccurred())
			contents := sauce.Contents(buf, false)
			Expect(len(contents) + len(rec) + len(com)).To(Equal(len(buf)))
		})
	})

	Describe("Invariant: comment-lines tolerance", func() {
		It("reads an empty comment list instead of failing on a mismatched count", func() {
			rec := e1RecordBytes()
			// claim 5 lines but supply none.
			buf := append([]byte{}, rec...)
			decoded, err := sauce.Sauce(buf)
			Expect(err).NotTo(HaveOccurred())
			Expect(decoded.Comments).To(BeEmpty())
		})
	})

})

var _ = Describe("end-to-end scenarios", func() {

	It("E1: decodes the literal ACiD record and comment block", func() {
		buf := e1Buffer()
		block, err := sauce.Sauce(buf)
		Expect(err).NotTo(HaveOccurred())

		Expect(block.VersionRaw).To(Equal("00"))
		major, minor, ok := block.Version()
		Expect(ok).To(BeTrue())
		Expect(major).To(Equal(0))
		Expect(minor).To(Equal(0))
		Expect(block.Title).To(Equal("ACiD 1994 Member/Board Listing"))
		Expect(block.Author).To(Equal(""))
		Expect(block.Group).To(Equal("ACiD Productions"))
		Expect(block.Date).To(Equal(&sauce.Date{Year: 1994, Month: 8, Day: 31}))
		Expect(block.Media.FileType).To(Equal(1))
		Expect(block.Media.DataType).To(Equal(1))
		Expect(block.Media.FileSize).To(Equal(int64(8900)))
		Expect(block.Media.TInfo1).To(Equal(80))
		Expect(block.Media.TInfo2).To(Equal(97))
		Expect(block.Media.TInfo3).To(Equal(16))
		Expect(block.Media.TInfo4).To(Equal(0))
		Expect(block.Media.TFlags).To(Equal(byte(0)))
		Expect(block.Media.TInfoSSet).To(BeFalse())
		Expect(block.Comments).To(Equal(e1CommentLines()))
	})

	It("E2: writes the E1 block into a small buffer with an inserted EOF", func() {
		block, err := sauce.Sauce(e1Buffer())
		Expect(err).NotTo(HaveOccurred())

		out := sauce.Write([]byte{1, 2, 3, 4}, block)
		Expect(out).To(HaveLen(4 + (128 + 5 + 64*5) + 1))
		Expect(out[:4]).To(Equal([]byte{1, 2, 3, 4}))
		Expect(out[4]).To(Equal(byte(0x1A)))
	})

	It("E3: remove_comments shrinks by 325 bytes and keeps the record", func() {
		block, err := sauce.Sauce(e1Buffer())
		Expect(err).NotTo(HaveOccurred())
		written := sauce.Write([]byte{1, 2, 3, 4}, block)

		stripped := sauce.RemoveComments(written)
		Expect(len(written) - len(stripped)).To(Equal(325))
		Expect(sauce.HasSauce(stripped)).To(BeTrue())

		rec, _, err := sauce.Raw(stripped)
		Expect(err).NotTo(HaveOccurred())
		Expect(rec[104]).To(Equal(byte(0)))
	})

	It("E4: remove_sauce yields the original prefix plus its EOF sentinel", func() {
		block, err := sauce.Sauce(e1Buffer())
		Expect(err).NotTo(HaveOccurred())
		written := sauce.Write([]byte{1, 2, 3, 4}, block)

		result := sauce.RemoveSauce(written)
		Expect(result).To(Equal([]byte{1, 2, 3, 4, 0x1A}))
	})

	It("E5: an empty-record sentinel decodes as InvalidSauce", func() {
		buf := append([]byte("SAUCE"), make([]byte, 123)...)
		_, err := sauce.Sauce(buf)
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, sauce.ErrInvalidSauce)).To(BeTrue())
	})

	It("E6: a truncated comment block yields an empty comment list, not an error", func() {
		rec := e1RecordBytes()
		rec[104] = 2
		truncated := append([]byte("COMNT"), padRight("only one line", 64)...)
		buf := append(truncated, rec...)

		block, err := sauce.Sauce(buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(block.Comments).To(BeEmpty())
		Expect(sauce.HasSauce(buf)).To(BeTrue())
	})

	It("E7: interprets ANSi slots by media type", func() {
		block, err := sauce.Sauce(e1Buffer())
		Expect(err).NotTo(HaveOccurred())

		block.Media.TInfo2 = 250
		block.Media.TFlags = 17
		block.Media.TInfoS = "IBM VGA"
		block.Media.TInfoSSet = true

		Expect(block.TInfo1Value()).To(Equal(sauce.SlotValue{Name: "character_width", Value: 80}))
		Expect(block.TInfo2Value()).To(Equal(sauce.SlotValue{Name: "number_of_lines", Value: 250}))
		Expect(block.TInfoSValue()).To(Equal(sauce.SlotValue{Name: "font_id", Value: "ibm_vga"}))

		Expect(block.TFlagsValue()).To(Equal(sauce.SlotValue{
			Name: "ansi_flags",
			Value: ansiflags.Flags{
				AspectRatio:   ansiflags.AspectModern,
				LetterSpacing: ansiflags.SpacingNone,
				NonBlinkMode:  true,
			},
		}))
	})
})

var _ = Describe("file-level SAUCE reader/writer", func() {
	var path string

	BeforeEach(func() {
		f, err := os.CreateTemp("", "gosauce-*.ans")
		Expect(err).NotTo(HaveOccurred())
		path = f.Name()
		_, err = f.Write([]byte("some ANSi art content"))
		Expect(err).NotTo(HaveOccurred())
		Expect(f.Close()).To(Succeed())
	})

	AfterEach(func() {
		_ = os.Remove(path)
	})

	It("writes then reads back the same block", func() {
		block := sauce.NewBlock(sauce.MediaInfo{FileType: 1, DataType: 1, TInfo1: 80, TInfo2: 25},
			"00", "File Title", "File Author", "File Group", nil)
		block.AddComments("via a real file")

		f, err := os.OpenFile(path, os.O_RDWR, 0o644)
		Expect(err).NotTo(HaveOccurred())
		Expect(sauce.WriteFile(f, block)).To(Succeed())
		Expect(f.Close()).To(Succeed())

		f2, err := os.Open(path)
		Expect(err).NotTo(HaveOccurred())
		defer f2.Close()

		decoded, err := sauce.ReadSauce(f2)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded.Title).To(Equal("File Title"))
		Expect(decoded.Comments).To(Equal([]string{"via a real file"}))

		raw, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(bytes.HasPrefix(raw, []byte("some ANSi art content"))).To(BeTrue())
	})

	It("removes comments in place without disturbing the leading content", func() {
		block := sauce.NewBlock(sauce.MediaInfo{}, "00", "T", "", "", nil)
		block.AddComments("one", "two")

		f, err := os.OpenFile(path, os.O_RDWR, 0o644)
		Expect(err).NotTo(HaveOccurred())
		Expect(sauce.WriteFile(f, block)).To(Succeed())

		Expect(sauce.RemoveCommentsFile(f)).To(Succeed())
		Expect(f.Close()).To(Succeed())

		f2, err := os.Open(path)
		Expect(err).NotTo(HaveOccurred())
		defer f2.Close()
		decoded, err := sauce.ReadSauce(f2)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded.Comments).To(BeEmpty())
	})

	It("removes the whole SAUCE block, restoring the original content length", func() {
		originalSize := func() int64 {
			info, err := os.Stat(path)
			Expect(err).NotTo(HaveOccurred())
			return info.Size()
		}()

		block := sauce.NewBlock(sauce.MediaInfo{}, "00", "T", "", "", nil)
		f, err := os.OpenFile(path, os.O_RDWR, 0o644)
		Expect(err).NotTo(HaveOccurred())
		Expect(sauce.WriteFile(f, block)).To(Succeed())
		Expect(sauce.RemoveSauceFile(f)).To(Succeed())
		Expect(f.Close()).To(Succeed())

		info, err := os.Stat(path)
		Expect(err).NotTo(HaveOccurred())
		// original content plus the inserted EOF sentinel.
		Expect(info.Size()).To(Equal(originalSize + 1))
	})

	It("reports no SAUCE on a file that never had one", func() {
		f, err := os.Open(path)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		has, err := sauce.HasSauceFile(f)
		Expect(err).NotTo(HaveOccurred())
		Expect(has).To(BeFalse())

		_, err = sauce.ReadSauce(f)
		Expect(errors.Is(err, sauce.ErrNoSauce)).To(BeTrue())
	})
})

var _ = Describe("media registry closure", func() {
	It("resolves every registered handle back to its own id (invariant 11)", func() {
		for _, entry := range media.All() {
			ft, dt, ok := media.Handle(entry.ID)
			Expect(ok).To(BeTrue())
			Expect(media.Resolve(ft, dt)).To(Equal(entry.ID))
		}
	})
})

var _ = Describe("field schema closure", func() {
	It("covers all 128 bytes without gaps or overlap (invariant 12)", func() {
		next := 0
		for _, id := range schema.RequiredFieldIDs() {
			Expect(schema.FieldOffset(id)).To(Equal(next))
			Expect(schema.FieldOffset(id) + schema.FieldSize(id)).To(BeNumerically("<=", schema.RecordSize))
			next += schema.FieldSize(id)
		}
		Expect(next).To(Equal(schema.RecordSize))
	})
})

var _ = Describe("comment text edge cases", func() {
	It("keeps a literal blank comment line written through the public API", func() {
		block := sauce.NewBlock(sauce.MediaInfo{}, "00", "T", "", "", nil)
		block.AddComments("", "second")
		buf := sauce.Write(nil, block)

		decoded, err := sauce.Sauce(buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded.Comments).To(Equal([]string{"", "second"}))
	})

	It("drops an all-NUL comment line found in a hand-built buffer", func() {
		rec := e1RecordBytes()
		rec[104] = 2 // comment_lines = 2
		comments := append([]byte("COMNT"), make([]byte, 64)...) // line 1: all-NUL
		comments = append(comments, padRight("real line", 64)...)
		buf := append(comments, rec...)

		decoded, err := sauce.Sauce(buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded.Comments).To(Equal([]string{"real line"}))
	})
})

var _ = Describe("CP437/UTF-8 decode ambiguity", func() {
	It("prefers the CP437 reading for bytes that round-trip under it, even when they're also valid UTF-8", func() {
		rec := e1RecordBytes()
		title := append([]byte{0xC3, 0xA9}, bytes.Repeat([]byte{' '}, 33)...)
		copy(rec[7:42], title)

		decoded, err := sauce.Sauce(rec)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded.Title).To(Equal("├⌐"))

		reencoded := sauce.Write(nil, decoded)
		redecoded, err := sauce.Sauce(reencoded)
		Expect(err).NotTo(HaveOccurred())
		Expect(redecoded.Title).To(Equal(decoded.Title))
	})

	It("keeps the CP437 reading when the bytes are neither round-trippable nor valid UTF-8", func() {
		rec := e1RecordBytes()
		title := append([]byte{'A', 0xFF, 'B'}, bytes.Repeat([]byte{' '}, 32)...)
		copy(rec[7:42], title)

		decoded, err := sauce.Sauce(rec)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded.Title).To(Equal("A B"))
	})
})

var _ = Describe("PrependComment and ClearComments", func() {
	It("mutates the in-memory comment list as documented", func() {
		block := sauce.NewBlock(sauce.MediaInfo{}, "00", "T", "", "", nil)
		block.AddComments("b", "c")
		block.PrependComment("a")
		Expect(block.Comments).To(Equal([]string{"a", "b", "c"}))
		Expect(block.FormattedComments(" / ")).To(Equal("a / b / c"))

		block.ClearComments()
		Expect(block.Comments).To(BeEmpty())
		Expect(block.CommentLines()).To(Equal(0))
	})
})

var _ = Describe("Version", func() {
	It("parses a well-formed two-digit version", func() {
		block := sauce.NewBlock(sauce.MediaInfo{}, "00", "T", "", "", nil)
		major, minor, ok := block.Version()
		Expect(ok).To(BeTrue())
		Expect(major).To(Equal(0))
		Expect(minor).To(Equal(0))

		block.VersionRaw = "15"
		major, minor, ok = block.Version()
		Expect(ok).To(BeTrue())
		Expect(major).To(Equal(1))
		Expect(minor).To(Equal(5))
	})

	It("reports ok=false for non-numeric or wrong-length content", func() {
		cases := []string{"", "0", "000", "AB", " 0", "0 "}
		for _, v := range cases {
			block := sauce.NewBlock(sauce.MediaInfo{}, v, "T", "", "", nil)
			_, _, ok := block.Version()
			Expect(ok).To(BeFalse(), "version %q should not parse", v)
		}
	})
})

var _ = Describe("unresolvable media types", func() {
	It("clamps file_type/data_type to none on both encode and decode", func() {
		block := sauce.NewBlock(sauce.MediaInfo{FileType: 250, DataType: 99}, "00", "T", "", "", nil)
		buf := sauce.Write(nil, block)

		decoded, err := sauce.Sauce(buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded.Media.FileType).To(Equal(0))
		Expect(decoded.Media.DataType).To(Equal(0))
		Expect(decoded.MediaTypeID()).To(Equal("none"))
	})
})
