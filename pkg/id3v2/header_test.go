package id3v2

import (
	"bytes"
	"errors"
	"testing"
)

func TestParseTagHeader(t *testing.T) {
	data := []byte{0x49, 0x44, 0x33, 0x04, 0x00, 0x50, 0x00, 0x08, 0x49, 0x30}

	h, err := parseTagHeader(data)
	if err != nil {
		t.Fatalf("parseTagHeader: %v", err)
	}
	if h.Major != 4 || h.Minor != 0 {
		t.Errorf("version: got %d.%d, want 4.0", h.Major, h.Minor)
	}
	if h.Version() != V24 {
		t.Errorf("Version(): got %s", h.Version())
	}
	if h.Flags.Unsync || !h.Flags.Extended || h.Flags.Experimental || !h.Flags.Footer {
		t.Errorf("flags: got %+v, want extended+footer", h.Flags)
	}
	if h.Size != 140464 {
		t.Errorf("size: got %d, want 140464", h.Size)
	}
}

func TestParseTagHeaderRejects(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{
			name: "truncated",
			data: []byte{0x49, 0x44, 0x33, 0x04},
			want: ErrNotEnoughData,
		},
		{
			name: "bad magic",
			data: []byte{0x44, 0x49, 0x33, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10},
			want: ErrMalformedData,
		},
		{
			name: "version byte 0xff",
			data: []byte{0x49, 0x44, 0x33, 0xFF, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10},
			want: ErrMalformedData,
		},
		{
			name: "future major version",
			data: []byte{0x49, 0x44, 0x33, 0x05, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10},
			want: ErrUnsupported,
		},
		{
			name: "reserved flag bits v4",
			data: []byte{0x49, 0x44, 0x33, 0x04, 0x00, 0x01, 0x00, 0x00, 0x00, 0x10},
			want: ErrMalformedData,
		},
		{
			name: "footer bit reserved in v3",
			data: []byte{0x49, 0x44, 0x33, 0x03, 0x00, 0x10, 0x00, 0x00, 0x00, 0x10},
			want: ErrMalformedData,
		},
		{
			name: "zero size",
			data: []byte{0x49, 0x44, 0x33, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
			want: ErrNotEnoughData,
		},
		{
			name: "size above limit",
			data: []byte{0x49, 0x44, 0x33, 0x04, 0x00, 0x00, 0x7F, 0x7F, 0x7F, 0x7F},
			want: ErrMalformedData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseTagHeader(tt.data)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestTagHeaderRoundTrip(t *testing.T) {
	h := TagHeader{
		Major: 4,
		Minor: 0,
		Flags: TagFlags{Extended: true, Footer: true},
		Size:  140464,
	}

	got, err := parseTagHeader(h.render())
	if err != nil {
		t.Fatalf("parseTagHeader: %v", err)
	}
	if got != h {
		t.Errorf("round trip: got %+v, want %+v", got, h)
	}
}

func TestParseExtendedHeaderV3(t *testing.T) {
	t.Run("without crc", func(t *testing.T) {
		s := newStream([]byte{0x00, 0x00, 0x00, 0x06, 0x00, 0x00, 0x00, 0x00, 0x04, 0x00})
		ext, err := parseExtendedHeaderV3(s)
		if err != nil {
			t.Fatalf("parseExtendedHeaderV3: %v", err)
		}
		if ext.Padding != 0x400 {
			t.Errorf("padding: got %d, want 1024", ext.Padding)
		}
		if ext.CRC != nil {
			t.Error("unexpected CRC")
		}
	})

	t.Run("with crc", func(t *testing.T) {
		s := newStream([]byte{
			0x00, 0x00, 0x00, 0x0A, 0x80, 0x00,
			0x00, 0x00, 0x00, 0x00,
			0x12, 0x34, 0x56, 0x78,
		})
		ext, err := parseExtendedHeaderV3(s)
		if err != nil {
			t.Fatalf("parseExtendedHeaderV3: %v", err)
		}
		if ext.CRC == nil || *ext.CRC != 0x12345678 {
			t.Errorf("crc: got %v", ext.CRC)
		}
	})

	t.Run("bad size", func(t *testing.T) {
		s := newStream([]byte{0x00, 0x00, 0x00, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00})
		if _, err := parseExtendedHeaderV3(s); !errors.Is(err, ErrMalformedData) {
			t.Errorf("got %v, want ErrMalformedData", err)
		}
	})
}

func TestParseExtendedHeaderV4(t *testing.T) {
	t.Run("update and crc and restrictions", func(t *testing.T) {
		data := []byte{
			0x00, 0x00, 0x00, 0x0F, // size 15
			0x01, 0x70, // flag count, update|crc|restrictions
			0x00,                         // update, no data
			0x05, 0x01, 0x00, 0x00, 0x00, 0x00, // crc, syncsafe 35-bit
			0x01, 0xB4, // restrictions
		}
		ext, err := parseExtendedHeaderV4(newStream(data))
		if err != nil {
			t.Fatalf("parseExtendedHeaderV4: %v", err)
		}
		if !ext.IsUpdate {
			t.Error("IsUpdate not set")
		}
		if ext.CRC == nil || *ext.CRC != 1<<28 {
			t.Errorf("crc: got %v", ext.CRC)
		}
		if ext.Restrictions == nil || *ext.Restrictions != 0xB4 {
			t.Errorf("restrictions: got %v", ext.Restrictions)
		}
	})

	t.Run("frame data behind the flag", func(t *testing.T) {
		// The flag is set but the bytes are a TIT2 frame header. The
		// uppercase size bytes give it away.
		data := []byte{'T', 'I', 'T', '2', 0x00, 0x00, 0x00, 0x0A, 0x00, 0x00}
		_, err := parseExtendedHeaderV4(newStream(data))
		if !errors.Is(err, errExtFalsePositive) {
			t.Errorf("got %v, want errExtFalsePositive", err)
		}
	})

	t.Run("size below minimum", func(t *testing.T) {
		data := []byte{0x00, 0x00, 0x00, 0x05, 0x01, 0x00}
		if _, err := parseExtendedHeaderV4(newStream(data)); !errors.Is(err, ErrMalformedData) {
			t.Errorf("got %v, want ErrMalformedData", err)
		}
	})
}

func TestExtendedHeaderRoundTrip(t *testing.T) {
	crc := uint32(0xDEADBEEF)
	restr := byte(0x40)

	t.Run("v3", func(t *testing.T) {
		ext := &ExtendedHeader{Padding: 2048, CRC: &crc}
		got, err := parseExtendedHeaderV3(newStream(ext.render(V23)))
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if got.Padding != 2048 || got.CRC == nil || *got.CRC != crc {
			t.Errorf("round trip: got %+v", got)
		}
	})

	t.Run("v4", func(t *testing.T) {
		ext := &ExtendedHeader{IsUpdate: true, CRC: &crc, Restrictions: &restr}
		got, err := parseExtendedHeaderV4(newStream(ext.render(V24)))
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if !got.IsUpdate || got.CRC == nil || *got.CRC != crc || got.Restrictions == nil || *got.Restrictions != restr {
			t.Errorf("round trip: got %+v", got)
		}
	})
}

func TestParseFrameHeader(t *testing.T) {
	t.Run("v3 raw size", func(t *testing.T) {
		b := []byte{'T', 'A', 'L', 'B', 0x00, 0x00, 0x01, 0x80, 0xE0, 0xE0}
		h, err := parseFrameHeader(V23, b, nil)
		if err != nil {
			t.Fatalf("parseFrameHeader: %v", err)
		}
		if h.ID.String() != "TALB" {
			t.Errorf("id: got %s", h.ID)
		}
		if h.Size != 0x180 {
			t.Errorf("size: got %d, want 384", h.Size)
		}
		if !h.Flags.TagAlterDiscard || !h.Flags.FileAlterDiscard || !h.Flags.ReadOnly {
			t.Errorf("status flags: got %+v", h.Flags)
		}
		if !h.Flags.Compressed || !h.Flags.Encrypted || !h.Flags.Grouped {
			t.Errorf("format flags: got %+v", h.Flags)
		}
	})

	t.Run("v4 syncsafe size", func(t *testing.T) {
		b := []byte{'T', 'A', 'L', 'B', 0x00, 0x00, 0x01, 0x00, 0x70, 0x4F}
		h, err := parseFrameHeader(V24, b, make([]byte, 0x80+4))
		if err != nil {
			t.Fatalf("parseFrameHeader: %v", err)
		}
		if h.Size != 0x80 {
			t.Errorf("size: got %d, want 128", h.Size)
		}
		if !h.Flags.TagAlterDiscard || !h.Flags.FileAlterDiscard || !h.Flags.ReadOnly {
			t.Errorf("status flags: got %+v", h.Flags)
		}
		if !h.Flags.Grouped || !h.Flags.Compressed || !h.Flags.Encrypted || !h.Flags.Unsync || !h.Flags.DataLen {
			t.Errorf("format flags: got %+v", h.Flags)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		b := []byte{'t', 'i', 't', '2', 0x00, 0x00, 0x00, 0x01, 0x00, 0x00}
		if _, err := parseFrameHeader(V24, b, nil); !errors.Is(err, ErrMalformedData) {
			t.Errorf("got %v, want ErrMalformedData", err)
		}
	})
}

func TestItunesV4Size(t *testing.T) {
	// Syncsafe decoding of 00 00 02 01 gives 0x101; raw big-endian gives
	// 0x201. Garbage at the syncsafe offset and a valid frame ID at the raw
	// offset triggers the fallback.
	sizeBytes := []byte{0x00, 0x00, 0x02, 0x01}
	rest := bytes.Repeat([]byte{0xFB}, 0x201+frameHeaderSize)
	copy(rest[0x201:], "TIT2")

	if got := itunesV4Size(0x101, sizeBytes, rest); got != 0x201 {
		t.Errorf("raw fallback: got %d, want 513", got)
	}

	// With a valid frame ID at the syncsafe offset the declared size wins.
	copy(rest[0x101:], "TALB")
	if got := itunesV4Size(0x101, sizeBytes, rest); got != 0x101 {
		t.Errorf("syncsafe: got %d, want 257", got)
	}

	// Padding at the syncsafe offset means the frame is simply the last one;
	// the declared size stands even when the raw offset looks like a frame.
	padded := make([]byte, 0x201+frameHeaderSize)
	copy(padded[0x201:], "TIT2")
	if got := itunesV4Size(0x101, sizeBytes, padded); got != 0x101 {
		t.Errorf("padding: got %d, want 257", got)
	}

	// Sizes below 0x80 are identical in both readings and never probed.
	if got := itunesV4Size(0x7F, []byte{0x00, 0x00, 0x00, 0x7F}, nil); got != 0x7F {
		t.Errorf("small size: got %d", got)
	}
}

func TestFrameHeaderRender(t *testing.T) {
	h := FrameHeader{ID: mustFrameID("TIT2"), Size: 0x101}

	v4 := h.render(V24)
	if !bytes.Equal(v4, []byte{'T', 'I', 'T', '2', 0x00, 0x00, 0x02, 0x01, 0x00, 0x00}) {
		t.Errorf("v4: got % x", v4)
	}

	v3 := h.render(V23)
	if !bytes.Equal(v3, []byte{'T', 'I', 'T', '2', 0x00, 0x00, 0x01, 0x01, 0x00, 0x00}) {
		t.Errorf("v3: got % x", v3)
	}
}
