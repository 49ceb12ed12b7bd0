package id3v2

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Version is an ID3v2 major version.
type Version uint8

const (
	// V22 is ID3v2.2. Detected but not decoded.
	V22 Version = 2
	// V23 is ID3v2.3.
	V23 Version = 3
	// V24 is ID3v2.4.
	V24 Version = 4
)

func (v Version) String() string {
	return fmt.Sprintf("ID3v2.%d", uint8(v))
}

const (
	tagHeaderSize = 10

	// maxTagSize caps the declared tag size so a hostile header cannot force
	// an unbounded allocation.
	maxTagSize = 256_000_000
)

var tagMagic = []byte("ID3")

// TagFlags is the flag byte of the tag header.
type TagFlags struct {
	// Unsync marks the whole tag body as unsynchronized. Only honored
	// tag-wide in ID3v2.3; ID3v2.4 moved it to per-frame flags.
	Unsync bool
	// Extended marks an extended header between the tag header and frames.
	Extended bool
	// Experimental marks the tag as experimental. Carried but unused.
	Experimental bool
	// Footer marks a trailing copy of the header (ID3v2.4 only).
	Footer bool
}

// TagHeader is the fixed 10-byte header that starts every ID3v2 tag.
type TagHeader struct {
	Major uint8
	Minor uint8
	Flags TagFlags
	// Size is the declared tag size in bytes, excluding this header and any
	// footer.
	Size uint32
}

// Version returns the header's major version.
func (h TagHeader) Version() Version {
	return Version(h.Major)
}

// parseTagHeader decodes and validates the 10-byte tag header.
func parseTagHeader(b []byte) (TagHeader, error) {
	if len(b) < tagHeaderSize {
		return TagHeader{}, fmt.Errorf("tag header: %w", ErrNotEnoughData)
	}
	if string(b[0:3]) != string(tagMagic) {
		return TagHeader{}, fmt.Errorf("tag header: bad magic: %w", ErrMalformedData)
	}

	major, minor := b[3], b[4]
	if major == 0xFF || minor == 0xFF {
		return TagHeader{}, fmt.Errorf("tag header: version byte 0xFF: %w", ErrMalformedData)
	}
	if major < 2 || major > 4 {
		return TagHeader{}, fmt.Errorf("tag header: ID3v2.%d: %w", major, ErrUnsupported)
	}

	flags := b[5]
	var reserved byte
	switch Version(major) {
	case V24:
		reserved = 0x0F
	case V23:
		reserved = 0x1F
	default:
		reserved = 0x3F
	}
	if flags&reserved != 0 {
		return TagHeader{}, fmt.Errorf("tag header: reserved flag bits 0x%02x: %w", flags&reserved, ErrMalformedData)
	}

	size := syncsafeU28(b[6:10])
	if size == 0 {
		return TagHeader{}, fmt.Errorf("tag header: zero size: %w", ErrNotEnoughData)
	}
	if size > maxTagSize {
		return TagHeader{}, fmt.Errorf("tag header: size %d exceeds limit: %w", size, ErrMalformedData)
	}

	return TagHeader{
		Major: major,
		Minor: minor,
		Flags: TagFlags{
			Unsync:       flags&0x80 != 0,
			Extended:     flags&0x40 != 0,
			Experimental: flags&0x20 != 0,
			Footer:       Version(major) == V24 && flags&0x10 != 0,
		},
		Size: size,
	}, nil
}

// render emits the 10-byte wire form of the header.
func (h TagHeader) render() []byte {
	var flags byte
	if h.Flags.Unsync {
		flags |= 0x80
	}
	if h.Flags.Extended {
		flags |= 0x40
	}
	if h.Flags.Experimental {
		flags |= 0x20
	}
	if h.Flags.Footer {
		flags |= 0x10
	}
	size := renderSyncsafeU28(h.Size)

	out := make([]byte, 0, tagHeaderSize)
	out = append(out, tagMagic...)
	out = append(out, h.Major, h.Minor, flags)
	out = append(out, size[:]...)
	return out
}

// ExtendedHeader is the optional block between the tag header and the first
// frame. The two versions carry different payloads; fields that the detected
// version does not define are left zero.
type ExtendedHeader struct {
	// Padding is the declared padding size (ID3v2.3 only).
	Padding uint32
	// CRC is the tag CRC-32 when present.
	CRC *uint32
	// IsUpdate marks the tag as an update of an earlier one (ID3v2.4 only).
	IsUpdate bool
	// Restrictions is the raw tag-restrictions byte when present
	// (ID3v2.4 only).
	Restrictions *byte
}

// errExtFalsePositive reports an ID3v2.4 extended-header flag that does not
// actually introduce an extended header. The caller clears the flag and
// parses frames from the saved position instead.
var errExtFalsePositive = errors.New("extended header flag is a false positive")

// parseExtendedHeader decodes the version-specific extended header.
func parseExtendedHeader(v Version, s *stream) (*ExtendedHeader, error) {
	if v == V24 {
		return parseExtendedHeaderV4(s)
	}
	return parseExtendedHeaderV3(s)
}

func parseExtendedHeaderV3(s *stream) (*ExtendedHeader, error) {
	size, err := s.u32()
	if err != nil {
		return nil, fmt.Errorf("extended header: %w", err)
	}
	// The v2.3 size excludes itself and can only be 6 (no CRC) or 10 (CRC).
	if size != 6 && size != 10 {
		return nil, fmt.Errorf("extended header: size %d: %w", size, ErrMalformedData)
	}

	flags, err := s.u16()
	if err != nil {
		return nil, fmt.Errorf("extended header: %w", err)
	}
	padding, err := s.u32()
	if err != nil {
		return nil, fmt.Errorf("extended header: %w", err)
	}

	ext := &ExtendedHeader{Padding: padding}
	if flags&0x8000 != 0 {
		crc, err := s.u32()
		if err != nil {
			return nil, fmt.Errorf("extended header: %w", err)
		}
		ext.CRC = &crc
	}
	return ext, nil
}

func parseExtendedHeaderV4(s *stream) (*ExtendedHeader, error) {
	sizeBytes := s.peek(4)
	if sizeBytes == nil {
		return nil, fmt.Errorf("extended header: %w", ErrNotEnoughData)
	}

	// Misaligned or corrupt tags sometimes set the extended flag while frame
	// data sits here. A syncsafe length whose bytes are uppercase ASCII is
	// implausible and almost certainly the start of a frame ID.
	for _, b := range sizeBytes {
		if b >= 'A' && b <= 'Z' {
			return nil, errExtFalsePositive
		}
	}

	size := syncsafeU28(sizeBytes)
	// The v2.4 size includes the whole extended header; 6 bytes is the
	// minimum (size + flag count + flag byte).
	if size < 6 {
		return nil, fmt.Errorf("extended header: size %d: %w", size, ErrMalformedData)
	}
	body, err := s.read(int(size))
	if err != nil {
		return nil, fmt.Errorf("extended header: %w", err)
	}

	es := newStream(body)
	_ = es.skip(4) // size, already decoded
	flagCount, err := es.u8()
	if err != nil || flagCount < 1 {
		return nil, fmt.Errorf("extended header: %w", ErrMalformedData)
	}
	flags, err := es.u8()
	if err != nil {
		return nil, fmt.Errorf("extended header: %w", err)
	}

	ext := &ExtendedHeader{}
	if flags&0x40 != 0 {
		// The update flag carries a zero-length data block.
		if _, err := readFlagData(es, 0); err != nil {
			return nil, err
		}
		ext.IsUpdate = true
	}
	if flags&0x20 != 0 {
		data, err := readFlagData(es, 5)
		if err != nil {
			return nil, err
		}
		crc := uint32(syncsafeU35(data))
		ext.CRC = &crc
	}
	if flags&0x10 != 0 {
		data, err := readFlagData(es, 1)
		if err != nil {
			return nil, err
		}
		r := data[0]
		ext.Restrictions = &r
	}
	return ext, nil
}

func readFlagData(s *stream, want int) ([]byte, error) {
	n, err := s.u8()
	if err != nil {
		return nil, fmt.Errorf("extended header: %w", err)
	}
	if int(n) != want {
		return nil, fmt.Errorf("extended header: flag data length %d: %w", n, ErrMalformedData)
	}
	data, err := s.read(int(n))
	if err != nil {
		return nil, fmt.Errorf("extended header: %w", err)
	}
	return data, nil
}

// render emits the version-specific wire form of the extended header.
func (e *ExtendedHeader) render(v Version) []byte {
	if v == V24 {
		return e.renderV4()
	}
	return e.renderV3()
}

func (e *ExtendedHeader) renderV3() []byte {
	size := uint32(6)
	var flags uint16
	if e.CRC != nil {
		size = 10
		flags = 0x8000
	}

	out := make([]byte, 0, 4+int(size))
	out = binary.BigEndian.AppendUint32(out, size)
	out = binary.BigEndian.AppendUint16(out, flags)
	out = binary.BigEndian.AppendUint32(out, e.Padding)
	if e.CRC != nil {
		out = binary.BigEndian.AppendUint32(out, *e.CRC)
	}
	return out
}

func (e *ExtendedHeader) renderV4() []byte {
	var flags byte
	body := make([]byte, 0, 8)
	if e.IsUpdate {
		flags |= 0x40
		body = append(body, 0)
	}
	if e.CRC != nil {
		flags |= 0x20
		crc := renderSyncsafeU35(uint64(*e.CRC))
		body = append(body, 5)
		body = append(body, crc[:]...)
	}
	if e.Restrictions != nil {
		flags |= 0x10
		body = append(body, 1, *e.Restrictions)
	}

	size := renderSyncsafeU28(uint32(6 + len(body)))
	out := make([]byte, 0, 6+len(body))
	out = append(out, size[:]...)
	out = append(out, 1, flags)
	out = append(out, body...)
	return out
}
