package id3v2

import (
	"encoding/binary"
	"fmt"
)

const frameHeaderSize = 10

// FrameID is a 4-character frame identifier made of uppercase ASCII letters
// and digits.
type FrameID [4]byte

// NewFrameID builds a FrameID from s, which must be 4 valid characters.
func NewFrameID(s string) (FrameID, error) {
	var id FrameID
	if len(s) != 4 || !validFrameID([]byte(s)) {
		return id, fmt.Errorf("frame ID %q: %w", s, ErrMalformedData)
	}
	copy(id[:], s)
	return id, nil
}

// mustFrameID is for the package's own static ID tables.
func mustFrameID(s string) FrameID {
	id, err := NewFrameID(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id FrameID) String() string {
	return string(id[:])
}

func validFrameID(b []byte) bool {
	for _, c := range b {
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// FrameFlags is the decoded per-frame flag pair. Render always writes zeroed
// flag bytes, so these only describe what was read.
type FrameFlags struct {
	// TagAlterDiscard asks writers to drop the frame when the tag changes.
	TagAlterDiscard bool
	// FileAlterDiscard asks writers to drop the frame when the file changes.
	FileAlterDiscard bool
	ReadOnly         bool

	Compressed bool
	Encrypted  bool
	// Grouped marks a 1-byte group identifier before the frame body.
	Grouped bool
	// Unsync marks the frame body as unsynchronized (ID3v2.4 only).
	Unsync bool
	// DataLen marks a 4-byte data-length indicator before the frame body
	// (ID3v2.4 only).
	DataLen bool
}

// FrameHeader is the 10-byte header preceding every frame body.
type FrameHeader struct {
	ID    FrameID
	Size  uint32
	Flags FrameFlags
}

// parseFrameHeader decodes a version-specific frame header. rest is the data
// following the 10 header bytes, used by the ID3v2.4 size heuristic.
func parseFrameHeader(v Version, b []byte, rest []byte) (FrameHeader, error) {
	if len(b) < frameHeaderSize {
		return FrameHeader{}, fmt.Errorf("frame header: %w", ErrNotEnoughData)
	}
	if !validFrameID(b[0:4]) {
		return FrameHeader{}, fmt.Errorf("frame header: invalid ID % x: %w", b[0:4], ErrMalformedData)
	}

	var h FrameHeader
	copy(h.ID[:], b[0:4])

	if v == V24 {
		h.Size = itunesV4Size(syncsafeU28(b[4:8]), b[4:8], rest)
		stat, fmtb := b[8], b[9]
		h.Flags = FrameFlags{
			TagAlterDiscard:  stat&0x40 != 0,
			FileAlterDiscard: stat&0x20 != 0,
			ReadOnly:         stat&0x10 != 0,
			Grouped:          fmtb&0x40 != 0,
			Compressed:       fmtb&0x08 != 0,
			Encrypted:        fmtb&0x04 != 0,
			Unsync:           fmtb&0x02 != 0,
			DataLen:          fmtb&0x01 != 0,
		}
		return h, nil
	}

	h.Size = binary.BigEndian.Uint32(b[4:8])
	stat, fmtb := b[8], b[9]
	h.Flags = FrameFlags{
		TagAlterDiscard:  stat&0x80 != 0,
		FileAlterDiscard: stat&0x40 != 0,
		ReadOnly:         stat&0x20 != 0,
		Compressed:       fmtb&0x80 != 0,
		Encrypted:        fmtb&0x40 != 0,
		Grouped:          fmtb&0x20 != 0,
	}
	return h, nil
}

// itunesV4Size works around older iTunes versions writing plain big-endian
// frame sizes into ID3v2.4 tags. When the syncsafe reading does not land on
// something that looks like the next frame but the raw reading does, the raw
// size wins. Undocumented behavior; the trigger condition is kept as-is.
func itunesV4Size(syncSize uint32, sizeBytes []byte, rest []byte) uint32 {
	if syncSize < 0x80 {
		// Sizes below 0x80 decode identically either way.
		return syncSize
	}
	// Padding after the last frame also ends the probe: a zero byte at the
	// syncsafe offset is not evidence of a miswritten size.
	if next := peekAt(rest, int(syncSize)); next == nil || next[0] == 0 || validFrameID(next) {
		return syncSize
	}
	rawSize := binary.BigEndian.Uint32(sizeBytes)
	if next := peekAt(rest, int(rawSize)); next != nil && validFrameID(next) {
		return rawSize
	}
	return syncSize
}

func peekAt(b []byte, off int) []byte {
	if off < 0 || off+4 > len(b) {
		return nil
	}
	return b[off : off+4]
}

// render emits the frame header with the version's size format and zeroed
// flag bytes.
func (h FrameHeader) render(v Version) []byte {
	out := make([]byte, 0, frameHeaderSize)
	out = append(out, h.ID[:]...)
	if v == V24 {
		size := renderSyncsafeU28(h.Size)
		out = append(out, size[:]...)
	} else {
		out = binary.BigEndian.AppendUint32(out, h.Size)
	}
	return append(out, 0, 0)
}
