package id3v2

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// UnknownOffset is the placeholder for chapter byte offsets that are not
// known, as defined by the chapter addendum.
const UnknownOffset = uint32(math.MaxUint32)

// ChapterFrame is a CHAP frame: a chapter of the audio with its time range
// and an embedded collection of frames describing it (typically a title and
// artwork).
type ChapterFrame struct {
	ElementID string
	// StartTime and EndTime are in milliseconds.
	StartTime uint32
	EndTime   uint32
	// StartOffset and EndOffset are byte offsets into the audio, or
	// UnknownOffset.
	StartOffset uint32
	EndOffset   uint32
	Frames      *FrameCollection
}

// NewChapterFrame builds an empty chapter with unknown byte offsets.
func NewChapterFrame(elementID string) *ChapterFrame {
	return &ChapterFrame{
		ElementID:   elementID,
		StartOffset: UnknownOffset,
		EndOffset:   UnknownOffset,
		Frames:      NewFrameCollection(),
	}
}

func parseChapterFrame(v Version, depth int, s *stream) (*ChapterFrame, error) {
	f := &ChapterFrame{
		ElementID: readTerminated(EncodingLatin1, s),
		Frames:    NewFrameCollection(),
	}

	var err error
	if f.StartTime, err = s.u32(); err != nil {
		return nil, fmt.Errorf("chapter times: %w", err)
	}
	if f.EndTime, err = s.u32(); err != nil {
		return nil, fmt.Errorf("chapter times: %w", err)
	}
	if f.StartOffset, err = s.u32(); err != nil {
		return nil, fmt.Errorf("chapter offsets: %w", err)
	}
	if f.EndOffset, err = s.u32(); err != nil {
		return nil, fmt.Errorf("chapter offsets: %w", err)
	}

	parseEmbeddedFrames(v, depth, s, f.Frames)
	return f, nil
}

func (f *ChapterFrame) ID() FrameID { return mustFrameID("CHAP") }

func (f *ChapterFrame) Key() string { return "CHAP:" + f.ElementID }

func (f *ChapterFrame) Empty() bool { return false }

func (f *ChapterFrame) String() string {
	s := fmt.Sprintf("%s [%d..%d ms]", f.ElementID, f.StartTime, f.EndTime)
	if f.Frames.Len() > 0 {
		s += " " + strings.Join(f.Frames.Keys(), " ")
	}
	return s
}

func (f *ChapterFrame) renderBody(v Version) []byte {
	out := renderTerminated(EncodingLatin1, f.ElementID)
	out = binary.BigEndian.AppendUint32(out, f.StartTime)
	out = binary.BigEndian.AppendUint32(out, f.EndTime)
	out = binary.BigEndian.AppendUint32(out, f.StartOffset)
	out = binary.BigEndian.AppendUint32(out, f.EndOffset)
	return append(out, renderEmbeddedFrames(v, f.Frames)...)
}

// TableOfContentsFrame is a CTOC frame: an ordering of chapter (or nested
// table) element IDs, with an embedded collection describing the table
// itself.
type TableOfContentsFrame struct {
	ElementID string
	// TopLevel marks the root table. Only one table per tag may set it.
	TopLevel bool
	// Ordered means the entries form a sequence rather than a bare set.
	Ordered bool
	Entries []string
	Frames  *FrameCollection
}

// NewTableOfContentsFrame builds an empty table of contents.
func NewTableOfContentsFrame(elementID string) *TableOfContentsFrame {
	return &TableOfContentsFrame{ElementID: elementID, Frames: NewFrameCollection()}
}

func parseTableOfContentsFrame(v Version, depth int, s *stream) (*TableOfContentsFrame, error) {
	f := &TableOfContentsFrame{
		ElementID: readTerminated(EncodingLatin1, s),
		Frames:    NewFrameCollection(),
	}

	flags, err := s.u8()
	if err != nil {
		return nil, fmt.Errorf("table flags: %w", err)
	}
	f.TopLevel = flags&0x02 != 0
	f.Ordered = flags&0x01 != 0

	entryCount, err := s.u8()
	if err != nil {
		return nil, fmt.Errorf("table entry count: %w", err)
	}
	for i := 0; i < int(entryCount); i++ {
		// The declared count may overstate what is actually present.
		if s.empty() {
			break
		}
		f.Entries = append(f.Entries, readTerminated(EncodingLatin1, s))
	}

	parseEmbeddedFrames(v, depth, s, f.Frames)
	return f, nil
}

func (f *TableOfContentsFrame) ID() FrameID { return mustFrameID("CTOC") }

func (f *TableOfContentsFrame) Key() string { return "CTOC:" + f.ElementID }

func (f *TableOfContentsFrame) Empty() bool { return false }

func (f *TableOfContentsFrame) String() string {
	return f.ElementID + ": " + strings.Join(f.Entries, ", ")
}

func (f *TableOfContentsFrame) renderBody(v Version) []byte {
	out := renderTerminated(EncodingLatin1, f.ElementID)

	var flags byte
	if f.TopLevel {
		flags |= 0x02
	}
	if f.Ordered {
		flags |= 0x01
	}
	count := len(f.Entries)
	if count > math.MaxUint8 {
		count = math.MaxUint8
	}
	out = append(out, flags, byte(count))

	for _, entry := range f.Entries[:count] {
		out = append(out, renderTerminated(EncodingLatin1, entry)...)
	}
	return append(out, renderEmbeddedFrames(v, f.Frames)...)
}

// parseEmbeddedFrames re-enters the frame dispatcher on the remainder of a
// CHAP/CTOC body until the bytes run out or a frame fails. Past the nesting
// bound the remaining bytes are dropped instead of recursing further.
func parseEmbeddedFrames(v Version, depth int, s *stream, into *FrameCollection) {
	if depth >= maxFrameDepth {
		s.rest()
		return
	}
	for !s.empty() {
		frame, err := parseFrame(v, false, depth+1, s)
		if err != nil {
			s.rest()
			return
		}
		into.Add(frame)
	}
}

func renderEmbeddedFrames(v Version, frames *FrameCollection) []byte {
	if frames == nil {
		return nil
	}
	return frames.render(v)
}
