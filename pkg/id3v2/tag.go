package id3v2

import "fmt"

// Tag is one decoded ID3v2 tag: its header, optional extended header and
// frame collection. The version fields are fixed at parse time; the frames
// are free to change before rendering.
type Tag struct {
	Header   TagHeader
	Extended *ExtendedHeader
	Frames   *FrameCollection
}

// NewTag returns an empty tag at the given version.
func NewTag(v Version) *Tag {
	return &Tag{
		Header: TagHeader{Major: uint8(v), Size: defaultPadding},
		Frames: NewFrameCollection(),
	}
}

// ParseTag decodes a tag that starts at the beginning of data. Frames that
// fail to decode end the frame scan but never discard what already parsed;
// only a bad tag header fails the whole call.
func ParseTag(data []byte) (*Tag, error) {
	header, err := parseTagHeader(data)
	if err != nil {
		return nil, err
	}
	if header.Version() == V22 {
		return nil, fmt.Errorf("%s: %w", header.Version(), ErrUnsupported)
	}

	body := data[tagHeaderSize:]
	if len(body) > int(header.Size) {
		body = body[:header.Size]
	}

	// The tag-level flag unsynchronizes the whole body. ID3v2.4 moved the
	// transform to per-frame flags, but taggers still set the tag-level flag
	// and it applies there just the same.
	if header.Flags.Unsync {
		body = decodeUnsync(body)
	}

	tag := &Tag{Header: header, Frames: NewFrameCollection()}
	s := newStream(body)

	if header.Flags.Extended {
		// A flag with no decodable extended header behind it is treated as a
		// false positive: clear it and read frames from the same position.
		pos := s.pos
		if ext, err := parseExtendedHeader(header.Version(), s); err == nil {
			tag.Extended = ext
		} else {
			s.pos = pos
			tag.Header.Flags.Extended = false
		}
	}

	for !s.empty() {
		frame, err := parseFrame(header.Version(), header.Flags.Unsync, 0, s)
		if err != nil {
			// Padding or a broken frame: the rest of the tag is unusable but
			// everything before it stands.
			break
		}
		tag.Frames.Add(frame)
	}
	return tag, nil
}

// Version returns the tag's major version.
func (t *Tag) Version() Version {
	return t.Header.Version()
}

// defaultPadding is appended after the frames when the declared size leaves
// no room, so small edits don't force rewriting the whole file.
const defaultPadding = 1024

// Render emits the tag's wire form: header, extended header if present,
// frames in the deterministic order, then zero padding. The declared size is
// reused as long as the rendered frames fit inside it; otherwise the tag
// grows by up to defaultPadding. Unsynchronization and the footer are never
// written, and the header's size field is updated in place.
func (t *Tag) Render() []byte {
	v := t.Version()

	var body []byte
	if t.Extended != nil {
		body = t.Extended.render(v)
	}
	body = append(body, t.Frames.render(v)...)

	size := t.Header.Size
	if len(body) > int(size) {
		pad := len(body) / 100
		if pad > defaultPadding {
			pad = defaultPadding
		}
		size = uint32(len(body) + pad)
	}

	t.Header.Size = size
	t.Header.Flags.Unsync = false
	t.Header.Flags.Footer = false
	t.Header.Flags.Extended = t.Extended != nil

	out := make([]byte, 0, tagHeaderSize+int(size))
	out = append(out, t.Header.render()...)
	out = append(out, body...)
	return append(out, make([]byte, int(size)-len(body))...)
}

// Upgrade rewrites the tag as ID3v2.4, migrating the frame set.
func (t *Tag) Upgrade() {
	if t.Version() == V24 {
		return
	}
	UpgradeFrames(t.Frames)
	t.Header.Major = uint8(V24)
	t.Header.Minor = 0
}

// Downgrade rewrites the tag as ID3v2.3, migrating the frame set.
func (t *Tag) Downgrade() {
	if t.Version() == V23 {
		return
	}
	DowngradeFrames(t.Frames)
	t.Header.Major = uint8(V23)
	t.Header.Minor = 0
}

// WireSize returns the number of bytes the tag occupied in its source
// stream: the header, the declared body and the footer if one was flagged.
func (t *Tag) WireSize() int {
	size := tagHeaderSize + int(t.Header.Size)
	if t.Header.Flags.Footer {
		size += tagHeaderSize
	}
	return size
}
