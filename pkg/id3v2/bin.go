package id3v2

import (
	"bytes"
	"fmt"
)

// RawFrame preserves a frame body this package does not interpret: unknown
// IDs, and compressed or encrypted bodies. The bytes pass through rendering
// untouched.
type RawFrame struct {
	Header FrameHeader
	Data   []byte
}

func newRawFrame(h FrameHeader, data []byte) *RawFrame {
	return &RawFrame{Header: h, Data: data}
}

func (f *RawFrame) ID() FrameID { return f.Header.ID }

func (f *RawFrame) Key() string { return f.Header.ID.String() }

func (f *RawFrame) Empty() bool { return len(f.Data) == 0 }

func (f *RawFrame) String() string {
	data := f.Data
	if len(data) > 64 {
		data = data[:64]
	}
	return fmt.Sprintf("% x", data)
}

func (f *RawFrame) renderBody(Version) []byte { return f.Data }

// PrivateFrame is a PRIV frame: opaque program data tied to an owner
// identifier.
type PrivateFrame struct {
	Owner string
	Data  []byte
}

func parsePrivateFrame(s *stream) (*PrivateFrame, error) {
	owner := readTerminated(EncodingLatin1, s)
	return &PrivateFrame{Owner: owner, Data: s.rest()}, nil
}

func (f *PrivateFrame) ID() FrameID { return mustFrameID("PRIV") }

func (f *PrivateFrame) Key() string { return "PRIV:" + f.Owner }

func (f *PrivateFrame) Empty() bool { return len(f.Data) == 0 }

func (f *PrivateFrame) String() string { return f.Owner }

func (f *PrivateFrame) renderBody(Version) []byte {
	out := renderTerminated(EncodingLatin1, f.Owner)
	return append(out, f.Data...)
}

// FileIDFrame is a UFID frame: a database identifier for the file, tied to
// the owning database's identifier.
type FileIDFrame struct {
	Owner      string
	Identifier []byte
}

func parseFileIDFrame(s *stream) (*FileIDFrame, error) {
	owner := readTerminated(EncodingLatin1, s)
	return &FileIDFrame{Owner: owner, Identifier: s.rest()}, nil
}

func (f *FileIDFrame) ID() FrameID { return mustFrameID("UFID") }

func (f *FileIDFrame) Key() string { return "UFID:" + f.Owner }

func (f *FileIDFrame) Empty() bool {
	return f.Owner == "" || len(f.Identifier) == 0
}

func (f *FileIDFrame) String() string { return f.Owner }

func (f *FileIDFrame) renderBody(Version) []byte {
	out := renderTerminated(EncodingLatin1, f.Owner)
	return append(out, f.Identifier...)
}

// PodcastFrame is the iTunes PCST marker. Its presence alone flags the file
// as a podcast; the body is fixed at four zero bytes.
type PodcastFrame struct{}

var podcastBody = []byte{0, 0, 0, 0}

func parsePodcastFrame(s *stream) (*PodcastFrame, error) {
	if !bytes.Equal(s.rest(), podcastBody) {
		return nil, fmt.Errorf("podcast marker body: %w", ErrMalformedData)
	}
	return &PodcastFrame{}, nil
}

func (f *PodcastFrame) ID() FrameID { return mustFrameID("PCST") }

func (f *PodcastFrame) Key() string { return "PCST" }

func (f *PodcastFrame) Empty() bool { return false }

func (f *PodcastFrame) String() string { return "podcast" }

func (f *PodcastFrame) renderBody(Version) []byte {
	return append([]byte(nil), podcastBody...)
}
