package id3v2

import "fmt"

// Frame is one typed metadata record inside a tag. The set of
// implementations is closed: every frame kind lives in this package and is
// chosen by the dispatcher from the 4-character frame ID.
type Frame interface {
	// ID returns the frame's 4-character identifier.
	ID() FrameID
	// Key returns the identity used by FrameCollection. Frame kinds that may
	// appear more than once per tag append a disambiguator such as a
	// description, language or owner to the ID.
	Key() string
	// Empty reports whether the frame carries no usable payload. Empty
	// frames are skipped when rendering.
	Empty() bool
	// String returns a human-readable rendition of the frame's value.
	String() string

	// renderBody emits the frame body for the given tag version. It is the
	// byte-level inverse of the kind's parser for well-formed input.
	renderBody(v Version) []byte
}

// maxFrameDepth bounds CHAP/CTOC nesting so hostile input cannot recurse
// without limit. Real tags nest chapters at most one level deep.
const maxFrameDepth = 8

// appleTextIDs are iTunes frames that carry text-frame bodies despite not
// having a T prefix.
var appleTextIDs = map[FrameID]bool{
	mustFrameID("WFED"): true, // podcast feed URL, stored as text by iTunes
	mustFrameID("MVNM"): true,
	mustFrameID("MVIN"): true,
	mustFrameID("GRP1"): true,
}

// parseFrame decodes the next frame from s. A zero byte where an ID should
// start means the padding area was reached, reported as errPadding. Any
// other failure stops the caller's frame loop without discarding frames that
// already parsed.
func parseFrame(v Version, tagUnsync bool, depth int, s *stream) (Frame, error) {
	lead := s.peek(1)
	if lead == nil {
		return nil, fmt.Errorf("frame: %w", ErrNotEnoughData)
	}
	if lead[0] == 0 {
		return nil, errPadding
	}
	if s.remaining() < frameHeaderSize {
		return nil, fmt.Errorf("frame: %w", ErrNotEnoughData)
	}

	headerBytes := s.src[s.pos : s.pos+frameHeaderSize]
	rest := s.src[s.pos+frameHeaderSize:]
	header, err := parseFrameHeader(v, headerBytes, rest)
	if err != nil {
		return nil, err
	}
	s.pos += frameHeaderSize

	if header.Size == 0 {
		return nil, fmt.Errorf("frame %s: zero size: %w", header.ID, ErrMalformedData)
	}
	body, err := s.read(int(header.Size))
	if err != nil {
		return nil, fmt.Errorf("frame %s: body: %w", header.ID, err)
	}

	bs := newStream(body)
	if header.Flags.Grouped {
		if err := bs.skip(1); err != nil {
			return nil, fmt.Errorf("frame %s: group byte: %w", header.ID, err)
		}
	}
	if v == V24 && (header.Flags.DataLen || header.Flags.Compressed) {
		if err := bs.skip(4); err != nil {
			return nil, fmt.Errorf("frame %s: data length: %w", header.ID, err)
		}
	}
	if v == V23 && header.Flags.Compressed {
		// v2.3 writes the decompressed size before a compressed body.
		if err := bs.skip(4); err != nil {
			return nil, fmt.Errorf("frame %s: decompressed size: %w", header.ID, err)
		}
	}
	if v == V24 && header.Flags.Unsync && !tagUnsync {
		bs = newStream(decodeUnsync(bs.rest()))
	}

	// Compressed and encrypted bodies are preserved, not interpreted.
	if header.Flags.Compressed || header.Flags.Encrypted {
		return newRawFrame(header, bs.rest()), nil
	}

	f, err := dispatchFrame(v, header, depth, bs)
	if err != nil {
		return nil, fmt.Errorf("frame %s: %w", header.ID, err)
	}
	return f, nil
}

func dispatchFrame(v Version, h FrameHeader, depth int, s *stream) (Frame, error) {
	id := h.ID.String()
	switch id {
	case "UFID":
		return parseFileIDFrame(s)
	case "TXXX":
		return parseUserTextFrame(s)
	case "TIPL", "TMCL", "IPLS":
		return parseCreditsFrame(h.ID, s)
	case "WXXX":
		return parseUserURLFrame(s)
	case "COMM":
		return parseCommentsFrame(s)
	case "USLT":
		return parseUnsyncLyricsFrame(s)
	case "SYLT":
		return parseSyncedLyricsFrame(s)
	case "APIC":
		return parseAttachedPictureFrame(s)
	case "GEOB":
		return parseGeneralObjectFrame(s)
	case "PCNT":
		return parsePlayCounterFrame(s)
	case "POPM":
		return parsePopularimeterFrame(s)
	case "USER":
		return parseTermsOfUseFrame(s)
	case "OWNE":
		return parseOwnershipFrame(s)
	case "PRIV":
		return parsePrivateFrame(s)
	case "ETCO":
		return parseEventTimingFrame(s)
	case "RVA2":
		return parseRelativeVolumeFrame(s)
	case "EQU2":
		return parseEqualisationFrame(s)
	case "CHAP":
		return parseChapterFrame(v, depth, s)
	case "CTOC":
		return parseTableOfContentsFrame(v, depth, s)
	case "PCST":
		return parsePodcastFrame(s)
	}

	if id[0] == 'T' || appleTextIDs[h.ID] {
		return parseTextFrame(h.ID, s)
	}
	if id[0] == 'W' {
		return parseURLFrame(h.ID, s)
	}

	// Unrecognized frames keep their bytes untouched.
	return newRawFrame(h, s.rest()), nil
}

// renderFrame emits a complete frame: header with the version's size format,
// zeroed flags and the kind-specific body.
func renderFrame(v Version, f Frame) []byte {
	body := f.renderBody(v)
	header := FrameHeader{ID: f.ID(), Size: uint32(len(body))}
	out := header.render(v)
	return append(out, body...)
}
