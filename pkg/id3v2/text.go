package id3v2

import "strings"

// TextFrame holds one or more text values under a single T-prefixed frame
// ID (plus a few iTunes exceptions). Multiple values share one frame,
// separated on the wire by the encoding's NUL.
type TextFrame struct {
	FrameID  FrameID
	Encoding Encoding
	Text     []string
}

// NewTextFrame builds an empty UTF-8 text frame for the given ID.
func NewTextFrame(id FrameID) *TextFrame {
	return &TextFrame{FrameID: id, Encoding: EncodingUtf8}
}

func parseTextFrame(id FrameID, s *stream) (*TextFrame, error) {
	enc, err := parseEncoding(s)
	if err != nil {
		return nil, err
	}
	return &TextFrame{FrameID: id, Encoding: enc, Text: parseTextBody(enc, s)}, nil
}

func (f *TextFrame) ID() FrameID { return f.FrameID }

func (f *TextFrame) Key() string { return f.FrameID.String() }

func (f *TextFrame) Empty() bool { return len(f.Text) == 0 }

func (f *TextFrame) String() string { return strings.Join(f.Text, ", ") }

func (f *TextFrame) renderBody(v Version) []byte {
	enc := f.Encoding.forVersion(v)
	out := []byte{enc.renderByte()}
	return append(out, renderTextBody(enc, f.Text)...)
}

// parseTextBody reads NUL-delimited strings until the stream runs out,
// skipping empty entries left by stray terminators.
func parseTextBody(enc Encoding, s *stream) []string {
	var text []string
	for !s.empty() {
		entry := readTerminated(enc, s)
		if entry != "" {
			text = append(text, entry)
		}
	}
	return text
}

// renderTextBody joins the values with the encoding's NUL; the final value
// is left unterminated.
func renderTextBody(enc Encoding, text []string) []byte {
	var out []byte
	for i, entry := range text {
		if i < len(text)-1 {
			out = append(out, renderTerminated(enc, entry)...)
		} else {
			out = append(out, encodeString(enc, entry)...)
		}
	}
	return out
}

// UserTextFrame is a TXXX frame: program-defined text values identified by a
// description rather than a registered frame ID.
type UserTextFrame struct {
	Encoding Encoding
	Desc     string
	Text     []string
}

func parseUserTextFrame(s *stream) (*UserTextFrame, error) {
	enc, err := parseEncoding(s)
	if err != nil {
		return nil, err
	}
	desc := readTerminated(enc, s)
	return &UserTextFrame{Encoding: enc, Desc: desc, Text: parseTextBody(enc, s)}, nil
}

func (f *UserTextFrame) ID() FrameID { return mustFrameID("TXXX") }

func (f *UserTextFrame) Key() string { return "TXXX:" + f.Desc }

func (f *UserTextFrame) Empty() bool { return len(f.Text) == 0 }

func (f *UserTextFrame) String() string { return strings.Join(f.Text, ", ") }

func (f *UserTextFrame) renderBody(v Version) []byte {
	enc := f.Encoding.forVersion(v)
	out := []byte{enc.renderByte()}
	out = append(out, renderTerminated(enc, f.Desc)...)
	return append(out, renderTextBody(enc, f.Text)...)
}

// Credit is one role -> people entry of a credits frame. People sharing a
// role are NUL-joined into a single string on the wire, so they stay joined
// here as well.
type Credit struct {
	Role   string
	People string
}

// CreditsFrame maps involvement roles to the people filling them. Carried as
// TIPL/TMCL in ID3v2.4 and as the combined IPLS in ID3v2.3. Entry order is
// preserved.
type CreditsFrame struct {
	FrameID  FrameID
	Encoding Encoding
	Credits  []Credit
}

func parseCreditsFrame(id FrameID, s *stream) (*CreditsFrame, error) {
	enc, err := parseEncoding(s)
	if err != nil {
		return nil, err
	}

	f := &CreditsFrame{FrameID: id, Encoding: enc}
	var entries []string
	for !s.empty() {
		entries = append(entries, readTerminated(enc, s))
	}
	// An odd trailing role has no people entry and is dropped.
	for i := 0; i+1 < len(entries); i += 2 {
		f.Credits = append(f.Credits, Credit{Role: entries[i], People: entries[i+1]})
	}
	return f, nil
}

func (f *CreditsFrame) ID() FrameID { return f.FrameID }

// Key collapses the legacy IPLS ID onto TIPL so an upgraded tag never holds
// both spellings of the same frame.
func (f *CreditsFrame) Key() string {
	if f.FrameID == mustFrameID("IPLS") {
		return "TIPL"
	}
	return f.FrameID.String()
}

func (f *CreditsFrame) Empty() bool { return len(f.Credits) == 0 }

func (f *CreditsFrame) String() string {
	var sb strings.Builder
	for i, c := range f.Credits {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.Role)
		sb.WriteString(": ")
		sb.WriteString(c.People)
	}
	return sb.String()
}

func (f *CreditsFrame) renderBody(v Version) []byte {
	enc := f.Encoding.forVersion(v)
	out := []byte{enc.renderByte()}
	for i, c := range f.Credits {
		out = append(out, renderTerminated(enc, c.Role)...)
		if i < len(f.Credits)-1 {
			out = append(out, renderTerminated(enc, c.People)...)
		} else {
			out = append(out, encodeString(enc, c.People)...)
		}
	}
	return out
}

// setRole replaces an existing role's people or appends a new entry.
func (f *CreditsFrame) setRole(role, people string) {
	for i := range f.Credits {
		if f.Credits[i].Role == role {
			f.Credits[i].People = people
			return
		}
	}
	f.Credits = append(f.Credits, Credit{Role: role, People: people})
}
