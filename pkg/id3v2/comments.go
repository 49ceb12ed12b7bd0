package id3v2

// CommentsFrame is a COMM frame: free text with a language and an optional
// short description. A tag may carry many, distinguished by description and
// language.
type CommentsFrame struct {
	Encoding Encoding
	Lang     Language
	Desc     string
	Text     string
}

func parseCommentsFrame(s *stream) (*CommentsFrame, error) {
	enc, err := parseEncoding(s)
	if err != nil {
		return nil, err
	}
	lang, err := parseLanguage(s)
	if err != nil {
		return nil, err
	}
	desc := readTerminated(enc, s)
	text := readString(enc, s)
	return &CommentsFrame{Encoding: enc, Lang: lang, Desc: desc, Text: text}, nil
}

func (f *CommentsFrame) ID() FrameID { return mustFrameID("COMM") }

func (f *CommentsFrame) Key() string {
	return "COMM:" + f.Desc + ":" + f.Lang.String()
}

func (f *CommentsFrame) Empty() bool { return f.Text == "" }

// String prefers the comment text, falling back to the description for
// frames that only carry one.
func (f *CommentsFrame) String() string {
	if f.Text == "" {
		return f.Desc
	}
	return f.Text
}

func (f *CommentsFrame) renderBody(v Version) []byte {
	enc := f.Encoding.forVersion(v)
	out := []byte{enc.renderByte()}
	out = append(out, f.Lang[:]...)
	out = append(out, renderTerminated(enc, f.Desc)...)
	return append(out, encodeString(enc, f.Text)...)
}
