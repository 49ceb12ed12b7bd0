package id3v2

// URLFrame is a W-prefixed frame carrying a single Latin1 link, such as WOAR
// (artist page) or WCOM (where to buy).
type URLFrame struct {
	FrameID FrameID
	URL     string
}

func parseURLFrame(id FrameID, s *stream) (*URLFrame, error) {
	return &URLFrame{FrameID: id, URL: readString(EncodingLatin1, s)}, nil
}

func (f *URLFrame) ID() FrameID { return f.FrameID }

func (f *URLFrame) Key() string { return f.FrameID.String() }

func (f *URLFrame) Empty() bool { return f.URL == "" }

func (f *URLFrame) String() string { return f.URL }

func (f *URLFrame) renderBody(Version) []byte {
	return encodeString(EncodingLatin1, f.URL)
}

// UserURLFrame is a WXXX frame: a link identified by a description in the
// frame's own encoding; the link itself stays Latin1.
type UserURLFrame struct {
	Encoding Encoding
	Desc     string
	URL      string
}

func parseUserURLFrame(s *stream) (*UserURLFrame, error) {
	enc, err := parseEncoding(s)
	if err != nil {
		return nil, err
	}
	desc := readTerminated(enc, s)
	return &UserURLFrame{Encoding: enc, Desc: desc, URL: readString(EncodingLatin1, s)}, nil
}

func (f *UserURLFrame) ID() FrameID { return mustFrameID("WXXX") }

func (f *UserURLFrame) Key() string { return "WXXX:" + f.Desc }

func (f *UserURLFrame) Empty() bool { return f.URL == "" }

func (f *UserURLFrame) String() string { return f.URL }

func (f *UserURLFrame) renderBody(v Version) []byte {
	enc := f.Encoding.forVersion(v)
	out := []byte{enc.renderByte()}
	out = append(out, renderTerminated(enc, f.Desc)...)
	return append(out, encodeString(EncodingLatin1, f.URL)...)
}
