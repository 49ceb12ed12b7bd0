package id3v2

import "fmt"

// PictureType classifies an attached picture.
type PictureType byte

// Picture types from the format's fixed table. Values above CelebrityLogo
// are carried as-is but have no name.
const (
	PictureOther PictureType = iota
	PictureFileIcon
	PictureOtherFileIcon
	PictureFrontCover
	PictureBackCover
	PictureLeafletPage
	PictureMedia
	PictureLeadArtist
	PictureArtist
	PictureConductor
	PictureBand
	PictureComposer
	PictureLyricist
	PictureRecordingLocation
	PictureDuringRecording
	PictureDuringPerformance
	PictureVideoCapture
	PictureFish
	PictureIllustration
	PictureBandLogo
	PictureCelebrityLogo
)

var pictureTypeNames = []string{
	"Other", "File icon", "Other file icon", "Front cover", "Back cover",
	"Leaflet page", "Media", "Lead artist", "Artist", "Conductor", "Band",
	"Composer", "Lyricist", "Recording location", "During recording",
	"During performance", "Video capture", "A bright colored fish",
	"Illustration", "Band logo", "Publisher logo",
}

func (p PictureType) String() string {
	if int(p) < len(pictureTypeNames) {
		return pictureTypeNames[p]
	}
	return fmt.Sprintf("PictureType(%d)", byte(p))
}

// AttachedPictureFrame is an APIC frame: embedded artwork with a MIME type
// and a description. A tag may carry several, distinguished by description.
type AttachedPictureFrame struct {
	Encoding Encoding
	MimeType string
	Type     PictureType
	Desc     string
	Picture  []byte
}

func parseAttachedPictureFrame(s *stream) (*AttachedPictureFrame, error) {
	enc, err := parseEncoding(s)
	if err != nil {
		return nil, err
	}
	mime := readTerminated(EncodingLatin1, s)
	if mime == "" {
		// An omitted MIME type implies an image of unspecified subtype.
		mime = "image/"
	}
	picType, err := s.u8()
	if err != nil {
		return nil, err
	}
	desc := readTerminated(enc, s)
	return &AttachedPictureFrame{
		Encoding: enc,
		MimeType: mime,
		Type:     PictureType(picType),
		Desc:     desc,
		Picture:  s.rest(),
	}, nil
}

func (f *AttachedPictureFrame) ID() FrameID { return mustFrameID("APIC") }

func (f *AttachedPictureFrame) Key() string { return "APIC:" + f.Desc }

func (f *AttachedPictureFrame) Empty() bool { return len(f.Picture) == 0 }

func (f *AttachedPictureFrame) String() string {
	return fmt.Sprintf("%s [%s, %d bytes]", f.Type, f.MimeType, len(f.Picture))
}

func (f *AttachedPictureFrame) renderBody(v Version) []byte {
	enc := f.Encoding.forVersion(v)
	out := []byte{enc.renderByte()}
	out = append(out, renderTerminated(EncodingLatin1, f.MimeType)...)
	out = append(out, byte(f.Type))
	out = append(out, renderTerminated(enc, f.Desc)...)
	return append(out, f.Picture...)
}

// GeneralObjectFrame is a GEOB frame: an arbitrary embedded file with a MIME
// type, original file name and description.
type GeneralObjectFrame struct {
	Encoding Encoding
	MimeType string
	FileName string
	Desc     string
	Data     []byte
}

func parseGeneralObjectFrame(s *stream) (*GeneralObjectFrame, error) {
	enc, err := parseEncoding(s)
	if err != nil {
		return nil, err
	}
	mime := readTerminated(EncodingLatin1, s)
	fileName := readTerminated(enc, s)
	desc := readTerminated(enc, s)
	return &GeneralObjectFrame{
		Encoding: enc,
		MimeType: mime,
		FileName: fileName,
		Desc:     desc,
		Data:     s.rest(),
	}, nil
}

func (f *GeneralObjectFrame) ID() FrameID { return mustFrameID("GEOB") }

func (f *GeneralObjectFrame) Key() string { return "GEOB:" + f.Desc }

func (f *GeneralObjectFrame) Empty() bool { return len(f.Data) == 0 }

func (f *GeneralObjectFrame) String() string {
	name := f.FileName
	if name == "" {
		name = f.Desc
	}
	return fmt.Sprintf("%s [%s, %d bytes]", name, f.MimeType, len(f.Data))
}

func (f *GeneralObjectFrame) renderBody(v Version) []byte {
	enc := f.Encoding.forVersion(v)
	out := []byte{enc.renderByte()}
	out = append(out, renderTerminated(EncodingLatin1, f.MimeType)...)
	out = append(out, renderTerminated(enc, f.FileName)...)
	out = append(out, renderTerminated(enc, f.Desc)...)
	return append(out, f.Data...)
}
