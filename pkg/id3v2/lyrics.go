package id3v2

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// TimestampFormat declares the unit of the timestamps in SYLT and ETCO
// frames.
type TimestampFormat byte

const (
	// TimestampOther means no unit was declared.
	TimestampOther TimestampFormat = 0x00
	// TimestampMpegFrames counts MPEG frames.
	TimestampMpegFrames TimestampFormat = 0x01
	// TimestampMillis counts milliseconds.
	TimestampMillis TimestampFormat = 0x02
)

func parseTimestampFormat(b byte) TimestampFormat {
	switch TimestampFormat(b) {
	case TimestampMpegFrames, TimestampMillis:
		return TimestampFormat(b)
	default:
		return TimestampOther
	}
}

// UnsyncLyricsFrame is a USLT frame: unsynchronized (plain) lyrics, laid out
// exactly like a comment.
type UnsyncLyricsFrame struct {
	Encoding Encoding
	Lang     Language
	Desc     string
	Text     string
}

func parseUnsyncLyricsFrame(s *stream) (*UnsyncLyricsFrame, error) {
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
	return &UnsyncLyricsFrame{Encoding: enc, Lang: lang, Desc: desc, Text: text}, nil
}

func (f *UnsyncLyricsFrame) ID() FrameID { return mustFrameID("USLT") }

func (f *UnsyncLyricsFrame) Key() string {
	return "USLT:" + f.Desc + ":" + f.Lang.String()
}

func (f *UnsyncLyricsFrame) Empty() bool { return f.Text == "" }

func (f *UnsyncLyricsFrame) String() string { return f.Text }

func (f *UnsyncLyricsFrame) renderBody(v Version) []byte {
	enc := f.Encoding.forVersion(v)
	out := []byte{enc.renderByte()}
	out = append(out, f.Lang[:]...)
	out = append(out, renderTerminated(enc, f.Desc)...)
	return append(out, encodeString(enc, f.Text)...)
}

// LyricLine is one timed entry of a synchronized lyrics frame.
type LyricLine struct {
	Text string
	// Time is in the frame's TimestampFormat unit.
	Time uint32
}

// SyncedLyricsFrame is a SYLT frame: lyric lines each stamped with a time.
type SyncedLyricsFrame struct {
	Encoding Encoding
	Lang     Language
	Format   TimestampFormat
	// ContentType is the raw content-type byte (1 = lyrics, 2 = transcription,
	// and so on).
	ContentType byte
	Desc        string
	Lines       []LyricLine
}

func parseSyncedLyricsFrame(s *stream) (*SyncedLyricsFrame, error) {
	enc, err := parseEncoding(s)
	if err != nil {
		return nil, err
	}
	lang, err := parseLanguage(s)
	if err != nil {
		return nil, err
	}
	formatByte, err := s.u8()
	if err != nil {
		return nil, err
	}
	contentType, err := s.u8()
	if err != nil {
		return nil, err
	}

	// Some taggers only write a byte-order mark on the description and leave
	// the lyric entries bare. Infer the endianness once from the description
	// and reuse it for any BOM-less entry.
	implicit := enc
	if enc == EncodingUtf16 {
		implicit = EncodingUtf16Be
		if bom := s.peek(2); bom != nil && bom[0] == 0xFF && bom[1] == 0xFE {
			implicit = EncodingUtf16Le
		}
	}
	desc := readTerminated(enc, s)

	f := &SyncedLyricsFrame{
		Encoding:    enc,
		Lang:        lang,
		Format:      parseTimestampFormat(formatByte),
		ContentType: contentType,
		Desc:        desc,
	}
	for !s.empty() {
		entryEnc := enc
		if enc == EncodingUtf16 {
			bom := s.peek(2)
			if bom == nil || !((bom[0] == 0xFF && bom[1] == 0xFE) || (bom[0] == 0xFE && bom[1] == 0xFF)) {
				entryEnc = implicit
			}
		}
		text := readTerminated(entryEnc, s)
		time, err := s.u32()
		if err != nil {
			return nil, fmt.Errorf("lyric timestamp: %w", err)
		}
		f.Lines = append(f.Lines, LyricLine{Text: text, Time: time})
	}
	return f, nil
}

func (f *SyncedLyricsFrame) ID() FrameID { return mustFrameID("SYLT") }

func (f *SyncedLyricsFrame) Key() string {
	return "SYLT:" + f.Desc + ":" + f.Lang.String()
}

func (f *SyncedLyricsFrame) Empty() bool { return len(f.Lines) == 0 }

func (f *SyncedLyricsFrame) String() string {
	lines := make([]string, len(f.Lines))
	for i, l := range f.Lines {
		lines[i] = l.Text
	}
	return strings.Join(lines, "\n")
}

func (f *SyncedLyricsFrame) renderBody(v Version) []byte {
	enc := f.Encoding.forVersion(v)
	out := []byte{enc.renderByte()}
	out = append(out, f.Lang[:]...)
	out = append(out, byte(f.Format), f.ContentType)
	out = append(out, renderTerminated(enc, f.Desc)...)
	for _, l := range f.Lines {
		out = append(out, renderTerminated(enc, l.Text)...)
		out = binary.BigEndian.AppendUint32(out, l.Time)
	}
	return out
}
