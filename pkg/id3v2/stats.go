package id3v2

import (
	"encoding/binary"
	"fmt"
)

// PlayCounterFrame is a PCNT frame: how many times the file has played. The
// counter is at least 4 bytes on the wire and may grow; anything beyond 8
// bytes is capped.
type PlayCounterFrame struct {
	Plays uint64
}

func parsePlayCounterFrame(s *stream) (*PlayCounterFrame, error) {
	return &PlayCounterFrame{Plays: readPlayCount(s)}, nil
}

func (f *PlayCounterFrame) ID() FrameID { return mustFrameID("PCNT") }

func (f *PlayCounterFrame) Key() string { return "PCNT" }

// Empty is always false: zero plays is still a meaningful counter.
func (f *PlayCounterFrame) Empty() bool { return false }

func (f *PlayCounterFrame) String() string {
	return fmt.Sprintf("%d", f.Plays)
}

func (f *PlayCounterFrame) renderBody(Version) []byte {
	return renderPlayCount(f.Plays)
}

// PopularimeterFrame is a POPM frame: a 0-255 rating and play count from one
// user, keyed by email.
type PopularimeterFrame struct {
	Email  string
	Rating uint8
	Plays  uint64
}

func parsePopularimeterFrame(s *stream) (*PopularimeterFrame, error) {
	email := readTerminated(EncodingLatin1, s)
	rating, err := s.u8()
	if err != nil {
		return nil, err
	}
	return &PopularimeterFrame{Email: email, Rating: rating, Plays: readPlayCount(s)}, nil
}

func (f *PopularimeterFrame) ID() FrameID { return mustFrameID("POPM") }

func (f *PopularimeterFrame) Key() string { return "POPM:" + f.Email }

func (f *PopularimeterFrame) Empty() bool { return false }

// RatingOutOf5 folds the raw 0-255 rating onto the usual five-star scale.
func (f *PopularimeterFrame) RatingOutOf5() uint8 {
	switch {
	case f.Rating == 0:
		return 0
	case f.Rating <= 63:
		return 1
	case f.Rating <= 127:
		return 2
	case f.Rating <= 195:
		return 3
	case f.Rating <= 254:
		return 4
	default:
		return 5
	}
}

func (f *PopularimeterFrame) String() string {
	return fmt.Sprintf("%s [%d/255, plays=%d]", f.Email, f.Rating, f.Plays)
}

func (f *PopularimeterFrame) renderBody(Version) []byte {
	out := renderTerminated(EncodingLatin1, f.Email)
	out = append(out, f.Rating)
	// The play count is optional; omit it when zero.
	if f.Plays > 0 {
		out = append(out, renderPlayCount(f.Plays)...)
	}
	return out
}

// readPlayCount reads a big-endian counter of whatever width remains, capped
// at 8 bytes. A short or absent field reads as its zero-padded value.
func readPlayCount(s *stream) uint64 {
	rest := s.rest()
	if len(rest) > 8 {
		rest = rest[len(rest)-8:]
	}
	var buf [8]byte
	copy(buf[8-len(rest):], rest)
	return binary.BigEndian.Uint64(buf[:])
}

// renderPlayCount emits the counter big-endian, trimming leading zero bytes
// down to the format's 4-byte minimum.
func renderPlayCount(plays uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], plays)
	for i := 0; i < 4; i++ {
		if buf[i] > 0 {
			return append([]byte(nil), buf[i:]...)
		}
	}
	return append([]byte(nil), buf[4:]...)
}
