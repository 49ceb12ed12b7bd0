package id3v2

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf16"
)

// Encoding identifies how a frame stores its strings.
type Encoding byte

const (
	// EncodingLatin1 maps each byte directly to a codepoint <= 0xFF.
	EncodingLatin1 Encoding = iota
	// EncodingUtf16 is UTF-16 with a leading byte-order mark.
	EncodingUtf16
	// EncodingUtf16Be is UTF-16 big-endian without a byte-order mark.
	EncodingUtf16Be
	// EncodingUtf8 is plain UTF-8. Only valid in ID3v2.4.
	EncodingUtf8
	// EncodingUtf16Le is UTF-16 little-endian without a byte-order mark.
	// Not part of the format; used internally for BOM-less SYLT entries.
	EncodingUtf16Le
)

const (
	encByteLatin1  = 0x00
	encByteUtf16   = 0x01
	encByteUtf16Be = 0x02
	encByteUtf8    = 0x03
)

// parseEncoding reads and validates a frame's encoding byte.
func parseEncoding(s *stream) (Encoding, error) {
	b, err := s.u8()
	if err != nil {
		return EncodingLatin1, err
	}
	switch b {
	case encByteLatin1:
		return EncodingLatin1, nil
	case encByteUtf16:
		return EncodingUtf16, nil
	case encByteUtf16Be:
		return EncodingUtf16Be, nil
	case encByteUtf8:
		return EncodingUtf8, nil
	default:
		return EncodingLatin1, fmt.Errorf("%w: encoding byte 0x%02x", ErrInvalidEncoding, b)
	}
}

// renderByte returns the wire value written for this encoding.
func (e Encoding) renderByte() byte {
	switch e {
	case EncodingUtf16, EncodingUtf16Le:
		return encByteUtf16
	case EncodingUtf16Be:
		return encByteUtf16Be
	case EncodingUtf8:
		return encByteUtf8
	default:
		return encByteLatin1
	}
}

// forVersion maps an encoding to one the given tag version can express.
// ID3v2.3 only knows Latin1 and BOM-prefixed UTF-16, and the internal
// little-endian variant is never written as-is.
func (e Encoding) forVersion(v Version) Encoding {
	switch e {
	case EncodingUtf16Le:
		return EncodingUtf16
	case EncodingUtf16Be, EncodingUtf8:
		if v < V24 {
			return EncodingUtf16
		}
	}
	return e
}

// nulSize returns the width of this encoding's string terminator.
func (e Encoding) nulSize() int {
	switch e {
	case EncodingUtf16, EncodingUtf16Be, EncodingUtf16Le:
		return 2
	default:
		return 1
	}
}

func (e Encoding) String() string {
	switch e {
	case EncodingLatin1:
		return "Latin1"
	case EncodingUtf16:
		return "UTF-16"
	case EncodingUtf16Be:
		return "UTF-16BE"
	case EncodingUtf16Le:
		return "UTF-16LE"
	case EncodingUtf8:
		return "UTF-8"
	default:
		return fmt.Sprintf("Encoding(%d)", byte(e))
	}
}

// decodeString decodes b according to e. Decoding never fails: invalid
// sequences degrade to replacement characters.
func decodeString(e Encoding, b []byte) string {
	switch e {
	case EncodingLatin1:
		var sb strings.Builder
		sb.Grow(len(b))
		for _, c := range b {
			sb.WriteRune(rune(c))
		}
		return sb.String()

	case EncodingUtf16:
		if len(b) >= 2 && b[0] == 0xFF && b[1] == 0xFE {
			return decodeUtf16(b[2:], false)
		}
		if len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF {
			return decodeUtf16(b[2:], true)
		}
		// No BOM. Assume big-endian.
		return decodeUtf16(b, true)

	case EncodingUtf16Be:
		return decodeUtf16(b, true)

	case EncodingUtf16Le:
		return decodeUtf16(b, false)

	default:
		return strings.ToValidUTF8(string(b), "�")
	}
}

func decodeUtf16(b []byte, bigEndian bool) string {
	units := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		if bigEndian {
			units = append(units, uint16(b[i])<<8|uint16(b[i+1]))
		} else {
			units = append(units, uint16(b[i+1])<<8|uint16(b[i]))
		}
	}
	return string(utf16.Decode(units))
}

// encodeString is the inverse of decodeString. Latin1 substitutes '?' for
// codepoints above 0xFF, and the BOM-prefixed form always writes an FF FE
// mark followed by little-endian units.
func encodeString(e Encoding, s string) []byte {
	switch e {
	case EncodingLatin1:
		out := make([]byte, 0, len(s))
		for _, r := range s {
			if r > 0xFF {
				out = append(out, '?')
			} else {
				out = append(out, byte(r))
			}
		}
		return out

	case EncodingUtf16:
		return encodeUtf16(s, false, true)

	case EncodingUtf16Be:
		return encodeUtf16(s, true, false)

	case EncodingUtf16Le:
		return encodeUtf16(s, false, false)

	default:
		return []byte(s)
	}
}

func encodeUtf16(s string, bigEndian, bom bool) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, 0, len(units)*2+2)
	if bom {
		out = append(out, 0xFF, 0xFE)
	}
	for _, u := range units {
		if bigEndian {
			out = append(out, byte(u>>8), byte(u))
		} else {
			out = append(out, byte(u), byte(u>>8))
		}
	}
	return out
}

// readString decodes everything left in the stream.
func readString(e Encoding, s *stream) string {
	return decodeString(e, s.rest())
}

// readTerminated decodes up to the encoding's NUL terminator, consuming the
// terminator as well. Two-byte encodings require a zero pair aligned to the
// start of the string. Without a terminator the whole remainder is consumed.
func readTerminated(e Encoding, s *stream) string {
	rem := s.src[s.pos:]

	if e.nulSize() == 1 {
		if i := bytes.IndexByte(rem, 0); i >= 0 {
			s.pos += i + 1
			return decodeString(e, rem[:i])
		}
		s.pos = len(s.src)
		return decodeString(e, rem)
	}

	for i := 0; i+1 < len(rem); i += 2 {
		if rem[i] == 0 && rem[i+1] == 0 {
			s.pos += i + 2
			return decodeString(e, rem[:i])
		}
	}
	s.pos = len(s.src)
	return decodeString(e, rem)
}

// readExact decodes exactly n bytes.
func readExact(e Encoding, s *stream, n int) (string, error) {
	b, err := s.read(n)
	if err != nil {
		return "", err
	}
	return decodeString(e, b), nil
}

// renderTerminated encodes s followed by the encoding's NUL terminator.
func renderTerminated(e Encoding, s string) []byte {
	out := encodeString(e, s)
	return append(out, make([]byte, e.nulSize())...)
}
