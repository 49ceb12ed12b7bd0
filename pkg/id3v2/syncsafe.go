package id3v2

import "encoding/binary"

// Syncsafe integers use only the low 7 bits of each byte so that tag sizes
// can never form the 0xFF 0xE0 pattern of an MPEG frame sync.

// syncsafeU28 decodes a 4-byte syncsafe integer, most significant byte
// first. Some taggers write plain big-endian sizes here instead; if any byte
// has its high bit set the value cannot be syncsafe, so the raw
// interpretation is used.
func syncsafeU28(b []byte) uint32 {
	_ = b[3]
	if b[0]&0x80 != 0 || b[1]&0x80 != 0 || b[2]&0x80 != 0 || b[3]&0x80 != 0 {
		return binary.BigEndian.Uint32(b)
	}
	return uint32(b[0])<<21 | uint32(b[1])<<14 | uint32(b[2])<<7 | uint32(b[3])
}

// renderSyncsafeU28 encodes n as a 4-byte syncsafe integer. Values above the
// 28-bit ceiling are truncated to it.
func renderSyncsafeU28(n uint32) [4]byte {
	if n > 0x0FFFFFFF {
		n = 0x0FFFFFFF
	}
	return [4]byte{
		byte(n >> 21 & 0x7F),
		byte(n >> 14 & 0x7F),
		byte(n >> 7 & 0x7F),
		byte(n & 0x7F),
	}
}

// syncsafeU35 decodes the 5-byte syncsafe value used by the ID3v2.4
// extended-header CRC field.
func syncsafeU35(b []byte) uint64 {
	_ = b[4]
	var n uint64
	for _, c := range b[:5] {
		n = n<<7 | uint64(c&0x7F)
	}
	return n
}

func renderSyncsafeU35(n uint64) [5]byte {
	return [5]byte{
		byte(n >> 28 & 0x7F),
		byte(n >> 21 & 0x7F),
		byte(n >> 14 & 0x7F),
		byte(n >> 7 & 0x7F),
		byte(n & 0x7F),
	}
}

// decodeUnsync reverses unsynchronization byte stuffing: every 0x00 that
// directly follows a 0xFF was inserted on write and is dropped.
func decodeUnsync(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		out = append(out, b[i])
		if b[i] == 0xFF && i+1 < len(b) && b[i+1] == 0x00 {
			i++
		}
	}
	return out
}

// encodeUnsync applies unsynchronization byte stuffing, inserting a 0x00
// after every 0xFF so no false MPEG sync pattern survives in the output.
// decodeUnsync(encodeUnsync(b)) == b for arbitrary input.
func encodeUnsync(b []byte) []byte {
	out := make([]byte, 0, len(b)+len(b)/255+1)
	for _, c := range b {
		out = append(out, c)
		if c == 0xFF {
			out = append(out, 0x00)
		}
	}
	return out
}
