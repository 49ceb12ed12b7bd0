package id3v2

import "encoding/binary"

// stream is a bounds-checked cursor over a byte slice. Every read either
// succeeds fully or returns ErrNotEnoughData, so frame parsers never index
// the underlying slice directly.
type stream struct {
	src []byte
	pos int
}

func newStream(src []byte) *stream {
	return &stream{src: src}
}

func (s *stream) remaining() int {
	return len(s.src) - s.pos
}

func (s *stream) empty() bool {
	return s.pos >= len(s.src)
}

// read returns a view of the next n bytes and advances past them.
func (s *stream) read(n int) ([]byte, error) {
	if n < 0 || s.remaining() < n {
		return nil, ErrNotEnoughData
	}
	b := s.src[s.pos : s.pos+n]
	s.pos += n
	return b, nil
}

// rest consumes and returns everything left in the stream.
func (s *stream) rest() []byte {
	b := s.src[s.pos:]
	s.pos = len(s.src)
	return b
}

// peek returns the next n bytes without advancing, or nil if fewer remain.
func (s *stream) peek(n int) []byte {
	if s.remaining() < n {
		return nil
	}
	return s.src[s.pos : s.pos+n]
}

func (s *stream) skip(n int) error {
	_, err := s.read(n)
	return err
}

func (s *stream) u8() (byte, error) {
	if s.empty() {
		return 0, ErrNotEnoughData
	}
	b := s.src[s.pos]
	s.pos++
	return b, nil
}

func (s *stream) u16() (uint16, error) {
	b, err := s.read(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (s *stream) u32() (uint32, error) {
	b, err := s.read(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (s *stream) i16() (int16, error) {
	v, err := s.u16()
	return int16(v), err
}
