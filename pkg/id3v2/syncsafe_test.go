package id3v2

import (
	"bytes"
	"testing"
)

func TestSyncsafeU28(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want uint32
	}{
		{
			name: "zero",
			data: []byte{0x00, 0x00, 0x00, 0x00},
			want: 0,
		},
		{
			name: "small",
			data: []byte{0x00, 0x00, 0x00, 0x30},
			want: 0x30,
		},
		{
			name: "tag header example",
			data: []byte{0x00, 0x08, 0x49, 0x30},
			want: 140464,
		},
		{
			name: "max",
			data: []byte{0x7F, 0x7F, 0x7F, 0x7F},
			want: 0x0FFFFFFF,
		},
		{
			name: "raw fallback on high bit",
			data: []byte{0x00, 0x80, 0x00, 0x01},
			want: 0x00800001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := syncsafeU28(tt.data); got != tt.want {
				t.Errorf("syncsafeU28: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSyncsafeU28RoundTrip(t *testing.T) {
	values := []uint32{0, 1, 0x7F, 0x80, 140464, 0x0FFFFFFF}

	for _, n := range values {
		enc := renderSyncsafeU28(n)
		for _, b := range enc {
			if b&0x80 != 0 {
				t.Errorf("encode(%d): byte 0x%02x has high bit set", n, b)
			}
		}
		if got := syncsafeU28(enc[:]); got != n {
			t.Errorf("decode(encode(%d)): got %d", n, got)
		}
	}
}

func TestSyncsafeU35RoundTrip(t *testing.T) {
	values := []uint64{0, 0xFFFFFFFF, 0x7FFFFFFFF}

	for _, n := range values {
		enc := renderSyncsafeU35(n)
		if got := syncsafeU35(enc[:]); got != n {
			t.Errorf("decode(encode(%d)): got %d", n, got)
		}
	}
}

func TestUnsyncDecode(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want []byte
	}{
		{
			name: "no stuffing",
			data: []byte{0x01, 0x02, 0x03},
			want: []byte{0x01, 0x02, 0x03},
		},
		{
			name: "stuffed pair",
			data: []byte{0xFF, 0x00, 0xE0},
			want: []byte{0xFF, 0xE0},
		},
		{
			name: "stuffed zero",
			data: []byte{0xFF, 0x00, 0x00},
			want: []byte{0xFF, 0x00},
		},
		{
			name: "trailing ff",
			data: []byte{0x16, 0xFF},
			want: []byte{0x16, 0xFF},
		},
		{
			name: "consecutive ff",
			data: []byte{0xFF, 0x00, 0xFF, 0x00, 0x16},
			want: []byte{0xFF, 0xFF, 0x16},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decodeUnsync(tt.data); !bytes.Equal(got, tt.want) {
				t.Errorf("decodeUnsync: got % x, want % x", got, tt.want)
			}
		})
	}
}

func TestUnsyncRoundTrip(t *testing.T) {
	inputs := [][]byte{
		{},
		{0x00},
		{0xFF},
		{0xFF, 0x00},
		{0xFF, 0xFF, 0xFF},
		{0xFF, 0xE0, 0xFF, 0x00, 0x16, 0xFF},
	}

	for _, in := range inputs {
		enc := encodeUnsync(in)
		if got := decodeUnsync(enc); !bytes.Equal(got, in) {
			t.Errorf("decode(encode(% x)): got % x", in, got)
		}
	}
}

func BenchmarkUnsyncDecode(b *testing.B) {
	data := bytes.Repeat([]byte{0xFF, 0x00, 0x16, 0x16}, 1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = decodeUnsync(data)
	}
}
