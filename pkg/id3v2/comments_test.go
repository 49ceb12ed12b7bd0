package id3v2

import (
	"bytes"
	"testing"
)

func TestCommentsFrame(t *testing.T) {
	body := []byte{0x03, 0x65, 0x6E, 0x67, 0x44, 0x65, 0x73, 0x63, 0x00, 0x54, 0x65, 0x78, 0x74}

	f, err := parseCommentsFrame(newStream(body))
	if err != nil {
		t.Fatalf("parseCommentsFrame: %v", err)
	}
	if f.Encoding != EncodingUtf8 {
		t.Errorf("encoding: got %s", f.Encoding)
	}
	if f.Lang.String() != "eng" {
		t.Errorf("lang: got %q", f.Lang)
	}
	if f.Desc != "Desc" || f.Text != "Text" {
		t.Errorf("fields: got desc=%q text=%q", f.Desc, f.Text)
	}
	if f.Key() != "COMM:Desc:eng" {
		t.Errorf("key: got %q", f.Key())
	}
	if f.String() != "Text" {
		t.Errorf("string: got %q", f)
	}
	if got := f.renderBody(V24); !bytes.Equal(got, body) {
		t.Errorf("render: got % x, want % x", got, body)
	}
}

func TestCommentsFrameDescOnly(t *testing.T) {
	f := &CommentsFrame{Encoding: EncodingLatin1, Lang: NewLanguage("eng"), Desc: "iTunNORM"}
	if f.String() != "iTunNORM" {
		t.Errorf("string: got %q", f)
	}
	if !f.Empty() {
		t.Error("frame with no text should be empty")
	}
}

func TestCommentsFrameBadLanguage(t *testing.T) {
	body := append([]byte{0x00, 0x31, 0x32, 0x33}, "d\x00t"...)

	f, err := parseCommentsFrame(newStream(body))
	if err != nil {
		t.Fatalf("parseCommentsFrame: %v", err)
	}
	if f.Lang != DefaultLanguage {
		t.Errorf("lang: got %q, want xxx", f.Lang)
	}
}
