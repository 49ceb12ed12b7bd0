package id3v2

import (
	"bytes"
	"fmt"
	"testing"
)

func chapterTitleFrame(title string) []byte {
	return renderFrame(V24, &TextFrame{
		FrameID:  mustFrameID("TIT2"),
		Encoding: EncodingLatin1,
		Text:     []string{title},
	})
}

func TestChapterFrame(t *testing.T) {
	var body []byte
	body = append(body, "chp1\x00"...)
	body = append(body, 0x00, 0x00, 0x00, 0x00)
	body = append(body, 0x00, 0x0A, 0xBC, 0xDE)
	body = append(body, 0xFF, 0xFF, 0xFF, 0xFF)
	body = append(body, 0xFF, 0xFF, 0xFF, 0xFF)
	body = append(body, chapterTitleFrame("Chapter 1")...)

	f, err := parseChapterFrame(V24, 0, newStream(body))
	if err != nil {
		t.Fatalf("parseChapterFrame: %v", err)
	}
	if f.ElementID != "chp1" {
		t.Errorf("element: got %q", f.ElementID)
	}
	if f.StartTime != 0 || f.EndTime != 0x0ABCDE {
		t.Errorf("times: got %d..%d", f.StartTime, f.EndTime)
	}
	if f.StartOffset != UnknownOffset || f.EndOffset != UnknownOffset {
		t.Errorf("offsets: got %d..%d", f.StartOffset, f.EndOffset)
	}
	title, ok := f.Frames.Get("TIT2").(*TextFrame)
	if !ok || title.Text[0] != "Chapter 1" {
		t.Errorf("embedded title: got %v", f.Frames.Get("TIT2"))
	}
	if f.Key() != "CHAP:chp1" {
		t.Errorf("key: got %q", f.Key())
	}
	if got := f.renderBody(V24); !bytes.Equal(got, body) {
		t.Errorf("render: got % x, want % x", got, body)
	}
}

func TestChapterFrameBadEmbeddedFrameDropped(t *testing.T) {
	var body []byte
	body = append(body, "chp1\x00"...)
	body = append(body, make([]byte, 16)...)
	body = append(body, chapterTitleFrame("Kept")...)
	body = append(body, 'A') // trailing garbage, too short for a frame

	f, err := parseChapterFrame(V24, 0, newStream(body))
	if err != nil {
		t.Fatalf("parseChapterFrame: %v", err)
	}
	if f.Frames.Len() != 1 {
		t.Errorf("frames: got %v", f.Frames.Keys())
	}
}

func TestTableOfContentsFrame(t *testing.T) {
	var body []byte
	body = append(body, "toc1\x00"...)
	body = append(body, 0x03, 0x03)
	body = append(body, "chp1\x00chp2\x00chp3\x00"...)

	f, err := parseTableOfContentsFrame(V24, 0, newStream(body))
	if err != nil {
		t.Fatalf("parseTableOfContentsFrame: %v", err)
	}
	if !f.TopLevel || !f.Ordered {
		t.Errorf("flags: got top=%v ordered=%v", f.TopLevel, f.Ordered)
	}
	if len(f.Entries) != 3 || f.Entries[0] != "chp1" || f.Entries[2] != "chp3" {
		t.Errorf("entries: got %q", f.Entries)
	}
	if f.Key() != "CTOC:toc1" {
		t.Errorf("key: got %q", f.Key())
	}
	if got := f.renderBody(V24); !bytes.Equal(got, body) {
		t.Errorf("render: got % x, want % x", got, body)
	}
}

func TestTableOfContentsFrameOverstatedCount(t *testing.T) {
	var body []byte
	body = append(body, "toc1\x00"...)
	body = append(body, 0x00, 0x05)
	body = append(body, "chp1\x00chp2\x00"...)

	f, err := parseTableOfContentsFrame(V24, 0, newStream(body))
	if err != nil {
		t.Fatalf("parseTableOfContentsFrame: %v", err)
	}
	if len(f.Entries) != 2 {
		t.Errorf("entries: got %q", f.Entries)
	}
}

func TestChapterNestingBound(t *testing.T) {
	root := NewChapterFrame("c0")
	cur := root
	for i := 1; i < maxFrameDepth+4; i++ {
		child := NewChapterFrame(fmt.Sprintf("c%d", i))
		cur.Frames.Insert(child)
		cur = child
	}

	parsed, err := parseChapterFrame(V24, 0, newStream(root.renderBody(V24)))
	if err != nil {
		t.Fatalf("parseChapterFrame: %v", err)
	}

	depth := 1
	for f := parsed; ; depth++ {
		frames := f.Frames.GetAll(mustFrameID("CHAP"))
		if len(frames) == 0 {
			break
		}
		f = frames[0].(*ChapterFrame)
	}
	if depth != maxFrameDepth+1 {
		t.Errorf("chain length: got %d, want %d", depth, maxFrameDepth+1)
	}
}
