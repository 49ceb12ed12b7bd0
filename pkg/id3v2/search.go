package id3v2

import (
	"bytes"
	"fmt"
	"io"
)

// searchBlockSize is how much of the stream is scanned per step when the tag
// is not at the start.
const searchBlockSize = 1024

// SearchTag locates and decodes an ID3v2 tag in r. The usual place is
// offset 0; failing that the stream is scanned for the tag signature,
// tolerating leading junk such as a partial download or another container.
// The returned offset is where the tag's header starts.
func SearchTag(r io.Reader) (*Tag, int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read stream: %w", err)
	}
	return SearchTagBytes(data)
}

// SearchTagBytes is SearchTag over an in-memory stream.
func SearchTagBytes(data []byte) (*Tag, int64, error) {
	if bytes.HasPrefix(data, tagMagic) {
		tag, err := ParseTag(data)
		if err != nil {
			return nil, 0, err
		}
		return tag, 0, nil
	}

	// Scan in fixed blocks, sliding a window the width of the signature. A
	// signature hit may still be a false positive, so a candidate only wins
	// if a parse succeeds there.
	var window [3]byte
	for pos := 0; pos < len(data); pos += searchBlockSize {
		end := pos + searchBlockSize
		if end > len(data) {
			end = len(data)
		}
		for i, b := range data[pos:end] {
			window[0], window[1] = window[1], window[2]
			window[2] = b
			if !bytes.Equal(window[:], tagMagic) {
				continue
			}
			offset := pos + i - 2
			if tag, err := ParseTag(data[offset:]); err == nil {
				return tag, int64(offset), nil
			}
		}
	}
	return nil, 0, ErrNotFound
}
