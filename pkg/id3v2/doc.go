// Package id3v2 decodes and re-encodes ID3v2.3 and ID3v2.4 metadata tags.
//
// A tag is located with SearchTag or decoded directly with ParseTag; the
// result owns a FrameCollection of typed frames that can be inspected,
// edited and rendered back to bytes. Rendering is the byte-level inverse of
// parsing for well-formed frames. Version migration between ID3v2.3 and
// ID3v2.4 representations is handled by Tag.Upgrade and Tag.Downgrade.
//
// The parsers accept adversarial input: every read is bounds-checked and any
// malformed construct surfaces as a typed error, never a panic. Compressed
// and encrypted frame bodies are preserved verbatim but not interpreted, and
// ID3v2.2 tags are detected but unsupported.
package id3v2
