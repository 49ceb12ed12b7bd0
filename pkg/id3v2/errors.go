package id3v2

import "errors"

// Sentinel errors returned by the tag and frame parsers. Callers should
// match with errors.Is, as most failures come wrapped with context.
var (
	// ErrNotEnoughData means the input ended before a required field.
	ErrNotEnoughData = errors.New("not enough data")

	// ErrMalformedData means a field held a value the format does not allow,
	// such as a bad magic, a reserved flag bit or a non-alphanumeric frame ID.
	ErrMalformedData = errors.New("malformed data")

	// ErrInvalidEncoding means an unrecognized string encoding byte.
	ErrInvalidEncoding = errors.New("invalid string encoding")

	// ErrUnsupported means the data is recognized but outside the supported
	// feature set, such as an ID3v2.2 tag.
	ErrUnsupported = errors.New("unsupported")

	// ErrNotFound means no ID3v2 tag was located in the stream.
	ErrNotFound = errors.New("no ID3v2 tag found")
)

// errPadding signals that the frame loop ran into zero padding. It never
// escapes the package.
var errPadding = errors.New("padding reached")
