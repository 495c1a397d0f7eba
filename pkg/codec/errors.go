package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat matches every UnsupportedFormatError via errors.Is.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrOutputTooLarge is returned when a gzip payload expands beyond the
	// configured limit.
	ErrOutputTooLarge = errors.New("decompressed output exceeds size limit")

	// ErrInvalidUTF8 is returned when decompressed gzip content is not text.
	ErrInvalidUTF8 = errors.New("stream did not contain valid UTF-8")
)

// UnsupportedFormatError reports a scheme name that is not registered.
type UnsupportedFormatError struct {
	Name string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format %q", e.Name)
}

func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// DecodeError is a structural failure while decoding a payload: bad alphabet or
// padding, truncated hex, corrupt compressed stream.
type DecodeError struct {
	Scheme Scheme
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s decode: %v", e.Scheme, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
