// Package codec implements the fixed set of text encodings. Every scheme maps
// text to text; binary intermediates never leave this package.
package codec

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
)

const (
	// DefaultMaxDecompressedSize caps gzip decode output.
	DefaultMaxDecompressedSize int64 = 32 << 20

	// DefaultGzipLevel lets the compressor pick its balanced level.
	DefaultGzipLevel = gzip.DefaultCompression
)

var (
	stdEncoding = base64.StdEncoding.Strict()
	urlEncoding = base64.URLEncoding.Strict()
)

// Codec runs encode and decode for every Scheme. The zero value is not usable;
// construct one with New. A Codec is immutable and safe for concurrent use.
type Codec struct {
	gzipLevel           int
	maxDecompressedSize int64
}

// Option configures a Codec.
type Option func(*Codec)

// WithGzipLevel sets the compression level used by gzip encode.
func WithGzipLevel(level int) Option {
	return func(c *Codec) {
		c.gzipLevel = level
	}
}

// WithMaxDecompressedSize limits how many bytes gzip decode may produce.
// Values <= 0 select DefaultMaxDecompressedSize.
func WithMaxDecompressedSize(n int64) Option {
	return func(c *Codec) {
		c.maxDecompressedSize = n
	}
}

// New creates a Codec. It fails only for an invalid gzip level, so that Encode
// itself never has to.
func New(opts ...Option) (*Codec, error) {
	c := &Codec{
		gzipLevel:           DefaultGzipLevel,
		maxDecompressedSize: DefaultMaxDecompressedSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.maxDecompressedSize <= 0 {
		c.maxDecompressedSize = DefaultMaxDecompressedSize
	}
	if _, err := gzip.NewWriterLevel(io.Discard, c.gzipLevel); err != nil {
		return nil, fmt.Errorf("invalid gzip level %d: %w", c.gzipLevel, err)
	}
	return c, nil
}

// Default is a Codec with default settings.
var Default, _ = New()

// Encode transforms in according to s. Unknown schemes return the input
// unchanged; use ParseScheme to obtain a valid Scheme.
func (c *Codec) Encode(s Scheme, in string) string {
	switch s {
	case Base64:
		return stdEncoding.EncodeToString([]byte(in))
	case Base64URL:
		return urlEncoding.EncodeToString([]byte(in))
	case URL:
		return percentEncode(in)
	case Hex:
		return hex.EncodeToString([]byte(in))
	case Gzip:
		return stdEncoding.EncodeToString(c.compress([]byte(in)))
	}
	return in
}

// Decode reverses Encode. Only structural failures are errors; base64,
// base64-url, url and hex yield an empty string when the decoded bytes are not
// valid UTF-8.
func (c *Codec) Decode(s Scheme, in string) (string, error) {
	var (
		out []byte
		err error
	)
	switch s {
	case Base64:
		out, err = stdEncoding.DecodeString(in)
	case Base64URL:
		out, err = urlEncoding.DecodeString(in)
	case URL:
		out = percentDecode(in)
	case Hex:
		out, err = hex.DecodeString(in)
	case Gzip:
		return c.decompress(in)
	default:
		return "", &UnsupportedFormatError{Name: s.String()}
	}
	if err != nil {
		return "", &DecodeError{Scheme: s, Err: err}
	}
	return lossyString(out), nil
}

func (c *Codec) compress(in []byte) []byte {
	var buf bytes.Buffer
	// Level was validated in New and writes to a bytes.Buffer do not fail.
	zw, _ := gzip.NewWriterLevel(&buf, c.gzipLevel)
	_, _ = zw.Write(in)
	_ = zw.Close()
	return buf.Bytes()
}

func (c *Codec) decompress(in string) (string, error) {
	compressed, err := stdEncoding.DecodeString(in)
	if err != nil {
		return "", &DecodeError{Scheme: Gzip, Err: err}
	}

	zr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return "", &DecodeError{Scheme: Gzip, Err: err}
	}
	defer zr.Close()
	zr.Multistream(false)

	out, err := io.ReadAll(io.LimitReader(zr, c.maxDecompressedSize+1))
	if err != nil {
		return "", &DecodeError{Scheme: Gzip, Err: err}
	}
	if int64(len(out)) > c.maxDecompressedSize {
		return "", &DecodeError{Scheme: Gzip, Err: fmt.Errorf("%w (%d bytes)", ErrOutputTooLarge, c.maxDecompressedSize)}
	}
	if !utf8.Valid(out) {
		return "", &DecodeError{Scheme: Gzip, Err: ErrInvalidUTF8}
	}
	return string(out), nil
}

func lossyString(b []byte) string {
	if !utf8.Valid(b) {
		return ""
	}
	return string(b)
}
