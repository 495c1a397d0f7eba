package transform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/birdayz/transcode/pkg/codec"
)

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name    string
		tokens  []string
		want    Request
		wantErr error
	}{
		{
			name:   "two tokens",
			tokens: []string{"base64", "hello"},
			want:   Request{Scheme: codec.Base64, Payload: "hello"},
		},
		{
			name:   "joins remaining tokens with one space",
			tokens: []string{"hex", "a", "b", "c"},
			want:   Request{Scheme: codec.Hex, Payload: "a b c"},
		},
		{
			name:   "keeps whitespace inside tokens",
			tokens: []string{"url", "a  b", "c\n"},
			want:   Request{Scheme: codec.URL, Payload: "a  b c\n"},
		},
		{
			name:   "scheme is case-insensitive",
			tokens: []string{"Base64-URL", "x"},
			want:   Request{Scheme: codec.Base64URL, Payload: "x"},
		},
		{
			name:    "no tokens",
			tokens:  nil,
			wantErr: UsageError{},
		},
		{
			name:    "scheme only",
			tokens:  []string{"base64"},
			wantErr: UsageError{},
		},
		{
			name:    "unknown scheme",
			tokens:  []string{"rot13", "x"},
			wantErr: codec.ErrUnsupportedFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRequest(tt.tokens)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDispatcher_Scenarios(t *testing.T) {
	d := NewDispatcher(nil)

	out, err := d.Encode("base64", "hello")
	require.NoError(t, err)
	require.Equal(t, "aGVsbG8=", out)

	out, err = d.Decode("base64", "aGVsbG8=")
	require.NoError(t, err)
	require.Equal(t, "hello", out)

	out, err = d.Encode("hex", "AB")
	require.NoError(t, err)
	require.Equal(t, "4142", out)

	out, err = d.Decode("hex", "4142")
	require.NoError(t, err)
	require.Equal(t, "AB", out)

	out, err = d.Encode("url", "a b\n")
	require.NoError(t, err)
	require.Equal(t, "a b%0A", out)
}

func TestDispatcher_RoundTrip(t *testing.T) {
	d := NewDispatcher(nil)
	for _, s := range ListSchemes() {
		for _, in := range []string{"hello", "multi word input", "ünïcödé ✓", "line\nbreak\ttab"} {
			enc, err := d.Encode(s.ID, in)
			require.NoError(t, err)
			dec, err := d.Decode(s.ID, enc)
			require.NoError(t, err)
			require.Equal(t, in, dec, s.ID)
		}
	}
}

func TestDispatcher_UnsupportedFormat(t *testing.T) {
	d := NewDispatcher(nil)

	_, err := d.Encode("rot13", "x")
	require.ErrorIs(t, err, codec.ErrUnsupportedFormat)
	require.Contains(t, err.Error(), "rot13")

	_, err = d.Decode("rot13", "x")
	require.ErrorIs(t, err, codec.ErrUnsupportedFormat)
}

func TestDispatcher_DecodeErrors(t *testing.T) {
	d := NewDispatcher(nil)
	cases := []struct{ scheme, in string }{
		{"hex", "zz"},
		{"hex", "abc"},
		{"base64", "not valid base64!!"},
		{"gzip", "notbase64orgzip"},
	}
	for _, c := range cases {
		_, err := d.Decode(c.scheme, c.in)
		var de *codec.DecodeError
		require.True(t, errors.As(err, &de), "%s %q: %v", c.scheme, c.in, err)
	}
}

func TestDispatcher_Run(t *testing.T) {
	d := NewDispatcher(nil)

	res, err := d.Run(Encode, []string{"HEX", "hi", "there"})
	require.NoError(t, err)
	require.Equal(t, Result{
		Command: Encode,
		Scheme:  codec.Hex,
		Input:   "hi there",
		Output:  "6869207468657265",
	}, res)

	_, err = d.Run(Decode, []string{"hex"})
	require.ErrorIs(t, err, UsageError{})

	_, err = d.Run(Command(5), []string{"hex", "41"})
	require.ErrorIs(t, err, ErrUnknownCommand)
}

func TestDispatcher_CustomCodec(t *testing.T) {
	c, err := codec.New(codec.WithMaxDecompressedSize(4))
	require.NoError(t, err)
	d := NewDispatcher(c)

	enc, err := d.Encode("gzip", "too long")
	require.NoError(t, err)

	_, err = d.Decode("gzip", enc)
	require.ErrorIs(t, err, codec.ErrOutputTooLarge)
}

func TestParseCommand(t *testing.T) {
	c, err := ParseCommand("encode")
	require.NoError(t, err)
	require.Equal(t, Encode, c)
	require.Equal(t, "encode", c.String())

	c, err = ParseCommand("decode")
	require.NoError(t, err)
	require.Equal(t, Decode, c)

	_, err = ParseCommand("compress")
	require.ErrorIs(t, err, ErrUnknownCommand)
	require.EqualError(t, err, "unknown command: compress")
}

func TestListSchemes(t *testing.T) {
	require.Equal(t, []SchemeInfo{
		{ID: "base64", Label: "Base64 (standard)"},
		{ID: "base64-url", Label: "Base64 (URL-safe)"},
		{ID: "url", Label: "URL encode"},
		{ID: "hex", Label: "Hex encode"},
		{ID: "gzip", Label: "Gzip compress"},
	}, ListSchemes())
}
