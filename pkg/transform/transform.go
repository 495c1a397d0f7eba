// Package transform routes encode and decode requests to the codec registry.
package transform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/birdayz/transcode/pkg/codec"
)

// Command selects which half of a scheme's codec runs.
type Command int

const (
	Encode Command = iota
	Decode
)

// ErrUnknownCommand is returned by ParseCommand for names other than
// "encode" and "decode".
var ErrUnknownCommand = errors.New("unknown command")

func (c Command) String() string {
	switch c {
	case Encode:
		return "encode"
	case Decode:
		return "decode"
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// ParseCommand resolves a command name.
func ParseCommand(name string) (Command, error) {
	switch name {
	case "encode":
		return Encode, nil
	case "decode":
		return Decode, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
}

// UsageError is returned when a request has fewer than two tokens.
type UsageError struct{}

func (UsageError) Error() string {
	return "usage: <format> <text>"
}

// Request is a parsed scheme and payload.
type Request struct {
	Scheme  codec.Scheme
	Payload string
}

// ParseRequest builds a Request from raw tokens: the first token names the
// scheme (case-insensitive), the rest are joined with single spaces.
func ParseRequest(tokens []string) (Request, error) {
	if len(tokens) < 2 {
		return Request{}, UsageError{}
	}
	s, err := codec.ParseScheme(strings.ToLower(tokens[0]))
	if err != nil {
		return Request{}, err
	}
	return Request{
		Scheme:  s,
		Payload: strings.Join(tokens[1:], " "),
	}, nil
}

// Result is the outcome of one successful request.
type Result struct {
	Command Command
	Scheme  codec.Scheme
	Input   string
	Output  string
}

// Dispatcher executes requests against a Codec. It holds no per-request state
// and may be shared between goroutines.
type Dispatcher struct {
	codec *codec.Codec
}

// NewDispatcher returns a Dispatcher backed by c, or codec.Default when c is
// nil.
func NewDispatcher(c *codec.Codec) *Dispatcher {
	if c == nil {
		c = codec.Default
	}
	return &Dispatcher{codec: c}
}

// Run parses tokens and executes cmd.
func (d *Dispatcher) Run(cmd Command, tokens []string) (Result, error) {
	req, err := ParseRequest(tokens)
	if err != nil {
		return Result{}, err
	}
	return d.Do(cmd, req)
}

// Do executes cmd for an already parsed request.
func (d *Dispatcher) Do(cmd Command, req Request) (Result, error) {
	res := Result{
		Command: cmd,
		Scheme:  req.Scheme,
		Input:   req.Payload,
	}
	switch cmd {
	case Encode:
		res.Output = d.codec.Encode(req.Scheme, req.Payload)
	case Decode:
		out, err := d.codec.Decode(req.Scheme, req.Payload)
		if err != nil {
			return Result{}, err
		}
		res.Output = out
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
	return res, nil
}

// Encode encodes payload with the named scheme.
func (d *Dispatcher) Encode(name, payload string) (string, error) {
	return d.named(Encode, name, payload)
}

// Decode decodes payload with the named scheme.
func (d *Dispatcher) Decode(name, payload string) (string, error) {
	return d.named(Decode, name, payload)
}

func (d *Dispatcher) named(cmd Command, name, payload string) (string, error) {
	s, err := codec.ParseScheme(name)
	if err != nil {
		return "", err
	}
	res, err := d.Do(cmd, Request{Scheme: s, Payload: payload})
	if err != nil {
		return "", err
	}
	return res.Output, nil
}

// SchemeInfo is one row of ListSchemes.
type SchemeInfo struct {
	ID    string
	Label string
}

// ListSchemes returns the supported schemes in display order.
func ListSchemes() []SchemeInfo {
	entries := codec.Entries()
	out := make([]SchemeInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, SchemeInfo{ID: e.ID, Label: e.Label})
	}
	return out
}
