package codec

import (
	"fmt"
	"strings"
)

// Scheme identifies one of the supported text encodings.
type Scheme int

const (
	Base64 Scheme = iota
	Base64URL
	URL
	Hex
	Gzip
)

// Entry describes a scheme for listings and completion.
type Entry struct {
	Scheme Scheme
	ID     string
	Label  string
}

var entries = [...]Entry{
	{Scheme: Base64, ID: "base64", Label: "Base64 (standard)"},
	{Scheme: Base64URL, ID: "base64-url", Label: "Base64 (URL-safe)"},
	{Scheme: URL, ID: "url", Label: "URL encode"},
	{Scheme: Hex, ID: "hex", Label: "Hex encode"},
	{Scheme: Gzip, ID: "gzip", Label: "Gzip compress"},
}

// Entries returns all schemes in display order.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries[:])
	return out
}

// ParseScheme resolves a scheme identifier. Matching is exact; callers lowercase
// user input first.
func ParseScheme(name string) (Scheme, error) {
	for _, e := range entries {
		if e.ID == name {
			return e.Scheme, nil
		}
	}
	return 0, &UnsupportedFormatError{Name: name}
}

func (s Scheme) valid() bool {
	return s >= Base64 && s <= Gzip
}

// String returns the scheme identifier, e.g. "base64-url".
func (s Scheme) String() string {
	if !s.valid() {
		return fmt.Sprintf("Scheme(%d)", int(s))
	}
	return entries[s].ID
}

// Label returns the human readable name of the scheme.
func (s Scheme) Label() string {
	if !s.valid() {
		return s.String()
	}
	return entries[s].Label
}

// IDs returns the identifiers of all schemes, joined for help texts.
func IDs() string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return strings.Join(ids, ", ")
}
