package codec

import "strings"

const upperHex = "0123456789ABCDEF"

// inControls reports whether b belongs to the percent-encode set: C0 controls,
// DEL and every byte outside ASCII.
func inControls(b byte) bool {
	return b < 0x20 || b >= 0x7f
}

func percentEncode(in string) string {
	n := 0
	for i := 0; i < len(in); i++ {
		if inControls(in[i]) {
			n++
		}
	}
	if n == 0 {
		return in
	}

	var sb strings.Builder
	sb.Grow(len(in) + 2*n)
	for i := 0; i < len(in); i++ {
		b := in[i]
		if !inControls(b) {
			sb.WriteByte(b)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperHex[b>>4])
		sb.WriteByte(upperHex[b&0x0f])
	}
	return sb.String()
}

// percentDecode replaces every %XX sequence with its byte. Malformed sequences
// are copied through unchanged, so it never fails.
func percentDecode(in string) []byte {
	out := make([]byte, 0, len(in))
	for i := 0; i < len(in); i++ {
		if in[i] == '%' && i+2 < len(in) {
			hi, ok1 := unhex(in[i+1])
			lo, ok2 := unhex(in[i+2])
			if ok1 && ok2 {
				out = append(out, hi<<4|lo)
				i += 2
				continue
			}
		}
		out = append(out, in[i])
	}
	return out
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
