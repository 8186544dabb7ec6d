package suffix

import (
	"bytes"
	"errors"
	"fmt"
)

const (
	MarkerLen        = 16
	MaxIdentifierLen = 255
	// OverheadLen is the length byte, the schema byte and the marker.
	OverheadLen = 1 + 1 + MarkerLen
)

// Schema selects how the identifier bytes of a trailer are interpreted.
type Schema byte

const (
	SchemaCanonicalRegistry Schema = 0x00
)

func (s Schema) Supported() bool {
	return s == SchemaCanonicalRegistry
}

func (s Schema) String() string {
	switch s {
	case SchemaCanonicalRegistry:
		return "canonical-code-registry"
	default:
		return fmt.Sprintf("schema(0x%02x)", byte(s))
	}
}

// Marker tags the tail of a buffer as ending in an attribution trailer.
var Marker = [MarkerLen]byte{
	0x80, 0x21, 0x80, 0x21, 0x80, 0x21, 0x80, 0x21,
	0x80, 0x21, 0x80, 0x21, 0x80, 0x21, 0x80, 0x21,
}

// Trailer is the encoded block appended to a payload:
// [identifier][len][schema][marker].
type Trailer []byte

// Attribution is what a trailer decodes to.
type Attribution struct {
	Code   string
	Schema Schema
}

// EncodeIdentifier builds the trailer for code under the canonical registry
// schema. Every character must fit in one byte.
func EncodeIdentifier(code string) (Trailer, error) {
	ident := make([]byte, 0, len(code))
	for i, r := range code {
		if r > 0xFF {
			return nil, fmt.Errorf("%w: %q at offset %d", ErrIdentifierNotByteSafe, r, i)
		}
		ident = append(ident, byte(r))
	}
	n := len(ident)
	if n > MaxIdentifierLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrIdentifierTooLong, n)
	}

	out := make(Trailer, 0, n+OverheadLen)
	out = append(out, ident...)
	out = append(out, byte(n), byte(SchemaCanonicalRegistry))
	out = append(out, Marker[:]...)
	return out, nil
}

// Combine returns payload followed by t in a new buffer.
func Combine(payload []byte, t Trailer) []byte {
	out := make([]byte, len(payload)+len(t))
	copy(out, payload)
	copy(out[len(payload):], t)
	return out
}

// HasMarker reports whether buf ends in the marker.
func HasMarker(buf []byte) bool {
	return len(buf) >= MarkerLen && bytes.Equal(buf[len(buf)-MarkerLen:], Marker[:])
}

// ExtractTrailer reads a trailer from the end of buf. On success it returns
// the attribution and the payload bytes that preceded the trailer; the
// payload slice aliases buf.
func ExtractTrailer(buf []byte) (Attribution, []byte, error) {
	if len(buf) < OverheadLen {
		return Attribution{}, nil, ErrTooShort
	}
	if !HasMarker(buf) {
		return Attribution{}, nil, ErrMarkerMismatch
	}

	end := len(buf) - MarkerLen
	schema := Schema(buf[end-1])
	if !schema.Supported() {
		return Attribution{}, nil, fmt.Errorf("%w: 0x%02x", ErrUnsupportedSchema, byte(schema))
	}

	n := int(buf[end-2])
	identEnd := end - 2
	if identEnd < n {
		return Attribution{}, nil, fmt.Errorf("%w: identifier wants %d bytes, have %d", ErrTooShort, n, identEnd)
	}

	ident := buf[identEnd-n : identEnd]
	runes := make([]rune, n)
	for i, b := range ident {
		runes[i] = rune(b)
	}

	return Attribution{Code: string(runes), Schema: schema}, buf[:identEnd-n], nil
}

// IsAbsent reports whether err means buf simply carries no trailer.
func IsAbsent(err error) bool {
	return errors.Is(err, ErrTooShort) || errors.Is(err, ErrMarkerMismatch)
}
