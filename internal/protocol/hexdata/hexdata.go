// Package hexdata converts between raw bytes and 0x-prefixed hex text, the
// form call data and suffixes take in transactions and logs.
package hexdata

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrOddLength  = errors.New("hexdata: odd number of hex digits")
	ErrInvalidHex = errors.New("hexdata: invalid hex digit")
)

func Format(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

// Parse accepts hex with or without a 0x prefix. Empty input (or a bare
// prefix) decodes to an empty slice.
func Parse(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: %d digits", ErrOddLength, len(s))
	}
	out, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return out, nil
}
