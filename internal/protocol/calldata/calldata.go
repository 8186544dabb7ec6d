// Package calldata encodes the contract calls that get attributed. It only
// covers the single-address argument shape the mint flow needs.
package calldata

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

const (
	SelectorLen = 4
	WordLen     = 32
	AddressLen  = 20

	SafeMintSignature = "safeMint(address)"
)

var ErrInvalidAddress = errors.New("calldata: invalid address")

type Address [AddressLen]byte

// ParseAddress accepts 0x followed by exactly 40 hex digits. Checksum casing
// is not verified.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return Address{}, fmt.Errorf("%w: missing 0x prefix", ErrInvalidAddress)
	}
	s = s[2:]
	if len(s) != AddressLen*2 {
		return Address{}, fmt.Errorf("%w: want %d hex digits, got %d", ErrInvalidAddress, AddressLen*2, len(s))
	}
	var a Address
	if _, err := hex.Decode(a[:], []byte(s)); err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	return a, nil
}

func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (a Address) IsZero() bool {
	return a == Address{}
}

// Selector returns the first four bytes of keccak256(signature).
func Selector(signature string) [SelectorLen]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(signature))
	var sel [SelectorLen]byte
	copy(sel[:], h.Sum(nil))
	return sel
}

// EncodeAddressCall encodes a call to a function taking one address.
func EncodeAddressCall(signature string, to Address) []byte {
	sel := Selector(signature)
	out := make([]byte, SelectorLen+WordLen)
	copy(out, sel[:])
	copy(out[SelectorLen+WordLen-AddressLen:], to[:])
	return out
}

func SafeMint(to Address) []byte {
	return EncodeAddressCall(SafeMintSignature, to)
}
