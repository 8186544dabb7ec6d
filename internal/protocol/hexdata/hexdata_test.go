package hexdata

import (
	"bytes"
	"errors"
	"testing"
)

func TestFormatParse(t *testing.T) {
	in := []byte{0xde, 0xad, 0xbe, 0xef}
	s := Format(in)
	if s != "0xdeadbeef" {
		t.Fatalf("unexpected format: %s", s)
	}
	out, err := Parse(s)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !bytes.Equal(out, in) {
		t.Fatalf("round-trip mismatch: %x", out)
	}
}

func TestParseAcceptsPrefixVariants(t *testing.T) {
	for _, raw := range []string{"DEADBEEF", "0XdeadBEEF", "  0xdeadbeef\n"} {
		out, err := Parse(raw)
		if err != nil {
			t.Fatalf("%q: %v", raw, err)
		}
		if !bytes.Equal(out, []byte{0xde, 0xad, 0xbe, 0xef}) {
			t.Fatalf("%q: got %x", raw, out)
		}
	}
}

func TestParseEmpty(t *testing.T) {
	for _, raw := range []string{"", "0x"} {
		out, err := Parse(raw)
		if err != nil {
			t.Fatalf("%q: %v", raw, err)
		}
		if len(out) != 0 {
			t.Fatalf("%q: expected empty, got %x", raw, out)
		}
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse("0xabc"); !errors.Is(err, ErrOddLength) {
		t.Fatalf("expected ErrOddLength, got %v", err)
	}
	if _, err := Parse("0xzz"); !errors.Is(err, ErrInvalidHex) {
		t.Fatalf("expected ErrInvalidHex, got %v", err)
	}
}
