package id

import (
	"strings"
	"testing"
)

func TestRandomGenerator_NewID(t *testing.T) {
	t.Parallel()

	gen := NewRandomGenerator()
	first, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	second, _ := gen.NewID()
	if len(first) != 16 || first == second {
		t.Fatalf("unexpected ids: %q %q", first, second)
	}
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in string
		ok bool
	}{
		{in: "abc-123_x.y", ok: true},
		{in: "", ok: false},
		{in: "has space", ok: false},
		{in: "line\nbreak", ok: false},
		{in: strings.Repeat("a", 65), ok: false},
	}
	for _, tc := range tests {
		if _, ok := Sanitize(tc.in); ok != tc.ok {
			t.Fatalf("Sanitize(%q) ok=%t, want %t", tc.in, ok, tc.ok)
		}
	}
}
