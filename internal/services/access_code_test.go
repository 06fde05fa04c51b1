package services

import (
	"strconv"
	"testing"
)

func TestGenerateAccessCode(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 1000; i++ {
		code := GenerateAccessCode()

		if len(code) != accessCodeLength {
			t.Fatalf("expected code length %d, got %d (%q)", accessCodeLength, len(code), code)
		}
		for _, ch := range code {
			if ch < '0' || ch > '9' {
				t.Fatalf("code %q contains non-digit %q", code, ch)
			}
		}
		n, err := strconv.Atoi(code)
		if err != nil || n < accessCodeMin || n >= accessCodeMin+accessCodeSpan {
			t.Fatalf("code %q outside [100000, 999999]", code)
		}
		seen[code] = true
	}

	// With 900000 possible codes, 1000 draws should be nearly all distinct.
	if len(seen) < 990 {
		t.Errorf("expected near-unique codes, got %d distinct out of 1000", len(seen))
	}
}

func TestAccessCodeNeverStartsWithZero(t *testing.T) {
	for i := 0; i < 1000; i++ {
		if code := GenerateAccessCode(); code[0] == '0' {
			t.Fatalf("code %q has a leading zero", code)
		}
	}
}
