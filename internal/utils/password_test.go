package utils

import (
	"strings"
	"testing"
	"unicode"
)

func TestHashPassword_AndCheck(t *testing.T) {
	hash, err := HashPassword("Sup3r$ecret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "" {
		t.Fatal("expected non-empty hash")
	}
	if hash == "Sup3r$ecret" {
		t.Fatal("hash must not equal plaintext")
	}

	if !CheckPassword(hash, "Sup3r$ecret") {
		t.Error("expected matching password to verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("expected non-matching password to fail")
	}
}

func TestCheckPassword_InvalidHash(t *testing.T) {
	if CheckPassword("not-a-bcrypt-hash", "anything") {
		t.Error("expected malformed hash to fail verification")
	}
}

func TestHashResetToken(t *testing.T) {
	first := HashResetToken("raw-token")
	second := HashResetToken("raw-token")
	other := HashResetToken("different")

	if first != second {
		t.Error("expected deterministic digest for same input")
	}
	if first == other {
		t.Error("expected different digests for different inputs")
	}
	if len(first) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(first))
	}
}

func TestGenerateTempPassword_SatisfiesPolicy(t *testing.T) {
	for i := 0; i < 20; i++ {
		pw, err := GenerateTempPassword()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(pw) != tempPasswordLength {
			t.Fatalf("expected length %d, got %d", tempPasswordLength, len(pw))
		}

		var hasLower, hasUpper, hasDigit, hasSymbol bool
		for _, r := range pw {
			switch {
			case unicode.IsLower(r):
				hasLower = true
			case unicode.IsUpper(r):
				hasUpper = true
			case unicode.IsDigit(r):
				hasDigit = true
			case strings.ContainsRune("!@#$%^&*", r):
				hasSymbol = true
			}
		}

		if !hasLower || !hasUpper || !hasDigit || !hasSymbol {
			t.Fatalf("generated password %q misses a required character class", pw)
		}
	}
}

func TestGenerateTempPassword_Unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		pw, err := GenerateTempPassword()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[pw] {
			t.Fatalf("generated duplicate password %q", pw)
		}
		seen[pw] = true
	}
}
