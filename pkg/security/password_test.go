package security

import (
	"strings"
	"testing"
)

func TestHashPasswordSaltsEachCall(t *testing.T) {
	h1, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ")
	}
	if !CheckPasswordHash("correct horse battery", h1) {
		t.Error("first hash did not verify")
	}
	if !CheckPasswordHash("correct horse battery", h2) {
		t.Error("second hash did not verify")
	}
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if CheckPasswordHash("wrong", hash) {
		t.Error("wrong password verified")
	}
	if CheckPasswordHash("", hash) {
		t.Error("empty password verified")
	}
	if CheckPasswordHash("secret123", "") {
		t.Error("empty hash verified")
	}
	if CheckPasswordHash("secret123", "not-a-bcrypt-hash") {
		t.Error("malformed hash verified")
	}
}

func TestGenerateTemporaryPasswordMinimumLength(t *testing.T) {
	pw, err := GenerateTemporaryPassword(6)
	if err != nil {
		t.Fatalf("GenerateTemporaryPassword: %v", err)
	}
	if len(pw) != 12 {
		t.Errorf("length %d below the floor should be raised to 12, got %d", 6, len(pw))
	}

	pw, err = GenerateTemporaryPassword(20)
	if err != nil {
		t.Fatalf("GenerateTemporaryPassword: %v", err)
	}
	if len(pw) != 20 {
		t.Errorf("expected length 20, got %d", len(pw))
	}

	const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789" + passwordSymbols
	for _, r := range pw {
		if !strings.ContainsRune(alphabet, r) {
			t.Errorf("unexpected character %q in generated password", r)
		}
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	cases := []struct {
		name      string
		candidate string
		ok        bool
		reason    string
	}{
		{"too short", "Ab1!", false, "password must be at least 8 characters long"},
		{"no lowercase", "ABCDEF1!", false, "password must contain a lowercase letter"},
		{"no uppercase", "abcdef1!", false, "password must contain an uppercase letter"},
		{"no digit", "Abcdefg!", false, "password must contain a digit"},
		{"no symbol", "Abcdefg1", false, ""},
		{"valid", "Abcdef1!", true, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, reason := ValidatePasswordStrength(tc.candidate)
			if ok != tc.ok {
				t.Fatalf("got ok=%v reason=%q, want ok=%v", ok, reason, tc.ok)
			}
			if tc.reason != "" && reason != tc.reason {
				t.Errorf("got reason %q, want %q", reason, tc.reason)
			}
			if tc.ok && reason != "" {
				t.Errorf("valid password returned reason %q", reason)
			}
		})
	}
}
