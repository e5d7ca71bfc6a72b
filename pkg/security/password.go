package security

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const passwordSymbols = "!@#$%^&*()-_=+[]{};:,.<>?"

// HashPassword hashes a password using bcrypt. bcrypt salts internally, so
// hashing the same input twice yields different hashes.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with a hash. Malformed hashes and
// empty input report false rather than an error.
func CheckPasswordHash(password, hash string) bool {
	if password == "" || hash == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateTemporaryPassword returns a random password drawn from letters,
// digits and symbols. Lengths below 12 are raised to 12.
func GenerateTemporaryPassword(length int) (string, error) {
	if length < 12 {
		length = 12
	}
	const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789" + passwordSymbols

	var sb strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		sb.WriteByte(alphabet[n.Int64()])
	}
	return sb.String(), nil
}

// ValidatePasswordStrength checks a candidate password against the policy
// and returns the first failing reason.
func ValidatePasswordStrength(candidate string) (bool, string) {
	if len(candidate) < 8 {
		return false, "password must be at least 8 characters long"
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range candidate {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	if !hasLower {
		return false, "password must contain a lowercase letter"
	}
	if !hasUpper {
		return false, "password must contain an uppercase letter"
	}
	if !hasDigit {
		return false, "password must contain a digit"
	}
	if !hasSymbol {
		return false, "password must contain a symbol (" + passwordSymbols + ")"
	}
	return true, ""
}
