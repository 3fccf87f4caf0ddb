// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a bcrypt hash from a plaintext password using the
// default cost. The plaintext is never stored or logged.
func HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether plaintext matches the stored bcrypt hash.
// The comparison is one-way: the stored hash is never reversed and the
// plaintext is never compared against stored values directly.
func CheckPassword(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// HashResetToken returns the hex-encoded SHA-256 digest of a raw reset
// token. Only the digest is persisted; the raw value travels to the user
// by email and is compared by re-hashing at consumption time.
func HashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// tempPasswordAlphabets holds one alphabet per mandatory character class of
// the password policy. GenerateTempPassword draws at least one rune from
// each so that generated passwords always satisfy the policy.
var tempPasswordAlphabets = []string{
	"abcdefghijkmnopqrstuvwxyz",
	"ABCDEFGHJKLMNPQRSTUVWXYZ",
	"23456789",
	"!@#$%^&*",
}

const tempPasswordLength = 12

// GenerateTempPassword produces a random temporary password that satisfies
// the password policy (length, lower, upper, digit, symbol). It is used when
// onboarding staff accounts; the account is created with
// MustChangePassword set so the temporary value is rotated on first use.
func GenerateTempPassword() (string, error) {
	all := ""
	for _, a := range tempPasswordAlphabets {
		all += a
	}

	buf := make([]byte, 0, tempPasswordLength)

	// one guaranteed rune per character class
	for _, alphabet := range tempPasswordAlphabets {
		c, err := randomRune(alphabet)
		if err != nil {
			return "", err
		}
		buf = append(buf, c)
	}

	for len(buf) < tempPasswordLength {
		c, err := randomRune(all)
		if err != nil {
			return "", err
		}
		buf = append(buf, c)
	}

	// shuffle so class-guaranteed runes are not always in front
	for i := len(buf) - 1; i > 0; i-- {
		j, err := randomInt(i + 1)
		if err != nil {
			return "", err
		}
		buf[i], buf[j] = buf[j], buf[i]
	}

	return string(buf), nil
}

func randomRune(alphabet string) (byte, error) {
	i, err := randomInt(len(alphabet))
	if err != nil {
		return 0, err
	}
	return alphabet[i], nil
}

func randomInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("error generating random value: %w", err)
	}
	return int(v.Int64()), nil
}
