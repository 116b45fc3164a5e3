package core

import (
	"crypto/rand"
	"encoding/hex"
)

// tokenBytes is the amount of randomness read for each ownership token.
// 18 bytes is 144 bits of entropy, clearing the "at least 128 bits" floor
// with margin; a v4 UUID (122 random bits) would not, which is why
// GenerateToken does not reuse github.com/google/uuid.
const tokenBytes = 18

// GenerateToken returns a fresh, globally unique ownership token. Called
// once per acquisition attempt; never reused across attempts, even by the
// same Lock.
func GenerateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
