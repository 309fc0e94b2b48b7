package utils

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// HashSecret returns the bcrypt hash of a device secret using the given cost.
func HashSecret(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifySecret safely compares a bcrypt hash and a plain device secret.
func VerifySecret(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// BindDigest returns the SHA-256 hex digest binding a user-supplied
// identifier to a ticket serial.  The digest ties an issued ticket to the
// purchaser without storing the identifier anywhere.
func BindDigest(userID, serial string) string {
	sum := sha256.Sum256([]byte(userID + serial))
	return hex.EncodeToString(sum[:])
}
