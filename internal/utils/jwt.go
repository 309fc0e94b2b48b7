package utils // package utils provides helpers for token creation and hashing

import (
	"crypto/rand" // secure random number generation
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// AccessToken represents a signed JWT access token along with its expiry.
// Scanner devices present it in the Authorization header when calling the
// scan endpoints.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewDeviceToken builds and signs an HS256 JWT for a scanner device.  The
// JWT carries the device ID as subject plus the standard exp and iat
// claims.  The secret must match the one the JWT middleware verifies with.
func NewDeviceToken(secret, deviceID string, ttlMin int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub": deviceID,
		"exp": exp.Unix(),
		"iat": time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// RandomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.  Ticket serials use n=16, which
// gives a 128-bit value with negligible collision probability.
func RandomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
