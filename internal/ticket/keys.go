// Package ticket issues signed single-leg travel tickets and verifies their
// signatures.
package ticket

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
)

// KeyPair holds the RSA key material used to sign and verify tickets.  It
// is loaded once at startup and is immutable afterwards, so it can be
// shared between request handlers without synchronization.
type KeyPair struct {
	Private *rsa.PrivateKey
	Public  *rsa.PublicKey
}

// LoadKeyPair reads a PEM-encoded RSA private key and public key from the
// given file paths.  Both PKCS#1 and PKCS#8 private key encodings are
// accepted; the public key must be in PKIX (SubjectPublicKeyInfo) form.
func LoadKeyPair(privatePath, publicPath string) (*KeyPair, error) {
	privPEM, err := os.ReadFile(privatePath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	priv, err := parsePrivateKey(privPEM)
	if err != nil {
		return nil, err
	}
	pubPEM, err := os.ReadFile(publicPath)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}
	pub, err := parsePublicKey(pubPEM)
	if err != nil {
		return nil, err
	}
	return &KeyPair{Private: priv, Public: pub}, nil
}

func parsePrivateKey(pemBytes []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("private key: no PEM block found")
	}
	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("private key: not an RSA key")
	}
	return key, nil
}

func parsePublicKey(pemBytes []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("public key: no PEM block found")
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key: not an RSA key")
	}
	return key, nil
}

// PublicPEM returns the public key as PEM-encoded PKIX text, suitable for
// handing to clients that verify tickets offline.
func (k *KeyPair) PublicPEM() (string, error) {
	der, err := x509.MarshalPKIXPublicKey(k.Public)
	if err != nil {
		return "", err
	}
	block := &pem.Block{Type: "PUBLIC KEY", Bytes: der}
	return string(pem.EncodeToMemory(block)), nil
}

// Sign computes the RSA PKCS#1 v1.5 / SHA-256 signature over the canonical
// encoding of the payload and returns it base64-encoded.
func (k *KeyPair) Sign(payload map[string]any) (string, error) {
	encoded, err := CanonicalEncode(payload)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(encoded)
	sig, err := rsa.SignPKCS1v15(rand.Reader, k.Private, crypto.SHA256, sum[:])
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}

// Verify re-derives the canonical encoding of the supplied payload and
// checks the base64 signature against the public key.  The outcome is a
// boolean: a signature that fails to decode, or a payload whose canonical
// bytes differ in any way from the signed ones, verifies as false.
func (k *KeyPair) Verify(payload map[string]any, signature string) bool {
	encoded, err := CanonicalEncode(payload)
	if err != nil {
		return false
	}
	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	sum := sha256.Sum256(encoded)
	return rsa.VerifyPKCS1v15(k.Public, crypto.SHA256, sum[:], sig) == nil
}
