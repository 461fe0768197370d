package encryption

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// ErrMalformedCiphertext is returned when a stored value cannot be decoded
var ErrMalformedCiphertext = errors.New("malformed ciphertext")

// Service encrypts secrets at rest with XChaCha20-Poly1305.
// Ciphertexts are base64(nonce || sealed).
type Service struct {
	aead cipher.AEAD
}

// NewService creates an encryption service. key is either 64 hex characters
// or an arbitrary passphrase that is hashed down to a 256-bit key.
func NewService(key string) (*Service, error) {
	if key == "" {
		return nil, errors.New("encryption key is required")
	}

	raw, err := hex.DecodeString(key)
	if err != nil || len(raw) != chacha20poly1305.KeySize {
		sum := sha256.Sum256([]byte(key))
		raw = sum[:]
	}

	aead, err := chacha20poly1305.NewX(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	return &Service{aead: aead}, nil
}

// Encrypt seals plaintext. Empty input stays empty so unset fields round-trip.
func (s *Service) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(plaintext)+s.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a value produced by Encrypt
func (s *Service) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}

	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedCiphertext, err)
	}
	if len(data) < s.aead.NonceSize() {
		return "", ErrMalformedCiphertext
	}

	nonce, sealed := data[:s.aead.NonceSize()], data[s.aead.NonceSize():]
	plaintext, err := s.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt: %w", err)
	}
	return string(plaintext), nil
}
