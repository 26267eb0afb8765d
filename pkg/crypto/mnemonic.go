package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"

	"golang.org/x/crypto/scrypt"
)

const (
	saltSize = 16

	// scrypt cost parameters
	scryptN = 32768
	scryptR = 8
	scryptP = 1
)

var (
	ErrInvalidKey        = errors.New("encryption key must be a hex string of at least 16 bytes")
	ErrMalformedenvelope = errors.New("malformed sealed envelope")
)

// MnemonicSealer encrypts mnemonics for at-rest storage. Each Seal derives a
// fresh AES-256 key from the configured secret via scrypt with a random salt,
// so identical mnemonics never produce identical envelopes.
type MnemonicSealer struct {
	secret []byte
}

// NewMnemonicSealer creates a sealer from a hex-encoded secret.
func NewMnemonicSealer(secretHex string) (*MnemonicSealer, error) {
	secret, err := hex.DecodeString(secretHex)
	if err != nil || len(secret) < 16 {
		return nil, ErrInvalidKey
	}
	return &MnemonicSealer{secret: secret}, nil
}

// Seal encrypts plaintext and returns a hex envelope: salt | nonce | ciphertext.
func (s *MnemonicSealer) Seal(plaintext string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}

	gcm, err := s.aead(salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := gcm.Seal(nil, nonce, []byte(plaintext), nil)

	out := make([]byte, 0, len(salt)+len(nonce)+len(sealed))
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, sealed...)
	return hex.EncodeToString(out), nil
}

// Open decrypts an envelope produced by Seal.
func (s *MnemonicSealer) Open(envelopeHex string) (string, error) {
	raw, err := hex.DecodeString(envelopeHex)
	if err != nil {
		return "", ErrMalformedenvelope
	}
	if len(raw) < saltSize {
		return "", ErrMalformedenvelope
	}

	salt := raw[:saltSize]
	gcm, err := s.aead(salt)
	if err != nil {
		return "", err
	}

	if len(raw) < saltSize+gcm.NonceSize() {
		return "", ErrMalformedenvelope
	}
	nonce := raw[saltSize : saltSize+gcm.NonceSize()]
	ciphertext := raw[saltSize+gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

func (s *MnemonicSealer) aead(salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(s.secret, salt, scryptN, scryptR, scryptP, 32)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
