package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// PBKDF2 parameters for account key material.
	//
	// 480k iterations of HMAC-SHA256 is the work factor the stored wallets
	// were created with. Changing it makes every existing wallet undecryptable,
	// since the iteration count is not stored next to the salt.
	kdfIterations = 480_000
	kdfKeyLen     = 32
	saltLen       = 16
	nonceLen      = 12
)

var (
	// ErrEmptySecret is returned when a password or PIN is empty
	ErrEmptySecret = errors.New("secret cannot be empty")
	// ErrAuthentication is returned when key material cannot be opened with the given secret.
	// Wrong secret and corrupted ciphertext are reported the same way.
	ErrAuthentication = errors.New("authentication failed")
)

// EncryptPrivateKey serializes key as PKCS#8 PEM and seals it with a key derived from secret.
// Returns nonce||ciphertext and the freshly generated salt.
// secret must be []byte for security (caller should zero it after use)
func EncryptPrivateKey(key *rsa.PrivateKey, secret []byte) (ciphertext, salt []byte, err error) {
	if key == nil {
		return nil, nil, errors.New("private key is nil")
	}
	if len(secret) == 0 {
		return nil, nil, ErrEmptySecret
	}

	// Generate salt and nonce
	salt = make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	aesGCM, err := newGCM(secret, salt)
	if err != nil {
		return nil, nil, err
	}

	// Serialize private key
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal private key: %w", err)
	}
	defer clear(der)

	plaintext := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	defer clear(plaintext) // wipe plaintext bytes from memory

	// Encrypt, keeping the nonce in front of the sealed data
	ciphertext = aesGCM.Seal(nonce, nonce, plaintext, nil)

	return ciphertext, salt, nil
}

// newGCM derives the symmetric key from secret and salt and wraps it in AES-GCM
func newGCM(secret, salt []byte) (cipher.AEAD, error) {
	// Derive key from secret
	key := pbkdf2.Key(secret, salt, kdfIterations, kdfKeyLen, sha256.New)
	defer clear(key)

	// Create AES cipher
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	// Create GCM
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}
