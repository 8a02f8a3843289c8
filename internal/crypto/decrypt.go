package crypto

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
)

// DecryptPrivateKey opens key material produced by EncryptPrivateKey.
// Any failure past argument checks is reported as ErrAuthentication, so a caller
// cannot tell a wrong secret from damaged data.
// secret must be []byte for security (caller should zero it after use)
func DecryptPrivateKey(ciphertext, secret, salt []byte) (*rsa.PrivateKey, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	if len(salt) == 0 {
		return nil, errors.New("salt cannot be empty")
	}

	aesGCM, err := newGCM(secret, salt)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < nonceLen+aesGCM.Overhead() {
		return nil, ErrAuthentication
	}
	nonce, sealed := ciphertext[:nonceLen], ciphertext[nonceLen:]

	// Decrypt
	plaintext, err := aesGCM.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrAuthentication
	}
	defer clear(plaintext) // wipe decrypted bytes from memory

	block, _ := pem.Decode(plaintext)
	if block == nil {
		return nil, ErrAuthentication
	}
	defer clear(block.Bytes)

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, ErrAuthentication
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, ErrAuthentication
	}

	return key, nil
}
