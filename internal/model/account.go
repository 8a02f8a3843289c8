package model

import "time"

// EncryptedKey is a private key sealed under a password or PIN derived key
type EncryptedKey struct {
	Ciphertext []byte `json:"encrypted_private_key"` // nonce||ciphertext (stored as base64 in JSON)
	Salt       []byte `json:"salt"`
}

// Empty reports whether no key material is set
func (k EncryptedKey) Empty() bool {
	return len(k.Ciphertext) == 0 || len(k.Salt) == 0
}

// Account represents a stored wallet
type Account struct {
	AccountNumber string    `json:"account_number"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	Balance       int64     `json:"balance"` // minor units
	CreatedAt     time.Time `json:"created_at"`

	// WalletKey is unlocked by the account password
	WalletKey EncryptedKey `json:"wallet_key"`
	PublicKey string       `json:"public_key"`

	// PINKey is unlocked by the transaction PIN and signs transfers only
	HasSetPIN    bool         `json:"has_set_pin"`
	PINKey       EncryptedKey `json:"pin_key"`
	PINPublicKey string       `json:"pin_public_key,omitempty"`
}

// FullName returns first and last name joined by a space
func (a *Account) FullName() string {
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}
