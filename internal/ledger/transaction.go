package ledger

import (
	"crypto/rsa"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/AlexZinkM/chain-wallet/internal/crypto"

	"github.com/google/uuid"
)

// SchemaV1 is the canonical field set (id, sender, receiver, amount, timestamp, memo).
// A new field means a new version; old transactions keep hashing under the version they carry.
const SchemaV1 = 1

const fieldSep = 0x1f

// ErrNegativeAmount is returned when a transaction amount is below zero
var ErrNegativeAmount = errors.New("amount cannot be negative")

// Transaction is an immutable transfer between two accounts.
// Amount is in minor units.
type Transaction struct {
	ID            string    `json:"txn_id"`
	SchemaVersion int       `json:"schema_version"`
	Sender        string    `json:"sender_account"`
	Receiver      string    `json:"receiver_account"`
	Amount        int64     `json:"amount"`
	Memo          string    `json:"description"`
	Timestamp     time.Time `json:"timestamp"`
	Hash          string    `json:"tx_hash"`
	Signature     []byte    `json:"signature,omitempty"`
}

// NewTransaction builds a transaction stamped with the current time.
// The content hash is signed only when key is not nil.
func NewTransaction(sender, receiver string, amount int64, memo string, key *rsa.PrivateKey) (Transaction, error) {
	if amount < 0 {
		return Transaction{}, ErrNegativeAmount
	}

	tx := Transaction{
		ID:            uuid.NewString(),
		SchemaVersion: SchemaV1,
		Sender:        sender,
		Receiver:      receiver,
		Amount:        amount,
		Memo:          memo,
		Timestamp:     time.Now().UTC().Round(0),
	}

	hash, err := tx.CalculateHash()
	if err != nil {
		return Transaction{}, err
	}
	tx.Hash = hash

	if key != nil {
		sig, err := crypto.Sign(key, []byte(tx.Hash))
		if err != nil {
			return Transaction{}, fmt.Errorf("failed to sign transaction: %w", err)
		}
		tx.Signature = sig
	}

	return tx, nil
}

// CalculateHash computes the content hash under the transaction's schema version
func (tx Transaction) CalculateHash() (string, error) {
	switch tx.SchemaVersion {
	case SchemaV1:
		h := sha256.New()
		for i, field := range []string{
			"v1",
			tx.ID,
			tx.Sender,
			tx.Receiver,
			strconv.FormatInt(tx.Amount, 10),
			tx.Timestamp.UTC().Format(time.RFC3339Nano),
			tx.Memo,
		} {
			if i > 0 {
				h.Write([]byte{fieldSep})
			}
			h.Write([]byte(field))
		}
		return hex.EncodeToString(h.Sum(nil)), nil
	default:
		return "", fmt.Errorf("unsupported transaction schema version %d", tx.SchemaVersion)
	}
}

// VerifyHash reports whether the stored hash matches the transaction fields
func (tx Transaction) VerifyHash() bool {
	hash, err := tx.CalculateHash()
	return err == nil && hash == tx.Hash
}

// VerifySignature reports whether the transaction carries a valid signature by pub
func (tx Transaction) VerifySignature(pub *rsa.PublicKey) bool {
	return tx.VerifyHash() && crypto.Verify(pub, []byte(tx.Hash), tx.Signature)
}

// Involves reports whether account is the sender or the receiver
func (tx Transaction) Involves(account string) bool {
	return tx.Sender == account || tx.Receiver == account
}
