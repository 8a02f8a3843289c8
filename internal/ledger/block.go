package ledger

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"slices"
	"strconv"
	"strings"
	"time"
)

// checkEvery is how many nonces are tried between context checks
const checkEvery = 1024

// ErrDifficultyRange is returned for a difficulty no hex SHA-256 hash can satisfy
var ErrDifficultyRange = errors.New("difficulty must be at most 64")

// Block is an ordered batch of transactions linked to its predecessor.
// A mined block must not be modified.
type Block struct {
	Transactions []Transaction `json:"transactions"`
	PreviousHash string        `json:"previous_hash"`
	Timestamp    time.Time     `json:"timestamp"`
	Nonce        uint64        `json:"nonce"`
	Hash         string        `json:"hash"`
}

// AssembleBlock creates an unmined block over a copy of txs
func AssembleBlock(txs []Transaction, previousHash string, ts time.Time) *Block {
	block := &Block{
		Transactions: slices.Clone(txs),
		PreviousHash: previousHash,
		Timestamp:    ts.UTC().Round(0),
	}
	block.Hash = block.CalculateHash()
	return block
}

// CalculateHash hashes the transaction hashes in order, the previous hash, the timestamp and the nonce
func (b *Block) CalculateHash() string {
	h := sha256.New()
	for _, tx := range b.Transactions {
		h.Write([]byte(tx.Hash))
		h.Write([]byte{fieldSep})
	}
	h.Write([]byte(b.PreviousHash))
	h.Write([]byte{fieldSep})
	h.Write([]byte(b.Timestamp.UTC().Format(time.RFC3339Nano)))
	h.Write([]byte{fieldSep})
	h.Write(strconv.AppendUint(nil, b.Nonce, 10))
	return hex.EncodeToString(h.Sum(nil))
}

// Mine searches nonces until the hash has difficulty leading zero hex digits.
// It returns the context error if ctx is done first; the block is then left unmined.
func (b *Block) Mine(ctx context.Context, difficulty int) error {
	if difficulty > sha256.Size*2 {
		return ErrDifficultyRange
	}

	for i := 0; !HashMeetsDifficulty(b.Hash, difficulty); i++ {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		b.Nonce++
		b.Hash = b.CalculateHash()
	}

	return nil
}

// Valid reports whether the stored hash is the block's own hash and meets difficulty
func (b *Block) Valid(difficulty int) bool {
	return b.Hash == b.CalculateHash() && HashMeetsDifficulty(b.Hash, difficulty)
}

// HashMeetsDifficulty reports whether hash starts with difficulty '0' characters
func HashMeetsDifficulty(hash string, difficulty int) bool {
	if difficulty <= 0 {
		return true
	}
	if difficulty > len(hash) {
		return false
	}
	return strings.Count(hash[:difficulty], "0") == difficulty
}
