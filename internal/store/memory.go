package store

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/AlexZinkM/chain-wallet/internal/ledger"
	"github.com/AlexZinkM/chain-wallet/internal/model"
)

var (
	// ErrNotFound is returned when a record does not exist
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique field is already taken
	ErrDuplicate = errors.New("duplicate record")
)

// Memory is an in-process store, mostly for tests and throwaway nodes
type Memory struct {
	mu           sync.RWMutex
	wallets      map[string]model.Account
	blocks       []*ledger.Block
	blockHashes  map[string]struct{}
	transactions map[string]ledger.Transaction
	txOrder      []string
}

// NewMemory returns an empty Memory store
func NewMemory() *Memory {
	return &Memory{
		wallets:      make(map[string]model.Account),
		blockHashes:  make(map[string]struct{}),
		transactions: make(map[string]ledger.Transaction),
	}
}

func (m *Memory) SaveBlock(ctx context.Context, block *ledger.Block) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.blockHashes[block.Hash]; ok {
		return ErrDuplicate
	}
	m.blockHashes[block.Hash] = struct{}{}
	m.blocks = append(m.blocks, block)
	return nil
}

func (m *Memory) LoadBlocks(ctx context.Context) ([]*ledger.Block, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.blocks), nil
}

func (m *Memory) SaveTransaction(ctx context.Context, tx ledger.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.transactions[tx.ID]; ok {
		return ErrDuplicate
	}
	m.transactions[tx.ID] = tx
	m.txOrder = append(m.txOrder, tx.ID)
	return nil
}

// LoadTransactions returns every saved transaction in the order it was saved
func (m *Memory) LoadTransactions(ctx context.Context) ([]ledger.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	txs := make([]ledger.Transaction, 0, len(m.txOrder))
	for _, id := range m.txOrder {
		txs = append(txs, m.transactions[id])
	}
	return txs, nil
}

// SaveWallet inserts or replaces a wallet. Email must stay unique.
func (m *Memory) SaveWallet(ctx context.Context, account *model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for number, existing := range m.wallets {
		if number != account.AccountNumber && strings.EqualFold(existing.Email, account.Email) {
			return ErrDuplicate
		}
	}
	m.wallets[account.AccountNumber] = *account
	return nil
}

func (m *Memory) FindWalletByID(ctx context.Context, accountNumber string) (*model.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	account, ok := m.wallets[accountNumber]
	if !ok {
		return nil, ErrNotFound
	}
	return &account, nil
}

func (m *Memory) FindWalletByEmail(ctx context.Context, email string) (*model.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, account := range m.wallets {
		if strings.EqualFold(account.Email, email) {
			return &account, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) UpdateBalance(ctx context.Context, accountNumber string, delta int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.wallets[accountNumber]
	if !ok {
		return ErrNotFound
	}
	account.Balance += delta
	m.wallets[accountNumber] = account
	return nil
}

func (m *Memory) Close() error {
	return nil
}
