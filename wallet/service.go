package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/AlexZinkM/chain-wallet/internal/ledger"
	"github.com/AlexZinkM/chain-wallet/internal/model"
	"github.com/AlexZinkM/chain-wallet/internal/store"

	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidPIN          = errors.New("PIN must be a 4-digit number")
	ErrPINNotSet           = errors.New("transaction PIN is not set")
	ErrPINAlreadySet       = errors.New("transaction PIN is already set")
	ErrWeakPassword        = errors.New("password must be at least 8 characters long, contain at least 1 uppercase letter, 1 lowercase letter, and 1 number")
	ErrEmailTaken          = errors.New("an account with this email already exists")
	ErrAccountNotFound     = errors.New("wallet not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrSelfTransfer        = errors.New("sender and receiver must differ")
	ErrMissingField        = errors.New("required field is missing")
)

// Store is the persistence the wallet service needs
type Store interface {
	SaveTransaction(ctx context.Context, tx ledger.Transaction) error
	SaveWallet(ctx context.Context, account *model.Account) error
	FindWalletByID(ctx context.Context, accountNumber string) (*model.Account, error)
	FindWalletByEmail(ctx context.Context, email string) (*model.Account, error)
	UpdateBalance(ctx context.Context, accountNumber string, delta int64) error
}

// Options configures a Service
type Options struct {
	// GrantReward queues a mining reward for the miner on every commit
	GrantReward bool
	Logger      *zap.Logger
}

// Service runs account operations against the ledger and the store
type Service struct {
	store       Store
	ledger      *ledger.Ledger
	grantReward bool
	log         *zap.Logger

	// mu serializes balance check, enqueue and commit
	mu sync.Mutex
}

// NewService creates a Service over an already constructed ledger
func NewService(store Store, l *ledger.Ledger, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:       store,
		ledger:      l,
		grantReward: opts.GrantReward,
		log:         logger,
	}
}

// Ledger returns the ledger the service commits to
func (s *Service) Ledger() *ledger.Ledger {
	return s.ledger
}

// account loads a wallet, mapping the store's not-found error to ErrAccountNotFound
func (s *Service) account(ctx context.Context, accountNumber string) (*model.Account, error) {
	account, err := s.store.FindWalletByID(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}
	return account, nil
}

// Lookup returns the account with the given number
func (s *Service) Lookup(ctx context.Context, accountNumber string) (*model.Account, error) {
	if accountNumber == "" {
		return nil, ErrMissingField
	}
	return s.account(ctx, accountNumber)
}
