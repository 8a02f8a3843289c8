package wallet

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/AlexZinkM/chain-wallet/internal/crypto"
	"github.com/AlexZinkM/chain-wallet/internal/ledger"
	"github.com/AlexZinkM/chain-wallet/internal/model"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// TransferParams describes a transfer between two accounts
type TransferParams struct {
	Sender   string
	Receiver string
	Amount   int64
	Memo     string
	PIN      []byte
}

// Receipt identifies a committed transaction and the block holding it
type Receipt struct {
	Transaction ledger.Transaction
	BlockHash   string
	Time        time.Time
}

// Transfer moves Amount from Sender to Receiver, signed with the sender's PIN key,
// and mines it into a block before returning.
func (s *Service) Transfer(ctx context.Context, p TransferParams) (*Receipt, error) {
	if p.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if p.Sender == p.Receiver {
		return nil, ErrSelfTransfer
	}
	sender, err := s.account(ctx, p.Sender)
	if err != nil {
		return nil, err
	}
	if _, err := s.account(ctx, p.Receiver); err != nil {
		return nil, err
	}
	if !sender.HasSetPIN {
		return nil, ErrPINNotSet
	}
	key, err := unlock(sender.PINKey, p.PIN)
	if err != nil {
		return nil, err
	}

	return s.submit(ctx, key, p.Sender, p.Receiver, p.Amount, p.Memo, p.Sender)
}

// Credit issues amount from the system account to accountNumber.
// The transaction is signed with the account's wallet key, unlocked by password.
func (s *Service) Credit(ctx context.Context, accountNumber string, amount int64, memo string, password []byte) (*Receipt, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	account, err := s.account(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	key, err := unlock(account.WalletKey, password)
	if err != nil {
		return nil, err
	}

	return s.submit(ctx, key, ledger.SystemAccount, accountNumber, amount, memo, ledger.SystemAccount)
}

// Debit returns amount from accountNumber to the system account
func (s *Service) Debit(ctx context.Context, accountNumber string, amount int64, memo string, password []byte) (*Receipt, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	account, err := s.account(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	key, err := unlock(account.WalletKey, password)
	if err != nil {
		return nil, err
	}

	return s.submit(ctx, key, accountNumber, ledger.SystemAccount, amount, memo, accountNumber)
}

// submit checks the sender's balance, records the transaction and commits it.
// s.mu keeps a concurrent submit from spending the same balance between check and commit.
func (s *Service) submit(ctx context.Context, key *rsa.PrivateKey, sender, receiver string, amount int64, memo, miner string) (*Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sender != ledger.SystemAccount && s.available(sender) < amount {
		return nil, ErrInsufficientBalance
	}

	tx, err := ledger.NewTransaction(sender, receiver, amount, memo, key)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	if err := s.store.SaveTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}
	if err := s.ledger.Enqueue(tx); err != nil {
		return nil, fmt.Errorf("failed to queue transaction: %w", err)
	}

	block, err := s.ledger.Commit(ctx, miner, s.grantReward)
	if err != nil && block == nil {
		// the transaction stays queued and is mined by the next successful commit
		s.log.Warn("transaction queued but not committed",
			zap.String("txn_id", tx.ID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	if err != nil {
		s.log.Warn("block committed with follow-up error", zap.String("hash", block.Hash), zap.Error(err))
	}
	s.mirrorBalances(ctx, block)

	s.log.Info("transaction committed",
		zap.String("txn_id", tx.ID),
		zap.String("sender", sender),
		zap.String("receiver", receiver),
		zap.Int64("amount", amount),
		zap.String("block", block.Hash))

	return &Receipt{Transaction: tx, BlockHash: block.Hash, Time: block.Timestamp}, nil
}

// available is the committed balance less what the account already has queued to send
func (s *Service) available(account string) int64 {
	balance := s.ledger.BalanceOf(account)
	for _, tx := range s.ledger.Pending() {
		if tx.Sender == account {
			balance -= tx.Amount
		}
	}
	return balance
}

// mirrorBalances copies the effect of a committed block onto the stored wallet balances.
// The ledger stays authoritative; failed updates are logged and not returned.
func (s *Service) mirrorBalances(ctx context.Context, block *ledger.Block) {
	var errs error
	for _, tx := range block.Transactions {
		if tx.Amount == 0 {
			continue
		}
		errs = multierr.Append(errs, s.mirror(ctx, tx.Sender, -tx.Amount))
		errs = multierr.Append(errs, s.mirror(ctx, tx.Receiver, tx.Amount))
	}
	if errs != nil {
		s.log.Error("failed to mirror balances",
			zap.String("block", block.Hash),
			zap.Errors("errors", multierr.Errors(errs)))
	}
}

func (s *Service) mirror(ctx context.Context, account string, delta int64) error {
	if account == ledger.SystemAccount || account == ledger.GenesisAccount {
		return nil
	}
	if err := s.store.UpdateBalance(ctx, account, delta); err != nil {
		return fmt.Errorf("account %s: %w", account, err)
	}
	return nil
}

// decoyKey is opened in place of a missing wallet so both login failures pay for the key derivation
var decoyKey = model.EncryptedKey{Ciphertext: make([]byte, 64), Salt: make([]byte, 16)}

// unlock decrypts key with secret. Every decryption failure is reported as ErrInvalidCredentials.
func unlock(key model.EncryptedKey, secret []byte) (*rsa.PrivateKey, error) {
	if key.Empty() {
		return nil, ErrInvalidCredentials
	}
	priv, err := crypto.DecryptPrivateKey(key.Ciphertext, secret, key.Salt)
	if err != nil {
		if errors.Is(err, crypto.ErrAuthentication) || errors.Is(err, crypto.ErrEmptySecret) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return priv, nil
}
