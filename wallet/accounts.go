package wallet

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode"

	"github.com/AlexZinkM/chain-wallet/internal/crypto"
	"github.com/AlexZinkM/chain-wallet/internal/model"
	"github.com/AlexZinkM/chain-wallet/internal/store"

	"go.uber.org/zap"
)

const (
	accountNumberAttempts = 16
	pinLength             = 4
	minPasswordLength     = 8
)

var (
	accountNumberMin   = big.NewInt(100_000_000_000)
	accountNumberRange = big.NewInt(900_000_000_000)
)

// SignupParams holds the fields of a new account
type SignupParams struct {
	FirstName string
	LastName  string
	Email     string
	Password  []byte
}

// SignupResult is the created account and a QR code of its number
type SignupResult struct {
	Account *model.Account
	QR      string // base64 PNG
}

// Signup creates an account with a fresh wallet key pair sealed under the password
func (s *Service) Signup(ctx context.Context, p SignupParams) (*SignupResult, error) {
	p.Email = strings.TrimSpace(p.Email)
	if strings.TrimSpace(p.FirstName) == "" || strings.TrimSpace(p.LastName) == "" || p.Email == "" || len(p.Password) == 0 {
		return nil, ErrMissingField
	}
	if !strongPassword(p.Password) {
		return nil, ErrWeakPassword
	}

	if _, err := s.store.FindWalletByEmail(ctx, p.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	number, err := s.newAccountNumber(ctx)
	if err != nil {
		return nil, err
	}

	priv, pub, err := crypto.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	ciphertext, salt, err := crypto.EncryptPrivateKey(priv, p.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt wallet key: %w", err)
	}
	publicKey, err := crypto.MarshalPublicKey(pub)
	if err != nil {
		return nil, err
	}

	account := &model.Account{
		AccountNumber: number,
		FirstName:     strings.TrimSpace(p.FirstName),
		LastName:      strings.TrimSpace(p.LastName),
		Email:         p.Email,
		CreatedAt:     time.Now().UTC(),
		WalletKey:     model.EncryptedKey{Ciphertext: ciphertext, Salt: salt},
		PublicKey:     publicKey,
	}
	if err := s.store.SaveWallet(ctx, account); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to save wallet: %w", err)
	}

	qr, err := generateQRCode(number)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	s.log.Info("account created", zap.String("account", number))
	return &SignupResult{Account: account, QR: qr}, nil
}

// Login checks the password by unlocking the wallet key.
// An unknown email and a wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email string, password []byte) (*model.Account, error) {
	account, err := s.store.FindWalletByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_, _ = unlock(decoyKey, password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}
	if _, err := unlock(account.WalletKey, password); err != nil {
		return nil, err
	}
	return account, nil
}

// SetPIN creates the transfer signing key, sealed under a 4-digit PIN
func (s *Service) SetPIN(ctx context.Context, accountNumber string, pin []byte) error {
	if !validPIN(pin) {
		return ErrInvalidPIN
	}
	account, err := s.account(ctx, accountNumber)
	if err != nil {
		return err
	}
	if account.HasSetPIN {
		return ErrPINAlreadySet
	}

	priv, pub, err := crypto.GenerateKeyPair()
	if err != nil {
		return err
	}
	ciphertext, salt, err := crypto.EncryptPrivateKey(priv, pin)
	if err != nil {
		return fmt.Errorf("failed to encrypt PIN key: %w", err)
	}
	publicKey, err := crypto.MarshalPublicKey(pub)
	if err != nil {
		return err
	}

	account.HasSetPIN = true
	account.PINKey = model.EncryptedKey{Ciphertext: ciphertext, Salt: salt}
	account.PINPublicKey = publicKey
	if err := s.store.SaveWallet(ctx, account); err != nil {
		return fmt.Errorf("failed to save wallet: %w", err)
	}

	s.log.Info("transaction PIN set", zap.String("account", accountNumber))
	return nil
}

// VerifyPIN reports ErrInvalidCredentials unless pin unlocks the PIN key
func (s *Service) VerifyPIN(ctx context.Context, accountNumber string, pin []byte) error {
	account, err := s.account(ctx, accountNumber)
	if err != nil {
		return err
	}
	if !account.HasSetPIN {
		return ErrPINNotSet
	}
	_, err = unlock(account.PINKey, pin)
	return err
}

// ChangePassword reseals the existing wallet key under newPassword with a new salt.
// The key pair and therefore the public key stay the same.
func (s *Service) ChangePassword(ctx context.Context, accountNumber string, oldPassword, newPassword []byte) error {
	if !strongPassword(newPassword) {
		return ErrWeakPassword
	}
	account, err := s.account(ctx, accountNumber)
	if err != nil {
		return err
	}
	priv, err := unlock(account.WalletKey, oldPassword)
	if err != nil {
		return err
	}

	ciphertext, salt, err := crypto.EncryptPrivateKey(priv, newPassword)
	if err != nil {
		return fmt.Errorf("failed to encrypt wallet key: %w", err)
	}
	account.WalletKey = model.EncryptedKey{Ciphertext: ciphertext, Salt: salt}
	if err := s.store.SaveWallet(ctx, account); err != nil {
		return fmt.Errorf("failed to save wallet: %w", err)
	}

	s.log.Info("wallet key re-encrypted", zap.String("account", accountNumber))
	return nil
}

func (s *Service) newAccountNumber(ctx context.Context) (string, error) {
	for range accountNumberAttempts {
		n, err := rand.Int(rand.Reader, accountNumberRange)
		if err != nil {
			return "", fmt.Errorf("failed to generate account number: %w", err)
		}
		number := n.Add(n, accountNumberMin).String()

		_, err = s.store.FindWalletByID(ctx, number)
		if errors.Is(err, store.ErrNotFound) {
			return number, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check account number: %w", err)
		}
	}
	return "", errors.New("failed to allocate a unique account number")
}

func strongPassword(password []byte) bool {
	if len(password) < minPasswordLength {
		return false
	}
	var upper, lower, digit bool
	for _, r := range string(password) {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

func validPIN(pin []byte) bool {
	if len(pin) != pinLength {
		return false
	}
	for _, c := range pin {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
