package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/AlexZinkM/chain-wallet/internal/ledger"
	"github.com/AlexZinkM/chain-wallet/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStore interface {
	ledger.BlockStore
	LoadBlocks(ctx context.Context) ([]*ledger.Block, error)
	SaveTransaction(ctx context.Context, tx ledger.Transaction) error
	LoadTransactions(ctx context.Context) ([]ledger.Transaction, error)
	SaveWallet(ctx context.Context, account *model.Account) error
	FindWalletByID(ctx context.Context, accountNumber string) (*model.Account, error)
	FindWalletByEmail(ctx context.Context, email string) (*model.Account, error)
	UpdateBalance(ctx context.Context, accountNumber string, delta int64) error
	Close() error
}

func stores(t *testing.T) map[string]testStore {
	t.Helper()
	sqlite, err := OpenSQLite(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]testStore{
		"memory": NewMemory(),
		"sqlite": sqlite,
	}
}

func testAccount(number, email string) *model.Account {
	return &model.Account{
		AccountNumber: number,
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Email:         email,
		CreatedAt:     time.Date(2026, 1, 2, 3, 4, 5, 6, time.UTC),
		WalletKey:     model.EncryptedKey{Ciphertext: []byte{1, 2, 3}, Salt: []byte{4, 5}},
		PublicKey:     "-----BEGIN PUBLIC KEY-----",
	}
}

func TestWallets(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			account := testAccount("100000000001", "ada@example.com")
			require.NoError(t, s.SaveWallet(ctx, account))

			got, err := s.FindWalletByID(ctx, account.AccountNumber)
			require.NoError(t, err)
			assert.Equal(t, account, got)

			got, err = s.FindWalletByEmail(ctx, "ADA@example.com")
			require.NoError(t, err)
			assert.Equal(t, account.AccountNumber, got.AccountNumber)

			_, err = s.FindWalletByID(ctx, "999999999999")
			assert.ErrorIs(t, err, ErrNotFound)
			_, err = s.FindWalletByEmail(ctx, "nobody@example.com")
			assert.ErrorIs(t, err, ErrNotFound)

			t.Run("duplicate email", func(t *testing.T) {
				err := s.SaveWallet(ctx, testAccount("100000000002", "ada@example.com"))
				assert.ErrorIs(t, err, ErrDuplicate)
			})

			t.Run("update keeps identity", func(t *testing.T) {
				updated := *got
				updated.HasSetPIN = true
				updated.PINKey = model.EncryptedKey{Ciphertext: []byte{9}, Salt: []byte{8}}
				updated.PINPublicKey = "pin-pub"
				require.NoError(t, s.SaveWallet(ctx, &updated))

				again, err := s.FindWalletByID(ctx, account.AccountNumber)
				require.NoError(t, err)
				assert.True(t, again.HasSetPIN)
				assert.Equal(t, []byte{9}, again.PINKey.Ciphertext)
				assert.Equal(t, "pin-pub", again.PINPublicKey)
			})

			t.Run("update balance", func(t *testing.T) {
				require.NoError(t, s.UpdateBalance(ctx, account.AccountNumber, 500))
				require.NoError(t, s.UpdateBalance(ctx, account.AccountNumber, -200))
				again, err := s.FindWalletByID(ctx, account.AccountNumber)
				require.NoError(t, err)
				assert.Equal(t, int64(300), again.Balance)

				assert.ErrorIs(t, s.UpdateBalance(ctx, "999999999999", 1), ErrNotFound)
			})
		})
	}
}

func TestTransactions(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			tx, err := ledger.NewTransaction("A", "B", 50, "lunch", nil)
			require.NoError(t, err)
			tx.Signature = []byte{1, 2, 3}

			require.NoError(t, s.SaveTransaction(ctx, tx))
			assert.ErrorIs(t, s.SaveTransaction(ctx, tx), ErrDuplicate)

			// saved out of timestamp order to check that save order wins
			later, err := ledger.NewTransaction("B", "A", 20, "change", nil)
			require.NoError(t, err)
			later.Timestamp = tx.Timestamp.Add(-time.Hour)
			later.Hash, err = later.CalculateHash()
			require.NoError(t, err)
			require.NoError(t, s.SaveTransaction(ctx, later))

			txs, err := s.LoadTransactions(ctx)
			require.NoError(t, err)
			require.Len(t, txs, 2)

			got := txs[0]
			assert.Equal(t, tx.ID, got.ID)
			assert.Equal(t, tx.Hash, got.Hash)
			assert.True(t, tx.Timestamp.Equal(got.Timestamp))
			assert.True(t, got.VerifyHash())
			assert.Equal(t, tx.Signature, got.Signature)

			assert.Equal(t, later.ID, txs[1].ID)
			assert.True(t, txs[1].VerifyHash())
		})
	}
}

func TestBlocks(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			l, err := ledger.New(ctx, ledger.Options{Difficulty: 1, Store: s})
			require.NoError(t, err)

			tx, err := ledger.NewTransaction(ledger.SystemAccount, "A", 100, "credit", nil)
			require.NoError(t, err)
			require.NoError(t, l.Enqueue(tx))
			_, err = l.Commit(ctx, ledger.SystemAccount, false)
			require.NoError(t, err)

			blocks, err := s.LoadBlocks(ctx)
			require.NoError(t, err)
			require.Len(t, blocks, 2)
			assert.Equal(t, l.Tip().Hash, blocks[1].Hash)

			restored, err := ledger.Restore(ctx, blocks, ledger.Options{Difficulty: 1})
			require.NoError(t, err)
			assert.Equal(t, int64(100), restored.BalanceOf("A"))

			assert.ErrorIs(t, s.SaveBlock(ctx, blocks[1]), ErrDuplicate)
		})
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	_, err = ledger.New(ctx, ledger.Options{Difficulty: 1, Store: s})
	require.NoError(t, err)
	require.NoError(t, s.SaveWallet(ctx, testAccount("100000000001", "ada@example.com")))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	blocks, err := s.LoadBlocks(ctx)
	require.NoError(t, err)
	assert.Len(t, blocks, 1)

	_, err = s.FindWalletByID(ctx, "100000000001")
	assert.NoError(t, err)
}
