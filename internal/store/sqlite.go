package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AlexZinkM/chain-wallet/internal/ledger"
	"github.com/AlexZinkM/chain-wallet/internal/model"

	"github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS wallets (
    account_number            TEXT PRIMARY KEY,
    first_name                TEXT NOT NULL,
    last_name                 TEXT NOT NULL,
    email                     TEXT NOT NULL UNIQUE COLLATE NOCASE,
    balance                   INTEGER NOT NULL DEFAULT 0,
    created_at                TEXT NOT NULL,
    encrypted_private_key     BLOB NOT NULL,
    salt                      BLOB NOT NULL,
    public_key                TEXT NOT NULL,
    has_set_pin               INTEGER NOT NULL DEFAULT 0,
    encrypted_private_pin_key BLOB,
    salt_pin                  BLOB,
    pin_public_key            TEXT
);

CREATE TABLE IF NOT EXISTS transactions (
    txn_id           TEXT PRIMARY KEY,
    schema_version   INTEGER NOT NULL,
    sender_account   TEXT NOT NULL,
    receiver_account TEXT NOT NULL,
    amount           INTEGER NOT NULL,
    description      TEXT NOT NULL,
    timestamp        TEXT NOT NULL,
    tx_hash          TEXT NOT NULL,
    signature        BLOB
);

CREATE INDEX IF NOT EXISTS transactions_sender ON transactions (sender_account);
CREATE INDEX IF NOT EXISTS transactions_receiver ON transactions (receiver_account);

CREATE TABLE IF NOT EXISTS blocks (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    hash          TEXT NOT NULL UNIQUE,
    previous_hash TEXT NOT NULL,
    block         TEXT NOT NULL
);
`

const walletColumns = `account_number, first_name, last_name, email, balance, created_at,
    encrypted_private_key, salt, public_key, has_set_pin,
    encrypted_private_pin_key, salt_pin, pin_public_key`

// SQLite is a durable store backed by a single SQLite file
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and applies the schema
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one writer; sqlite serializes anyway and this keeps :memory: databases on one connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) SaveBlock(ctx context.Context, block *ledger.Block) error {
	data, err := json.Marshal(block)
	if err != nil {
		return fmt.Errorf("failed to marshal block: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO blocks (hash, previous_hash, block) VALUES (?, ?, ?)",
		block.Hash, block.PreviousHash, string(data))
	if err != nil {
		return mapError(err)
	}
	return nil
}

// LoadBlocks returns every stored block in insertion order
func (s *SQLite) LoadBlocks(ctx context.Context) ([]*ledger.Block, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT block FROM blocks ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query blocks: %w", err)
	}
	defer rows.Close()

	var blocks []*ledger.Block
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan block: %w", err)
		}
		var block ledger.Block
		if err := json.Unmarshal([]byte(data), &block); err != nil {
			return nil, fmt.Errorf("failed to unmarshal block %d: %w", len(blocks), err)
		}
		blocks = append(blocks, &block)
	}
	return blocks, rows.Err()
}

func (s *SQLite) SaveTransaction(ctx context.Context, tx ledger.Transaction) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (txn_id, schema_version, sender_account, receiver_account,
            amount, description, timestamp, tx_hash, signature)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.SchemaVersion, tx.Sender, tx.Receiver,
		tx.Amount, tx.Memo, tx.Timestamp.UTC().Format(time.RFC3339Nano), tx.Hash, tx.Signature)
	if err != nil {
		return mapError(err)
	}
	return nil
}

// LoadTransactions returns every saved transaction in the order it was saved
func (s *SQLite) LoadTransactions(ctx context.Context) ([]ledger.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT txn_id, schema_version, sender_account, receiver_account,
            amount, description, timestamp, tx_hash, signature
         FROM transactions ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txs []ledger.Transaction
	for rows.Next() {
		var (
			tx ledger.Transaction
			ts string
		)
		if err := rows.Scan(&tx.ID, &tx.SchemaVersion, &tx.Sender, &tx.Receiver,
			&tx.Amount, &tx.Memo, &ts, &tx.Hash, &tx.Signature); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tx.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp of %s: %w", tx.ID, err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// SaveWallet inserts a wallet, or replaces every field but the balance of an existing one.
// The balance only moves through UpdateBalance.
func (s *SQLite) SaveWallet(ctx context.Context, a *model.Account) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO wallets (`+walletColumns+`)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(account_number) DO UPDATE SET
            first_name = excluded.first_name,
            last_name = excluded.last_name,
            email = excluded.email,
            encrypted_private_key = excluded.encrypted_private_key,
            salt = excluded.salt,
            public_key = excluded.public_key,
            has_set_pin = excluded.has_set_pin,
            encrypted_private_pin_key = excluded.encrypted_private_pin_key,
            salt_pin = excluded.salt_pin,
            pin_public_key = excluded.pin_public_key`,
		a.AccountNumber, a.FirstName, a.LastName, a.Email, a.Balance,
		a.CreatedAt.UTC().Format(time.RFC3339Nano),
		a.WalletKey.Ciphertext, a.WalletKey.Salt, a.PublicKey, a.HasSetPIN,
		a.PINKey.Ciphertext, a.PINKey.Salt, a.PINPublicKey)
	if err != nil {
		return mapError(err)
	}
	return nil
}

func (s *SQLite) FindWalletByID(ctx context.Context, accountNumber string) (*model.Account, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+walletColumns+" FROM wallets WHERE account_number = ?", accountNumber)
	return scanWallet(row)
}

func (s *SQLite) FindWalletByEmail(ctx context.Context, email string) (*model.Account, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+walletColumns+" FROM wallets WHERE email = ?", email)
	return scanWallet(row)
}

func (s *SQLite) UpdateBalance(ctx context.Context, accountNumber string, delta int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE wallets SET balance = balance + ? WHERE account_number = ?", delta, accountNumber)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func scanWallet(row *sql.Row) (*model.Account, error) {
	var (
		a            model.Account
		createdAt    string
		pinPublicKey sql.NullString
	)
	err := row.Scan(&a.AccountNumber, &a.FirstName, &a.LastName, &a.Email, &a.Balance, &createdAt,
		&a.WalletKey.Ciphertext, &a.WalletKey.Salt, &a.PublicKey, &a.HasSetPIN,
		&a.PINKey.Ciphertext, &a.PINKey.Salt, &pinPublicKey)
	if err != nil {
		return nil, mapError(err)
	}
	a.PINPublicKey = pinPublicKey.String

	a.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return &a, nil
}

func mapError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %v", ErrDuplicate, err)
		}
	}
	return err
}
