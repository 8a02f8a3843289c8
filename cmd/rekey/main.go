// Re-encrypts an account's wallet key under a new password. The key pair is unchanged.
// Usage: go run ./cmd/rekey -db ledger.db -account 123456789012
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/AlexZinkM/chain-wallet/internal/config"
	"github.com/AlexZinkM/chain-wallet/internal/store"
	"github.com/AlexZinkM/chain-wallet/wallet"
)

func main() {
	dbPath := flag.String("db", "ledger.db", "path to the SQLite database")
	account := flag.String("account", "", "account number to re-encrypt")
	flag.Parse()

	if *account == "" {
		fmt.Fprintln(os.Stderr, "-account is required")
		os.Exit(2)
	}
	if err := run(*dbPath, *account); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, "wallet key re-encrypted")
}

func run(dbPath, account string) error {
	ctx := context.Background()

	db, err := store.OpenSQLite(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	oldPassword, err := config.PromptSecret("Current password")
	if err != nil {
		return err
	}
	defer clear(oldPassword)

	newPassword, err := config.PromptSecret("New password")
	if err != nil {
		return err
	}
	defer clear(newPassword)

	confirm, err := config.PromptSecret("Repeat new password")
	if err != nil {
		return err
	}
	defer clear(confirm)
	if !bytes.Equal(confirm, newPassword) {
		return errors.New("new passwords do not match")
	}

	// password changes never touch the chain, so no ledger is loaded
	return wallet.NewService(db, nil, wallet.Options{}).ChangePassword(ctx, account, oldPassword, newPassword)
}
