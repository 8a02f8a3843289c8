package wallet

import (
	"context"
	"slices"

	"github.com/AlexZinkM/chain-wallet/internal/common"
	"github.com/AlexZinkM/chain-wallet/internal/ledger"
	"github.com/AlexZinkM/chain-wallet/internal/model"
)

// Balance returns the committed balance of an existing account
func (s *Service) Balance(ctx context.Context, accountNumber string) (int64, error) {
	if _, err := s.account(ctx, accountNumber); err != nil {
		return 0, err
	}
	return s.ledger.BalanceOf(accountNumber), nil
}

// History lists the committed transactions of an account, newest first, with filtering
func (s *Service) History(ctx context.Context, accountNumber string, filter model.HistoryFilter) (*model.HistoryResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.account(ctx, accountNumber); err != nil {
		return nil, err
	}

	entries := make([]model.Transaction, 0)
	var income, spent int64
	for tx := range s.ledger.HistoryOf(accountNumber) {
		entry := historyEntry(accountNumber, tx)
		if !filter.Match(entry) {
			continue
		}
		switch entry.Type {
		case model.TransactionTypeDebit:
			spent += tx.Amount
		case model.TransactionTypeCredit:
			income += tx.Amount
		}
		entries = append(entries, entry)
	}

	// the chain yields oldest first
	slices.Reverse(entries)

	return &model.HistoryResponse{
		AccountNumber: accountNumber,
		TotalIncome:   common.FormatAmount(income),
		TotalSpent:    common.FormatAmount(spent),
		Transactions:  entries,
	}, nil
}

func historyEntry(accountNumber string, tx ledger.Transaction) model.Transaction {
	kind := model.TransactionTypeCredit
	if tx.Sender == accountNumber {
		kind = model.TransactionTypeDebit
	}
	return model.Transaction{
		Type:      kind,
		TxID:      tx.ID,
		From:      tx.Sender,
		To:        tx.Receiver,
		Amount:    common.FormatAmount(tx.Amount),
		Note:      tx.Memo,
		Timestamp: tx.Timestamp,
		TxHash:    tx.Hash,
		Signed:    len(tx.Signature) > 0,
	}
}
