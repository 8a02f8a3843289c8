package model

import (
	"fmt"
	"time"

	"github.com/AlexZinkM/chain-wallet/internal/common"
)

// TransactionType transaction type, relative to the account whose history is read
type TransactionType string

const (
	TransactionTypeDebit  TransactionType = "DEBIT"
	TransactionTypeCredit TransactionType = "CREDIT"
)

// Transaction represents a history entry
type Transaction struct {
	Type      TransactionType `json:"type"`
	TxID      string          `json:"txId"`
	From      string          `json:"sender"`
	To        string          `json:"receiver"`
	Amount    string          `json:"amount"`
	Note      string          `json:"note"`
	Timestamp time.Time       `json:"timestamp"`
	TxHash    string          `json:"tx_hash"`
	Signed    bool            `json:"signed"`
}

// HistoryResponse represents response for GET /history
type HistoryResponse struct {
	AccountNumber string        `json:"account_number"`
	TotalIncome   string        `json:"total_income"`
	TotalSpent    string        `json:"total_spent"`
	Transactions  []Transaction `json:"history"`
}

// HistoryFilter represents request parameters for GET /history
type HistoryFilter struct {
	Type      *TransactionType `form:"type"`
	TxID      *string          `form:"txId"`
	From      *time.Time       `form:"from"`
	To        *time.Time       `form:"to"`
	MinAmount *string          `form:"minAmount"`
	MaxAmount *string          `form:"maxAmount"`
}

// Validate validates HistoryFilter parameters.
func (r *HistoryFilter) Validate() error {
	if r.Type != nil && *r.Type != TransactionTypeDebit && *r.Type != TransactionTypeCredit {
		return fmt.Errorf("type must be DEBIT or CREDIT")
	}
	if r.From != nil && r.To != nil && r.To.Before(*r.From) {
		return fmt.Errorf("to date must be after or equal to from date")
	}
	if r.MinAmount != nil {
		if _, err := common.ParseAmount(*r.MinAmount); err != nil {
			return fmt.Errorf("invalid minAmount: %w", err)
		}
	}
	if r.MaxAmount != nil {
		if _, err := common.ParseAmount(*r.MaxAmount); err != nil {
			return fmt.Errorf("invalid maxAmount: %w", err)
		}
	}
	if r.MinAmount != nil && r.MaxAmount != nil {
		cmp, err := common.CompareAmounts(*r.MinAmount, *r.MaxAmount)
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		if cmp == 1 {
			return fmt.Errorf("minAmount must be less than or equal to maxAmount")
		}
	}
	return nil
}

// Match reports whether entry passes the filter
func (r *HistoryFilter) Match(entry Transaction) bool {
	if r.Type != nil && entry.Type != *r.Type {
		return false
	}
	if r.TxID != nil && entry.TxID != *r.TxID {
		return false
	}
	if r.From != nil && entry.Timestamp.Before(*r.From) {
		return false
	}
	if r.To != nil && entry.Timestamp.After(*r.To) {
		return false
	}
	if r.MinAmount != nil {
		if cmp, err := common.CompareAmounts(entry.Amount, *r.MinAmount); err != nil || cmp < 0 {
			return false
		}
	}
	if r.MaxAmount != nil {
		if cmp, err := common.CompareAmounts(entry.Amount, *r.MaxAmount); err != nil || cmp > 0 {
			return false
		}
	}
	return true
}
