package model

import "time"

// TransferRequest represents request for POST /transaction
type TransferRequest struct {
	ReceiverAccount string `json:"receiver_account" binding:"required"`
	Amount          string `json:"amount" binding:"required"`
	Note            string `json:"note"`
	PIN             string `json:"pin" binding:"required"`
}

// CreditRequest represents request for POST /credit
type CreditRequest struct {
	AccountNumber string `json:"account_number" binding:"required"`
	Amount        string `json:"amount" binding:"required"`
	Note          string `json:"note"`
	Password      string `json:"password" binding:"required"`
}

// DebitRequest represents request for POST /debit
type DebitRequest struct {
	Amount   string `json:"amount" binding:"required"`
	Note     string `json:"note"`
	Password string `json:"password" binding:"required"`
}

// ReceiptResponse represents response for POST /transaction, /credit and /debit
type ReceiptResponse struct {
	Message   string    `json:"message"`
	TxID      string    `json:"txn_id"`
	TxHash    string    `json:"transaction_hash"`
	BlockHash string    `json:"block_hash"`
	Time      time.Time `json:"time"`
}

// BalanceResponse represents response for GET /balance
type BalanceResponse struct {
	AccountNumber string `json:"account_number"`
	Balance       string `json:"balance"`
}

// ChainResponse represents response for GET /chain
type ChainResponse struct {
	Length     int    `json:"length"`
	Difficulty int    `json:"difficulty"`
	TipHash    string `json:"tip_hash"`
	Pending    int    `json:"pending"`
	Valid      bool   `json:"valid"`
}
