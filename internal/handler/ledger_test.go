package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AlexZinkM/chain-wallet/internal/ledger"
	"github.com/AlexZinkM/chain-wallet/internal/model"
	"github.com/AlexZinkM/chain-wallet/internal/store"
	"github.com/AlexZinkM/chain-wallet/wallet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const accountHeader = "X-Account-Number"

type testServer struct {
	t   *testing.T
	mux *http.ServeMux
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	mem := store.NewMemory()
	l, err := ledger.New(context.Background(), ledger.Options{Difficulty: 1, Store: mem})
	require.NoError(t, err)
	h := NewLedgerHandler(wallet.NewService(mem, l, wallet.Options{}), HeaderAuthenticator{Header: accountHeader}, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/signup", h.Signup)
	mux.HandleFunc("/auth/login", h.Login)
	mux.HandleFunc("/auth/set-pin", h.SetPIN)
	mux.HandleFunc("/auth/verify-pin", h.VerifyPIN)
	mux.HandleFunc("/accounts/verify", h.VerifyAccount)
	mux.HandleFunc("/transaction", h.Transfer)
	mux.HandleFunc("/credit", h.Credit)
	mux.HandleFunc("/debit", h.Debit)
	mux.HandleFunc("/balance", h.GetBalance)
	mux.HandleFunc("/history", h.TransactionHistory)
	mux.HandleFunc("/chain", h.Chain)
	return &testServer{t: t, mux: mux}
}

// do sends body as JSON, acting as account when it is not empty, and decodes the reply into out
func (s *testServer) do(method, path, account string, body, out any) int {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if account != "" {
		req.Header.Set(accountHeader, account)
	}
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)

	if out != nil && rec.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}

func (s *testServer) signup(email string) string {
	s.t.Helper()
	var res model.SignupResponse
	code := s.do(http.MethodPost, "/auth/signup", "", model.SignupRequest{
		FirstName: "Ada", LastName: "Lovelace", Email: email, Password: "Passw0rdX",
	}, &res)
	require.Equal(s.t, http.StatusCreated, code)
	return res.AccountNumber
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)
	account := s.signup("ada@example.com")
	assert.Len(t, account, 12)

	var errResp model.ErrorResponse
	code := s.do(http.MethodPost, "/auth/signup", "", model.SignupRequest{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "Passw0rdX",
	}, &errResp)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, model.CodeConflict, errResp.Code)

	code = s.do(http.MethodPost, "/auth/signup", "", model.SignupRequest{
		FirstName: "Ada", LastName: "Lovelace", Email: "weak@example.com", Password: "weak",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	var login model.LoginResponse
	code = s.do(http.MethodPost, "/auth/login", "", model.LoginRequest{Email: "ada@example.com", Password: "Passw0rdX"}, &login)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, account, login.AccountNumber)
	assert.False(t, login.HasSetPIN)

	code = s.do(http.MethodPost, "/auth/login", "", model.LoginRequest{Email: "ada@example.com", Password: "nope"}, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code = s.do(http.MethodPost, "/auth/set-pin", "", model.PINRequest{PIN: "1234"}, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	code = s.do(http.MethodPost, "/auth/set-pin", account, model.PINRequest{PIN: "12"}, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	code = s.do(http.MethodPost, "/auth/set-pin", account, model.PINRequest{PIN: "1234"}, nil)
	assert.Equal(t, http.StatusOK, code)
	code = s.do(http.MethodPost, "/auth/set-pin", account, model.PINRequest{PIN: "1234"}, nil)
	assert.Equal(t, http.StatusConflict, code)

	code = s.do(http.MethodPost, "/auth/verify-pin", account, model.PINRequest{PIN: "1234"}, nil)
	assert.Equal(t, http.StatusOK, code)
	code = s.do(http.MethodPost, "/auth/verify-pin", account, model.PINRequest{PIN: "4321"}, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	var lookup model.AccountResponse
	code = s.do(http.MethodGet, "/accounts/verify?accountNumber="+account, "", nil, &lookup)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, lookup.Exists)
	assert.Equal(t, "Ada Lovelace", lookup.FullName)

	code = s.do(http.MethodGet, "/accounts/verify?accountNumber=999999999999", "", nil, nil)
	assert.Equal(t, http.StatusNotFound, code)
	code = s.do(http.MethodGet, "/accounts/verify", "", nil, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestMoneyFlow(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup("alice@example.com")
	bob := s.signup("bob@example.com")
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/auth/set-pin", alice, model.PINRequest{PIN: "1234"}, nil))

	var receipt model.ReceiptResponse
	code := s.do(http.MethodPost, "/credit", "", model.CreditRequest{
		AccountNumber: alice, Amount: "100.00", Note: "top up", Password: "Passw0rdX",
	}, &receipt)
	require.Equal(t, http.StatusCreated, code)
	assert.NotEmpty(t, receipt.TxHash)
	assert.NotEmpty(t, receipt.BlockHash)

	var errResp model.ErrorResponse
	code = s.do(http.MethodPost, "/transaction", alice, model.TransferRequest{
		ReceiverAccount: bob, Amount: "500", PIN: "1234",
	}, &errResp)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, model.CodeInsufficientBalance, errResp.Code)

	code = s.do(http.MethodPost, "/transaction", alice, model.TransferRequest{
		ReceiverAccount: bob, Amount: "12.50", Note: "lunch", PIN: "0000",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code = s.do(http.MethodPost, "/transaction", alice, model.TransferRequest{
		ReceiverAccount: "999999999999", Amount: "1", PIN: "1234",
	}, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code = s.do(http.MethodPost, "/transaction", alice, model.TransferRequest{
		ReceiverAccount: bob, Amount: "1.234", PIN: "1234",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code = s.do(http.MethodPost, "/transaction", alice, model.TransferRequest{
		ReceiverAccount: bob, Amount: "12.50", Note: "lunch", PIN: "1234",
	}, &receipt)
	require.Equal(t, http.StatusCreated, code)

	code = s.do(http.MethodPost, "/debit", bob, model.DebitRequest{Amount: "2.50", Password: "Passw0rdX"}, nil)
	require.Equal(t, http.StatusCreated, code)

	var balance model.BalanceResponse
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/balance", alice, nil, &balance))
	assert.Equal(t, "87.50", balance.Balance)
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/balance", bob, nil, &balance))
	assert.Equal(t, "10.00", balance.Balance)

	var history model.HistoryResponse
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/history", alice, nil, &history))
	require.Len(t, history.Transactions, 2)
	assert.Equal(t, receipt.TxID, history.Transactions[0].TxID)
	assert.Equal(t, "100.00", history.TotalIncome)
	assert.Equal(t, "12.50", history.TotalSpent)

	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/history?type=CREDIT", alice, nil, &history))
	assert.Len(t, history.Transactions, 1)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/history?from=yesterday", alice, nil, nil))
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/history?minAmount=5&maxAmount=1", alice, nil, nil))
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/history", "", nil, nil))

	var chain model.ChainResponse
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/chain", "", nil, &chain))
	assert.Equal(t, 4, chain.Length)
	assert.Equal(t, 1, chain.Difficulty)
	assert.Zero(t, chain.Pending)
	assert.True(t, chain.Valid)
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/auth/signup"},
		{http.MethodGet, "/transaction"},
		{http.MethodPost, "/balance"},
		{http.MethodDelete, "/chain"},
	} {
		assert.Equal(t, http.StatusMethodNotAllowed, s.do(tc.method, tc.path, "", nil, nil), tc.path)
	}
}

func TestMalformedBody(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
