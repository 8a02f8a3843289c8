package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/AlexZinkM/chain-wallet/internal/common"
	"github.com/AlexZinkM/chain-wallet/internal/model"
	"github.com/AlexZinkM/chain-wallet/wallet"

	"go.uber.org/zap"
)

// LedgerHandler serves the wallet service over HTTP
type LedgerHandler struct {
	service *wallet.Service
	auth    Authenticator
	log     *zap.Logger
}

// NewLedgerHandler creates a LedgerHandler. A nil logger discards logs.
func NewLedgerHandler(service *wallet.Service, auth Authenticator, logger *zap.Logger) *LedgerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerHandler{service: service, auth: auth, log: logger}
}

// account returns the authenticated account or answers 401
func (h *LedgerHandler) account(w http.ResponseWriter, r *http.Request) (string, bool) {
	account, ok := h.auth.Account(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, model.CodeUnauthorized, "authentication required")
	}
	return account, ok
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		badRequest(w, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

// Signup handles POST /auth/signup
// @Summary      Create account
// @Description  Creates an account with a password-sealed wallet key and returns its number with a QR code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      model.SignupRequest  true  "Account data"
// @Success      201      {object}  model.SignupResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /auth/signup [post]
func (h *LedgerHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.SignupRequest
	if !decode(w, r, &req) {
		return
	}
	password := []byte(req.Password)
	defer clear(password)

	res, err := h.service.Signup(r.Context(), wallet.SignupParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  password,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, model.SignupResponse{
		AccountNumber: res.Account.AccountNumber,
		QR:            res.QR,
	})
}

// Login handles POST /auth/login
// @Summary      Log in
// @Description  Checks the password against the sealed wallet key
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      model.LoginRequest  true  "Credentials"
// @Success      200      {object}  model.LoginResponse
// @Failure      401      {object}  model.ErrorResponse
// @Router       /auth/login [post]
func (h *LedgerHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.LoginRequest
	if !decode(w, r, &req) {
		return
	}
	password := []byte(req.Password)
	defer clear(password)

	account, err := h.service.Login(r.Context(), req.Email, password)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.LoginResponse{
		AccountNumber: account.AccountNumber,
		HasSetPIN:     account.HasSetPIN,
	})
}

// SetPIN handles POST /auth/set-pin
// @Summary      Set transaction PIN
// @Description  Creates the transfer signing key sealed under a 4-digit PIN
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        X-Account-Number  header    string            true  "Authenticated account"
// @Param        request           body      model.PINRequest  true  "PIN"
// @Success      200               {object}  model.MessageResponse
// @Failure      400               {object}  model.ErrorResponse
// @Failure      409               {object}  model.ErrorResponse
// @Router       /auth/set-pin [post]
func (h *LedgerHandler) SetPIN(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}
	accountNumber, ok := h.account(w, r)
	if !ok {
		return
	}

	var req model.PINRequest
	if !decode(w, r, &req) {
		return
	}
	pin := []byte(req.PIN)
	defer clear(pin)

	if err := h.service.SetPIN(r.Context(), accountNumber, pin); err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{
		Message:       "PIN set successfully",
		AccountNumber: accountNumber,
	})
}

// VerifyPIN handles POST /auth/verify-pin
// @Summary      Verify transaction PIN
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        X-Account-Number  header    string            true  "Authenticated account"
// @Param        request           body      model.PINRequest  true  "PIN"
// @Success      200               {object}  model.MessageResponse
// @Failure      401               {object}  model.ErrorResponse
// @Router       /auth/verify-pin [post]
func (h *LedgerHandler) VerifyPIN(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}
	accountNumber, ok := h.account(w, r)
	if !ok {
		return
	}

	var req model.PINRequest
	if !decode(w, r, &req) {
		return
	}
	pin := []byte(req.PIN)
	defer clear(pin)

	if err := h.service.VerifyPIN(r.Context(), accountNumber, pin); err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "PIN verified successfully"})
}

// VerifyAccount handles GET /accounts/verify
// @Summary      Look up account
// @Description  Returns the holder's name for an account number
// @Tags         accounts
// @Produce      json
// @Param        accountNumber  query     string  true  "Account number"
// @Success      200            {object}  model.AccountResponse
// @Failure      404            {object}  model.ErrorResponse
// @Router       /accounts/verify [get]
func (h *LedgerHandler) VerifyAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	account, err := h.service.Lookup(r.Context(), r.URL.Query().Get("accountNumber"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.AccountResponse{
		Exists:        true,
		AccountNumber: account.AccountNumber,
		FirstName:     account.FirstName,
		LastName:      account.LastName,
		FullName:      account.FullName(),
	})
}

// Transfer handles POST /transaction
// @Summary      Transfer
// @Description  Signs a transfer with the PIN key and mines it into a block
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        X-Account-Number  header    string                 true  "Authenticated account"
// @Param        request           body      model.TransferRequest  true  "Transfer data"
// @Success      201               {object}  model.ReceiptResponse
// @Failure      400               {object}  model.ErrorResponse
// @Failure      401               {object}  model.ErrorResponse
// @Failure      404               {object}  model.ErrorResponse
// @Failure      503               {object}  model.ErrorResponse
// @Router       /transaction [post]
func (h *LedgerHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}
	accountNumber, ok := h.account(w, r)
	if !ok {
		return
	}

	var req model.TransferRequest
	if !decode(w, r, &req) {
		return
	}
	pin := []byte(req.PIN)
	defer clear(pin)

	if req.ReceiverAccount == "" || req.Amount == "" {
		badRequest(w, fmt.Errorf("receiver_account and amount are required"))
		return
	}
	if len(pin) == 0 {
		badRequest(w, fmt.Errorf("pin is required"))
		return
	}
	amount, err := common.ParseAmount(req.Amount)
	if err != nil {
		badRequest(w, fmt.Errorf("invalid amount: %w", err))
		return
	}

	receipt, err := h.service.Transfer(r.Context(), wallet.TransferParams{
		Sender:   accountNumber,
		Receiver: req.ReceiverAccount,
		Amount:   amount,
		Memo:     req.Note,
		PIN:      pin,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, receiptResponse("Transaction created and mined successfully", receipt))
}

// Credit handles POST /credit
// @Summary      Credit account
// @Description  Issues funds from the system account, authorized by the account password
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        request  body      model.CreditRequest  true  "Credit data"
// @Success      201      {object}  model.ReceiptResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      401      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /credit [post]
func (h *LedgerHandler) Credit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.CreditRequest
	if !decode(w, r, &req) {
		return
	}
	password := []byte(req.Password)
	defer clear(password)

	if req.AccountNumber == "" || req.Amount == "" || len(password) == 0 {
		badRequest(w, fmt.Errorf("account_number, amount and password are required"))
		return
	}
	amount, err := common.ParseAmount(req.Amount)
	if err != nil {
		badRequest(w, fmt.Errorf("invalid amount: %w", err))
		return
	}

	receipt, err := h.service.Credit(r.Context(), req.AccountNumber, amount, req.Note, password)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, receiptResponse("Amount credited successfully", receipt))
}

// Debit handles POST /debit
// @Summary      Debit account
// @Description  Returns funds to the system account, authorized by the account password
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        X-Account-Number  header    string              true  "Authenticated account"
// @Param        request           body      model.DebitRequest  true  "Debit data"
// @Success      201               {object}  model.ReceiptResponse
// @Failure      400               {object}  model.ErrorResponse
// @Failure      401               {object}  model.ErrorResponse
// @Router       /debit [post]
func (h *LedgerHandler) Debit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}
	accountNumber, ok := h.account(w, r)
	if !ok {
		return
	}

	var req model.DebitRequest
	if !decode(w, r, &req) {
		return
	}
	password := []byte(req.Password)
	defer clear(password)

	if req.Amount == "" || len(password) == 0 {
		badRequest(w, fmt.Errorf("amount and password are required"))
		return
	}
	amount, err := common.ParseAmount(req.Amount)
	if err != nil {
		badRequest(w, fmt.Errorf("invalid amount: %w", err))
		return
	}

	receipt, err := h.service.Debit(r.Context(), accountNumber, amount, req.Note, password)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, receiptResponse("Amount debited successfully", receipt))
}

// GetBalance handles GET /balance
// @Summary      Get balance
// @Description  Returns the committed balance of the authenticated account
// @Tags         ledger
// @Produce      json
// @Param        X-Account-Number  header    string  true  "Authenticated account"
// @Success      200               {object}  model.BalanceResponse
// @Failure      404               {object}  model.ErrorResponse
// @Router       /balance [get]
func (h *LedgerHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}
	accountNumber, ok := h.account(w, r)
	if !ok {
		return
	}

	balance, err := h.service.Balance(r.Context(), accountNumber)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.BalanceResponse{
		AccountNumber: accountNumber,
		Balance:       common.FormatAmount(balance),
	})
}

// TransactionHistory handles GET /history
// @Summary      Get account transactions
// @Description  Lists committed transactions of the authenticated account, newest first, with filtering
// @Tags         ledger
// @Produce      json
// @Param        X-Account-Number  header    string  true   "Authenticated account"
// @Param        type              query     string  false  "Transaction type: DEBIT or CREDIT"
// @Param        txId              query     string  false  "Transaction ID"
// @Param        from              query     string  false  "Start date (YYYY-MM-DD)"
// @Param        to                query     string  false  "End date (YYYY-MM-DD)"
// @Param        minAmount         query     string  false  "Minimum amount"
// @Param        maxAmount         query     string  false  "Maximum amount"
// @Success      200               {object}  model.HistoryResponse
// @Failure      400               {object}  model.ErrorResponse
// @Router       /history [get]
func (h *LedgerHandler) TransactionHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}
	accountNumber, ok := h.account(w, r)
	if !ok {
		return
	}

	filter, err := parseHistoryFilter(r)
	if err != nil {
		badRequest(w, err)
		return
	}

	history, err := h.service.History(r.Context(), accountNumber, filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, history)
}

// Chain handles GET /chain
// @Summary      Chain summary
// @Description  Returns chain length, difficulty, tip hash, queue size and a full integrity check
// @Tags         ledger
// @Produce      json
// @Success      200  {object}  model.ChainResponse
// @Router       /chain [get]
func (h *LedgerHandler) Chain(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	l := h.service.Ledger()
	valid := true
	if err := l.Verify(); err != nil {
		h.log.Error("chain verification failed", zap.Error(err))
		valid = false
	}

	writeJSON(w, http.StatusOK, model.ChainResponse{
		Length:     l.Len(),
		Difficulty: l.Difficulty(),
		TipHash:    l.Tip().Hash,
		Pending:    len(l.Pending()),
		Valid:      valid,
	})
}

func receiptResponse(message string, receipt *wallet.Receipt) model.ReceiptResponse {
	return model.ReceiptResponse{
		Message:   message,
		TxID:      receipt.Transaction.ID,
		TxHash:    receipt.Transaction.Hash,
		BlockHash: receipt.BlockHash,
		Time:      receipt.Time,
	}
}

// parseHistoryFilter reads history query parameters, dates as YYYY-MM-DD
func parseHistoryFilter(r *http.Request) (model.HistoryFilter, error) {
	var filter model.HistoryFilter
	query := r.URL.Query()

	const dateLayout = "2006-01-02"
	if fromStr := query.Get("from"); fromStr != "" {
		t, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			return filter, fmt.Errorf("invalid from date: use YYYY-MM-DD (e.g. 2006-01-02)")
		}
		filter.From = &t
	}
	if toStr := query.Get("to"); toStr != "" {
		t, err := time.Parse(dateLayout, toStr)
		if err != nil {
			return filter, fmt.Errorf("invalid to date: use YYYY-MM-DD (e.g. 2006-01-02)")
		}
		// End of day so filter is inclusive
		t = t.Add(24*time.Hour - time.Nanosecond)
		filter.To = &t
	}

	if typeStr := query.Get("type"); typeStr != "" {
		txType := model.TransactionType(typeStr)
		filter.Type = &txType
	}
	if txID := query.Get("txId"); txID != "" {
		filter.TxID = &txID
	}
	if minAmount := query.Get("minAmount"); minAmount != "" {
		filter.MinAmount = &minAmount
	}
	if maxAmount := query.Get("maxAmount"); maxAmount != "" {
		filter.MaxAmount = &maxAmount
	}

	if err := filter.Validate(); err != nil {
		return filter, err
	}
	return filter, nil
}
