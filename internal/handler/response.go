package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlexZinkM/chain-wallet/internal/ledger"
	"github.com/AlexZinkM/chain-wallet/internal/model"
	"github.com/AlexZinkM/chain-wallet/wallet"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, model.ErrorResponse{Error: message, Code: code})
}

// badRequest answers 400 with the decoding or validation error
func badRequest(w http.ResponseWriter, err error) {
	writeError(w, http.StatusBadRequest, model.CodeBadRequest, err.Error())
}

// fail maps a service error to its HTTP status. Unexpected errors are logged and
// reported without detail.
func (h *LedgerHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, wallet.ErrInsufficientBalance):
		writeError(w, http.StatusBadRequest, model.CodeInsufficientBalance, err.Error())
	case errors.Is(err, wallet.ErrMissingField),
		errors.Is(err, wallet.ErrWeakPassword),
		errors.Is(err, wallet.ErrInvalidPIN),
		errors.Is(err, wallet.ErrInvalidAmount),
		errors.Is(err, wallet.ErrSelfTransfer),
		errors.Is(err, wallet.ErrPINNotSet):
		writeError(w, http.StatusBadRequest, model.CodeBadRequest, err.Error())
	case errors.Is(err, wallet.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, model.CodeUnauthorized, err.Error())
	case errors.Is(err, wallet.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, model.CodeNotFound, err.Error())
	case errors.Is(err, wallet.ErrEmailTaken), errors.Is(err, wallet.ErrPINAlreadySet):
		writeError(w, http.StatusConflict, model.CodeConflict, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		h.log.Warn("mining timed out", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, model.CodeMiningTimeout,
			"block could not be mined in time, the transaction stays queued")
	default:
		fields := []zap.Field{zap.String("path", r.URL.Path), zap.Error(err)}
		if ledger.IsChainIntegrityError(err) {
			h.log.Error("ledger halted", fields...)
		} else {
			h.log.Error("request failed", fields...)
		}
		writeError(w, http.StatusInternalServerError, model.CodeInternal, "internal error")
	}
}
