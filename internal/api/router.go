package api

import (
	"net/http"

	"github.com/AlexZinkM/chain-wallet/internal/handler"

	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"
)

// Options configures the router
type Options struct {
	// Limiter throttles money-moving endpoints; nil disables throttling
	Limiter *rate.Limiter
}

// SetupRouter sets up router with handlers
func SetupRouter(h *handler.LedgerHandler, opts Options) http.Handler {
	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Auth endpoints
	mux.HandleFunc("/auth/signup", h.Signup)
	mux.HandleFunc("/auth/login", h.Login)
	mux.HandleFunc("/auth/set-pin", h.SetPIN)
	mux.HandleFunc("/auth/verify-pin", h.VerifyPIN)
	mux.HandleFunc("/accounts/verify", h.VerifyAccount)

	// Ledger endpoints
	mux.Handle("/transaction", throttle(opts.Limiter, h.Transfer))
	mux.Handle("/credit", throttle(opts.Limiter, h.Credit))
	mux.Handle("/debit", throttle(opts.Limiter, h.Debit))
	mux.HandleFunc("/balance", h.GetBalance)
	mux.HandleFunc("/history", h.TransactionHistory)
	mux.HandleFunc("/chain", h.Chain)

	return mux
}
