package api

import (
	"encoding/json"
	"net/http"

	"github.com/AlexZinkM/chain-wallet/internal/model"

	"golang.org/x/time/rate"
)

// throttle answers 429 once limiter has no tokens left
func throttle(limiter *rate.Limiter, next http.HandlerFunc) http.Handler {
	if limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(model.ErrorResponse{
				Error: "too many requests, please retry later",
				Code:  model.CodeRateLimited,
			})
			return
		}
		next(w, r)
	})
}

// NewLimiter returns a token bucket of perSecond sustained rate, or nil when perSecond is 0
func NewLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}
