package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AlexZinkM/chain-wallet/internal/handler"
	"github.com/AlexZinkM/chain-wallet/internal/ledger"
	"github.com/AlexZinkM/chain-wallet/internal/store"
	"github.com/AlexZinkM/chain-wallet/wallet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, opts Options) http.Handler {
	t.Helper()
	mem := store.NewMemory()
	l, err := ledger.New(context.Background(), ledger.Options{Difficulty: 1, Store: mem})
	require.NoError(t, err)
	h := handler.NewLedgerHandler(wallet.NewService(mem, l, wallet.Options{}), handler.HeaderAuthenticator{Header: "X-Account-Number"}, nil)
	return SetupRouter(h, opts)
}

func TestRouterServesChain(t *testing.T) {
	router := newTestRouter(t, Options{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/chain", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"length":1`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestThrottle(t *testing.T) {
	router := newTestRouter(t, Options{Limiter: NewLimiter(0.001, 2)})

	credit := func() int {
		rec := httptest.NewRecorder()
		body := strings.NewReader(`{"account_number":"999999999999","amount":"1","password":"Passw0rdX"}`)
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/credit", body))
		return rec.Code
	}

	assert.Equal(t, http.StatusNotFound, credit())
	assert.Equal(t, http.StatusNotFound, credit())
	assert.Equal(t, http.StatusTooManyRequests, credit())

	// reads are not throttled
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/chain", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewLimiterDisabled(t *testing.T) {
	assert.Nil(t, NewLimiter(0, 10))
	assert.NotNil(t, NewLimiter(1, 0))
}
