package handler

import (
	"net/http"
	"strings"
)

// Authenticator resolves the account a request acts for
type Authenticator interface {
	Account(r *http.Request) (string, bool)
}

// HeaderAuthenticator trusts an account number placed in Header by the session layer in front
type HeaderAuthenticator struct {
	Header string
}

func (a HeaderAuthenticator) Account(r *http.Request) (string, bool) {
	account := strings.TrimSpace(r.Header.Get(a.Header))
	return account, account != ""
}
