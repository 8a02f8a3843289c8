package model

// SignupRequest represents request for POST /auth/signup
type SignupRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// SignupResponse represents response for POST /auth/signup
type SignupResponse struct {
	AccountNumber string `json:"account_number"`
	QR            string `json:"QR"` // base64 PNG of the account number
}

// LoginRequest represents request for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents response for POST /auth/login
type LoginResponse struct {
	AccountNumber string `json:"account_number"`
	HasSetPIN     bool   `json:"hasSetPin"`
}

// PINRequest represents request for POST /auth/set-pin and /auth/verify-pin
type PINRequest struct {
	PIN string `json:"pin" binding:"required"`
}

// MessageResponse is a plain confirmation
type MessageResponse struct {
	Message       string `json:"message"`
	AccountNumber string `json:"account_number,omitempty"`
}

// AccountResponse represents response for GET /accounts/verify
type AccountResponse struct {
	Exists        bool   `json:"exists"`
	AccountNumber string `json:"accountNumber"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	FullName      string `json:"full_name"`
}
