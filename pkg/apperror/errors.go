package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Validation (VAL) ----

// Validation returns a generic validation error with a caller-supplied message.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

func ErrInvalidMobile() *AppError {
	return New("VAL_002", "Mobile number must be exactly 11 digits", http.StatusBadRequest)
}

func ErrPinTooShort() *AppError {
	return New("VAL_003", "PIN must be at least 4 characters", http.StatusBadRequest)
}

// ---- Accounts & Authentication (AUTH) ----

func ErrInvalidCredential() *AppError {
	return New("AUTH_001", "Wrong mobile number or PIN", http.StatusUnauthorized)
}

func ErrDuplicateAccount() *AppError {
	return New("AUTH_002", "An account already exists for this mobile number", http.StatusConflict)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrAdminOnly() *AppError {
	return New("AUTH_004", "Admin access required", http.StatusForbidden)
}

func ErrAccountNotFound() *AppError {
	return New("AUTH_005", "Account not found", http.StatusNotFound)
}

// ---- Quiz sessions (GAME) ----

func ErrNoQuestionsAvailable() *AppError {
	return New("GAME_001", "No questions available", http.StatusServiceUnavailable)
}

func ErrDailyLimitReached() *AppError {
	return New("GAME_002", "Daily game limit reached", http.StatusTooManyRequests)
}

func ErrNoActiveSession() *AppError {
	return New("GAME_003", "No quiz session in progress", http.StatusNotFound)
}

func ErrSessionAlreadyActive() *AppError {
	return New("GAME_004", "A quiz session is already in progress", http.StatusConflict)
}

// ---- Wallet & requests (WAL) ----

func ErrInsufficientBalance() *AppError {
	return New("WAL_001", "Insufficient balance", http.StatusPaymentRequired)
}

func ErrBelowMinimumWithdrawal() *AppError {
	return New("WAL_002", "Amount is below the minimum withdrawal", http.StatusBadRequest)
}

func ErrRequestNotFound() *AppError {
	return New("WAL_003", "Request not found", http.StatusNotFound)
}

func ErrBonusAlreadyClaimed() *AppError {
	return New("WAL_004", "Daily bonus already claimed today", http.StatusConflict)
}

// ---- System & Infrastructure (SYS) ----

func ErrRateLimited() *AppError {
	return New("SYS_003", "Too many requests, slow down", http.StatusTooManyRequests)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

func ErrStoreError(err error) *AppError {
	return Wrap("SYS_002", "Ledger store error", http.StatusInternalServerError, err)
}
