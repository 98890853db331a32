package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("WAL_001", "Insufficient balance", http.StatusPaymentRequired),
			expected: "[WAL_001] Insufficient balance",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_002", "Ledger store error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_002] Ledger store error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := errors.New("redis down")
	appErr := ErrStoreError(inner)

	assert.True(t, errors.Is(appErr, inner))
}

func TestConstructors_CodesAndStatuses(t *testing.T) {
	tests := []struct {
		err    *AppError
		code   string
		status int
	}{
		{ErrInvalidCredential(), "AUTH_001", http.StatusUnauthorized},
		{ErrDuplicateAccount(), "AUTH_002", http.StatusConflict},
		{ErrInvalidToken(), "AUTH_003", http.StatusUnauthorized},
		{ErrAdminOnly(), "AUTH_004", http.StatusForbidden},
		{ErrNoQuestionsAvailable(), "GAME_001", http.StatusServiceUnavailable},
		{ErrDailyLimitReached(), "GAME_002", http.StatusTooManyRequests},
		{ErrNoActiveSession(), "GAME_003", http.StatusNotFound},
		{ErrSessionAlreadyActive(), "GAME_004", http.StatusConflict},
		{ErrInsufficientBalance(), "WAL_001", http.StatusPaymentRequired},
		{ErrBelowMinimumWithdrawal(), "WAL_002", http.StatusBadRequest},
		{ErrRequestNotFound(), "WAL_003", http.StatusNotFound},
		{ErrBonusAlreadyClaimed(), "WAL_004", http.StatusConflict},
		{ErrInvalidMobile(), "VAL_002", http.StatusBadRequest},
		{ErrPinTooShort(), "VAL_003", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
		})
	}
}

func TestErrorsAs(t *testing.T) {
	var appErr *AppError
	err := fmt.Errorf("handler: %w", ErrDuplicateAccount())

	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, "AUTH_002", appErr.Code)
}
