package domain

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// RequestStatus is the lifecycle state of a deposit or withdrawal request.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

// DepositRequest is a user-submitted claim of an external premium payment,
// pending admin verification. The amount is fixed by the plan price.
type DepositRequest struct {
	ID           string          `json:"id"`
	AccountKey   string          `json:"account_key"`
	AccountName  string          `json:"account_name"`
	Method       string          `json:"method"`
	SenderNumber string          `json:"sender_number"`
	TrxID        string          `json:"trx_id"`
	Amount       decimal.Decimal `json:"amount"`
	CreatedAt    time.Time       `json:"created_at"`
	Status       RequestStatus   `json:"status"`
}

// WithdrawalRequest is a user-submitted payout claim. The amount is debited
// from the balance at creation and refunded in full on rejection.
type WithdrawalRequest struct {
	ID             string          `json:"id"`
	AccountKey     string          `json:"account_key"`
	AccountName    string          `json:"account_name"`
	Method         string          `json:"method"`
	ReceiverNumber string          `json:"receiver_number"`
	Amount         decimal.Decimal `json:"amount"`
	CreatedAt      time.Time       `json:"created_at"`
	Status         RequestStatus   `json:"status"`
}

// NewRequestID derives a request identifier from the creation instant.
func NewRequestID(now time.Time) string {
	return strconv.FormatInt(now.UnixNano(), 10)
}

// IsPending reports whether the request can still be acted on by an admin.
func (r *DepositRequest) IsPending() bool    { return r.Status == RequestStatusPending }
func (r *WithdrawalRequest) IsPending() bool { return r.Status == RequestStatusPending }
