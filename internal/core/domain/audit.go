package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction categorises an audited operation.
type AuditAction string

const (
	AuditActionRegister           AuditAction = "REGISTER"
	AuditActionLogin              AuditAction = "LOGIN"
	AuditActionLogout             AuditAction = "LOGOUT"
	AuditActionDepositCreate      AuditAction = "DEPOSIT_CREATE"
	AuditActionDepositApprove     AuditAction = "DEPOSIT_APPROVE"
	AuditActionDepositReject      AuditAction = "DEPOSIT_REJECT"
	AuditActionWithdrawalCreate   AuditAction = "WITHDRAWAL_CREATE"
	AuditActionWithdrawalApprove  AuditAction = "WITHDRAWAL_APPROVE"
	AuditActionWithdrawalReject   AuditAction = "WITHDRAWAL_REJECT"
	AuditActionSettlement         AuditAction = "SETTLEMENT"
	AuditActionSubscriptionExpiry AuditAction = "SUBSCRIPTION_EXPIRY"
)

// NewAuditLog builds a timestamped audit entry.
func NewAuditLog(actor string, action AuditAction, resourceType, resourceID string, details []byte, ip string) *AuditLog {
	return &AuditLog{
		ID:           uuid.New(),
		Actor:        actor,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      details,
		IPAddress:    ip,
		CreatedAt:    time.Now().UTC(),
	}
}

// AuditLog is one immutable audit trail entry.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	Actor        string      `json:"actor"` // account key or "admin"
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id"`
	Details      []byte      `json:"details,omitempty"`
	IPAddress    string      `json:"ip_address,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}
