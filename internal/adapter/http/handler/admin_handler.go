package handler

import (
	"dhandhan-quiz-backend/internal/adapter/http/dto"
	"dhandhan-quiz-backend/internal/core/ports"
	"dhandhan-quiz-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the admin panel: dashboard, account list and the
// deposit/withdrawal approval queue.
type AdminHandler struct {
	workflowSvc  ports.WorkflowService
	reportingSvc ports.ReportingService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(workflowSvc ports.WorkflowService, reportingSvc ports.ReportingService) *AdminHandler {
	return &AdminHandler{
		workflowSvc:  workflowSvc,
		reportingSvc: reportingSvc,
	}
}

// Stats handles GET /api/v1/admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.reportingSvc.DashboardStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.DashboardStatsResponse{
		TotalAccounts:      stats.TotalAccounts,
		TotalBalance:       stats.TotalBalance.StringFixed(2),
		PremiumAccounts:    stats.PremiumAccounts,
		PendingDeposits:    stats.PendingDeposits,
		PendingWithdrawals: stats.PendingWithdrawals,
	})
}

// Accounts handles GET /api/v1/admin/accounts.
func (h *AdminHandler) Accounts(c *gin.Context) {
	accounts, err := h.reportingSvc.ListAccounts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	rows := make([]dto.AdminAccountResponse, len(accounts))
	for i := range accounts {
		rows[i] = dto.NewAdminAccountResponse(&accounts[i])
	}
	response.OK(c, rows)
}

// ListDeposits handles GET /api/v1/admin/deposits.
func (h *AdminHandler) ListDeposits(c *gin.Context) {
	deposits, err := h.workflowSvc.ListDeposits(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	rows := make([]dto.RequestResponse, len(deposits))
	for i := range deposits {
		rows[i] = dto.NewDepositResponse(&deposits[i])
	}
	response.OK(c, rows)
}

// ApproveDeposit handles PUT /api/v1/admin/deposits/:id/approve.
func (h *AdminHandler) ApproveDeposit(c *gin.Context) {
	if err := h.workflowSvc.ApproveDeposit(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"approved": true})
}

// RejectDeposit handles PUT /api/v1/admin/deposits/:id/reject.
func (h *AdminHandler) RejectDeposit(c *gin.Context) {
	if err := h.workflowSvc.RejectDeposit(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"rejected": true})
}

// ListWithdrawals handles GET /api/v1/admin/withdrawals.
func (h *AdminHandler) ListWithdrawals(c *gin.Context) {
	withdrawals, err := h.workflowSvc.ListWithdrawals(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	rows := make([]dto.RequestResponse, len(withdrawals))
	for i := range withdrawals {
		rows[i] = dto.NewWithdrawalResponse(&withdrawals[i])
	}
	response.OK(c, rows)
}

// ApproveWithdrawal handles PUT /api/v1/admin/withdrawals/:id/approve.
func (h *AdminHandler) ApproveWithdrawal(c *gin.Context) {
	if err := h.workflowSvc.ApproveWithdrawal(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"approved": true})
}

// RejectWithdrawal handles PUT /api/v1/admin/withdrawals/:id/reject.
func (h *AdminHandler) RejectWithdrawal(c *gin.Context) {
	if err := h.workflowSvc.RejectWithdrawal(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"rejected": true})
}
