package handler

import (
	"dhandhan-quiz-backend/internal/adapter/http/dto"
	"dhandhan-quiz-backend/internal/adapter/http/middleware"
	"dhandhan-quiz-backend/internal/core/ports"
	"dhandhan-quiz-backend/pkg/apperror"
	"dhandhan-quiz-backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// SoundSync is notified when a player toggles the sound preference, so live
// cue connections follow without a reconnect.
type SoundSync interface {
	SetSound(accountKey string, enabled bool)
}

// WalletHandler exposes the player profile, wallet and request surface.
type WalletHandler struct {
	walletSvc    ports.WalletService
	workflowSvc  ports.WorkflowService
	reportingSvc ports.ReportingService
	soundSync    SoundSync // nil = no live connections to update
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(
	walletSvc ports.WalletService,
	workflowSvc ports.WorkflowService,
	reportingSvc ports.ReportingService,
	soundSync SoundSync,
) *WalletHandler {
	return &WalletHandler{
		walletSvc:    walletSvc,
		workflowSvc:  workflowSvc,
		reportingSvc: reportingSvc,
		soundSync:    soundSync,
	}
}

// Profile handles GET /api/v1/me.
func (h *WalletHandler) Profile(c *gin.Context) {
	account, err := h.walletSvc.Profile(c.Request.Context(), middleware.AccountKey(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewProfileResponse(account))
}

// ClaimBonus handles POST /api/v1/me/bonus.
func (h *WalletHandler) ClaimBonus(c *gin.Context) {
	account, err := h.walletSvc.ClaimDailyBonus(c.Request.Context(), middleware.AccountKey(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewProfileResponse(account))
}

// SetSound handles PUT /api/v1/me/sound.
func (h *WalletHandler) SetSound(c *gin.Context) {
	var req dto.SoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	accountKey := middleware.AccountKey(c)
	account, err := h.walletSvc.SetSound(c.Request.Context(), accountKey, *req.Enabled)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.soundSync != nil {
		h.soundSync.SetSound(accountKey, *req.Enabled)
	}
	response.OK(c, dto.NewProfileResponse(account))
}

// CreateDeposit handles POST /api/v1/wallet/deposits.
func (h *WalletHandler) CreateDeposit(c *gin.Context) {
	var req dto.DepositCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	deposit, err := h.workflowSvc.CreateDeposit(c.Request.Context(), ports.CreateDepositRequest{
		AccountKey:   middleware.AccountKey(c),
		Method:       req.Method,
		SenderNumber: req.SenderNumber,
		TrxID:        req.TrxID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewDepositResponse(deposit))
}

// CreateWithdrawal handles POST /api/v1/wallet/withdrawals.
func (h *WalletHandler) CreateWithdrawal(c *gin.Context) {
	var req dto.WithdrawalCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		response.Error(c, apperror.Validation("amount must be a decimal number"))
		return
	}

	withdrawal, err := h.workflowSvc.CreateWithdrawal(c.Request.Context(), ports.CreateWithdrawalRequest{
		AccountKey:     middleware.AccountKey(c),
		Amount:         amount,
		Method:         req.Method,
		ReceiverNumber: req.ReceiverNumber,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewWithdrawalResponse(withdrawal))
}

// Leaderboard handles GET /api/v1/leaderboard.
func (h *WalletHandler) Leaderboard(c *gin.Context) {
	entries, err := h.reportingSvc.Leaderboard(c.Request.Context(), 10)
	if err != nil {
		response.Error(c, err)
		return
	}

	rows := make([]dto.LeaderboardEntryResponse, len(entries))
	for i, entry := range entries {
		rows[i] = dto.LeaderboardEntryResponse{
			Rank:  entry.Rank,
			Name:  entry.Name,
			Score: entry.Score,
			Prize: entry.Prize,
		}
	}
	response.OK(c, rows)
}
