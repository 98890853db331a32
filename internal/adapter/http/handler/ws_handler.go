package handler

import (
	"dhandhan-quiz-backend/internal/adapter/http/middleware"
	"dhandhan-quiz-backend/internal/adapter/ws"
	"dhandhan-quiz-backend/internal/core/ports"
	"dhandhan-quiz-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// WSHandler upgrades authenticated players onto the game cue channel.
type WSHandler struct {
	hub       *ws.Hub
	walletSvc ports.WalletService
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(hub *ws.Hub, walletSvc ports.WalletService) *WSHandler {
	return &WSHandler{hub: hub, walletSvc: walletSvc}
}

// Connect handles GET /api/v1/ws. The connection inherits the account's
// current sound preference; SetSound updates it live.
func (h *WSHandler) Connect(c *gin.Context) {
	accountKey := middleware.AccountKey(c)
	account, err := h.walletSvc.Profile(c.Request.Context(), accountKey)
	if err != nil {
		response.Error(c, err)
		return
	}

	ws.ServeWS(c.Writer, c.Request, h.hub, accountKey, account.Stats.SoundEnabled)
}
