package handler

import (
	"dhandhan-quiz-backend/internal/adapter/http/dto"
	"dhandhan-quiz-backend/internal/adapter/http/middleware"
	"dhandhan-quiz-backend/internal/core/domain"
	"dhandhan-quiz-backend/internal/core/ports"
	"dhandhan-quiz-backend/pkg/apperror"
	"dhandhan-quiz-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// GameHandler exposes the quiz session lifecycle.
type GameHandler struct {
	gameSvc ports.GameService
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(gameSvc ports.GameService) *GameHandler {
	return &GameHandler{gameSvc: gameSvc}
}

// Start handles POST /api/v1/game/start.
func (h *GameHandler) Start(c *gin.Context) {
	view, err := h.gameSvc.Start(c.Request.Context(), middleware.AccountKey(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewSessionResponse(view))
}

// Answer handles POST /api/v1/game/answer.
func (h *GameHandler) Answer(c *gin.Context) {
	var req dto.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	view, err := h.gameSvc.Answer(c.Request.Context(), middleware.AccountKey(c), *req.OptionIndex)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewSessionResponse(view))
}

// UseLifeline handles POST /api/v1/game/lifeline.
func (h *GameHandler) UseLifeline(c *gin.Context) {
	var req dto.LifelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	view, err := h.gameSvc.UseLifeline(c.Request.Context(), middleware.AccountKey(c), domain.LifelineKind(req.Kind))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewSessionResponse(view))
}

// ReportQuestion handles POST /api/v1/game/report.
func (h *GameHandler) ReportQuestion(c *gin.Context) {
	view, err := h.gameSvc.ReportQuestion(c.Request.Context(), middleware.AccountKey(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewSessionResponse(view))
}

// State handles GET /api/v1/game/state.
func (h *GameHandler) State(c *gin.Context) {
	view, err := h.gameSvc.State(c.Request.Context(), middleware.AccountKey(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewSessionResponse(view))
}

// Exit handles POST /api/v1/game/exit. Abandons the session; nothing is
// scored or settled.
func (h *GameHandler) Exit(c *gin.Context) {
	if err := h.gameSvc.Exit(c.Request.Context(), middleware.AccountKey(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"exited": true})
}
