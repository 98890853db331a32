package handler

import (
	"dhandhan-quiz-backend/internal/adapter/http/dto"
	"dhandhan-quiz-backend/internal/adapter/http/middleware"
	"dhandhan-quiz-backend/internal/core/ports"
	"dhandhan-quiz-backend/pkg/apperror"
	"dhandhan-quiz-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	authSvc ports.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authSvc ports.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.authSvc.Register(c.Request.Context(), ports.RegisterRequest{
		Name:   req.Name,
		Mobile: req.Mobile,
		Pin:    req.Pin,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, authResponse(result))
}

// Login handles POST /api/v1/auth/login. Admin logs in through the same
// endpoint with the configured credential.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.authSvc.Login(c.Request.Context(), req.Mobile, req.Pin)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, authResponse(result))
}

// Logout handles POST /api/v1/auth/logout. Tokens are stateless, so this is
// an audited acknowledgment; the client throws its token away.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authSvc.Logout(c.Request.Context(), middleware.AccountKey(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"logged_out": true})
}

func authResponse(result *ports.AuthResult) dto.AuthResponse {
	resp := dto.AuthResponse{
		Token:               result.Token,
		Expiry:              result.TokenExpiry.Unix(),
		Role:                result.Role,
		SubscriptionExpired: result.SubscriptionExpired,
	}
	if result.Account != nil {
		resp.Profile = dto.NewProfileResponse(result.Account)
	}
	return resp
}
