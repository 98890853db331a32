package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"dhandhan-quiz-backend/config"
	"dhandhan-quiz-backend/internal/core/domain"
	"dhandhan-quiz-backend/internal/core/ports"
	"dhandhan-quiz-backend/pkg/apperror"

	"github.com/rs/zerolog"
)

// Bangladeshi mobile numbers: 11 digits, operator prefix 01.
var mobilePattern = regexp.MustCompile(`^01[0-9]{9}$`)

const minPinLength = 4

// AuthServiceImpl implements ports.AuthService. The admin identity is not a
// stored account; it is matched against configured credentials and issued a
// token with the admin role.
type AuthServiceImpl struct {
	accountRepo    ports.AccountRepository
	hashSvc        ports.HashService
	tokenSvc       ports.TokenService
	subSvc         ports.SubscriptionService
	auditSvc       ports.AuditService
	admin          config.AdminConfig
	freeDailyGames int
	log            zerolog.Logger
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(
	accountRepo ports.AccountRepository,
	hashSvc ports.HashService,
	tokenSvc ports.TokenService,
	subSvc ports.SubscriptionService,
	auditSvc ports.AuditService,
	admin config.AdminConfig,
	freeDailyGames int,
	log zerolog.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		accountRepo:    accountRepo,
		hashSvc:        hashSvc,
		tokenSvc:       tokenSvc,
		subSvc:         subSvc,
		auditSvc:       auditSvc,
		admin:          admin,
		freeDailyGames: freeDailyGames,
		log:            log,
	}
}

// Register creates a new player account keyed by mobile number.
func (s *AuthServiceImpl) Register(ctx context.Context, req ports.RegisterRequest) (*ports.AuthResult, error) {
	if !mobilePattern.MatchString(req.Mobile) {
		return nil, apperror.ErrInvalidMobile()
	}
	if len(req.Pin) < minPinLength {
		return nil, apperror.ErrPinTooShort()
	}
	if req.Name == "" {
		return nil, apperror.Validation("name is required")
	}
	if req.Mobile == s.admin.Mobile {
		return nil, apperror.ErrDuplicateAccount()
	}

	pinHash, err := s.hashSvc.Hash(req.Pin)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("hash pin: %w", err))
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Mobile:    req.Mobile,
		Name:      req.Name,
		PinHash:   pinHash,
		Stats:     domain.DefaultStats(s.freeDailyGames),
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.accountRepo.Create(ctx, account)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create account: %w", err))
	}
	if !created {
		return nil, apperror.ErrDuplicateAccount()
	}

	token, expiry, err := s.tokenSvc.Generate(account.Mobile, ports.RolePlayer)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	s.log.Info().Str("account", account.Mobile).Msg("account registered")
	if s.auditSvc != nil {
		s.auditSvc.Log(ctx, domain.NewAuditLog(
			account.Mobile, domain.AuditActionRegister, "account", account.Mobile, nil, "",
		))
	}

	return &ports.AuthResult{
		Token:       token,
		TokenExpiry: expiry,
		Role:        ports.RolePlayer,
		Account:     account,
	}, nil
}

// Login validates credentials and returns a signed token. A lapsed premium
// subscription is downgraded here, before the account is returned.
func (s *AuthServiceImpl) Login(ctx context.Context, mobile, pin string) (*ports.AuthResult, error) {
	if mobile == s.admin.Mobile && pin == s.admin.Pin {
		token, expiry, err := s.tokenSvc.Generate(mobile, ports.RoleAdmin)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("generate token: %w", err))
		}
		s.log.Info().Msg("admin logged in")
		return &ports.AuthResult{
			Token:       token,
			TokenExpiry: expiry,
			Role:        ports.RoleAdmin,
		}, nil
	}

	account, err := s.accountRepo.Get(ctx, mobile)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("find account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrInvalidCredential()
	}

	valid, err := s.hashSvc.Verify(pin, account.PinHash)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("verify pin: %w", err))
	}
	if !valid {
		return nil, apperror.ErrInvalidCredential()
	}

	account, downgraded, err := s.subSvc.CheckAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	token, expiry, err := s.tokenSvc.Generate(account.Mobile, ports.RolePlayer)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	if s.auditSvc != nil {
		s.auditSvc.Log(ctx, domain.NewAuditLog(
			account.Mobile, domain.AuditActionLogin, "account", account.Mobile, nil, "",
		))
	}

	return &ports.AuthResult{
		Token:               token,
		TokenExpiry:         expiry,
		Role:                ports.RolePlayer,
		Account:             account,
		SubscriptionExpired: downgraded,
	}, nil
}

// Logout acknowledges the end of a session. The bearer token stays valid
// until expiry; the client discards it, and the event lands in the audit
// trail.
func (s *AuthServiceImpl) Logout(ctx context.Context, accountKey string) error {
	s.log.Info().Str("account", accountKey).Msg("account logged out")
	if s.auditSvc != nil {
		s.auditSvc.Log(ctx, domain.NewAuditLog(
			accountKey, domain.AuditActionLogout, "account", accountKey, nil, "",
		))
	}
	return nil
}
