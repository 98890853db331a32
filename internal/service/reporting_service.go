package service

import (
	"context"
	"fmt"
	"sort"

	"dhandhan-quiz-backend/internal/core/domain"
	"dhandhan-quiz-backend/internal/core/ports"
	"dhandhan-quiz-backend/pkg/apperror"

	"github.com/shopspring/decimal"
)

// Leaderboard prize labels by rank band.
var prizeByRank = []struct {
	maxRank int
	label   string
}{
	{1, "৳৫০০"},
	{2, "৳৩০০"},
	{3, "৳২০০"},
	{5, "৳১০০"},
	{10, "৳৫০"},
}

// ReportingServiceImpl implements ports.ReportingService. Aggregates are
// recomputed on demand from full scans; the ledger is small and local.
type ReportingServiceImpl struct {
	accountRepo    ports.AccountRepository
	depositRepo    ports.DepositRepository
	withdrawalRepo ports.WithdrawalRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(
	accountRepo ports.AccountRepository,
	depositRepo ports.DepositRepository,
	withdrawalRepo ports.WithdrawalRepository,
) *ReportingServiceImpl {
	return &ReportingServiceImpl{
		accountRepo:    accountRepo,
		depositRepo:    depositRepo,
		withdrawalRepo: withdrawalRepo,
	}
}

// DashboardStats recomputes the admin dashboard aggregate.
func (s *ReportingServiceImpl) DashboardStats(ctx context.Context) (*ports.DashboardStats, error) {
	accounts, err := s.accountRepo.All(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("scan accounts: %w", err))
	}

	stats := &ports.DashboardStats{
		TotalAccounts: len(accounts),
		TotalBalance:  decimal.Zero,
	}
	for _, account := range accounts {
		stats.TotalBalance = stats.TotalBalance.Add(account.Stats.Balance)
		if account.Stats.IsPremium {
			stats.PremiumAccounts++
		}
	}

	deposits, err := s.depositRepo.All(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("scan deposits: %w", err))
	}
	for _, req := range deposits {
		if req.IsPending() {
			stats.PendingDeposits++
		}
	}

	withdrawals, err := s.withdrawalRepo.All(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("scan withdrawals: %w", err))
	}
	for _, req := range withdrawals {
		if req.IsPending() {
			stats.PendingWithdrawals++
		}
	}

	return stats, nil
}

// Leaderboard ranks accounts by total score, descending. Ties break by name
// so the order is stable across recomputes.
func (s *ReportingServiceImpl) Leaderboard(ctx context.Context, limit int) ([]ports.LeaderboardEntry, error) {
	accounts, err := s.accountRepo.All(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("scan accounts: %w", err))
	}

	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].Stats.TotalScore != accounts[j].Stats.TotalScore {
			return accounts[i].Stats.TotalScore > accounts[j].Stats.TotalScore
		}
		return accounts[i].Name < accounts[j].Name
	})

	if limit > 0 && len(accounts) > limit {
		accounts = accounts[:limit]
	}

	entries := make([]ports.LeaderboardEntry, len(accounts))
	for i, account := range accounts {
		entries[i] = ports.LeaderboardEntry{
			Rank:  i + 1,
			Name:  account.Name,
			Score: account.Stats.TotalScore,
			Prize: prizeForRank(i + 1),
		}
	}
	return entries, nil
}

// ListAccounts returns every registered account for the admin panel.
func (s *ReportingServiceImpl) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.All(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("scan accounts: %w", err))
	}
	return accounts, nil
}

func prizeForRank(rank int) string {
	for _, band := range prizeByRank {
		if rank <= band.maxRank {
			return band.label
		}
	}
	return ""
}
