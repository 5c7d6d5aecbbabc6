package services

import (
	"context"
	"time"

	"github.com/pennyboard/pennyboard-backend/internal/dto"
	"github.com/pennyboard/pennyboard-backend/internal/models"
	"github.com/pennyboard/pennyboard-backend/pkg/logger"
)

// BalanceStaleAfter is the freshness threshold for a stored balance snapshot.
const BalanceStaleAfter = 24 * time.Hour

type plaidBalanceClient interface {
	GetBalances(ctx context.Context, accessToken string) ([]dto.ProviderAccount, error)
}

type accountBalanceStore interface {
	UpsertBalances(ctx context.Context, uid, accountID string, current, available, limit *float64, currency string, asOf time.Time) error
}

type balanceService struct {
	plaid    plaidBalanceClient
	accounts accountBalanceStore
	clockNow func() time.Time
}

func NewBalanceService(plaid plaidBalanceClient, accounts accountBalanceStore) *balanceService {
	return &balanceService{
		plaid:    plaid,
		accounts: accounts,
		clockNow: time.Now,
	}
}

// RefreshBalances pulls the current balance snapshot for every account under
// a connection in one provider call and upserts each account by its provider
// account ID. The snapshot timestamp comes from the provider when reported,
// otherwise "now".
func (s *balanceService) RefreshBalances(ctx context.Context, uid, itemID, accessToken string) (dto.BalanceRefreshResult, error) {
	result := dto.BalanceRefreshResult{ItemID: itemID}

	providerAccounts, err := s.plaid.GetBalances(ctx, accessToken)
	if err != nil {
		return result, err
	}

	for _, pa := range providerAccounts {
		asOf := s.clockNow()
		if pa.LastUpdated != nil {
			asOf = *pa.LastUpdated
		}
		if err := s.accounts.UpsertBalances(ctx, uid, pa.AccountID, pa.Current, pa.Available, pa.Limit, pa.Currency, asOf); err != nil {
			return result, err
		}
		result.RefreshedAccounts++
	}

	log := logger.FromContext(ctx)
	log.Info("balances refreshed", "bank_item_id", itemID, "accounts", result.RefreshedAccounts)
	return result, nil
}

// IsBalanceStale reports whether an account's balance snapshot is older than
// the freshness threshold. A missing timestamp is always stale. Derived at
// read time, never stored.
func IsBalanceStale(account *models.Account, now time.Time) bool {
	if account.BalanceLastUpdated == nil {
		return true
	}
	return now.Sub(*account.BalanceLastUpdated) > BalanceStaleAfter
}
