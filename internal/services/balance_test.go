package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pennyboard/pennyboard-backend/internal/dto"
	"github.com/pennyboard/pennyboard-backend/internal/models"
)

type fakeBalancePlaid struct {
	accounts []dto.ProviderAccount
	err      error
}

func (f *fakeBalancePlaid) GetBalances(ctx context.Context, accessToken string) ([]dto.ProviderAccount, error) {
	return f.accounts, f.err
}

type balanceUpsert struct {
	accountID string
	current   *float64
	available *float64
	limit     *float64
	currency  string
	asOf      time.Time
}

type fakeBalanceAccountStore struct {
	upserts []balanceUpsert
	err     error
}

func (f *fakeBalanceAccountStore) UpsertBalances(ctx context.Context, uid, accountID string, current, available, limit *float64, currency string, asOf time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.upserts = append(f.upserts, balanceUpsert{
		accountID: accountID,
		current:   current,
		available: available,
		limit:     limit,
		currency:  currency,
		asOf:      asOf,
	})
	return nil
}

func ptr(v float64) *float64 { return &v }

func TestRefreshBalancesUpsertsEveryAccount(t *testing.T) {
	reported := time.Date(2025, 8, 31, 6, 0, 0, 0, time.UTC)
	plaid := &fakeBalancePlaid{accounts: []dto.ProviderAccount{
		{AccountID: "acc-1", Current: ptr(1200.55), Available: ptr(1100.00), Currency: "USD", LastUpdated: &reported},
		{AccountID: "acc-2", Current: ptr(-450.10), Limit: ptr(5000), Currency: "USD"},
	}}
	store := &fakeBalanceAccountStore{}

	svc := NewBalanceService(plaid, store)
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	svc.clockNow = func() time.Time { return now }

	result, err := svc.RefreshBalances(testCtx(), "uid-1", "item-1", "tok-1")
	if err != nil {
		t.Fatalf("RefreshBalances returned error: %v", err)
	}
	if result.RefreshedAccounts != 2 {
		t.Fatalf("expected 2 refreshed accounts, got %d", result.RefreshedAccounts)
	}
	if result.ItemID != "item-1" {
		t.Fatalf("expected result tied to item-1, got %q", result.ItemID)
	}

	if len(store.upserts) != 2 {
		t.Fatalf("expected 2 upserts, got %d", len(store.upserts))
	}
	if !store.upserts[0].asOf.Equal(reported) {
		t.Fatalf("expected provider-reported timestamp, got %v", store.upserts[0].asOf)
	}
	if !store.upserts[1].asOf.Equal(now) {
		t.Fatalf("expected clock fallback timestamp, got %v", store.upserts[1].asOf)
	}
	if *store.upserts[1].current != -450.10 {
		t.Fatalf("expected current balance passed through, got %v", *store.upserts[1].current)
	}
}

func TestRefreshBalancesPropagatesProviderError(t *testing.T) {
	plaid := &fakeBalancePlaid{err: errors.New("provider down")}
	svc := NewBalanceService(plaid, &fakeBalanceAccountStore{})

	if _, err := svc.RefreshBalances(testCtx(), "uid-1", "item-1", "tok-1"); err == nil {
		t.Fatal("expected provider error to propagate")
	}
}

func TestIsBalanceStale(t *testing.T) {
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

	fresh := now.Add(-23 * time.Hour)
	if IsBalanceStale(&models.Account{BalanceLastUpdated: &fresh}, now) {
		t.Fatal("23h-old balance should be fresh")
	}

	stale := now.Add(-25 * time.Hour)
	if !IsBalanceStale(&models.Account{BalanceLastUpdated: &stale}, now) {
		t.Fatal("25h-old balance should be stale")
	}

	if !IsBalanceStale(&models.Account{}, now) {
		t.Fatal("missing timestamp should be stale")
	}
}
