package services

import (
	"testing"

	"github.com/pennyboard/pennyboard-backend/internal/dto"
	"github.com/pennyboard/pennyboard-backend/internal/models"
)

func TestBuildPageLookupsDeduplicatesIDs(t *testing.T) {
	accounts := &fakeAccountLookupStore{accounts: map[string]*models.Account{
		"acc-1": {AccountID: "acc-1"},
		"acc-2": {AccountID: "acc-2"},
	}}
	txs := &fakeTxSyncStore{docs: map[string]models.Transaction{
		"tx-1": {TransactionID: "tx-1"},
	}}

	page := []dto.ProviderTransaction{
		{TransactionID: "tx-1", AccountID: "acc-1"},
		{TransactionID: "tx-2", AccountID: "acc-1"},
		{TransactionID: "tx-3", AccountID: "acc-2"},
		{TransactionID: "tx-1", AccountID: "acc-1"}, // duplicate row
	}

	lookups, err := buildPageLookups(testCtx(), "uid-1", page, accounts, txs)
	if err != nil {
		t.Fatalf("buildPageLookups returned error: %v", err)
	}

	if len(accounts.queried) != 1 || len(txs.queried) != 1 {
		t.Fatalf("expected one bulk query per store, got %d/%d", len(accounts.queried), len(txs.queried))
	}
	if got := accounts.queried[0]; len(got) != 2 {
		t.Fatalf("expected deduplicated account IDs, got %v", got)
	}
	if got := txs.queried[0]; len(got) != 3 {
		t.Fatalf("expected deduplicated transaction IDs, got %v", got)
	}

	if len(lookups.accounts) != 2 {
		t.Fatalf("expected 2 resolved accounts, got %d", len(lookups.accounts))
	}
	if _, ok := lookups.existingIDs["tx-1"]; !ok {
		t.Fatal("expected tx-1 marked existing")
	}
	if _, ok := lookups.existingIDs["tx-2"]; ok {
		t.Fatal("tx-2 should not be marked existing")
	}
}

func TestBuildPageLookupsEmptyPageSkipsQueries(t *testing.T) {
	accounts := &fakeAccountLookupStore{}
	txs := &fakeTxSyncStore{}

	lookups, err := buildPageLookups(testCtx(), "uid-1", nil, accounts, txs)
	if err != nil {
		t.Fatalf("buildPageLookups returned error: %v", err)
	}
	if len(accounts.queried) != 0 || len(txs.queried) != 0 {
		t.Fatal("expected no store queries for an empty page")
	}
	if len(lookups.accounts) != 0 || len(lookups.existingIDs) != 0 {
		t.Fatal("expected empty lookups for an empty page")
	}
}
