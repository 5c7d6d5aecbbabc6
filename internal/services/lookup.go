package services

import (
	"context"

	"github.com/pennyboard/pennyboard-backend/internal/dto"
	"github.com/pennyboard/pennyboard-backend/internal/models"
)

// accountLookupStore is the bulk-read surface needed to reconcile a page.
type accountLookupStore interface {
	GetByAccountIDs(ctx context.Context, uid string, accountIDs []string) (map[string]*models.Account, error)
}

type transactionLookupStore interface {
	ExistingIDs(ctx context.Context, uid string, txIDs []string) (map[string]struct{}, error)
}

// pageLookups carries everything reconciliation needs to classify a page's
// rows without issuing per-row queries.
type pageLookups struct {
	accounts    map[string]*models.Account
	existingIDs map[string]struct{}
}

// buildPageLookups resolves local accounts and already-known transaction IDs
// for one provider page in two bulk queries. IDs are deduplicated first; an
// empty page issues no queries at all.
func buildPageLookups(ctx context.Context, uid string, page []dto.ProviderTransaction, accounts accountLookupStore, txs transactionLookupStore) (pageLookups, error) {
	lookups := pageLookups{
		accounts:    map[string]*models.Account{},
		existingIDs: map[string]struct{}{},
	}
	if len(page) == 0 {
		return lookups, nil
	}

	accountIDs := make([]string, 0, len(page))
	txIDs := make([]string, 0, len(page))
	seenAccounts := map[string]struct{}{}
	seenTxs := map[string]struct{}{}
	for _, pt := range page {
		if pt.AccountID != "" {
			if _, ok := seenAccounts[pt.AccountID]; !ok {
				seenAccounts[pt.AccountID] = struct{}{}
				accountIDs = append(accountIDs, pt.AccountID)
			}
		}
		if pt.TransactionID != "" {
			if _, ok := seenTxs[pt.TransactionID]; !ok {
				seenTxs[pt.TransactionID] = struct{}{}
				txIDs = append(txIDs, pt.TransactionID)
			}
		}
	}

	accountsByID, err := accounts.GetByAccountIDs(ctx, uid, accountIDs)
	if err != nil {
		return lookups, err
	}
	existing, err := txs.ExistingIDs(ctx, uid, txIDs)
	if err != nil {
		return lookups, err
	}

	lookups.accounts = accountsByID
	lookups.existingIDs = existing
	return lookups, nil
}
