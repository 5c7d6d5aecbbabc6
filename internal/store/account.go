package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/pennyboard/pennyboard-backend/internal/errs"
	"github.com/pennyboard/pennyboard-backend/internal/models"
)

type accountStore struct {
	client *firestore.Client
}

func NewAccountStore(client *firestore.Client) *accountStore {
	return &accountStore{client: client}
}

func (s *accountStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("accounts")
}

// UpsertIdentity writes the identity fields (name, type, mask, ...) without
// touching balance fields. Used at link time and when transaction sync
// discovers account metadata changes.
func (s *accountStore) UpsertIdentity(ctx context.Context, uid string, a *models.Account) error {
	now := time.Now()
	data := map[string]interface{}{
		"accountId":    a.AccountID,
		"itemId":       a.ItemID,
		"name":         a.Name,
		"officialName": a.OfficialName,
		"mask":         a.Mask,
		"type":         a.Type,
		"subtype":      a.Subtype,
		"updatedAt":    now,
	}
	if a.Currency != "" {
		data["currency"] = a.Currency
	}
	if a.CreatedAt.IsZero() {
		data["createdAt"] = now
	}
	if _, err := s.collection(uid).Doc(a.AccountID).Set(ctx, data, firestore.MergeAll); err != nil {
		return errs.NewDatabaseError("update", "failed to upsert account identity", err)
	}
	return nil
}

// UpsertBalances overwrites only the balance snapshot fields for one account,
// keyed by the provider account ID.
func (s *accountStore) UpsertBalances(ctx context.Context, uid, accountID string, current, available, limit *float64, currency string, asOf time.Time) error {
	data := map[string]interface{}{
		"currentBalance":     current,
		"availableBalance":   available,
		"creditLimit":        limit,
		"balanceLastUpdated": asOf,
		"updatedAt":          time.Now(),
	}
	if currency != "" {
		data["currency"] = currency
	}
	if _, err := s.collection(uid).Doc(accountID).Set(ctx, data, firestore.MergeAll); err != nil {
		return errs.NewDatabaseError("update", "failed to upsert account balances", err)
	}
	return nil
}

// GetByAccountIDs resolves provider account IDs to stored accounts in a single
// bulk read. Unknown IDs are simply absent from the result map.
func (s *accountStore) GetByAccountIDs(ctx context.Context, uid string, accountIDs []string) (map[string]*models.Account, error) {
	result := make(map[string]*models.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return result, nil
	}

	refs := make([]*firestore.DocumentRef, 0, len(accountIDs))
	coll := s.collection(uid)
	for _, id := range accountIDs {
		refs = append(refs, coll.Doc(id))
	}

	snaps, err := s.client.GetAll(ctx, refs)
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to bulk-read accounts", err)
	}
	for _, snap := range snaps {
		if !snap.Exists() {
			continue
		}
		var a models.Account
		if err := snap.DataTo(&a); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse account data", err)
		}
		result[a.AccountID] = &a
	}
	return result, nil
}

func (s *accountStore) List(ctx context.Context, uid string) ([]*models.Account, error) {
	docs, err := s.collection(uid).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list accounts", err)
	}
	accounts := make([]*models.Account, 0, len(docs))
	for _, d := range docs {
		var a models.Account
		if err := d.DataTo(&a); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse account data", err)
		}
		accounts = append(accounts, &a)
	}
	return accounts, nil
}

// DeleteByItem removes every account under a connection. Used by maintenance
// deletes only.
func (s *accountStore) DeleteByItem(ctx context.Context, uid, itemID string) error {
	docs, err := s.collection(uid).Where("itemId", "==", itemID).Documents(ctx).GetAll()
	if err != nil {
		return errs.NewDatabaseError("read", "failed to list accounts for item", err)
	}

	bw := s.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(docs))
	for _, d := range docs {
		job, err := bw.Delete(d.Ref)
		if err != nil {
			bw.End()
			return errs.NewDatabaseError("delete", "failed to schedule account delete", err)
		}
		jobs = append(jobs, job)
	}
	bw.End()

	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return errs.NewDatabaseError("delete", "failed to delete account", err)
		}
	}
	return nil
}
