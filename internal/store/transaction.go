package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/pennyboard/pennyboard-backend/internal/dto"
	"github.com/pennyboard/pennyboard-backend/internal/errs"
	"github.com/pennyboard/pennyboard-backend/internal/models"
)

type transactionStore struct {
	client *firestore.Client
}

func NewTransactionStore(client *firestore.Client) *transactionStore {
	return &transactionStore{client: client}
}

func (s *transactionStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("transactions")
}

// Upsert writes one transaction keyed by its provider transaction ID. The
// same ID overwrites in place, so re-running a sync is safe.
func (s *transactionStore) Upsert(ctx context.Context, uid string, tx *models.Transaction) error {
	now := time.Now()
	tx.UpdatedAt = now
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = now
	}
	if _, err := s.collection(uid).Doc(tx.TransactionID).Set(ctx, tx, firestore.MergeAll); err != nil {
		return errs.NewDatabaseError("update", "failed to upsert transaction", err)
	}
	return nil
}

// ExistingIDs reports which of the given provider transaction IDs already
// have a stored document. One bulk read, no per-row lookups.
func (s *transactionStore) ExistingIDs(ctx context.Context, uid string, txIDs []string) (map[string]struct{}, error) {
	existing := make(map[string]struct{}, len(txIDs))
	if len(txIDs) == 0 {
		return existing, nil
	}

	refs := make([]*firestore.DocumentRef, 0, len(txIDs))
	coll := s.collection(uid)
	for _, id := range txIDs {
		refs = append(refs, coll.Doc(id))
	}

	snaps, err := s.client.GetAll(ctx, refs)
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to bulk-read transactions", err)
	}
	for _, snap := range snaps {
		if snap.Exists() {
			existing[snap.Ref.ID] = struct{}{}
		}
	}
	return existing, nil
}

// SetDescription stores a user-supplied annotation on one transaction.
func (s *transactionStore) SetDescription(ctx context.Context, uid, txID, description string) error {
	_, err := s.collection(uid).Doc(txID).Update(ctx, []firestore.Update{
		{Path: "description", Value: description},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errs.NewNotFoundError("transaction not found")
		}
		return errs.NewDatabaseError("update", "failed to set transaction description", err)
	}
	return nil
}

// Query streams transactions matching the filter. Both channels close when
// the iteration finishes; a non-nil error on the error channel ends the
// stream early.
func (s *transactionStore) Query(ctx context.Context, uid string, q dto.TransactionQuery) (<-chan *models.Transaction, <-chan error) {
	txCh := make(chan *models.Transaction)
	errCh := make(chan error, 1)

	go func() {
		defer close(txCh)
		defer close(errCh)

		query := s.buildQuery(uid, q)
		iter := query.Documents(ctx)
		defer iter.Stop()

		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				return
			}
			if err != nil {
				errCh <- errs.NewDatabaseError("read", "transaction query failed", err)
				return
			}
			var tx models.Transaction
			if err := doc.DataTo(&tx); err != nil {
				errCh <- errs.NewDatabaseError("read", "failed to parse transaction data", err)
				return
			}
			select {
			case txCh <- &tx:
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			}
		}
	}()

	return txCh, errCh
}

func (s *transactionStore) buildQuery(uid string, q dto.TransactionQuery) firestore.Query {
	query := s.collection(uid).Query
	if q.Pending != nil {
		query = query.Where("pending", "==", *q.Pending)
	}
	if q.Category != nil {
		query = query.Where("category", "==", *q.Category)
	}
	if q.ItemID != nil {
		query = query.Where("itemId", "==", *q.ItemID)
	}
	if q.Merchant != nil {
		query = query.Where("merchantName", "==", *q.Merchant)
	}
	if q.DateFrom != nil {
		query = query.Where("date", ">=", *q.DateFrom)
	}
	if q.DateTo != nil {
		query = query.Where("date", "<=", *q.DateTo)
	}
	if q.OrderBy != "" {
		dir := firestore.Asc
		if q.Desc {
			dir = firestore.Desc
		}
		query = query.OrderBy(q.OrderBy, dir)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	return query
}

// DeleteByItem removes every transaction under a connection. Maintenance
// path only; normal sync never deletes.
func (s *transactionStore) DeleteByItem(ctx context.Context, uid, itemID string) error {
	docs, err := s.collection(uid).Where("itemId", "==", itemID).Documents(ctx).GetAll()
	if err != nil {
		return errs.NewDatabaseError("read", "failed to list transactions for item", err)
	}

	bw := s.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(docs))
	for _, d := range docs {
		job, err := bw.Delete(d.Ref)
		if err != nil {
			bw.End()
			return errs.NewDatabaseError("delete", "failed to schedule transaction delete", err)
		}
		jobs = append(jobs, job)
	}
	bw.End()

	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return errs.NewDatabaseError("delete", "failed to delete transaction", err)
		}
	}
	return nil
}
