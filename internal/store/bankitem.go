package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/pennyboard/pennyboard-backend/internal/dto"
	"github.com/pennyboard/pennyboard-backend/internal/errs"
	"github.com/pennyboard/pennyboard-backend/internal/models"
)

// tokenCrypto encrypts access tokens before they touch Firestore.
type tokenCrypto interface {
	Encrypt(ctx context.Context, plaintext string) (string, error)
	Decrypt(ctx context.Context, ciphertext string) (string, error)
}

type bankItemStore struct {
	client *firestore.Client
	crypto tokenCrypto
}

func NewBankItemStore(client *firestore.Client, crypto tokenCrypto) *bankItemStore {
	return &bankItemStore{client: client, crypto: crypto}
}

func (s *bankItemStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("bank_items")
}

func (s *bankItemStore) Create(ctx context.Context, uid string, item *models.BankItem) error {
	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	enc, err := s.crypto.Encrypt(ctx, item.AccessToken)
	if err != nil {
		return err
	}
	stored := *item
	stored.AccessToken = enc

	if _, err := s.collection(uid).Doc(item.ItemID).Set(ctx, stored); err != nil {
		return errs.NewDatabaseError("create", "failed to create bank item", err)
	}
	return nil
}

func (s *bankItemStore) Get(ctx context.Context, uid, itemID string) (*models.BankItem, error) {
	doc, err := s.collection(uid).Doc(itemID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("bank item not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get bank item", err)
	}
	return s.decode(ctx, doc)
}

func (s *bankItemStore) List(ctx context.Context, uid string) ([]*models.BankItem, error) {
	docs, err := s.collection(uid).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list bank items", err)
	}
	items := make([]*models.BankItem, 0, len(docs))
	for _, d := range docs {
		item, err := s.decode(ctx, d)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// RecordSync persists the pagination checkpoint after a sync pass completes.
func (s *bankItemStore) RecordSync(ctx context.Context, uid, itemID string, cp dto.SyncCheckpoint) error {
	_, err := s.collection(uid).Doc(itemID).Set(ctx, map[string]interface{}{
		"lastSyncedAt":                cp.LastSyncedAt,
		"lastSyncedRequestId":         cp.LastSyncedRequestID,
		"lastSyncedTotalTransactions": cp.LastSyncedTotalTransactions,
		"updatedAt":                   time.Now(),
	}, firestore.MergeAll)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to record sync checkpoint", err)
	}
	return nil
}

func (s *bankItemStore) Delete(ctx context.Context, uid, itemID string) error {
	if _, err := s.collection(uid).Doc(itemID).Delete(ctx); err != nil {
		return errs.NewDatabaseError("delete", "failed to delete bank item", err)
	}
	return nil
}

func (s *bankItemStore) decode(ctx context.Context, doc *firestore.DocumentSnapshot) (*models.BankItem, error) {
	var item models.BankItem
	if err := doc.DataTo(&item); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse bank item data", err)
	}
	if item.AccessToken != "" {
		token, err := s.crypto.Decrypt(ctx, item.AccessToken)
		if err != nil {
			return nil, err
		}
		item.AccessToken = token
	}
	return &item, nil
}
