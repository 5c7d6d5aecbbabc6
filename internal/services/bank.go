package services

import (
	"context"

	"github.com/pennyboard/pennyboard-backend/internal/models"
	"github.com/pennyboard/pennyboard-backend/pkg/logger"
)

type bankItemBSStore interface {
	Get(ctx context.Context, uid, itemID string) (*models.BankItem, error)
	List(ctx context.Context, uid string) ([]*models.BankItem, error)
	Delete(ctx context.Context, uid, itemID string) error
}

type accountBSStore interface {
	List(ctx context.Context, uid string) ([]*models.Account, error)
	DeleteByItem(ctx context.Context, uid, itemID string) error
}

type transactionBSStore interface {
	DeleteByItem(ctx context.Context, uid, itemID string) error
}

type bankService struct {
	items    bankItemBSStore
	accounts accountBSStore
	txs      transactionBSStore
}

func NewBankService(items bankItemBSStore, accounts accountBSStore, txs transactionBSStore) *bankService {
	return &bankService{
		items:    items,
		accounts: accounts,
		txs:      txs,
	}
}

func (s *bankService) ListBankItems(ctx context.Context, uid string) ([]*models.BankItem, error) {
	return s.items.List(ctx, uid)
}

// GetBankItem reads one connection by its provider item ID.
func (s *bankService) GetBankItem(ctx context.Context, uid, itemID string) (*models.BankItem, error) {
	return s.items.Get(ctx, uid, itemID)
}

func (s *bankService) ListAccounts(ctx context.Context, uid string) ([]*models.Account, error) {
	return s.accounts.List(ctx, uid)
}

// DeleteBankItem is the maintenance path: transactions first, then accounts,
// then the item itself, so a partial failure never leaves orphans pointing at
// a deleted item.
func (s *bankService) DeleteBankItem(ctx context.Context, uid, itemID string) error {
	if err := s.txs.DeleteByItem(ctx, uid, itemID); err != nil {
		return err
	}
	if err := s.accounts.DeleteByItem(ctx, uid, itemID); err != nil {
		return err
	}
	if err := s.items.Delete(ctx, uid, itemID); err != nil {
		return err
	}

	log := logger.FromContext(ctx)
	log.Info("bank item deleted", "bank_item_id", itemID)
	return nil
}
