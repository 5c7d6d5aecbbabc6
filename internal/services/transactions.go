package services

import (
	"context"

	"github.com/pennyboard/pennyboard-backend/internal/dto"
	"github.com/pennyboard/pennyboard-backend/internal/errs"
	"github.com/pennyboard/pennyboard-backend/internal/models"
)

type transactionTSStore interface {
	Query(ctx context.Context, uid string, q dto.TransactionQuery) (<-chan *models.Transaction, <-chan error)
	SetDescription(ctx context.Context, uid, txID, description string) error
}

// transactionService serves the browse/annotate surface over synced rows.
type transactionService struct {
	txs transactionTSStore
}

func NewTransactionService(txs transactionTSStore) *transactionService {
	return &transactionService{txs: txs}
}

func (s *transactionService) ListTransactions(ctx context.Context, uid string, q dto.TransactionQuery) ([]models.Transaction, error) {
	txCh, errCh := s.txs.Query(ctx, uid, q)

	var out []models.Transaction
	if err := streamTransactions(txCh, errCh, func(tx *models.Transaction) error {
		out = append(out, *tx)
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// Annotate attaches a user-supplied description to one transaction. The
// description is the only field users may edit; everything else is owned by
// the sync pipeline.
func (s *transactionService) Annotate(ctx context.Context, uid, txID, description string) error {
	if txID == "" {
		return errs.NewValidationError("transaction id is required")
	}
	return s.txs.SetDescription(ctx, uid, txID, description)
}
