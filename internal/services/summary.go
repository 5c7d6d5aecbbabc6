package services

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/pennyboard/pennyboard-backend/internal/dto"
	"github.com/pennyboard/pennyboard-backend/internal/errs"
	"github.com/pennyboard/pennyboard-backend/internal/models"
	"github.com/pennyboard/pennyboard-backend/pkg/helpers"
)

type transactionSummaryStore interface {
	Query(ctx context.Context, uid string, q dto.TransactionQuery) (<-chan *models.Transaction, <-chan error)
}

// summaryService is the read-path consumer of synced transactions. It only
// aggregates; all mutation stays in the sync pipeline. Totals go through
// decimal so cent sums don't accumulate float drift.
type summaryService struct {
	txs transactionSummaryStore
}

func NewSummaryService(txs transactionSummaryStore) *summaryService {
	return &summaryService{txs: txs}
}

func (s *summaryService) GetTotal(ctx context.Context, uid string, args dto.SummaryArgs) (dto.SummaryTotalResult, error) {
	result := dto.SummaryTotalResult{
		From: helpers.Value(args.DateFrom),
		To:   helpers.Value(args.DateTo),
	}

	txCh, errCh := s.txs.Query(ctx, uid, dto.TransactionQuery{
		Pending:  args.Pending,
		Category: args.Category,
		ItemID:   args.ItemID,
		DateFrom: args.DateFrom,
		DateTo:   args.DateTo,
	})

	total := decimal.Zero
	var currency string
	if err := streamTransactions(txCh, errCh, func(tx *models.Transaction) error {
		total = total.Add(decimal.NewFromFloat(tx.Amount))
		if currency == "" && tx.Currency != "" {
			currency = tx.Currency
		}
		return nil
	}); err != nil {
		return result, err
	}

	result.Total = total.StringFixed(2)
	result.Currency = currency
	return result, nil
}

func (s *summaryService) GetBreakdown(ctx context.Context, uid string, args dto.SummaryArgs) (dto.SummaryBreakdownResult, error) {
	result := dto.SummaryBreakdownResult{
		GroupBy: args.GroupBy,
		From:    helpers.Value(args.DateFrom),
		To:      helpers.Value(args.DateTo),
	}
	if err := validateGroupBy(args.GroupBy); err != nil {
		return result, err
	}

	txCh, errCh := s.txs.Query(ctx, uid, dto.TransactionQuery{
		Pending:  args.Pending,
		Category: args.Category,
		ItemID:   args.ItemID,
		DateFrom: args.DateFrom,
		DateTo:   args.DateTo,
	})

	type bucket struct {
		total decimal.Decimal
		count int
	}
	buckets := map[string]*bucket{}
	var currency string
	if err := streamTransactions(txCh, errCh, func(tx *models.Transaction) error {
		key := breakdownKey(tx, args.GroupBy)
		if key == "" {
			return nil
		}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.total = b.total.Add(decimal.NewFromFloat(tx.Amount))
		b.count++
		if currency == "" && tx.Currency != "" {
			currency = tx.Currency
		}
		return nil
	}); err != nil {
		return result, err
	}

	items := make([]dto.SummaryBreakdownItem, 0, len(buckets))
	for key, b := range buckets {
		items = append(items, dto.SummaryBreakdownItem{
			Key:   key,
			Total: b.total.StringFixed(2),
			Count: b.count,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Key < items[j].Key })
	if args.Limit > 0 && len(items) > args.Limit {
		items = items[:args.Limit]
	}

	result.Currency = currency
	result.Items = items
	return result, nil
}

func breakdownKey(tx *models.Transaction, groupBy string) string {
	switch groupBy {
	case "category":
		return tx.Category
	case "merchant":
		return tx.Name
	case "day":
		return tx.Date
	default:
		return ""
	}
}

func validateGroupBy(groupBy string) error {
	switch groupBy {
	case "category", "merchant", "day":
		return nil
	default:
		return errs.NewValidationError("unsupported groupBy")
	}
}

func streamTransactions(txCh <-chan *models.Transaction, errCh <-chan error, handle func(*models.Transaction) error) error {
	for txCh != nil || errCh != nil {
		select {
		case tx, ok := <-txCh:
			if !ok {
				txCh = nil
				continue
			}
			if handle == nil {
				continue
			}
			if err := handle(tx); err != nil {
				return err
			}
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}
