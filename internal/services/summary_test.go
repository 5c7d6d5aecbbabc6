package services

import (
	"context"
	"errors"
	"testing"

	"github.com/pennyboard/pennyboard-backend/internal/dto"
	"github.com/pennyboard/pennyboard-backend/internal/errs"
	"github.com/pennyboard/pennyboard-backend/internal/models"
)

type fakeSummaryTxStore struct {
	rows []*models.Transaction
	err  error
	last dto.TransactionQuery
}

func (f *fakeSummaryTxStore) Query(ctx context.Context, uid string, q dto.TransactionQuery) (<-chan *models.Transaction, <-chan error) {
	f.last = q
	txCh := make(chan *models.Transaction)
	errCh := make(chan error)
	go func() {
		defer close(txCh)
		defer close(errCh)
		if f.err != nil {
			errCh <- f.err
			return
		}
		for _, tx := range f.rows {
			txCh <- tx
		}
	}()
	return txCh, errCh
}

func TestGetTotalSumsExactly(t *testing.T) {
	store := &fakeSummaryTxStore{rows: []*models.Transaction{
		{Amount: -0.10, Currency: "USD"},
		{Amount: -0.20, Currency: "USD"},
		{Amount: 100.00, Currency: "USD"},
	}}
	svc := NewSummaryService(store)

	got, err := svc.GetTotal(testCtx(), "uid-1", dto.SummaryArgs{})
	if err != nil {
		t.Fatalf("GetTotal returned error: %v", err)
	}
	if got.Total != "99.70" {
		t.Fatalf("expected total 99.70, got %q", got.Total)
	}
	if got.Currency != "USD" {
		t.Fatalf("expected currency USD, got %q", got.Currency)
	}
}

func TestGetTotalForwardsFilters(t *testing.T) {
	store := &fakeSummaryTxStore{}
	svc := NewSummaryService(store)

	category := "Food"
	from := "2025-08-01"
	to := "2025-08-31"
	_, err := svc.GetTotal(testCtx(), "uid-1", dto.SummaryArgs{
		Category: &category,
		DateFrom: &from,
		DateTo:   &to,
	})
	if err != nil {
		t.Fatalf("GetTotal returned error: %v", err)
	}

	if store.last.Category == nil || *store.last.Category != "Food" {
		t.Fatalf("category filter not forwarded, got %+v", store.last)
	}
	if store.last.DateFrom == nil || *store.last.DateFrom != "2025-08-01" {
		t.Fatalf("date filter not forwarded, got %+v", store.last)
	}
}

func TestGetBreakdownGroupsByCategory(t *testing.T) {
	store := &fakeSummaryTxStore{rows: []*models.Transaction{
		{Amount: -4.50, Category: "Coffee", Currency: "USD"},
		{Amount: -5.25, Category: "Coffee", Currency: "USD"},
		{Amount: -60.00, Category: "Groceries", Currency: "USD"},
	}}
	svc := NewSummaryService(store)

	got, err := svc.GetBreakdown(testCtx(), "uid-1", dto.SummaryArgs{GroupBy: "category"})
	if err != nil {
		t.Fatalf("GetBreakdown returned error: %v", err)
	}

	if len(got.Items) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(got.Items))
	}
	if got.Items[0].Key != "Coffee" || got.Items[0].Total != "-9.75" || got.Items[0].Count != 2 {
		t.Fatalf("unexpected coffee bucket %+v", got.Items[0])
	}
	if got.Items[1].Key != "Groceries" || got.Items[1].Total != "-60.00" {
		t.Fatalf("unexpected groceries bucket %+v", got.Items[1])
	}
}

func TestGetBreakdownByDayRespectsLimit(t *testing.T) {
	store := &fakeSummaryTxStore{rows: []*models.Transaction{
		{Amount: -1, Date: "2025-08-01"},
		{Amount: -1, Date: "2025-08-02"},
		{Amount: -1, Date: "2025-08-03"},
	}}
	svc := NewSummaryService(store)

	got, err := svc.GetBreakdown(testCtx(), "uid-1", dto.SummaryArgs{GroupBy: "day", Limit: 2})
	if err != nil {
		t.Fatalf("GetBreakdown returned error: %v", err)
	}
	if len(got.Items) != 2 {
		t.Fatalf("expected limit applied, got %d items", len(got.Items))
	}
}

func TestGetBreakdownRejectsUnknownGroupBy(t *testing.T) {
	svc := NewSummaryService(&fakeSummaryTxStore{})

	_, err := svc.GetBreakdown(testCtx(), "uid-1", dto.SummaryArgs{GroupBy: "weekday"})
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestGetTotalPropagatesStoreError(t *testing.T) {
	svc := NewSummaryService(&fakeSummaryTxStore{err: errors.New("query failed")})

	if _, err := svc.GetTotal(testCtx(), "uid-1", dto.SummaryArgs{}); err == nil {
		t.Fatal("expected store error to propagate")
	}
}
