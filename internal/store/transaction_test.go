package store

import (
	"context"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/pennyboard/pennyboard-backend/internal/dto"
	"github.com/pennyboard/pennyboard-backend/internal/models"
)

func emulatorClient(t *testing.T) *firestore.Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	client, err := firestore.NewClient(context.Background(), "test-project")
	if err != nil {
		t.Fatalf("firestore client error: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func collect(t *testing.T, txCh <-chan *models.Transaction, errCh <-chan error) []models.Transaction {
	t.Helper()
	var out []models.Transaction
	for txCh != nil || errCh != nil {
		select {
		case tx, ok := <-txCh:
			if !ok {
				txCh = nil
				continue
			}
			out = append(out, *tx)
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if err != nil {
				t.Fatalf("query error: %v", err)
			}
		}
	}
	return out
}

func TestTransactionQueryWithEmulator(t *testing.T) {
	client := emulatorClient(t)
	ctx := context.Background()
	store := NewTransactionStore(client)
	uid := "user-query"

	now := time.Date(2025, time.August, 15, 10, 0, 0, 0, time.UTC)
	seed := []models.Transaction{
		{
			TransactionID: "t1",
			AccountID:     "acc-1",
			ItemID:        "item-1",
			Name:          "Coffee",
			Amount:        -3,
			Currency:      "USD",
			Date:          "2025-08-10",
			Category:      "Coffee",
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			TransactionID: "t2",
			AccountID:     "acc-1",
			ItemID:        "item-1",
			Name:          "Lunch",
			Amount:        -12,
			Currency:      "USD",
			Pending:       true,
			Date:          "2025-08-15",
			Category:      "Food",
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}
	for _, tx := range seed {
		if err := store.Upsert(ctx, uid, &tx); err != nil {
			t.Fatalf("seed transaction error: %v", err)
		}
	}

	pending := false
	dateFrom := "2025-08-12"
	txCh, errCh := store.Query(ctx, uid, dto.TransactionQuery{
		Pending:  &pending,
		DateFrom: &dateFrom,
	})
	results := collect(t, txCh, errCh)
	if len(results) != 0 {
		t.Fatalf("expected 0 results, got %d", len(results))
	}

	category := "Food"
	txCh, errCh = store.Query(ctx, uid, dto.TransactionQuery{Category: &category})
	results = collect(t, txCh, errCh)
	if len(results) != 1 || results[0].TransactionID != "t2" {
		t.Fatalf("expected only t2, got %+v", results)
	}
}

func TestTransactionUpsertIsIdempotentWithEmulator(t *testing.T) {
	client := emulatorClient(t)
	ctx := context.Background()
	store := NewTransactionStore(client)
	uid := "user-upsert"

	tx := models.Transaction{
		TransactionID: "t1",
		AccountID:     "acc-1",
		ItemID:        "item-1",
		Name:          "Groceries",
		Amount:        -42.50,
		Currency:      "USD",
		Date:          "2025-08-20",
		Category:      "Groceries",
	}
	if err := store.Upsert(ctx, uid, &tx); err != nil {
		t.Fatalf("first upsert error: %v", err)
	}
	if err := store.Upsert(ctx, uid, &tx); err != nil {
		t.Fatalf("second upsert error: %v", err)
	}

	existing, err := store.ExistingIDs(ctx, uid, []string{"t1", "t-missing"})
	if err != nil {
		t.Fatalf("ExistingIDs error: %v", err)
	}
	if _, ok := existing["t1"]; !ok {
		t.Fatal("expected t1 to exist")
	}
	if _, ok := existing["t-missing"]; ok {
		t.Fatal("t-missing must not be reported as existing")
	}

	txCh, errCh := store.Query(ctx, uid, dto.TransactionQuery{})
	results := collect(t, txCh, errCh)
	if len(results) != 1 {
		t.Fatalf("expected a single stored row after re-upsert, got %d", len(results))
	}
}
