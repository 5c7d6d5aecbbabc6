package models

import (
	"time"
)

// Transaction is one financial event. The Plaid transaction_id is both the
// Firestore document ID and the sole deduplication key: writing the same ID
// overwrites in place.
//
// Amount uses the canonical sign (positive = inflow, negative = outflow).
// Plaid reports outflows as positive, so the amount is flipped exactly once
// at ingestion and never re-flipped downstream.
type Transaction struct {
	TransactionID string    `firestore:"transactionId" json:"transactionId"`
	AccountID     string    `firestore:"accountId" json:"accountId"`
	ItemID        string    `firestore:"itemId" json:"itemId"`
	Name          string    `firestore:"name" json:"name"`
	MerchantName  string    `firestore:"merchantName" json:"merchantName,omitempty"`
	Amount        float64   `firestore:"amount" json:"amount"`
	Currency      string    `firestore:"currency" json:"currency"`
	Pending       bool      `firestore:"pending" json:"pending"`
	Date          string    `firestore:"date" json:"date"` // YYYY-MM-DD as Plaid returns
	Categories    []string  `firestore:"categories" json:"categories,omitempty"`
	Category      string    `firestore:"category" json:"category"` // normalized label, computed once at ingestion
	Description   string    `firestore:"description" json:"description,omitempty"`
	RawPayload    string    `firestore:"rawPayload" json:"-"` // full provider JSON for fields not promoted to columns
	CreatedAt     time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `firestore:"updatedAt" json:"updatedAt"`
}
