package models

import (
	"time"
)

// BankItem is one linked banking connection (one access token, one institution).
// The Plaid item ID doubles as the Firestore document ID.
type BankItem struct {
	ItemID                      string    `firestore:"itemId" json:"itemId"`
	InstitutionID               string    `firestore:"institutionId" json:"institutionId"`
	InstitutionName             string    `firestore:"institutionName" json:"institutionName"`
	AccessToken                 string    `firestore:"accessToken" json:"-"` // KMS ciphertext at rest, never serialized out
	Status                      string    `firestore:"status" json:"status"` // e.g. "active", "inactive"
	LastSyncedAt                time.Time `firestore:"lastSyncedAt" json:"lastSyncedAt"`
	LastSyncedRequestID         string    `firestore:"lastSyncedRequestId" json:"lastSyncedRequestId,omitempty"`
	LastSyncedTotalTransactions int       `firestore:"lastSyncedTotalTransactions" json:"lastSyncedTotalTransactions"`
	CreatedAt                   time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt                   time.Time `firestore:"updatedAt" json:"updatedAt"`
}
