package models

import "time"

// SavedView is a named filter/sort configuration over the transaction list.
type SavedView struct {
	ViewID    string     `firestore:"viewId" json:"viewId"`
	Name      string     `firestore:"name" json:"name"`
	Filters   ViewFilter `firestore:"filters" json:"filters"`
	OrderBy   string     `firestore:"orderBy,omitempty" json:"orderBy,omitempty"`
	Desc      bool       `firestore:"desc" json:"desc"`
	CreatedAt time.Time  `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `firestore:"updatedAt" json:"updatedAt"`
}

// ViewFilter mirrors the transaction query surface; empty fields are ignored.
type ViewFilter struct {
	Category string `firestore:"category,omitempty" json:"category,omitempty"`
	Merchant string `firestore:"merchant,omitempty" json:"merchant,omitempty"`
	ItemID   string `firestore:"itemId,omitempty" json:"itemId,omitempty"`
	DateFrom string `firestore:"dateFrom,omitempty" json:"dateFrom,omitempty"`
	DateTo   string `firestore:"dateTo,omitempty" json:"dateTo,omitempty"`
	Pending  *bool  `firestore:"pending,omitempty" json:"pending,omitempty"`
}
