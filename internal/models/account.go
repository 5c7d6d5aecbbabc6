package models

import "time"

// Account is one financial account under a BankItem. Ownership is transitive:
// the account belongs to an item, the item to a user. The Plaid account ID is
// the Firestore document ID.
type Account struct {
	AccountID          string     `firestore:"accountId" json:"accountId"`
	ItemID             string     `firestore:"itemId" json:"itemId"`
	Name               string     `firestore:"name" json:"name"`
	OfficialName       string     `firestore:"officialName" json:"officialName,omitempty"`
	Mask               string     `firestore:"mask" json:"mask,omitempty"`
	Type               string     `firestore:"type" json:"type"`
	Subtype            string     `firestore:"subtype" json:"subtype,omitempty"`
	Currency           string     `firestore:"currency" json:"currency,omitempty"`
	CurrentBalance     *float64   `firestore:"currentBalance" json:"currentBalance,omitempty"`
	AvailableBalance   *float64   `firestore:"availableBalance" json:"availableBalance,omitempty"`
	CreditLimit        *float64   `firestore:"creditLimit" json:"creditLimit,omitempty"`
	BalanceLastUpdated *time.Time `firestore:"balanceLastUpdated" json:"balanceLastUpdated,omitempty"`
	CreatedAt          time.Time  `firestore:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time  `firestore:"updatedAt" json:"updatedAt"`
}
