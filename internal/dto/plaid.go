package dto

import "time"

// ProviderTransaction is one transaction as reported by Plaid, before any
// normalization. Amount keeps the provider convention (positive = outflow).
type ProviderTransaction struct {
	TransactionID string
	AccountID     string
	Name          string
	MerchantName  string
	Amount        float64
	Currency      string
	Pending       bool
	Date          string // YYYY-MM-DD
	Categories    []string
	RawPayload    string // full provider JSON
}

// TransactionPage is one page from /transactions/get. Accounts carries the
// roster Plaid returns alongside every page; identity fields there are the
// freshest the provider has.
type TransactionPage struct {
	Transactions      []ProviderTransaction
	Accounts          []ProviderAccount
	TotalTransactions int
	RequestID         string
}

// ProviderAccount is one account as reported by /accounts/get or
// /accounts/balance/get. Balance pointers are nil when Plaid omits them.
type ProviderAccount struct {
	AccountID    string
	Name         string
	OfficialName string
	Mask         string
	Type         string
	Subtype      string
	Currency     string
	Available    *float64
	Current      *float64
	Limit        *float64
	LastUpdated  *time.Time
}

// LinkResult is what the public-token exchange yields.
type LinkResult struct {
	ItemID          string
	AccessToken     string
	InstitutionID   string
	InstitutionName string
}

type PlaidEnvironment string

const (
	PlaidSandbox    PlaidEnvironment = "sandbox"
	PlaidDev        PlaidEnvironment = "development"
	PlaidProduction PlaidEnvironment = "production"
)
