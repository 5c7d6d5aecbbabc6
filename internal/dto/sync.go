package dto

import "time"

// SyncOptions bounds one sync pass. Zero values fall back to the service
// defaults (today minus the configured lookback .. today, page size from
// config).
type SyncOptions struct {
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
	PageSize  int
}

// SyncResult accumulates counters across all pages (and all items, when
// syncing every connection for a user).
type SyncResult struct {
	ItemsSynced int `json:"itemsSynced"`
	Fetched     int `json:"fetched"`
	Inserted    int `json:"inserted"`
	Updated     int `json:"updated"`
}

// SyncCheckpoint is persisted on the BankItem after its pages are processed.
type SyncCheckpoint struct {
	LastSyncedAt                time.Time
	LastSyncedRequestID         string
	LastSyncedTotalTransactions int
}

// BalanceRefreshResult reports one balance-refresh pass for a connection.
type BalanceRefreshResult struct {
	ItemID            string `json:"bankItemId"`
	RefreshedAccounts int    `json:"refreshedAccounts"`
}
