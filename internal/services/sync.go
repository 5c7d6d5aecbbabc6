package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/pennyboard/pennyboard-backend/internal/dto"
	"github.com/pennyboard/pennyboard-backend/internal/errs"
	"github.com/pennyboard/pennyboard-backend/internal/models"
	"github.com/pennyboard/pennyboard-backend/pkg/logger"
)

const (
	maxProviderAttempts = 3
	retryBaseDelay      = 500 * time.Millisecond
)

// --- Dependencies (minimal interfaces scoped to this service) ---

type plaidSyncClient interface {
	ListTransactions(ctx context.Context, accessToken, startDate, endDate string, count, offset int) (dto.TransactionPage, error)
}

type bankItemSyncStore interface {
	List(ctx context.Context, uid string) ([]*models.BankItem, error)
	RecordSync(ctx context.Context, uid, itemID string, cp dto.SyncCheckpoint) error
}

type accountSyncStore interface {
	accountLookupStore
	UpsertIdentity(ctx context.Context, uid string, a *models.Account) error
}

type transactionSyncStore interface {
	transactionLookupStore
	Upsert(ctx context.Context, uid string, tx *models.Transaction) error
}

type balanceRefresher interface {
	RefreshBalances(ctx context.Context, uid, itemID, accessToken string) (dto.BalanceRefreshResult, error)
}

type syncService struct {
	plaid        plaidSyncClient
	items        bankItemSyncStore
	accounts     accountSyncStore
	txs          transactionSyncStore
	balances     balanceRefresher
	pageSize     int
	lookbackDays int
	clockNow     func() time.Time
	retryWait    func(ctx context.Context, d time.Duration) error
}

func NewSyncService(plaid plaidSyncClient, items bankItemSyncStore, accounts accountSyncStore, txs transactionSyncStore, balances balanceRefresher, pageSize, lookbackDays int) *syncService {
	return &syncService{
		plaid:        plaid,
		items:        items,
		accounts:     accounts,
		txs:          txs,
		balances:     balances,
		pageSize:     pageSize,
		lookbackDays: lookbackDays,
		clockNow:     time.Now,
		retryWait:    waitFor,
	}
}

func waitFor(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SyncBankItems drives a full sync pass for one connection (itemID set) or
// every connection the user has (itemID nil). Items are processed
// sequentially and the first failure aborts the remaining ones; counters
// accumulated up to that point are returned alongside the error.
func (s *syncService) SyncBankItems(ctx context.Context, uid string, itemID *string, opts dto.SyncOptions) (dto.SyncResult, error) {
	result := dto.SyncResult{}
	log := logger.FromContext(ctx)

	startDate, endDate := s.dateWindow(opts)
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = s.pageSize
	}

	items, err := s.items.List(ctx, uid)
	if err != nil {
		return result, err
	}

	itemsToSync := len(items)
	if itemID != nil {
		itemsToSync = 1
	}
	log.Info("transaction sync started", "item_count", itemsToSync, "start_date", startDate, "end_date", endDate)

	for _, item := range items {
		if itemID != nil && *itemID != item.ItemID {
			continue
		}
		if err := s.syncItem(ctx, uid, item, startDate, endDate, pageSize, &result); err != nil {
			return result, err
		}
		result.ItemsSynced++
	}

	if itemID != nil && result.ItemsSynced == 0 {
		return result, errs.NewNotFoundError("bank item not found")
	}

	log.Info("transaction sync completed",
		"items_synced", result.ItemsSynced,
		"fetched", result.Fetched,
		"inserted", result.Inserted,
		"updated", result.Updated)
	return result, nil
}

// syncItem runs the fetch/reconcile loop for one connection and finishes
// with a balance refresh and a checkpoint write on the item.
func (s *syncService) syncItem(ctx context.Context, uid string, item *models.BankItem, startDate, endDate string, pageSize int, result *dto.SyncResult) error {
	log := logger.FromContext(ctx)

	token := item.AccessToken
	if token == "" {
		return fmt.Errorf("plaid access token missing for bank item %s", item.ItemID)
	}

	offset := 0
	total := 0
	requestID := ""
	for {
		page, err := s.fetchPage(ctx, token, startDate, endDate, pageSize, offset)
		if err != nil {
			log.Warn("bank item sync failed", "bank_item_id", item.ItemID)
			return err
		}

		if offset == 0 {
			if err := s.refreshAccountIdentities(ctx, uid, item.ItemID, page.Accounts); err != nil {
				return err
			}
		}

		result.Fetched += len(page.Transactions)
		if err := s.reconcilePage(ctx, uid, item.ItemID, page.Transactions, result); err != nil {
			return err
		}

		requestID = page.RequestID
		total = page.TotalTransactions
		offset += len(page.Transactions)

		// Terminate on a short or empty page even if the provider misreports
		// the total, and on reaching the reported total even if the provider
		// keeps returning full pages. Never requires exact equality.
		if len(page.Transactions) == 0 || len(page.Transactions) < pageSize || offset >= total {
			break
		}
	}

	if _, err := s.balances.RefreshBalances(ctx, uid, item.ItemID, token); err != nil {
		return err
	}

	return s.items.RecordSync(ctx, uid, item.ItemID, dto.SyncCheckpoint{
		LastSyncedAt:                s.clockNow(),
		LastSyncedRequestID:         requestID,
		LastSyncedTotalTransactions: total,
	})
}

// refreshAccountIdentities re-upserts the identity fields for every account
// the provider reports alongside a page, so renames and type changes land
// without relinking. Balances are untouched; those belong to the balance
// refresher.
func (s *syncService) refreshAccountIdentities(ctx context.Context, uid, itemID string, accounts []dto.ProviderAccount) error {
	for _, pa := range accounts {
		if pa.AccountID == "" {
			continue
		}
		account := &models.Account{
			AccountID:    pa.AccountID,
			ItemID:       itemID,
			Name:         pa.Name,
			OfficialName: pa.OfficialName,
			Mask:         pa.Mask,
			Type:         pa.Type,
			Subtype:      pa.Subtype,
			Currency:     pa.Currency,
		}
		if err := s.accounts.UpsertIdentity(ctx, uid, account); err != nil {
			return err
		}
	}
	return nil
}

// reconcilePage upserts one page of provider transactions in provider order.
// Rows that cannot be attributed (no provider ID, unknown account) are logged
// and skipped; they never fail the batch.
func (s *syncService) reconcilePage(ctx context.Context, uid, itemID string, page []dto.ProviderTransaction, result *dto.SyncResult) error {
	log := logger.FromContext(ctx)

	lookups, err := buildPageLookups(ctx, uid, page, s.accounts, s.txs)
	if err != nil {
		return err
	}

	for _, pt := range page {
		if pt.TransactionID == "" {
			log.Warn("skipping transaction with no provider id", "account_id", pt.AccountID, "date", pt.Date)
			continue
		}
		account, ok := lookups.accounts[pt.AccountID]
		if !ok {
			log.Warn("skipping transaction for unknown account",
				"transaction_id", pt.TransactionID,
				"account_id", pt.AccountID)
			continue
		}

		if _, exists := lookups.existingIDs[pt.TransactionID]; exists {
			result.Updated++
		} else {
			result.Inserted++
			lookups.existingIDs[pt.TransactionID] = struct{}{}
		}

		tx := buildTransaction(itemID, account, pt)
		if err := s.txs.Upsert(ctx, uid, &tx); err != nil {
			return err
		}
	}
	return nil
}

// buildTransaction maps a provider row to the canonical record: sign flipped
// once, display name resolved, normalized category computed and cached.
func buildTransaction(itemID string, account *models.Account, pt dto.ProviderTransaction) models.Transaction {
	displayName := pt.Name
	if displayName == "" {
		displayName = pt.MerchantName
	}
	if displayName == "" {
		displayName = "Unlabeled transaction"
	}

	return models.Transaction{
		TransactionID: pt.TransactionID,
		AccountID:     account.AccountID,
		ItemID:        itemID,
		Name:          displayName,
		MerchantName:  pt.MerchantName,
		Amount:        -pt.Amount, // provider reports outflows as positive
		Currency:      pt.Currency,
		Pending:       pt.Pending,
		Date:          pt.Date,
		Categories:    pt.Categories,
		Category:      NormalizeCategory(categoryInputFor(pt)),
		RawPayload:    pt.RawPayload,
	}
}

// fetchPage wraps the provider call with a bounded retry for transient
// failures (rate limits, upstream 5xx). Anything else propagates at once.
func (s *syncService) fetchPage(ctx context.Context, token, startDate, endDate string, count, offset int) (dto.TransactionPage, error) {
	var lastErr error
	for attempt := 0; attempt < maxProviderAttempts; attempt++ {
		if attempt > 0 {
			if err := s.retryWait(ctx, backoffDelay(attempt)); err != nil {
				return dto.TransactionPage{}, err
			}
		}

		page, err := s.plaid.ListTransactions(ctx, token, startDate, endDate, count, offset)
		if err == nil {
			return page, nil
		}
		lastErr = err

		var svcErr *errs.ExternalServiceError
		if !errors.As(err, &svcErr) || !svcErr.Transient {
			return page, err
		}
	}
	return dto.TransactionPage{}, lastErr
}

// backoffDelay doubles per attempt with up to ±50% jitter.
func backoffDelay(attempt int) time.Duration {
	base := retryBaseDelay << (attempt - 1)
	jitter := time.Duration(rand.Int63n(int64(base))) - base/2
	return base + jitter
}

func (s *syncService) dateWindow(opts dto.SyncOptions) (string, string) {
	endDate := opts.EndDate
	if endDate == "" {
		endDate = s.clockNow().Format("2006-01-02")
	}
	startDate := opts.StartDate
	if startDate == "" {
		startDate = s.clockNow().AddDate(0, 0, -s.lookbackDays).Format("2006-01-02")
	}
	return startDate, endDate
}
