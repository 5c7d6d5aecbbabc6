package plaidclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/plaid/plaid-go/v24/plaid"

	"github.com/pennyboard/pennyboard-backend/internal/dto"
	"github.com/pennyboard/pennyboard-backend/internal/errs"
)

type Adapter struct {
	client *plaid.APIClient
}

func NewAdapter(clientID, secret string, env dto.PlaidEnvironment) *Adapter {
	cfg := plaid.NewConfiguration()
	cfg.AddDefaultHeader("PLAID-CLIENT-ID", clientID)
	cfg.AddDefaultHeader("PLAID-SECRET", secret)
	cfg.UseEnvironment(toPlaidEnv(env))

	return &Adapter{
		client: plaid.NewAPIClient(cfg),
	}
}

func (a *Adapter) CreateLinkToken(ctx context.Context, uid string) (string, error) {
	req := plaid.NewLinkTokenCreateRequest(
		"Pennyboard",
		"en",
		[]plaid.CountryCode{plaid.CountryCode("US")},
		plaid.LinkTokenCreateRequestUser{ClientUserId: uid},
	)
	req.SetProducts([]plaid.Products{plaid.PRODUCTS_TRANSACTIONS})

	resp, _, err := a.client.PlaidApi.LinkTokenCreate(ctx).LinkTokenCreateRequest(*req).Execute()
	if err != nil {
		return "", a.wrapErr("link token create", err)
	}
	return resp.GetLinkToken(), nil
}

// ExchangePublicToken trades a one-time public token for a durable access
// token and resolves the institution behind the new item.
func (a *Adapter) ExchangePublicToken(ctx context.Context, publicToken string) (dto.LinkResult, error) {
	var result dto.LinkResult

	req := plaid.NewItemPublicTokenExchangeRequest(publicToken)
	resp, _, err := a.client.PlaidApi.ItemPublicTokenExchange(ctx).ItemPublicTokenExchangeRequest(*req).Execute()
	if err != nil {
		return result, a.wrapErr("public token exchange", err)
	}
	result.ItemID = resp.GetItemId()
	result.AccessToken = resp.GetAccessToken()

	itemReq := plaid.NewItemGetRequest(result.AccessToken)
	itemResp, _, err := a.client.PlaidApi.ItemGet(ctx).ItemGetRequest(*itemReq).Execute()
	if err != nil {
		return result, a.wrapErr("item get", err)
	}
	item := itemResp.GetItem()
	result.InstitutionID = item.GetInstitutionId()

	if result.InstitutionID != "" {
		instReq := plaid.NewInstitutionsGetByIdRequest(result.InstitutionID, []plaid.CountryCode{plaid.COUNTRYCODE_US})
		instResp, _, err := a.client.PlaidApi.InstitutionsGetById(ctx).InstitutionsGetByIdRequest(*instReq).Execute()
		if err != nil {
			return result, a.wrapErr("institution get", err)
		}
		result.InstitutionName = instResp.GetInstitution().Name
	}

	return result, nil
}

// ListTransactions fetches one page from /transactions/get using offset
// pagination. Amounts keep Plaid's outflow-positive convention; the sync
// service owns the sign flip.
func (a *Adapter) ListTransactions(ctx context.Context, accessToken, startDate, endDate string, count, offset int) (dto.TransactionPage, error) {
	var page dto.TransactionPage

	req := plaid.NewTransactionsGetRequest(accessToken, startDate, endDate)
	opts := plaid.NewTransactionsGetRequestOptions()
	opts.SetCount(int32(count))
	opts.SetOffset(int32(offset))
	req.SetOptions(*opts)

	resp, _, err := a.client.PlaidApi.TransactionsGet(ctx).TransactionsGetRequest(*req).Execute()
	if err != nil {
		return page, a.wrapErr("transactions get", err)
	}

	plaidTxs := resp.GetTransactions()
	txs := make([]dto.ProviderTransaction, 0, len(plaidTxs))
	for _, t := range plaidTxs {
		raw, err := json.Marshal(t)
		if err != nil {
			return page, errs.NewExternalServiceError("plaid", "transaction payload not serializable", false, err)
		}
		txs = append(txs, dto.ProviderTransaction{
			TransactionID: t.GetTransactionId(),
			AccountID:     t.GetAccountId(),
			Name:          t.GetName(),
			MerchantName:  t.GetMerchantName(),
			Amount:        t.GetAmount(),
			Currency:      t.GetIsoCurrencyCode(),
			Pending:       t.GetPending(),
			Date:          t.GetDate(),
			Categories:    t.GetCategory(),
			RawPayload:    string(raw),
		})
	}

	page.Transactions = txs
	page.Accounts = convertAccounts(resp.GetAccounts())
	page.TotalTransactions = int(resp.GetTotalTransactions())
	page.RequestID = resp.GetRequestId()
	return page, nil
}

// GetAccounts returns the account roster without forcing a balance refresh
// upstream. Used once at link time.
func (a *Adapter) GetAccounts(ctx context.Context, accessToken string) ([]dto.ProviderAccount, error) {
	req := plaid.NewAccountsGetRequest(accessToken)
	resp, _, err := a.client.PlaidApi.AccountsGet(ctx).AccountsGetRequest(*req).Execute()
	if err != nil {
		return nil, a.wrapErr("accounts get", err)
	}
	return convertAccounts(resp.GetAccounts()), nil
}

// GetBalances fetches a live balance snapshot for every account under the
// connection in one provider call.
func (a *Adapter) GetBalances(ctx context.Context, accessToken string) ([]dto.ProviderAccount, error) {
	req := plaid.NewAccountsBalanceGetRequest(accessToken)
	resp, _, err := a.client.PlaidApi.AccountsBalanceGet(ctx).AccountsBalanceGetRequest(*req).Execute()
	if err != nil {
		return nil, a.wrapErr("balance get", err)
	}
	return convertAccounts(resp.GetAccounts()), nil
}

func convertAccounts(in []plaid.AccountBase) []dto.ProviderAccount {
	out := make([]dto.ProviderAccount, 0, len(in))
	for _, acct := range in {
		bal := acct.GetBalances()
		pa := dto.ProviderAccount{
			AccountID:    acct.GetAccountId(),
			Name:         acct.GetName(),
			OfficialName: acct.GetOfficialName(),
			Mask:         acct.GetMask(),
			Type:         string(acct.GetType()),
			Subtype:      string(acct.GetSubtype()),
			Currency:     bal.GetIsoCurrencyCode(),
		}
		if v, ok := bal.GetAvailableOk(); ok {
			pa.Available = v
		}
		if v, ok := bal.GetCurrentOk(); ok {
			pa.Current = v
		}
		if v, ok := bal.GetLimitOk(); ok {
			pa.Limit = v
		}
		if v, ok := bal.GetLastUpdatedDatetimeOk(); ok {
			pa.LastUpdated = v
		}
		out = append(out, pa)
	}
	return out
}

// wrapErr classifies Plaid failures so callers can decide whether a retry is
// worth it. Rate limits and Plaid-side 5xx are transient; everything else
// (bad credentials, invalid request) is not.
func (a *Adapter) wrapErr(op string, err error) error {
	if pe, convErr := plaid.ToPlaidError(err); convErr == nil {
		transient := false
		switch string(pe.GetErrorType()) {
		case "RATE_LIMIT_EXCEEDED", "API_ERROR":
			transient = true
		}
		return errs.NewExternalServiceError("plaid", fmt.Sprintf("%s: %s", op, pe.GetErrorMessage()), transient, err)
	}
	// Not a structured Plaid error: network-level, assume retryable.
	return errs.NewExternalServiceError("plaid", op+" failed", true, err)
}

func toPlaidEnv(env dto.PlaidEnvironment) plaid.Environment {
	switch env {
	case dto.PlaidSandbox:
		return plaid.Sandbox
	case dto.PlaidDev:
		return plaid.Development
	default: // dto.PlaidProduction
		return plaid.Production
	}
}
