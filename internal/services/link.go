package services

import (
	"context"
	"time"

	"github.com/pennyboard/pennyboard-backend/internal/dto"
	"github.com/pennyboard/pennyboard-backend/internal/models"
	"github.com/pennyboard/pennyboard-backend/pkg/logger"
)

type plaidLinkClient interface {
	CreateLinkToken(ctx context.Context, uid string) (string, error)
	ExchangePublicToken(ctx context.Context, publicToken string) (dto.LinkResult, error)
	GetAccounts(ctx context.Context, accessToken string) ([]dto.ProviderAccount, error)
}

type bankItemLinkStore interface {
	Create(ctx context.Context, uid string, item *models.BankItem) error
}

type accountLinkStore interface {
	UpsertIdentity(ctx context.Context, uid string, a *models.Account) error
}

type linkService struct {
	plaid    plaidLinkClient
	items    bankItemLinkStore
	accounts accountLinkStore
	balances balanceRefresher
	clockNow func() time.Time
}

func NewLinkService(plaid plaidLinkClient, items bankItemLinkStore, accounts accountLinkStore, balances balanceRefresher) *linkService {
	return &linkService{
		plaid:    plaid,
		items:    items,
		accounts: accounts,
		balances: balances,
		clockNow: time.Now,
	}
}

func (s *linkService) CreateLinkToken(ctx context.Context, uid string) (string, error) {
	return s.plaid.CreateLinkToken(ctx, uid)
}

// LinkBankItem exchanges a one-time public token for a durable credential,
// bootstraps the item and its account roster, then refreshes balances so the
// new accounts are populated immediately (the roster alone carries none).
func (s *linkService) LinkBankItem(ctx context.Context, uid, publicToken string) (string, error) {
	link, err := s.plaid.ExchangePublicToken(ctx, publicToken)
	if err != nil {
		return "", err
	}

	item := &models.BankItem{
		ItemID:          link.ItemID,
		InstitutionID:   link.InstitutionID,
		InstitutionName: link.InstitutionName,
		AccessToken:     link.AccessToken,
		Status:          "active",
		CreatedAt:       s.clockNow(),
		UpdatedAt:       s.clockNow(),
	}
	if err := s.items.Create(ctx, uid, item); err != nil {
		return "", err
	}

	roster, err := s.plaid.GetAccounts(ctx, link.AccessToken)
	if err != nil {
		return "", err
	}
	for _, pa := range roster {
		account := &models.Account{
			AccountID:    pa.AccountID,
			ItemID:       link.ItemID,
			Name:         pa.Name,
			OfficialName: pa.OfficialName,
			Mask:         pa.Mask,
			Type:         pa.Type,
			Subtype:      pa.Subtype,
			Currency:     pa.Currency,
		}
		if err := s.accounts.UpsertIdentity(ctx, uid, account); err != nil {
			return "", err
		}
	}

	if _, err := s.balances.RefreshBalances(ctx, uid, link.ItemID, link.AccessToken); err != nil {
		return "", err
	}

	log := logger.FromContext(ctx)
	log.Info("bank item linked",
		"bank_item_id", link.ItemID,
		"institution", link.InstitutionName,
		"accounts", len(roster))
	return link.ItemID, nil
}
