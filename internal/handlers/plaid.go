package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pennyboard/pennyboard-backend/internal/dto"
	"github.com/pennyboard/pennyboard-backend/internal/middleware"
	"github.com/pennyboard/pennyboard-backend/internal/models"
	"github.com/pennyboard/pennyboard-backend/internal/response"
)

type LinkService interface {
	CreateLinkToken(ctx context.Context, uid string) (string, error)
	LinkBankItem(ctx context.Context, uid, publicToken string) (string, error)
}

type BankService interface {
	ListBankItems(ctx context.Context, uid string) ([]*models.BankItem, error)
	GetBankItem(ctx context.Context, uid, itemID string) (*models.BankItem, error)
	ListAccounts(ctx context.Context, uid string) ([]*models.Account, error)
	DeleteBankItem(ctx context.Context, uid, itemID string) error
}

type BalanceService interface {
	RefreshBalances(ctx context.Context, uid, itemID, accessToken string) (dto.BalanceRefreshResult, error)
}

type plaidHandlers struct {
	ResponseHandler response.ResponseHandler
	LinkSvc         LinkService
	BankSvc         BankService
	BalanceSvc      BalanceService
}

func NewPlaidHandlers(deps *Deps) *plaidHandlers {
	return &plaidHandlers{
		ResponseHandler: deps.ResponseHandler,
		LinkSvc:         deps.LinkSvc,
		BankSvc:         deps.BankSvc,
		BalanceSvc:      deps.BalanceSvc,
	}
}

func (h *plaidHandlers) PlaidRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/plaid/link-token", h.CreateLinkToken)
	r.Route("/banks", func(r chi.Router) {
		r.Post("/", h.LinkBankItem)
		r.Get("/", h.ListBankItems)
		r.Delete("/{bankItemId}", h.DeleteBankItem)
		r.Post("/{bankItemId}/balances/refresh", h.RefreshBalances)
	})
	r.Get("/accounts", h.ListAccounts)
	return r
}

func (h *plaidHandlers) CreateLinkToken(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())

	linkToken, err := h.LinkSvc.CreateLinkToken(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, map[string]string{"linkToken": linkToken})
}

func (h *plaidHandlers) LinkBankItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PublicToken string `json:"publicToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	uid := middleware.UID(r.Context())
	itemID, err := h.LinkSvc.LinkBankItem(r.Context(), uid, body.PublicToken)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, map[string]string{"bankItemId": itemID})
}

func (h *plaidHandlers) ListBankItems(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())

	items, err := h.BankSvc.ListBankItems(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, items)
}

func (h *plaidHandlers) ListAccounts(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())

	accounts, err := h.BankSvc.ListAccounts(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, accounts)
}

func (h *plaidHandlers) DeleteBankItem(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	itemID := chi.URLParam(r, "bankItemId")

	if err := h.BankSvc.DeleteBankItem(r.Context(), uid, itemID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *plaidHandlers) RefreshBalances(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	itemID := chi.URLParam(r, "bankItemId")

	item, err := h.BankSvc.GetBankItem(r.Context(), uid, itemID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	result, err := h.BalanceSvc.RefreshBalances(r.Context(), uid, item.ItemID, item.AccessToken)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}
