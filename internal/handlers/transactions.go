package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pennyboard/pennyboard-backend/internal/dto"
	"github.com/pennyboard/pennyboard-backend/internal/middleware"
	"github.com/pennyboard/pennyboard-backend/internal/models"
	"github.com/pennyboard/pennyboard-backend/internal/response"
	"github.com/pennyboard/pennyboard-backend/pkg/helpers"
)

type TransactionService interface {
	ListTransactions(ctx context.Context, uid string, q dto.TransactionQuery) ([]models.Transaction, error)
	Annotate(ctx context.Context, uid, txID, description string) error
}

type SyncService interface {
	SyncBankItems(ctx context.Context, uid string, itemID *string, opts dto.SyncOptions) (dto.SyncResult, error)
}

type transactionHandlers struct {
	ResponseHandler response.ResponseHandler
	TransactionSvc  TransactionService
	SyncSvc         SyncService
}

func NewTransactionHandlers(deps *Deps) *transactionHandlers {
	return &transactionHandlers{
		ResponseHandler: deps.ResponseHandler,
		TransactionSvc:  deps.TransactionSvc,
		SyncSvc:         deps.SyncSvc,
	}
}

func (h *transactionHandlers) TransactionRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListTransactions)
	r.Post("/sync", h.SyncTransactions)
	r.Put("/{transactionId}/description", h.Annotate)
	return r
}

func (h *transactionHandlers) SyncTransactions(w http.ResponseWriter, r *http.Request) {
	var body struct {
		BankItemID *string `json:"bankItemId,omitempty"`
		StartDate  string  `json:"startDate,omitempty"`
		EndDate    string  `json:"endDate,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) { // allow empty body
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	uid := middleware.UID(r.Context())
	result, err := h.SyncSvc.SyncBankItems(r.Context(), uid, body.BankItemID, dto.SyncOptions{
		StartDate: body.StartDate,
		EndDate:   body.EndDate,
	})
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func (h *transactionHandlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	q := queryFromParams(r)

	txs, err := h.TransactionSvc.ListTransactions(r.Context(), uid, q)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, txs)
}

func (h *transactionHandlers) Annotate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	uid := middleware.UID(r.Context())
	txID := chi.URLParam(r, "transactionId")

	if err := h.TransactionSvc.Annotate(r.Context(), uid, txID, body.Description); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func queryFromParams(r *http.Request) dto.TransactionQuery {
	params := r.URL.Query()
	q := dto.TransactionQuery{
		OrderBy: params.Get("orderBy"),
		Desc:    params.Get("desc") == "true",
	}
	if v := params.Get("category"); v != "" {
		q.Category = helpers.Ptr(v)
	}
	if v := params.Get("merchant"); v != "" {
		q.Merchant = helpers.Ptr(v)
	}
	if v := params.Get("bankItemId"); v != "" {
		q.ItemID = helpers.Ptr(v)
	}
	if v := params.Get("dateFrom"); v != "" {
		q.DateFrom = helpers.Ptr(v)
	}
	if v := params.Get("dateTo"); v != "" {
		q.DateTo = helpers.Ptr(v)
	}
	if v := params.Get("pending"); v != "" {
		q.Pending = helpers.Ptr(v == "true")
	}
	if v := params.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			q.Limit = n
		}
	}
	return q
}
