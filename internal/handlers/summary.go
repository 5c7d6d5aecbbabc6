package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pennyboard/pennyboard-backend/internal/dto"
	"github.com/pennyboard/pennyboard-backend/internal/middleware"
	"github.com/pennyboard/pennyboard-backend/internal/response"
	"github.com/pennyboard/pennyboard-backend/pkg/helpers"
)

type SummaryService interface {
	GetTotal(ctx context.Context, uid string, args dto.SummaryArgs) (dto.SummaryTotalResult, error)
	GetBreakdown(ctx context.Context, uid string, args dto.SummaryArgs) (dto.SummaryBreakdownResult, error)
}

type summaryHandlers struct {
	ResponseHandler response.ResponseHandler
	SummarySvc      SummaryService
}

func NewSummaryHandlers(deps *Deps) *summaryHandlers {
	return &summaryHandlers{
		ResponseHandler: deps.ResponseHandler,
		SummarySvc:      deps.SummarySvc,
	}
}

func (h *summaryHandlers) SummaryRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/total", h.GetTotal)
	r.Get("/breakdown", h.GetBreakdown)
	return r
}

func (h *summaryHandlers) GetTotal(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())

	result, err := h.SummarySvc.GetTotal(r.Context(), uid, summaryArgsFromParams(r))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func (h *summaryHandlers) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())

	result, err := h.SummarySvc.GetBreakdown(r.Context(), uid, summaryArgsFromParams(r))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func summaryArgsFromParams(r *http.Request) dto.SummaryArgs {
	params := r.URL.Query()
	args := dto.SummaryArgs{
		GroupBy: params.Get("groupBy"),
	}
	if v := params.Get("category"); v != "" {
		args.Category = helpers.Ptr(v)
	}
	if v := params.Get("bankItemId"); v != "" {
		args.ItemID = helpers.Ptr(v)
	}
	if v := params.Get("dateFrom"); v != "" {
		args.DateFrom = helpers.Ptr(v)
	}
	if v := params.Get("dateTo"); v != "" {
		args.DateTo = helpers.Ptr(v)
	}
	if v := params.Get("pending"); v != "" {
		args.Pending = helpers.Ptr(v == "true")
	}
	if v := params.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			args.Limit = n
		}
	}
	return args
}
