package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pennyboard/pennyboard-backend/internal/middleware"
	"github.com/pennyboard/pennyboard-backend/internal/models"
	"github.com/pennyboard/pennyboard-backend/internal/response"
)

type ViewService interface {
	CreateView(ctx context.Context, uid string, v *models.SavedView) (*models.SavedView, error)
	GetView(ctx context.Context, uid, viewID string) (*models.SavedView, error)
	ListViews(ctx context.Context, uid string) ([]*models.SavedView, error)
	UpdateView(ctx context.Context, uid string, v *models.SavedView) error
	DeleteView(ctx context.Context, uid, viewID string) error
}

type viewHandlers struct {
	ResponseHandler response.ResponseHandler
	ViewSvc         ViewService
}

func NewViewHandlers(deps *Deps) *viewHandlers {
	return &viewHandlers{
		ResponseHandler: deps.ResponseHandler,
		ViewSvc:         deps.ViewSvc,
	}
}

func (h *viewHandlers) ViewRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateView)
	r.Get("/", h.ListViews)
	r.Get("/{viewId}", h.GetView)
	r.Put("/{viewId}", h.UpdateView)
	r.Delete("/{viewId}", h.DeleteView)
	return r
}

func (h *viewHandlers) CreateView(w http.ResponseWriter, r *http.Request) {
	var view models.SavedView
	if err := json.NewDecoder(r.Body).Decode(&view); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	uid := middleware.UID(r.Context())
	created, err := h.ViewSvc.CreateView(r.Context(), uid, &view)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, created)
}

func (h *viewHandlers) ListViews(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())

	views, err := h.ViewSvc.ListViews(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, views)
}

func (h *viewHandlers) GetView(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	viewID := chi.URLParam(r, "viewId")

	view, err := h.ViewSvc.GetView(r.Context(), uid, viewID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, view)
}

func (h *viewHandlers) UpdateView(w http.ResponseWriter, r *http.Request) {
	var view models.SavedView
	if err := json.NewDecoder(r.Body).Decode(&view); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	uid := middleware.UID(r.Context())
	view.ViewID = chi.URLParam(r, "viewId")

	if err := h.ViewSvc.UpdateView(r.Context(), uid, &view); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, view)
}

func (h *viewHandlers) DeleteView(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	viewID := chi.URLParam(r, "viewId")

	if err := h.ViewSvc.DeleteView(r.Context(), uid, viewID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
