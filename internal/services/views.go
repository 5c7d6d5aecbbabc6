package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/pennyboard/pennyboard-backend/internal/errs"
	"github.com/pennyboard/pennyboard-backend/internal/models"
)

type savedViewStore interface {
	Create(ctx context.Context, uid string, v *models.SavedView) error
	Get(ctx context.Context, uid, viewID string) (*models.SavedView, error)
	List(ctx context.Context, uid string) ([]*models.SavedView, error)
	Update(ctx context.Context, uid string, v *models.SavedView) error
	Delete(ctx context.Context, uid, viewID string) error
}

type viewService struct {
	views savedViewStore
	newID func() string
}

func NewViewService(views savedViewStore) *viewService {
	return &viewService{
		views: views,
		newID: func() string { return uuid.NewString() },
	}
}

func (s *viewService) CreateView(ctx context.Context, uid string, v *models.SavedView) (*models.SavedView, error) {
	if v.Name == "" {
		return nil, errs.NewValidationError("view name is required")
	}
	v.ViewID = s.newID()
	if err := s.views.Create(ctx, uid, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *viewService) GetView(ctx context.Context, uid, viewID string) (*models.SavedView, error) {
	return s.views.Get(ctx, uid, viewID)
}

func (s *viewService) ListViews(ctx context.Context, uid string) ([]*models.SavedView, error) {
	return s.views.List(ctx, uid)
}

func (s *viewService) UpdateView(ctx context.Context, uid string, v *models.SavedView) error {
	if v.ViewID == "" {
		return errs.NewValidationError("view id is required")
	}
	if v.Name == "" {
		return errs.NewValidationError("view name is required")
	}
	if _, err := s.views.Get(ctx, uid, v.ViewID); err != nil {
		return err
	}
	return s.views.Update(ctx, uid, v)
}

func (s *viewService) DeleteView(ctx context.Context, uid, viewID string) error {
	return s.views.Delete(ctx, uid, viewID)
}
