package services

import (
	"context"
	"time"

	"github.com/pennyboard/pennyboard-backend/internal/models"
	"github.com/pennyboard/pennyboard-backend/pkg/logger"
)

type userUSStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, uid string) (*models.User, error)
}

type userService struct {
	store userUSStore
}

func NewUserService(store userUSStore) *userService {
	return &userService{store: store}
}

// CreateUser writes the profile for a freshly authenticated UID. A duplicate
// signup surfaces as an AlreadyExistsError from the store.
func (s *userService) CreateUser(ctx context.Context, uid, email, first, last string) error {
	log := logger.FromContext(ctx)

	now := time.Now()
	user := &models.User{
		UID:       uid,
		Email:     email,
		FirstName: first,
		LastName:  last,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		log.Error("failed to create user in store", "error", err)
		return err
	}

	log.Info("user created", "first_name", first, "last_name", last)
	return nil
}
