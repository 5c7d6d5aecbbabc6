package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/pennyboard/pennyboard-backend/internal/errs"
	"github.com/pennyboard/pennyboard-backend/internal/models"
)

type userStore struct {
	client *firestore.Client
}

func NewUserStore(client *firestore.Client) *userStore {
	return &userStore{client: client}
}

func (s *userStore) doc(uid string) *firestore.DocumentRef {
	return s.client.Collection("users").Doc(uid)
}

// CreateUser writes a new profile keyed by the auth UID. Firestore's Create
// precondition makes duplicate signups an AlreadyExistsError rather than a
// silent overwrite.
func (s *userStore) CreateUser(ctx context.Context, user *models.User) error {
	if _, err := s.doc(user.UID).Create(ctx, user); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errs.NewAlreadyExistsError("user already exists")
		}
		return errs.NewDatabaseError("create", "failed to create user", err)
	}
	return nil
}

func (s *userStore) UpdateUser(ctx context.Context, user *models.User) error {
	if _, err := s.doc(user.UID).Set(ctx, user, firestore.MergeAll); err != nil {
		return errs.NewDatabaseError("update", "failed to update user", err)
	}
	return nil
}

func (s *userStore) GetUser(ctx context.Context, uid string) (*models.User, error) {
	snap, err := s.doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("user not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to read user", err)
	}

	var user models.User
	if err := snap.DataTo(&user); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse user data", err)
	}
	return &user, nil
}
