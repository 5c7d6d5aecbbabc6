package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/pennyboard/pennyboard-backend/internal/errs"
	"github.com/pennyboard/pennyboard-backend/internal/models"
)

type savedViewStore struct {
	client *firestore.Client
}

func NewSavedViewStore(client *firestore.Client) *savedViewStore {
	return &savedViewStore{client: client}
}

func (s *savedViewStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("saved_views")
}

func (s *savedViewStore) Create(ctx context.Context, uid string, v *models.SavedView) error {
	now := time.Now()
	if v.CreatedAt.IsZero() {
		v.CreatedAt = now
	}
	v.UpdatedAt = now
	if _, err := s.collection(uid).Doc(v.ViewID).Set(ctx, v); err != nil {
		return errs.NewDatabaseError("create", "failed to create saved view", err)
	}
	return nil
}

func (s *savedViewStore) Get(ctx context.Context, uid, viewID string) (*models.SavedView, error) {
	doc, err := s.collection(uid).Doc(viewID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("saved view not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get saved view", err)
	}
	var v models.SavedView
	if err := doc.DataTo(&v); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse saved view data", err)
	}
	return &v, nil
}

func (s *savedViewStore) List(ctx context.Context, uid string) ([]*models.SavedView, error) {
	docs, err := s.collection(uid).OrderBy("name", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list saved views", err)
	}
	views := make([]*models.SavedView, 0, len(docs))
	for _, d := range docs {
		var v models.SavedView
		if err := d.DataTo(&v); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse saved view data", err)
		}
		views = append(views, &v)
	}
	return views, nil
}

func (s *savedViewStore) Update(ctx context.Context, uid string, v *models.SavedView) error {
	v.UpdatedAt = time.Now()
	if _, err := s.collection(uid).Doc(v.ViewID).Set(ctx, v); err != nil {
		return errs.NewDatabaseError("update", "failed to update saved view", err)
	}
	return nil
}

func (s *savedViewStore) Delete(ctx context.Context, uid, viewID string) error {
	if _, err := s.collection(uid).Doc(viewID).Delete(ctx); err != nil {
		return errs.NewDatabaseError("delete", "failed to delete saved view", err)
	}
	return nil
}
