package store

import (
	"context"
	"errors"
	"testing"

	"github.com/pennyboard/pennyboard-backend/internal/errs"
	"github.com/pennyboard/pennyboard-backend/internal/models"
)

func TestUserStoreCreateAndGetWithEmulator(t *testing.T) {
	client := emulatorClient(t)
	ctx := context.Background()
	store := NewUserStore(client)

	user := &models.User{
		UID:       "user-create",
		Email:     "jo@example.com",
		FirstName: "Jo",
		LastName:  "Park",
	}
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	got, err := store.GetUser(ctx, "user-create")
	if err != nil {
		t.Fatalf("GetUser returned error: %v", err)
	}
	if got.Email != "jo@example.com" || got.FirstName != "Jo" {
		t.Fatalf("GetUser = %#v", got)
	}

	err = store.CreateUser(ctx, user)
	var exists *errs.AlreadyExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("expected AlreadyExistsError on duplicate create, got %v", err)
	}
}

func TestUserStoreGetUnknownWithEmulator(t *testing.T) {
	client := emulatorClient(t)
	store := NewUserStore(client)

	_, err := store.GetUser(context.Background(), "user-missing")
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
