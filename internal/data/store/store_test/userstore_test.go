package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/swippe/quickcommerce/internal/data/store"
	"github.com/swippe/quickcommerce/internal/domain/commerceModel"
)

func TestUserStore_CreateAndFetch(t *testing.T) {
	db := testDB(t)
	users := store.GetUserStore(db)
	ctx := context.Background()

	id, err := users.CreateUser(ctx, "shopper@example.com", "bcrypt-hash")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	t.Run("Duplicate email is rejected", func(t *testing.T) {
		_, err := users.CreateUser(ctx, "shopper@example.com", "other-hash")
		if !errors.Is(err, store.ErrDuplicateEmail) {
			t.Errorf("Expected ErrDuplicateEmail, got %v", err)
		}
	})

	t.Run("GetByEmail", func(t *testing.T) {
		u, err := users.GetByEmail(ctx, "shopper@example.com")
		if err != nil {
			t.Fatalf("GetByEmail failed: %v", err)
		}
		if u.Id != id || u.Role != commerceModel.RoleUser || u.PasswordHash != "bcrypt-hash" {
			t.Errorf("Unexpected user: %+v", u)
		}
	})

	t.Run("GetById unknown", func(t *testing.T) {
		if _, err := users.GetById(ctx, 999); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestUserStore_PasswordAndRole(t *testing.T) {
	db := testDB(t)
	users := store.GetUserStore(db)
	ctx := context.Background()

	id := seedUser(t, db, "a@example.com")

	if err := users.UpdatePassword(ctx, id, "new-hash"); err != nil {
		t.Fatalf("UpdatePassword failed: %v", err)
	}
	u, err := users.GetById(ctx, id)
	if err != nil {
		t.Fatalf("GetById failed: %v", err)
	}
	if u.PasswordHash != "new-hash" {
		t.Errorf("Password hash not updated: %s", u.PasswordHash)
	}

	if err := users.SetRole(ctx, id, commerceModel.RoleAdmin); err != nil {
		t.Fatalf("SetRole failed: %v", err)
	}
	u, _ = users.GetById(ctx, id)
	if u.Role != commerceModel.RoleAdmin {
		t.Errorf("Role got %s, want admin", u.Role)
	}

	if err := users.SetRole(ctx, 999, commerceModel.RoleAdmin); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestUserStore_Counts(t *testing.T) {
	db := testDB(t)
	users := store.GetUserStore(db)
	ctx := context.Background()

	total, admins, err := users.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers on empty table failed: %v", err)
	}
	if total != 0 || admins != 0 {
		t.Errorf("Empty table counts got (%d, %d), want (0, 0)", total, admins)
	}

	id1 := seedUser(t, db, "a@example.com")
	seedUser(t, db, "b@example.com")
	if err := users.SetRole(ctx, id1, commerceModel.RoleAdmin); err != nil {
		t.Fatalf("SetRole failed: %v", err)
	}

	total, admins, err = users.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers failed: %v", err)
	}
	if total != 2 || admins != 1 {
		t.Errorf("Counts got (%d, %d), want (2, 1)", total, admins)
	}

	list, err := users.ListUsers(ctx, 0)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("ListUsers got %d users, want 2", len(list))
	}
}
