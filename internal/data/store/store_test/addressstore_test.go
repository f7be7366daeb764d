package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/swippe/quickcommerce/internal/data/store"
	"github.com/swippe/quickcommerce/internal/domain/commerceModel"
)

func sampleAddress(userId int64, name string) commerceModel.Address {
	return commerceModel.Address{
		UserId:  userId,
		Name:    name,
		Phone:   "9876543210",
		Line1:   "12 MG Road",
		City:    "Bengaluru",
		State:   "Karnataka",
		Pincode: "560001",
	}
}

func TestAddressStore_DefaultHandling(t *testing.T) {
	db := testDB(t)
	addresses := store.GetAddressStore(db)
	ctx := context.Background()

	userId := seedUser(t, db, "buyer@example.com")

	firstId, err := addresses.Create(ctx, sampleAddress(userId, "Home"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("First address becomes the default", func(t *testing.T) {
		a, err := addresses.GetByIdForUser(ctx, firstId, userId)
		if err != nil {
			t.Fatalf("GetByIdForUser failed: %v", err)
		}
		if !a.IsDefault {
			t.Error("First address should be default")
		}
	})

	second := sampleAddress(userId, "Office")
	second.IsDefault = true
	secondId, err := addresses.Create(ctx, second)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("Explicit default demotes the previous one", func(t *testing.T) {
		first, _ := addresses.GetByIdForUser(ctx, firstId, userId)
		if first.IsDefault {
			t.Error("Old default should have been demoted")
		}
		list, err := addresses.ListByUser(ctx, userId)
		if err != nil {
			t.Fatalf("ListByUser failed: %v", err)
		}
		if len(list) != 2 || !list[0].IsDefault {
			t.Errorf("Default should sort first: %+v", list)
		}
	})

	t.Run("SetDefault swaps atomically", func(t *testing.T) {
		if err := addresses.SetDefault(ctx, firstId, userId); err != nil {
			t.Fatalf("SetDefault failed: %v", err)
		}
		first, _ := addresses.GetByIdForUser(ctx, firstId, userId)
		secondAddr, _ := addresses.GetByIdForUser(ctx, secondId, userId)
		if !first.IsDefault || secondAddr.IsDefault {
			t.Error("SetDefault did not swap the default flag")
		}
	})

	t.Run("GetDefault follows the flag", func(t *testing.T) {
		a, err := addresses.GetDefault(ctx, userId)
		if err != nil {
			t.Fatalf("GetDefault failed: %v", err)
		}
		if a.Id != firstId {
			t.Errorf("GetDefault got address %d, want %d", a.Id, firstId)
		}

		stranger := seedUser(t, db, "nodefault@example.com")
		if _, err := addresses.GetDefault(ctx, stranger); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Expected ErrNotFound without addresses, got %v", err)
		}
	})
}

func TestAddressStore_UpdateAndDelete(t *testing.T) {
	db := testDB(t)
	addresses := store.GetAddressStore(db)
	ctx := context.Background()

	userId := seedUser(t, db, "buyer@example.com")
	id, err := addresses.Create(ctx, sampleAddress(userId, "Home"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated := sampleAddress(userId, "Home Sweet Home")
	updated.Id = id
	updated.Landmark = "Opposite the park"
	if err := addresses.Update(ctx, updated); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	a, err := addresses.GetByIdForUser(ctx, id, userId)
	if err != nil {
		t.Fatalf("GetByIdForUser failed: %v", err)
	}
	if a.Name != "Home Sweet Home" || a.Landmark != "Opposite the park" {
		t.Errorf("Update not persisted: %+v", a)
	}

	t.Run("Update scoped to owner", func(t *testing.T) {
		stranger := seedUser(t, db, "stranger@example.com")
		foreign := sampleAddress(stranger, "Theirs")
		foreign.Id = id
		if err := addresses.Update(ctx, foreign); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	if err := addresses.Delete(ctx, id, userId); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := addresses.GetByIdForUser(ctx, id, userId); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
	if err := addresses.Delete(ctx, id, userId); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Double delete should return ErrNotFound, got %v", err)
	}
}
