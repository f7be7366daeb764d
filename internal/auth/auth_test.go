package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/swippe/quickcommerce/internal/domain/commerceModel"
)

func TestJWT_IssueAndVerify(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	user := commerceModel.User{Id: 7, Email: "buyer@example.com", Role: commerceModel.RoleAdmin}

	token, err := manager.Issue(user)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.UserId != 7 || claims.Email != "buyer@example.com" || claims.Role != commerceModel.RoleAdmin {
		t.Errorf("Unexpected claims: %+v", claims)
	}
}

func TestJWT_Rejections(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	token, err := manager.Issue(commerceModel.User{Id: 7, Email: "buyer@example.com"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	t.Run("Wrong secret", func(t *testing.T) {
		other := NewJWTManager("different-secret", time.Hour)
		if _, err := other.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Got %v, want ErrInvalidToken", err)
		}
	})

	t.Run("Garbage token", func(t *testing.T) {
		if _, err := manager.Verify("not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Got %v, want ErrInvalidToken", err)
		}
	})

	t.Run("Expired token", func(t *testing.T) {
		shortLived := NewJWTManager("test-secret", -time.Minute)
		expired, err := shortLived.Issue(commerceModel.User{Id: 7})
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}
		if _, err := shortLived.Verify(expired); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Got %v, want ErrInvalidToken", err)
		}
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "correct horse battery" {
		t.Error("Password stored in plain text")
	}

	if !CheckPassword(hash, "correct horse battery") {
		t.Error("Correct password rejected")
	}
	if CheckPassword(hash, "wrong password") {
		t.Error("Wrong password accepted")
	}

	t.Run("Too short", func(t *testing.T) {
		if _, err := HashPassword("short"); !errors.Is(err, ErrPasswordTooShort) {
			t.Errorf("Got %v, want ErrPasswordTooShort", err)
		}
	})
}
