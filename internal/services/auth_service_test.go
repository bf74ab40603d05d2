package services

import (
	"context"
	"testing"
	"time"

	"ridetracker/internal/auth"
	"ridetracker/internal/domain"
)

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	store := newMemStore()
	tokens := auth.NewTokenService("test-secret", time.Hour)
	svc := AuthService{Users: store, Settings: store, Tokens: tokens, Now: fixedNow}
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterInput{Name: "Sam", Email: "Sam@Example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if res.Token == "" || res.User.Email != "sam@example.com" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if st, ok := store.settings[res.User.ID]; !ok || st.FullName != "Sam" {
		t.Fatalf("settings not seeded: %+v", st)
	}

	id, err := tokens.Verify(ctx, res.Token)
	if err != nil || id.UserID != res.User.ID {
		t.Fatalf("token does not verify: %+v %v", id, err)
	}

	if _, err := svc.Register(ctx, RegisterInput{Name: "Sam", Email: "sam@example.com", Password: "password123"}); !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	if _, err := svc.Login(ctx, LoginInput{Email: "SAM@example.com", Password: "password123"}); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if _, err := svc.Login(ctx, LoginInput{Email: "sam@example.com", Password: "wrong-pass"}); !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if _, err := svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "x"}); !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized for unknown email, got %v", err)
	}
}

func TestAuthServiceRegisterValidation(t *testing.T) {
	store := newMemStore()
	svc := AuthService{Users: store, Settings: store, Tokens: auth.NewTokenService("s", time.Hour)}
	if _, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "not-an-email", Password: "password123"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@b.co", Password: "short"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for short password, got %v", err)
	}
}
