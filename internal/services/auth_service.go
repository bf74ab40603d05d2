package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ridetracker/internal/auth"
	"ridetracker/internal/domain"
	"ridetracker/internal/domain/models"
	"ridetracker/internal/repositories"
	"ridetracker/internal/utils"
	"ridetracker/internal/validator"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Name     string `json:"name" validate:"notblank,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResult struct {
	User      models.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// AuthService manages local accounts. It is unused when Firebase issues tokens.
type AuthService struct {
	Users     repositories.UserStore
	Settings  repositories.SettingsStore
	Tokens    *auth.TokenService
	Now       func() time.Time
	RequestID string
}

// Register creates the account and seeds default settings with the given name.
func (s AuthService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	if err := validator.Struct(in); err != nil {
		return AuthResult{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	u := models.User{
		ID:           uuid.NewString(),
		Name:         utils.NormalizeSpace(in.Name),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		CreatedAt:    nowOr(s.Now),
	}
	if err := s.Users.CreateUser(ctx, u); err != nil {
		if domain.IsConflict(err) {
			return AuthResult{}, err
		}
		utils.LogFailure(s.RequestID, "auth", "register", err)
		return AuthResult{}, fmt.Errorf("create user: %w", err)
	}

	st := models.DefaultSettings()
	st.UserID = u.ID
	st.FullName = u.Name
	st.UpdatedAt = u.CreatedAt
	if err := s.Settings.SaveSettings(ctx, st); err != nil {
		utils.LogFailure(s.RequestID, "auth", "seed_settings", err)
		return AuthResult{}, fmt.Errorf("seed settings: %w", err)
	}

	utils.LogEvent(s.RequestID, "auth", "register", "user_id="+u.ID)
	return s.issue(u)
}

func (s AuthService) Login(ctx context.Context, in LoginInput) (AuthResult, error) {
	if err := validator.Struct(in); err != nil {
		return AuthResult{}, err
	}
	u, err := s.Users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		if domain.IsNotFound(err) {
			return AuthResult{}, domain.UnauthorizedError{Msg: "invalid email or password"}
		}
		return AuthResult{}, fmt.Errorf("load user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return AuthResult{}, domain.UnauthorizedError{Msg: "invalid email or password", Err: err}
	}

	utils.LogEvent(s.RequestID, "auth", "login", "user_id="+u.ID)
	return s.issue(u)
}

func (s AuthService) issue(u models.User) (AuthResult, error) {
	token, exp, err := s.Tokens.GenerateToken(u.ID, u.Email)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: u, Token: token, ExpiresAt: exp}, nil
}
