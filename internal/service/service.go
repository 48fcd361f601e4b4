package service

import (
	"context"
	"time"

	"user_accounts/internal/models"
	"user_accounts/internal/repository"
)

// Accounts exposes the user-account operations behind the HTTP surface.
type Accounts interface {
	Register(ctx context.Context, in RegisterParams) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	ListNames(ctx context.Context) ([]string, error)
	UpdateEmail(ctx context.Context, userID, currentEmail, newEmail string) error
	UpdatePassword(ctx context.Context, userID, oldPassword, newPassword string) error
	Delete(ctx context.Context, userID string) error
}

// Sessions issues and verifies the signed bearer tokens carried in the
// session cookie.
type Sessions interface {
	Issue(userID string) (string, error)
	Parse(accessToken string) (string, error)
}

// RegisterParams carries the registration input.
type RegisterParams struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Config holds the settings the service layer needs at wiring time.
// The signing secret is injected here, never read from a package global.
type Config struct {
	TokenSecret string
	TokenTTL    time.Duration
}

type Service struct {
	Accounts
	Sessions
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, cfg Config) *Service {
	sessions := NewSessionService(cfg.TokenSecret, cfg.TokenTTL)
	return &Service{
		Accounts: NewAccountService(repos.Users, sessions),
		Sessions: sessions,
	}
}
