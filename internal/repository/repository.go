package repository

import (
	"context"
	"database/sql"
	"time"

	"user_accounts/internal/models"
)

// Users is the persistence contract for user records.
type Users interface {
	Create(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateEmail(ctx context.Context, id, newEmail string, updatedAt time.Time) error
	UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
	ListNames(ctx context.Context) ([]string, error)
}

type Repository struct {
	Users Users
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users: NewUserRepository(db),
	}
}
