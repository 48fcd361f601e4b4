package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"user_accounts/internal/models"
	"user_accounts/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Work factor for password hashing.
const bcryptCost = 10

// Domain errors for account flows.
var (
	ErrEmailTaken       = errors.New("email already registered")
	ErrPasswordMismatch = errors.New("password and confirmation do not match")
	ErrMissingField     = errors.New("missing required field")
	ErrNotRegistered    = errors.New("email is not registered")
	ErrWrongPassword    = errors.New("wrong password")
	ErrEmailNotFound    = errors.New("email not found")
	ErrUserNotFound     = errors.New("user not found")
)

// AccountService implements the account rules on top of the user store.
type AccountService struct {
	users    repository.Users
	sessions Sessions
}

func NewAccountService(users repository.Users, sessions Sessions) *AccountService {
	return &AccountService{users: users, sessions: sessions}
}

// Register creates a new user. Uniqueness rests on the store's UNIQUE email
// constraint; the pre-insert lookup only makes the common case friendlier
// and cannot be trusted under concurrent registrations.
func (s *AccountService) Register(ctx context.Context, in RegisterParams) (*models.User, error) {
	if err := requireFields(map[string]string{
		"name":            in.Name,
		"email":           in.Email,
		"password":        in.Password,
		"confirmPassword": in.ConfirmPassword,
	}); err != nil {
		return nil, err
	}
	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}
	if in.Password != in.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := &models.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			// Lost the check-then-insert race; same outcome as the pre-check.
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// Login validates credentials and returns a signed session token.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrNotRegistered
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", ErrWrongPassword
	}
	return s.sessions.Issue(u.ID)
}

// GetByID resolves a user record. Returns ErrUserNotFound when the record
// is gone, e.g. a deleted account behind a still-valid token.
func (s *AccountService) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// ListNames returns every user's name in store order.
func (s *AccountService) ListNames(ctx context.Context) ([]string, error) {
	return s.users.ListNames(ctx)
}

// UpdateEmail changes the caller's email. The body's current email must
// match the authenticated record; the write itself is keyed by user id.
func (s *AccountService) UpdateEmail(ctx context.Context, userID, currentEmail, newEmail string) error {
	if err := requireFields(map[string]string{"email": currentEmail, "newEmail": newEmail}); err != nil {
		return err
	}
	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.Email != currentEmail {
		return ErrEmailNotFound
	}
	if err := s.users.UpdateEmail(ctx, userID, newEmail, time.Now().UTC()); err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailTaken):
			return ErrEmailTaken
		case errors.Is(err, repository.ErrUserNotFound):
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// UpdatePassword verifies the old password before storing a new hash.
func (s *AccountService) UpdatePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if err := requireFields(map[string]string{"password": oldPassword, "newPassword": newPassword}); err != nil {
		return err
	}
	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := verifyPassword(u.PasswordHash, oldPassword); err != nil {
		return ErrWrongPassword
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, hash, time.Now().UTC()); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// Delete removes the caller's record. No cascading cleanup is needed; the
// user is the only persisted entity.
func (s *AccountService) Delete(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: reject blank required fields before touching the store
func requireFields(fields map[string]string) error {
	for name, v := range fields {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, name)
		}
	}
	return nil
}
