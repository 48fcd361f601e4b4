package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"user_accounts/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (*UserRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewUserRepository(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func testUser() *models.User {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &models.User{
		ID:           "id-1",
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "h123",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserRepository_Create(t *testing.T) {
	tests := []struct {
		name       string
		mockExpect func(sqlmock.Sqlmock, *models.User)
		wantErr    error
		wantErrStr string
	}{
		{
			name: "success",
			mockExpect: func(m sqlmock.Sqlmock, u *models.User) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs(u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
		},
		{
			name: "duplicate email maps to ErrEmailTaken",
			mockExpect: func(m sqlmock.Sqlmock, u *models.User) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs(u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt).
					WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)"))
			},
			wantErr: ErrEmailTaken,
		},
		{
			name: "exec error",
			mockExpect: func(m sqlmock.Sqlmock, u *models.User) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs(u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt).
					WillReturnError(errors.New("db exec failed"))
			},
			wantErrStr: "insert user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockRepo(t)
			defer cleanup()

			u := testUser()
			tt.mockExpect(mock, u)

			err := repo.Create(context.Background(), u)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if tt.wantErrStr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErrStr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErrStr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	userColumns := []string{"id", "name", "email", "password_hash", "created_at", "updated_at"}

	tests := []struct {
		name       string
		email      string
		mockExpect func(sqlmock.Sqlmock)
		wantUser   *models.User
		wantErrStr string
	}{
		{
			name:  "found",
			email: "alice@example.com",
			mockExpect: func(m sqlmock.Sqlmock) {
				u := testUser()
				rows := sqlmock.NewRows(userColumns).
					AddRow(u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
				m.ExpectQuery(regexp.QuoteMeta(selectUserByEmailSQL)).
					WithArgs("alice@example.com").
					WillReturnRows(rows)
			},
			wantUser: testUser(),
		},
		{
			name:  "not found returns nil, nil",
			email: "missing@example.com",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectUserByEmailSQL)).
					WithArgs("missing@example.com").
					WillReturnError(sql.ErrNoRows)
			},
		},
		{
			name:  "query error",
			email: "bob@example.com",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectUserByEmailSQL)).
					WithArgs("bob@example.com").
					WillReturnError(errors.New("db query failed"))
			},
			wantErrStr: "select user by email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			u, err := repo.GetByEmail(context.Background(), tt.email)

			if tt.wantErrStr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErrStr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErrStr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantUser == nil {
				if u != nil {
					t.Fatalf("expected nil user, got %+v", u)
				}
				return
			}
			if u == nil {
				t.Fatalf("expected user, got nil")
			}
			if u.ID != tt.wantUser.ID || u.Email != tt.wantUser.Email || u.PasswordHash != tt.wantUser.PasswordHash {
				t.Fatalf("unexpected user: want %+v, got %+v", tt.wantUser, u)
			}
		})
	}
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(selectUserByIDSQL)).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	u, err := repo.GetByID(context.Background(), "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u != nil {
		t.Fatalf("expected nil user, got %+v", u)
	}
}

func TestUserRepository_UpdateEmail(t *testing.T) {
	now := time.Now().UTC()

	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := newMockRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(updateEmailSQL)).
			WithArgs("new@example.com", now, "id-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := repo.UpdateEmail(context.Background(), "id-1", "new@example.com", now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("no row changed maps to ErrUserNotFound", func(t *testing.T) {
		repo, mock, cleanup := newMockRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(updateEmailSQL)).
			WithArgs("new@example.com", now, "gone").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateEmail(context.Background(), "gone", "new@example.com", now)
		if !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("email collision maps to ErrEmailTaken", func(t *testing.T) {
		repo, mock, cleanup := newMockRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(updateEmailSQL)).
			WithArgs("taken@example.com", now, "id-1").
			WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)"))

		err := repo.UpdateEmail(context.Background(), "id-1", "taken@example.com", now)
		if !errors.Is(err, ErrEmailTaken) {
			t.Fatalf("expected ErrEmailTaken, got %v", err)
		}
	})
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	now := time.Now().UTC()

	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(updatePasswordSQL)).
		WithArgs("newhash", now, "id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdatePassword(context.Background(), "id-1", "newhash", now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUserRepository_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := newMockRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(deleteUserSQL)).
			WithArgs("id-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := repo.Delete(context.Background(), "id-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing row maps to ErrUserNotFound", func(t *testing.T) {
		repo, mock, cleanup := newMockRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(deleteUserSQL)).
			WithArgs("gone").
			WillReturnResult(sqlmock.NewResult(0, 0))

		if err := repo.Delete(context.Background(), "gone"); !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestUserRepository_ListNames(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"name"}).AddRow("Alice").AddRow("Bob")
	mock.ExpectQuery(regexp.QuoteMeta(selectNamesSQL)).WillReturnRows(rows)

	names, err := repo.ListNames(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 || names[0] != "Alice" || names[1] != "Bob" {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestUserRepository_ListNames_Empty(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(selectNamesSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"name"}))

	names, err := repo.ListNames(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if names == nil || len(names) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", names)
	}
}
