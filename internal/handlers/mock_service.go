package handlers

import (
	"context"

	"user_accounts/internal/models"
	"user_accounts/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAccounts struct {
	registerUser *models.User
	registerErr  error
	loginToken   string
	loginErr     error
	getUser      *models.User
	getErr       error
	names        []string
	namesErr     error
	updEmailErr  error
	updPassErr   error
	deleteErr    error

	lastRegister    service.RegisterParams
	lastLoginEmail  string
	lastLoginPass   string
	lastGetID       string
	lastUpdEmailIn  [3]string // userID, currentEmail, newEmail
	lastUpdPassIn   [3]string // userID, oldPassword, newPassword
	lastDeleteID    string
}

func (m *mockAccounts) Register(_ context.Context, in service.RegisterParams) (*models.User, error) {
	m.lastRegister = in
	return m.registerUser, m.registerErr
}

func (m *mockAccounts) Login(_ context.Context, email, password string) (string, error) {
	m.lastLoginEmail = email
	m.lastLoginPass = password
	return m.loginToken, m.loginErr
}

func (m *mockAccounts) GetByID(_ context.Context, id string) (*models.User, error) {
	m.lastGetID = id
	return m.getUser, m.getErr
}

func (m *mockAccounts) ListNames(_ context.Context) ([]string, error) {
	return m.names, m.namesErr
}

func (m *mockAccounts) UpdateEmail(_ context.Context, userID, currentEmail, newEmail string) error {
	m.lastUpdEmailIn = [3]string{userID, currentEmail, newEmail}
	return m.updEmailErr
}

func (m *mockAccounts) UpdatePassword(_ context.Context, userID, oldPassword, newPassword string) error {
	m.lastUpdPassIn = [3]string{userID, oldPassword, newPassword}
	return m.updPassErr
}

func (m *mockAccounts) Delete(_ context.Context, userID string) error {
	m.lastDeleteID = userID
	return m.deleteErr
}

type mockSessions struct {
	issueToken string
	issueErr   error
	parseID    string
	parseErr   error

	lastIssueID    string
	lastParseToken string
}

func (m *mockSessions) Issue(userID string) (string, error) {
	m.lastIssueID = userID
	return m.issueToken, m.issueErr
}

func (m *mockSessions) Parse(accessToken string) (string, error) {
	m.lastParseToken = accessToken
	return m.parseID, m.parseErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
