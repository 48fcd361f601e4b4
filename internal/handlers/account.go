package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"user_accounts/internal/service"

	"github.com/gin-gonic/gin"
)

// User-visible failure messages.
const (
	errUserExists       = "user already exists"
	errConfirmMismatch  = "confirm password and password are not same"
	errRegisterFailed   = "failed to register new user"
	errNotRegistered    = "email is not registered"
	errWrongPassword    = "password doesn't match"
	errListUsers        = "internal server error"
	errEmailNotFound    = "email not found"
	errEmailNotUpdated  = "email is not updated"
	errWrongOldPassword = "enter the correct old password"
	errUpdatePassword   = "failed to update password"
	errDeleteAccount    = "failed to delete account"
)

// Request DTOs. Presence is the only validation performed, on purpose.
type registerRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateEmailRequest struct {
	Email    string `json:"email" binding:"required"`
	NewEmail string `json:"newEmail" binding:"required"`
}

type updatePasswordRequest struct {
	Password    string `json:"password" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "err", err)
		}
		fail(c, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// @Summary      Home
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       / [get]
func (h *Handler) home(c *gin.Context) {
	ok(c, http.StatusOK, "Welcome to Home page", nil)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      List all user names
// @Tags         accounts
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "success, message, UserList"
// @Failure      500  {object}  map[string]interface{}
// @Router       /api/alluser [get]
func (h *Handler) allUsers(c *gin.Context) {
	names, err := h.services.Accounts.ListNames(c.Request.Context())
	if err != nil {
		h.logAndFail(c, http.StatusInternalServerError, errListUsers, "list_users_failed", err)
		return
	}
	ok(c, http.StatusOK, "All users here", gin.H{"UserList": names})
}

// @Summary      Register a new account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}  "duplicate email"
// @Failure      401  {object}  map[string]interface{}  "password confirmation mismatch"
// @Failure      500  {object}  map[string]interface{}
// @Router       /api/register [post]
func (h *Handler) register(c *gin.Context) {
	var input registerRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	u, err := h.services.Accounts.Register(c.Request.Context(), service.RegisterParams{
		Name:            input.Name,
		Email:           input.Email,
		Password:        input.Password,
		ConfirmPassword: input.ConfirmPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			fail(c, http.StatusBadRequest, errUserExists)
		case errors.Is(err, service.ErrPasswordMismatch):
			fail(c, http.StatusUnauthorized, errConfirmMismatch)
		case errors.Is(err, service.ErrMissingField):
			fail(c, http.StatusBadRequest, err.Error())
		default:
			h.logAndFail(c, http.StatusInternalServerError, errRegisterFailed, "register_failed", err, "email", input.Email)
		}
		return
	}

	ok(c, http.StatusCreated, fmt.Sprintf("%s registered successfully", u.Name), nil)
}

// @Summary      Log in and receive the session cookie
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}  "unknown email"
// @Failure      401  {object}  map[string]interface{}  "wrong password"
// @Router       /api/login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.Accounts.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotRegistered):
			fail(c, http.StatusBadRequest, errNotRegistered)
		case errors.Is(err, service.ErrWrongPassword):
			fail(c, http.StatusUnauthorized, errWrongPassword)
		default:
			h.logAndFail(c, http.StatusInternalServerError, "failed to login", "login_failed", err, "email", input.Email)
		}
		return
	}

	setSessionCookie(c, token)
	ok(c, http.StatusOK, "Logged in successfully", nil)
}

func (h *Handler) profile(c *gin.Context) {
	u, found := currentUser(c)
	if !found {
		fail(c, http.StatusUnauthorized, "login first")
		return
	}
	ok(c, http.StatusOK, fmt.Sprintf("Welcome %s", u.Name), gin.H{"email": u.Email})
}

func (h *Handler) logout(c *gin.Context) {
	clearSessionCookie(c)
	ok(c, http.StatusOK, "logged out successfully", nil)
}

func (h *Handler) updateEmail(c *gin.Context) {
	u, found := currentUser(c)
	if !found {
		fail(c, http.StatusUnauthorized, "login first")
		return
	}

	var input updateEmailRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	err := h.services.Accounts.UpdateEmail(c.Request.Context(), u.ID, input.Email, input.NewEmail)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailNotFound):
			fail(c, http.StatusBadRequest, errEmailNotFound)
		case errors.Is(err, service.ErrEmailTaken):
			fail(c, http.StatusBadRequest, errUserExists)
		case errors.Is(err, service.ErrUserNotFound):
			fail(c, http.StatusBadRequest, errEmailNotUpdated)
		default:
			h.logAndFail(c, http.StatusInternalServerError, errEmailNotUpdated, "update_email_failed", err, "userId", u.ID)
		}
		return
	}

	ok(c, http.StatusOK, fmt.Sprintf("Your new email is %s", input.NewEmail), nil)
}

func (h *Handler) updatePassword(c *gin.Context) {
	u, found := currentUser(c)
	if !found {
		fail(c, http.StatusUnauthorized, "login first")
		return
	}

	var input updatePasswordRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	err := h.services.Accounts.UpdatePassword(c.Request.Context(), u.ID, input.Password, input.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWrongPassword):
			fail(c, http.StatusBadRequest, errWrongOldPassword)
		default:
			h.logAndFail(c, http.StatusInternalServerError, errUpdatePassword, "update_password_failed", err, "userId", u.ID)
		}
		return
	}

	// Force a fresh login with the new password.
	clearSessionCookie(c)
	ok(c, http.StatusOK, "You have successfully updated your password", nil)
}

func (h *Handler) deleteAccount(c *gin.Context) {
	u, found := currentUser(c)
	if !found {
		fail(c, http.StatusUnauthorized, "login first")
		return
	}

	if err := h.services.Accounts.Delete(c.Request.Context(), u.ID); err != nil {
		h.logAndFail(c, http.StatusInternalServerError, errDeleteAccount, "delete_account_failed", err, "userId", u.ID)
		return
	}

	clearSessionCookie(c)
	ok(c, http.StatusOK, "Account deleted permanently", nil)
}
