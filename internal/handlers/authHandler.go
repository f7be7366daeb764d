package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/swippe/quickcommerce/internal/api"
	"github.com/swippe/quickcommerce/internal/auth"
	"github.com/swippe/quickcommerce/internal/data/store"
	"github.com/swippe/quickcommerce/internal/domain/commerceModel"
	"github.com/swippe/quickcommerce/pkg/logger_i"
)

var (
	_users      *store.UserStore
	_jwtManager *auth.JWTManager
	logAH       *logger_i.Logger
)

func InitAuthHandler(users *store.UserStore, jwtManager *auth.JWTManager) {
	_users = users
	_jwtManager = jwtManager
	logAH = logger_i.NewLogger("AuthHandler")
}

func toUserSummary(u commerceModel.User) api.UserSummary {
	return api.UserSummary{Id: u.Id, Email: u.Email, Role: string(u.Role), CreatedAt: u.CreatedAt}
}

// RegisterHandler godoc
// @Summary      Register a new account
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      api.RegisterRequest  true  "Email and password"
// @Success      201      {object}  api.AuthResponse
// @Failure      400      {object}  handlers.errorBody
// @Failure      409      {object}  handlers.errorBody
// @Router       /api/auth/register [post]
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		writeError(w, http.StatusBadRequest, "valid email required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			writeError(w, http.StatusBadRequest, "password too short")
			return
		}
		logAH.Error("Password hashing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not register")
		return
	}

	id, err := _users.CreateUser(r.Context(), email, hash)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, "email already registered")
			return
		}
		logAH.Error("User creation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not register")
		return
	}

	user, err := _users.GetById(r.Context(), id)
	if err != nil {
		logAH.Error("Could not load new user", "userId", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not register")
		return
	}

	token, err := _jwtManager.Issue(user)
	if err != nil {
		logAH.Error("Token issue failed", "userId", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not register")
		return
	}

	logAH.Info("User registered", "userId", id)
	writeJsonResponse(w, http.StatusCreated, api.AuthResponse{Token: token, User: toUserSummary(user)})
}

// LoginHandler godoc
// @Summary      Log in
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      api.LoginRequest  true  "Email and password"
// @Success      200      {object}  api.AuthResponse
// @Failure      401      {object}  handlers.errorBody
// @Router       /api/auth/login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := _users.GetByEmail(r.Context(), email)
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := _jwtManager.Issue(user)
	if err != nil {
		logAH.Error("Token issue failed", "userId", user.Id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not log in")
		return
	}

	writeJsonResponse(w, http.StatusOK, api.AuthResponse{Token: token, User: toUserSummary(user)})
}

// ChangePasswordHandler godoc
// @Summary      Change password
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      api.ChangePasswordRequest  true  "Current and new password"
// @Success      200      {object}  map[string]string
// @Failure      401      {object}  handlers.errorBody
// @Security     BearerAuth
// @Router       /api/auth/change-password [post]
func ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req api.ChangePasswordRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := _users.GetById(r.Context(), caller.Id)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		writeError(w, http.StatusUnauthorized, "current password is wrong")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		writeError(w, http.StatusBadRequest, "new password too short")
		return
	}
	if err := _users.UpdatePassword(r.Context(), caller.Id, hash); err != nil {
		logAH.Error("Password update failed", "userId", caller.Id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not change password")
		return
	}

	logAH.Info("Password changed", "userId", caller.Id)
	writeJsonResponse(w, http.StatusOK, map[string]string{"status": "password changed"})
}

// ProfileHandler godoc
// @Summary      Current user profile
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  api.UserSummary
// @Security     BearerAuth
// @Router       /api/profile [get]
func ProfileHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := _users.GetById(r.Context(), caller.Id)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJsonResponse(w, http.StatusOK, toUserSummary(user))
}
