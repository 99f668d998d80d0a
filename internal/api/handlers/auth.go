package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mindarch/studyplan/internal/api/dto"
	"github.com/mindarch/studyplan/internal/api/middleware"
	"github.com/mindarch/studyplan/internal/auth"
	"github.com/mindarch/studyplan/internal/config"
	"github.com/mindarch/studyplan/internal/domain/user"
	"github.com/mindarch/studyplan/internal/pkg/errors"
	"github.com/mindarch/studyplan/internal/pkg/logger"
	"github.com/mindarch/studyplan/internal/pkg/utils"
	"github.com/mindarch/studyplan/internal/pkg/validator"
)

// AuthHandler handles signup, login, logout and session checks
type AuthHandler struct {
	userService user.Service
	config      *config.Config
	logger      *logger.Logger
	validator   *validator.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	userService user.Service,
	cfg *config.Config,
	log *logger.Logger,
	val *validator.Validator,
) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		config:      cfg,
		logger:      log,
		validator:   val,
	}
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   h.config.Server.Environment == "production",
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(h.config.Auth.SessionTTL.Seconds()),
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   h.config.Server.Environment == "production",
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

// Signup handles account creation and starts a session
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if msgs := h.validator.Validate(req); len(msgs) > 0 {
		utils.WriteError(w, errors.Validation(strings.Join(msgs, "; ")))
		return
	}

	newUser, err := h.userService.Create(r.Context(), req.Username, req.Password)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			utils.WriteError(w, appErr)
		} else {
			utils.WriteError(w, errors.Internal("Failed to create user", err))
		}
		return
	}

	token, err := auth.MintToken(newUser.ID, newUser.Username, h.config.Auth.JWTSecret, h.config.Auth.SessionTTL)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to mint session token")
		utils.WriteError(w, errors.Internal("Failed to create session", err))
		return
	}
	h.setSessionCookie(w, token)

	utils.WriteJSON(w, http.StatusCreated, utils.MessageResponse{
		Message:  "User created successfully",
		Username: newUser.Username,
	})
}

// Login authenticates a user and starts a session
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if msgs := h.validator.Validate(req); len(msgs) > 0 {
		utils.WriteError(w, errors.Validation(strings.Join(msgs, "; ")))
		return
	}

	authenticated, err := h.userService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.With("username", req.Username).Warn("Authentication failed")
		if appErr, ok := err.(*errors.AppError); ok {
			utils.WriteError(w, appErr)
		} else {
			utils.WriteError(w, errors.Unauthorized("Invalid credentials"))
		}
		return
	}

	token, err := auth.MintToken(authenticated.ID, authenticated.Username, h.config.Auth.JWTSecret, h.config.Auth.SessionTTL)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to mint session token")
		utils.WriteError(w, errors.Internal("Failed to create session", err))
		return
	}
	h.setSessionCookie(w, token)

	h.logger.WithFields(map[string]interface{}{
		"user_id":  authenticated.ID,
		"username": authenticated.Username,
	}).Info("User logged in")

	utils.WriteJSON(w, http.StatusOK, utils.MessageResponse{
		Message:  "Logged in successfully",
		Username: authenticated.Username,
	})
}

// Logout ends the current session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	utils.WriteMessage(w, http.StatusOK, "Logged out successfully")
}

// CheckSession reports whether the request carries a valid session
func (h *AuthHandler) CheckSession(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsername(r)
	if !ok {
		utils.WriteJSON(w, http.StatusOK, dto.SessionResponse{LoggedIn: false})
		return
	}

	utils.WriteJSON(w, http.StatusOK, dto.SessionResponse{
		LoggedIn: true,
		Username: username,
	})
}
