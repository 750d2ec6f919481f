package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-studio/internal/logger"
	"github.com/jonathan/resume-studio/internal/server/middleware"
	"github.com/jonathan/resume-studio/internal/types"
	"go.uber.org/zap"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	userService *UserService
	jwtService  *JWTService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(userService *UserService, jwtService *JWTService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
		validator:   validator.New(),
		logger:      logger.OrNop(log),
	}
}

// Register handles user registration requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := h.validator.Struct(req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		h.fail(w, "register", err)
		return
	}
	h.respondWithToken(w, http.StatusCreated, user)
}

// Login handles user login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		h.fail(w, "login", err)
		return
	}
	h.respondWithToken(w, http.StatusOK, user)
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, h.logger, http.StatusUnauthorized, "unauthorized")
		return
	}
	user, err := h.userService.Me(r.Context(), userID)
	if err != nil {
		h.fail(w, "me", err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, status int, user *types.User) {
	token, err := h.jwtService.GenerateToken(user.ID)
	if err != nil {
		h.logger.Error("failed to generate token", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "failed to generate token")
		return
	}
	writeJSON(w, h.logger, status, types.LoginResponse{User: user, Token: token})
}

func (h *AuthHandler) fail(w http.ResponseWriter, op string, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("auth request failed", zap.String("op", op), zap.Error(err))
		writeError(w, h.logger, status, "internal server error")
		return
	}
	writeError(w, h.logger, status, err.Error())
}

// extractValidationErrors reports the first failed field from validator errors.
func extractValidationErrors(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
	}
	return "validation error: invalid request"
}
