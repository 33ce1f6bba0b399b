package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"contentdash/internal/authcookie"
	"contentdash/internal/config"
	"contentdash/internal/db"
	"contentdash/internal/metrics"
	"contentdash/internal/models"
)

// UserFinder looks up accounts by email.
type UserFinder interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthHandler handles login and logout.
type AuthHandler struct {
	users UserFinder
	cfg   *config.Config
	now   func() time.Time
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(users UserFinder, cfg *config.Config) *AuthHandler {
	return &AuthHandler{users: users, cfg: cfg, now: time.Now}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) cookieOptions() authcookie.Options {
	return authcookie.Options{
		MaxAge: h.cfg.CookieMaxAge,
		Secure: h.cfg.SecureCookies(),
	}
}

// Login checks email and password and sets the auth cookie.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		metrics.RecordLogin(metrics.OutcomeInvalidRequest)
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		metrics.RecordLogin(metrics.OutcomeInvalidRequest)
		return jsonError(c, fiber.StatusBadRequest, "Email and password are required")
	}

	user, err := h.users.GetUserByEmail(c.Context(), req.Email)
	if errors.Is(err, db.ErrUserNotFound) {
		return h.invalidCredentials(c, "unknown user")
	}
	if err != nil {
		metrics.RecordLogin(metrics.OutcomeError)
		if errors.Is(err, db.ErrTimeout) {
			return internalError(c, h.cfg.IsDev(), "Database request timed out", err)
		}
		return internalError(c, h.cfg.IsDev(), "Internal server error", err)
	}
	if !user.PasswordMatches(req.Password) {
		return h.invalidCredentials(c, "password mismatch")
	}

	cookie, err := authcookie.New(authcookie.Payload{
		ID:       user.ID.Hex(),
		Email:    user.Email,
		IssuedAt: h.now().Unix(),
	}, h.cookieOptions())
	if err != nil {
		metrics.RecordLogin(metrics.OutcomeError)
		return internalError(c, h.cfg.IsDev(), "Internal server error", err)
	}
	c.Cookie(cookie)

	metrics.RecordLogin(metrics.OutcomeSuccess)
	slog.Info("login succeeded", "email", user.Email)
	return c.JSON(models.LoginResponse{
		Success: true,
		User:    models.UserSummary{Email: user.Email},
	})
}

// invalidCredentials answers unknown users and wrong passwords identically.
func (h *AuthHandler) invalidCredentials(c fiber.Ctx, reason string) error {
	metrics.RecordLogin(metrics.OutcomeInvalidCredentials)
	slog.Info("login rejected", "reason", reason)
	return jsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
}

// Logout clears the auth cookie on "/" and on every protected path.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	authcookie.Clear(c, h.cookieOptions(), h.cfg.ProtectedPaths)
	return c.JSON(models.LogoutResponse{
		Success: true,
		Message: "Logged out successfully",
	})
}
