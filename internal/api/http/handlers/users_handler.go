package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ZeynepCam13/OnlineDestek/internal/api/dto"
	"github.com/ZeynepCam13/OnlineDestek/internal/auth"
	"github.com/ZeynepCam13/OnlineDestek/internal/config"
	"github.com/ZeynepCam13/OnlineDestek/internal/service"
	apperrors "github.com/ZeynepCam13/OnlineDestek/pkg/util"
)

// UsersHandler exposes registration, login, logout and profile endpoints.
type UsersHandler struct {
	auth *service.AuthService
	cfg  config.AuthConfig
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, cfg config.AuthConfig) *UsersHandler {
	return &UsersHandler{auth: authService, cfg: cfg}
}

// Register handles POST /api/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	userID, err := h.auth.Register(c.Context(), service.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "registration successful",
		"userId":  userID,
	})
}

// Login handles POST /api/login. On success it sets the session cookie.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	user, token, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(h.cfg.SessionTTL()),
		HTTPOnly: true,
	})

	return c.JSON(fiber.Map{
		"message": "login successful",
		"user":    dto.LoginUser{ID: user.ID, Username: user.Username},
	})
}

// Logout handles POST /api/logout. Destroying an absent session still
// succeeds.
func (h *UsersHandler) Logout(c *fiber.Ctx) error {
	token := c.Cookies(h.cfg.SessionCookie)
	if err := h.auth.Logout(c.Context(), token); err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	return c.JSON(fiber.Map{"message": "logout successful"})
}

// Profile handles GET /api/profile. The password hash is never serialized.
func (h *UsersHandler) Profile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("login required")
	}

	user, err := h.auth.Profile(c.Context(), principal.UserID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"user": dto.ProfileResponse{
			ID:       user.ID,
			FullName: user.FullName,
			Email:    user.Email,
			Phone:    user.Phone,
			Username: user.Username,
		},
	})
}
