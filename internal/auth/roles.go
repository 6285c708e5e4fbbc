package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/ZeynepCam13/OnlineDestek/internal/repository"
	apperrors "github.com/ZeynepCam13/OnlineDestek/pkg/util"
)

// RequireAdmin ensures the authenticated caller is the admin account. It
// loads the user behind the session and compares the username literal; there
// is no role table. Must run after RequireSession.
func RequireAdmin(users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated("login required")
		}

		user, err := users.GetByID(c.Context(), principal.UserID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewForbidden("admin access required")
			}
			return apperrors.NewInternalError(err)
		}
		if !user.IsAdmin() {
			return apperrors.NewForbidden("admin access required")
		}
		return c.Next()
	}
}
