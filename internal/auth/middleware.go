package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ZeynepCam13/OnlineDestek/internal/session"
	apperrors "github.com/ZeynepCam13/OnlineDestek/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	UserID int64
	Token  string
}

// SessionMiddleware resolves the session cookie and loads principals.
type SessionMiddleware struct {
	sessions   session.Manager
	cookieName string
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(sessions session.Manager, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions, cookieName: cookieName}
}

// RequireSession enforces authentication for protected routes.
func (m *SessionMiddleware) RequireSession(c *fiber.Ctx) error {
	token := c.Cookies(m.cookieName)
	if token == "" {
		return apperrors.NewUnauthenticated("login required")
	}

	userID, err := m.sessions.Resolve(c.Context(), token)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return apperrors.NewUnauthenticated("login required")
		}
		return apperrors.NewInternalError(err)
	}

	c.Locals(principalKey, &Principal{UserID: userID, Token: token})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
