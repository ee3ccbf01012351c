package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"flyer_builder/internal/store"
	"flyer_builder/pkg/logger"
)

const (
	SessionCookie = "flyer_session"
	workspaceKey  = "workspace"
	sessionKey    = "session_id"
)

// Session resolves the caller's workspace from the session cookie, creating a new
// one when the cookie is missing or expired.
func Session(sessions *store.Sessions, ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ws := sessions.Acquire(c.Cookies(SessionCookie))
		if id != c.Cookies(SessionCookie) {
			logger.Log.WithField("session", id).Debug("New workspace created")
			ws.Stage().OnChange(func(scale float64) {
				logger.Log.WithField("session", id).WithField("scale", scale).Debug("Display scale changed")
			})
		}

		c.Cookie(&fiber.Cookie{
			Name:     SessionCookie,
			Value:    id,
			Path:     "/",
			MaxAge:   int(ttl.Seconds()),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		c.Locals(sessionKey, id)
		c.Locals(workspaceKey, ws)
		return c.Next()
	}
}

// Workspace returns the workspace attached by Session.
func Workspace(c *fiber.Ctx) *store.Workspace {
	ws, _ := c.Locals(workspaceKey).(*store.Workspace)
	return ws
}

// SessionID returns the id attached by Session.
func SessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(sessionKey).(string)
	return id
}

// CheckImageLimit rejects uploads once the workspace holds store.MaxImages photos.
func CheckImageLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ws := Workspace(c)
		if ws != nil && len(ws.Images()) >= store.MaxImages {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Maximum image limit reached (16)",
			})
		}
		return c.Next()
	}
}
