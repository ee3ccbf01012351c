package controller

import (
	"github.com/gofiber/fiber/v2"

	"flyer_builder/internal/middleware"
	"flyer_builder/internal/store"
)

var sessions *store.Sessions

func InitSessionController(s *store.Sessions) {
	sessions = s
}

// EndSession drops the caller's workspace and clears the session cookie. The next
// request starts from an empty workspace.
func EndSession(c *fiber.Ctx) error {
	sessions.Remove(middleware.SessionID(c))
	c.ClearCookie(middleware.SessionCookie)
	return c.JSON(fiber.Map{
		"message": "Session ended",
	})
}
