package httpapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by requireAuth for downstream handlers.
const (
	localUserID = "userID"
	localToken  = "token"
)

// requireAuth authenticates the request from the Authorization header.
// The raw token is kept in locals so logout can revoke exactly the
// credential that was presented.
func (s *Server) requireAuth(c *fiber.Ctx) error {

	token, found := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	if !found || token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(errorResponse{Error: "please authenticate"})
	}

	userID, err := s.issuer.Verify(c.UserContext(), token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(errorResponse{Error: "please authenticate"})
	}

	c.Locals(localUserID, userID)
	c.Locals(localToken, token)

	return c.Next()
}
