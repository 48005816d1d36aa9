package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/atfurman/taskapp/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

// fail maps domain errors onto the HTTP contract. Rejected input comes
// back as 400 with the reason, missing records as a bare 404, anything
// unexpected as 500 without leaking internals.
func (s *Server) fail(c *fiber.Ctx, err error) error {

	switch {
	case errors.Is(err, common.ErrorValidation),
		errors.Is(err, common.ErrorInvalidField),
		errors.Is(err, common.ErrorDuplicateEmail),
		errors.Is(err, common.ErrorInvalidCredentials):
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: err.Error()})
	case errors.Is(err, common.ErrorNotFound):
		return c.Status(fiber.StatusNotFound).Send(nil)
	case errors.Is(err, common.ErrorUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(errorResponse{Error: "please authenticate"})
	default:
		s.logger.Error(c.UserContext(), "request failed", "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: "internal error"})
	}
}
