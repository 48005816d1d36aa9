package httpapi

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/atfurman/taskapp/internal/server/tasks"
)

func (s *Server) createTask(c *fiber.Ctx) error {

	// owner always comes from the authenticated session, never from
	// the payload
	var req struct {
		Description string `json:"description"`
		Completed   bool   `json:"completed"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid request body"})
	}

	task, err := s.tasks.Create(c.UserContext(), c.Locals(localUserID).(string), req.Description, req.Completed)
	if err != nil {
		return s.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(task)
}

func (s *Server) listTasks(c *fiber.Ctx) error {

	opts := tasks.ParseListOptions(
		c.Query("completed"),
		c.Query("sortBy"),
		c.Query("limit"),
		c.Query("skip"),
	)

	list, err := s.tasks.List(c.UserContext(), c.Locals(localUserID).(string), opts)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(list)
}

func (s *Server) getTask(c *fiber.Ctx) error {

	id := c.Params("id")
	if uuid.Validate(id) != nil {
		return c.Status(fiber.StatusNotFound).Send(nil)
	}

	task, err := s.tasks.Get(c.UserContext(), c.Locals(localUserID).(string), id)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(task)
}

func (s *Server) updateTask(c *fiber.Ctx) error {

	id := c.Params("id")
	if uuid.Validate(id) != nil {
		return c.Status(fiber.StatusNotFound).Send(nil)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid request body"})
	}

	var params tasks.UpdateParams
	for field, value := range raw {
		switch field {
		case "description":
			params.Description = new(string)
			if err := json.Unmarshal(value, params.Description); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid value for field: description"})
			}
		case "completed":
			params.Completed = new(bool)
			if err := json.Unmarshal(value, params.Completed); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid value for field: completed"})
			}
		default:
			return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid updates"})
		}
	}

	task, err := s.tasks.Update(c.UserContext(), c.Locals(localUserID).(string), id, params)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(task)
}

func (s *Server) deleteTask(c *fiber.Ctx) error {

	id := c.Params("id")
	if uuid.Validate(id) != nil {
		return c.Status(fiber.StatusNotFound).Send(nil)
	}

	task, err := s.tasks.Delete(c.UserContext(), c.Locals(localUserID).(string), id)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(task)
}
