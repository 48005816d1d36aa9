package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/atfurman/taskapp/internal/common"
	"github.com/atfurman/taskapp/internal/server/avatars"
	"github.com/atfurman/taskapp/internal/server/users"
)

const maxAvatarBytes = 1_000_000

var allowedAvatarExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

func (s *Server) register(c *fiber.Ctx) error {

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Age      int    `json:"age"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid request body"})
	}

	user, err := s.users.Register(c.UserContext(), users.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
	})
	if err != nil {
		return s.fail(c, err)
	}

	token, err := s.issuer.Issue(c.UserContext(), user.ID)
	if err != nil {
		return s.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user, "token": token})
}

// login deliberately answers every failure with an empty 400 so the
// response does not reveal whether the email is registered.
func (s *Server) login(c *fiber.Ctx) error {

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).Send(nil)
	}

	user, err := s.users.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).Send(nil)
	}

	token, err := s.issuer.Issue(c.UserContext(), user.ID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).Send(nil)
	}

	return c.JSON(fiber.Map{"user": user, "token": token})
}

func (s *Server) logout(c *fiber.Ctx) error {

	userID := c.Locals(localUserID).(string)
	token := c.Locals(localToken).(string)

	if err := s.issuer.Revoke(c.UserContext(), userID, token); err != nil {
		return s.fail(c, err)
	}

	return c.SendString("Logged out")
}

func (s *Server) logoutAll(c *fiber.Ctx) error {

	userID := c.Locals(localUserID).(string)

	if err := s.issuer.RevokeAll(c.UserContext(), userID); err != nil {
		return s.fail(c, err)
	}

	return c.SendString("Logged out from all devices")
}

func (s *Server) getProfile(c *fiber.Ctx) error {

	user, err := s.users.Get(c.UserContext(), c.Locals(localUserID).(string))
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(user)
}

func (s *Server) updateProfile(c *fiber.Ctx) error {

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid request body"})
	}

	var params users.UpdateParams
	for field, value := range raw {
		switch field {
		case "name":
			params.Name = new(string)
			if err := json.Unmarshal(value, params.Name); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid value for field: name"})
			}
		case "email":
			params.Email = new(string)
			if err := json.Unmarshal(value, params.Email); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid value for field: email"})
			}
		case "password":
			params.Password = new(string)
			if err := json.Unmarshal(value, params.Password); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid value for field: password"})
			}
		case "age":
			params.Age = new(int)
			if err := json.Unmarshal(value, params.Age); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid value for field: age"})
			}
		default:
			return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid updates"})
		}
	}

	user, err := s.users.Update(c.UserContext(), c.Locals(localUserID).(string), params)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(user)
}

func (s *Server) deleteProfile(c *fiber.Ctx) error {

	ctx := c.UserContext()

	user, err := s.users.Get(ctx, c.Locals(localUserID).(string))
	if err != nil {
		return s.fail(c, err)
	}

	if err := s.users.Delete(ctx, user); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(user)
}

func (s *Server) uploadAvatar(c *fiber.Ctx) error {

	data, err := readAvatarUpload(c)
	if err != nil {
		return s.fail(c, err)
	}

	normalized, err := avatars.Normalize(data)
	if err != nil {
		return s.fail(c, err)
	}

	ctx := c.UserContext()

	user, err := s.users.Get(ctx, c.Locals(localUserID).(string))
	if err != nil {
		return s.fail(c, err)
	}

	if err := s.avatars.Put(ctx, user, normalized); err != nil {
		return s.fail(c, err)
	}

	return c.Status(fiber.StatusOK).Send(nil)
}

func (s *Server) deleteAvatar(c *fiber.Ctx) error {

	ctx := c.UserContext()

	user, err := s.users.Get(ctx, c.Locals(localUserID).(string))
	if err != nil {
		return s.fail(c, err)
	}

	if err := s.avatars.Delete(ctx, user); err != nil {
		return s.fail(c, err)
	}

	return c.Status(fiber.StatusOK).Send(nil)
}

// getAvatar serves a stored avatar without authentication. Every
// failure collapses into 404 so the endpoint reveals nothing about
// which user ids exist.
func (s *Server) getAvatar(c *fiber.Ctx) error {

	ctx := c.UserContext()

	user, err := s.users.Get(ctx, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).Send(nil)
	}

	data, err := s.avatars.Get(ctx, user)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Send(nil)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(data)
}

func readAvatarUpload(c *fiber.Ctx) ([]byte, error) {

	fh, err := c.FormFile("avatar")
	if err != nil {
		return nil, fmt.Errorf("%w: avatar file is required", common.ErrorValidation)
	}

	if fh.Size > maxAvatarBytes {
		return nil, fmt.Errorf("%w: avatar must be at most %d bytes", common.ErrorValidation, maxAvatarBytes)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if _, ok := allowedAvatarExtensions[ext]; !ok {
		return nil, fmt.Errorf("%w: avatar must be a .jpg, .jpeg or .png file", common.ErrorValidation)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("error reading uploaded file: %v", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("error reading uploaded file: %v", err)
	}

	return data, nil
}
