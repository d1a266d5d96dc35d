package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-service/internal/api/dto"
	"github.com/spec-kit/catalog-service/internal/service"
	"github.com/spec-kit/catalog-service/internal/validation"
	apperrors "github.com/spec-kit/catalog-service/pkg/util/errorutil"
)

// UsersHandler serves /users.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserList(users)})
}

func (h *UsersHandler) Get(c *fiber.Ctx, rawID string) error {
	id, err := parseUserID(rawID)
	if err != nil {
		return err
	}
	user, err := h.users.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(*user)})
}

func (h *UsersHandler) Create(c *fiber.Ctx) error {
	in, err := userInput(c)
	if err != nil {
		return err
	}
	user, err := h.users.Create(c.UserContext(), actor(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(*user)})
}

func (h *UsersHandler) Update(c *fiber.Ctx, rawID string) error {
	id, err := parseUserID(rawID)
	if err != nil {
		return err
	}
	in, err := userInput(c)
	if err != nil {
		return err
	}
	user, err := h.users.Update(c.UserContext(), actor(c), id, in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(*user)})
}

func (h *UsersHandler) Delete(c *fiber.Ctx, rawID string) error {
	id, err := parseUserID(rawID)
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.UserContext(), actor(c), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "User deleted."})
}

func parseUserID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewBadRequest("user id must be a positive integer")
	}
	return id, nil
}

func userInput(c *fiber.Ctx) (validation.UserInput, error) {
	fields, err := decodeBody(c, userSchema)
	if err != nil {
		return validation.UserInput{}, err
	}
	return validation.UserInput{
		Username: optional(fields, "username"),
		Password: optional(fields, "password"),
	}, nil
}
