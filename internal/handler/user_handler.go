package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"public-pulse/internal/domain"
	"public-pulse/internal/middleware"
	"public-pulse/internal/service/issue"
	"public-pulse/internal/service/user"
)

type UserHandler struct {
	userService  user.Service
	issueService issue.Service
}

func NewUserHandler(userService user.Service, issueService issue.Service) *UserHandler {
	return &UserHandler{
		userService:  userService,
		issueService: issueService,
	}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	filter := domain.UserFilter{Search: strings.TrimSpace(c.Query("search"))}
	if raw := c.Query("role"); raw != "" {
		role := domain.UserRole(strings.ToUpper(raw))
		filter.Role = &role
	}

	var err error
	if filter.DepartmentID, err = queryUUID(c, "department_id"); err != nil {
		return err
	}

	result, err := h.userService.List(c.Context(), filter, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id", "user")
	if err != nil {
		return err
	}

	found, err := h.userService.Get(c.Context(), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"user": found})
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateUserInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	created, err := h.userService.Create(c.Context(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    created,
	})
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := paramUUID(c, "id", "user")
	if err != nil {
		return err
	}

	var input domain.UpdateUserInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	updated, err := h.userService.Update(c.Context(), id, actor, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User updated successfully",
		"user":    updated,
	})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := paramUUID(c, "id", "user")
	if err != nil {
		return err
	}

	if err := h.userService.Delete(c.Context(), id, actor); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "User deleted successfully"})
}

func (h *UserHandler) ListIssues(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id", "user")
	if err != nil {
		return err
	}

	result, err := h.issueService.ListByAuthor(c.Context(), id, getPaginationParams(c), middleware.GetCurrentUser(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
