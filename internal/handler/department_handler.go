package handler

import (
	"github.com/gofiber/fiber/v2"

	"public-pulse/internal/domain"
	"public-pulse/internal/service/department"
)

type DepartmentHandler struct {
	departmentService department.Service
}

func NewDepartmentHandler(departmentService department.Service) *DepartmentHandler {
	return &DepartmentHandler{departmentService: departmentService}
}

func (h *DepartmentHandler) Create(c *fiber.Ctx) error {
	var input domain.DepartmentInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	created, err := h.departmentService.Create(c.Context(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Department created successfully",
		"department": created,
	})
}

func (h *DepartmentHandler) List(c *fiber.Ctx) error {
	departments, err := h.departmentService.List(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"departments": departments})
}

func (h *DepartmentHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id", "department")
	if err != nil {
		return err
	}

	found, err := h.departmentService.Get(c.Context(), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"department": found})
}

func (h *DepartmentHandler) Update(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id", "department")
	if err != nil {
		return err
	}

	var input domain.DepartmentInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	updated, err := h.departmentService.Update(c.Context(), id, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":    "Department updated successfully",
		"department": updated,
	})
}

func (h *DepartmentHandler) Delete(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id", "department")
	if err != nil {
		return err
	}

	if err := h.departmentService.Delete(c.Context(), id); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Department deleted successfully"})
}

func (h *DepartmentHandler) AssignUser(c *fiber.Ctx) error {
	var input domain.AssignUserInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	user, err := h.departmentService.AssignUser(c.Context(), input)
	if err != nil {
		return err
	}

	message := "User assigned to department successfully"
	if input.DepartmentID == nil {
		message = "User removed from department successfully"
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": message,
		"user":    user,
	})
}
