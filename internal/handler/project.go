package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Vibhav-y/GitTool/internal/middleware"
	"github.com/Vibhav-y/GitTool/internal/model"
	"github.com/Vibhav-y/GitTool/internal/service"
)

func (h *Handler) ListProjects(c *fiber.Ctx) error {
	projects, err := h.projectSvc.List(c.UserContext(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"projects": projects})
}

func (h *Handler) CreateProject(c *fiber.Ctx) error {
	var req service.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	project, err := h.projectSvc.Create(c.UserContext(), middleware.GetUserID(c), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(project)
}

func (h *Handler) GetProject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidProjectID(c)
	}

	project, err := h.projectSvc.Get(c.UserContext(), middleware.GetUserID(c), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(project)
}

func (h *Handler) UpdateProject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidProjectID(c)
	}

	var req model.ProjectUpdate
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	project, err := h.projectSvc.Update(c.UserContext(), middleware.GetUserID(c), id, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(project)
}

func (h *Handler) DeleteProject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidProjectID(c)
	}

	if err := h.projectSvc.Delete(c.UserContext(), middleware.GetUserID(c), id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

func invalidProjectID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "invalid project id",
	})
}
