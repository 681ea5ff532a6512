package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Vibhav-y/GitTool/internal/model"
)

func (h *Handler) ListTemplates(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"templates": model.Templates()})
}

func (h *Handler) GetTemplate(c *fiber.Ctx) error {
	tpl, ok := model.LookupTemplate(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "template not found",
		})
	}

	return c.JSON(tpl)
}
