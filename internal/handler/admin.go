package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Vibhav-y/GitTool/internal/middleware"
	"github.com/Vibhav-y/GitTool/internal/service"
)

// AdminHandler handles admin panel requests
type AdminHandler struct {
	adminSvc *service.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminSvc *service.AdminService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc}
}

// GetStats returns admin dashboard statistics
func (h *AdminHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.adminSvc.Stats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

type GrantTokensRequest struct {
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
}

// GrantTokens credits tokens to a user
func (h *AdminHandler) GrantTokens(c *fiber.Ctx) error {
	targetUserID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid user_id",
		})
	}

	var req GrantTokensRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	balance, err := h.adminSvc.GrantTokens(c.UserContext(), middleware.GetAdminID(c), targetUserID, req.Amount, req.Description)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "balance": balance})
}

// AddAdmin promotes a user to admin
func (h *AdminHandler) AddAdmin(c *fiber.Ctx) error {
	targetUserID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid user_id",
		})
	}

	if err := h.adminSvc.AddAdmin(c.UserContext(), middleware.GetAdminID(c), targetUserID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// GetLogs returns admin action logs
func (h *AdminHandler) GetLogs(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	logs, err := h.adminSvc.Logs(c.UserContext(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"logs": logs})
}

// GetSettings returns all settings
func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.adminSvc.Settings(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"settings": settings})
}

func (h *AdminHandler) GetSignupGrant(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"tokens": h.adminSvc.SignupGrant(c.UserContext())})
}

type SetSignupGrantRequest struct {
	Tokens int64 `json:"tokens"`
}

func (h *AdminHandler) SetSignupGrant(c *fiber.Ctx) error {
	var req SetSignupGrantRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	if err := h.adminSvc.SetSignupGrant(c.UserContext(), middleware.GetAdminID(c), req.Tokens); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}
