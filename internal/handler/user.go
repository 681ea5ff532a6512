package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/oauth2"

	"github.com/Vibhav-y/GitTool/internal/middleware"
)

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GitHubCodeRequest struct {
	Code string `json:"code"`
}

// GitHubAuth exchanges an OAuth code for a GitHub access token. A code
// GitHub rejects is the caller's fault; transport failures are ours.
func (h *Handler) GitHubAuth(c *fiber.Ctx) error {
	var req GitHubCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	token, err := h.authSvc.ExchangeGitHubCode(c.UserContext(), req.Code)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) {
			msg := rerr.ErrorDescription
			if msg == "" {
				msg = err.Error()
			}
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": msg,
			})
		}
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"token": token})
}

func (h *Handler) SignUp(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	session, err := h.authSvc.SignUp(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(session)
}

func (h *Handler) LogIn(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	session, err := h.authSvc.LogIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(session)
}

func (h *Handler) GetMe(c *fiber.Ctx) error {
	profile, err := h.authSvc.Me(c.UserContext(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(profile)
}

func (h *Handler) DeleteAccount(c *fiber.Ctx) error {
	if err := h.authSvc.DeleteAccount(c.UserContext(), middleware.GetUserID(c)); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}
