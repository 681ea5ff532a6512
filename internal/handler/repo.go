package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Vibhav-y/GitTool/internal/middleware"
)

type RepoDataRequest struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
}

func (h *Handler) GetRepositories(c *fiber.Ctx) error {
	repos, err := h.repoSvc.List(c.UserContext(), middleware.GetGitHubToken(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"repos": repos})
}

// GetRepoData returns the assembled repository context without charging
// tokens.
func (h *Handler) GetRepoData(c *fiber.Ctx) error {
	var req RepoDataRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	rc, err := h.repoSvc.Context(c.UserContext(), middleware.GetGitHubToken(c), req.Owner, req.Repo)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(rc)
}
