package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Vibhav-y/GitTool/internal/middleware"
	"github.com/Vibhav-y/GitTool/internal/service"
)

type GenerateReadmeRequest struct {
	Owner    string `json:"owner"`
	Repo     string `json:"repo"`
	Template string `json:"template"`
}

type ChatReadmeRequest struct {
	CurrentMarkdown string `json:"currentMarkdown"`
	Prompt          string `json:"prompt"`
	Token           string `json:"token"`
	Owner           string `json:"owner"`
	Repo            string `json:"repo"`
}

type RegenerateSectionRequest struct {
	CurrentMarkdown string `json:"currentMarkdown"`
	Section         string `json:"section"`
	Instructions    string `json:"instructions"`
}

type SaveReadmeRequest struct {
	RepoName  string `json:"repo_name"`
	Content   string `json:"content"`
	UserEmail string `json:"user_email"`
}

func (h *Handler) GenerateReadme(c *fiber.Ctx) error {
	var req GenerateReadmeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	result, err := h.readmeSvc.Generate(c.UserContext(), middleware.GetUserID(c), service.GenerateRequest{
		Token:    middleware.GetGitHubToken(c),
		Owner:    req.Owner,
		Repo:     req.Repo,
		Template: req.Template,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(result)
}

func (h *Handler) ChatReadme(c *fiber.Ctx) error {
	var req ChatReadmeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	token := req.Token
	if token == "" {
		token = c.Get("X-GitHub-Token")
	}

	readme, err := h.editorSvc.Chat(c.UserContext(), middleware.GetUserID(c), service.ChatRequest{
		CurrentMarkdown: req.CurrentMarkdown,
		Prompt:          req.Prompt,
		Token:           token,
		Owner:           req.Owner,
		Repo:            req.Repo,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"readme": readme})
}

func (h *Handler) RegenerateSection(c *fiber.Ctx) error {
	var req RegenerateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	readme, err := h.editorSvc.RegenerateSection(c.UserContext(), middleware.GetUserID(c), service.SectionRequest{
		CurrentMarkdown: req.CurrentMarkdown,
		Section:         req.Section,
		Instructions:    req.Instructions,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"readme": readme})
}

func (h *Handler) SaveReadme(c *fiber.Ctx) error {
	var req SaveReadmeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	email := req.UserEmail
	if email == "" {
		email = middleware.GetUserEmail(c)
	}

	saved, err := h.projectSvc.SaveReadme(c.UserContext(), middleware.GetUserID(c), req.RepoName, req.Content, email)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "data": saved})
}
