package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Vibhav-y/GitTool/internal/auth"
	"github.com/Vibhav-y/GitTool/internal/config"
	"github.com/Vibhav-y/GitTool/internal/middleware"
)

// Register mounts every route on app.
func Register(app *fiber.App, h *Handler, ah *AdminHandler, sessions *auth.Sessions, admins middleware.AdminChecker, limits config.RateLimitConfig) {
	app.Get("/health", h.Health)

	api := app.Group("/api", middleware.RateLimit(limits.GlobalMax, limits.Window, "Too many requests, please try again later."))

	aiLimit := middleware.RateLimit(limits.AIMax, limits.Window, "AI request limit reached, please try again later.")
	session := middleware.SessionAuth(sessions)
	githubToken := middleware.RequireGitHubToken()

	// Public
	api.Post("/auth/github", h.GitHubAuth)
	api.Post("/auth/signup", h.SignUp)
	api.Post("/auth/login", h.LogIn)
	api.Get("/templates", h.ListTemplates)
	api.Get("/templates/:id", h.GetTemplate)
	api.Get("/tokens/packages", h.GetPackages)

	// Account
	api.Get("/auth/me", session, h.GetMe)
	api.Delete("/auth/account", session, h.DeleteAccount)

	// GitHub
	api.Post("/repos", session, githubToken, h.GetRepositories)
	api.Post("/github/repo-data", session, githubToken, h.GetRepoData)

	// README generation and editing
	api.Post("/readme", aiLimit, session, githubToken, h.GenerateReadme)
	api.Post("/readme/chat", aiLimit, session, h.ChatReadme)
	api.Post("/readme/save", session, h.SaveReadme)
	api.Post("/ai/regenerate-section", aiLimit, session, h.RegenerateSection)

	// Tokens
	api.Get("/tokens/balance", session, h.GetBalance)
	api.Get("/tokens/transactions", session, h.GetTransactions)
	api.Post("/tokens/order", session, h.CreateOrder)
	api.Post("/tokens/verify", session, h.VerifyPayment)

	// Projects
	projects := api.Group("/projects", session)
	projects.Get("/", h.ListProjects)
	projects.Post("/", h.CreateProject)
	projects.Get("/:id", h.GetProject)
	projects.Put("/:id", h.UpdateProject)
	projects.Delete("/:id", h.DeleteProject)

	// Admin panel routes (requires session + admin check)
	admin := api.Group("/admin", session, middleware.AdminAuth(admins))
	admin.Get("/stats", ah.GetStats)
	admin.Post("/users/:user_id/tokens", ah.GrantTokens)
	admin.Post("/users/:user_id/admin", ah.AddAdmin)
	admin.Get("/logs", ah.GetLogs)
	admin.Get("/settings", ah.GetSettings)
	admin.Get("/settings/signup-grant", ah.GetSignupGrant)
	admin.Post("/settings/signup-grant", ah.SetSignupGrant)
}
