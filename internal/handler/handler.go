package handler

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/Vibhav-y/GitTool/internal/service"
)

// Pinger is implemented by *repository.Repository.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	db         Pinger
	authSvc    *service.AuthService
	tokenSvc   *service.TokenService
	paymentSvc *service.PaymentService
	repoSvc    *service.RepoService
	readmeSvc  *service.ReadmeService
	editorSvc  *service.EditorService
	projectSvc *service.ProjectService
	log        *slog.Logger
}

func New(
	db Pinger,
	authSvc *service.AuthService,
	tokenSvc *service.TokenService,
	paymentSvc *service.PaymentService,
	repoSvc *service.RepoService,
	readmeSvc *service.ReadmeService,
	editorSvc *service.EditorService,
	projectSvc *service.ProjectService,
	log *slog.Logger,
) *Handler {
	return &Handler{
		db:         db,
		authSvc:    authSvc,
		tokenSvc:   tokenSvc,
		paymentSvc: paymentSvc,
		repoSvc:    repoSvc,
		readmeSvc:  readmeSvc,
		editorSvc:  editorSvc,
		projectSvc: projectSvc,
		log:        log,
	}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	if err := h.db.Ping(c.UserContext()); err != nil {
		h.log.Error("health check failed", "err", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
		})
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
