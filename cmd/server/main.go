package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Vibhav-y/GitTool/internal/auth"
	"github.com/Vibhav-y/GitTool/internal/config"
	"github.com/Vibhav-y/GitTool/internal/github"
	"github.com/Vibhav-y/GitTool/internal/handler"
	"github.com/Vibhav-y/GitTool/internal/llm"
	"github.com/Vibhav-y/GitTool/internal/razorpay"
	"github.com/Vibhav-y/GitTool/internal/repository"
	"github.com/Vibhav-y/GitTool/internal/service"
	"github.com/Vibhav-y/GitTool/internal/telegram"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	log := newLogger(cfg)

	// Connect to database
	repo, err := repository.New(cfg.Database.DSN())
	if err != nil {
		log.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer repo.Close()

	// Upstream clients
	githubClient, err := github.NewClient(cfg.GitHub.APIBaseURL, log)
	if err != nil {
		log.Error("invalid GitHub API URL", "err", err)
		os.Exit(1)
	}
	oauth := github.NewOAuth(cfg.GitHub.ClientID, cfg.GitHub.ClientSecret)
	llmClient := llm.NewClient(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model)
	gateway := razorpay.NewClient(cfg.Payment.APIBaseURL, cfg.Payment.KeyID, cfg.Payment.KeySecret)
	sessions := auth.NewSessions(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)

	// Create services
	tokenSvc := service.NewTokenService(repo, repo, cfg.Tokens, log)
	paymentSvc := service.NewPaymentService(repo, gateway, cfg.Payment.Currency, log)
	authSvc := service.NewAuthService(repo, tokenSvc, sessions, oauth, log)
	repoSvc := service.NewRepoService(githubClient)
	readmeSvc := service.NewReadmeService(tokenSvc, githubClient, llmClient, repo, cfg.Tokens, log)
	editorSvc := service.NewEditorService(tokenSvc, githubClient, llmClient, cfg.Tokens, log)
	projectSvc := service.NewProjectService(repo)
	adminSvc := service.NewAdminService(repo, repo, repo, tokenSvc, cfg.Auth.AdminEmails)

	reconcileWorker := service.NewReconcileWorker(repo, gateway, paymentSvc, cfg.Worker, log)

	// Create Telegram ops bot
	var bot *telegram.Bot
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != 0 {
		bot, err = telegram.NewBot(cfg.Telegram, log)
		if err != nil {
			log.Warn("failed to create Telegram bot", "err", err)
		} else {
			bot.SetStatsProvider(adminSvc)
			paymentSvc.SetNotifier(bot)
			log.Info("telegram bot initialized")
		}
	}

	// Create handlers
	h := handler.New(repo, authSvc, tokenSvc, paymentSvc, repoSvc, readmeSvc, editorSvc, projectSvc, log)
	adminHandler := handler.NewAdminHandler(adminSvc)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handler.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-GitHub-Token",
	}))

	handler.Register(app, h, adminHandler, sessions, adminSvc, cfg.RateLimit)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if bot != nil {
		go bot.StartPolling(ctx)
	}

	go reconcileWorker.Start(ctx)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("shutting down server")
		cancel()
		_ = app.Shutdown()
	}()

	log.Info("server starting", "port", cfg.Server.Port, "environment", cfg.Server.Environment)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Error("failed to start server", "err", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug") {
		opts.Level = slog.LevelDebug
	}

	var h slog.Handler
	if cfg.IsProduction() {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h)
}
