package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	GitHub    GitHubConfig    `yaml:"github"`
	LLM       LLMConfig       `yaml:"llm"`
	Payment   PaymentConfig   `yaml:"payment"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	Tokens    TokensConfig    `yaml:"tokens"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Worker    WorkerConfig    `yaml:"worker"`
}

type ServerConfig struct {
	Port         string `yaml:"port"`
	Environment  string `yaml:"environment"`
	AllowOrigins string `yaml:"allow_origins"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"-"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	JWTSecret   string        `yaml:"-"`
	SessionTTL  time.Duration `yaml:"session_ttl"`
	AdminEmails []string      `yaml:"admin_emails"`
}

type GitHubConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"-"`
	APIBaseURL   string `yaml:"api_base_url"`
}

type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"-"`
	Model   string `yaml:"model"`
}

type PaymentConfig struct {
	KeyID      string `yaml:"key_id"`
	KeySecret  string `yaml:"-"`
	APIBaseURL string `yaml:"api_base_url"`
	Currency   string `yaml:"currency"`
}

type TelegramConfig struct {
	BotToken string `yaml:"-"`
	ChatID   int64  `yaml:"chat_id"`
}

type TokensConfig struct {
	DefaultGrant    int64 `yaml:"default_grant"`
	GenerateCost    int64 `yaml:"generate_cost"`
	ChatCost        int64 `yaml:"chat_cost"`
	RefundOnFailure bool  `yaml:"refund_on_failure"`
}

type RateLimitConfig struct {
	Window    time.Duration `yaml:"window"`
	GlobalMax int           `yaml:"global_max"`
	AIMax     int           `yaml:"ai_max"`
}

type WorkerConfig struct {
	ReconcileInterval time.Duration `yaml:"reconcile_interval"`
	ReconcileGrace    time.Duration `yaml:"reconcile_grace"`
	ReconcileMaxAge   time.Duration `yaml:"reconcile_max_age"`
}

func (d DatabaseConfig) DSN() string {
	return "postgres://" + d.User + ":" + d.Password + "@" + d.Host + ":" + d.Port + "/" + d.Name + "?sslmode=" + d.SSLMode
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and the environment, in that order of precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "3000",
			Environment:  "development",
			AllowOrigins: "*",
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "gittool",
			Password: "gittool",
			Name:     "gittool",
			SSLMode:  "disable",
		},
		Auth: AuthConfig{
			JWTSecret:  "change-me-in-production",
			SessionTTL: 7 * 24 * time.Hour,
		},
		GitHub: GitHubConfig{
			APIBaseURL: "https://api.github.com/",
		},
		LLM: LLMConfig{
			BaseURL: "https://api.openai.com/v1",
			Model:   "gpt-5-nano-2025-08-07",
		},
		Payment: PaymentConfig{
			APIBaseURL: "https://api.razorpay.com/v1",
			Currency:   "INR",
		},
		Tokens: TokensConfig{
			DefaultGrant: 40,
			GenerateCost: 2,
			ChatCost:     1,
		},
		RateLimit: RateLimitConfig{
			Window:    15 * time.Minute,
			GlobalMax: 100,
			AIMax:     10,
		},
		Worker: WorkerConfig{
			ReconcileInterval: time.Minute,
			ReconcileGrace:    2 * time.Minute,
			ReconcileMaxAge:   24 * time.Hour,
		},
	}
}

// LoadFile overlays non-secret settings from a YAML file.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.Environment = getEnv("ENVIRONMENT", c.Server.Environment)
	c.Server.AllowOrigins = getEnv("ALLOW_ORIGINS", c.Server.AllowOrigins)

	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnv("DB_PORT", c.Database.Port)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.Name = getEnv("DB_NAME", c.Database.Name)
	c.Database.SSLMode = getEnv("DB_SSLMODE", c.Database.SSLMode)

	c.Auth.JWTSecret = getEnv("JWT_SECRET", c.Auth.JWTSecret)
	c.Auth.SessionTTL = getEnvDuration("SESSION_TTL", c.Auth.SessionTTL)
	if emails := os.Getenv("ADMIN_EMAILS"); emails != "" {
		c.Auth.AdminEmails = splitList(emails)
	}

	c.GitHub.ClientID = getEnv("GITHUB_CLIENT_ID", c.GitHub.ClientID)
	c.GitHub.ClientSecret = getEnv("GITHUB_CLIENT_SECRET", c.GitHub.ClientSecret)
	c.GitHub.APIBaseURL = getEnv("GITHUB_API_URL", c.GitHub.APIBaseURL)

	c.LLM.BaseURL = getEnv("LLM_BASE_URL", c.LLM.BaseURL)
	c.LLM.APIKey = getEnv("OPENAI_API_KEY", c.LLM.APIKey)
	c.LLM.Model = getEnv("LLM_MODEL", c.LLM.Model)

	c.Payment.KeyID = getEnv("RAZORPAY_KEY_ID", c.Payment.KeyID)
	c.Payment.KeySecret = getEnv("RAZORPAY_KEY_SECRET", c.Payment.KeySecret)
	c.Payment.APIBaseURL = getEnv("RAZORPAY_API_URL", c.Payment.APIBaseURL)
	c.Payment.Currency = getEnv("PAYMENT_CURRENCY", c.Payment.Currency)

	c.Telegram.BotToken = getEnv("TELEGRAM_BOT_TOKEN", c.Telegram.BotToken)
	c.Telegram.ChatID = getEnvInt64("TELEGRAM_CHAT_ID", c.Telegram.ChatID)

	c.Tokens.DefaultGrant = getEnvInt64("TOKENS_DEFAULT_GRANT", c.Tokens.DefaultGrant)
	c.Tokens.GenerateCost = getEnvInt64("TOKENS_GENERATE_COST", c.Tokens.GenerateCost)
	c.Tokens.ChatCost = getEnvInt64("TOKENS_CHAT_COST", c.Tokens.ChatCost)
	c.Tokens.RefundOnFailure = getEnvBool("TOKENS_REFUND_ON_FAILURE", c.Tokens.RefundOnFailure)

	c.RateLimit.Window = getEnvDuration("RATE_LIMIT_WINDOW", c.RateLimit.Window)
	c.RateLimit.GlobalMax = int(getEnvInt64("RATE_LIMIT_GLOBAL_MAX", int64(c.RateLimit.GlobalMax)))
	c.RateLimit.AIMax = int(getEnvInt64("RATE_LIMIT_AI_MAX", int64(c.RateLimit.AIMax)))

	c.Worker.ReconcileInterval = getEnvDuration("RECONCILE_INTERVAL", c.Worker.ReconcileInterval)
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.IsProduction() && c.Auth.JWTSecret == "change-me-in-production" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if c.Tokens.DefaultGrant < 0 {
		return fmt.Errorf("tokens.default_grant must not be negative")
	}
	if c.Tokens.GenerateCost <= 0 || c.Tokens.ChatCost <= 0 {
		return fmt.Errorf("token costs must be positive")
	}
	if c.RateLimit.GlobalMax <= 0 || c.RateLimit.AIMax <= 0 {
		return fmt.Errorf("rate limits must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	v, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}
