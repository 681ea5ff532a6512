package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Vibhav-y/GitTool/internal/auth"
)

const (
	UserIDKey      = "user_id"
	UserEmailKey   = "user_email"
	GitHubTokenKey = "github_token"
)

// SessionAuth requires a valid "Authorization: Bearer <jwt>" header.
func SessionAuth(sessions *auth.Sessions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing session token",
			})
		}

		claims, err := sessions.Validate(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid session token",
			})
		}

		userID, _ := claims.UserID()
		c.Locals(UserIDKey, userID)
		c.Locals(UserEmailKey, claims.Email)

		return c.Next()
	}
}

// RequireGitHubToken requires a GitHub token in the JSON body ("token") or
// the X-GitHub-Token header.
func RequireGitHubToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get("X-GitHub-Token")
		if token == "" {
			var body struct {
				Token string `json:"token"`
			}
			if len(c.Body()) > 0 {
				_ = c.BodyParser(&body)
			}
			token = body.Token
		}

		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "No GitHub token provided",
			})
		}

		c.Locals(GitHubTokenKey, token)
		return c.Next()
	}
}

func GetUserID(c *fiber.Ctx) uuid.UUID {
	userID, ok := c.Locals(UserIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

func GetUserEmail(c *fiber.Ctx) string {
	email, _ := c.Locals(UserEmailKey).(string)
	return email
}

func GetGitHubToken(c *fiber.Ctx) string {
	token, _ := c.Locals(GitHubTokenKey).(string)
	return token
}
