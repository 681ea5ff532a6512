package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const AdminIDKey = "admin_id"

type AdminChecker interface {
	IsAdmin(ctx context.Context, userID uuid.UUID, email string) (bool, error)
}

// AdminAuth middleware checks if the authenticated user is an admin
func AdminAuth(admins AdminChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == uuid.Nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		isAdmin, err := admins.IsAdmin(c.UserContext(), userID, GetUserEmail(c))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to check admin status",
			})
		}

		if !isAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "access denied",
			})
		}

		c.Locals(AdminIDKey, userID)

		return c.Next()
	}
}

// GetAdminID returns the admin user ID from context
func GetAdminID(c *fiber.Ctx) uuid.UUID {
	adminID, ok := c.Locals(AdminIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return adminID
}
