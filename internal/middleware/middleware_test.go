package middleware

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vibhav-y/GitTool/internal/auth"
)

func TestSessionAuth(t *testing.T) {
	sessions := auth.NewSessions("secret", time.Hour)
	id := uuid.New()
	token, _, err := sessions.Issue(id, "a@b.io")
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/me", SessionAuth(sessions), func(c *fiber.Ctx) error {
		return c.SendString(GetUserID(c).String() + " " + GetUserEmail(c))
	})

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, id.String()+" a@b.io", string(body))

	for _, header := range []string{"", "Bearer ", "Token " + token, "Bearer nope"} {
		req := httptest.NewRequest("GET", "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, header)
	}
}

func TestRequireGitHubToken(t *testing.T) {
	app := fiber.New()
	app.Post("/repos", RequireGitHubToken(), func(c *fiber.Ctx) error {
		return c.SendString(GetGitHubToken(c))
	})

	req := httptest.NewRequest("POST", "/repos", strings.NewReader(`{"token":"gho_1"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "gho_1", string(body))

	req = httptest.NewRequest("POST", "/repos", nil)
	req.Header.Set("X-GitHub-Token", "gho_2")
	resp, err = app.Test(req)
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, "gho_2", string(body))

	req = httptest.NewRequest("POST", "/repos", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	body, _ = io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "No GitHub token provided")
}

type stubAdmins struct {
	ok  bool
	err error
}

func (s stubAdmins) IsAdmin(context.Context, uuid.UUID, string) (bool, error) {
	return s.ok, s.err
}

func TestAdminAuth(t *testing.T) {
	id := uuid.New()
	withUser := func(c *fiber.Ctx) error {
		c.Locals(UserIDKey, id)
		return c.Next()
	}

	tests := []struct {
		name   string
		admins stubAdmins
		want   int
	}{
		{"admin", stubAdmins{ok: true}, fiber.StatusOK},
		{"not admin", stubAdmins{}, fiber.StatusForbidden},
		{"lookup fails", stubAdmins{err: errors.New("db down")}, fiber.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/admin", withUser, AdminAuth(tc.admins), func(c *fiber.Ctx) error {
				assert.Equal(t, id, GetAdminID(c))
				return c.SendStatus(fiber.StatusOK)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}

	app := fiber.New()
	app.Get("/admin", AdminAuth(stubAdmins{ok: true}), func(c *fiber.Ctx) error { return nil })
	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRateLimit(t *testing.T) {
	app := fiber.New()
	app.Use(RateLimit(2, time.Minute, "Too many requests"))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}
