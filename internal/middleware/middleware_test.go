package middleware_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salon-booking-api/internal/auth"
	"salon-booking-api/internal/middleware"
	"salon-booking-api/internal/model"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func get(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func guardedApp(roles ...model.Role) *fiber.App {
	app := fiber.New()
	app.Get("/", middleware.Protect(testSecret), middleware.RequireRole(roles...),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	return app
}

func TestProtectMissingToken(t *testing.T) {
	resp := get(t, guardedApp(), "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectBadToken(t *testing.T) {
	resp := get(t, guardedApp(), "garbage")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectMalformedHeader(t *testing.T) {
	app := guardedApp()
	req, err := http.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole(t *testing.T) {
	u := &model.User{ID: 1, Email: "a@salon.test", Role: model.RoleEmployee}
	tok, err := auth.MakeToken(u, testSecret)
	require.NoError(t, err)

	// role outside the allowed set
	resp := get(t, guardedApp(model.RoleAdmin), tok)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// role inside the allowed set
	resp = get(t, guardedApp(model.RoleAdmin, model.RoleEmployee), tok)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// empty set admits any authenticated identity
	resp = get(t, guardedApp(), tok)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRateLimit(t *testing.T) {
	rl := middleware.NewRateLimiter(1, 2)
	app := fiber.New()
	app.Get("/", middleware.RateLimit(rl),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	// burst of 2, then throttled
	for i := 0; i < 2; i++ {
		resp := get(t, app, "")
		require.Equal(t, http.StatusOK, resp.StatusCode, "request %d", i)
	}
	resp := get(t, app, "")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}
