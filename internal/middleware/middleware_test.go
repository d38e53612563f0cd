package middleware_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"public-pulse/internal/domain"
	"public-pulse/internal/middleware"
	"public-pulse/internal/mocks"
	"public-pulse/internal/service/auth"
)

func newApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
}

func whoami(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return c.JSON(fiber.Map{"user": nil})
	}
	return c.JSON(fiber.Map{"user": user.ID})
}

func decode(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestAuthRequired(t *testing.T) {
	authService := new(mocks.AuthService)
	identity := &auth.Identity{Subject: "sub-1"}
	user := &domain.User{ID: uuid.New(), Role: domain.RoleCitizen}

	authService.On("VerifyToken", "good").Return(identity, nil)
	authService.On("VerifyToken", "stranger").Return(&auth.Identity{Subject: "sub-2"}, nil)
	authService.On("VerifyToken", "bad").Return(nil, auth.ErrInvalidToken)
	authService.On("ResolveUser", mock.Anything, identity).Return(user, nil)
	authService.On("ResolveUser", mock.Anything, &auth.Identity{Subject: "sub-2"}).Return(nil, auth.ErrNotRegistered)

	app := newApp()
	app.Get("/me", middleware.AuthRequired(authService), whoami)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"Missing header", "", fiber.StatusUnauthorized},
		{"Wrong scheme", "Basic abc", fiber.StatusUnauthorized},
		{"Invalid token", "Bearer bad", fiber.StatusUnauthorized},
		{"Not signed up", "Bearer stranger", fiber.StatusUnauthorized},
		{"Valid", "Bearer good", fiber.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			body := decode(t, resp.Body)
			if tc.status == fiber.StatusOK {
				assert.Equal(t, user.ID.String(), body["user"])
			} else {
				assert.Equal(t, "UNAUTHORIZED", body["code"])
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	authService := new(mocks.AuthService)
	authService.On("VerifyToken", "bad").Return(nil, auth.ErrInvalidToken)

	app := newApp()
	app.Get("/issues", middleware.OptionalAuth(authService), whoami)

	for _, header := range []string{"", "Bearer bad"} {
		req := httptest.NewRequest("GET", "/issues", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Nil(t, decode(t, resp.Body)["user"])
	}
}

func TestIdentityRequired(t *testing.T) {
	authService := new(mocks.AuthService)
	authService.On("VerifyToken", "good").Return(&auth.Identity{Subject: "sub-9"}, nil)

	app := newApp()
	app.Post("/signup", middleware.IdentityRequired(authService), func(c *fiber.Ctx) error {
		return c.SendString(middleware.GetIdentity(c).Subject)
	})

	req := httptest.NewRequest("POST", "/signup", nil)
	req.Header.Set("Authorization", "Bearer good")
	resp, err := app.Test(req)
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "sub-9", string(body))
	authService.AssertNotCalled(t, "ResolveUser", mock.Anything, mock.Anything)
}

func withUser(user *domain.User) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if user != nil {
			c.Locals(middleware.UserContextKey, user)
		}
		return c.Next()
	}
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name   string
		user   *domain.User
		status int
	}{
		{"Anonymous", nil, fiber.StatusUnauthorized},
		{"Citizen", &domain.User{Role: domain.RoleCitizen}, fiber.StatusForbidden},
		{"Government", &domain.User{Role: domain.RoleGovernment}, fiber.StatusOK},
		{"Admin always passes", &domain.User{Role: domain.RoleAdmin}, fiber.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newApp()
			app.Patch("/status", withUser(tc.user), middleware.RequireRole(domain.RoleGovernment), func(c *fiber.Ctx) error {
				return c.SendStatus(fiber.StatusOK)
			})

			resp, err := app.Test(httptest.NewRequest("PATCH", "/status", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestErrorHandler(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"Domain not found", domain.NotFound("Issue not found"), fiber.StatusNotFound, "NOT_FOUND", "Issue not found"},
		{"Domain invalid", domain.InvalidInput("Title is required"), fiber.StatusBadRequest, "BAD_REQUEST", "Title is required"},
		{"Domain forbidden", domain.Forbidden("nope"), fiber.StatusForbidden, "FORBIDDEN", "nope"},
		{"Domain conflict", domain.Conflict("exists"), fiber.StatusConflict, "CONFLICT", "exists"},
		{"Fiber error", fiber.NewError(fiber.StatusRequestEntityTooLarge, "too big"), fiber.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "too big"},
		{"Unknown", errors.New("pq: connection refused"), fiber.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newApp()
			app.Get("/", func(c *fiber.Ctx) error { return tc.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			body := decode(t, resp.Body)
			assert.Equal(t, tc.code, body["code"])
			assert.Equal(t, tc.message, body["message"])
			assert.NotEmpty(t, body["trace_id"])
		})
	}
}

func TestIssueRateLimit_PassesThroughWithoutRedis(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Role: domain.RoleCitizen}
	unreachable := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer unreachable.Close()

	for name, rdb := range map[string]*redis.Client{"nil client": nil, "unreachable": unreachable} {
		t.Run(name, func(t *testing.T) {
			app := newApp()
			app.Post("/issues", withUser(user), middleware.IssueRateLimit(rdb, 1, 24*time.Hour), func(c *fiber.Ctx) error {
				return c.SendStatus(fiber.StatusCreated)
			})

			for i := 0; i < 3; i++ {
				resp, err := app.Test(httptest.NewRequest("POST", "/issues", nil))
				require.NoError(t, err)
				assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
			}
		})
	}
}
