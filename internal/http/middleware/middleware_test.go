package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	app.Get("/test", func(c *fiber.Ctx) error {
		rid := c.Locals(RequestIDLocalKey)
		return c.SendString(rid.(string))
	})

	t.Run("should generate new request id if not present", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		ridHeader := resp.Header.Get(RequestIDHeader)
		assert.NotEmpty(t, ridHeader)

		// Check if it's readable in handler (from response body)
		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, ridHeader, buf.String())
	})

	t.Run("should preserve existing request id", func(t *testing.T) {
		existingID := "test-id-123"
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, existingID)

		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, existingID, resp.Header.Get(RequestIDHeader))

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, existingID, buf.String())
	})

	t.Run("should replace unusable request id", func(t *testing.T) {
		for _, bad := range []string{"has space", strings.Repeat("x", 129)} {
			req := httptest.NewRequest("GET", "/test", nil)
			req.Header.Set(RequestIDHeader, bad)

			resp, _ := app.Test(req)

			got := resp.Header.Get(RequestIDHeader)
			assert.NotEqual(t, bad, got)
			assert.Len(t, got, 36)
		}
	})
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	loc := time.UTC

	// Logger usually depends on RequestID for request_id field
	app.Use(RequestID())
	app.Use(LoggerWithWriter(&buf, loc))

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	// Verify log output
	var logData map[string]any
	err := json.Unmarshal(buf.Bytes(), &logData)
	assert.NoError(t, err)

	assert.NotEmpty(t, logData["request_id"])
	assert.Equal(t, "GET", logData["method"])
	assert.Equal(t, "/test", logData["path"])
	assert.Equal(t, float64(fiber.StatusAccepted), logData["status"])
	assert.NotNil(t, logData["latency"])
	assert.NotEmpty(t, logData["ts"])
}

func TestLogger_RecordsInternalError(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()

	app.Use(RequestID())
	app.Use(LoggerWithWriter(&buf, time.UTC))

	app.Get("/fail", func(c *fiber.Ctx) error {
		c.Locals(ErrorLocalKey, "put temp/a.pdf: connection reset")
		return c.SendStatus(fiber.StatusInternalServerError)
	})

	resp, _ := app.Test(httptest.NewRequest("GET", "/fail", nil))
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var logData map[string]any
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &logData))
	assert.Equal(t, "error", logData["level"])
	assert.Equal(t, "put temp/a.pdf: connection reset", logData["error"])
}

func TestIdentity(t *testing.T) {
	app := fiber.New()
	app.Use(Identity())

	app.Get("/whoami", func(c *fiber.Ctx) error {
		v := ViewerFrom(c)
		return c.JSON(fiber.Map{"id": v.ID, "role": v.Role, "reviewer": v.IsReviewer()})
	})
	app.Get("/user", RequireUser(), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/admin", RequireRole(RoleReviewer), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	t.Run("reads gateway headers", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set(UserIDHeader, " user-1 ")
		req.Header.Set(UserRoleHeader, "Admin")
		resp, _ := app.Test(req)

		var body map[string]any
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "user-1", body["id"])
		assert.Equal(t, "admin", body["role"])
		assert.Equal(t, true, body["reviewer"])
	})

	tests := []struct {
		name   string
		path   string
		userID string
		role   string
		want   int
	}{
		{name: "anonymous user route", path: "/user", want: fiber.StatusUnauthorized},
		{name: "student user route", path: "/user", userID: "u1", role: "student", want: fiber.StatusOK},
		{name: "anonymous admin route", path: "/admin", want: fiber.StatusUnauthorized},
		{name: "student admin route", path: "/admin", userID: "u1", role: "student", want: fiber.StatusForbidden},
		{name: "admin admin route", path: "/admin", userID: "a1", role: "admin", want: fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.userID != "" {
				req.Header.Set(UserIDHeader, tt.userID)
				req.Header.Set(UserRoleHeader, tt.role)
			}
			resp, _ := app.Test(req)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
