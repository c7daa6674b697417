package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	// UserIDHeader and UserRoleHeader are set by the authenticating gateway in front of the API.
	UserIDHeader   = "X-User-ID"
	UserRoleHeader = "X-User-Role"

	// ViewerLocalKey stores the caller's Viewer in Fiber's context locals.
	ViewerLocalKey = "viewer"

	RoleReviewer = "admin"
)

// Viewer is the authenticated caller as reported by the gateway.
type Viewer struct {
	ID   string
	Role string
}

// IsReviewer reports whether the caller may review and administer documents.
func (v Viewer) IsReviewer() bool {
	return v.Role == RoleReviewer
}

// ViewerFrom returns the Viewer stored by Identity, or the zero Viewer.
func ViewerFrom(c *fiber.Ctx) Viewer {
	v, _ := c.Locals(ViewerLocalKey).(Viewer)
	return v
}

// Identity reads the gateway identity headers into context locals. It never rejects a request.
func Identity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(ViewerLocalKey, Viewer{
			ID:   strings.TrimSpace(c.Get(UserIDHeader)),
			Role: strings.ToLower(strings.TrimSpace(c.Get(UserRoleHeader))),
		})
		return c.Next()
	}
}

// RequireUser rejects requests without a caller identity.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ViewerFrom(c).ID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		return c.Next()
	}
}

// RequireRole rejects callers without the given role.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v := ViewerFrom(c)
		if v.ID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		if v.Role != role {
			return fiber.NewError(fiber.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}
