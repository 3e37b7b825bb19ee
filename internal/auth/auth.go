// Package auth provides HTTP basic authentication with a fixed set of
// configured principals and per-route role gating.
package auth

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
)

// Role names an access level a principal holds.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is a configured principal.
type User struct {
	Password string
	Role     Role
}

// Guard authenticates requests and gates routes by role.
type Guard struct {
	users map[string]User
}

// NewGuard creates a Guard over the configured principals.
func NewGuard(users map[string]User) *Guard {
	return &Guard{users: users}
}

// Middleware returns the basic-auth handler. On success the authenticated
// username is available via basicauth's "username" local.
func (g *Guard) Middleware() fiber.Handler {
	return basicauth.New(basicauth.Config{
		Authorizer: func(username, password string) bool {
			u, ok := g.users[username]
			if !ok {
				return false
			}
			return subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) == 1
		},
	})
}

// Require allows the request through only when the authenticated user holds
// one of the given roles.
func (g *Guard) Require(roles ...Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, _ := c.Locals("username").(string)
		u, ok := g.users[username]
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		for _, r := range roles {
			if u.Role == r {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "insufficient role")
	}
}
