package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"contentdash/internal/authcookie"
)

// LocalsSession is the c.Locals key holding the decoded auth cookie.
const LocalsSession = "session"

// AuthGate redirects requests based on the presence of the auth cookie.
type AuthGate struct {
	protected []string
}

// NewAuthGate creates a gate guarding the given path prefixes.
func NewAuthGate(protected []string) *AuthGate {
	return &AuthGate{protected: protected}
}

// Handle sends visitors without the cookie away from protected paths and
// signed-in visitors away from the landing page. Only presence is checked.
func (g *AuthGate) Handle(c fiber.Ctx) error {
	path := c.Path()
	present := authcookie.Present(c)

	if !present && g.isProtected(path) {
		return c.Redirect().Status(fiber.StatusFound).To("/")
	}
	if present && path == "/" {
		return c.Redirect().Status(fiber.StatusFound).To("/dashboard")
	}

	if payload, ok := authcookie.FromRequest(c); ok {
		c.Locals(LocalsSession, payload)
	}
	return c.Next()
}

// isProtected matches prefixes case-insensitively.
func (g *AuthGate) isProtected(path string) bool {
	path = strings.ToLower(path)
	for _, prefix := range g.protected {
		if strings.HasPrefix(path, strings.ToLower(prefix)) {
			return true
		}
	}
	return false
}

// SessionFrom returns the signed-in payload stored by the gate.
func SessionFrom(c fiber.Ctx) (authcookie.Payload, bool) {
	payload, ok := c.Locals(LocalsSession).(authcookie.Payload)
	return payload, ok
}

// SignedIn reports whether the request carries the auth cookie.
func SignedIn(c fiber.Ctx) bool {
	return authcookie.Present(c)
}
