package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/meetpup/meetpup/internal/domain/roles"
)

const principalKey = "principal"

// principalMiddleware resolves the session cookie into a principal on every
// request. A stale or revoked token degrades to anonymous and the cookie is
// cleared; it never rejects the request itself.
func (s *Server) principalMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(s.opts.CookieName)

		principal, clearCredential := s.opts.Sessions.Resolve(c.Context(), token)
		if clearCredential {
			s.clearSessionCookie(c)
		}

		c.Locals(principalKey, principal)
		return c.Next()
	}
}

func principalFrom(c *fiber.Ctx) roles.Principal {
	if p, ok := c.Locals(principalKey).(roles.Principal); ok {
		return p
	}
	return roles.Principal{}
}

// setSessionCookie leaves Expires unset so the cookie lives with the browser
// session; the token inside carries its own expiry.
func (s *Server) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     s.opts.CookieName,
		Value:    token,
		HTTPOnly: true,
		Secure:   s.opts.CookieSecure,
		SameSite: "Lax",
		Path:     "/",
	})
}

func (s *Server) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     s.opts.CookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   s.opts.CookieSecure,
		SameSite: "Lax",
		Path:     "/",
	})
}
