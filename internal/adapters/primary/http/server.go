// Package http is the Fiber adapter: it binds the REST surface to the
// domain services and translates apperror values into status codes.
package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/meetpup/meetpup/internal/domain/apperror"
	"github.com/meetpup/meetpup/internal/ports/primary"
	"github.com/meetpup/meetpup/pkg/logger/types"
)

type Options struct {
	CookieName   string
	CookieSecure bool
	Logger       *types.Logger

	Users       primary.UserService
	Sessions    primary.SessionService
	Groups      primary.GroupService
	Events      primary.EventService
	Venues      primary.VenueService
	Memberships primary.MembershipService
	Attendance  primary.AttendanceService
	Images      primary.ImageService
}

type Server struct {
	app  *fiber.App
	opts Options
}

func NewServer(opts Options) *Server {
	s := &Server{opts: opts}

	s.app = fiber.New(fiber.Config{
		AppName:      "meetpup",
		ErrorHandler: s.handleError,
	})

	s.app.Use(recover.New())
	s.app.Use(s.principalMiddleware())

	s.register()

	return s
}

func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// handleError renders every error as {"message": ..., "errors": {...}}.
// Internal detail is logged, never returned.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	if appErr := apperror.As(err); appErr != nil {
		if appErr.Kind == apperror.KindInternal {
			s.opts.Logger.Errorf("%s %s: %v", c.Method(), c.Path(), err)
			return c.Status(appErr.Status()).JSON(fiber.Map{"message": "Something went wrong"})
		}
		body := fiber.Map{"message": appErr.Message}
		if len(appErr.Errors) > 0 {
			body["errors"] = appErr.Errors
		}
		return c.Status(appErr.Status()).JSON(body)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
	}

	s.opts.Logger.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Something went wrong"})
}

// credentialLimiter throttles signup and login by client IP.
func credentialLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        10,
		Expiration: 15 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Too many attempts. Please try again later.",
			})
		},
	})
}
