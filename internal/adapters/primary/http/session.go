package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meetpup/meetpup/internal/domain/apperror"
	"github.com/meetpup/meetpup/internal/domain/dto"
)

func (s *Server) signUp(c *fiber.Ctx) error {
	var in dto.SignUpInput
	if err := c.BodyParser(&in); err != nil {
		return apperror.Validation("Invalid request body", nil)
	}

	user, err := s.opts.Users.SignUp(c.Context(), in)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user})
}

func (s *Server) logIn(c *fiber.Ctx) error {
	var in dto.LoginInput
	if err := c.BodyParser(&in); err != nil {
		return apperror.Validation("Invalid request body", nil)
	}

	user, token, err := s.opts.Sessions.LogIn(c.Context(), in)
	if err != nil {
		return err
	}

	s.setSessionCookie(c, token)
	return c.JSON(fiber.Map{"user": user})
}

func (s *Server) logOut(c *fiber.Ctx) error {
	token := c.Cookies(s.opts.CookieName)
	if err := s.opts.Sessions.LogOut(c.Context(), token); err != nil {
		return err
	}

	s.clearSessionCookie(c)
	return c.JSON(fiber.Map{"message": "Successfully logged out"})
}

func (s *Server) currentUser(c *fiber.Ctx) error {
	principal := principalFrom(c)
	if principal.Anonymous() {
		return c.JSON(fiber.Map{"user": nil})
	}

	user, err := s.opts.Sessions.Current(c.Context(), principal)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"user": user})
}
