package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meetpup/meetpup/internal/domain/apperror"
	"github.com/meetpup/meetpup/internal/domain/dto"
)

func (s *Server) listGroups(c *fiber.Ctx) error {
	groups, err := s.opts.Groups.GetAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"groups": groups})
}

func (s *Server) listOrganizedGroups(c *fiber.Ctx) error {
	groups, err := s.opts.Groups.GetOrganized(c.Context(), principalFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"groups": groups})
}

func (s *Server) getGroup(c *fiber.Ctx) error {
	group, err := s.opts.Groups.Get(c.Context(), c.Params("groupId"))
	if err != nil {
		return err
	}
	return c.JSON(group)
}

func (s *Server) createGroup(c *fiber.Ctx) error {
	var in dto.GroupInput
	if err := c.BodyParser(&in); err != nil {
		return apperror.Validation("Invalid request body", nil)
	}

	group, err := s.opts.Groups.Create(c.Context(), principalFrom(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}

func (s *Server) updateGroup(c *fiber.Ctx) error {
	var in dto.GroupInput
	if err := c.BodyParser(&in); err != nil {
		return apperror.Validation("Invalid request body", nil)
	}

	group, err := s.opts.Groups.Update(c.Context(), principalFrom(c), c.Params("groupId"), in)
	if err != nil {
		return err
	}
	return c.JSON(group)
}

func (s *Server) deleteGroup(c *fiber.Ctx) error {
	if err := s.opts.Groups.Delete(c.Context(), principalFrom(c), c.Params("groupId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Successfully deleted"})
}
