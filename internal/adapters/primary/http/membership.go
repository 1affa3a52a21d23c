package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meetpup/meetpup/internal/domain/apperror"
	"github.com/meetpup/meetpup/internal/domain/dto"
)

func (s *Server) listMembers(c *fiber.Ctx) error {
	members, err := s.opts.Memberships.Roster(c.Context(), principalFrom(c), c.Params("groupId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"members": members})
}

func (s *Server) requestMembership(c *fiber.Ctx) error {
	membership, err := s.opts.Memberships.Request(c.Context(), principalFrom(c), c.Params("groupId"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(membership)
}

func (s *Server) changeMembershipStatus(c *fiber.Ctx) error {
	var in dto.MembershipStatusInput
	if err := c.BodyParser(&in); err != nil {
		return apperror.Validation("Invalid request body", nil)
	}

	membership, err := s.opts.Memberships.ChangeStatus(c.Context(), principalFrom(c), c.Params("groupId"), in)
	if err != nil {
		return err
	}
	return c.JSON(membership)
}

func (s *Server) deleteMembership(c *fiber.Ctx) error {
	err := s.opts.Memberships.Delete(c.Context(), principalFrom(c), c.Params("groupId"), c.Params("memberId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Successfully deleted membership from group"})
}
