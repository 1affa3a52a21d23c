package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meetpup/meetpup/internal/domain/apperror"
	"github.com/meetpup/meetpup/internal/domain/dto"
)

func (s *Server) listVenues(c *fiber.Ctx) error {
	venues, err := s.opts.Venues.GetByGroup(c.Context(), principalFrom(c), c.Params("groupId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"venues": venues})
}

func (s *Server) createVenue(c *fiber.Ctx) error {
	var in dto.VenueInput
	if err := c.BodyParser(&in); err != nil {
		return apperror.Validation("Invalid request body", nil)
	}

	venue, err := s.opts.Venues.Create(c.Context(), principalFrom(c), c.Params("groupId"), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(venue)
}

func (s *Server) updateVenue(c *fiber.Ctx) error {
	var in dto.VenueInput
	if err := c.BodyParser(&in); err != nil {
		return apperror.Validation("Invalid request body", nil)
	}

	venue, err := s.opts.Venues.Update(c.Context(), principalFrom(c), c.Params("venueId"), in)
	if err != nil {
		return err
	}
	return c.JSON(venue)
}
