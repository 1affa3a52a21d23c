package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meetpup/meetpup/internal/domain/apperror"
	"github.com/meetpup/meetpup/internal/domain/dto"
)

func (s *Server) listEvents(c *fiber.Ctx) error {
	events, err := s.opts.Events.GetAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"events": events})
}

func (s *Server) listGroupEvents(c *fiber.Ctx) error {
	events, err := s.opts.Events.GetByGroup(c.Context(), c.Params("groupId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"events": events})
}

func (s *Server) getEvent(c *fiber.Ctx) error {
	event, err := s.opts.Events.Get(c.Context(), c.Params("eventId"))
	if err != nil {
		return err
	}
	return c.JSON(event)
}

func (s *Server) createEvent(c *fiber.Ctx) error {
	var in dto.EventInput
	if err := c.BodyParser(&in); err != nil {
		return apperror.Validation("Invalid request body", nil)
	}

	event, err := s.opts.Events.Create(c.Context(), principalFrom(c), c.Params("groupId"), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

func (s *Server) updateEvent(c *fiber.Ctx) error {
	var in dto.EventInput
	if err := c.BodyParser(&in); err != nil {
		return apperror.Validation("Invalid request body", nil)
	}

	event, err := s.opts.Events.Update(c.Context(), principalFrom(c), c.Params("eventId"), in)
	if err != nil {
		return err
	}
	return c.JSON(event)
}

func (s *Server) deleteEvent(c *fiber.Ctx) error {
	if err := s.opts.Events.Delete(c.Context(), principalFrom(c), c.Params("eventId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Successfully deleted"})
}
