package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meetpup/meetpup/internal/domain/apperror"
	"github.com/meetpup/meetpup/internal/domain/dto"
)

func (s *Server) listAttendees(c *fiber.Ctx) error {
	attendees, err := s.opts.Attendance.Roster(c.Context(), principalFrom(c), c.Params("eventId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"attendees": attendees})
}

func (s *Server) requestAttendance(c *fiber.Ctx) error {
	attendance, err := s.opts.Attendance.Request(c.Context(), principalFrom(c), c.Params("eventId"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(attendance)
}

func (s *Server) changeAttendanceStatus(c *fiber.Ctx) error {
	var in dto.AttendanceStatusInput
	if err := c.BodyParser(&in); err != nil {
		return apperror.Validation("Invalid request body", nil)
	}

	attendance, err := s.opts.Attendance.ChangeStatus(c.Context(), principalFrom(c), c.Params("eventId"), in)
	if err != nil {
		return err
	}
	return c.JSON(attendance)
}

func (s *Server) deleteAttendance(c *fiber.Ctx) error {
	err := s.opts.Attendance.Delete(c.Context(), principalFrom(c), c.Params("eventId"), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Successfully deleted attendance from event"})
}
