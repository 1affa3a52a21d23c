package http

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/meetpup/meetpup/internal/domain/apperror"
)

// imageUpload reads the multipart "image" part plus the optional "preview"
// form value.
func imageUpload(c *fiber.Ctx) (*multipart.FileHeader, bool, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return nil, false, apperror.Validation("Validation error", map[string]string{
			"image": "An image file is required",
		})
	}
	preview := c.FormValue("preview") == "true"
	return file, preview, nil
}

func (s *Server) addGroupImage(c *fiber.Ctx) error {
	file, preview, err := imageUpload(c)
	if err != nil {
		return err
	}

	body, err := file.Open()
	if err != nil {
		return apperror.Internal("failed to open uploaded file", err)
	}
	defer body.Close()

	image, err := s.opts.Images.AddGroupImage(
		c.Context(), principalFrom(c), c.Params("groupId"),
		file.Filename, file.Header.Get("Content-Type"), body, preview,
	)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(image)
}

func (s *Server) addEventImage(c *fiber.Ctx) error {
	file, preview, err := imageUpload(c)
	if err != nil {
		return err
	}

	body, err := file.Open()
	if err != nil {
		return apperror.Internal("failed to open uploaded file", err)
	}
	defer body.Close()

	image, err := s.opts.Images.AddEventImage(
		c.Context(), principalFrom(c), c.Params("eventId"),
		file.Filename, file.Header.Get("Content-Type"), body, preview,
	)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(image)
}

func (s *Server) deleteGroupImage(c *fiber.Ctx) error {
	if err := s.opts.Images.DeleteGroupImage(c.Context(), principalFrom(c), c.Params("imageId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Successfully deleted"})
}

func (s *Server) deleteEventImage(c *fiber.Ctx) error {
	if err := s.opts.Images.DeleteEventImage(c.Context(), principalFrom(c), c.Params("imageId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Successfully deleted"})
}
