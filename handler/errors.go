package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"notes-hub-api/usecase"
)

// statusForError maps the usecase error taxonomy onto HTTP statuses.
func statusForError(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, usecase.ErrNotChatMember),
		errors.Is(err, usecase.ErrNotMessageSender):
		return fiber.StatusForbidden
	case errors.Is(err, usecase.ErrChatNotFound),
		errors.Is(err, usecase.ErrMessageNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.As(err, &validationErrs):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func errorJSON(c *fiber.Ctx, err error) error {
	status := statusForError(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		message = "internal server error"
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}
