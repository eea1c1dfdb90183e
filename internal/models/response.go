package models

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Envelope is the uniform response shape returned by every endpoint,
// success or failure.
type Envelope struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data,omitempty"`
}

// Respond writes a success envelope with the given status.
func Respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Envelope{
		Message:    message,
		StatusCode: status,
		Data:       data,
	})
}

// RespondWithError writes an error envelope. Domain errors keep their
// message; anything else is flattened to a generic internal-error message so
// storage details never reach the client.
func RespondWithError(c *fiber.Ctx, err error) error {
	status := StatusFor(err)

	message := "Internal server error"
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != "INTERNAL_ERROR" {
		message = appErr.Message
	}

	return c.Status(status).JSON(Envelope{
		Message:    message,
		StatusCode: status,
	})
}
