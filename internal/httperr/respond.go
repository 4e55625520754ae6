package httperr

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Respond translates a fault to its HTTP response. Server faults are
// logged with their cause; the cause never reaches the client.
func Respond(c *fiber.Ctx, logger *zap.Logger, err error) error {
	appErr := From(err)
	if appErr.HTTPStatus >= 500 && logger != nil {
		logger.Error("request failed",
			zap.String("path", c.Path()),
			zap.String("code", appErr.Code),
			zap.Error(appErr),
		)
	}
	return c.Status(appErr.HTTPStatus).JSON(fiber.Map{"error": appErr.Message})
}
