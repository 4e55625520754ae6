package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/nikhilr05/civicreport/internal/httperr"
	"github.com/nikhilr05/civicreport/internal/models"
	"github.com/nikhilr05/civicreport/internal/services"
)

// AdminHandler exposes the admin-side user operations.
type AdminHandler struct {
	users  *services.UserService
	logger *zap.Logger
}

func NewAdminHandler(users *services.UserService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{users: users, logger: logger}
}

// CountUsers returns the number of registered users.
func (h *AdminHandler) CountUsers(c *fiber.Ctx) error {
	count, err := h.users.Count(c.UserContext())
	if err != nil {
		return httperr.Respond(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

// SearchUsers finds users by display name.
func (h *AdminHandler) SearchUsers(c *fiber.Ctx) error {
	users, err := h.users.Search(c.UserContext(), c.Query("name"))
	if err != nil {
		return httperr.Respond(c, h.logger, err)
	}
	if users == nil {
		users = []models.User{}
	}
	return c.JSON(users)
}

// DeleteUser removes a user and cascades to their issues.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	email := c.Params("email")
	deletedIssues, err := h.users.DeleteCascade(c.UserContext(), email)
	if err != nil {
		return httperr.Respond(c, h.logger, err)
	}

	return c.JSON(fiber.Map{
		"message":        "user deleted successfully",
		"deleted_issues": deletedIssues,
	})
}
