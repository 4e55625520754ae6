package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/nikhilr05/civicreport/internal/httperr"
	"github.com/nikhilr05/civicreport/internal/services"
)

type AuthHandler struct {
	auth   *services.AuthService
	logger *zap.Logger
}

func NewAuthHandler(auth *services.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// Signup registers a new user account.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var request struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&request); err != nil {
		return httperr.Respond(c, h.logger, httperr.NewValidation("invalid request body"))
	}

	user, err := h.auth.SignupUser(c.UserContext(), request.Email, request.Name, request.Password)
	if err != nil {
		return httperr.Respond(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "user registered successfully",
		"user":    user,
	})
}

// Login authenticates a user.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&request); err != nil {
		return httperr.Respond(c, h.logger, httperr.NewValidation("invalid request body"))
	}

	user, err := h.auth.LoginUser(c.UserContext(), request.Email, request.Password)
	if err != nil {
		return httperr.Respond(c, h.logger, err)
	}

	return c.JSON(fiber.Map{
		"message": "login successful",
		"user":    user,
	})
}

// AdminLogin authenticates an admin and returns a moderation token.
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var request struct {
		AdminID  string `json:"adminId"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&request); err != nil {
		return httperr.Respond(c, h.logger, httperr.NewValidation("invalid request body"))
	}

	token, err := h.auth.LoginAdmin(c.UserContext(), request.AdminID, request.Password)
	if err != nil {
		return httperr.Respond(c, h.logger, err)
	}

	return c.JSON(fiber.Map{"token": token})
}

// Verify confirms the presented admin token is still valid. The gate
// middleware has already done the work by the time this runs.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"valid":   true,
		"adminId": c.Locals("admin_id"),
	})
}
