package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/campus-it/lab-support/internal/api/dto"
	"github.com/campus-it/lab-support/internal/auth"
	"github.com/campus-it/lab-support/internal/service"
	apperrors "github.com/campus-it/lab-support/pkg/util/errorutil"
)

// UsersHandler exposes auth and account lookup endpoints.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Login handles POST /api/v1/auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.UserID) == "" || req.Password == "" {
		return apperrors.NewValidationError("user_id and password are required", nil)
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.UserID, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": userResponse(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// ChangePassword handles PUT /api/v1/auth/password. Users may only
// change their own password.
func (h *UsersHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Password == "" {
		return apperrors.NewValidationError("password is required", nil)
	}
	if req.UserID != "" && req.UserID != principal.User.ID {
		return apperrors.NewForbidden("cannot change another user's password")
	}

	if err := h.auth.ChangePassword(c.Context(), principal.User.ID, req.Password); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"user_id": principal.User.ID, "updated": true}})
}

// GetUsers handles GET /api/v1/users.
func (h *UsersHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.auth.Users(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponses(users)})
}

// GetTechnicalMembers handles GET /api/v1/users/technical-members.
func (h *UsersHandler) GetTechnicalMembers(c *fiber.Ctx) error {
	users, err := h.auth.TechnicalMembers(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponses(users)})
}

// GetUser handles GET /api/v1/users/:id.
func (h *UsersHandler) GetUser(c *fiber.Ctx) error {
	userID := strings.TrimSpace(c.Params("id"))
	if userID == "" {
		return apperrors.NewValidationError("user id is required", nil)
	}
	user, err := h.auth.UserByID(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}
