package handlers

import (
	"errors"
	"log"

	"cashper/internal/middleware"
	"cashper/internal/models"
	"cashper/internal/repositories"
	"cashper/internal/services/auth"
	"cashper/internal/utils/response"
	"cashper/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler exposes registration, login and token lifecycle endpoints.
type AuthHandler struct {
	service *auth.Service
	users   *repositories.UserRepository
}

func NewAuthHandler(service *auth.Service, users *repositories.UserRepository) *AuthHandler {
	return &AuthHandler{service: service, users: users}
}

// Register creates a new user account.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(req); err != nil {
		return response.ValidationError(c, err.Error())
	}

	user, err := h.service.Register(c.Context(), req)
	if errors.Is(err, auth.ErrEmailTaken) {
		return response.Error(c, fiber.StatusConflict, err.Error())
	}
	if err != nil {
		log.Printf("Error registering user: %v", err)
		return response.ServerError(c, "Failed to register user")
	}
	return response.Created(c, "Account created successfully", user)
}

// Login verifies credentials and returns a token pair.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(req); err != nil {
		return response.ValidationError(c, err.Error())
	}

	user, tokens, err := h.service.Login(c.Context(), req)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return response.Error(c, fiber.StatusUnauthorized, err.Error())
	}
	if err != nil {
		log.Printf("Error logging in: %v", err)
		return response.ServerError(c, "Failed to log in")
	}

	return response.Success(c, "Logged in successfully", fiber.Map{
		"user":         user,
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	})
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return response.BadRequest(c, "Refresh token is required")
	}

	tokens, err := h.service.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return response.Error(c, fiber.StatusUnauthorized, "Invalid or revoked refresh token")
	}
	return response.Success(c, "Token refreshed", tokens)
}

// Logout revokes every outstanding token for the authenticated user.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return response.Unauthorized(c)
	}
	if err := h.service.Logout(c.Context(), claims.UserID); err != nil {
		log.Printf("Error logging out user %s: %v", claims.UserID, err)
		return response.ServerError(c, "Failed to log out")
	}
	return response.Success(c, "Logged out successfully", nil)
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return response.Unauthorized(c)
	}
	user, err := h.users.GetByID(c.Context(), claims.UserID)
	if errors.Is(err, models.ErrNotFound) {
		return response.NotFound(c, "User not found")
	}
	if err != nil {
		log.Printf("Error fetching user %s: %v", claims.UserID, err)
		return response.ServerError(c, "Failed to fetch profile")
	}
	return response.Success(c, "Profile fetched", user)
}
