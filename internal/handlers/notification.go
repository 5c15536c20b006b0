package handlers

import (
	"errors"
	"log"

	"cashper/internal/middleware"
	"cashper/internal/models"
	"cashper/internal/repositories"
	"cashper/internal/utils/response"
	"cashper/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler serves user notification feeds and the admin
// notification management endpoints.
type NotificationHandler struct {
	repo *repositories.NotificationRepository
}

func NewNotificationHandler(repo *repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{repo: repo}
}

// List returns the notifications visible to the authenticated user.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return response.Unauthorized(c)
	}

	notifications, err := h.repo.ListForUser(c.Context(), claims.Email)
	if err != nil {
		log.Printf("Error fetching notifications: %v", err)
		return response.ServerError(c, "Failed to fetch notifications")
	}
	return response.Success(c, "Notifications fetched", notifications)
}

// UnreadCount returns how many visible notifications the user has not read.
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return response.Unauthorized(c)
	}

	count, err := h.repo.UnreadCount(c.Context(), claims.Email)
	if err != nil {
		log.Printf("Error counting unread notifications: %v", err)
		return response.ServerError(c, "Failed to count notifications")
	}
	return response.Success(c, "Unread count fetched", fiber.Map{"unread": count})
}

// MarkRead marks one notification read for the user. Idempotent.
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return response.Unauthorized(c)
	}

	err := h.repo.MarkRead(c.Context(), c.Params("id"), claims.Email)
	if errors.Is(err, models.ErrNotFound) {
		return response.NotFound(c, "Notification not found")
	}
	if err != nil {
		log.Printf("Error marking notification read: %v", err)
		return response.ServerError(c, "Failed to update notification")
	}
	return response.Success(c, "Notification marked read", nil)
}

// MarkAllRead marks every visible notification read for the user.
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return response.Unauthorized(c)
	}

	updated, err := h.repo.MarkAllRead(c.Context(), claims.Email)
	if err != nil {
		log.Printf("Error marking all notifications read: %v", err)
		return response.ServerError(c, "Failed to update notifications")
	}
	return response.Success(c, "Notifications marked read", fiber.Map{"updated": updated})
}

// Create is the admin endpoint for publishing a notification.
func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var req models.NotificationCreate
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(req); err != nil {
		return response.ValidationError(c, err.Error())
	}

	n, err := h.repo.Create(c.Context(), req)
	if err != nil {
		log.Printf("Error creating notification: %v", err)
		return response.ServerError(c, "Failed to create notification")
	}
	return response.Created(c, "Notification created", n)
}

// ListAll is the admin view of every notification.
func (h *NotificationHandler) ListAll(c *fiber.Ctx) error {
	notifications, err := h.repo.ListAll(c.Context())
	if err != nil {
		log.Printf("Error listing notifications: %v", err)
		return response.ServerError(c, "Failed to fetch notifications")
	}
	return response.Success(c, "Notifications fetched", notifications)
}

// Update is the admin endpoint for editing a published notification.
func (h *NotificationHandler) Update(c *fiber.Ctx) error {
	var req models.NotificationCreate
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(req); err != nil {
		return response.ValidationError(c, err.Error())
	}

	err := h.repo.Update(c.Context(), c.Params("id"), req)
	if errors.Is(err, models.ErrNotFound) {
		return response.NotFound(c, "Notification not found")
	}
	if err != nil {
		log.Printf("Error updating notification: %v", err)
		return response.ServerError(c, "Failed to update notification")
	}
	return response.Success(c, "Notification updated", nil)
}

// Deactivate soft-deletes a notification.
func (h *NotificationHandler) Deactivate(c *fiber.Ctx) error {
	err := h.repo.Deactivate(c.Context(), c.Params("id"))
	if errors.Is(err, models.ErrNotFound) {
		return response.NotFound(c, "Notification not found")
	}
	if err != nil {
		log.Printf("Error deactivating notification: %v", err)
		return response.ServerError(c, "Failed to deactivate notification")
	}
	return response.Success(c, "Notification deactivated", nil)
}
