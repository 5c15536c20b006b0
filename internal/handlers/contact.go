package handlers

import (
	"errors"
	"log"

	"cashper/internal/models"
	"cashper/internal/repositories"
	"cashper/internal/utils/response"
	"cashper/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ContactHandler serves the public contact form and the admin inbox.
type ContactHandler struct {
	repo *repositories.ContactRepository
}

func NewContactHandler(repo *repositories.ContactRepository) *ContactHandler {
	return &ContactHandler{repo: repo}
}

// Create stores a contact submission. Public endpoint.
func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var req models.ContactCreate
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(req); err != nil {
		return response.ValidationError(c, err.Error())
	}

	sub, err := h.repo.Create(c.Context(), req)
	if err != nil {
		log.Printf("Error creating contact submission: %v", err)
		return response.ServerError(c, "Failed to submit message")
	}
	return response.Created(c, "Message submitted successfully", sub)
}

// List is the admin inbox, optionally filtered by status.
func (h *ContactHandler) List(c *fiber.Ctx) error {
	submissions, err := h.repo.List(c.Context(), c.Query("status"))
	if err != nil {
		log.Printf("Error listing contact submissions: %v", err)
		return response.ServerError(c, "Failed to fetch submissions")
	}
	return response.Success(c, "Submissions fetched", submissions)
}

// UpdateStatus moves a submission through its handling states.
func (h *ContactHandler) UpdateStatus(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	status, ok := models.ParseContactStatus(req.Status)
	if !ok {
		return response.BadRequest(c, "Unknown contact status")
	}

	err := h.repo.UpdateStatus(c.Context(), c.Params("id"), status)
	if errors.Is(err, models.ErrNotFound) {
		return response.NotFound(c, "Submission not found")
	}
	if err != nil {
		log.Printf("Error updating contact status: %v", err)
		return response.ServerError(c, "Failed to update submission")
	}
	return response.Success(c, "Submission updated", fiber.Map{"status": status})
}

// Delete removes a submission.
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	err := h.repo.Delete(c.Context(), c.Params("id"))
	if errors.Is(err, models.ErrNotFound) {
		return response.NotFound(c, "Submission not found")
	}
	if err != nil {
		log.Printf("Error deleting contact submission: %v", err)
		return response.ServerError(c, "Failed to delete submission")
	}
	return response.Success(c, "Submission deleted", nil)
}
