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

// LoanHandler serves one loan product's public endpoints. One instance is
// registered per product.
type LoanHandler struct {
	repo *repositories.LoanRepository
}

func NewLoanHandler(repo *repositories.LoanRepository) *LoanHandler {
	return &LoanHandler{repo: repo}
}

// Apply submits a new loan application.
func (h *LoanHandler) Apply(c *fiber.Ctx) error {
	var req models.LoanApplicationCreate
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(req); err != nil {
		return response.ValidationError(c, err.Error())
	}
	if !validation.PAN(req.PAN) {
		return response.BadRequest(c, "Invalid PAN format")
	}
	if !validation.Aadhar(req.Aadhar) {
		return response.BadRequest(c, "Invalid Aadhar number")
	}

	userID := ""
	if claims := middleware.ClaimsFromContext(c); claims != nil {
		userID = claims.UserID
	}

	app, err := h.repo.Create(c.Context(), userID, req)
	if err != nil {
		log.Printf("Error creating loan application: %v", err)
		return response.ServerError(c, "Failed to submit application")
	}
	return response.Created(c, "Application submitted successfully", fiber.Map{
		"applicationNumber": app.ApplicationNumber,
		"application":       app,
	})
}

// MyApplications lists the authenticated user's applications for this product.
func (h *LoanHandler) MyApplications(c *fiber.Ctx) error {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return response.Unauthorized(c)
	}

	apps, err := h.repo.GetByUser(c.Context(), claims.UserID, claims.Email)
	if err != nil {
		log.Printf("Error fetching user applications: %v", err)
		return response.ServerError(c, "Failed to fetch applications")
	}
	return response.Success(c, "Applications fetched", apps)
}

// Track looks up an application by its customer-visible number. Public, so a
// user can check status without logging in.
func (h *LoanHandler) Track(c *fiber.Ctx) error {
	number := c.Params("number")
	if number == "" {
		return response.BadRequest(c, "Application number is required")
	}

	app, err := h.repo.GetByApplicationNumber(c.Context(), number)
	if errors.Is(err, models.ErrNotFound) {
		return response.NotFound(c, "Application not found")
	}
	if err != nil {
		log.Printf("Error tracking application: %v", err)
		return response.ServerError(c, "Failed to fetch application")
	}

	return response.Success(c, "Application fetched", fiber.Map{
		"applicationNumber": app.ApplicationNumber,
		"status":            app.Status,
		"appliedDate":       app.AppliedDate,
		"rejectionReason":   app.RejectionReason,
	})
}

// ListAll returns every application for this product. Admin only.
func (h *LoanHandler) ListAll(c *fiber.Ctx) error {
	apps, err := h.repo.List(c.Context())
	if err != nil {
		log.Printf("Error listing loan applications: %v", err)
		return response.ServerError(c, "Failed to fetch applications")
	}
	return response.Success(c, "Applications fetched", apps)
}

// Delete removes an application from this product's collection. Admin only.
func (h *LoanHandler) Delete(c *fiber.Ctx) error {
	err := h.repo.Delete(c.Context(), c.Params("id"))
	if errors.Is(err, models.ErrNotFound) {
		return response.NotFound(c, "Application not found")
	}
	if err != nil {
		log.Printf("Error deleting loan application: %v", err)
		return response.ServerError(c, "Failed to delete application")
	}
	return response.Success(c, "Application deleted", nil)
}

// UpdateStatus is the admin status transition for this product's collection.
func (h *LoanHandler) UpdateStatus(c *fiber.Ctx) error {
	var req models.LoanStatusUpdate
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	status, ok := models.ParseLoanStatus(req.Status)
	if !ok {
		return response.BadRequest(c, "Unknown application status")
	}
	if err := models.ValidateTransition("", status, req.RejectionReason); err != nil {
		return response.BadRequest(c, err.Error())
	}

	err := h.repo.UpdateStatus(c.Context(), c.Params("id"), status, req.RejectionReason)
	if errors.Is(err, models.ErrNotFound) {
		return response.NotFound(c, "Application not found")
	}
	if err != nil {
		log.Printf("Error updating loan status: %v", err)
		return response.ServerError(c, "Failed to update status")
	}
	return response.Success(c, "Status updated", fiber.Map{"status": status})
}

// CheckEligibility runs the pre-application eligibility rule.
func (h *LoanHandler) CheckEligibility(c *fiber.Ctx) error {
	var req models.EligibilityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(req); err != nil {
		return response.ValidationError(c, err.Error())
	}
	return response.Success(c, "Eligibility checked", repositories.CheckEligibility(req))
}
