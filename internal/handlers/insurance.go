package handlers

import (
	"context"
	"errors"
	"log"

	"cashper/internal/middleware"
	"cashper/internal/models"
	"cashper/internal/utils/response"
	"cashper/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// InsuranceStore is the per-product insurance repository surface.
type InsuranceStore interface {
	Product() string
	CreateInquiry(ctx context.Context, req models.InquiryCreate) (*models.InsuranceInquiry, error)
	ListInquiries(ctx context.Context) ([]models.InsuranceInquiry, error)
	UpdateInquiryStatus(ctx context.Context, id string, status models.InquiryStatus) error
	CreateApplication(ctx context.Context, userID string, req models.InsuranceApplicationCreate) (*models.InsuranceApplication, error)
	ListApplications(ctx context.Context) ([]models.InsuranceApplication, error)
	GetApplicationsByUser(ctx context.Context, userID, email string) ([]models.InsuranceApplication, error)
	GetApplicationByNumber(ctx context.Context, number string) (*models.InsuranceApplication, error)
	UpdateApplicationStatus(ctx context.Context, id string, status models.LoanStatus, rejectionReason string) error
}

// PolicyStore is the mirror collection surface.
type PolicyStore interface {
	CreateFromApplication(ctx context.Context, app *models.InsuranceApplication) error
	List(ctx context.Context, status string) ([]models.InsurancePolicy, error)
	UpdateStatus(ctx context.Context, id string, status models.PolicyStatus) error
}

// InsuranceHandler serves one insurance product's endpoints. The application
// write mirrors a denormalized policy record for the admin panel; the mirror
// is best-effort and a failure there never fails the application.
type InsuranceHandler struct {
	store    InsuranceStore
	policies PolicyStore
}

func NewInsuranceHandler(store InsuranceStore, policies PolicyStore) *InsuranceHandler {
	return &InsuranceHandler{store: store, policies: policies}
}

// CreateInquiry stores a contact-form inquiry.
func (h *InsuranceHandler) CreateInquiry(c *fiber.Ctx) error {
	var req models.InquiryCreate
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(req); err != nil {
		return response.ValidationError(c, err.Error())
	}

	inquiry, err := h.store.CreateInquiry(c.Context(), req)
	if err != nil {
		log.Printf("Error creating %s inquiry: %v", h.store.Product(), err)
		return response.ServerError(c, "Failed to submit inquiry")
	}
	return response.Created(c, "Inquiry submitted successfully", inquiry)
}

// ListInquiries is the admin view of this product's inquiries.
func (h *InsuranceHandler) ListInquiries(c *fiber.Ctx) error {
	inquiries, err := h.store.ListInquiries(c.Context())
	if err != nil {
		log.Printf("Error listing %s inquiries: %v", h.store.Product(), err)
		return response.ServerError(c, "Failed to fetch inquiries")
	}
	return response.Success(c, "Inquiries fetched", inquiries)
}

// UpdateInquiryStatus moves an inquiry through its funnel.
func (h *InsuranceHandler) UpdateInquiryStatus(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	status, ok := models.ParseInquiryStatus(req.Status)
	if !ok {
		return response.BadRequest(c, "Unknown inquiry status")
	}

	err := h.store.UpdateInquiryStatus(c.Context(), c.Params("id"), status)
	if errors.Is(err, models.ErrNotFound) {
		return response.NotFound(c, "Inquiry not found")
	}
	if err != nil {
		log.Printf("Error updating inquiry status: %v", err)
		return response.ServerError(c, "Failed to update inquiry")
	}
	return response.Success(c, "Inquiry updated", fiber.Map{"status": status})
}

// CreateApplication stores a full application, then mirrors a policy record.
// The two writes are not atomic; if the mirror fails the application still
// succeeds and the failure is only logged.
func (h *InsuranceHandler) CreateApplication(c *fiber.Ctx) error {
	var req models.InsuranceApplicationCreate
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

	app, err := h.store.CreateApplication(c.Context(), userID, req)
	if err != nil {
		log.Printf("Error creating %s application: %v", h.store.Product(), err)
		return response.ServerError(c, "Failed to submit application")
	}

	if err := h.policies.CreateFromApplication(c.Context(), app); err != nil {
		log.Printf("Warning: failed to mirror policy record for %s: %v", app.ApplicationNumber, err)
	}

	return response.Created(c, "Application submitted successfully", fiber.Map{
		"applicationNumber": app.ApplicationNumber,
		"application":       app,
	})
}

// ListApplications is the admin view of this product's applications.
func (h *InsuranceHandler) ListApplications(c *fiber.Ctx) error {
	apps, err := h.store.ListApplications(c.Context())
	if err != nil {
		log.Printf("Error listing %s applications: %v", h.store.Product(), err)
		return response.ServerError(c, "Failed to fetch applications")
	}
	return response.Success(c, "Applications fetched", apps)
}

// MyApplications lists the authenticated user's applications.
func (h *InsuranceHandler) MyApplications(c *fiber.Ctx) error {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return response.Unauthorized(c)
	}
	apps, err := h.store.GetApplicationsByUser(c.Context(), claims.UserID, claims.Email)
	if err != nil {
		log.Printf("Error fetching user applications: %v", err)
		return response.ServerError(c, "Failed to fetch applications")
	}
	return response.Success(c, "Applications fetched", apps)
}

// Track looks up an application by its customer-visible number. Public, same
// shape as loan tracking.
func (h *InsuranceHandler) Track(c *fiber.Ctx) error {
	number := c.Params("number")
	if number == "" {
		return response.BadRequest(c, "Application number is required")
	}

	app, err := h.store.GetApplicationByNumber(c.Context(), number)
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
		"submittedAt":       app.SubmittedAt,
		"rejectionReason":   app.RejectionReason,
	})
}

// UpdateApplicationStatus is the admin status transition, with the same
// rejection-reason rule as loans.
func (h *InsuranceHandler) UpdateApplicationStatus(c *fiber.Ctx) error {
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

	err := h.store.UpdateApplicationStatus(c.Context(), c.Params("id"), status, req.RejectionReason)
	if errors.Is(err, models.ErrNotFound) {
		return response.NotFound(c, "Application not found")
	}
	if err != nil {
		log.Printf("Error updating application status: %v", err)
		return response.ServerError(c, "Failed to update status")
	}
	return response.Success(c, "Status updated", fiber.Map{"status": status})
}

// PolicyHandler serves the shared admin policies view.
type PolicyHandler struct {
	policies PolicyStore
}

func NewPolicyHandler(policies PolicyStore) *PolicyHandler {
	return &PolicyHandler{policies: policies}
}

// List returns mirrored policies, optionally filtered by status.
func (h *PolicyHandler) List(c *fiber.Ctx) error {
	policies, err := h.policies.List(c.Context(), c.Query("status"))
	if err != nil {
		log.Printf("Error listing policies: %v", err)
		return response.ServerError(c, "Failed to fetch policies")
	}
	return response.Success(c, "Policies fetched", policies)
}

// UpdateStatus changes a policy's lifecycle state.
func (h *PolicyHandler) UpdateStatus(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var status models.PolicyStatus
	switch req.Status {
	case string(models.PolicyPending), string(models.PolicyActive),
		string(models.PolicyExpired), string(models.PolicyLapsed):
		status = models.PolicyStatus(req.Status)
	default:
		return response.BadRequest(c, "Unknown policy status")
	}

	err := h.policies.UpdateStatus(c.Context(), c.Params("id"), status)
	if errors.Is(err, models.ErrNotFound) {
		return response.NotFound(c, "Policy not found")
	}
	if err != nil {
		log.Printf("Error updating policy status: %v", err)
		return response.ServerError(c, "Failed to update policy")
	}
	return response.Success(c, "Policy updated", fiber.Map{"status": status})
}
