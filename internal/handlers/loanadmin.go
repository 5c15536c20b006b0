package handlers

import (
	"context"
	"errors"
	"log"

	"cashper/internal/models"
	"cashper/internal/repositories/cache"
	"cashper/internal/utils/pagination"
	"cashper/internal/utils/response"
	"cashper/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
)

// AdminLoanStore is the slice of the loan-admin repository this handler uses.
type AdminLoanStore interface {
	GetAllApplications(ctx context.Context, status, loanType, search string, skip, limit int) ([]models.AdminLoanApplication, int64, error)
	GetApplicationByID(ctx context.Context, id string) (*models.AdminLoanApplication, error)
	CreateApplication(ctx context.Context, req models.AdminLoanCreate) (string, error)
	UpdateApplication(ctx context.Context, id string, update bson.M) error
	UpdateStatus(ctx context.Context, id string, status models.LoanStatus, rejectionReason string) error
	DeleteApplication(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) (int64, error)
	GetStatistics(ctx context.Context) (*models.LoanStatistics, error)
}

// AdminLoanHandler serves the admin loan management panel.
type AdminLoanHandler struct {
	store AdminLoanStore
	cache *cache.CacheService
}

func NewAdminLoanHandler(store AdminLoanStore, cacheService *cache.CacheService) *AdminLoanHandler {
	return &AdminLoanHandler{store: store, cache: cacheService}
}

// GetApplications returns the merged, filtered, paginated application list.
func (h *AdminLoanHandler) GetApplications(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)
	status := c.Query("status")
	loanType := c.Query("loan_type")
	search := c.Query("search")

	if status != "" && status != "all" {
		parsed, ok := models.ParseLoanStatus(status)
		if !ok {
			return response.BadRequest(c, "Unknown status filter")
		}
		status = string(parsed)
	}

	apps, total, err := h.store.GetAllApplications(c.Context(), status, loanType, search, p.Skip, p.Limit)
	if err != nil {
		log.Printf("Error fetching loan applications: %v", err)
		return response.ServerError(c, "Failed to fetch applications")
	}
	p.Total = total
	return c.JSON(pagination.Response(p, apps))
}

// GetApplication returns a single normalized application.
func (h *AdminLoanHandler) GetApplication(c *fiber.Ctx) error {
	app, err := h.store.GetApplicationByID(c.Context(), c.Params("id"))
	if errors.Is(err, models.ErrNotFound) {
		return response.NotFound(c, "Application not found")
	}
	if err != nil {
		log.Printf("Error fetching application: %v", err)
		return response.ServerError(c, "Failed to fetch application")
	}
	return response.Success(c, "Application fetched", app)
}

// CreateApplication seeds a new admin loan application.
func (h *AdminLoanHandler) CreateApplication(c *fiber.Ctx) error {
	var req models.AdminLoanCreate
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(req); err != nil {
		return response.ValidationError(c, err.Error())
	}

	id, err := h.store.CreateApplication(c.Context(), req)
	if err != nil {
		log.Printf("Error creating application: %v", err)
		return response.ServerError(c, "Failed to create application")
	}
	h.invalidateStats(c)
	return response.Created(c, "Application created", fiber.Map{"id": id})
}

// UpdateApplication applies a partial update to an application.
func (h *AdminLoanHandler) UpdateApplication(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil || len(body) == 0 {
		return response.BadRequest(c, "Invalid request body")
	}
	// Status transitions go through the dedicated endpoint.
	delete(body, "status")
	delete(body, "_id")
	delete(body, "id")

	update := bson.M{}
	for k, v := range body {
		update[k] = v
	}

	err := h.store.UpdateApplication(c.Context(), c.Params("id"), update)
	if errors.Is(err, models.ErrNotFound) {
		return response.NotFound(c, "Application not found")
	}
	if err != nil {
		log.Printf("Error updating application: %v", err)
		return response.ServerError(c, "Failed to update application")
	}
	h.invalidateStats(c)
	return response.Success(c, "Application updated", nil)
}

// UpdateStatus moves an application through its lifecycle. A move to
// Rejected without a reason is refused here, before the store is touched.
func (h *AdminLoanHandler) UpdateStatus(c *fiber.Ctx) error {
	var req models.LoanStatusUpdate
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(req); err != nil {
		return response.ValidationError(c, err.Error())
	}

	status, ok := models.ParseLoanStatus(req.Status)
	if !ok {
		return response.BadRequest(c, "Unknown application status")
	}
	if err := models.ValidateTransition("", status, req.RejectionReason); err != nil {
		return response.BadRequest(c, err.Error())
	}

	err := h.store.UpdateStatus(c.Context(), c.Params("id"), status, req.RejectionReason)
	if errors.Is(err, models.ErrNotFound) {
		return response.NotFound(c, "Application not found")
	}
	if err != nil {
		log.Printf("Error updating application status: %v", err)
		return response.ServerError(c, "Failed to update status")
	}
	h.invalidateStats(c)
	return response.Success(c, "Status updated", fiber.Map{"status": status})
}

// DeleteApplication removes one application.
func (h *AdminLoanHandler) DeleteApplication(c *fiber.Ctx) error {
	err := h.store.DeleteApplication(c.Context(), c.Params("id"))
	if errors.Is(err, models.ErrNotFound) {
		return response.NotFound(c, "Application not found")
	}
	if err != nil {
		log.Printf("Error deleting application: %v", err)
		return response.ServerError(c, "Failed to delete application")
	}
	h.invalidateStats(c)
	return response.Success(c, "Application deleted", nil)
}

// BulkDelete removes a batch of applications.
func (h *AdminLoanHandler) BulkDelete(c *fiber.Ctx) error {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := c.BodyParser(&req); err != nil || len(req.IDs) == 0 {
		return response.BadRequest(c, "A non-empty ids list is required")
	}

	deleted, err := h.store.BulkDelete(c.Context(), req.IDs)
	if err != nil {
		log.Printf("Error bulk deleting applications: %v", err)
		return response.ServerError(c, "Failed to delete applications")
	}
	h.invalidateStats(c)
	return response.Success(c, "Applications deleted", fiber.Map{"deleted": deleted})
}

// GetStatistics returns the dashboard statistics, cached for the default TTL.
func (h *AdminLoanHandler) GetStatistics(c *fiber.Ctx) error {
	var stats models.LoanStatistics
	if err := h.cache.GetJSON(c.Context(), cache.KeyLoanStatistics, &stats); err == nil {
		return response.Success(c, "Statistics fetched", stats)
	}

	fresh, err := h.store.GetStatistics(c.Context())
	if err != nil {
		log.Printf("Error computing loan statistics: %v", err)
		return response.ServerError(c, "Failed to compute statistics")
	}
	if err := h.cache.SetJSON(c.Context(), cache.KeyLoanStatistics, fresh); err != nil {
		log.Printf("Error caching loan statistics: %v", err)
	}
	return response.Success(c, "Statistics fetched", fresh)
}

func (h *AdminLoanHandler) invalidateStats(c *fiber.Ctx) {
	if err := h.cache.Delete(c.Context(), cache.KeyLoanStatistics, cache.KeyLoanDistribution); err != nil {
		log.Printf("Error invalidating statistics cache: %v", err)
	}
}
