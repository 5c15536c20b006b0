package handlers

import (
	"context"
	"errors"
	"log"

	"cashper/internal/middleware"
	"cashper/internal/models"
	"cashper/internal/repositories"
	"cashper/internal/utils/response"
	"cashper/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// InvestmentStore is the investment repository surface.
type InvestmentStore interface {
	GetPortfolio(ctx context.Context, email string) ([]models.Investment, error)
	GetByID(ctx context.Context, id, email string) (*models.Investment, error)
	InvestMore(ctx context.Context, id, email string, amount float64) (*models.Investment, error)
	Redeem(ctx context.Context, id, email string, amount float64) (*models.Investment, error)
	GetTransactions(ctx context.Context, email string) ([]models.InvestmentTransaction, error)
	CreateSIPInquiry(ctx context.Context, req models.SIPInquiryCreate) (*models.SIPInquiry, error)
	ListSIPInquiries(ctx context.Context) ([]models.SIPInquiry, error)
}

// InvestmentHandler serves the user investment portfolio endpoints.
type InvestmentHandler struct {
	repo InvestmentStore
}

func NewInvestmentHandler(repo InvestmentStore) *InvestmentHandler {
	return &InvestmentHandler{repo: repo}
}

// Portfolio returns the user's holdings and the aggregate summary.
func (h *InvestmentHandler) Portfolio(c *fiber.Ctx) error {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return response.Unauthorized(c)
	}

	investments, err := h.repo.GetPortfolio(c.Context(), claims.Email)
	if err != nil {
		log.Printf("Error fetching portfolio: %v", err)
		return response.ServerError(c, "Failed to fetch portfolio")
	}

	return response.Success(c, "Portfolio fetched", fiber.Map{
		"investments": investments,
		"summary":     repositories.Summarize(investments),
	})
}

// Detail returns a single holding. Scoped to the owner's email, so another
// user's id yields a 404 rather than a leak.
func (h *InvestmentHandler) Detail(c *fiber.Ctx) error {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return response.Unauthorized(c)
	}

	inv, err := h.repo.GetByID(c.Context(), c.Params("id"), claims.Email)
	if errors.Is(err, models.ErrNotFound) {
		return response.NotFound(c, "Investment not found")
	}
	if err != nil {
		log.Printf("Error fetching investment: %v", err)
		return response.ServerError(c, "Failed to fetch investment")
	}
	return response.Success(c, "Investment fetched", inv)
}

// InvestMore adds to an existing holding.
func (h *InvestmentHandler) InvestMore(c *fiber.Ctx) error {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return response.Unauthorized(c)
	}

	var req models.InvestmentAmountRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(req); err != nil {
		return response.ValidationError(c, err.Error())
	}

	inv, err := h.repo.InvestMore(c.Context(), c.Params("id"), claims.Email, req.Amount)
	if errors.Is(err, models.ErrNotFound) {
		return response.NotFound(c, "Investment not found")
	}
	if err != nil {
		log.Printf("Error investing more: %v", err)
		return response.ServerError(c, "Failed to process investment")
	}
	return response.Success(c, "Investment updated", inv)
}

// Redeem withdraws from a holding.
func (h *InvestmentHandler) Redeem(c *fiber.Ctx) error {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return response.Unauthorized(c)
	}

	var req models.InvestmentAmountRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(req); err != nil {
		return response.ValidationError(c, err.Error())
	}

	inv, err := h.repo.Redeem(c.Context(), c.Params("id"), claims.Email, req.Amount)
	if errors.Is(err, models.ErrNotFound) {
		return response.NotFound(c, "Investment not found")
	}
	if errors.Is(err, models.ErrRedemptionExceedsValue) {
		return response.BadRequest(c, err.Error())
	}
	if err != nil {
		log.Printf("Error redeeming: %v", err)
		return response.ServerError(c, "Failed to process redemption")
	}
	return response.Success(c, "Redemption processed", inv)
}

// Transactions returns the user's investment transaction history.
func (h *InvestmentHandler) Transactions(c *fiber.Ctx) error {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return response.Unauthorized(c)
	}

	txns, err := h.repo.GetTransactions(c.Context(), claims.Email)
	if err != nil {
		log.Printf("Error fetching transactions: %v", err)
		return response.ServerError(c, "Failed to fetch transactions")
	}
	return response.Success(c, "Transactions fetched", txns)
}

// CreateSIPInquiry stores a SIP interest form. Public endpoint.
func (h *InvestmentHandler) CreateSIPInquiry(c *fiber.Ctx) error {
	var req models.SIPInquiryCreate
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(req); err != nil {
		return response.ValidationError(c, err.Error())
	}

	inquiry, err := h.repo.CreateSIPInquiry(c.Context(), req)
	if err != nil {
		log.Printf("Error creating SIP inquiry: %v", err)
		return response.ServerError(c, "Failed to submit inquiry")
	}
	return response.Created(c, "Inquiry submitted successfully", inquiry)
}

// ListSIPInquiries is the admin view of SIP inquiries.
func (h *InvestmentHandler) ListSIPInquiries(c *fiber.Ctx) error {
	inquiries, err := h.repo.ListSIPInquiries(c.Context())
	if err != nil {
		log.Printf("Error listing SIP inquiries: %v", err)
		return response.ServerError(c, "Failed to fetch inquiries")
	}
	return response.Success(c, "Inquiries fetched", inquiries)
}
