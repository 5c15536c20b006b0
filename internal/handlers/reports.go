package handlers

import (
	"fmt"
	"log"
	"time"

	"cashper/internal/models"
	"cashper/internal/repositories"
	"cashper/internal/repositories/cache"
	"cashper/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// ReportsHandler serves the admin analytics and reports endpoints. Aggregate
// payloads are cached because they fan out into many collection counts.
type ReportsHandler struct {
	repo  *repositories.ReportsRepository
	cache *cache.CacheService
}

func NewReportsHandler(repo *repositories.ReportsRepository, cacheService *cache.CacheService) *ReportsHandler {
	return &ReportsHandler{repo: repo, cache: cacheService}
}

// Analytics returns the revenue/metrics/products payload for a date range.
func (h *ReportsHandler) Analytics(c *fiber.Ctx) error {
	dateRange := c.Query("range", "30days")

	var cached models.AnalyticsResponse
	if err := h.cache.GetJSON(c.Context(), cache.AnalyticsKey(dateRange), &cached); err == nil {
		return response.Success(c, "Analytics fetched", cached)
	}

	analytics := h.repo.GetAnalytics(c.Context(), dateRange)
	if err := h.cache.SetJSON(c.Context(), cache.AnalyticsKey(dateRange), analytics); err != nil {
		log.Printf("Error caching analytics: %v", err)
	}
	return response.Success(c, "Analytics fetched", analytics)
}

// LoanDistribution returns the per-product loan share report.
func (h *ReportsHandler) LoanDistribution(c *fiber.Ctx) error {
	var cached models.LoanDistribution
	if err := h.cache.GetJSON(c.Context(), cache.KeyLoanDistribution, &cached); err == nil {
		return response.Success(c, "Loan distribution fetched", cached)
	}

	dist := h.repo.GetLoanDistribution(c.Context())
	if err := h.cache.SetJSON(c.Context(), cache.KeyLoanDistribution, dist); err != nil {
		log.Printf("Error caching loan distribution: %v", err)
	}
	return response.Success(c, "Loan distribution fetched", dist)
}

// InsuranceDistribution returns the per-product insurance inquiry share.
func (h *ReportsHandler) InsuranceDistribution(c *fiber.Ctx) error {
	var cached models.InsuranceDistribution
	if err := h.cache.GetJSON(c.Context(), cache.KeyInsuranceDist, &cached); err == nil {
		return response.Success(c, "Insurance distribution fetched", cached)
	}

	dist := h.repo.GetInsuranceDistribution(c.Context())
	if err := h.cache.SetJSON(c.Context(), cache.KeyInsuranceDist, dist); err != nil {
		log.Printf("Error caching insurance distribution: %v", err)
	}
	return response.Success(c, "Insurance distribution fetched", dist)
}

// InvestmentOverview returns the headline investment figures.
func (h *ReportsHandler) InvestmentOverview(c *fiber.Ctx) error {
	return response.Success(c, "Investment overview fetched",
		fiber.Map{"investments": h.repo.GetInvestmentOverview(c.Context())})
}

// TaxPlanningOverview returns the tax planning figures.
func (h *ReportsHandler) TaxPlanningOverview(c *fiber.Ctx) error {
	return response.Success(c, "Tax planning overview fetched",
		fiber.Map{"taxPlanning": h.repo.GetTaxPlanningOverview()})
}

// Categories returns the report catalogue.
func (h *ReportsHandler) Categories(c *fiber.Ctx) error {
	return response.Success(c, "Report categories fetched", h.repo.GetReportCategories())
}

// Recent returns the recent reports list.
func (h *ReportsHandler) Recent(c *fiber.Ctx) error {
	return response.Success(c, "Recent reports fetched", h.repo.GetRecentReports())
}

// ExportCSV streams the analytics export as a CSV download.
func (h *ReportsHandler) ExportCSV(c *fiber.Ctx) error {
	dateRange := c.Query("range", "30days")
	csv := h.repo.GenerateCSVExport(c.Context(), dateRange)

	filename := fmt.Sprintf("cashper-report-%s-%s.csv", dateRange, time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.SendString(csv)
}
