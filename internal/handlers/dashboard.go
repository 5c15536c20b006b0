package handlers

import (
	"log"

	"cashper/internal/middleware"
	"cashper/internal/models"
	"cashper/internal/repositories"
	"cashper/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler assembles the user app's home screen: the user's loan
// applications across every product, their insurance applications, and their
// investment summary.
type DashboardHandler struct {
	loans       []*repositories.LoanRepository
	insurance   []InsuranceStore
	investments *repositories.InvestmentRepository
}

func NewDashboardHandler(loans []*repositories.LoanRepository, insurance []InsuranceStore, investments *repositories.InvestmentRepository) *DashboardHandler {
	return &DashboardHandler{loans: loans, insurance: insurance, investments: investments}
}

// Overview returns the aggregated per-user view. Individual source failures
// degrade to empty sections rather than failing the whole screen.
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return response.Unauthorized(c)
	}

	loanApps := []models.LoanApplication{}
	for _, repo := range h.loans {
		apps, err := repo.GetByUser(c.Context(), claims.UserID, claims.Email)
		if err != nil {
			log.Printf("Error fetching dashboard loans: %v", err)
			continue
		}
		loanApps = append(loanApps, apps...)
	}

	insuranceApps := []models.InsuranceApplication{}
	for _, store := range h.insurance {
		apps, err := store.GetApplicationsByUser(c.Context(), claims.UserID, claims.Email)
		if err != nil {
			log.Printf("Error fetching dashboard insurance: %v", err)
			continue
		}
		insuranceApps = append(insuranceApps, apps...)
	}

	investments, err := h.investments.GetPortfolio(c.Context(), claims.Email)
	if err != nil {
		log.Printf("Error fetching dashboard investments: %v", err)
		investments = []models.Investment{}
	}

	return response.Success(c, "Dashboard fetched", fiber.Map{
		"loans":     loanApps,
		"insurance": insuranceApps,
		"investments": fiber.Map{
			"holdings": investments,
			"summary":  repositories.Summarize(investments),
		},
	})
}
