// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"cashper/internal/handlers"
	"cashper/internal/middleware"
	"cashper/internal/models"
	"cashper/internal/repositories"
	"cashper/internal/services/auth"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, db *mongo.Database) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	adminLoanRepo := repositories.NewLoanAdminRepository(db)
	policyRepo := repositories.NewPolicyRepository(db)
	investmentRepo := repositories.NewInvestmentRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	contactRepo := repositories.NewContactRepository(db)
	reportsRepo := repositories.NewReportsRepository(db)

	shortTermLoans := repositories.NewLoanRepository(db, models.CollShortTermLoans, models.LoanTypeShortTerm)
	personalLoans := repositories.NewLoanRepository(db, models.CollPersonalLoans, models.LoanTypePersonal)
	businessLoans := repositories.NewLoanRepository(db, models.CollBusinessLoans, models.LoanTypeBusiness)
	homeLoans := repositories.NewLoanRepository(db, models.CollHomeLoans, models.LoanTypeHome)

	healthInsurance := repositories.NewInsuranceRepository(db, models.CollHealthInquiries, models.CollHealthApplications, models.InsuranceTypeHealth)
	motorInsurance := repositories.NewInsuranceRepository(db, models.CollMotorInquiries, models.CollMotorApplications, models.InsuranceTypeMotor)
	termInsurance := repositories.NewInsuranceRepository(db, models.CollTermInquiries, models.CollTermApplications, models.InsuranceTypeTerm)

	// Initialize services
	authService := auth.NewService(userRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, userRepo)
	adminLoanHandler := handlers.NewAdminLoanHandler(adminLoanRepo, repositories.CacheService)
	policyHandler := handlers.NewPolicyHandler(policyRepo)
	investmentHandler := handlers.NewInvestmentHandler(investmentRepo)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	contactHandler := handlers.NewContactHandler(contactRepo)
	reportsHandler := handlers.NewReportsHandler(reportsRepo, repositories.CacheService)

	loanHandlers := map[string]*handlers.LoanHandler{
		"short-term": handlers.NewLoanHandler(shortTermLoans),
		"personal":   handlers.NewLoanHandler(personalLoans),
		"business":   handlers.NewLoanHandler(businessLoans),
		"home":       handlers.NewLoanHandler(homeLoans),
	}
	insuranceHandlers := map[string]*handlers.InsuranceHandler{
		"health": handlers.NewInsuranceHandler(healthInsurance, policyRepo),
		"motor":  handlers.NewInsuranceHandler(motorInsurance, policyRepo),
		"term":   handlers.NewInsuranceHandler(termInsurance, policyRepo),
	}

	dashboardHandler := handlers.NewDashboardHandler(
		[]*repositories.LoanRepository{shortTermLoans, personalLoans, businessLoans, homeLoans},
		[]handlers.InsuranceStore{healthInsurance, motorInsurance, termInsurance},
		investmentRepo,
	)

	authMiddleware := middleware.NewAuthMiddleware(userRepo)

	// health check at the root
	app.Get("/health", handlers.HealthCheck)

	// Public routes
	api := app.Group("/api")
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.Refresh)
	api.Post("/contact", contactHandler.Create)
	api.Post("/investments/sip-inquiry", investmentHandler.CreateSIPInquiry)

	for slug, h := range loanHandlers {
		loans := api.Group("/loans/" + slug)
		loans.Post("/apply", h.Apply)
		loans.Get("/track/:number", h.Track)
	}
	api.Post("/loans/short-term/eligibility", loanHandlers["short-term"].CheckEligibility)

	for slug, h := range insuranceHandlers {
		insurance := api.Group("/insurance/" + slug)
		insurance.Post("/inquiry", h.CreateInquiry)
		insurance.Post("/apply", h.CreateApplication)
		insurance.Get("/track/:number", h.Track)
	}

	// User routes with authentication
	authenticated := api.Group("/", authMiddleware.Handler)
	authenticated.Post("/logout", authHandler.Logout)
	authenticated.Get("/me", authHandler.Me)
	authenticated.Get("/dashboard", dashboardHandler.Overview)

	for slug, h := range loanHandlers {
		authenticated.Get("/loans/"+slug+"/my-applications", h.MyApplications)
	}
	for slug, h := range insuranceHandlers {
		authenticated.Get("/insurance/"+slug+"/my-applications", h.MyApplications)
	}

	authenticated.Get("/investments/portfolio", investmentHandler.Portfolio)
	authenticated.Get("/investments/transactions", investmentHandler.Transactions)
	authenticated.Get("/investments/:id", investmentHandler.Detail)
	authenticated.Post("/investments/:id/invest", investmentHandler.InvestMore)
	authenticated.Post("/investments/:id/redeem", investmentHandler.Redeem)

	authenticated.Get("/notifications", notificationHandler.List)
	authenticated.Get("/notifications/unread-count", notificationHandler.UnreadCount)
	authenticated.Put("/notifications/:id/read", notificationHandler.MarkRead)
	authenticated.Put("/notifications/read-all", notificationHandler.MarkAllRead)

	// Admin routes
	admin := api.Group("/admin", authMiddleware.Handler, middleware.AdminAuthMiddleware)

	loanMgmt := admin.Group("/loan-management")
	loanMgmt.Get("/statistics", adminLoanHandler.GetStatistics)
	loanMgmt.Get("/applications", adminLoanHandler.GetApplications)
	loanMgmt.Post("/applications", adminLoanHandler.CreateApplication)
	loanMgmt.Post("/applications/bulk-delete", adminLoanHandler.BulkDelete)
	loanMgmt.Get("/applications/:id", adminLoanHandler.GetApplication)
	loanMgmt.Patch("/applications/:id", adminLoanHandler.UpdateApplication)
	loanMgmt.Patch("/applications/:id/status", adminLoanHandler.UpdateStatus)
	loanMgmt.Delete("/applications/:id", adminLoanHandler.DeleteApplication)

	for slug, h := range loanHandlers {
		adminLoans := admin.Group("/loans/" + slug)
		adminLoans.Get("/applications", h.ListAll)
		adminLoans.Put("/applications/:id/status", h.UpdateStatus)
		adminLoans.Delete("/applications/:id", h.Delete)
	}

	for slug, h := range insuranceHandlers {
		adminInsurance := admin.Group("/insurance/" + slug)
		adminInsurance.Get("/inquiries", h.ListInquiries)
		adminInsurance.Put("/inquiries/:id/status", h.UpdateInquiryStatus)
		adminInsurance.Get("/applications", h.ListApplications)
		adminInsurance.Put("/applications/:id/status", h.UpdateApplicationStatus)
	}

	admin.Get("/insurance/policies", policyHandler.List)
	admin.Put("/insurance/policies/:id/status", policyHandler.UpdateStatus)

	admin.Get("/investments/sip-inquiries", investmentHandler.ListSIPInquiries)

	admin.Get("/notifications", notificationHandler.ListAll)
	admin.Post("/notifications", notificationHandler.Create)
	admin.Put("/notifications/:id", notificationHandler.Update)
	admin.Delete("/notifications/:id", notificationHandler.Deactivate)

	admin.Get("/contact", contactHandler.List)
	admin.Put("/contact/:id/status", contactHandler.UpdateStatus)
	admin.Delete("/contact/:id", contactHandler.Delete)

	reports := admin.Group("/reports")
	reports.Get("/analytics", reportsHandler.Analytics)
	reports.Get("/loan-distribution", reportsHandler.LoanDistribution)
	reports.Get("/insurance-distribution", reportsHandler.InsuranceDistribution)
	reports.Get("/investment-overview", reportsHandler.InvestmentOverview)
	reports.Get("/tax-planning", reportsHandler.TaxPlanningOverview)
	reports.Get("/categories", reportsHandler.Categories)
	reports.Get("/recent", reportsHandler.Recent)
	reports.Get("/export", reportsHandler.ExportCSV)
}
