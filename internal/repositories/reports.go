package repositories

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"cashper/internal/models"
	"cashper/internal/utils/currency"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReportsRepository produces the admin analytics and distribution reports.
// The figures are derived from collection counts through fixed scaling
// formulas, so they are directionally real rather than accounting-grade.
type ReportsRepository struct {
	db *mongo.Database
}

func NewReportsRepository(db *mongo.Database) *ReportsRepository {
	return &ReportsRepository{db: db}
}

// rangeStart resolves a date-range keyword to its window start. Unknown
// keywords fall back to 30 days.
func rangeStart(dateRange string, now time.Time) time.Time {
	switch dateRange {
	case "7days":
		return now.AddDate(0, 0, -7)
	case "30days":
		return now.AddDate(0, 0, -30)
	case "90days":
		return now.AddDate(0, 0, -90)
	case "1year":
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, 0, -30)
	}
}

func (r *ReportsRepository) countSince(ctx context.Context, coll string, since time.Time) int64 {
	opCtx, cancel := opContext(ctx)
	defer cancel()

	filter := bson.M{}
	if !since.IsZero() {
		filter["createdAt"] = bson.M{"$gte": since}
	}
	n, err := r.db.Collection(coll).CountDocuments(opCtx, filter)
	if err != nil {
		log.Printf("Error counting from %s: %v", coll, err)
		return 0
	}
	return n
}

// productCounts returns the per-product loan application counts, optionally
// windowed. Order: short-term, personal, home, business.
func (r *ReportsRepository) productCounts(ctx context.Context, since time.Time) (int64, int64, int64, int64) {
	return r.countSince(ctx, models.CollShortTermLoans, since),
		r.countSince(ctx, models.CollPersonalLoans, since),
		r.countSince(ctx, models.CollHomeLoans, since),
		r.countSince(ctx, models.CollBusinessLoans, since)
}

// GetAnalytics assembles the full analytics payload for a date range.
func (r *ReportsRepository) GetAnalytics(ctx context.Context, dateRange string) models.AnalyticsResponse {
	return models.AnalyticsResponse{
		DateRange: dateRange,
		Data: models.ReportData{
			Revenue:  r.revenueByRange(ctx, dateRange),
			Metrics:  r.metricsByRange(ctx, dateRange),
			Products: r.productsByRange(ctx),
		},
	}
}

func (r *ReportsRepository) revenueByRange(ctx context.Context, dateRange string) []models.RevenueDataPoint {
	since := rangeStart(dateRange, time.Now())
	shortTerm, personal, home, business := r.productCounts(ctx, since)

	total := shortTerm + personal + home + business
	if total == 0 {
		total = 1
	}
	scaling := float64(total) * 0.8
	if scaling < 50 {
		scaling = 50
	}

	labels := []string{"Week 1", "Week 2", "Week 3", "Week 4"}
	if dateRange == "7days" {
		labels = []string{"Mon", "Tue", "Wed", "Thu"}
	}
	factors := []float64{0.75, 0.82, 0.88, 0.95}

	points := make([]models.RevenueDataPoint, 0, len(labels))
	for i, label := range labels {
		v := scaling * factors[i]
		value := int(v)
		if value > 100 {
			value = 100
		}
		points = append(points, models.RevenueDataPoint{
			Month: label,
			Value: value,
			Label: fmt.Sprintf("₹%.1f Cr", v),
		})
	}
	return points
}

func (r *ReportsRepository) metricsByRange(ctx context.Context, dateRange string) models.MetricsData {
	since := rangeStart(dateRange, time.Now())
	users := r.countSince(ctx, models.CollUsers, since)
	shortTerm, personal, home, business := r.productCounts(ctx, since)

	totalApplications := shortTerm + personal + home + business
	if totalApplications == 0 {
		totalApplications = 1
	}
	totalRevenue := float64(totalApplications) * 0.0095
	if totalRevenue < 20 {
		totalRevenue = 20
	}
	totalDisbursements := totalRevenue * 0.75
	activeCustomers := users
	if activeCustomers < 1000 {
		activeCustomers = 1000
	}
	denom := float64(activeCustomers) / 1000
	if denom < 1 {
		denom = 1
	}
	avgTicket := float64(totalApplications) * 0.15 / denom

	return models.MetricsData{
		TotalRevenue:       fmt.Sprintf("₹%.0f Cr", totalRevenue),
		TotalDisbursements: fmt.Sprintf("₹%.0f Cr", totalDisbursements),
		ActiveCustomers:    currency.GroupThousands(activeCustomers),
		AvgTicketSize:      fmt.Sprintf("₹%.1f L", avgTicket),
		RevenueChange:      "+20.3%",
		DisbursementChange: "+17.8%",
		CustomerChange:     "+10.5%",
		TicketChange:       "+4.2%",
	}
}

func (r *ReportsRepository) productsByRange(ctx context.Context) []models.ProductData {
	shortTerm, personal, home, business := r.productCounts(ctx, time.Time{})

	total := shortTerm + personal + home + business
	if total == 0 {
		total = 100
	}
	pct := func(n int64) int { return int(n * 100 / total) }

	return []models.ProductData{
		{Name: "Short-Term Loan", Value: pct(shortTerm), Color: "#16a34a", Percentage: fmt.Sprintf("%d%%", pct(shortTerm))},
		{Name: "Personal Loan", Value: pct(personal), Color: "#2563eb", Percentage: fmt.Sprintf("%d%%", pct(personal))},
		{Name: "Home Loan", Value: pct(home), Color: "#7c3aed", Percentage: fmt.Sprintf("%d%%", pct(home))},
		{Name: "Business Loan", Value: pct(business), Color: "#f59e0b", Percentage: fmt.Sprintf("%d%%", pct(business))},
	}
}

// GetLoanDistribution returns the per-product share and scaled amounts.
func (r *ReportsRepository) GetLoanDistribution(ctx context.Context) models.LoanDistribution {
	shortTerm, personal, home, business := r.productCounts(ctx, time.Time{})

	total := shortTerm + personal + home + business
	div := total
	if div == 0 {
		div = 1
	}
	pct := func(n int64) int { return int(n * 100 / div) }
	amount := func(n int64, factor float64) string {
		return fmt.Sprintf("₹%.1fCr", float64(n)*factor)
	}

	return models.LoanDistribution{
		Loans: []models.LoanDistributionItem{
			{Type: "Short-Term Loan", Percentage: pct(shortTerm), Amount: amount(shortTerm, 0.15), Color: "bg-green-500"},
			{Type: "Personal Loan", Percentage: pct(personal), Amount: amount(personal, 0.16), Color: "bg-blue-500"},
			{Type: "Home Loan", Percentage: pct(home), Amount: amount(home, 0.17), Color: "bg-purple-500"},
			{Type: "Business Loan", Percentage: pct(business), Amount: amount(business, 0.14), Color: "bg-yellow-500"},
		},
		TotalDisbursed: fmt.Sprintf("₹%.1f Cr", float64(total)*0.155),
	}
}

// GetInsuranceDistribution returns the inquiry share per insurance product.
func (r *ReportsRepository) GetInsuranceDistribution(ctx context.Context) models.InsuranceDistribution {
	health := r.countSince(ctx, models.CollHealthInquiries, time.Time{})
	motor := r.countSince(ctx, models.CollMotorInquiries, time.Time{})
	term := r.countSince(ctx, models.CollTermInquiries, time.Time{})

	total := health + motor + term
	div := total
	if div == 0 {
		div = 1
	}
	pct := func(n int64) int { return int(n * 100 / div) }

	return models.InsuranceDistribution{
		Insurance: []models.InsuranceDistributionItem{
			{Type: "Health", Count: health, Percentage: pct(health), Color: "#10b981"},
			{Type: "Motor", Count: motor, Percentage: pct(motor), Color: "#3b82f6"},
			{Type: "Term", Count: term, Percentage: pct(term), Color: "#f59e0b"},
		},
		TotalPolicies: total,
	}
}

// GetInvestmentOverview scales SIP inquiry volume into the two headline
// investment figures.
func (r *ReportsRepository) GetInvestmentOverview(ctx context.Context) []models.OverviewItem {
	sipCount := r.countSince(ctx, models.CollSIPInquiries, time.Time{})
	mfValue := float64(sipCount*12500) / 1e7
	sipValue := float64(sipCount*8920) / 1e7

	return []models.OverviewItem{
		{Name: "Mutual Funds", Value: fmt.Sprintf("₹%.1f Cr", mfValue), Growth: "+18.5%", Color: "text-indigo-600"},
		{Name: "SIP Portfolio", Value: fmt.Sprintf("₹%.1f Cr", sipValue), Growth: "+22.3%", Color: "text-purple-600"},
	}
}

// GetTaxPlanningOverview returns the static tax planning figures.
func (r *ReportsRepository) GetTaxPlanningOverview() []models.OverviewItem {
	return []models.OverviewItem{
		{Name: "Personal Tax Planning", Value: "₹45.8 Cr", Growth: "+15.2%", Color: "text-orange-600"},
		{Name: "Business Tax Strategy", Value: "₹68.3 Cr", Growth: "+19.7%", Color: "text-amber-600"},
	}
}

// GetReportCategories returns the fixed report catalogue.
func (r *ReportsRepository) GetReportCategories() []models.ReportCategory {
	return []models.ReportCategory{
		{
			Name:     "Loan Reports",
			Icon:     "\U0001f4b3",
			Gradient: "from-green-600 to-green-700",
			Reports:  []string{"Short-Term Loan Report", "Personal Loan Report", "Home Loan Report", "Business Loan Report"},
		},
		{
			Name:     "Insurance Reports",
			Icon:     "\U0001f6e1️",
			Gradient: "from-blue-600 to-blue-700",
			Reports:  []string{"Health Insurance Report", "Motor Insurance Report", "Term Insurance Report"},
		},
		{
			Name:     "Investment Reports",
			Icon:     "\U0001f4c8",
			Gradient: "from-indigo-600 to-indigo-700",
			Reports:  []string{"Mutual Funds Report", "SIP Analysis Report"},
		},
		{
			Name:     "Tax Planning Reports",
			Icon:     "\U0001f4ca",
			Gradient: "from-orange-600 to-orange-700",
			Reports:  []string{"Personal Tax Planning Report", "Business Tax Strategy Report"},
		},
	}
}

// GetRecentReports returns the recent reports list.
func (r *ReportsRepository) GetRecentReports() []models.RecentReport {
	return []models.RecentReport{
		{ID: 1, Name: "Short-Term Loan Report - January 2024", Type: "Loan", Date: "2024-01-31", Size: "2.5 MB", Status: "Completed"},
		{ID: 2, Name: "Health Insurance Report Q4 2023", Type: "Insurance", Date: "2024-01-28", Size: "1.8 MB", Status: "Completed"},
		{ID: 3, Name: "SIP Performance Analysis", Type: "Investment", Date: "2024-01-25", Size: "3.2 MB", Status: "Completed"},
		{ID: 4, Name: "Business Tax Strategy Report", Type: "Tax", Date: "2024-01-20", Size: "1.2 MB", Status: "Completed"},
	}
}

// GenerateCSVExport renders the analytics and distributions as a quoted CSV
// document for download.
func (r *ReportsRepository) GenerateCSVExport(ctx context.Context, dateRange string) string {
	analytics := r.GetAnalytics(ctx, dateRange)
	loanDist := r.GetLoanDistribution(ctx)
	insuranceDist := r.GetInsuranceDistribution(ctx)

	rows := [][]string{
		{"Metric", "Value"},
		{"Date Range", dateRange},
		{"Generated", time.Now().Format("2006-01-02 15:04:05")},
		{},
		{"ANALYTICS METRICS", ""},
		{"Total Revenue", analytics.Data.Metrics.TotalRevenue},
		{"Total Disbursements", analytics.Data.Metrics.TotalDisbursements},
		{"Active Customers", analytics.Data.Metrics.ActiveCustomers},
		{"Average Ticket Size", analytics.Data.Metrics.AvgTicketSize},
		{},
		{"LOAN DISTRIBUTION", ""},
	}
	for _, loan := range loanDist.Loans {
		rows = append(rows, []string{loan.Type, fmt.Sprintf("%d%% (%s)", loan.Percentage, loan.Amount)})
	}
	rows = append(rows,
		[]string{"Total Disbursed", loanDist.TotalDisbursed},
		[]string{},
		[]string{"INSURANCE DISTRIBUTION", ""},
	)
	for _, ins := range insuranceDist.Insurance {
		rows = append(rows, []string{ins.Type + " Insurance", fmt.Sprintf("%d%% (%d policies)", ins.Percentage, ins.Count)})
	}
	rows = append(rows, []string{"Total Policies", fmt.Sprintf("%d", insuranceDist.TotalPolicies)})

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, cell := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(`"` + cell + `"`)
		}
		if len(row) == 0 {
			b.WriteString(`""`)
		}
	}
	return b.String()
}
