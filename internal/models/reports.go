package models

// RevenueDataPoint is one bar on the admin revenue chart.
type RevenueDataPoint struct {
	Month string `json:"month"`
	Value int    `json:"value"`
	Label string `json:"label"`
}

// MetricsData holds the headline dashboard figures. Values are presentation
// strings; the change fields are fixed period-over-period deltas.
type MetricsData struct {
	TotalRevenue       string `json:"totalRevenue"`
	TotalDisbursements string `json:"totalDisbursements"`
	ActiveCustomers    string `json:"activeCustomers"`
	AvgTicketSize      string `json:"avgTicketSize"`
	RevenueChange      string `json:"revenueChange"`
	DisbursementChange string `json:"disbursementChange"`
	CustomerChange     string `json:"customerChange"`
	TicketChange       string `json:"ticketChange"`
}

// ProductData is one slice of the product distribution chart.
type ProductData struct {
	Name       string `json:"name"`
	Value      int    `json:"value"`
	Color      string `json:"color"`
	Percentage string `json:"percentage"`
}

// ReportData bundles the analytics payload.
type ReportData struct {
	Revenue  []RevenueDataPoint `json:"revenue"`
	Metrics  MetricsData        `json:"metrics"`
	Products []ProductData      `json:"products"`
}

// AnalyticsResponse is the admin analytics endpoint body.
type AnalyticsResponse struct {
	DateRange string     `json:"dateRange"`
	Data      ReportData `json:"data"`
}

// LoanDistributionItem is one row of the loan distribution report.
type LoanDistributionItem struct {
	Type       string `json:"type"`
	Percentage int    `json:"percentage"`
	Amount     string `json:"amount"`
	Color      string `json:"color"`
}

// LoanDistribution is the loan distribution report body.
type LoanDistribution struct {
	Loans          []LoanDistributionItem `json:"loans"`
	TotalDisbursed string                 `json:"totalDisbursed"`
}

// InsuranceDistributionItem is one row of the insurance distribution report.
type InsuranceDistributionItem struct {
	Type       string `json:"type"`
	Count      int64  `json:"count"`
	Percentage int    `json:"percentage"`
	Color      string `json:"color"`
}

// InsuranceDistribution is the insurance distribution report body.
type InsuranceDistribution struct {
	Insurance     []InsuranceDistributionItem `json:"insurance"`
	TotalPolicies int64                       `json:"totalPolicies"`
}

// OverviewItem is one row of the investment or tax planning overview.
type OverviewItem struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Growth string `json:"growth"`
	Color  string `json:"color"`
}

// ReportCategory groups the downloadable reports shown in the admin panel.
type ReportCategory struct {
	Name     string   `json:"name"`
	Icon     string   `json:"icon"`
	Gradient string   `json:"gradient"`
	Reports  []string `json:"reports"`
}

// RecentReport is one entry in the recent reports list.
type RecentReport struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Date   string `json:"date"`
	Size   string `json:"size"`
	Status string `json:"status"`
}
