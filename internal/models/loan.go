package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Loan collection names. The admin aggregator reads all of them.
const (
	CollAdminLoans     = "admin_loan_applications"
	CollShortTermLoans = "short_term_loan_applications"
	CollPersonalLoans  = "personal_loan_applications"
	CollBusinessLoans  = "business_loan_applications"
	CollHomeLoans      = "home_loan_applications"
)

// Loan type display names
const (
	LoanTypeShortTerm = "Short-term Loan"
	LoanTypePersonal  = "Personal Loan"
	LoanTypeBusiness  = "Business Loan"
	LoanTypeHome      = "Home Loan"
)

// LoanCollection pairs a collection name with the loan type it holds.
// The admin collection holds mixed types, so its Type is empty.
type LoanCollection struct {
	Name string
	Type string
}

// LoanCollections is the fixed set of collections the aggregator scans,
// admin collection first.
var LoanCollections = []LoanCollection{
	{CollAdminLoans, ""},
	{CollShortTermLoans, LoanTypeShortTerm},
	{CollPersonalLoans, LoanTypePersonal},
	{CollBusinessLoans, LoanTypeBusiness},
	{CollHomeLoans, LoanTypeHome},
}

// LoanApplication is the document stored in the per-product loan collections.
// Amounts are written as integers by this code, but older documents carry
// pre-formatted currency strings, so admin reads go through the aggregator's
// normalization instead of decoding straight into this struct.
type LoanApplication struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            string             `bson:"userId,omitempty" json:"userId,omitempty"`
	ApplicationNumber string             `bson:"applicationNumber" json:"applicationNumber"`
	FullName          string             `bson:"fullName" json:"fullName"`
	Email             string             `bson:"email" json:"email"`
	Phone             string             `bson:"phone" json:"phone"`
	Amount            int64              `bson:"amount" json:"amount"`
	Tenure            int                `bson:"tenure" json:"tenure"`
	Purpose           string             `bson:"purpose" json:"purpose"`
	Employment        string             `bson:"employment,omitempty" json:"employment,omitempty"`
	MonthlyIncome     int64              `bson:"monthlyIncome,omitempty" json:"monthlyIncome,omitempty"`
	PAN               string             `bson:"pan,omitempty" json:"pan,omitempty"`
	Aadhar            string             `bson:"aadhar,omitempty" json:"aadhar,omitempty"`
	BankStatement     string             `bson:"bankStatement,omitempty" json:"bankStatement,omitempty"`
	SalarySlip        string             `bson:"salarySlip,omitempty" json:"salarySlip,omitempty"`
	Photo             string             `bson:"photo,omitempty" json:"photo,omitempty"`
	CibilScore        int                `bson:"cibilScore,omitempty" json:"cibilScore,omitempty"`
	Status            LoanStatus         `bson:"status" json:"status"`
	RejectionReason   string             `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	AppliedDate       time.Time          `bson:"appliedDate" json:"appliedDate"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// LoanApplicationCreate is the request body for submitting a loan application.
type LoanApplicationCreate struct {
	FullName      string `json:"fullName" validate:"required,min=2,max=100"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required,min=10,max=15"`
	Amount        int64  `json:"amount" validate:"required,gt=0"`
	Tenure        int    `json:"tenure" validate:"required,gt=0,lte=360"`
	Purpose       string `json:"purpose" validate:"required,min=5,max=200"`
	Employment    string `json:"employment"`
	MonthlyIncome int64  `json:"monthlyIncome" validate:"omitempty,gt=0"`
	PAN           string `json:"pan"`
	Aadhar        string `json:"aadhar"`
	CibilScore    int    `json:"cibilScore" validate:"omitempty,gte=300,lte=900"`
}

// AdminLoanApplication is the normalized admin-facing view assembled by the
// aggregator. Amount and income are presentation strings because that is what
// the admin panel renders.
type AdminLoanApplication struct {
	ID              string   `json:"id"`
	Customer        string   `json:"customer"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Type            string   `json:"type"`
	Amount          string   `json:"amount"`
	Status          string   `json:"status"`
	AppliedDate     string   `json:"appliedDate"`
	Tenure          string   `json:"tenure"`
	InterestRate    string   `json:"interestRate"`
	Purpose         string   `json:"purpose"`
	Income          string   `json:"income"`
	CibilScore      int      `json:"cibilScore"`
	Documents       []string `json:"documents"`
	RejectionReason string   `json:"rejectionReason,omitempty"`
}

// AdminLoanCreate is the request body for seeding an admin loan application.
type AdminLoanCreate struct {
	Customer     string   `json:"customer" validate:"required,min=2,max=100"`
	Email        string   `json:"email" validate:"required,email"`
	Phone        string   `json:"phone" validate:"required,min=10,max=15"`
	Type         string   `json:"type" validate:"required"`
	Amount       int64    `json:"amount" validate:"required,gt=0"`
	Tenure       int      `json:"tenure" validate:"required,gt=0,lte=360"`
	InterestRate float64  `json:"interestRate" validate:"required,gt=0,lt=50"`
	Purpose      string   `json:"purpose" validate:"required,min=5,max=200"`
	Income       string   `json:"income"`
	CibilScore   int      `json:"cibilScore" validate:"required,gte=300,lte=900"`
	Documents    []string `json:"documents"`
}

// LoanStatusUpdate is the request body for a status transition.
type LoanStatusUpdate struct {
	Status          string `json:"status" validate:"required"`
	RejectionReason string `json:"rejectionReason"`
}

// LoanStatistics is the admin dashboard statistics payload.
type LoanStatistics struct {
	TotalApplications       int64  `json:"totalApplications"`
	PendingApplications     int64  `json:"pendingApplications"`
	UnderReviewApplications int64  `json:"underReviewApplications"`
	ApprovedApplications    int64  `json:"approvedApplications"`
	RejectedApplications    int64  `json:"rejectedApplications"`
	DisbursedApplications   int64  `json:"disbursedApplications"`
	TotalLoanAmount         string `json:"totalLoanAmount"`
	AverageLoanAmount       string `json:"averageLoanAmount"`
	AverageCibilScore       int    `json:"averageCibilScore"`
	HomeLoanCount           int64  `json:"homeLoanCount"`
	PersonalLoanCount       int64  `json:"personalLoanCount"`
	BusinessLoanCount       int64  `json:"businessLoanCount"`
	ShortTermLoanCount      int64  `json:"shortTermLoanCount"`
}

// EligibilityRequest is the short-term loan eligibility check body.
type EligibilityRequest struct {
	Age           int   `json:"age" validate:"required,gte=18,lte=75"`
	MonthlyIncome int64 `json:"monthlyIncome" validate:"required,gt=0"`
	Amount        int64 `json:"amount" validate:"required,gt=0"`
}

// EligibilityResult is the eligibility check response.
type EligibilityResult struct {
	Eligible  bool   `json:"eligible"`
	MaxAmount int64  `json:"maxAmount"`
	Reason    string `json:"reason,omitempty"`
}
