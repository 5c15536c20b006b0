package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CollInvestments            = "investments"
	CollInvestmentTransactions = "investment_transactions"
	CollSIPInquiries           = "sip_inquiries"
)

// Investment transaction types
const (
	TxnTypeLumpsum    = "Lumpsum Investment"
	TxnTypeSIP        = "SIP Installment"
	TxnTypeRedemption = "Redemption"
)

// Investment is a user's holding in a fund. Invested and Current are mutated
// in place by invest-more and redemption; the transaction log is append-only
// and is never used to rederive these values, so the two can drift.
type Investment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserEmail   string             `bson:"userEmail" json:"userEmail"`
	Name        string             `bson:"name" json:"name"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Invested    float64            `bson:"invested" json:"invested"`
	Current     float64            `bson:"current" json:"current"`
	Units       float64            `bson:"units" json:"units"`
	NAV         float64            `bson:"nav" json:"nav"`
	Returns     float64            `bson:"returns" json:"returns"`
	ReturnsType string             `bson:"returnsType" json:"returnsType"`
	ExitLoad    string             `bson:"exitLoad,omitempty" json:"exitLoad,omitempty"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// InvestmentTransaction is one append-only entry in the transaction history.
type InvestmentTransaction struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserEmail    string             `bson:"userEmail" json:"userEmail"`
	Type         string             `bson:"type" json:"type"`
	Fund         string             `bson:"fund" json:"fund"`
	Amount       float64            `bson:"amount" json:"amount"`
	Date         string             `bson:"date" json:"date"`
	Status       string             `bson:"status" json:"status"`
	InvestmentID string             `bson:"investmentId" json:"investmentId"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// PortfolioSummary is the aggregate view of a user's holdings.
type PortfolioSummary struct {
	TotalInvested float64 `json:"totalInvested"`
	CurrentValue  float64 `json:"currentValue"`
	TotalReturns  float64 `json:"totalReturns"`
	ReturnsPct    float64 `json:"returnsPct"`
	ActiveFunds   int     `json:"activeFunds"`
}

// InvestmentAmountRequest is the invest-more / redemption body.
type InvestmentAmountRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// SIPInquiry is an inbound SIP/mutual-fund interest form.
type SIPInquiry struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	Phone         string             `bson:"phone" json:"phone"`
	MonthlyAmount int64              `bson:"monthlyAmount,omitempty" json:"monthlyAmount,omitempty"`
	Status        InquiryStatus      `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// SIPInquiryCreate is the request body for a SIP inquiry.
type SIPInquiryCreate struct {
	Name          string `json:"name" validate:"required,min=2,max=100"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required,min=10,max=15"`
	MonthlyAmount int64  `json:"monthlyAmount" validate:"omitempty,gt=0"`
}
