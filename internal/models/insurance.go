package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Insurance collection names. Each product keeps its own inquiry and
// application collections; insurance_policies is the shared admin mirror.
const (
	CollHealthInquiries    = "health_insurance_inquiries"
	CollMotorInquiries     = "motor_insurance_inquiries"
	CollTermInquiries      = "term_insurance_inquiries"
	CollHealthApplications = "health_insurance_applications"
	CollMotorApplications  = "motor_insurance_applications"
	CollTermApplications   = "term_insurance_applications"
	CollInsurancePolicies  = "insurance_policies"
)

// Insurance product display names
const (
	InsuranceTypeHealth = "Health Insurance"
	InsuranceTypeMotor  = "Motor Insurance"
	InsuranceTypeTerm   = "Term Insurance"
)

// InquiryCollections maps insurance inquiry collections to their product name,
// for the admin reports distribution.
var InquiryCollections = []struct {
	Name string
	Type string
}{
	{CollHealthInquiries, "Health"},
	{CollMotorInquiries, "Motor"},
	{CollTermInquiries, "Term"},
}

// InsuranceInquiry is a contact-form inquiry for any insurance product.
type InsuranceInquiry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	Product   string             `bson:"product" json:"product"`
	Message   string             `bson:"message,omitempty" json:"message,omitempty"`
	Status    InquiryStatus      `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// InquiryCreate is the request body for an insurance inquiry.
type InquiryCreate struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,min=10,max=15"`
	Message string `json:"message" validate:"max=500"`
}

// InsuranceApplication is a full product application with KYC document paths.
type InsuranceApplication struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            string             `bson:"userId,omitempty" json:"userId,omitempty"`
	ApplicationNumber string             `bson:"applicationNumber" json:"applicationNumber"`
	Name              string             `bson:"name" json:"name"`
	Email             string             `bson:"email" json:"email"`
	Phone             string             `bson:"phone" json:"phone"`
	Product           string             `bson:"product" json:"product"`
	CoverageAmount    string             `bson:"coverageAmount" json:"coverageAmount"`
	PolicyType        string             `bson:"policyType,omitempty" json:"policyType,omitempty"`
	Address           string             `bson:"address,omitempty" json:"address,omitempty"`
	City              string             `bson:"city,omitempty" json:"city,omitempty"`
	State             string             `bson:"state,omitempty" json:"state,omitempty"`
	Pincode           string             `bson:"pincode,omitempty" json:"pincode,omitempty"`
	Aadhar            string             `bson:"aadhar,omitempty" json:"aadhar,omitempty"`
	PAN               string             `bson:"pan,omitempty" json:"pan,omitempty"`
	Photo             string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Nominee           string             `bson:"nominee,omitempty" json:"nominee,omitempty"`
	Status            LoanStatus         `bson:"status" json:"status"`
	RejectionReason   string             `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	SubmittedAt       time.Time          `bson:"submittedAt" json:"submittedAt"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// InsuranceApplicationCreate is the request body for a product application.
// Document fields carry stored upload paths; multipart handling lives outside
// this service.
type InsuranceApplicationCreate struct {
	Name           string `json:"name" validate:"required,min=2,max=100"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required,min=10,max=15"`
	CoverageAmount string `json:"coverageAmount" validate:"required"`
	PolicyType     string `json:"policyType"`
	Address        string `json:"address"`
	City           string `json:"city"`
	State          string `json:"state"`
	Pincode        string `json:"pincode"`
	Aadhar         string `json:"aadhar"`
	PAN            string `json:"pan"`
	Photo          string `json:"photo"`
	Nominee        string `json:"nominee"`
}

// InsurancePolicy is the denormalized record mirrored into insurance_policies
// for the admin panel. It is created best-effort after an application write
// and is not authoritative.
type InsurancePolicy struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Customer  string             `bson:"customer" json:"customer"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	Type      string             `bson:"type" json:"type"`
	Premium   string             `bson:"premium" json:"premium"`
	Coverage  string             `bson:"coverage" json:"coverage"`
	StartDate string             `bson:"startDate" json:"startDate"`
	EndDate   string             `bson:"endDate" json:"endDate"`
	Status    PolicyStatus       `bson:"status" json:"status"`
	Nominee   string             `bson:"nominee,omitempty" json:"nominee,omitempty"`
	Documents []string           `bson:"documents" json:"documents"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
