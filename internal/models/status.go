package models

import "strings"

// LoanStatus is the lifecycle state of a loan application.
// Stored as the display string so existing documents keep working.
type LoanStatus string

const (
	StatusPending     LoanStatus = "Pending"
	StatusUnderReview LoanStatus = "Under Review"
	StatusApproved    LoanStatus = "Approved"
	StatusRejected    LoanStatus = "Rejected"
	StatusDisbursed   LoanStatus = "Disbursed"
)

// AllLoanStatuses lists every valid status in lifecycle order.
var AllLoanStatuses = []LoanStatus{
	StatusPending,
	StatusUnderReview,
	StatusApproved,
	StatusRejected,
	StatusDisbursed,
}

// ParseLoanStatus resolves a free-form status string to the closed enum.
// Matching is case-insensitive but exact ("under review" matches, "under" does not).
func ParseLoanStatus(s string) (LoanStatus, bool) {
	normalized := strings.TrimSpace(s)
	for _, status := range AllLoanStatuses {
		if strings.EqualFold(normalized, string(status)) {
			return status, true
		}
	}
	// Old documents sometimes carry "Review" for "Under Review".
	if strings.EqualFold(normalized, "review") {
		return StatusUnderReview, true
	}
	return "", false
}

// String implements fmt.Stringer.
func (s LoanStatus) String() string { return string(s) }

// ValidateTransition reports whether an application may move from one status
// to another. Every transition is allowed; the only guarded rule is that a
// move to Rejected must carry a non-empty rejection reason. Callers enforce
// that rule at the API boundary before the store is touched.
func ValidateTransition(from, to LoanStatus, rejectionReason string) error {
	if _, ok := ParseLoanStatus(string(to)); !ok {
		return ErrUnknownStatus
	}
	if to == StatusRejected && strings.TrimSpace(rejectionReason) == "" {
		return ErrRejectionReasonRequired
	}
	return nil
}

// InquiryStatus tracks inbound product inquiries.
type InquiryStatus string

const (
	InquiryPending   InquiryStatus = "Pending"
	InquiryContacted InquiryStatus = "Contacted"
	InquiryConverted InquiryStatus = "Converted"
	InquiryClosed    InquiryStatus = "Closed"
)

// ParseInquiryStatus resolves a status string for inquiries, case-insensitively.
func ParseInquiryStatus(s string) (InquiryStatus, bool) {
	for _, status := range []InquiryStatus{InquiryPending, InquiryContacted, InquiryConverted, InquiryClosed} {
		if strings.EqualFold(strings.TrimSpace(s), string(status)) {
			return status, true
		}
	}
	return "", false
}

// PolicyStatus tracks mirrored insurance policy records.
type PolicyStatus string

const (
	PolicyPending PolicyStatus = "Pending"
	PolicyActive  PolicyStatus = "Active"
	PolicyExpired PolicyStatus = "Expired"
	PolicyLapsed  PolicyStatus = "Lapsed"
)

// ContactStatus tracks contact form submissions.
type ContactStatus string

const (
	ContactNew        ContactStatus = "New"
	ContactInProgress ContactStatus = "In Progress"
	ContactResolved   ContactStatus = "Resolved"
)

// ParseContactStatus resolves a contact submission status, case-insensitively.
func ParseContactStatus(s string) (ContactStatus, bool) {
	for _, status := range []ContactStatus{ContactNew, ContactInProgress, ContactResolved} {
		if strings.EqualFold(strings.TrimSpace(s), string(status)) {
			return status, true
		}
	}
	return "", false
}
