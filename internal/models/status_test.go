package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLoanStatus(t *testing.T) {
	tests := []struct {
		in     string
		want   LoanStatus
		wantOK bool
	}{
		{"Pending", StatusPending, true},
		{"pending", StatusPending, true},
		{"UNDER REVIEW", StatusUnderReview, true},
		{" Approved ", StatusApproved, true},
		{"rejected", StatusRejected, true},
		{"Disbursed", StatusDisbursed, true},
		// Legacy alias carried by old documents.
		{"Review", StatusUnderReview, true},
		// Exact matching only, no substring hits.
		{"under", "", false},
		{"pend", "", false},
		{"Approved!", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLoanStatus(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateTransition(t *testing.T) {
	t.Run("any state is reachable from any other", func(t *testing.T) {
		for _, from := range AllLoanStatuses {
			for _, to := range AllLoanStatuses {
				reason := ""
				if to == StatusRejected {
					reason = "incomplete documents"
				}
				assert.NoError(t, ValidateTransition(from, to, reason),
					"%s -> %s should be allowed", from, to)
			}
		}
	})

	t.Run("rejection requires a reason", func(t *testing.T) {
		err := ValidateTransition(StatusUnderReview, StatusRejected, "")
		assert.ErrorIs(t, err, ErrRejectionReasonRequired)

		err = ValidateTransition(StatusUnderReview, StatusRejected, "   ")
		assert.ErrorIs(t, err, ErrRejectionReasonRequired)

		err = ValidateTransition(StatusUnderReview, StatusRejected, "low CIBIL score")
		assert.NoError(t, err)
	})

	t.Run("unknown target status", func(t *testing.T) {
		err := ValidateTransition(StatusPending, LoanStatus("Archived"), "")
		assert.ErrorIs(t, err, ErrUnknownStatus)
	})
}

func TestParseInquiryStatus(t *testing.T) {
	got, ok := ParseInquiryStatus("contacted")
	assert.True(t, ok)
	assert.Equal(t, InquiryContacted, got)

	_, ok = ParseInquiryStatus("bogus")
	assert.False(t, ok)
}

func TestParseContactStatus(t *testing.T) {
	got, ok := ParseContactStatus("in progress")
	assert.True(t, ok)
	assert.Equal(t, ContactInProgress, got)

	_, ok = ParseContactStatus("done")
	assert.False(t, ok)
}
