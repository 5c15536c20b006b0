package models

import "errors"

var (
	// ErrUnknownStatus is returned when a status string is not part of the closed enum.
	ErrUnknownStatus = errors.New("unknown application status")

	// ErrRejectionReasonRequired is returned when an application is rejected
	// without a reason.
	ErrRejectionReasonRequired = errors.New("rejection reason is required when rejecting an application")

	// ErrNotFound is the soft not-found sentinel used by repositories.
	ErrNotFound = errors.New("record not found")

	// ErrRedemptionExceedsValue is returned when a redemption request asks for
	// more than the holding's current value.
	ErrRedemptionExceedsValue = errors.New("redemption amount cannot exceed current value")
)
