package loan

import domain "autolend-backend/internal/domain/loan"

// MaxLoanToValue caps how much of a vehicle's appraised value can be lent.
const MaxLoanToValue = 0.7

// ApprovedAmount clamps the requested amount at the loan-to-value ceiling.
// Inputs are assumed validated positive; a zero estimate yields zero.
func ApprovedAmount(requested, estimatedValue float64) float64 {
	ceiling := estimatedValue * MaxLoanToValue
	if requested < ceiling {
		return requested
	}
	return ceiling
}

// InitialStatus decides the status a freshly submitted loan starts in.
// Full approval when the approved amount covers the request, rejection when
// nothing could be approved, otherwise a partial counter-offer.
func InitialStatus(requested, approved float64) domain.Status {
	if approved >= requested {
		return domain.StatusApproved
	}
	if approved == 0 {
		return domain.StatusRejected
	}
	return domain.StatusOffered
}
