package models

import "github.com/shopspring/decimal"

// Transfer represents a direct payment between two trip members, settled
// outside the expense-splitting mechanism: typically a user acting on a
// suggested settlement, or cash handed over during the trip.
type Transfer struct {
	// ID is the unique identifier for the transfer (UUID format).
	ID string

	// TripID is the trip this transfer belongs to.
	TripID string

	// FromMemberID is the member who paid.
	FromMemberID string

	// ToMemberID is the member who received the payment.
	ToMemberID string

	// Amount is the payment amount (positive).
	Amount decimal.Decimal

	// CreatedAt is the Unix timestamp when the transfer was recorded.
	CreatedAt int64
}
