package models

import "github.com/shopspring/decimal"

// Expense represents a bill one member paid on behalf of the trip.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// TripID is the trip this expense belongs to.
	TripID string

	// PayerID is the trip member who fronted the money.
	PayerID string

	// Amount is the full amount paid (positive).
	Amount decimal.Decimal

	// Description is what the expense was for (e.g. "Dinner", "Taxi").
	Description string

	// Date is the Unix timestamp the expense is dated to. Defaults to the
	// trip's most recent expense date when the caller omits it.
	Date int64

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64

	// Shares is the non-empty split of Amount across members. Valid input
	// has share amounts summing to Amount within rounding tolerance; this is
	// enforced at creation, not re-validated downstream.
	Shares []ExpenseShare
}

// ExpenseShare is one member's slice of an expense.
type ExpenseShare struct {
	// MemberID is the trip member this share is allocated to.
	MemberID string

	// ShareAmount is the member's portion of the expense (non-negative).
	ShareAmount decimal.Decimal
}
