package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tripledger/tripledger/internal/models"
	"github.com/tripledger/tripledger/internal/storage"
)

// ExpenseService records expenses and their splits.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates an ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// CreateExpenseInput carries the caller-supplied expense fields.
// ParticipantIDs are trip member ids; empty means every trip member.
type CreateExpenseInput struct {
	PayerID        string
	Amount         decimal.Decimal
	Description    string
	Date           int64
	ParticipantIDs []string
}

// Create records an expense split equally across the participants. The acting
// user must be a trip member, the payer and every participant must belong to
// the trip, and the amount must be positive.
//
// When no date is given the expense inherits the trip's most recent expense
// date (so a batch of receipts entered after the fact lands on the same day),
// falling back to now for the trip's first expense.
func (s *ExpenseService) Create(ctx context.Context, tripID, userID string, in CreateExpenseInput) (*models.Expense, error) {
	if _, err := s.store.GetTripMember(ctx, tripID, userID); err != nil {
		return nil, fmt.Errorf("%w: not a member of this trip", ErrForbidden)
	}

	if in.PayerID == "" || strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: payer and description are required", ErrInvalidArgument)
	}
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidArgument)
	}

	members, err := s.store.ListTripMembers(ctx, tripID)
	if err != nil {
		return nil, err
	}
	memberIDs := make(map[string]bool, len(members))
	for _, m := range members {
		memberIDs[m.ID] = true
	}

	if !memberIDs[in.PayerID] {
		return nil, fmt.Errorf("%w: payer is not a member of this trip", ErrInvalidArgument)
	}

	participants := in.ParticipantIDs
	if len(participants) == 0 {
		participants = make([]string, len(members))
		for i, m := range members {
			participants[i] = m.ID
		}
	}
	for _, id := range participants {
		if !memberIDs[id] {
			return nil, fmt.Errorf("%w: participant %s is not a member of this trip", ErrInvalidArgument, id)
		}
	}

	shareAmount := in.Amount.Div(decimal.NewFromInt(int64(len(participants))))
	shares := make([]models.ExpenseShare, len(participants))
	for i, id := range participants {
		shares[i] = models.ExpenseShare{MemberID: id, ShareAmount: shareAmount}
	}

	date := in.Date
	if date == 0 {
		if latest, err := s.store.ListExpensesByTrip(ctx, tripID); err == nil && len(latest) > 0 {
			date = latest[0].Date
		}
	}

	expense := &models.Expense{
		TripID:      tripID,
		PayerID:     in.PayerID,
		Amount:      in.Amount,
		Description: in.Description,
		Date:        date,
		Shares:      shares,
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("create expense failed", "trip_id", tripID, "error", err)
		return nil, err
	}

	slog.Info("expense created",
		"trip_id", tripID,
		"expense_id", expense.ID,
		"amount", expense.Amount.String(),
		"participants", len(participants),
	)
	return expense, nil
}

// List returns the trip's expenses, newest-dated first.
func (s *ExpenseService) List(ctx context.Context, tripID, userID string) ([]*models.Expense, error) {
	if _, err := s.store.GetTripMember(ctx, tripID, userID); err != nil {
		return nil, fmt.Errorf("%w: not a member of this trip", ErrForbidden)
	}
	return s.store.ListExpensesByTrip(ctx, tripID)
}
