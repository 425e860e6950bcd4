package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tripledger/tripledger/internal/calculator"
	"github.com/tripledger/tripledger/internal/metrics"
	"github.com/tripledger/tripledger/internal/models"
	"github.com/tripledger/tripledger/internal/storage"
)

// TripService manages trips and runs the balance calculator over them.
type TripService struct {
	store storage.Store
}

// NewTripService creates a TripService with the given storage backend.
func NewTripService(store storage.Store) *TripService {
	return &TripService{store: store}
}

// CreateTripInput carries the caller-supplied trip fields.
type CreateTripInput struct {
	Name        string
	Description string
	Location    string
	StartDate   int64
	EndDate     int64
	Currency    string
}

// Create creates a trip with the acting user as owner.
func (s *TripService) Create(ctx context.Context, userID string, in CreateTripInput) (*models.Trip, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: trip name is required", ErrInvalidArgument)
	}

	trip := &models.Trip{
		Name:        in.Name,
		Description: in.Description,
		Location:    in.Location,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Currency:    in.Currency,
	}
	owner := &models.TripMember{UserID: userID}

	if err := s.store.CreateTrip(ctx, trip, owner); err != nil {
		slog.Error("create trip failed", "user_id", userID, "error", err)
		return nil, err
	}

	slog.Info("trip created", "trip_id", trip.ID, "owner", userID)
	return s.store.GetTrip(ctx, trip.ID)
}

// List returns all trips the user belongs to, newest first.
func (s *TripService) List(ctx context.Context, userID string) ([]*models.Trip, error) {
	return s.store.ListTripsByUser(ctx, userID)
}

// Get returns a trip if the user is a member of it.
func (s *TripService) Get(ctx context.Context, tripID, userID string) (*models.Trip, error) {
	if _, err := s.store.GetTripMember(ctx, tripID, userID); err != nil {
		return nil, fmt.Errorf("%w: not a member of this trip", ErrForbidden)
	}
	return s.store.GetTrip(ctx, tripID)
}

// Delete removes a trip. Only the owner may delete it.
func (s *TripService) Delete(ctx context.Context, tripID, userID string) error {
	member, err := s.store.GetTripMember(ctx, tripID, userID)
	if err != nil {
		return fmt.Errorf("%w: not a member of this trip", ErrForbidden)
	}
	if member.Role != models.RoleOwner {
		return fmt.Errorf("%w: only the trip owner can delete it", ErrForbidden)
	}

	if err := s.store.DeleteTrip(ctx, tripID); err != nil {
		return err
	}

	slog.Info("trip deleted", "trip_id", tripID, "user_id", userID)
	return nil
}

// BalanceReport bundles the three calculator outputs for one trip snapshot.
type BalanceReport struct {
	Balances    []calculator.MemberBalance
	Settlements []calculator.Settlement
	DebtMatrix  map[string]map[string]decimal.Decimal

	// Residual is the unmatched amount the settlement planner reported.
	// Non-zero beyond the cent epsilon means the stored ledger is
	// inconsistent; the plan is still returned but should be flagged.
	Residual decimal.Decimal
}

// Balances loads the trip's current snapshot and runs the calculator over it.
func (s *TripService) Balances(ctx context.Context, tripID, userID string) (*BalanceReport, error) {
	trip, err := s.Get(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpensesByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	transfers, err := s.store.ListTransfersByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	// Resolve everything to canonical member ids before the calculator sees
	// it; the engine accepts no ambiguous shapes.
	members := make([]calculator.Member, len(trip.Members))
	memberIDs := make([]string, len(trip.Members))
	for i, m := range trip.Members {
		members[i] = calculator.Member{ID: m.ID, Name: m.DisplayName()}
		memberIDs[i] = m.ID
	}

	calcExpenses := make([]calculator.Expense, len(expenses))
	for i, e := range expenses {
		shares := make([]calculator.Share, len(e.Shares))
		for j, sh := range e.Shares {
			shares[j] = calculator.Share{MemberID: sh.MemberID, ShareAmount: sh.ShareAmount}
		}
		calcExpenses[i] = calculator.Expense{Amount: e.Amount, PayerID: e.PayerID, Shares: shares}
	}

	calcTransfers := make([]calculator.Transfer, len(transfers))
	for i, t := range transfers {
		calcTransfers[i] = calculator.Transfer{
			Amount:       t.Amount,
			FromMemberID: t.FromMemberID,
			ToMemberID:   t.ToMemberID,
		}
	}

	balances := calculator.CalculateBalances(members, calcExpenses, calcTransfers)
	settlements, residual := calculator.CalculateSettlements(balances)
	matrix := calculator.CalculateDebtMatrix(memberIDs, calcExpenses)

	inconsistent := residual.Abs().GreaterThanOrEqual(decimal.NewFromFloat(0.01))
	metrics.ObserveBalanceComputation(inconsistent)
	if inconsistent {
		slog.Warn("settlement plan left unmatched residual",
			"trip_id", tripID, "residual", residual.String())
	}

	return &BalanceReport{
		Balances:    balances,
		Settlements: settlements,
		DebtMatrix:  matrix,
		Residual:    residual,
	}, nil
}
