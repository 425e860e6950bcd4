package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/tripledger/tripledger/internal/models"
	"github.com/tripledger/tripledger/internal/storage"
)

// TransferService records direct member-to-member payments. This is the
// workflow behind acting on a suggested settlement: the calculator proposes
// a payment, the user confirms it, and the confirmation lands here as a
// Transfer the next balance computation will net out.
type TransferService struct {
	store storage.Store
}

// NewTransferService creates a TransferService with the given storage backend.
func NewTransferService(store storage.Store) *TransferService {
	return &TransferService{store: store}
}

// Create records a payment between two trip members.
func (s *TransferService) Create(ctx context.Context, tripID, userID, fromMemberID, toMemberID string, amount decimal.Decimal) (*models.Transfer, error) {
	if _, err := s.store.GetTripMember(ctx, tripID, userID); err != nil {
		return nil, fmt.Errorf("%w: not a member of this trip", ErrForbidden)
	}

	if fromMemberID == "" || toMemberID == "" {
		return nil, fmt.Errorf("%w: from and to members are required", ErrInvalidArgument)
	}
	if fromMemberID == toMemberID {
		return nil, fmt.Errorf("%w: cannot transfer to the same member", ErrInvalidArgument)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidArgument)
	}

	members, err := s.store.ListTripMembers(ctx, tripID)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(members))
	for _, m := range members {
		known[m.ID] = true
	}
	if !known[fromMemberID] || !known[toMemberID] {
		return nil, fmt.Errorf("%w: both parties must be members of this trip", ErrInvalidArgument)
	}

	transfer := &models.Transfer{
		TripID:       tripID,
		FromMemberID: fromMemberID,
		ToMemberID:   toMemberID,
		Amount:       amount,
	}
	if err := s.store.CreateTransfer(ctx, transfer); err != nil {
		slog.Error("create transfer failed", "trip_id", tripID, "error", err)
		return nil, err
	}

	slog.Info("transfer recorded",
		"trip_id", tripID,
		"transfer_id", transfer.ID,
		"amount", transfer.Amount.String(),
	)
	return transfer, nil
}

// List returns the trip's transfers, newest first.
func (s *TransferService) List(ctx context.Context, tripID, userID string) ([]*models.Transfer, error) {
	if _, err := s.store.GetTripMember(ctx, tripID, userID); err != nil {
		return nil, fmt.Errorf("%w: not a member of this trip", ErrForbidden)
	}
	return s.store.ListTransfersByTrip(ctx, tripID)
}
