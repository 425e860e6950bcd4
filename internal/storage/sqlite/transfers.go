package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tripledger/tripledger/internal/models"
)

// CreateTransfer persists a member-to-member payment.
func (s *SQLiteStore) CreateTransfer(ctx context.Context, transfer *models.Transfer) error {
	if transfer.ID == "" {
		transfer.ID = uuid.New().String()
	}
	if transfer.CreatedAt == 0 {
		transfer.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transfers (id, trip_id, from_member_id, to_member_id, amount, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		transfer.ID, transfer.TripID, transfer.FromMemberID, transfer.ToMemberID,
		transfer.Amount.String(), transfer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transfer: %w", err)
	}

	return nil
}

// ListTransfersByTrip retrieves a trip's transfers, newest first.
func (s *SQLiteStore) ListTransfersByTrip(ctx context.Context, tripID string) ([]*models.Transfer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trip_id, from_member_id, to_member_id, amount, created_at
		 FROM transfers WHERE trip_id = ?
		 ORDER BY created_at DESC, id`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}
	defer rows.Close()

	var transfers []*models.Transfer
	for rows.Next() {
		transfer := &models.Transfer{}
		var amount string
		if err := rows.Scan(&transfer.ID, &transfer.TripID, &transfer.FromMemberID,
			&transfer.ToMemberID, &amount, &transfer.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transfer: %w", err)
		}
		transfer.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse transfer amount %q: %w", amount, err)
		}
		transfers = append(transfers, transfer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transfers: %w", err)
	}

	return transfers, nil
}
