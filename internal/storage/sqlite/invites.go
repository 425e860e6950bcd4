package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tripledger/tripledger/internal/models"
	"github.com/tripledger/tripledger/internal/storage"
)

// CreateInvite persists a trip invite.
func (s *SQLiteStore) CreateInvite(ctx context.Context, invite *models.Invite) error {
	if invite.ID == "" {
		invite.ID = uuid.New().String()
	}
	if invite.Token == "" {
		invite.Token = uuid.New().String()
	}
	if invite.Status == "" {
		invite.Status = models.InviteStatusPending
	}
	if invite.CreatedAt == 0 {
		invite.CreatedAt = time.Now().Unix()
	}
	if invite.ExpiresAt == 0 {
		invite.ExpiresAt = invite.CreatedAt + models.InviteTTLSeconds
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO invites (id, trip_id, email, token, invited_by_user_id, status, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		invite.ID, invite.TripID, invite.Email, invite.Token,
		invite.InvitedByUserID, invite.Status, invite.ExpiresAt, invite.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert invite: %w", err)
	}

	return nil
}

// GetInviteByID retrieves an invite by its id.
func (s *SQLiteStore) GetInviteByID(ctx context.Context, id string) (*models.Invite, error) {
	return s.getInvite(ctx, "id", id)
}

// GetInviteByToken retrieves an invite by its link token.
func (s *SQLiteStore) GetInviteByToken(ctx context.Context, token string) (*models.Invite, error) {
	return s.getInvite(ctx, "token", token)
}

func (s *SQLiteStore) getInvite(ctx context.Context, column, value string) (*models.Invite, error) {
	invite := &models.Invite{}
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT id, trip_id, email, token, invited_by_user_id, status, expires_at, created_at
		 FROM invites WHERE %s = ?`, column),
		value,
	).Scan(&invite.ID, &invite.TripID, &invite.Email, &invite.Token,
		&invite.InvitedByUserID, &invite.Status, &invite.ExpiresAt, &invite.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("invite %s=%s: %w", column, value, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invite: %w", err)
	}

	return invite, nil
}

// FindPendingInvite retrieves the pending invite for an email on a trip, if any.
func (s *SQLiteStore) FindPendingInvite(ctx context.Context, tripID, email string) (*models.Invite, error) {
	invite := &models.Invite{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, trip_id, email, token, invited_by_user_id, status, expires_at, created_at
		 FROM invites WHERE trip_id = ? AND email = ? AND status = ?`,
		tripID, email, models.InviteStatusPending,
	).Scan(&invite.ID, &invite.TripID, &invite.Email, &invite.Token,
		&invite.InvitedByUserID, &invite.Status, &invite.ExpiresAt, &invite.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("pending invite for %s: %w", email, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find pending invite: %w", err)
	}

	return invite, nil
}

// ListPendingInvitesByTrip retrieves a trip's pending invites, newest first.
func (s *SQLiteStore) ListPendingInvitesByTrip(ctx context.Context, tripID string) ([]*models.Invite, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trip_id, email, token, invited_by_user_id, status, expires_at, created_at
		 FROM invites WHERE trip_id = ? AND status = ?
		 ORDER BY created_at DESC, id`,
		tripID, models.InviteStatusPending,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}
	defer rows.Close()

	var invites []*models.Invite
	for rows.Next() {
		invite := &models.Invite{}
		if err := rows.Scan(&invite.ID, &invite.TripID, &invite.Email, &invite.Token,
			&invite.InvitedByUserID, &invite.Status, &invite.ExpiresAt, &invite.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan invite: %w", err)
		}
		invites = append(invites, invite)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invites: %w", err)
	}

	return invites, nil
}

// UpdateInviteStatus sets an invite's status.
func (s *SQLiteStore) UpdateInviteStatus(ctx context.Context, inviteID, status string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE invites SET status = ? WHERE id = ?", status, inviteID)
	if err != nil {
		return fmt.Errorf("failed to update invite status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("invite %s: %w", inviteID, storage.ErrNotFound)
	}

	return nil
}
