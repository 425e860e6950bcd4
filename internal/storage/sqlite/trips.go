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

// CreateTrip persists a trip and its owner membership in one transaction.
func (s *SQLiteStore) CreateTrip(ctx context.Context, trip *models.Trip, owner *models.TripMember) error {
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	if trip.ShareLink == "" {
		trip.ShareLink = uuid.New().String()
	}
	if trip.Currency == "" {
		trip.Currency = models.DefaultCurrency
	}
	if trip.CreatedAt == 0 {
		trip.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO trips (id, name, description, location, start_date, end_date, currency, share_link, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		trip.ID, trip.Name, trip.Description, trip.Location,
		trip.StartDate, trip.EndDate, trip.Currency, trip.ShareLink, trip.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	owner.TripID = trip.ID
	owner.Role = models.RoleOwner
	if owner.ID == "" {
		owner.ID = uuid.New().String()
	}
	if owner.JoinedAt == 0 {
		owner.JoinedAt = trip.CreatedAt
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO trip_members (id, trip_id, user_id, role, joined_at) VALUES (?, ?, ?, ?, ?)",
		owner.ID, owner.TripID, owner.UserID, owner.Role, owner.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert owner member: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetTrip retrieves a trip by ID with members and their users populated.
func (s *SQLiteStore) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	return s.getTrip(ctx, "id", tripID)
}

// GetTripByShareLink retrieves a trip by its unique share link token.
func (s *SQLiteStore) GetTripByShareLink(ctx context.Context, link string) (*models.Trip, error) {
	return s.getTrip(ctx, "share_link", link)
}

func (s *SQLiteStore) getTrip(ctx context.Context, column, value string) (*models.Trip, error) {
	trip := &models.Trip{}
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT id, name, description, location, start_date, end_date, currency, share_link, created_at
		 FROM trips WHERE %s = ?`, column),
		value,
	).Scan(&trip.ID, &trip.Name, &trip.Description, &trip.Location,
		&trip.StartDate, &trip.EndDate, &trip.Currency, &trip.ShareLink, &trip.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("trip %s=%s: %w", column, value, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	members, err := s.ListTripMembers(ctx, trip.ID)
	if err != nil {
		return nil, err
	}
	trip.Members = members

	return trip, nil
}

// ListTripsByUser retrieves all trips the user is a member of, newest first.
// Members are populated so callers can render participant lists.
func (s *SQLiteStore) ListTripsByUser(ctx context.Context, userID string) ([]*models.Trip, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT t.id FROM trips t
		 JOIN trip_members tm ON tm.trip_id = t.id
		 WHERE tm.user_id = ?
		 ORDER BY t.created_at DESC, t.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips by user: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan trip id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trips: %w", err)
	}

	trips := make([]*models.Trip, 0, len(ids))
	for _, id := range ids {
		trip, err := s.GetTrip(ctx, id)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}

	return trips, nil
}

// DeleteTrip removes a trip; membership, expenses, shares, transfers, and
// invites cascade.
func (s *SQLiteStore) DeleteTrip(ctx context.Context, tripID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM trips WHERE id = ?", tripID)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("trip %s: %w", tripID, storage.ErrNotFound)
	}

	return nil
}

// AddTripMember records a user joining a trip.
func (s *SQLiteStore) AddTripMember(ctx context.Context, member *models.TripMember) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.Role == "" {
		member.Role = models.RoleMember
	}
	if member.JoinedAt == 0 {
		member.JoinedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO trip_members (id, trip_id, user_id, role, joined_at) VALUES (?, ?, ?, ?, ?)",
		member.ID, member.TripID, member.UserID, member.Role, member.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip member: %w", err)
	}

	return nil
}

// GetTripMember retrieves a membership by trip and user.
func (s *SQLiteStore) GetTripMember(ctx context.Context, tripID, userID string) (*models.TripMember, error) {
	member := &models.TripMember{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, trip_id, user_id, role, joined_at FROM trip_members WHERE trip_id = ? AND user_id = ?",
		tripID, userID,
	).Scan(&member.ID, &member.TripID, &member.UserID, &member.Role, &member.JoinedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("member of trip %s: %w", tripID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip member: %w", err)
	}

	return member, nil
}

// ListTripMembers retrieves a trip's members with user identity populated,
// in join order so balance calculations see a deterministic member order.
func (s *SQLiteStore) ListTripMembers(ctx context.Context, tripID string) ([]*models.TripMember, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tm.id, tm.trip_id, tm.user_id, tm.role, tm.joined_at,
		        u.id, u.name, u.email, u.username, u.image, u.created_at
		 FROM trip_members tm
		 JOIN users u ON u.id = tm.user_id
		 WHERE tm.trip_id = ?
		 ORDER BY tm.joined_at, tm.id`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trip members: %w", err)
	}
	defer rows.Close()

	var members []*models.TripMember
	for rows.Next() {
		member := &models.TripMember{User: &models.User{}}
		if err := rows.Scan(
			&member.ID, &member.TripID, &member.UserID, &member.Role, &member.JoinedAt,
			&member.User.ID, &member.User.Name, &member.User.Email,
			&member.User.Username, &member.User.Image, &member.User.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan trip member: %w", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trip members: %w", err)
	}

	return members, nil
}
