// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/tripledger/tripledger/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the persistence operations for the trip ledger. The
// abstraction allows swapping storage backends (SQLite, PostgreSQL, ...)
// without changing the service layer.
type Store interface {
	// Users.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// Trips. CreateTrip also records the creator as the owner member.
	// GetTrip returns the trip with members and their users populated.
	CreateTrip(ctx context.Context, trip *models.Trip, owner *models.TripMember) error
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)
	GetTripByShareLink(ctx context.Context, link string) (*models.Trip, error)
	ListTripsByUser(ctx context.Context, userID string) ([]*models.Trip, error)
	DeleteTrip(ctx context.Context, tripID string) error

	// Membership.
	AddTripMember(ctx context.Context, member *models.TripMember) error
	GetTripMember(ctx context.Context, tripID, userID string) (*models.TripMember, error)
	ListTripMembers(ctx context.Context, tripID string) ([]*models.TripMember, error)

	// Expenses. CreateExpense writes the expense and its shares atomically.
	// ListExpensesByTrip returns expenses newest-dated first, shares populated.
	CreateExpense(ctx context.Context, expense *models.Expense) error
	ListExpensesByTrip(ctx context.Context, tripID string) ([]*models.Expense, error)

	// Transfers, newest first.
	CreateTransfer(ctx context.Context, transfer *models.Transfer) error
	ListTransfersByTrip(ctx context.Context, tripID string) ([]*models.Transfer, error)

	// Invites.
	CreateInvite(ctx context.Context, invite *models.Invite) error
	GetInviteByID(ctx context.Context, id string) (*models.Invite, error)
	GetInviteByToken(ctx context.Context, token string) (*models.Invite, error)
	FindPendingInvite(ctx context.Context, tripID, email string) (*models.Invite, error)
	ListPendingInvitesByTrip(ctx context.Context, tripID string) ([]*models.Invite, error)
	UpdateInviteStatus(ctx context.Context, inviteID, status string) error

	// Notifications, newest first.
	CreateNotification(ctx context.Context, n *models.Notification) error
	GetNotification(ctx context.Context, id string) (*models.Notification, error)
	ListNotificationsByUser(ctx context.Context, userID string) ([]*models.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}
