package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tripledger/tripledger/internal/models"
	"github.com/tripledger/tripledger/internal/storage"
)

// InviteService manages trip invitations and the notifications they produce.
type InviteService struct {
	store storage.Store
}

// NewInviteService creates an InviteService with the given storage backend.
func NewInviteService(store storage.Store) *InviteService {
	return &InviteService{store: store}
}

// CreateResult is the outcome of sending an invite.
type CreateResult struct {
	Invite *models.Invite
	// UserExists reports whether the invitee already has an account, in
	// which case an in-app notification was created for them.
	UserExists bool
}

// Create sends an invite to an email address. The acting user must be a trip
// member; duplicate members and duplicate pending invites are rejected. When
// the invitee already has an account a trip_invite notification is recorded.
func (s *InviteService) Create(ctx context.Context, tripID, userID, email string) (*CreateResult, error) {
	inviter, err := s.store.GetTripMember(ctx, tripID, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: not a member of this trip", ErrForbidden)
	}

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidArgument)
	}

	invitee, err := s.store.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	if invitee != nil {
		if _, err := s.store.GetTripMember(ctx, tripID, invitee.ID); err == nil {
			return nil, fmt.Errorf("%w: user is already a member", ErrConflict)
		}
	}

	if _, err := s.store.FindPendingInvite(ctx, tripID, email); err == nil {
		return nil, fmt.Errorf("%w: invite already sent to this email", ErrConflict)
	}

	invite := &models.Invite{
		TripID:          tripID,
		Email:           email,
		InvitedByUserID: userID,
	}
	if err := s.store.CreateInvite(ctx, invite); err != nil {
		slog.Error("create invite failed", "trip_id", tripID, "error", err)
		return nil, err
	}

	result := &CreateResult{Invite: invite}

	if invitee != nil {
		trip, err := s.store.GetTrip(ctx, tripID)
		if err != nil {
			return nil, err
		}
		inviterUser, err := s.store.GetUserByID(ctx, inviter.UserID)
		if err != nil {
			return nil, err
		}
		notification := &models.Notification{
			UserID:   invitee.ID,
			Type:     models.NotificationTripInvite,
			Title:    "Trip Invitation",
			Message:  fmt.Sprintf("%s invited you to join %q", inviterUser.DisplayName(), trip.Name),
			TripID:   tripID,
			InviteID: invite.ID,
		}
		if err := s.store.CreateNotification(ctx, notification); err != nil {
			return nil, err
		}
		result.UserExists = true
	}

	slog.Info("invite created",
		"trip_id", tripID,
		"invite_id", invite.ID,
		"notified", result.UserExists,
	)
	return result, nil
}

// ListPending returns a trip's pending invites.
func (s *InviteService) ListPending(ctx context.Context, tripID, userID string) ([]*models.Invite, error) {
	if _, err := s.store.GetTripMember(ctx, tripID, userID); err != nil {
		return nil, fmt.Errorf("%w: not a member of this trip", ErrForbidden)
	}
	return s.store.ListPendingInvitesByTrip(ctx, tripID)
}

// Lookup resolves a token to an invite and its trip. The trip's share link
// doubles as an open invite: when no invite carries the token, a trip whose
// share link matches is returned with a nil Invite.
type Lookup struct {
	Invite *models.Invite
	Trip   *models.Trip
}

// Get resolves an invite token or trip share link.
func (s *InviteService) Get(ctx context.Context, token string) (*Lookup, error) {
	invite, err := s.store.GetInviteByToken(ctx, token)
	if err == nil {
		trip, err := s.store.GetTrip(ctx, invite.TripID)
		if err != nil {
			return nil, err
		}
		return &Lookup{Invite: invite, Trip: trip}, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	trip, err := s.store.GetTripByShareLink(ctx, token)
	if err != nil {
		return nil, err
	}
	return &Lookup{Trip: trip}, nil
}

// Accept joins the acting user to the invite's trip. Share-link tokens join
// directly; emailed invites must be pending and unexpired.
func (s *InviteService) Accept(ctx context.Context, token, userID string) (*models.Trip, error) {
	lookup, err := s.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	if lookup.Invite != nil {
		if lookup.Invite.Status != models.InviteStatusPending {
			return nil, fmt.Errorf("%w: invite is no longer valid", ErrConflict)
		}
		if lookup.Invite.ExpiresAt < time.Now().Unix() {
			return nil, fmt.Errorf("%w: invite has expired", ErrConflict)
		}
	}

	if _, err := s.store.GetTripMember(ctx, lookup.Trip.ID, userID); err == nil {
		return nil, fmt.Errorf("%w: already a member", ErrConflict)
	}

	member := &models.TripMember{TripID: lookup.Trip.ID, UserID: userID}
	if err := s.store.AddTripMember(ctx, member); err != nil {
		return nil, err
	}

	if lookup.Invite != nil {
		if err := s.store.UpdateInviteStatus(ctx, lookup.Invite.ID, models.InviteStatusAccepted); err != nil {
			return nil, err
		}
	}

	slog.Info("invite accepted", "trip_id", lookup.Trip.ID, "user_id", userID)
	return s.store.GetTrip(ctx, lookup.Trip.ID)
}

// Revoke cancels a pending invite. The acting user must be a trip member.
func (s *InviteService) Revoke(ctx context.Context, token, userID string) error {
	invite, err := s.store.GetInviteByToken(ctx, token)
	if err != nil {
		return err
	}
	if _, err := s.store.GetTripMember(ctx, invite.TripID, userID); err != nil {
		return fmt.Errorf("%w: not a member of this trip", ErrForbidden)
	}
	if invite.Status != models.InviteStatusPending {
		return fmt.Errorf("%w: invite is not pending", ErrConflict)
	}

	if err := s.store.UpdateInviteStatus(ctx, invite.ID, models.InviteStatusRevoked); err != nil {
		return err
	}

	slog.Info("invite revoked", "invite_id", invite.ID, "user_id", userID)
	return nil
}

// Notifications returns the user's notifications, newest first.
func (s *InviteService) Notifications(ctx context.Context, userID string) ([]*models.Notification, error) {
	return s.store.ListNotificationsByUser(ctx, userID)
}

// AcceptNotification accepts a trip invite from its notification: joins the
// trip, marks the invite accepted, and marks the notification read.
func (s *InviteService) AcceptNotification(ctx context.Context, notificationID, userID string) (*models.Trip, error) {
	n, err := s.store.GetNotification(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, fmt.Errorf("%w: notification belongs to another user", ErrForbidden)
	}
	if n.Type != models.NotificationTripInvite || n.InviteID == "" || n.TripID == "" {
		return nil, fmt.Errorf("%w: notification is not an invite", ErrInvalidArgument)
	}

	invite, err := s.store.GetInviteByID(ctx, n.InviteID)
	if err != nil {
		return nil, err
	}
	if invite.Status != models.InviteStatusPending {
		return nil, fmt.Errorf("%w: invite is no longer valid", ErrConflict)
	}

	trip, err := s.acceptInviteByID(ctx, invite.ID, n.TripID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.store.MarkNotificationRead(ctx, notificationID); err != nil {
		return nil, err
	}

	slog.Info("invite accepted via notification", "trip_id", n.TripID, "user_id", userID)
	return trip, nil
}

func (s *InviteService) acceptInviteByID(ctx context.Context, inviteID, tripID, userID string) (*models.Trip, error) {
	if _, err := s.store.GetTripMember(ctx, tripID, userID); err == nil {
		return nil, fmt.Errorf("%w: already a member", ErrConflict)
	}

	member := &models.TripMember{TripID: tripID, UserID: userID}
	if err := s.store.AddTripMember(ctx, member); err != nil {
		return nil, err
	}
	if err := s.store.UpdateInviteStatus(ctx, inviteID, models.InviteStatusAccepted); err != nil {
		return nil, err
	}

	return s.store.GetTrip(ctx, tripID)
}
