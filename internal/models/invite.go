package models

// Invite statuses.
const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
	InviteStatusRevoked  = "revoked"
)

// InviteTTLSeconds is how long an invite stays valid: 7 days.
const InviteTTLSeconds = 7 * 24 * 60 * 60

// Invite represents an emailed invitation to join a trip.
type Invite struct {
	// ID is the unique identifier for the invite (UUID format).
	ID string

	// TripID is the trip being invited to.
	TripID string

	// Email is the invitee's email address.
	Email string

	// Token is the unique token embedded in the invite link.
	Token string

	// InvitedByUserID is the member who sent the invite.
	InvitedByUserID string

	// Status is one of the InviteStatus constants. Expiry is derived from
	// ExpiresAt rather than stored as a status.
	Status string

	// ExpiresAt is the Unix timestamp after which the invite is invalid.
	ExpiresAt int64

	// CreatedAt is the Unix timestamp when the invite was created.
	CreatedAt int64
}

// Notification types.
const (
	NotificationTripInvite = "trip_invite"
)

// Notification is an in-app notification record. Delivery (email, push) is
// out of scope; this is only the stored record the UI lists.
type Notification struct {
	// ID is the unique identifier for the notification (UUID format).
	ID string

	// UserID is the recipient.
	UserID string

	// Type is one of the Notification type constants.
	Type string

	// Title and Message are the rendered notification content.
	Title   string
	Message string

	// TripID and InviteID link a trip_invite notification to its invite.
	TripID   string
	InviteID string

	// Read marks whether the user has acted on the notification.
	Read bool

	// CreatedAt is the Unix timestamp when the notification was created.
	CreatedAt int64
}
