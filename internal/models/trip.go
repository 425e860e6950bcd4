package models

// Member roles within a trip.
const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// DefaultCurrency is applied when a trip is created without one.
const DefaultCurrency = "VND"

// Trip represents a shared trip whose expenses are split among members.
// All amounts on a trip are in the trip's single currency; conversion is out
// of scope.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string

	// Name is the display name of the trip (e.g. "Da Nang 2026").
	Name string

	// Description is an optional free-text description.
	Description string

	// Location is an optional destination label.
	Location string

	// StartDate and EndDate are Unix timestamps; 0 means unset.
	StartDate int64
	EndDate   int64

	// Currency is the ISO code all trip amounts are denominated in.
	Currency string

	// ShareLink is a unique token usable as an open invite to the trip.
	ShareLink string

	// CreatedAt is the Unix timestamp when the trip was created.
	CreatedAt int64

	// Members is populated on reads that join membership and user identity.
	Members []*TripMember
}

// TripMember ties a user to a trip. Expenses, shares, and transfers all
// reference members (not users), so a user's trip history survives even if
// their account details change.
type TripMember struct {
	// ID is the unique identifier for the membership (UUID format).
	ID string

	// TripID is the trip this membership belongs to.
	TripID string

	// UserID is the member's user account.
	UserID string

	// Role is RoleOwner for the trip creator, RoleMember otherwise.
	Role string

	// JoinedAt is the Unix timestamp when the user joined the trip.
	JoinedAt int64

	// User is populated on reads that join user identity.
	User *User
}

// DisplayName resolves the member's name for balances and settlements.
// Falls back to the member id when user identity was not loaded.
func (m *TripMember) DisplayName() string {
	if m.User != nil {
		return m.User.DisplayName()
	}
	return m.ID
}
