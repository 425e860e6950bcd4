// Package models defines the core domain records for the trip ledger.
//
// # Records
//
//   - User: registered account (email + password login)
//   - Trip: a shared trip with a single currency
//   - TripMember: a user's membership in a trip (owner or member)
//   - Expense / ExpenseShare: a paid bill and its per-member split
//   - Transfer: a direct member-to-member payment (e.g. settling up in cash)
//   - Invite: an emailed invitation to join a trip, with token and expiry
//   - Notification: an in-app notification record (no delivery here)
//
// # Conventions
//
// IDs are UUID strings, timestamps are Unix seconds, and all monetary amounts
// are decimal.Decimal (never float64) because balances are compared against
// a cent-level epsilon downstream. Relationships are held as ID strings
// rather than pointers to avoid circular references.
package models
