package auth

import (
	"context"

	"github.com/tripledger/tripledger/internal/models"
)

// Authenticator abstracts credential verification so the service layer does
// not care whether accounts use passwords, OAuth, or something else.
type Authenticator interface {
	// Register creates a new account from an email, display name, and
	// credential. The credential format depends on the implementation.
	Register(ctx context.Context, email, name, credential string) (*models.User, error)

	// Authenticate verifies the credential and returns the matching user.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)
}
