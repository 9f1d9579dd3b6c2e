package ports

import (
	"context"

	"github.com/tejasoft/business-suite/internal/core/domain"
)

// RegisterInput carries the data needed to create an account. Only admins may
// register new users, and only non-admin roles can be created this way.
type RegisterInput struct {
	Email    string
	Password string
	Role     string
}

// AuthService implements credential verification and session tokens.
type AuthService interface {
	// Register creates a user plus the role-matching profile record.
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login verifies the password and returns a signed session token valid
	// for the configured TTL, together with the resolved principal.
	Login(ctx context.Context, email, password string) (string, *domain.Principal, error)
	// VerifyToken checks signature and expiry. Malformed, mis-signed, or
	// expired tokens all yield domain.ErrUnauthenticated, never a panic.
	VerifyToken(token string) (*domain.Principal, error)
}
