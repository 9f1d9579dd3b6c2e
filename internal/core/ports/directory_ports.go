package ports

import (
	"context"

	"github.com/tejasoft/business-suite/internal/core/domain"
)

// Stats is the admin dashboard summary.
type Stats struct {
	EmployeeCount  int64 `json:"employeeCount"`
	ClientCount    int64 `json:"clientCount"`
	ProjectCount   int64 `json:"projectCount"`
	DeliveredCount int64 `json:"deliveredCount"`
}

// UpdateProfileInput carries the editable profile fields. Empty fields are
// left unchanged; a non-empty password is re-hashed.
type UpdateProfileInput struct {
	Name     string
	Phone    string
	Company  string
	Password string
}

// DirectoryService implements admin user management and per-user profiles.
type DirectoryService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	// DeleteUser removes a non-admin user. Deleting an admin yields
	// domain.ErrForbidden.
	DeleteUser(ctx context.Context, id string) error
	ListEmployees(ctx context.Context) ([]*domain.Employee, error)
	ListClients(ctx context.Context) ([]*domain.Client, error)
	Stats(ctx context.Context) (*Stats, error)
	// Profile returns the principal's user record with its profile attached.
	Profile(ctx context.Context, principal domain.Principal) (*domain.User, error)
	UpdateProfile(ctx context.Context, principal domain.Principal, input UpdateProfileInput) error
}
