package ports

import (
	"context"

	"github.com/tejasoft/business-suite/internal/core/domain"
)

// UserRepository defines persistence for user accounts. FindByID and List
// hydrate the role-specific profile (employee or client) when present.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// List returns users ordered by email ascending. An empty roles slice
	// means no role filter.
	List(ctx context.Context, roles []string) ([]*domain.User, error)
	Delete(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// EmployeeRepository defines persistence for employee profiles.
type EmployeeRepository interface {
	FindByUserID(ctx context.Context, userID string) (*domain.Employee, error)
	FindByID(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context) ([]*domain.Employee, error)
	UpdateProfile(ctx context.Context, userID, name, phone string) error
	Count(ctx context.Context) (int64, error)
}

// ClientRepository defines persistence for client profiles.
type ClientRepository interface {
	FindByUserID(ctx context.Context, userID string) (*domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	UpdateProfile(ctx context.Context, userID, name, phone, company string) error
	Count(ctx context.Context) (int64, error)
}
