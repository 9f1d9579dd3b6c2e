package ports

import (
	"context"

	"github.com/tejasoft/business-suite/internal/core/domain"
)

// TxRunner executes fn atomically: every store write made through fn's ctx is
// committed together or rolled back together.
type TxRunner interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ProjectRepository defines persistence for projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	// ListAll returns all projects ordered by created_at descending.
	ListAll(ctx context.Context) ([]*domain.Project, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Project, error)
	// ListByEmployee returns the projects assigned to the employee,
	// optionally filtered by status (empty = no filter).
	ListByEmployee(ctx context.Context, employeeID string, status domain.ProjectStatus) ([]*domain.Project, error)
	UpdateStatus(ctx context.Context, id string, status domain.ProjectStatus) (*domain.Project, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.ProjectStatus) (int64, error)
}

// AssignmentRepository defines persistence for project-employee assignments.
type AssignmentRepository interface {
	CreateMany(ctx context.Context, projectID string, employeeIDs []string) error
	ListByProject(ctx context.Context, projectID string) ([]domain.Assignment, error)
	// Delete removes a single assignment; ErrEmployeeNotFound when the
	// employee was not assigned to the project.
	Delete(ctx context.Context, projectID, employeeID string) error
}

// CreateProjectInput carries the data for creating a project. When
// ServiceRequestID is set, the referenced request is marked ACCEPTED in the
// same transaction.
type CreateProjectInput struct {
	Name             string
	Description      string
	ClientID         string
	ServiceRequestID string
	EmployeeIDs      []string
}

// ProjectService implements the project use cases. Every read is scoped by
// the caller's principal before the query reaches the store.
type ProjectService interface {
	Create(ctx context.Context, principal domain.Principal, input CreateProjectInput) (*domain.Project, error)
	// ListFor returns the projects visible to the principal: admins see all,
	// employees their assigned projects, clients their own.
	ListFor(ctx context.Context, principal domain.Principal, status domain.ProjectStatus) ([]*domain.Project, error)
	UpdateStatus(ctx context.Context, principal domain.Principal, id string, status domain.ProjectStatus) (*domain.Project, error)
	// Team returns the employee profiles assigned to the project.
	Team(ctx context.Context, principal domain.Principal, projectID string) ([]*domain.Employee, error)
	AddEmployee(ctx context.Context, principal domain.Principal, projectID, employeeID string) error
	RemoveEmployee(ctx context.Context, principal domain.Principal, projectID, employeeID string) error
}
