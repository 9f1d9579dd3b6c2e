package ports

import (
	"context"

	"github.com/tejasoft/business-suite/internal/core/domain"
)

// ServiceRepository defines persistence for the service catalog.
type ServiceRepository interface {
	Create(ctx context.Context, s *domain.Service) (*domain.Service, error)
	FindByID(ctx context.Context, id string) (*domain.Service, error)
	List(ctx context.Context) ([]*domain.Service, error)
}

// RequestRepository defines persistence for service requests.
type RequestRepository interface {
	Create(ctx context.Context, r *domain.ServiceRequest) (*domain.ServiceRequest, error)
	FindByID(ctx context.Context, id string) (*domain.ServiceRequest, error)
	ListAll(ctx context.Context) ([]*domain.ServiceRequest, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.ServiceRequest, error)
	UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.ServiceRequest, error)
}

// RequestService implements service-request use cases with role scoping.
type RequestService interface {
	// ListFor returns all requests for admins and the client's own requests
	// for clients. Employees cannot list requests.
	ListFor(ctx context.Context, principal domain.Principal) ([]*domain.ServiceRequest, error)
	// Create files a PENDING request for the calling client.
	Create(ctx context.Context, principal domain.Principal, serviceID string) (*domain.ServiceRequest, error)
	// UpdateStatus is admin-only.
	UpdateStatus(ctx context.Context, principal domain.Principal, id string, status domain.RequestStatus) (*domain.ServiceRequest, error)
}
