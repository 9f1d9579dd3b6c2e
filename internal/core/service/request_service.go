package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tejasoft/business-suite/internal/core/domain"
	"github.com/tejasoft/business-suite/internal/core/ports"
)

// RequestService implements service-request use cases with role scoping.
type RequestService struct {
	requests ports.RequestRepository
	services ports.ServiceRepository
	clients  ports.ClientRepository
	recorder ports.ActivityRecorder
	log      zerolog.Logger
}

func NewRequestService(requests ports.RequestRepository, services ports.ServiceRepository, clients ports.ClientRepository, recorder ports.ActivityRecorder, log zerolog.Logger) *RequestService {
	return &RequestService{requests: requests, services: services, clients: clients, recorder: recorder, log: log}
}

// ListFor returns all requests for admins and the caller's own requests for
// clients. Employees have no request surface.
func (s *RequestService) ListFor(ctx context.Context, principal domain.Principal) ([]*domain.ServiceRequest, error) {
	switch principal.Role {
	case domain.RoleAdmin:
		return s.requests.ListAll(ctx)
	case domain.RoleClient:
		client, err := s.clients.FindByUserID(ctx, principal.ID)
		if err != nil {
			return nil, err
		}
		return s.requests.ListByClient(ctx, client.ID)
	}
	return nil, domain.ErrForbidden
}

// Create files a PENDING request for the calling client.
func (s *RequestService) Create(ctx context.Context, principal domain.Principal, serviceID string) (*domain.ServiceRequest, error) {
	if principal.Role != domain.RoleClient {
		return nil, domain.ErrForbidden
	}
	if serviceID == "" {
		return nil, domain.ErrValidation
	}

	client, err := s.clients.FindByUserID(ctx, principal.ID)
	if err != nil {
		return nil, err
	}
	if _, err := s.services.FindByID(ctx, serviceID); err != nil {
		return nil, err
	}

	created, err := s.requests.Create(ctx, &domain.ServiceRequest{
		ClientID:  client.ID,
		ServiceID: serviceID,
		Status:    domain.RequestPending,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.log.Error().Err(err).Str("client_id", client.ID).Msg("failed to create service request")
		return nil, err
	}

	return created, nil
}

// UpdateStatus is admin-only.
func (s *RequestService) UpdateStatus(ctx context.Context, principal domain.Principal, id string, status domain.RequestStatus) (*domain.ServiceRequest, error) {
	if principal.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if id == "" || !domain.ValidRequestStatus(status) {
		return nil, domain.ErrValidation
	}

	updated, err := s.requests.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ports.ActivityInput{
		ActorID:   principal.ID,
		Action:    domain.ActivityRequestUpdated,
		Subject:   updated.ID,
		Timestamp: time.Now().UTC(),
	})

	return updated, nil
}
