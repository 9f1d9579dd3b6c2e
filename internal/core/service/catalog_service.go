package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tejasoft/business-suite/internal/core/domain"
	"github.com/tejasoft/business-suite/internal/core/ports"
)

// CatalogService manages the service catalog. Reads are open to every
// authenticated role; creation is admin-only and guarded at the route level.
type CatalogService struct {
	services ports.ServiceRepository
	log      zerolog.Logger
}

func NewCatalogService(services ports.ServiceRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{services: services, log: log}
}

func (s *CatalogService) List(ctx context.Context) ([]*domain.Service, error) {
	return s.services.List(ctx)
}

func (s *CatalogService) Create(ctx context.Context, name, description string, price float64) (*domain.Service, error) {
	if name == "" || price < 0 {
		return nil, domain.ErrValidation
	}

	created, err := s.services.Create(ctx, &domain.Service{
		Name:        name,
		Description: description,
		Price:       price,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("service_id", created.ID).Str("name", created.Name).Msg("catalog service created")
	return created, nil
}
