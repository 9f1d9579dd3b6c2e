package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tejasoft/business-suite/internal/core/domain"
	"github.com/tejasoft/business-suite/internal/core/ports"
)

// DirectoryService implements admin user management, listings, dashboard
// stats, and per-user profile editing.
type DirectoryService struct {
	users     ports.UserRepository
	employees ports.EmployeeRepository
	clients   ports.ClientRepository
	projects  ports.ProjectRepository
	log       zerolog.Logger
}

func NewDirectoryService(users ports.UserRepository, employees ports.EmployeeRepository, clients ports.ClientRepository, projects ports.ProjectRepository, log zerolog.Logger) *DirectoryService {
	return &DirectoryService{users: users, employees: employees, clients: clients, projects: projects, log: log}
}

func (s *DirectoryService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx, nil)
}

// DeleteUser removes a non-admin user and its profile. Admin accounts are
// protected.
func (s *DirectoryService) DeleteUser(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrValidation
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user.Role == domain.RoleAdmin {
		return domain.ErrForbidden
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("user_id", id).Str("role", user.Role).Msg("user deleted")
	return nil
}

func (s *DirectoryService) ListEmployees(ctx context.Context) ([]*domain.Employee, error) {
	return s.employees.List(ctx)
}

func (s *DirectoryService) ListClients(ctx context.Context) ([]*domain.Client, error) {
	return s.clients.List(ctx)
}

// Stats returns the admin dashboard counters.
func (s *DirectoryService) Stats(ctx context.Context) (*ports.Stats, error) {
	employeeCount, err := s.employees.Count(ctx)
	if err != nil {
		return nil, err
	}
	clientCount, err := s.clients.Count(ctx)
	if err != nil {
		return nil, err
	}
	projectCount, err := s.projects.Count(ctx)
	if err != nil {
		return nil, err
	}
	deliveredCount, err := s.projects.CountByStatus(ctx, domain.ProjectDelivered)
	if err != nil {
		return nil, err
	}

	return &ports.Stats{
		EmployeeCount:  employeeCount,
		ClientCount:    clientCount,
		ProjectCount:   projectCount,
		DeliveredCount: deliveredCount,
	}, nil
}

// Profile returns the principal's own user record with profile attached.
func (s *DirectoryService) Profile(ctx context.Context, principal domain.Principal) (*domain.User, error) {
	return s.users.FindByID(ctx, principal.ID)
}

// UpdateProfile applies the editable fields. A non-empty password is
// re-hashed; name/phone/company land on the role-specific profile.
func (s *DirectoryService) UpdateProfile(ctx context.Context, principal domain.Principal, input ports.UpdateProfileInput) error {
	if input.Password != "" {
		if len(input.Password) < 6 {
			return domain.ErrValidation
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if err := s.users.UpdatePassword(ctx, principal.ID, string(hash)); err != nil {
			return err
		}
	}

	if input.Name == "" && input.Phone == "" && input.Company == "" {
		return nil
	}

	switch principal.Role {
	case domain.RoleEmployee:
		return s.employees.UpdateProfile(ctx, principal.ID, input.Name, input.Phone)
	case domain.RoleClient:
		return s.clients.UpdateProfile(ctx, principal.ID, input.Name, input.Phone, input.Company)
	}
	return nil
}
