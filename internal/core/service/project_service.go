package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tejasoft/business-suite/internal/core/domain"
	"github.com/tejasoft/business-suite/internal/core/ports"
)

// ProjectService implements project use cases with role scoping.
type ProjectService struct {
	projects    ports.ProjectRepository
	assignments ports.AssignmentRepository
	requests    ports.RequestRepository
	clients     ports.ClientRepository
	employees   ports.EmployeeRepository
	tx          ports.TxRunner
	recorder    ports.ActivityRecorder
	log         zerolog.Logger
}

func NewProjectService(
	projects ports.ProjectRepository,
	assignments ports.AssignmentRepository,
	requests ports.RequestRepository,
	clients ports.ClientRepository,
	employees ports.EmployeeRepository,
	tx ports.TxRunner,
	recorder ports.ActivityRecorder,
	log zerolog.Logger,
) *ProjectService {
	return &ProjectService{
		projects:    projects,
		assignments: assignments,
		requests:    requests,
		clients:     clients,
		employees:   employees,
		tx:          tx,
		recorder:    recorder,
		log:         log,
	}
}

// Create inserts a project, its employee assignments, and the linked request
// status update as one transaction. A failure at any step rolls back the
// whole creation.
func (s *ProjectService) Create(ctx context.Context, principal domain.Principal, input ports.CreateProjectInput) (*domain.Project, error) {
	if principal.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if input.Name == "" || input.ClientID == "" {
		return nil, domain.ErrValidation
	}

	if _, err := s.clients.FindByID(ctx, input.ClientID); err != nil {
		return nil, err
	}

	var created *domain.Project
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		project := &domain.Project{
			Name:             input.Name,
			Description:      input.Description,
			ClientID:         input.ClientID,
			ServiceRequestID: input.ServiceRequestID,
			Status:           domain.ProjectPlanning,
			CreatedAt:        time.Now().UTC(),
		}

		var err error
		created, err = s.projects.Create(ctx, project)
		if err != nil {
			return fmt.Errorf("create project: %w", err)
		}

		if len(input.EmployeeIDs) > 0 {
			if err := s.assignments.CreateMany(ctx, created.ID, input.EmployeeIDs); err != nil {
				return fmt.Errorf("assign employees: %w", err)
			}
		}

		if input.ServiceRequestID != "" {
			if _, err := s.requests.UpdateStatus(ctx, input.ServiceRequestID, domain.RequestAccepted); err != nil {
				return fmt.Errorf("accept request: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Str("client_id", input.ClientID).Msg("project creation rolled back")
		return nil, err
	}

	s.log.Info().Str("project_id", created.ID).Str("client_id", created.ClientID).Msg("project created")
	s.recorder.Record(ports.ActivityInput{
		ActorID:   principal.ID,
		Action:    domain.ActivityProjectCreated,
		Subject:   created.ID,
		Timestamp: created.CreatedAt,
	})

	return created, nil
}

// ListFor returns the projects visible to the principal. The scope predicate
// is always derived from the principal, never from caller-supplied ids.
func (s *ProjectService) ListFor(ctx context.Context, principal domain.Principal, status domain.ProjectStatus) ([]*domain.Project, error) {
	if status != "" && !domain.ValidProjectStatus(status) {
		return nil, domain.ErrValidation
	}

	switch principal.Role {
	case domain.RoleAdmin:
		return s.projects.ListAll(ctx)
	case domain.RoleEmployee:
		emp, err := s.employees.FindByUserID(ctx, principal.ID)
		if err != nil {
			return nil, err
		}
		return s.projects.ListByEmployee(ctx, emp.ID, status)
	case domain.RoleClient:
		client, err := s.clients.FindByUserID(ctx, principal.ID)
		if err != nil {
			return nil, err
		}
		return s.projects.ListByClient(ctx, client.ID)
	}
	return nil, domain.ErrForbidden
}

// UpdateStatus moves a project to a new status. Admins may update any
// project; employees only projects they are assigned to.
func (s *ProjectService) UpdateStatus(ctx context.Context, principal domain.Principal, id string, status domain.ProjectStatus) (*domain.Project, error) {
	if id == "" || !domain.ValidProjectStatus(status) {
		return nil, domain.ErrValidation
	}

	switch principal.Role {
	case domain.RoleAdmin:
		// no extra scope
	case domain.RoleEmployee:
		emp, err := s.employees.FindByUserID(ctx, principal.ID)
		if err != nil {
			return nil, err
		}
		assigned, err := s.isAssigned(ctx, id, emp.ID)
		if err != nil {
			return nil, err
		}
		if !assigned {
			return nil, domain.ErrForbidden
		}
	default:
		return nil, domain.ErrForbidden
	}

	updated, err := s.projects.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ports.ActivityInput{
		ActorID:   principal.ID,
		Action:    domain.ActivityProjectUpdated,
		Subject:   updated.ID,
		Timestamp: time.Now().UTC(),
	})

	return updated, nil
}

// Team returns the employee profiles currently assigned to the project.
// Assignments pointing at a since-removed employee profile are skipped.
func (s *ProjectService) Team(ctx context.Context, principal domain.Principal, projectID string) ([]*domain.Employee, error) {
	if principal.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if projectID == "" {
		return nil, domain.ErrValidation
	}
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}

	assignments, err := s.assignments.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	team := []*domain.Employee{}
	for _, a := range assignments {
		emp, err := s.employees.FindByID(ctx, a.EmployeeID)
		if err != nil {
			if err == domain.ErrEmployeeNotFound {
				continue
			}
			return nil, err
		}
		team = append(team, emp)
	}
	return team, nil
}

// AddEmployee assigns an employee to a project. Assigning an already-assigned
// employee is a no-op.
func (s *ProjectService) AddEmployee(ctx context.Context, principal domain.Principal, projectID, employeeID string) error {
	if principal.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if projectID == "" || employeeID == "" {
		return domain.ErrValidation
	}
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return err
	}
	if _, err := s.employees.FindByID(ctx, employeeID); err != nil {
		return err
	}

	assigned, err := s.isAssigned(ctx, projectID, employeeID)
	if err != nil {
		return err
	}
	if assigned {
		return nil
	}

	if err := s.assignments.CreateMany(ctx, projectID, []string{employeeID}); err != nil {
		return fmt.Errorf("assign employee: %w", err)
	}

	s.log.Info().Str("project_id", projectID).Str("employee_id", employeeID).Msg("employee assigned")
	s.recorder.Record(ports.ActivityInput{
		ActorID:   principal.ID,
		Action:    domain.ActivityProjectUpdated,
		Subject:   projectID,
		Timestamp: time.Now().UTC(),
	})
	return nil
}

// RemoveEmployee unassigns an employee from a project.
func (s *ProjectService) RemoveEmployee(ctx context.Context, principal domain.Principal, projectID, employeeID string) error {
	if principal.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if projectID == "" || employeeID == "" {
		return domain.ErrValidation
	}
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return err
	}

	if err := s.assignments.Delete(ctx, projectID, employeeID); err != nil {
		return err
	}

	s.log.Info().Str("project_id", projectID).Str("employee_id", employeeID).Msg("employee unassigned")
	s.recorder.Record(ports.ActivityInput{
		ActorID:   principal.ID,
		Action:    domain.ActivityProjectUpdated,
		Subject:   projectID,
		Timestamp: time.Now().UTC(),
	})
	return nil
}

func (s *ProjectService) isAssigned(ctx context.Context, projectID, employeeID string) (bool, error) {
	assignments, err := s.assignments.ListByProject(ctx, projectID)
	if err != nil {
		return false, err
	}
	for _, a := range assignments {
		if a.EmployeeID == employeeID {
			return true, nil
		}
	}
	return false, nil
}
