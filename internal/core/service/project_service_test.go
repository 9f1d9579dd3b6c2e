package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tejasoft/business-suite/internal/core/domain"
	"github.com/tejasoft/business-suite/internal/core/ports"
)

type stubProjectRepo struct {
	projects []*domain.Project
	seq      int
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	r.seq++
	copy := *p
	copy.ID = "p" + strconv.Itoa(r.seq)
	r.projects = append(r.projects, &copy)
	out := copy
	return &out, nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	for _, p := range r.projects {
		if p.ID == id {
			copy := *p
			return &copy, nil
		}
	}
	return nil, domain.ErrProjectNotFound
}

func (r *stubProjectRepo) ListAll(_ context.Context) ([]*domain.Project, error) {
	return append([]*domain.Project(nil), r.projects...), nil
}

func (r *stubProjectRepo) ListByClient(_ context.Context, clientID string) ([]*domain.Project, error) {
	var out []*domain.Project
	for _, p := range r.projects {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProjectRepo) ListByEmployee(_ context.Context, _ string, _ domain.ProjectStatus) ([]*domain.Project, error) {
	return nil, nil
}

func (r *stubProjectRepo) UpdateStatus(_ context.Context, id string, status domain.ProjectStatus) (*domain.Project, error) {
	for _, p := range r.projects {
		if p.ID == id {
			p.Status = status
			copy := *p
			return &copy, nil
		}
	}
	return nil, domain.ErrProjectNotFound
}

func (r *stubProjectRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.projects)), nil
}

func (r *stubProjectRepo) CountByStatus(_ context.Context, status domain.ProjectStatus) (int64, error) {
	var n int64
	for _, p := range r.projects {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

type stubAssignmentRepo struct {
	assignments []domain.Assignment
	failCreate  bool
}

func (r *stubAssignmentRepo) CreateMany(_ context.Context, projectID string, employeeIDs []string) error {
	if r.failCreate {
		return errors.New("assignment store unavailable")
	}
	for _, id := range employeeIDs {
		r.assignments = append(r.assignments, domain.Assignment{ProjectID: projectID, EmployeeID: id})
	}
	return nil
}

func (r *stubAssignmentRepo) Delete(_ context.Context, projectID, employeeID string) error {
	for i, a := range r.assignments {
		if a.ProjectID == projectID && a.EmployeeID == employeeID {
			r.assignments = append(r.assignments[:i], r.assignments[i+1:]...)
			return nil
		}
	}
	return domain.ErrEmployeeNotFound
}

func (r *stubAssignmentRepo) ListByProject(_ context.Context, projectID string) ([]domain.Assignment, error) {
	var out []domain.Assignment
	for _, a := range r.assignments {
		if a.ProjectID == projectID {
			out = append(out, a)
		}
	}
	return out, nil
}

type stubRequestRepo struct {
	requests map[string]*domain.ServiceRequest
}

func newStubRequestRepo() *stubRequestRepo {
	return &stubRequestRepo{requests: make(map[string]*domain.ServiceRequest)}
}

func (r *stubRequestRepo) Create(_ context.Context, req *domain.ServiceRequest) (*domain.ServiceRequest, error) {
	copy := *req
	if copy.ID == "" {
		copy.ID = "r" + strconv.Itoa(len(r.requests)+1)
	}
	r.requests[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubRequestRepo) FindByID(_ context.Context, id string) (*domain.ServiceRequest, error) {
	if req, ok := r.requests[id]; ok {
		copy := *req
		return &copy, nil
	}
	return nil, domain.ErrRequestNotFound
}

func (r *stubRequestRepo) ListAll(_ context.Context) ([]*domain.ServiceRequest, error) {
	var out []*domain.ServiceRequest
	for _, req := range r.requests {
		out = append(out, req)
	}
	return out, nil
}

func (r *stubRequestRepo) ListByClient(_ context.Context, clientID string) ([]*domain.ServiceRequest, error) {
	var out []*domain.ServiceRequest
	for _, req := range r.requests {
		if req.ClientID == clientID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *stubRequestRepo) UpdateStatus(_ context.Context, id string, status domain.RequestStatus) (*domain.ServiceRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	req.Status = status
	copy := *req
	return &copy, nil
}

type stubClientRepo struct {
	clients map[string]*domain.Client
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{clients: make(map[string]*domain.Client)}
}

func (r *stubClientRepo) FindByUserID(_ context.Context, userID string) (*domain.Client, error) {
	for _, c := range r.clients {
		if c.UserID == userID {
			copy := *c
			return &copy, nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (r *stubClientRepo) FindByID(_ context.Context, id string) (*domain.Client, error) {
	if c, ok := r.clients[id]; ok {
		copy := *c
		return &copy, nil
	}
	return nil, domain.ErrClientNotFound
}

func (r *stubClientRepo) List(_ context.Context) ([]*domain.Client, error) {
	var out []*domain.Client
	for _, c := range r.clients {
		out = append(out, c)
	}
	return out, nil
}

func (r *stubClientRepo) UpdateProfile(_ context.Context, userID, name, phone, company string) error {
	for _, c := range r.clients {
		if c.UserID == userID {
			c.Name, c.Phone, c.Company = name, phone, company
			return nil
		}
	}
	return domain.ErrClientNotFound
}

func (r *stubClientRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.clients)), nil
}

type stubEmployeeRepo struct {
	employees map[string]*domain.Employee
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{employees: make(map[string]*domain.Employee)}
}

func (r *stubEmployeeRepo) FindByUserID(_ context.Context, userID string) (*domain.Employee, error) {
	for _, e := range r.employees {
		if e.UserID == userID {
			copy := *e
			return &copy, nil
		}
	}
	return nil, domain.ErrEmployeeNotFound
}

func (r *stubEmployeeRepo) FindByID(_ context.Context, id string) (*domain.Employee, error) {
	if e, ok := r.employees[id]; ok {
		copy := *e
		return &copy, nil
	}
	return nil, domain.ErrEmployeeNotFound
}

func (r *stubEmployeeRepo) List(_ context.Context) ([]*domain.Employee, error) {
	var out []*domain.Employee
	for _, e := range r.employees {
		out = append(out, e)
	}
	return out, nil
}

func (r *stubEmployeeRepo) UpdateProfile(_ context.Context, userID, name, phone string) error {
	for _, e := range r.employees {
		if e.UserID == userID {
			e.Name, e.Phone = name, phone
			return nil
		}
	}
	return domain.ErrEmployeeNotFound
}

func (r *stubEmployeeRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.employees)), nil
}

// stubTxRunner mimics transactional semantics over the in-memory stubs: when
// fn fails, every store it touched is restored from a pre-transaction
// snapshot.
type stubTxRunner struct {
	projects    *stubProjectRepo
	assignments *stubAssignmentRepo
	requests    *stubRequestRepo
}

func (tx *stubTxRunner) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	projects := append([]*domain.Project(nil), tx.projects.projects...)
	assignments := append([]domain.Assignment(nil), tx.assignments.assignments...)
	requests := make(map[string]*domain.ServiceRequest, len(tx.requests.requests))
	for id, req := range tx.requests.requests {
		copy := *req
		requests[id] = &copy
	}

	if err := fn(ctx); err != nil {
		tx.projects.projects = projects
		tx.assignments.assignments = assignments
		tx.requests.requests = requests
		return err
	}
	return nil
}

type projectFixture struct {
	svc         *ProjectService
	projects    *stubProjectRepo
	assignments *stubAssignmentRepo
	requests    *stubRequestRepo
	clients     *stubClientRepo
	employees   *stubEmployeeRepo
}

func newProjectFixture() *projectFixture {
	f := &projectFixture{
		projects:    &stubProjectRepo{},
		assignments: &stubAssignmentRepo{},
		requests:    newStubRequestRepo(),
		clients:     newStubClientRepo(),
		employees:   newStubEmployeeRepo(),
	}
	tx := &stubTxRunner{projects: f.projects, assignments: f.assignments, requests: f.requests}
	f.svc = NewProjectService(f.projects, f.assignments, f.requests, f.clients, f.employees, tx, ports.NopRecorder, zerolog.Nop())
	return f
}

var adminPrincipal = domain.Principal{ID: "admin1", Role: domain.RoleAdmin}

func TestProjectService_Create_Success(t *testing.T) {
	f := newProjectFixture()
	f.clients.clients["c1"] = &domain.Client{ID: "c1", UserID: "u-client", Name: "Acme"}
	f.employees.employees["e1"] = &domain.Employee{ID: "e1", UserID: "u-emp"}
	f.requests.requests["r1"] = &domain.ServiceRequest{ID: "r1", ClientID: "c1", Status: domain.RequestPending}

	project, err := f.svc.Create(context.Background(), adminPrincipal, ports.CreateProjectInput{
		Name:             "Website rebuild",
		ClientID:         "c1",
		ServiceRequestID: "r1",
		EmployeeIDs:      []string{"e1"},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if project.Status != domain.ProjectPlanning {
		t.Fatalf("new project must start in PLANNING, got %s", project.Status)
	}
	if len(f.assignments.assignments) != 1 || f.assignments.assignments[0].EmployeeID != "e1" {
		t.Fatalf("unexpected assignments: %+v", f.assignments.assignments)
	}
	if f.requests.requests["r1"].Status != domain.RequestAccepted {
		t.Fatalf("linked request not accepted: %s", f.requests.requests["r1"].Status)
	}
}

func TestProjectService_Create_RollsBackOnAssignmentFailure(t *testing.T) {
	f := newProjectFixture()
	f.clients.clients["c1"] = &domain.Client{ID: "c1", UserID: "u-client"}
	f.requests.requests["r1"] = &domain.ServiceRequest{ID: "r1", ClientID: "c1", Status: domain.RequestPending}
	f.assignments.failCreate = true

	_, err := f.svc.Create(context.Background(), adminPrincipal, ports.CreateProjectInput{
		Name:             "Doomed project",
		ClientID:         "c1",
		ServiceRequestID: "r1",
		EmployeeIDs:      []string{"e1"},
	})
	if err == nil {
		t.Fatalf("expected error from failing assignment store")
	}
	if len(f.projects.projects) != 0 {
		t.Fatalf("project insert must roll back, found %d projects", len(f.projects.projects))
	}
	if f.requests.requests["r1"].Status != domain.RequestPending {
		t.Fatalf("request status must roll back, got %s", f.requests.requests["r1"].Status)
	}
}

func TestProjectService_Create_Forbidden(t *testing.T) {
	f := newProjectFixture()
	f.clients.clients["c1"] = &domain.Client{ID: "c1"}

	for _, role := range []string{domain.RoleEmployee, domain.RoleClient} {
		principal := domain.Principal{ID: "u1", Role: role}
		if _, err := f.svc.Create(context.Background(), principal, ports.CreateProjectInput{Name: "x", ClientID: "c1"}); err != domain.ErrForbidden {
			t.Fatalf("role %s: expected ErrForbidden, got %v", role, err)
		}
	}
}

func TestProjectService_Create_Validation(t *testing.T) {
	f := newProjectFixture()

	if _, err := f.svc.Create(context.Background(), adminPrincipal, ports.CreateProjectInput{Name: "", ClientID: "c1"}); err != domain.ErrValidation {
		t.Fatalf("expected ErrValidation for empty name, got %v", err)
	}
	if _, err := f.svc.Create(context.Background(), adminPrincipal, ports.CreateProjectInput{Name: "x", ClientID: ""}); err != domain.ErrValidation {
		t.Fatalf("expected ErrValidation for empty client, got %v", err)
	}
	if _, err := f.svc.Create(context.Background(), adminPrincipal, ports.CreateProjectInput{Name: "x", ClientID: "ghost"}); err != domain.ErrClientNotFound {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestProjectService_ListFor_Scoping(t *testing.T) {
	f := newProjectFixture()
	f.clients.clients["c1"] = &domain.Client{ID: "c1", UserID: "u-client"}
	f.clients.clients["c2"] = &domain.Client{ID: "c2", UserID: "u-other"}
	f.projects.projects = []*domain.Project{
		{ID: "p1", ClientID: "c1", Status: domain.ProjectPlanning},
		{ID: "p2", ClientID: "c2", Status: domain.ProjectDevelopment},
	}

	all, err := f.svc.ListFor(context.Background(), adminPrincipal, "")
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin should see all projects, got %d", len(all))
	}

	own, err := f.svc.ListFor(context.Background(), domain.Principal{ID: "u-client", Role: domain.RoleClient}, "")
	if err != nil {
		t.Fatalf("client list failed: %v", err)
	}
	if len(own) != 1 || own[0].ID != "p1" {
		t.Fatalf("client must only see own projects: %+v", own)
	}

	if _, err := f.svc.ListFor(context.Background(), adminPrincipal, "NOT_A_STATUS"); err != domain.ErrValidation {
		t.Fatalf("expected ErrValidation for bad status, got %v", err)
	}
}

func TestProjectService_UpdateStatus_EmployeeScope(t *testing.T) {
	f := newProjectFixture()
	f.employees.employees["e1"] = &domain.Employee{ID: "e1", UserID: "u-emp"}
	f.employees.employees["e2"] = &domain.Employee{ID: "e2", UserID: "u-other"}
	f.projects.projects = []*domain.Project{{ID: "p1", Status: domain.ProjectPlanning}}
	f.assignments.assignments = []domain.Assignment{{ProjectID: "p1", EmployeeID: "e1"}}

	assigned := domain.Principal{ID: "u-emp", Role: domain.RoleEmployee}
	updated, err := f.svc.UpdateStatus(context.Background(), assigned, "p1", domain.ProjectDevelopment)
	if err != nil {
		t.Fatalf("assigned employee update failed: %v", err)
	}
	if updated.Status != domain.ProjectDevelopment {
		t.Fatalf("status not updated: %s", updated.Status)
	}

	outsider := domain.Principal{ID: "u-other", Role: domain.RoleEmployee}
	if _, err := f.svc.UpdateStatus(context.Background(), outsider, "p1", domain.ProjectDelivered); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for unassigned employee, got %v", err)
	}

	client := domain.Principal{ID: "u-client", Role: domain.RoleClient}
	if _, err := f.svc.UpdateStatus(context.Background(), client, "p1", domain.ProjectDelivered); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for client, got %v", err)
	}
}

func TestProjectService_UpdateStatus_LifecycleStates(t *testing.T) {
	f := newProjectFixture()
	f.projects.projects = []*domain.Project{{ID: "p1", Status: domain.ProjectPlanning}}

	for _, status := range []domain.ProjectStatus{
		domain.ProjectDevelopment,
		domain.ProjectTesting,
		domain.ProjectDeployment,
		domain.ProjectDelivered,
	} {
		updated, err := f.svc.UpdateStatus(context.Background(), adminPrincipal, "p1", status)
		if err != nil {
			t.Fatalf("update to %s failed: %v", status, err)
		}
		if updated.Status != status {
			t.Fatalf("expected status %s, got %s", status, updated.Status)
		}
	}

	if _, err := f.svc.UpdateStatus(context.Background(), adminPrincipal, "p1", "IN_PROGRESS"); err != domain.ErrValidation {
		t.Fatalf("expected ErrValidation for unknown status, got %v", err)
	}
}

func TestProjectService_Team(t *testing.T) {
	f := newProjectFixture()
	f.projects.projects = []*domain.Project{{ID: "p1", ClientID: "c1"}}
	f.employees.employees["e1"] = &domain.Employee{ID: "e1", UserID: "u-emp1", Name: "Ana"}
	f.employees.employees["e2"] = &domain.Employee{ID: "e2", UserID: "u-emp2", Name: "Bo"}
	f.assignments.assignments = []domain.Assignment{
		{ProjectID: "p1", EmployeeID: "e1"},
		{ProjectID: "p1", EmployeeID: "e2"},
		{ProjectID: "p1", EmployeeID: "ghost"},
	}

	team, err := f.svc.Team(context.Background(), adminPrincipal, "p1")
	if err != nil {
		t.Fatalf("Team returned error: %v", err)
	}
	if len(team) != 2 {
		t.Fatalf("expected 2 team members, got %d", len(team))
	}

	if _, err := f.svc.Team(context.Background(), adminPrincipal, "nope"); err != domain.ErrProjectNotFound {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
	employee := domain.Principal{ID: "u-emp1", Role: domain.RoleEmployee}
	if _, err := f.svc.Team(context.Background(), employee, "p1"); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for employee, got %v", err)
	}
}

func TestProjectService_Team_EmptyIsNotNil(t *testing.T) {
	f := newProjectFixture()
	f.projects.projects = []*domain.Project{{ID: "p1"}}

	team, err := f.svc.Team(context.Background(), adminPrincipal, "p1")
	if err != nil {
		t.Fatalf("Team returned error: %v", err)
	}
	if team == nil || len(team) != 0 {
		t.Fatalf("expected empty non-nil team, got %#v", team)
	}
}

func TestProjectService_AddEmployee(t *testing.T) {
	f := newProjectFixture()
	f.projects.projects = []*domain.Project{{ID: "p1"}}
	f.employees.employees["e1"] = &domain.Employee{ID: "e1", UserID: "u-emp"}

	if err := f.svc.AddEmployee(context.Background(), adminPrincipal, "p1", "e1"); err != nil {
		t.Fatalf("AddEmployee returned error: %v", err)
	}
	if len(f.assignments.assignments) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(f.assignments.assignments))
	}

	// assigning the same employee again does not duplicate
	if err := f.svc.AddEmployee(context.Background(), adminPrincipal, "p1", "e1"); err != nil {
		t.Fatalf("repeat AddEmployee returned error: %v", err)
	}
	if len(f.assignments.assignments) != 1 {
		t.Fatalf("duplicate assignment created: %+v", f.assignments.assignments)
	}

	if err := f.svc.AddEmployee(context.Background(), adminPrincipal, "p1", "ghost"); err != domain.ErrEmployeeNotFound {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
	if err := f.svc.AddEmployee(context.Background(), adminPrincipal, "nope", "e1"); err != domain.ErrProjectNotFound {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
	if err := f.svc.AddEmployee(context.Background(), adminPrincipal, "p1", ""); err != domain.ErrValidation {
		t.Fatalf("expected ErrValidation for empty employee id, got %v", err)
	}
	employee := domain.Principal{ID: "u-emp", Role: domain.RoleEmployee}
	if err := f.svc.AddEmployee(context.Background(), employee, "p1", "e1"); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for employee, got %v", err)
	}
}

func TestProjectService_RemoveEmployee(t *testing.T) {
	f := newProjectFixture()
	f.projects.projects = []*domain.Project{{ID: "p1"}}
	f.employees.employees["e1"] = &domain.Employee{ID: "e1", UserID: "u-emp"}
	f.assignments.assignments = []domain.Assignment{{ProjectID: "p1", EmployeeID: "e1"}}

	if err := f.svc.RemoveEmployee(context.Background(), adminPrincipal, "p1", "e1"); err != nil {
		t.Fatalf("RemoveEmployee returned error: %v", err)
	}
	if len(f.assignments.assignments) != 0 {
		t.Fatalf("assignment not removed: %+v", f.assignments.assignments)
	}

	if err := f.svc.RemoveEmployee(context.Background(), adminPrincipal, "p1", "e1"); err != domain.ErrEmployeeNotFound {
		t.Fatalf("expected ErrEmployeeNotFound for unassigned employee, got %v", err)
	}
	client := domain.Principal{ID: "u-client", Role: domain.RoleClient}
	if err := f.svc.RemoveEmployee(context.Background(), client, "p1", "e1"); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for client, got %v", err)
	}
}
