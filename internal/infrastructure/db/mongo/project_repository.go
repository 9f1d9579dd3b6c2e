package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tejasoft/business-suite/internal/core/domain"
)

const (
	projectsCollection    = "projects"
	assignmentsCollection = "assigned_projects"
)

// ProjectRepository persists projects.
type ProjectRepository struct {
	coll        *mongo.Collection
	assignments *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{
		coll:        db.Collection(projectsCollection),
		assignments: db.Collection(assignmentsCollection),
	}
}

type mongoProject struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Name             string             `bson:"name"`
	Description      string             `bson:"description,omitempty"`
	ClientID         string             `bson:"client_id"`
	ServiceRequestID string             `bson:"service_request_id,omitempty"`
	Status           string             `bson:"status"`
	CreatedAt        time.Time          `bson:"created_at"`
}

type mongoAssignment struct {
	ProjectID  string `bson:"project_id"`
	EmployeeID string `bson:"employee_id"`
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	doc := mongoProject{
		Name:             p.Name,
		Description:      p.Description,
		ClientID:         p.ClientID,
		ServiceRequestID: p.ServiceRequestID,
		Status:           string(p.Status),
		CreatedAt:        p.CreatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}

	created := *p
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProjectNotFound
	}

	var mp mongoProject
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}

	p := toDomainProject(mp)
	return &p, nil
}

func (r *ProjectRepository) ListAll(ctx context.Context) ([]*domain.Project, error) {
	return r.list(ctx, bson.M{})
}

func (r *ProjectRepository) ListByClient(ctx context.Context, clientID string) ([]*domain.Project, error) {
	return r.list(ctx, bson.M{"client_id": clientID})
}

// ListByEmployee resolves the employee's assignments first, then loads the
// projects, applying the optional status filter.
func (r *ProjectRepository) ListByEmployee(ctx context.Context, employeeID string, status domain.ProjectStatus) ([]*domain.Project, error) {
	cur, err := r.assignments.Find(ctx, bson.M{"employee_id": employeeID})
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer cur.Close(ctx)

	var ids []primitive.ObjectID
	for cur.Next(ctx) {
		var ma mongoAssignment
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode assignment: %w", err)
		}
		if oid, err := primitive.ObjectIDFromHex(ma.ProjectID); err == nil {
			ids = append(ids, oid)
		}
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	filter := bson.M{"_id": bson.M{"$in": ids}}
	if status != "" {
		filter["status"] = string(status)
	}
	return r.list(ctx, filter)
}

func (r *ProjectRepository) UpdateStatus(ctx context.Context, id string, status domain.ProjectStatus) (*domain.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProjectNotFound
	}

	var mp mongoProject
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": string(status)}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("update project status: %w", err)
	}

	p := toDomainProject(mp)
	return &p, nil
}

func (r *ProjectRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *ProjectRepository) CountByStatus(ctx context.Context, status domain.ProjectStatus) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"status": string(status)})
}

func (r *ProjectRepository) list(ctx context.Context, filter bson.M) ([]*domain.Project, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Project
	for cur.Next(ctx) {
		var mp mongoProject
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode project: %w", err)
		}
		p := toDomainProject(mp)
		out = append(out, &p)
	}
	return out, cur.Err()
}

func toDomainProject(mp mongoProject) domain.Project {
	return domain.Project{
		ID:               mp.ID.Hex(),
		Name:             mp.Name,
		Description:      mp.Description,
		ClientID:         mp.ClientID,
		ServiceRequestID: mp.ServiceRequestID,
		Status:           domain.ProjectStatus(mp.Status),
		CreatedAt:        mp.CreatedAt,
	}
}

// AssignmentRepository persists project-employee assignments.
type AssignmentRepository struct {
	coll *mongo.Collection
}

func NewAssignmentRepository(db *mongo.Database) *AssignmentRepository {
	return &AssignmentRepository{coll: db.Collection(assignmentsCollection)}
}

func (r *AssignmentRepository) CreateMany(ctx context.Context, projectID string, employeeIDs []string) error {
	docs := make([]interface{}, 0, len(employeeIDs))
	seen := make(map[string]struct{}, len(employeeIDs))
	for _, employeeID := range employeeIDs {
		if _, dup := seen[employeeID]; dup {
			continue
		}
		seen[employeeID] = struct{}{}
		docs = append(docs, mongoAssignment{ProjectID: projectID, EmployeeID: employeeID})
	}
	if len(docs) == 0 {
		return nil
	}

	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert assignments: %w", err)
	}
	return nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, projectID, employeeID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"project_id": projectID, "employee_id": employeeID})
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

func (r *AssignmentRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Assignment, error) {
	cur, err := r.coll.Find(ctx, bson.M{"project_id": projectID})
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Assignment
	for cur.Next(ctx) {
		var ma mongoAssignment
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode assignment: %w", err)
		}
		out = append(out, domain.Assignment{ProjectID: ma.ProjectID, EmployeeID: ma.EmployeeID})
	}
	return out, cur.Err()
}
