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
	servicesCollection = "services"
	requestsCollection = "service_requests"
)

// ServiceRepository persists the service catalog.
type ServiceRepository struct {
	coll *mongo.Collection
}

func NewServiceRepository(db *mongo.Database) *ServiceRepository {
	return &ServiceRepository{coll: db.Collection(servicesCollection)}
}

type mongoService struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	Price       float64            `bson:"price"`
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	res, err := r.coll.InsertOne(ctx, mongoService{
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price,
	})
	if err != nil {
		return nil, fmt.Errorf("insert service: %w", err)
	}

	created := *s
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ServiceRepository) FindByID(ctx context.Context, id string) (*domain.Service, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrServiceNotFound
	}

	var ms mongoService
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, fmt.Errorf("find service: %w", err)
	}
	return toDomainService(ms), nil
}

func (r *ServiceRepository) List(ctx context.Context) ([]*domain.Service, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Service
	for cur.Next(ctx) {
		var ms mongoService
		if err := cur.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode service: %w", err)
		}
		out = append(out, toDomainService(ms))
	}
	return out, cur.Err()
}

func toDomainService(ms mongoService) *domain.Service {
	return &domain.Service{
		ID:          ms.ID.Hex(),
		Name:        ms.Name,
		Description: ms.Description,
		Price:       ms.Price,
	}
}

// RequestRepository persists service requests.
type RequestRepository struct {
	coll *mongo.Collection
}

func NewRequestRepository(db *mongo.Database) *RequestRepository {
	return &RequestRepository{coll: db.Collection(requestsCollection)}
}

type mongoRequest struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ClientID  string             `bson:"client_id"`
	ServiceID string             `bson:"service_id"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (r *RequestRepository) Create(ctx context.Context, req *domain.ServiceRequest) (*domain.ServiceRequest, error) {
	res, err := r.coll.InsertOne(ctx, mongoRequest{
		ClientID:  req.ClientID,
		ServiceID: req.ServiceID,
		Status:    string(req.Status),
		CreatedAt: req.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("insert request: %w", err)
	}

	created := *req
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *RequestRepository) FindByID(ctx context.Context, id string) (*domain.ServiceRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRequestNotFound
	}

	var mr mongoRequest
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("find request: %w", err)
	}
	return toDomainRequest(mr), nil
}

func (r *RequestRepository) ListAll(ctx context.Context) ([]*domain.ServiceRequest, error) {
	return r.list(ctx, bson.M{})
}

func (r *RequestRepository) ListByClient(ctx context.Context, clientID string) ([]*domain.ServiceRequest, error) {
	return r.list(ctx, bson.M{"client_id": clientID})
}

func (r *RequestRepository) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.ServiceRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRequestNotFound
	}

	var mr mongoRequest
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": string(status)}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mr)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("update request status: %w", err)
	}
	return toDomainRequest(mr), nil
}

func (r *RequestRepository) list(ctx context.Context, filter bson.M) ([]*domain.ServiceRequest, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.ServiceRequest
	for cur.Next(ctx) {
		var mr mongoRequest
		if err := cur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode request: %w", err)
		}
		out = append(out, toDomainRequest(mr))
	}
	return out, cur.Err()
}

func toDomainRequest(mr mongoRequest) *domain.ServiceRequest {
	return &domain.ServiceRequest{
		ID:        mr.ID.Hex(),
		ClientID:  mr.ClientID,
		ServiceID: mr.ServiceID,
		Status:    domain.RequestStatus(mr.Status),
		CreatedAt: mr.CreatedAt,
	}
}
