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
	usersCollection     = "users"
	employeesCollection = "employees"
	clientsCollection   = "clients"
)

// UserRepository persists user accounts plus their role-specific profiles
// (employees and clients live in their own collections because projects and
// requests reference the profile ids).
type UserRepository struct {
	users     *mongo.Collection
	employees *mongo.Collection
	clients   *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		users:     db.Collection(usersCollection),
		employees: db.Collection(employeesCollection),
		clients:   db.Collection(clientsCollection),
	}
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

type mongoEmployee struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     string             `bson:"user_id"`
	Name       string             `bson:"name"`
	Phone      string             `bson:"phone,omitempty"`
	JoinedDate time.Time          `bson:"joined_date"`
}

type mongoClient struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	UserID  string             `bson:"user_id"`
	Name    string             `bson:"name"`
	Phone   string             `bson:"phone,omitempty"`
	Company string             `bson:"company,omitempty"`
}

// Create inserts the user and, when present, the matching profile record.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// email is unique; rely on the unique index for duplicate detection.
	doc := mongoUser{
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
	res, err := r.users.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	userID := res.InsertedID.(primitive.ObjectID).Hex()

	created := *user
	created.ID = userID

	if user.Employee != nil {
		eres, err := r.employees.InsertOne(ctx, mongoEmployee{
			UserID:     userID,
			Name:       user.Employee.Name,
			Phone:      user.Employee.Phone,
			JoinedDate: user.Employee.JoinedDate,
		})
		if err != nil {
			return nil, fmt.Errorf("insert employee profile: %w", err)
		}
		emp := *user.Employee
		emp.ID = eres.InsertedID.(primitive.ObjectID).Hex()
		emp.UserID = userID
		created.Employee = &emp
	}
	if user.Client != nil {
		cres, err := r.clients.InsertOne(ctx, mongoClient{
			UserID:  userID,
			Name:    user.Client.Name,
			Phone:   user.Client.Phone,
			Company: user.Client.Company,
		})
		if err != nil {
			return nil, fmt.Errorf("insert client profile: %w", err)
		}
		cl := *user.Client
		cl.ID = cres.InsertedID.(primitive.ObjectID).Hex()
		cl.UserID = userID
		created.Client = &cl
	}

	return &created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var mu mongoUser
	if err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return r.hydrate(ctx, mu)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var mu mongoUser
	if err := r.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return r.hydrate(ctx, mu)
}

// List returns users ordered by email ascending, optionally filtered by
// role, with profiles attached.
func (r *UserRepository) List(ctx context.Context, roles []string) ([]*domain.User, error) {
	filter := bson.M{}
	if len(roles) > 0 {
		filter["role"] = bson.M{"$in": roles}
	}

	cur, err := r.users.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "email", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.User
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		user, err := r.hydrate(ctx, mu)
		if err != nil {
			return nil, err
		}
		out = append(out, user)
	}
	return out, cur.Err()
}

// Delete removes the user document and any profile records pointing at it.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.users.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}

	if _, err := r.employees.DeleteMany(ctx, bson.M{"user_id": id}); err != nil {
		return fmt.Errorf("delete employee profile: %w", err)
	}
	if _, err := r.clients.DeleteMany(ctx, bson.M{"user_id": id}); err != nil {
		return fmt.Errorf("delete client profile: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"password_hash": passwordHash,
		"updated_at":    time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// EnsureIndexes creates the unique email index plus the profile lookups.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	for _, coll := range []*mongo.Collection{r.employees, r.clients} {
		if _, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "user_id", Value: 1}},
		}); err != nil {
			return err
		}
	}
	return nil
}

func (r *UserRepository) hydrate(ctx context.Context, mu mongoUser) (*domain.User, error) {
	user := &domain.User{
		ID:           mu.ID.Hex(),
		Email:        mu.Email,
		PasswordHash: mu.PasswordHash,
		Role:         mu.Role,
		CreatedAt:    mu.CreatedAt,
		UpdatedAt:    mu.UpdatedAt,
	}

	switch mu.Role {
	case domain.RoleEmployee:
		var me mongoEmployee
		err := r.employees.FindOne(ctx, bson.M{"user_id": user.ID}).Decode(&me)
		if err == nil {
			user.Employee = toDomainEmployee(me)
		} else if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("find employee profile: %w", err)
		}
	case domain.RoleClient:
		var mc mongoClient
		err := r.clients.FindOne(ctx, bson.M{"user_id": user.ID}).Decode(&mc)
		if err == nil {
			user.Client = toDomainClient(mc)
		} else if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("find client profile: %w", err)
		}
	}
	return user, nil
}

func toDomainEmployee(me mongoEmployee) *domain.Employee {
	return &domain.Employee{
		ID:         me.ID.Hex(),
		UserID:     me.UserID,
		Name:       me.Name,
		Phone:      me.Phone,
		JoinedDate: me.JoinedDate,
	}
}

func toDomainClient(mc mongoClient) *domain.Client {
	return &domain.Client{
		ID:      mc.ID.Hex(),
		UserID:  mc.UserID,
		Name:    mc.Name,
		Phone:   mc.Phone,
		Company: mc.Company,
	}
}
