// File: internal/user/repository.go
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blad_backend/internal/common"
	"blad_backend/internal/shared"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Repository defines the interface for user data operations.
type Repository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, user *User) error
	Find(ctx context.Context, params FilterParams) ([]User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	SetRole(ctx context.Context, id bson.ObjectID, role shared.Role) (*common.UpdateResult, error)
	SetStatus(ctx context.Context, id bson.ObjectID, status shared.Status) (*common.UpdateResult, error)
}

const CollectionName = "users"

type mongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository creates a user repository over the users collection.
func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{coll: db.Collection(CollectionName)}
}

// EnsureIndexes creates the unique email index. Email is the identity key.
func (r *mongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_email"),
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	return nil
}

// Create inserts a new user record and sets its generated ID.
func (r *mongoRepository) Create(ctx context.Context, user *User) error {
	user.Email = common.NormalizeEmail(user.Email)
	result, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return common.ErrConflict.WithDetails("User with this email already exists.")
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	id, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return errors.New("failed to convert inserted ID to ObjectID")
	}
	user.ID = id
	return nil
}

// Find lists users matching params in insertion order.
func (r *mongoRepository) Find(ctx context.Context, params FilterParams) ([]User, error) {
	cursor, err := r.coll.Find(ctx, findFilter(params), options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer cursor.Close(ctx)

	users := make([]User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// FindByEmail retrieves a user by their email address.
func (r *mongoRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.coll.FindOne(ctx, bson.M{"email": common.NormalizeEmail(email)}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound.WithDetails("User not found with this email.")
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &u, nil
}

func (r *mongoRepository) SetRole(ctx context.Context, id bson.ObjectID, role shared.Role) (*common.UpdateResult, error) {
	return r.set(ctx, id, bson.M{"role": role})
}

func (r *mongoRepository) SetStatus(ctx context.Context, id bson.ObjectID, status shared.Status) (*common.UpdateResult, error) {
	return r.set(ctx, id, bson.M{"status": status})
}

func (r *mongoRepository) set(ctx context.Context, id bson.ObjectID, fields bson.M) (*common.UpdateResult, error) {
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, setDocument(fields, time.Now().UTC()))
	if err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", id.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return nil, common.ErrNotFound.WithDetails("User not found with this ID.")
	}
	return &common.UpdateResult{
		Acknowledged:  result.Acknowledged,
		MatchedCount:  result.MatchedCount,
		ModifiedCount: result.ModifiedCount,
	}, nil
}

func findFilter(params FilterParams) bson.M {
	filter := bson.M{}
	if params.Email != nil {
		filter["email"] = common.NormalizeEmail(*params.Email)
	}
	return filter
}

// setDocument builds a $set update that also stamps updatedAt.
func setDocument(fields bson.M, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	for k, v := range fields {
		set[k] = v
	}
	return bson.M{"$set": set}
}
