// File: internal/donation/repository.go
package donation

import (
	"context"
	"errors"
	"fmt"

	"blad_backend/internal/common"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Repository defines the interface for donation request data operations.
type Repository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, req *Request) error
	Find(ctx context.Context, params FilterParams) ([]Request, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*Request, error)
	Replace(ctx context.Context, req *Request) (*common.UpdateResult, error)
	Delete(ctx context.Context, id bson.ObjectID) (*common.DeleteResult, error)
}

const CollectionName = "requests"

type mongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository creates a donation request repository over the requests collection.
func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{coll: db.Collection(CollectionName)}
}

// EnsureIndexes indexes requests by requester for the reqEmail filter.
func (r *mongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "reqEmail", Value: 1}},
		Options: options.Index().SetName("idx_req_email"),
	})
	if err != nil {
		return fmt.Errorf("failed to create request indexes: %w", err)
	}
	return nil
}

func (r *mongoRepository) Create(ctx context.Context, req *Request) error {
	result, err := r.coll.InsertOne(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to insert donation request: %w", err)
	}
	id, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return errors.New("failed to convert inserted ID to ObjectID")
	}
	req.ID = id
	return nil
}

// Find lists requests matching params, oldest first.
func (r *mongoRepository) Find(ctx context.Context, params FilterParams) ([]Request, error) {
	cursor, err := r.coll.Find(ctx, findFilter(params), options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query donation requests: %w", err)
	}
	defer cursor.Close(ctx)

	requests := make([]Request, 0)
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode donation requests: %w", err)
	}
	return requests, nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id bson.ObjectID) (*Request, error) {
	var req Request
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound.WithDetails("Donation request not found.")
		}
		return nil, fmt.Errorf("failed to find donation request: %w", err)
	}
	return &req, nil
}

// Replace overwrites the stored document with the same ID.
func (r *mongoRepository) Replace(ctx context.Context, req *Request) (*common.UpdateResult, error) {
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": req.ID}, req)
	if err != nil {
		return nil, fmt.Errorf("failed to replace donation request %s: %w", req.ID.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return nil, common.ErrNotFound.WithDetails("Donation request not found.")
	}
	return &common.UpdateResult{
		Acknowledged:  result.Acknowledged,
		MatchedCount:  result.MatchedCount,
		ModifiedCount: result.ModifiedCount,
	}, nil
}

func (r *mongoRepository) Delete(ctx context.Context, id bson.ObjectID) (*common.DeleteResult, error) {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to delete donation request %s: %w", id.Hex(), err)
	}
	if result.DeletedCount == 0 {
		return nil, common.ErrNotFound.WithDetails("Donation request not found.")
	}
	return &common.DeleteResult{
		Acknowledged: result.Acknowledged,
		DeletedCount: result.DeletedCount,
	}, nil
}

func findFilter(params FilterParams) bson.M {
	filter := bson.M{}
	if params.RequesterEmail != nil {
		filter["reqEmail"] = common.NormalizeEmail(*params.RequesterEmail)
	}
	return filter
}
