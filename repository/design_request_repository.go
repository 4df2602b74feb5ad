package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yashrajoria/streetwear-backend/models"
)

const designRequestCollection = "design_requests"

// DesignRequestRepository stores customization and custom print requests.
type DesignRequestRepository interface {
	Create(ctx context.Context, req *models.DesignRequest) error
	FindAll(ctx context.Context, kind models.DesignRequestKind, status models.DesignStatus, page, limit int) ([]models.DesignRequest, int64, error)
	FindByID(ctx context.Context, id string) (*models.DesignRequest, error)
	UpdateStatus(ctx context.Context, id string, status models.DesignStatus, adminNotes string) (*models.DesignRequest, error)
	CountByStatus(ctx context.Context, status models.DesignStatus) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type MongoDesignRequestRepository struct {
	collection *mongo.Collection
}

func NewMongoDesignRequestRepository(db *mongo.Database) DesignRequestRepository {
	return &MongoDesignRequestRepository{collection: db.Collection(designRequestCollection)}
}

func (r *MongoDesignRequestRepository) Create(ctx context.Context, req *models.DesignRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, req)
	return err
}

func (r *MongoDesignRequestRepository) FindAll(ctx context.Context, kind models.DesignRequestKind, status models.DesignStatus, page, limit int) ([]models.DesignRequest, int64, error) {
	filter := bson.M{"kind": kind}
	if status != "" {
		filter["status"] = status
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(offset(page, limit))).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	requests := []models.DesignRequest{}
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

func (r *MongoDesignRequestRepository) FindByID(ctx context.Context, id string) (*models.DesignRequest, error) {
	var req models.DesignRequest
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&req); err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

// UpdateStatus returns the document as it is after the update.
func (r *MongoDesignRequestRepository) UpdateStatus(ctx context.Context, id string, status models.DesignStatus, adminNotes string) (*models.DesignRequest, error) {
	set := bson.M{"status": status, "updated_at": time.Now().UTC()}
	if adminNotes != "" {
		set["admin_notes"] = adminNotes
	}

	var req models.DesignRequest
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&req)
	if err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

func (r *MongoDesignRequestRepository) CountByStatus(ctx context.Context, status models.DesignStatus) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"status": status})
}

func (r *MongoDesignRequestRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	})
	return err
}
