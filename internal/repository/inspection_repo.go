package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storeaudit/internal/model"
)

// InspectionRepo stores scored inspections
type InspectionRepo interface {
	Create(ctx context.Context, insp *model.Inspection) error
	GetByID(ctx context.Context, id string) (*model.Inspection, error)
	ListByStore(ctx context.Context, storeID string, limit int64) ([]*model.Inspection, error)
	ListByTemplate(ctx context.Context, templateID string) ([]*model.Inspection, error)
}

type inspectionRepo struct {
	collection *mongo.Collection
}

// NewInspectionRepo creates a new inspection repository
func NewInspectionRepo(db *mongo.Database) InspectionRepo {
	return &inspectionRepo{
		collection: db.Collection("inspections"),
	}
}

func (r *inspectionRepo) Create(ctx context.Context, insp *model.Inspection) error {
	if insp.ID == "" {
		insp.ID = uuid.New().String()
	}
	if insp.CreatedAt.IsZero() {
		insp.CreatedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, insp)
	return err
}

func (r *inspectionRepo) GetByID(ctx context.Context, id string) (*model.Inspection, error) {
	var insp model.Inspection
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&insp)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &insp, nil
}

// ListByStore returns the newest inspections of a store first
func (r *inspectionRepo) ListByStore(ctx context.Context, storeID string, limit int64) ([]*model.Inspection, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return r.find(ctx, bson.M{"storeId": storeID}, opts)
}

func (r *inspectionRepo) ListByTemplate(ctx context.Context, templateID string) ([]*model.Inspection, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	return r.find(ctx, bson.M{"templateId": templateID}, opts)
}

func (r *inspectionRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Inspection, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	inspections := []*model.Inspection{}
	if err := cursor.All(ctx, &inspections); err != nil {
		return nil, err
	}
	return inspections, nil
}
