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

// TemplateRepo handles MongoDB operations for audit templates
type TemplateRepo interface {
	Create(ctx context.Context, tpl *model.Template) (string, error)
	GetByID(ctx context.Context, id string) (*model.Template, error)
	List(ctx context.Context) ([]*model.Template, error)
	Update(ctx context.Context, tpl *model.Template) error
	Delete(ctx context.Context, id string) error
}

type templateRepo struct {
	collection *mongo.Collection
}

// NewTemplateRepo creates a new template repository
func NewTemplateRepo(db *mongo.Database) TemplateRepo {
	return &templateRepo{
		collection: db.Collection("templates"),
	}
}

func (r *templateRepo) Create(ctx context.Context, tpl *model.Template) (string, error) {
	if tpl.ID == "" {
		tpl.ID = uuid.New().String()
	}
	tpl.CreatedAt = time.Now()
	tpl.UpdatedAt = tpl.CreatedAt

	if _, err := r.collection.InsertOne(ctx, tpl); err != nil {
		return "", err
	}
	return tpl.ID, nil
}

func (r *templateRepo) GetByID(ctx context.Context, id string) (*model.Template, error) {
	var tpl model.Template
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&tpl)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *templateRepo) List(ctx context.Context) ([]*model.Template, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	templates := []*model.Template{}
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// Update replaces the template and reports ErrNotFound when nothing matched
func (r *templateRepo) Update(ctx context.Context, tpl *model.Template) error {
	tpl.UpdatedAt = time.Now()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": tpl.ID}, tpl)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *templateRepo) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
