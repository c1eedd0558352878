package templateRepo

import (
	"context"
	"fmt"
	"time"

	"courier/config"
	"courier/database"
	"courier/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTemplateRepo implements TemplateRepository using MongoDB.
type MongoTemplateRepo struct {
	coll *mongo.Collection
}

// NewMongoTemplateRepo creates a new instance of TemplateRepository using MongoDB.
func NewMongoTemplateRepo() TemplateRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("notification_templates")
	repo := &MongoTemplateRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoTemplateRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a template by its unique ID. A missing id yields
// ErrTemplateNotFound.
func (r *MongoTemplateRepo) GetByID(id string) (*models.NotificationTemplate, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var tpl models.NotificationTemplate
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&tpl); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("template %s: %w", id, ErrTemplateNotFound)
		}
		return nil, fmt.Errorf("failed to fetch template with id %s: %w", id, err)
	}
	return &tpl, nil
}

// GetAll retrieves all stored templates.
func (r *MongoTemplateRepo) GetAll() ([]models.NotificationTemplate, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve templates: %w", err)
	}
	defer cursor.Close(ctx)

	var templates []models.NotificationTemplate
	for cursor.Next(ctx) {
		var tpl models.NotificationTemplate
		if err := cursor.Decode(&tpl); err != nil {
			return nil, fmt.Errorf("failed to decode template: %w", err)
		}
		templates = append(templates, tpl)
	}
	return templates, nil
}

// Create inserts a new template document.
func (r *MongoTemplateRepo) Create(tpl *models.NotificationTemplate) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	tpl.CreatedAt = now
	tpl.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, tpl)
	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}
	return nil
}
