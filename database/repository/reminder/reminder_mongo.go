package reminderRepo

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

// MongoReminderRepo implements ReminderRepository using MongoDB. The unique
// compound index on (related_entity_type, related_entity_id) is what makes
// InsertIfAbsent atomic across concurrent sweep processes.
type MongoReminderRepo struct {
	coll *mongo.Collection
}

// NewMongoReminderRepo creates a new instance of ReminderRepository using MongoDB.
func NewMongoReminderRepo() ReminderRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("notification_instances")
	repo := &MongoReminderRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoReminderRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "related_entity_type", Value: 1},
				{Key: "related_entity_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// ExistsByEntity reports whether a record exists for the given entity key.
func (r *MongoReminderRepo) ExistsByEntity(entityType, entityID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"related_entity_type": entityType,
		"related_entity_id":   entityID,
	}
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to look up reminder record for %s/%s: %w", entityType, entityID, err)
	}
	return count > 0, nil
}

// InsertIfAbsent inserts the record, relying on the unique index to reject
// a concurrent duplicate. A duplicate-key rejection is a normal outcome,
// not an error.
func (r *MongoReminderRepo) InsertIfAbsent(rec *models.ReminderRecord) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	rec.CreatedAt = time.Now()
	_, err := r.coll.InsertOne(ctx, rec)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to insert reminder record for %s/%s: %w",
			rec.RelatedEntityType, rec.RelatedEntityID, err)
	}
	return true, nil
}
