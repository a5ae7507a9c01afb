package repositories

import (
	"context"
	"time"

	"github.com/anonto42/high-five/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActivityRepository defines the interface for the shared activity stream
type ActivityRepository interface {
	RecordActivity(ctx context.Context, entry *models.ActivityEntry) (string, error)
	// RetractActivity deletes every entry of the given type for the user.
	RetractActivity(ctx context.Context, userID uint, activityType models.ActivityType) error
	GetByUser(ctx context.Context, userID uint, skip, limit int64) ([]models.ActivityEntry, error)
	GetSitewide(ctx context.Context, skip, limit int64) ([]models.ActivityEntry, error)
	HasEntry(ctx context.Context, userID uint, activityType models.ActivityType, itemID uint) (bool, error)
	CountByUserAndType(ctx context.Context, userID uint, activityType models.ActivityType) (int64, error)
	DeleteAllForUser(ctx context.Context, userID uint) error
}

// MongoActivityRepository implements ActivityRepository for MongoDB
type MongoActivityRepository struct {
	collection *mongo.Collection
}

// NewMongoActivityRepository creates a new MongoActivityRepository
func NewMongoActivityRepository(db *mongo.Database) *MongoActivityRepository {
	return &MongoActivityRepository{collection: db.Collection("activity")}
}

// RecordActivity appends a new entry to the stream and returns its ID
func (r *MongoActivityRepository) RecordActivity(ctx context.Context, entry *models.ActivityEntry) (string, error) {
	entry.ID = primitive.NewObjectID()
	if entry.Component == "" {
		entry.Component = models.ActivityComponent
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return "", err
	}
	return entry.ID.Hex(), nil
}

// RetractActivity deletes all entries of one type for a user. Accepting the
// terms retracts rejected_terms entries and vice versa.
func (r *MongoActivityRepository) RetractActivity(ctx context.Context, userID uint, activityType models.ActivityType) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID, "type": activityType})
	return err
}

// GetByUser retrieves a user's activity entries, newest first
func (r *MongoActivityRepository) GetByUser(ctx context.Context, userID uint, skip, limit int64) ([]models.ActivityEntry, error) {
	var entries []models.ActivityEntry
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "recorded_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetSitewide retrieves entries visible on the sitewide stream, newest first
func (r *MongoActivityRepository) GetSitewide(ctx context.Context, skip, limit int64) ([]models.ActivityEntry, error) {
	var entries []models.ActivityEntry
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "recorded_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"hide_sitewide": false}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// HasEntry reports whether an entry of the given type already exists for the
// (user, item) pair. Used by the high-five activity dedup policy.
func (r *MongoActivityRepository) HasEntry(ctx context.Context, userID uint, activityType models.ActivityType, itemID uint) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"user_id": userID, "type": activityType, "item_id": itemID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByUserAndType counts entries of one type for a user
func (r *MongoActivityRepository) CountByUserAndType(ctx context.Context, userID uint, activityType models.ActivityType) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"user_id": userID, "type": activityType})
}

// DeleteAllForUser removes every entry the user authored or is the item of
func (r *MongoActivityRepository) DeleteAllForUser(ctx context.Context, userID uint) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"$or": []bson.M{
		{"user_id": userID},
		{"item_id": userID},
	}})
	return err
}
