package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anonto42/snapgram/backend/internal/errs"
	"github.com/anonto42/snapgram/backend/internal/models"
)

// SavedPostRepository defines the interface for saved post join documents.
// Records live and die independently of the posts they point at.
type SavedPostRepository interface {
	CreateSavedPost(ctx context.Context, saved *models.SavedPost) error
	DeleteSavedPost(ctx context.Context, recordID string) error
	GetSavedPostsByUser(ctx context.Context, userID string) ([]models.SavedPost, error)
}

// MongoSavedPostRepository implements SavedPostRepository for MongoDB
type MongoSavedPostRepository struct {
	collection *mongo.Collection
}

// NewMongoSavedPostRepository creates a new MongoSavedPostRepository
func NewMongoSavedPostRepository(db *mongo.Database, collectionName string) *MongoSavedPostRepository {
	return &MongoSavedPostRepository{collection: db.Collection(collectionName)}
}

// CreateSavedPost creates a new saved post record in MongoDB
func (r *MongoSavedPostRepository) CreateSavedPost(ctx context.Context, saved *models.SavedPost) error {
	const op = "repositories.CreateSavedPost"
	saved.ID = primitive.NewObjectID()
	saved.CreatedAt = time.Now()
	if _, err := r.collection.InsertOne(ctx, saved); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.E(op, errs.KindConflict, err)
		}
		return errs.E(op, errs.KindTransient, err)
	}
	return nil
}

// DeleteSavedPost deletes a saved post record by ID from MongoDB
func (r *MongoSavedPostRepository) DeleteSavedPost(ctx context.Context, recordID string) error {
	const op = "repositories.DeleteSavedPost"
	objID, err := primitive.ObjectIDFromHex(recordID)
	if err != nil {
		return errs.Errorf(op, errs.KindValidation, "invalid record ID format: %v", err)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return errs.E(op, errs.KindTransient, err)
	}
	if res.DeletedCount == 0 {
		return errs.Errorf(op, errs.KindNotFound, "saved post %s not found", recordID)
	}
	return nil
}

// GetSavedPostsByUser retrieves a user's bookmarks, newest first
func (r *MongoSavedPostRepository) GetSavedPostsByUser(ctx context.Context, userID string) ([]models.SavedPost, error) {
	const op = "repositories.GetSavedPostsByUser"
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, errs.E(op, errs.KindTransient, err)
	}
	defer cursor.Close(ctx)

	saved := []models.SavedPost{}
	if err = cursor.All(ctx, &saved); err != nil {
		return nil, errs.E(op, errs.KindTransient, err)
	}
	return saved, nil
}
