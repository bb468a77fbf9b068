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

// defaultUsersLimit caps unbounded profile listings.
const defaultUsersLimit = 50

// UserRepository defines the interface for profile document operations
type UserRepository interface {
	CreateProfile(ctx context.Context, profile *models.UserProfile) error
	GetProfileByID(ctx context.Context, id string) (*models.UserProfile, error)
	// GetProfileByAccountID returns the first profile whose account_id
	// matches, mirroring an equality-filter listDocuments call.
	GetProfileByAccountID(ctx context.Context, accountID string) (*models.UserProfile, error)
	GetProfiles(ctx context.Context, limit int64) ([]models.UserProfile, error)
	UpdateProfile(ctx context.Context, id string, profile *models.UserProfile) error
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository. The collection
// name comes from configuration, not a literal.
func NewMongoUserRepository(db *mongo.Database, collectionName string) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection(collectionName)}
}

// CreateProfile creates a new profile document in MongoDB
func (r *MongoUserRepository) CreateProfile(ctx context.Context, profile *models.UserProfile) error {
	const op = "repositories.CreateProfile"
	profile.ID = primitive.NewObjectID()
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt
	if _, err := r.collection.InsertOne(ctx, profile); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.E(op, errs.KindConflict, err)
		}
		return errs.E(op, errs.KindTransient, err)
	}
	return nil
}

// GetProfileByID retrieves a profile by document ID from MongoDB
func (r *MongoUserRepository) GetProfileByID(ctx context.Context, id string) (*models.UserProfile, error) {
	const op = "repositories.GetProfileByID"
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.Errorf(op, errs.KindValidation, "invalid profile ID format: %v", err)
	}

	var profile models.UserProfile
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.Errorf(op, errs.KindNotFound, "profile %s not found", id)
		}
		return nil, errs.E(op, errs.KindTransient, err)
	}
	return &profile, nil
}

// GetProfileByAccountID retrieves the profile owned by an account
func (r *MongoUserRepository) GetProfileByAccountID(ctx context.Context, accountID string) (*models.UserProfile, error) {
	const op = "repositories.GetProfileByAccountID"
	var profile models.UserProfile
	err := r.collection.FindOne(ctx, bson.M{"account_id": accountID}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.Errorf(op, errs.KindNotFound, "no profile for account %s", accountID)
		}
		return nil, errs.E(op, errs.KindTransient, err)
	}
	return &profile, nil
}

// GetProfiles retrieves profiles ordered by creation time descending
func (r *MongoUserRepository) GetProfiles(ctx context.Context, limit int64) ([]models.UserProfile, error) {
	const op = "repositories.GetProfiles"
	if limit <= 0 {
		limit = defaultUsersLimit
	}
	findOptions := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, errs.E(op, errs.KindTransient, err)
	}
	defer cursor.Close(ctx)

	profiles := []models.UserProfile{}
	if err = cursor.All(ctx, &profiles); err != nil {
		return nil, errs.E(op, errs.KindTransient, err)
	}
	return profiles, nil
}

// UpdateProfile updates mutable profile fields in MongoDB
func (r *MongoUserRepository) UpdateProfile(ctx context.Context, id string, profile *models.UserProfile) error {
	const op = "repositories.UpdateProfile"
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.Errorf(op, errs.KindValidation, "invalid profile ID format: %v", err)
	}

	profile.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"name":       profile.Name,
			"username":   profile.Username,
			"bio":        profile.Bio,
			"image_url":  profile.ImageURL,
			"image_id":   profile.ImageID,
			"updated_at": profile.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return errs.E(op, errs.KindTransient, err)
	}
	if res.MatchedCount == 0 {
		return errs.Errorf(op, errs.KindNotFound, "profile %s not found", id)
	}
	return nil
}
