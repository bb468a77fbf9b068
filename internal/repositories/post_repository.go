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

// PostRepository defines the interface for post document operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	// GetRecentPosts returns the newest posts by creation time descending.
	GetRecentPosts(ctx context.Context, limit int64) ([]models.Post, error)
	// GetInfinitePosts returns a page ordered by last-update descending. A
	// non-empty cursor is the ID of the last item of the previous page;
	// results start strictly after it.
	GetInfinitePosts(ctx context.Context, cursor string, limit int64) ([]models.Post, error)
	// SearchPosts runs the store's full-text search over captions.
	SearchPosts(ctx context.Context, term string) ([]models.Post, error)
	GetPostsByCreator(ctx context.Context, creatorID string) ([]models.Post, error)
	UpdatePost(ctx context.Context, id string, post *models.Post) error
	// SetLikes overwrites the likes set. Last writer wins.
	SetLikes(ctx context.Context, id string, likes []string) (*models.Post, error)
	// AddLike and RemoveLike mutate the likes set atomically.
	AddLike(ctx context.Context, id, userID string) (*models.Post, error)
	RemoveLike(ctx context.Context, id, userID string) (*models.Post, error)
	DeletePost(ctx context.Context, id string) error
	// EnsureIndexes creates the caption text index and the keyset pagination
	// index. Called once at startup.
	EnsureIndexes(ctx context.Context) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database, collectionName string) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection(collectionName)}
}

// EnsureIndexes creates the indexes the query methods rely on
func (r *MongoPostRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "caption", Value: "text"}}},
		{Keys: bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: -1}}},
		{Keys: bson.D{{Key: "creator_id", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return errs.E("repositories.EnsureIndexes", errs.KindTransient, err)
	}
	return nil
}

// CreatePost creates a new post document in MongoDB
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	const op = "repositories.CreatePost"
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	if post.Tags == nil {
		post.Tags = []string{}
	}
	if post.Likes == nil {
		post.Likes = []string{}
	}
	if _, err := r.collection.InsertOne(ctx, post); err != nil {
		return errs.E(op, errs.KindTransient, err)
	}
	return nil
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	const op = "repositories.GetPostByID"
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.Errorf(op, errs.KindValidation, "invalid post ID format: %v", err)
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.Errorf(op, errs.KindNotFound, "post %s not found", id)
		}
		return nil, errs.E(op, errs.KindTransient, err)
	}
	return &post, nil
}

// GetRecentPosts retrieves the newest posts by creation time descending
func (r *MongoPostRepository) GetRecentPosts(ctx context.Context, limit int64) ([]models.Post, error) {
	const op = "repositories.GetRecentPosts"
	findOptions := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, errs.E(op, errs.KindTransient, err)
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, errs.E(op, errs.KindTransient, err)
	}
	return posts, nil
}

// GetInfinitePosts retrieves a page of posts ordered by last-update time
// descending, starting strictly after the cursor when one is supplied.
// Keyset pagination on (updated_at, _id) keeps pages stable under
// concurrent inserts.
func (r *MongoPostRepository) GetInfinitePosts(ctx context.Context, cursor string, limit int64) ([]models.Post, error) {
	const op = "repositories.GetInfinitePosts"

	filter := bson.M{}
	if cursor != "" {
		last, err := r.GetPostByID(ctx, cursor)
		if err != nil {
			return nil, err
		}
		filter = bson.M{"$or": []bson.M{
			{"updated_at": bson.M{"$lt": last.UpdatedAt}},
			{"updated_at": last.UpdatedAt, "_id": bson.M{"$lt": last.ID}},
		}}
	}

	findOptions := options.Find().
		SetLimit(limit).
		SetSort(bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, errs.E(op, errs.KindTransient, err)
	}
	defer cur.Close(ctx)

	posts := []models.Post{}
	if err = cur.All(ctx, &posts); err != nil {
		return nil, errs.E(op, errs.KindTransient, err)
	}
	return posts, nil
}

// SearchPosts runs a full-text search over post captions. Tokenization and
// ranking are whatever the store's text index defines.
func (r *MongoPostRepository) SearchPosts(ctx context.Context, term string) ([]models.Post, error) {
	const op = "repositories.SearchPosts"
	filter := bson.M{"$text": bson.M{"$search": term}}
	findOptions := options.Find().
		SetSort(bson.M{"score": bson.M{"$meta": "textScore"}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, errs.E(op, errs.KindTransient, err)
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, errs.E(op, errs.KindTransient, err)
	}
	return posts, nil
}

// GetPostsByCreator retrieves posts created by a specific profile
func (r *MongoPostRepository) GetPostsByCreator(ctx context.Context, creatorID string) ([]models.Post, error) {
	const op = "repositories.GetPostsByCreator"
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"creator_id": creatorID}, findOptions)
	if err != nil {
		return nil, errs.E(op, errs.KindTransient, err)
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, errs.E(op, errs.KindTransient, err)
	}
	return posts, nil
}

// UpdatePost updates the mutable fields of an existing post in MongoDB
func (r *MongoPostRepository) UpdatePost(ctx context.Context, id string, post *models.Post) error {
	const op = "repositories.UpdatePost"
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.Errorf(op, errs.KindValidation, "invalid post ID format: %v", err)
	}

	post.UpdatedAt = time.Now()
	if post.Tags == nil {
		post.Tags = []string{}
	}
	update := bson.M{
		"$set": bson.M{
			"caption":    post.Caption,
			"image_url":  post.ImageURL,
			"image_id":   post.ImageID,
			"location":   post.Location,
			"tags":       post.Tags,
			"updated_at": post.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return errs.E(op, errs.KindTransient, err)
	}
	if res.MatchedCount == 0 {
		return errs.Errorf(op, errs.KindNotFound, "post %s not found", id)
	}
	return nil
}

// SetLikes overwrites the likes set of a post and returns the updated
// document. Concurrent callers race; the last write wins.
func (r *MongoPostRepository) SetLikes(ctx context.Context, id string, likes []string) (*models.Post, error) {
	const op = "repositories.SetLikes"
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.Errorf(op, errs.KindValidation, "invalid post ID format: %v", err)
	}
	if likes == nil {
		likes = []string{}
	}
	return r.findOneAndUpdate(ctx, op, objID, bson.M{
		"$set": bson.M{"likes": likes, "updated_at": time.Now()},
	})
}

// AddLike adds a user to the likes set atomically
func (r *MongoPostRepository) AddLike(ctx context.Context, id, userID string) (*models.Post, error) {
	const op = "repositories.AddLike"
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.Errorf(op, errs.KindValidation, "invalid post ID format: %v", err)
	}
	return r.findOneAndUpdate(ctx, op, objID, bson.M{
		"$addToSet": bson.M{"likes": userID},
		"$set":      bson.M{"updated_at": time.Now()},
	})
}

// RemoveLike removes a user from the likes set atomically
func (r *MongoPostRepository) RemoveLike(ctx context.Context, id, userID string) (*models.Post, error) {
	const op = "repositories.RemoveLike"
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.Errorf(op, errs.KindValidation, "invalid post ID format: %v", err)
	}
	return r.findOneAndUpdate(ctx, op, objID, bson.M{
		"$pull": bson.M{"likes": userID},
		"$set":  bson.M{"updated_at": time.Now()},
	})
}

func (r *MongoPostRepository) findOneAndUpdate(ctx context.Context, op string, objID primitive.ObjectID, update bson.M) (*models.Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post models.Post
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.Errorf(op, errs.KindNotFound, "post %s not found", objID.Hex())
		}
		return nil, errs.E(op, errs.KindTransient, err)
	}
	return &post, nil
}

// DeletePost deletes a post by ID from MongoDB
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) error {
	const op = "repositories.DeletePost"
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.Errorf(op, errs.KindValidation, "invalid post ID format: %v", err)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return errs.E(op, errs.KindTransient, err)
	}
	if res.DeletedCount == 0 {
		return errs.Errorf(op, errs.KindNotFound, "post %s not found", id)
	}
	return nil
}
