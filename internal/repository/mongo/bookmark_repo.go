package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"memegrid/meme-app/internal/domain"
	"memegrid/meme-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const bookmarkCollectionName = "bookmarks"

// mongoBookmarkRepository implements repository.BookmarkRepository
type mongoBookmarkRepository struct {
	collection *mongo.Collection
}

// NewMongoBookmarkRepository creates a new Bookmark repository backed by MongoDB.
func NewMongoBookmarkRepository(db *mongo.Database) repository.BookmarkRepository {
	return &mongoBookmarkRepository{
		collection: db.Collection(bookmarkCollectionName),
	}
}

// Create inserts a new bookmark. The unique (userId, memeId) index turns a
// double-add into repository.ErrDuplicate.
func (r *mongoBookmarkRepository) Create(ctx context.Context, bookmark *domain.Bookmark) (primitive.ObjectID, error) {
	if bookmark.UserID == primitive.NilObjectID || bookmark.MemeID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("user ID and meme ID are required")
	}

	bookmark.ID = primitive.NewObjectID()
	bookmark.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, bookmark)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// Delete removes a bookmark for the given user/meme pair.
func (r *mongoBookmarkRepository) Delete(ctx context.Context, userID, memeID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID, "memeId": memeID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// GetByUserID retrieves all bookmarks for a user, newest first.
func (r *mongoBookmarkRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Bookmark, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookmarks []domain.Bookmark
	if err = cursor.All(ctx, &bookmarks); err != nil {
		return nil, err
	}
	return bookmarks, nil
}

// EnsureBookmarkIndexes creates necessary indexes for the bookmarks collection.
// Call this once during application startup.
func EnsureBookmarkIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "memeId", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Printf("ERROR: Failed to create bookmark indexes: %v", err)
	}
}
