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

const memeCollectionName = "memes"

const defaultListLimit = 100

// mongoMemeRepository implements repository.MemeRepository
type mongoMemeRepository struct {
	collection *mongo.Collection
}

// NewMongoMemeRepository creates a new Meme repository backed by MongoDB.
func NewMongoMemeRepository(db *mongo.Database) repository.MemeRepository {
	return &mongoMemeRepository{
		collection: db.Collection(memeCollectionName),
	}
}

// Create inserts a new meme into the database.
func (r *mongoMemeRepository) Create(ctx context.Context, meme *domain.Meme) (primitive.ObjectID, error) {
	if meme.Title == "" || meme.VideoURL == "" || meme.CreatorID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("meme title, video URL and creator ID are required")
	}

	meme.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	meme.CreatedAt = now
	meme.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, meme)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a meme by its ID.
func (r *mongoMemeRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Meme, error) {
	var meme domain.Meme
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&meme)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &meme, nil
}

// List retrieves memes matching the filter, newest first.
func (r *mongoMemeRepository) List(ctx context.Context, filter repository.MemeFilter) ([]domain.Meme, error) {
	query := bson.M{}
	if filter.Query != "" {
		query["title"] = bson.M{"$regex": primitive.Regex{Pattern: filter.Query, Options: "i"}}
	}
	if filter.Tag != "" {
		query["tags"] = filter.Tag
	}
	if filter.Country != "" {
		query["country"] = filter.Country
	}
	if filter.Language != "" {
		query["language"] = filter.Language
	}

	limit := filter.Limit
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var memes []domain.Meme
	if err = cursor.All(ctx, &memes); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return memes, nil
}

// IncrementViews atomically bumps the view counter and returns the new value.
func (r *mongoMemeRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return r.incrementCounter(ctx, id, "views")
}

// IncrementDownloads atomically bumps the download counter and returns the new value.
func (r *mongoMemeRepository) IncrementDownloads(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return r.incrementCounter(ctx, id, "downloads")
}

func (r *mongoMemeRepository) incrementCounter(ctx context.Context, id primitive.ObjectID, field string) (int64, error) {
	update := bson.M{
		"$inc": bson.M{field: 1},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var meme domain.Meme
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&meme)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, repository.ErrNotFound
		}
		return 0, err
	}

	if field == "downloads" {
		return meme.Downloads, nil
	}
	return meme.Views, nil
}

// EnsureMemeIndexes creates necessary indexes for the memes collection.
// Call this once during application startup.
func EnsureMemeIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}}, // Feed sort order
		},
		{
			Keys: bson.D{{Key: "creatorId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "tags", Value: 1}},
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Printf("ERROR: Failed to create meme indexes: %v", err)
	}
}
