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

const reportCollectionName = "reports"

// mongoReportRepository implements repository.ReportRepository
type mongoReportRepository struct {
	collection *mongo.Collection
}

// NewMongoReportRepository creates a new Report repository backed by MongoDB.
func NewMongoReportRepository(db *mongo.Database) repository.ReportRepository {
	return &mongoReportRepository{
		collection: db.Collection(reportCollectionName),
	}
}

// Create inserts a new report.
func (r *mongoReportRepository) Create(ctx context.Context, report *domain.Report) (primitive.ObjectID, error) {
	if report.MemeID == primitive.NilObjectID || report.ReporterID == primitive.NilObjectID || report.Reason == "" {
		return primitive.NilObjectID, errors.New("meme ID, reporter ID and reason are required")
	}

	report.ID = primitive.NewObjectID()
	if report.Status == "" {
		report.Status = domain.ReportStatusPending
	}
	report.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, report)
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

// GetByReporterAndMeme retrieves a report by reporter/meme pair, used to
// detect duplicate reports.
func (r *mongoReportRepository) GetByReporterAndMeme(ctx context.Context, reporterID, memeID primitive.ObjectID) (*domain.Report, error) {
	var report domain.Report
	filter := bson.M{"reporterId": reporterID, "memeId": memeID}

	err := r.collection.FindOne(ctx, filter).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

// EnsureReportIndexes creates necessary indexes for the reports collection.
// Call this once during application startup.
func EnsureReportIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "reporterId", Value: 1},
				{Key: "memeId", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Printf("ERROR: Failed to create report indexes: %v", err)
	}
}
