package repository

import (
	"context"

	"memegrid/meme-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate record")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// MemeFilter narrows a meme listing. Zero values mean "no constraint".
type MemeFilter struct {
	Query    string // matched against title (case-insensitive substring)
	Tag      string
	Country  string
	Language string
	Limit    int64
}

// MemeRepository defines the interface for interacting with meme metadata.
type MemeRepository interface {
	Create(ctx context.Context, meme *domain.Meme) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Meme, error)
	List(ctx context.Context, filter MemeFilter) ([]domain.Meme, error)
	// IncrementViews / IncrementDownloads bump a counter atomically and return
	// the new value.
	IncrementViews(ctx context.Context, id primitive.ObjectID) (int64, error)
	IncrementDownloads(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// BookmarkRepository defines the interface for interacting with bookmarks.
type BookmarkRepository interface {
	Create(ctx context.Context, bookmark *domain.Bookmark) (primitive.ObjectID, error)
	Delete(ctx context.Context, userID, memeID primitive.ObjectID) error
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Bookmark, error)
}

// ReportRepository defines the interface for interacting with reports.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) (primitive.ObjectID, error)
	GetByReporterAndMeme(ctx context.Context, reporterID, memeID primitive.ObjectID) (*domain.Report, error)
}
