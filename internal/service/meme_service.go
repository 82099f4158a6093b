package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path"
	"regexp"
	"strings"

	"memegrid/meme-app/internal/domain"
	"memegrid/meme-app/internal/repository"
	"memegrid/meme-app/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrMemeNotFound     = errors.New("meme not found")
	ErrValidationFailed = errors.New("meme validation failed")
	ErrFileTooLarge     = errors.New("file size exceeds the upload limit")
	ErrUploadFailed     = errors.New("failed to store the uploaded video")
)

// UploadInput carries everything the upload endpoint collected from the form.
type UploadInput struct {
	FileName    string
	ContentType string
	Data        []byte
	Title       string
	Description string
	Tags        []string
	Country     string
	Language    string
}

// UploadURL is a presigned PUT target plus the object key the client must
// upload to.
type UploadURL struct {
	URL       string `json:"url"`
	ObjectKey string `json:"objectKey"`
}

type MemeService interface {
	Upload(ctx context.Context, creatorID primitive.ObjectID, creatorName string, in UploadInput) (*domain.Meme, error)
	// NewUploadURL issues a presigned PUT URL for uploading directly to object
	// storage, bypassing the API server for the byte transfer.
	NewUploadURL(ctx context.Context, fileName, contentType string) (*UploadURL, error)
	GetByID(ctx context.Context, memeID string) (*domain.Meme, error)
	// GetViewURL returns a short-lived streaming URL for a meme's video.
	GetViewURL(ctx context.Context, memeID string) (string, error)
	List(ctx context.Context, filter repository.MemeFilter) ([]domain.Meme, error)
	IncrementViews(ctx context.Context, memeID string) (int64, error)
	IncrementDownloads(ctx context.Context, memeID string) (int64, error)
}

// memeService implements the MemeService interface.
type memeService struct {
	memeRepo       repository.MemeRepository
	fileStorage    storage.FileStorage
	maxUploadBytes int64
}

// NewMemeService creates a new instance of memeService.
func NewMemeService(memeRepo repository.MemeRepository, fileStorage storage.FileStorage, maxUploadBytes int64) MemeService {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 * 1024 * 1024
	}
	return &memeService{
		memeRepo:       memeRepo,
		fileStorage:    fileStorage,
		maxUploadBytes: maxUploadBytes,
	}
}

var objectKeySanitizer = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// newObjectKey builds a unique storage key from a client file name.
func newObjectKey(fileName string) string {
	sanitized := objectKeySanitizer.ReplaceAllString(fileName, "_")
	if len(sanitized) > 200 {
		sanitized = sanitized[:200]
	}
	return path.Join("videos", fmt.Sprintf("%s_%s", uuid.NewString(), sanitized))
}

// Upload stores the video bytes in object storage and creates the meme record.
func (s *memeService) Upload(ctx context.Context, creatorID primitive.ObjectID, creatorName string, in UploadInput) (*domain.Meme, error) {
	// 1. Validate inputs
	if creatorID == primitive.NilObjectID {
		return nil, errors.New("creator ID is required")
	}
	if in.Title == "" || len(in.Data) == 0 {
		return nil, fmt.Errorf("%w: file and title are required", ErrValidationFailed)
	}
	if int64(len(in.Data)) > s.maxUploadBytes {
		return nil, fmt.Errorf("%w: your file is %.2fMB", ErrFileTooLarge, float64(len(in.Data))/1024/1024)
	}
	contentType := in.ContentType
	if contentType == "" {
		contentType = "video/mp4"
	}

	// 2. Generate a unique object key from a sanitized filename
	objectKey := newObjectKey(in.FileName)

	// 3. Store the bytes
	if err := s.fileStorage.Upload(ctx, objectKey, in.Data, contentType); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	// 4. Create the metadata record pointing at the public URL
	meme := &domain.Meme{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		VideoURL:    s.fileStorage.PublicURL(objectKey),
		CreatorID:   creatorID,
		CreatorName: creatorName,
		Tags:        in.Tags,
		Country:     normalizeRegion(in.Country),
		Language:    normalizeRegion(in.Language),
	}

	memeID, err := s.memeRepo.Create(ctx, meme)
	if err != nil {
		// The bytes are already in storage; remove them so a failed metadata
		// insert does not leak an orphaned object.
		if delErr := s.fileStorage.DeleteObject(ctx, objectKey); delErr != nil {
			log.Printf("ERROR: Failed to clean up object '%s' after meme create failure: %v", objectKey, delErr)
		}
		return nil, err
	}
	meme.ID = memeID
	return meme, nil
}

// NewUploadURL issues a presigned PUT URL for client-direct upload. The
// metadata record is created separately once the client finishes the transfer.
func (s *memeService) NewUploadURL(ctx context.Context, fileName, contentType string) (*UploadURL, error) {
	if fileName == "" {
		return nil, fmt.Errorf("%w: file name is required", ErrValidationFailed)
	}
	if contentType == "" {
		contentType = "video/mp4"
	}

	objectKey := newObjectKey(fileName)
	url, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	return &UploadURL{URL: url, ObjectKey: objectKey}, nil
}

// GetByID retrieves a single meme.
func (s *memeService) GetByID(ctx context.Context, memeID string) (*domain.Meme, error) {
	id, err := primitive.ObjectIDFromHex(memeID)
	if err != nil {
		return nil, ErrMemeNotFound
	}
	meme, err := s.memeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemeNotFound
		}
		return nil, err
	}
	return meme, nil
}

// GetViewURL resolves a meme's video to a streaming URL. Local asset paths
// pass through unchanged; stored objects get a presigned GET URL so the bytes
// stream from storage rather than through the API server.
func (s *memeService) GetViewURL(ctx context.Context, memeID string) (string, error) {
	meme, err := s.GetByID(ctx, memeID)
	if err != nil {
		return "", err
	}
	if meme.VideoURL == "" {
		return "", ErrMemeNotFound
	}
	if strings.HasPrefix(meme.VideoURL, "/") {
		return meme.VideoURL, nil
	}

	objectKey := meme.VideoURL
	if key, ok := s.fileStorage.ObjectKeyFromURL(meme.VideoURL); ok {
		objectKey = key
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, storage.DefaultPresignedURLExpiry)
}

// List retrieves memes matching the filter for the feed.
func (s *memeService) List(ctx context.Context, filter repository.MemeFilter) ([]domain.Meme, error) {
	return s.memeRepo.List(ctx, filter)
}

// IncrementViews bumps the view counter for a meme.
func (s *memeService) IncrementViews(ctx context.Context, memeID string) (int64, error) {
	return s.increment(ctx, memeID, s.memeRepo.IncrementViews)
}

// IncrementDownloads bumps the download counter for a meme.
func (s *memeService) IncrementDownloads(ctx context.Context, memeID string) (int64, error) {
	return s.increment(ctx, memeID, s.memeRepo.IncrementDownloads)
}

func (s *memeService) increment(ctx context.Context, memeID string, fn func(context.Context, primitive.ObjectID) (int64, error)) (int64, error) {
	id, err := primitive.ObjectIDFromHex(memeID)
	if err != nil {
		return 0, ErrMemeNotFound
	}
	count, err := fn(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrMemeNotFound
		}
		return 0, err
	}
	return count, nil
}

// normalizeRegion drops the "All" pseudo-value the filter UI sends.
func normalizeRegion(v string) string {
	if v == "All" {
		return ""
	}
	return v
}
