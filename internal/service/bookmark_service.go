package service

import (
	"context"
	"errors"

	"memegrid/meme-app/internal/domain"
	"memegrid/meme-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrAlreadyBookmarked = errors.New("meme is already bookmarked")
	ErrBookmarkNotFound  = errors.New("bookmark not found")
)

type BookmarkService interface {
	Add(ctx context.Context, userID primitive.ObjectID, memeID string) (*domain.Bookmark, error)
	Remove(ctx context.Context, userID primitive.ObjectID, memeID string) error
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Bookmark, error)
}

// bookmarkService implements the BookmarkService interface.
type bookmarkService struct {
	bookmarkRepo repository.BookmarkRepository
}

// NewBookmarkService creates a new instance of bookmarkService.
func NewBookmarkService(bookmarkRepo repository.BookmarkRepository) BookmarkService {
	return &bookmarkService{bookmarkRepo: bookmarkRepo}
}

// Add bookmarks a meme for a user.
func (s *bookmarkService) Add(ctx context.Context, userID primitive.ObjectID, memeID string) (*domain.Bookmark, error) {
	id, err := primitive.ObjectIDFromHex(memeID)
	if err != nil {
		return nil, ErrMemeNotFound
	}

	bookmark := &domain.Bookmark{
		UserID: userID,
		MemeID: id,
	}

	bookmarkID, err := s.bookmarkRepo.Create(ctx, bookmark)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyBookmarked
		}
		return nil, err
	}
	bookmark.ID = bookmarkID
	return bookmark, nil
}

// Remove deletes a user's bookmark for a meme.
func (s *bookmarkService) Remove(ctx context.Context, userID primitive.ObjectID, memeID string) error {
	id, err := primitive.ObjectIDFromHex(memeID)
	if err != nil {
		return ErrMemeNotFound
	}

	err = s.bookmarkRepo.Delete(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookmarkNotFound
		}
		return err
	}
	return nil
}

// ListByUser returns all of a user's bookmarks, newest first.
func (s *bookmarkService) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Bookmark, error) {
	return s.bookmarkRepo.GetByUserID(ctx, userID)
}
