package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"memegrid/meme-app/internal/domain"
	"memegrid/meme-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMemeUpload(t *testing.T) {
	store := newFakeStorage()
	repo := newFakeMemeRepo()
	svc := NewMemeService(repo, store, 1024)

	creatorID := primitive.NewObjectID()
	meme, err := svc.Upload(context.Background(), creatorID, "alice", UploadInput{
		FileName:    "my funny clip!.mp4",
		ContentType: "video/mp4",
		Data:        []byte("video bytes"),
		Title:       "  My Funny Clip  ",
		Description: "so funny",
		Tags:        []string{"funny"},
		Country:     "NG",
		Language:    "en",
	})
	require.NoError(t, err)

	assert.Equal(t, "My Funny Clip", meme.Title)
	assert.Equal(t, creatorID, meme.CreatorID)
	assert.NotEqual(t, primitive.NilObjectID, meme.ID)

	// The object key is sanitized and namespaced under videos/.
	require.Len(t, store.uploads, 1)
	key := store.uploads[0]
	assert.True(t, strings.HasPrefix(key, "videos/"), key)
	assert.NotContains(t, key, " ")
	assert.NotContains(t, key, "!")

	// The record points at the public URL for the stored object.
	assert.Equal(t, store.PublicURL(key), meme.VideoURL)
}

func TestMemeUploadCleansUpObjectWhenCreateFails(t *testing.T) {
	store := newFakeStorage()
	repo := newFakeMemeRepo()
	repo.createErr = errors.New("insert failed")
	svc := NewMemeService(repo, store, 1024)

	_, err := svc.Upload(context.Background(), primitive.NewObjectID(), "", UploadInput{
		FileName: "clip.mp4",
		Data:     []byte("bytes"),
		Title:    "Clip",
	})
	require.Error(t, err)

	// The stored object is removed when the metadata insert fails, leaving no
	// orphan in the bucket.
	require.Len(t, store.uploads, 1)
	assert.Equal(t, store.uploads, store.deletes)
	assert.Empty(t, store.objects)
}

func TestMemeNewUploadURL(t *testing.T) {
	store := newFakeStorage()
	svc := NewMemeService(newFakeMemeRepo(), store, 1024)

	upload, err := svc.NewUploadURL(context.Background(), "my clip!.mp4", "video/mp4")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(upload.ObjectKey, "videos/"), upload.ObjectKey)
	assert.NotContains(t, upload.ObjectKey, " ")
	assert.NotContains(t, upload.ObjectKey, "!")
	assert.Equal(t, "http://storage.local/presign/put/"+upload.ObjectKey, upload.URL)

	_, err = svc.NewUploadURL(context.Background(), "", "video/mp4")
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestMemeGetViewURL(t *testing.T) {
	store := newFakeStorage()
	repo := newFakeMemeRepo()
	svc := NewMemeService(repo, store, 1024)

	meme, err := svc.Upload(context.Background(), primitive.NewObjectID(), "", UploadInput{
		FileName: "clip.mp4",
		Data:     []byte("bytes"),
		Title:    "Clip",
	})
	require.NoError(t, err)

	// Stored objects resolve to a presigned GET URL on the object key.
	url, err := svc.GetViewURL(context.Background(), meme.ID.Hex())
	require.NoError(t, err)
	assert.Contains(t, url, "/presign/get/videos/")

	// Root-relative local asset paths pass through unchanged.
	local := &domain.Meme{
		ID:       primitive.NewObjectID(),
		Title:    "Sample",
		VideoURL: "/placeholders/video1.mp4",
	}
	repo.memes[local.ID] = local
	url, err = svc.GetViewURL(context.Background(), local.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "/placeholders/video1.mp4", url)

	_, err = svc.GetViewURL(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrMemeNotFound)
}

func TestMemeUploadRejectsOversizedFile(t *testing.T) {
	svc := NewMemeService(newFakeMemeRepo(), newFakeStorage(), 10)

	_, err := svc.Upload(context.Background(), primitive.NewObjectID(), "", UploadInput{
		FileName: "big.mp4",
		Data:     []byte("way more than ten bytes of video"),
		Title:    "Big",
	})
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestMemeUploadRequiresTitleAndFile(t *testing.T) {
	svc := NewMemeService(newFakeMemeRepo(), newFakeStorage(), 1024)

	_, err := svc.Upload(context.Background(), primitive.NewObjectID(), "", UploadInput{
		FileName: "clip.mp4",
		Data:     []byte("bytes"),
	})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.Upload(context.Background(), primitive.NewObjectID(), "", UploadInput{
		Title: "No file",
	})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestMemeUploadDropsAllPseudoRegion(t *testing.T) {
	store := newFakeStorage()
	svc := NewMemeService(newFakeMemeRepo(), store, 1024)

	meme, err := svc.Upload(context.Background(), primitive.NewObjectID(), "", UploadInput{
		FileName: "clip.mp4",
		Data:     []byte("bytes"),
		Title:    "Clip",
		Country:  "All",
		Language: "All",
	})
	require.NoError(t, err)
	assert.Empty(t, meme.Country)
	assert.Empty(t, meme.Language)
}

func TestMemeGetByID(t *testing.T) {
	repo := newFakeMemeRepo()
	svc := NewMemeService(repo, newFakeStorage(), 1024)

	meme, err := svc.Upload(context.Background(), primitive.NewObjectID(), "", UploadInput{
		FileName: "clip.mp4",
		Data:     []byte("bytes"),
		Title:    "Clip",
	})
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), meme.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, meme.Title, got.Title)

	_, err = svc.GetByID(context.Background(), "not-a-hex-id")
	assert.ErrorIs(t, err, ErrMemeNotFound)

	_, err = svc.GetByID(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrMemeNotFound)
}

func TestMemeCounters(t *testing.T) {
	repo := newFakeMemeRepo()
	svc := NewMemeService(repo, newFakeStorage(), 1024)

	meme, err := svc.Upload(context.Background(), primitive.NewObjectID(), "", UploadInput{
		FileName: "clip.mp4",
		Data:     []byte("bytes"),
		Title:    "Clip",
	})
	require.NoError(t, err)

	views, err := svc.IncrementViews(context.Background(), meme.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(1), views)

	downloads, err := svc.IncrementDownloads(context.Background(), meme.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(1), downloads)

	_, err = svc.IncrementViews(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrMemeNotFound)
}

func TestMemeList(t *testing.T) {
	repo := newFakeMemeRepo()
	svc := NewMemeService(repo, newFakeStorage(), 1024)

	for _, title := range []string{"One", "Two"} {
		_, err := svc.Upload(context.Background(), primitive.NewObjectID(), "", UploadInput{
			FileName: "clip.mp4",
			Data:     []byte("bytes"),
			Title:    title,
		})
		require.NoError(t, err)
	}

	memes, err := svc.List(context.Background(), repository.MemeFilter{})
	require.NoError(t, err)
	assert.Len(t, memes, 2)
}
