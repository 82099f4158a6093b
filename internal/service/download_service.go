package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"memegrid/meme-app/internal/domain"
	"memegrid/meme-app/internal/media"
	"memegrid/meme-app/internal/repository"
	"memegrid/meme-app/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrStorageFetch  = errors.New("failed to fetch video from storage")
	ErrEmptyAsset    = errors.New("video file is empty or corrupt")
	ErrSourceMissing = errors.New("video URL not found for meme")
)

// DownloadRequest describes one download: which meme, which container format,
// and whether the audio stream should be kept.
type DownloadRequest struct {
	MemeID    string
	Format    media.Format
	WithAudio bool
}

// DownloadResult is the fully prepared response body and headers.
type DownloadResult struct {
	Data        []byte
	ContentType string
	FileName    string
}

type DownloadService interface {
	// Download locates the stored video, optionally re-encodes it to the
	// requested format/audio configuration, and returns the bytes to stream.
	// Re-encoding is best effort: on failure the original bytes are returned
	// so the user always gets a playable file.
	Download(ctx context.Context, req DownloadRequest) (*DownloadResult, error)
}

// downloadService implements the DownloadService interface.
type downloadService struct {
	memeRepo    repository.MemeRepository
	fileStorage storage.FileStorage
	transcoder  media.Transcoder
	// enableTranscode is the deployment capability flag: false means the
	// media tool is unavailable and the stored bytes are always returned
	// unchanged regardless of the requested format/audio.
	enableTranscode bool
	localAssetDir   string
	tempDir         string
}

// NewDownloadService creates a new instance of downloadService.
func NewDownloadService(
	memeRepo repository.MemeRepository,
	fileStorage storage.FileStorage,
	transcoder media.Transcoder,
	enableTranscode bool,
	localAssetDir string,
	tempDir string,
) DownloadService {
	if localAssetDir == "" {
		localAssetDir = "public"
	}
	return &downloadService{
		memeRepo:        memeRepo,
		fileStorage:     fileStorage,
		transcoder:      transcoder,
		enableTranscode: enableTranscode,
		localAssetDir:   localAssetDir,
		tempDir:         tempDir,
	}
}

// memeSource is one step in the ordered lookup chain. A false return means
// "miss, try the next source"; lookup errors are misses too.
type memeSource func(ctx context.Context, memeID string) (title, videoURL string, ok bool)

func (s *downloadService) Download(ctx context.Context, req DownloadRequest) (*DownloadResult, error) {
	// 1. Resolve the meme: primary store first, then the built-in samples.
	title, videoURL, err := s.lookup(ctx, req.MemeID)
	if err != nil {
		return nil, err
	}
	if videoURL == "" {
		return nil, ErrSourceMissing
	}

	// 2. Fetch the stored bytes.
	data, err := s.fetch(ctx, videoURL)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyAsset
	}

	// 3. Optional best-effort re-encode.
	finalData := data
	fileExtension := req.Format.Extension()

	if s.enableTranscode && (req.Format != media.FormatMP4 || !req.WithAudio) {
		converted, convErr := s.convert(ctx, req, data)
		if convErr != nil {
			// Degrade gracefully: a playable original beats an error when
			// post-processing is best effort.
			log.Printf("WARN: transcode failed for meme %s, returning original video: %v", req.MemeID, convErr)
			fileExtension = media.FormatMP4.Extension()
		} else {
			finalData = converted
		}
	}

	return &DownloadResult{
		Data:        finalData,
		ContentType: req.Format.ContentType(),
		FileName:    fmt.Sprintf("%s.%s", slugify(title), fileExtension),
	}, nil
}

// lookup walks the ordered source chain until one yields a record.
func (s *downloadService) lookup(ctx context.Context, memeID string) (string, string, error) {
	sources := []memeSource{s.lookupPrimary, s.lookupSample}
	for _, source := range sources {
		if title, videoURL, ok := source(ctx, memeID); ok {
			return title, videoURL, nil
		}
	}
	return "", "", ErrMemeNotFound
}

func (s *downloadService) lookupPrimary(ctx context.Context, memeID string) (string, string, bool) {
	id, err := primitive.ObjectIDFromHex(memeID)
	if err != nil {
		return "", "", false
	}
	meme, err := s.memeRepo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("WARN: primary meme lookup failed for %s: %v", memeID, err)
		}
		return "", "", false
	}
	return meme.Title, meme.VideoURL, true
}

func (s *downloadService) lookupSample(_ context.Context, memeID string) (string, string, bool) {
	sample, ok := domain.FindSampleMeme(memeID)
	if !ok {
		return "", "", false
	}
	return sample.Title, sample.VideoURL, true
}

// fetch resolves the stored location and reads the bytes. Three shapes are
// recognized: a full storage URL (reduced to its object key), a root-relative
// local asset path, and a bare object key.
func (s *downloadService) fetch(ctx context.Context, videoURL string) ([]byte, error) {
	if strings.HasPrefix(videoURL, "/") {
		localPath := filepath.Join(s.localAssetDir, filepath.FromSlash(strings.TrimPrefix(videoURL, "/")))
		data, err := os.ReadFile(localPath)
		if err != nil {
			return nil, fmt.Errorf("%w: local asset %s: %v", ErrStorageFetch, videoURL, err)
		}
		return data, nil
	}

	objectKey := videoURL
	if key, ok := s.fileStorage.ObjectKeyFromURL(videoURL); ok {
		objectKey = key
	}

	data, err := s.fileStorage.Download(ctx, objectKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFetch, err)
	}
	return data, nil
}

// convert round-trips the bytes through temp files and the transcoder.
// Both files are removed on every exit path.
func (s *downloadService) convert(ctx context.Context, req DownloadRequest, data []byte) ([]byte, error) {
	tempDir := s.tempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}

	uniqueID := uuid.NewString()
	inputPath := filepath.Join(tempDir, fmt.Sprintf("download-%s-input.mp4", uniqueID))
	outputPath := filepath.Join(tempDir, fmt.Sprintf("download-%s-output.%s", uniqueID, req.Format.Extension()))
	defer os.Remove(inputPath)
	defer os.Remove(outputPath)

	if err := os.WriteFile(inputPath, data, 0o600); err != nil {
		return nil, err
	}

	if err := s.transcoder.Convert(ctx, inputPath, outputPath, req.Format, req.WithAudio); err != nil {
		return nil, err
	}

	return os.ReadFile(outputPath)
}

var slugSanitizer = regexp.MustCompile(`[^a-zA-Z0-9]`)

// slugify turns a meme title into a safe attachment filename stem.
func slugify(title string) string {
	slug := strings.ToLower(slugSanitizer.ReplaceAllString(title, "-"))
	if slug == "" {
		slug = "meme"
	}
	return slug
}
