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
	ErrAlreadyReported = errors.New("you have already reported this meme")
)

type ReportService interface {
	Create(ctx context.Context, reporterID primitive.ObjectID, memeID, reason, comment string) (*domain.Report, error)
}

// reportService implements the ReportService interface.
type reportService struct {
	reportRepo repository.ReportRepository
	memeRepo   repository.MemeRepository
}

// NewReportService creates a new instance of reportService.
func NewReportService(reportRepo repository.ReportRepository, memeRepo repository.MemeRepository) ReportService {
	return &reportService{
		reportRepo: reportRepo,
		memeRepo:   memeRepo,
	}
}

// Create files a report against a meme. The meme must exist and a user may
// report a given meme only once.
func (s *reportService) Create(ctx context.Context, reporterID primitive.ObjectID, memeID, reason, comment string) (*domain.Report, error) {
	if reason == "" {
		return nil, errors.New("report reason is required")
	}

	id, err := primitive.ObjectIDFromHex(memeID)
	if err != nil {
		return nil, ErrMemeNotFound
	}

	// Confirm the meme exists before accepting a report against it.
	if _, err := s.memeRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemeNotFound
		}
		return nil, err
	}

	// Duplicate check; the unique index backs this up under races.
	if _, err := s.reportRepo.GetByReporterAndMeme(ctx, reporterID, id); err == nil {
		return nil, ErrAlreadyReported
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	report := &domain.Report{
		MemeID:     id,
		ReporterID: reporterID,
		Reason:     reason,
		Comment:    comment,
		Status:     domain.ReportStatusPending,
	}

	reportID, err := s.reportRepo.Create(ctx, report)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyReported
		}
		return nil, err
	}
	report.ID = reportID
	return report, nil
}
