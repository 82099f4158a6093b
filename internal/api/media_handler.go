package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"memegrid/meme-app/internal/media"
	"memegrid/meme-app/internal/service"

	"github.com/gin-gonic/gin"
)

// MediaHandler serves the video pipeline endpoints: trim and download.
type MediaHandler struct {
	trimService     service.TrimService
	downloadService service.DownloadService
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(trimService service.TrimService, downloadService service.DownloadService) *MediaHandler {
	return &MediaHandler{
		trimService:     trimService,
		downloadService: downloadService,
	}
}

// --- Request Structs ---

type DownloadRequest struct {
	MemeID    string `json:"memeId" binding:"required"`
	Format    string `json:"format" binding:"required"`
	AudioType string `json:"audioType" binding:"required"` // "with" or "no"
}

// --- Handler Methods ---

// TrimVideo accepts a multipart upload plus start/end times and returns the
// trimmed clip as the response body. Nothing is persisted.
func (h *MediaHandler) TrimVideo(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "No file provided")
		return
	}

	startTime := c.PostForm("startTime")
	endTime := c.PostForm("endTime")
	if startTime == "" || endTime == "" {
		abortWithError(c, http.StatusBadRequest, "Start and end times required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}

	trimmed, err := h.trimService.Trim(c.Request.Context(), data, startTime, endTime)
	if err != nil {
		// Trimming is never silently degraded: a wrong trim would be worse
		// than an error.
		if errors.Is(err, service.ErrInvalidTrimRange) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, fmt.Sprintf("Failed to trim video: %v", err))
		}
		return
	}

	filename := fmt.Sprintf("trimmed_%d.mp4", time.Now().UnixMilli())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "video/mp4", trimmed)
}

// Download streams a stored meme video, optionally re-encoded into the
// requested format/audio configuration.
func (h *MediaHandler) Download(c *gin.Context) {
	var req DownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Missing required parameters")
		return
	}

	format, err := media.ParseFormat(req.Format)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.downloadService.Download(c.Request.Context(), service.DownloadRequest{
		MemeID:    req.MemeID,
		Format:    format,
		WithAudio: req.AudioType != "no",
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMemeNotFound):
			abortWithError(c, http.StatusNotFound, "Meme not found")
		case errors.Is(err, service.ErrSourceMissing):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrStorageFetch), errors.Is(err, service.ErrEmptyAsset):
			abortWithError(c, http.StatusInternalServerError, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Download failed")
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Header("Content-Length", strconv.Itoa(len(result.Data)))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
