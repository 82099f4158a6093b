package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"memegrid/meme-app/internal/repository"
	"memegrid/meme-app/internal/service"

	"github.com/gin-gonic/gin"
)

// MemeHandler serves meme CRUD: upload, feed listing and counter updates.
type MemeHandler struct {
	memeService service.MemeService
	jwtSecret   string
}

// NewMemeHandler creates a new MemeHandler.
func NewMemeHandler(memeService service.MemeService, jwtSecret string) *MemeHandler {
	return &MemeHandler{
		memeService: memeService,
		jwtSecret:   jwtSecret,
	}
}

// --- Request Structs ---

type CounterRequest struct {
	Action string `json:"action" binding:"required"`
}

type UploadURLRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType"`
}

// --- Handler Methods ---

// Upload accepts a multipart video upload, stores it and creates the meme record.
func (h *MemeHandler) Upload(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Missing required fields (file, title)")
		return
	}
	title := c.PostForm("title")
	if title == "" {
		abortWithError(c, http.StatusBadRequest, "Missing required fields (file, title)")
		return
	}

	// Tags arrive as a JSON-encoded array in the form field.
	var tags []string
	if raw := c.PostForm("tags"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &tags); err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid tags field: expected a JSON array")
			return
		}
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

	meme, err := h.memeService.Upload(c.Request.Context(), userID, c.PostForm("creator_name"), service.UploadInput{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
		Title:       title,
		Description: c.PostForm("description"),
		Tags:        tags,
		Country:     c.PostForm("country"),
		Language:    c.PostForm("language"),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidationFailed), errors.Is(err, service.ErrFileTooLarge):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUploadFailed):
			abortWithError(c, http.StatusInternalServerError, fmt.Sprintf("Upload failed: %v", err))
		default:
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during upload")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Meme uploaded successfully", "meme": meme})
}

// NewUploadURL issues a presigned PUT URL so clients can push video bytes
// directly to object storage instead of through this server.
func (h *MemeHandler) NewUploadURL(c *gin.Context) {
	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "fileName is required")
		return
	}

	upload, err := h.memeService.NewUploadURL(c.Request.Context(), req.FileName, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL")
		}
		return
	}

	c.JSON(http.StatusOK, upload)
}

// GetViewURL returns a short-lived streaming URL for a meme's video.
func (h *MemeHandler) GetViewURL(c *gin.Context) {
	url, err := h.memeService.GetViewURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrMemeNotFound) {
			abortWithError(c, http.StatusNotFound, "Meme not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to generate view URL")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// ListMemes returns the feed, optionally filtered by query/tag/country/language.
func (h *MemeHandler) ListMemes(c *gin.Context) {
	var limit int64
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			abortWithError(c, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	memes, err := h.memeService.List(c.Request.Context(), repository.MemeFilter{
		Query:    c.Query("q"),
		Tag:      c.Query("tag"),
		Country:  c.Query("country"),
		Language: c.Query("language"),
		Limit:    limit,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list memes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"memes": memes})
}

// GetMeme returns a single meme by ID.
func (h *MemeHandler) GetMeme(c *gin.Context) {
	meme, err := h.memeService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrMemeNotFound) {
			abortWithError(c, http.StatusNotFound, "Meme not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to fetch meme")
		}
		return
	}
	c.JSON(http.StatusOK, meme)
}

// UpdateCounters handles the view/download counter actions. Views can be
// incremented anonymously; download counting requires a valid session, so the
// route stays public and the auth check happens per action.
func (h *MemeHandler) UpdateCounters(c *gin.Context) {
	memeID := c.Param("id")

	var req CounterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request. memeId and action are required.")
		return
	}

	switch req.Action {
	case "increment_views":
		views, err := h.memeService.IncrementViews(c.Request.Context(), memeID)
		if err != nil {
			h.abortCounterError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "views": views})

	case "increment_downloads":
		if _, err := userIDFromAuthHeader(c, h.jwtSecret); err != nil {
			abortWithError(c, http.StatusUnauthorized, "Unauthorized. User session required.")
			return
		}
		downloads, err := h.memeService.IncrementDownloads(c.Request.Context(), memeID)
		if err != nil {
			h.abortCounterError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "downloads": downloads})

	default:
		abortWithError(c, http.StatusBadRequest, "Invalid action")
	}
}

func (h *MemeHandler) abortCounterError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrMemeNotFound) {
		abortWithError(c, http.StatusNotFound, "Meme not found")
		return
	}
	abortWithError(c, http.StatusInternalServerError, "Failed to update counter")
}
