package api

import (
	"errors"
	"net/http"

	"memegrid/meme-app/internal/service"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves meme reporting for the signed-in user.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// --- Request Structs ---

type ReportRequest struct {
	MemeID  string `json:"meme_id" binding:"required"`
	Reason  string `json:"reason" binding:"required"`
	Comment string `json:"comment"`
}

// --- Handler Methods ---

// Create files a report against a meme.
func (h *ReportHandler) Create(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	report, err := h.reportService.Create(c.Request.Context(), userID, req.MemeID, req.Reason, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMemeNotFound):
			abortWithError(c, http.StatusNotFound, "Meme not found")
		case errors.Is(err, service.ErrAlreadyReported):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to submit report")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "report": report})
}
