package api

import (
	"errors"
	"net/http"

	"memegrid/meme-app/internal/service"

	"github.com/gin-gonic/gin"
)

// BookmarkHandler serves bookmark add/remove/list for the signed-in user.
type BookmarkHandler struct {
	bookmarkService service.BookmarkService
}

// NewBookmarkHandler creates a new BookmarkHandler.
func NewBookmarkHandler(bookmarkService service.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{bookmarkService: bookmarkService}
}

// --- Request Structs ---

type BookmarkRequest struct {
	MemeID string `json:"memeId" binding:"required"`
	Action string `json:"action" binding:"required,oneof=add remove"`
}

// --- Handler Methods ---

// Update adds or removes a bookmark for the authenticated user.
func (h *BookmarkHandler) Update(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req BookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request. memeId and action are required.")
		return
	}

	switch req.Action {
	case "add":
		bookmark, err := h.bookmarkService.Add(c.Request.Context(), userID, req.MemeID)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrAlreadyBookmarked):
				abortWithError(c, http.StatusConflict, err.Error())
			case errors.Is(err, service.ErrMemeNotFound):
				abortWithError(c, http.StatusNotFound, "Meme not found")
			default:
				abortWithError(c, http.StatusInternalServerError, "Failed to add bookmark")
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": bookmark, "message": "Bookmark added successfully"})

	case "remove":
		if err := h.bookmarkService.Remove(c.Request.Context(), userID, req.MemeID); err != nil {
			switch {
			case errors.Is(err, service.ErrBookmarkNotFound), errors.Is(err, service.ErrMemeNotFound):
				abortWithError(c, http.StatusNotFound, "Bookmark not found")
			default:
				abortWithError(c, http.StatusInternalServerError, "Failed to remove bookmark")
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Bookmark removed successfully"})
	}
}

// List returns the authenticated user's bookmarks.
func (h *BookmarkHandler) List(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	bookmarks, err := h.bookmarkService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list bookmarks")
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookmarks": bookmarks})
}
