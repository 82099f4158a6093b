package api

import (
	"net/http"

	"memegrid/meme-app/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires all endpoints onto the router.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	memeService service.MemeService,
	trimService service.TrimService,
	downloadService service.DownloadService,
	bookmarkService service.BookmarkService,
	reportService service.ReportService,
) {
	authHandler := NewAuthHandler(authService)
	memeHandler := NewMemeHandler(memeService, jwtSecret)
	mediaHandler := NewMediaHandler(trimService, downloadService)
	bookmarkHandler := NewBookmarkHandler(bookmarkService)
	reportHandler := NewReportHandler(reportService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiGroup := router.Group("/api")
	{
		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// --- Media pipeline ---
		// Trim is stateless and requires no session; download is public too.
		apiGroup.POST("/trim-video", mediaHandler.TrimVideo)
		apiGroup.POST("/download", mediaHandler.Download)

		// --- Meme feed ---
		apiGroup.GET("/memes", memeHandler.ListMemes)
		apiGroup.GET("/memes/:id", memeHandler.GetMeme)
		apiGroup.GET("/memes/:id/view", memeHandler.GetViewURL)
		// Counter updates: view counting is anonymous, download counting
		// checks the session inside the handler.
		apiGroup.PATCH("/memes/:id", memeHandler.UpdateCounters)
	}

	protected := apiGroup.Group("")
	protected.Use(authMiddleware)
	{
		protected.POST("/upload", memeHandler.Upload)
		protected.POST("/upload-url", memeHandler.NewUploadURL)
		protected.POST("/bookmarks", bookmarkHandler.Update)
		protected.GET("/bookmarks", bookmarkHandler.List)
		protected.POST("/report", reportHandler.Create)
	}
}
