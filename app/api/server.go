package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/okhotin/tubedeck/app/cfg"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware for API endpoints
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler) {
	// Compatibility action endpoint mirroring the upstream query surface
	r.GET("/api/youtube", handler.YouTubeAction)

	api := r.Group("/api")
	{
		api.GET("/channels", handler.ListChannels)
		api.POST("/channels", handler.CreateChannel)
		api.PATCH("/channels/:id", handler.AssignChannel)
		api.DELETE("/channels/:id", handler.DeleteChannel)

		api.GET("/folders", handler.ListFolders)
		api.POST("/folders", handler.CreateFolder)
		api.DELETE("/folders/:id", handler.DeleteFolder)

		api.GET("/videos", handler.GetVideos)
	}

	// RSS renditions of the aggregated feed scopes
	r.GET("/feeds/all.xml", handler.FeedAll)
	r.GET("/feeds/root.xml", handler.FeedRoot)
	r.GET("/feeds/folder/:id", handler.FeedFolder)

	// Health and status endpoints
	r.GET("/health", handler.HealthCheck)
	r.GET("/stats", handler.GetStats)

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "TubeDeck",
			"version":     cfg.Get().Version,
			"description": "Personal YouTube channel organizer with an aggregated, recency-sorted video feed",
			"endpoints": map[string]string{
				"youtube":  "/api/youtube?action=searchChannel|getChannelById|getVideos",
				"channels": "/api/channels",
				"folders":  "/api/folders",
				"videos":   "/api/videos?scope=all|root|folder&folder=<id>",
				"feeds":    "/feeds/all.xml, /feeds/root.xml, /feeds/folder/<id>",
				"health":   "/health",
				"stats":    "/stats",
			},
			"documentation": "https://github.com/okhotin/tubedeck",
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}
