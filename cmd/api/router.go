package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"soundreel-backend/internal/shared/middleware"
	"soundreel-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	auth := middleware.Auth(c.Verifier, c.AccountService)
	optionalAuth := middleware.OptionalAuth(c.Verifier, c.AccountService)
	active := middleware.RequireActive()
	creator := middleware.RequireCreator()

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupUserRoutes(v1, c, auth, optionalAuth, active)
		setupApplicationRoutes(v1, c, auth)
		setupTrackRoutes(v1, c, auth, optionalAuth, active, creator)
		setupReelRoutes(v1, c, auth, optionalAuth, active, creator)
		setupSelfRoutes(v1, c, auth, creator)
		setupAdminRoutes(v1, c, auth)
	}

	return router
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container, auth, optionalAuth, active gin.HandlerFunc) {
	users := v1.Group("/users")
	{
		users.GET("/search", c.AccountHandler.Search)
		users.GET("/:id", optionalAuth, c.AccountHandler.GetPublicProfile)
		users.GET("/:id/followers", c.EngagementHandler.ListFollowers)
		users.GET("/:id/following", c.EngagementHandler.ListFollowing)
		users.POST("/:id/follow", auth, active, c.EngagementHandler.Follow)
		users.DELETE("/:id/follow", auth, active, c.EngagementHandler.Unfollow)
	}
}

// ========================================
// APPLICATION ROUTES
// ========================================
func setupApplicationRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	applications := v1.Group("/applications")
	applications.Use(auth)
	{
		applications.POST("", c.ApplicationHandler.Submit)
		applications.GET("/me", c.ApplicationHandler.GetMine)
	}
}

// ========================================
// TRACK ROUTES
// ========================================
func setupTrackRoutes(v1 *gin.RouterGroup, c *container.Container, auth, optionalAuth, active, creator gin.HandlerFunc) {
	tracks := v1.Group("/tracks")
	{
		tracks.GET("", optionalAuth, c.TrackHandler.List)
		tracks.GET("/search", optionalAuth, c.TrackHandler.Search)
		tracks.GET("/:id", optionalAuth, c.TrackHandler.Get)
		tracks.POST("/:id/play", c.TrackHandler.RecordPlay)

		tracks.POST("", auth, active, creator, c.TrackHandler.Create)
		tracks.PUT("/:id", auth, active, c.TrackHandler.Update)
		tracks.DELETE("/:id", auth, active, c.TrackHandler.Delete)
		tracks.POST("/:id/like", auth, active, c.EngagementHandler.LikeTrack)
	}
}

// ========================================
// REEL ROUTES
// ========================================
func setupReelRoutes(v1 *gin.RouterGroup, c *container.Container, auth, optionalAuth, active, creator gin.HandlerFunc) {
	reels := v1.Group("/reels")
	{
		reels.GET("", optionalAuth, c.ReelHandler.List)
		reels.GET("/feed", optionalAuth, c.ReelHandler.List)
		reels.GET("/:id", optionalAuth, c.ReelHandler.Get)
		reels.POST("/:id/view", c.ReelHandler.RecordView)

		reels.POST("", auth, active, creator, c.ReelHandler.Create)
		reels.PUT("/:id", auth, active, c.ReelHandler.Update)
		reels.DELETE("/:id", auth, active, c.ReelHandler.Delete)
		reels.POST("/:id/like", auth, active, c.EngagementHandler.LikeReel)
	}
}

// ========================================
// SELF SERVICE ROUTES
// ========================================
func setupSelfRoutes(v1 *gin.RouterGroup, c *container.Container, auth, creator gin.HandlerFunc) {
	me := v1.Group("/me")
	me.Use(auth)
	{
		// Profile stays reachable for waitlisted and banned accounts.
		me.GET("", c.AccountHandler.GetMe)
		me.PUT("", c.AccountHandler.UpdateProfile)

		me.GET("/tracks", creator, c.TrackHandler.ListMine)
		me.GET("/reels", creator, c.ReelHandler.ListMine)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	admin := v1.Group("/admin")
	admin.Use(auth, middleware.RequireAdmin())
	{
		admin.GET("/users", c.AdminAccountHandler.ListAccounts)
		admin.POST("/users/:id/approve", c.AdminAccountHandler.ApproveWaitlisted)
		admin.POST("/users/:id/ban", c.AdminAccountHandler.Ban)
		admin.POST("/users/:id/unban", c.AdminAccountHandler.Unban)
		admin.POST("/waitlist/approve", c.AdminAccountHandler.BatchApproveWaitlisted)

		admin.GET("/applications", c.ApplicationHandler.List)
		admin.POST("/applications/:id/review", c.ApplicationHandler.Review)

		admin.DELETE("/tracks/:id", c.AdminContentHandler.DeleteTrack)
		admin.DELETE("/reels/:id", c.AdminContentHandler.DeleteReel)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = "error"
			health["status"] = "degraded"
		}

		redisStatus := "ok"
		if err := appCtx.Cache.Ping(ctx); err != nil {
			redisStatus = "error"
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
