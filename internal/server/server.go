package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/emilythestrangee/breadit/backend/internal/config"
	"github.com/emilythestrangee/breadit/backend/internal/database"
	"github.com/emilythestrangee/breadit/backend/internal/handlers"
	"github.com/emilythestrangee/breadit/backend/internal/middleware"
)

type Server struct {
	cfg      *config.Config
	db       database.Service
	handler  *handlers.Handler
	registry *prometheus.Registry
}

// New creates and configures the HTTP server.
func New(cfg *config.Config, db database.Service, handler *handlers.Handler, registry *prometheus.Registry) *http.Server {
	s := &Server{
		cfg:      cfg,
		db:       db,
		handler:  handler,
		registry: registry,
	}

	router := s.RegisterRoutes()

	return &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	if s.cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	auth := middleware.Auth([]byte(s.cfg.JWTSecret))
	voteLimiter := middleware.RateLimit(s.cfg.VoteRatePerSecond, s.cfg.VoteBurst)

	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", s.handler.Auth.Register)
		api.POST("/login", s.handler.Auth.Login)

		// Post routes (public reads)
		api.GET("/posts/:id", s.handler.Post.GetPost)
		api.GET("/posts/:id/comments", s.handler.Comment.GetComments)

		// Subreddit routes (public reads)
		api.GET("/subreddit/:name", s.handler.Subreddit.Get)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(auth)
		{
			protected.GET("/me", s.handler.Auth.GetMe)
			protected.GET("/feed", s.handler.Post.Feed)

			protected.POST("/posts", s.handler.Post.CreatePost)
			protected.POST("/posts/:id/comments", s.handler.Comment.CreateComment)
			protected.DELETE("/comments/:commentId", s.handler.Comment.DeleteComment)

			protected.POST("/subreddit", s.handler.Subreddit.Create)
			protected.POST("/subreddit/subscribe", s.handler.Subreddit.Subscribe)
			protected.POST("/subreddit/unsubscribe", s.handler.Subreddit.Unsubscribe)

			protected.PATCH("/subreddit/post/vote", voteLimiter, s.handler.Vote.CastVote)
		}
	}

	return r
}
