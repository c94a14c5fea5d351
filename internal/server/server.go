package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jwlee-dev/blogpilot/internal/config"
	"github.com/jwlee-dev/blogpilot/internal/service"
	"github.com/jwlee-dev/blogpilot/internal/service/generator"
	"github.com/jwlee-dev/blogpilot/internal/service/images"
	"github.com/jwlee-dev/blogpilot/internal/service/llm"
	"github.com/jwlee-dev/blogpilot/internal/service/publisher"
	"github.com/jwlee-dev/blogpilot/internal/service/youtube"
)

type Server struct {
	Config *config.Config
	DB     *gorm.DB
	Router *gin.Engine
	Logger *zap.Logger
	Server *http.Server

	// Services
	Store     *service.DraftStore
	Auth      *service.AuthService
	Generator *generator.Service
	Fetcher   *youtube.Fetcher
	Publisher *publisher.Pipeline
	Scheduler *service.Scheduler
}

func NewServer(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	// Set gin mode
	gin.SetMode(cfg.Server.Mode)

	// Initialize database
	db, err := service.NewDatabase(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize services
	store := service.NewDraftStore(db, logger)
	auth := service.NewAuthService(logger, cfg.Auth.TOTPSecret)

	model, err := llm.NewOpenAIClient(&cfg.OpenAI)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize model client: %w", err)
	}

	var searcher images.Searcher
	if cfg.Unsplash.AccessKey != "" {
		searcher = images.NewUnsplashClient(&cfg.Unsplash, logger)
	}
	enricher := images.NewEngine(model, searcher, cfg.Unsplash.PerKeyword, logger)
	gen := generator.NewService(model, store, enricher, cfg.OpenAI.MaxTokens, logger)

	api, err := youtube.NewGoogleAPI(context.Background(), cfg.YouTube.APIKey, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize video search: %w", err)
	}
	fetcher := youtube.NewFetcher(api, &cfg.YouTube, logger)

	pub := publisher.NewPipeline(
		store,
		publisher.NewGoogleTokenProvider(&cfg.Blogger),
		publisher.NewBloggerPoster(&cfg.Blogger),
		logger,
	)

	scheduler := service.NewScheduler(&cfg.Scheduler, fetcher, gen, store, logger)

	// Create router
	router := gin.New()

	srv := &Server{
		Config:    cfg,
		DB:        db,
		Router:    router,
		Logger:    logger,
		Store:     store,
		Auth:      auth,
		Generator: gen,
		Fetcher:   fetcher,
		Publisher: pub,
		Scheduler: scheduler,
	}

	srv.setupMiddleware()
	srv.setupRoutes()

	return srv, nil
}

func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.Router.Use(gin.Recovery())

	// Request ID middleware
	s.Router.Use(func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	})

	// Logger middleware
	s.Router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
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

	// CORS middleware
	s.Router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// TOTP auth
	s.Router.Use(s.Auth.AuthMiddleware())
}

func (s *Server) setupRoutes() {
	// Health check
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Unix(),
		})
	})

	// API routes
	api := s.Router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", s.handleLogin)
			auth.POST("/setup", s.handleAuthSetup)
		}

		drafts := api.Group("/drafts")
		{
			drafts.POST("", s.handleCreateDraft)
			drafts.GET("", s.handleListDrafts)
			drafts.GET("/:id", s.handleGetDraft)
			drafts.PUT("/:id", s.handleUpdateDraft)
			drafts.DELETE("/:id", s.handleDeleteDraft)
			drafts.POST("/:id/publish", s.handlePublish)
		}

		generate := api.Group("/generate")
		{
			generate.POST("/video", s.handleGenerateFromVideo)
			generate.POST("/topic", s.handleGenerateFromTopic)
			generate.POST("/image", s.handleGenerateFromImage)
		}

		api.GET("/videos", s.handleListVideos)
		api.POST("/scheduler/run", s.handleSchedulerRun)
		api.GET("/settings", s.handleGetSettings)
		api.PUT("/settings/:key", s.handleSetSetting)
		api.GET("/history", s.handleListHistory)
	}
}

func (s *Server) Start(ctx context.Context) error {
	// Start scheduler
	if err := s.Scheduler.Start(ctx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", s.Config.Server.Host, s.Config.Server.Port)

	s.Server = &http.Server{
		Addr:    addr,
		Handler: s.Router,
	}

	s.Logger.Info("Starting HTTP server", zap.String("addr", addr))

	if s.Config.Server.CertFile != "" && s.Config.Server.KeyFile != "" {
		return s.Server.ListenAndServeTLS(s.Config.Server.CertFile, s.Config.Server.KeyFile)
	}

	return s.Server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	// Stop scheduler first
	s.Scheduler.Stop()

	if s.Server == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	return s.Server.Shutdown(shutdownCtx)
}
