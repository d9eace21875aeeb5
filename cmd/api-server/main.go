package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"reviewhub/database"
	"reviewhub/internal/api/auth"
	"reviewhub/internal/api/handler"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/service"
	"reviewhub/internal/api/validation"
	"reviewhub/internal/config"
	"reviewhub/internal/mail"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	titleRepo := repository.NewTitleRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// auth plumbing
	tokens := auth.NewTokenManager(cfg)
	codes := auth.NewCodeGenerator(cfg.JWTSecret)
	mailer := mail.NewFromConfig(cfg, logger)

	// services
	authService := service.NewAuthService(userRepo, mailer, codes, tokens, logger)
	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	genreService := service.NewGenreService(genreRepo)
	titleService := service.NewTitleService(titleRepo, categoryRepo, genreRepo)
	reviewService := service.NewReviewService(reviewRepo, titleRepo)
	commentService := service.NewCommentService(commentRepo, reviewRepo, titleRepo)

	validation.RegisterBindingRules()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	v1 := r.Group("/v1")
	v1.Use(middleware.Identity(tokens))

	authLimit := middleware.RateLimit(cfg.AuthRatePerSecond, cfg.AuthRateBurst)
	handler.NewAuthHandler(authService).RegisterRoutes(v1.Group("/auth"), authLimit)
	handler.NewUserHandler(userService).RegisterRoutes(v1.Group("/users"))
	handler.NewCategoryHandler(categoryService).RegisterRoutes(v1.Group("/categories"))
	handler.NewGenreHandler(genreService).RegisterRoutes(v1.Group("/genres"))

	titles := v1.Group("/titles")
	handler.NewTitleHandler(titleService).RegisterRoutes(titles)

	reviews := titles.Group("/:title_id/reviews")
	handler.NewReviewHandler(reviewService).RegisterRoutes(reviews)

	comments := reviews.Group("/:review_id/comments")
	handler.NewCommentHandler(commentService).RegisterRoutes(comments)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("api-server listening", "addr", addr)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelDebug
	switch cfg.LogLevel {
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h)
}
