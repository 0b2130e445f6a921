package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/knowhive/knowhive/internal/config"
	"github.com/knowhive/knowhive/internal/database"
	"github.com/knowhive/knowhive/internal/handler"
	"github.com/knowhive/knowhive/internal/middleware"
	"github.com/knowhive/knowhive/internal/repository"
	"github.com/knowhive/knowhive/internal/service"
	"github.com/knowhive/knowhive/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(!cfg.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to connect database", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		logger.Log.Fatal("Migration failed", zap.Error(err))
	}
	logger.Log.Info("Database ready")

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Log.Fatal("Invalid Redis URL", zap.Error(err))
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	questionRepo := repository.NewQuestionRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	profileService := service.NewProfileService(profileRepo)
	questionService := service.NewQuestionService(questionRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService)
	questionHandler := handler.NewQuestionHandler(questionService)

	authRequired := middleware.AuthMiddleware(userRepo, cfg.JWTSecret)
	rateLimiter := middleware.NewRateLimiter(redisClient, middleware.RateLimiterConfig{
		MaxRequests: cfg.RateLimitMaxRequests,
		Window:      cfg.RateLimitWindow,
		BlockTime:   cfg.RateLimitBlockTime,
	})

	router := gin.Default()
	router.Use(cors.Default())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.HSTSMiddleware(cfg.IsProduction()))

	auth := router.Group("/api/auth", rateLimiter.Middleware())
	{
		auth.GET("", authHandler.Status)
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/profile", authRequired, authHandler.CurrentUser)
	}

	profile := router.Group("/api/profile")
	{
		profile.GET("", authRequired, profileHandler.GetOwn)
		profile.POST("", authRequired, profileHandler.Upsert)
		profile.DELETE("", authRequired, profileHandler.Delete)
		profile.GET("/:username", profileHandler.GetByUsername)
		profile.GET("/id/:id", profileHandler.GetByUserID)
		profile.GET("/find/everyone", profileHandler.List)
		profile.POST("/workrole", authRequired, profileHandler.AddWorkRole)
		profile.DELETE("/workrole/:w_id", authRequired, profileHandler.RemoveWorkRole)
	}

	questions := router.Group("/api/questions")
	{
		questions.GET("", questionHandler.List)
		questions.POST("", authRequired, questionHandler.Create)
		questions.POST("/answers/:id", authRequired, questionHandler.Answer)
		questions.POST("/upvote/:id", authRequired, questionHandler.Upvote)
		questions.DELETE("/delete/:id", authRequired, questionHandler.Delete)
		questions.DELETE("/deleteall", authRequired, questionHandler.DeleteAll)
	}

	srv := &http.Server{
		Addr:    cfg.ServerPort,
		Handler: router,
	}

	go func() {
		logger.Log.Info("Server starting", zap.String("addr", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Server failed", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Forced shutdown", zap.Error(err))
	}
}
