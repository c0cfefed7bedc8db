package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yourusername/trivia-catalog/internal/config"
	"github.com/yourusername/trivia-catalog/internal/domain/repository"
	"github.com/yourusername/trivia-catalog/internal/handler"
	"github.com/yourusername/trivia-catalog/internal/middleware"
	pgRepo "github.com/yourusername/trivia-catalog/internal/repository/postgres"
	redisRepo "github.com/yourusername/trivia-catalog/internal/repository/redis"
	"github.com/yourusername/trivia-catalog/internal/service"
	"github.com/yourusername/trivia-catalog/pkg/auth"
	"github.com/yourusername/trivia-catalog/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Создаем контекст с отменой, живущий до остановки сервера
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Failed to get sql.DB: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	// Применяем миграции
	if err := database.MigrateDB(db, cfg.Database.MigrationsPath); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем репозитории
	questionRepo := pgRepo.NewQuestionRepo(db)
	categoryRepo := pgRepo.NewCategoryRepo(db)

	healthChecks := map[string]handler.Pinger{
		"postgres": handler.PingFunc(sqlDB.PingContext),
	}

	// Redis опционален: без него нет кеша категорий и rate limiting
	var (
		cacheRepo  repository.CacheRepository
		quizLimit  gin.HandlerFunc
		writeLimit gin.HandlerFunc
	)
	if cfg.Redis.Enabled {
		redisClient, err := database.NewUniversalRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Printf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		log.Println("Successfully connected to Redis")

		cache, err := redisRepo.NewCacheRepo(redisClient, "catalog")
		if err != nil {
			log.Printf("Failed to initialize CacheRepo: %v", err)
			os.Exit(1)
		}
		cacheRepo = cache

		limiter := middleware.NewRateLimiter(middleware.NewRedisCounter(redisClient))
		quizLimit = limiter.Limit(middleware.QuizRateLimitConfig(cfg.RateLimit))
		writeLimit = limiter.Limit(middleware.WriteRateLimitConfig(cfg.RateLimit))

		healthChecks["redis"] = handler.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	} else {
		log.Println("Redis disabled: category cache and rate limiting are off")
	}

	// Инициализируем сервисы
	catalogService := service.NewCatalogService(questionRepo, categoryRepo, cacheRepo, cfg.Redis.CategoryCacheTTLDuration())
	quizSelector := service.NewQuizSelector(questionRepo)

	// Защита изменений каталога включается секретом администратора
	var (
		authz        handler.Authorizer
		requireAdmin gin.HandlerFunc
	)
	if cfg.Auth.AdminSecret != "" {
		tokens, err := auth.NewAdminTokenService(cfg.Auth.AdminSecret)
		if err != nil {
			log.Printf("Failed to initialize AdminTokenService: %v", err)
			os.Exit(1)
		}
		authMiddleware := middleware.NewAuthMiddleware(tokens)
		authz = authMiddleware
		requireAdmin = authMiddleware.RequireAdmin()
	} else {
		log.Println("Warning: auth.admin_secret is empty, catalog mutations are not protected")
	}

	// Инициализируем роутер Gin
	router := gin.Default()
	router.Use(middleware.RequestID())

	if gin.Mode() == gin.ReleaseMode {
		// Production: не доверять прокси-заголовкам
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.Server.AllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	handler.Routes{
		Catalog:      handler.NewCatalogHandler(catalogService, authz),
		Quiz:         handler.NewQuizHandler(quizSelector),
		Health:       handler.NewHealthHandler(healthChecks),
		RequireAdmin: requireAdmin,
		QuizLimit:    quizLimit,
		WriteLimit:   writeLimit,
	}.Register(router)

	// Настраиваем HTTP сервер с тайм-аутами
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
			cancel()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		return
	}

	log.Println("Server exited properly")
}
