package container

import (
	"context"
	"fmt"

	"github.com/daterly/members-api/internal/assetstore"
	miniostore "github.com/daterly/members-api/internal/assetstore/minio"
	"github.com/daterly/members-api/internal/config"
	"github.com/daterly/members-api/internal/delivery/http"
	"github.com/daterly/members-api/internal/delivery/http/handler"
	"github.com/daterly/members-api/internal/delivery/http/middleware"
	"github.com/daterly/members-api/internal/infrastructure/cache"
	"github.com/daterly/members-api/internal/infrastructure/database"
	"github.com/daterly/members-api/internal/infrastructure/server"
	"github.com/daterly/members-api/internal/repository/postgres"
	"github.com/daterly/members-api/internal/usecase/users"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Assets assetstore.Store
	Server *server.Server
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Redis is optional; without it gender lookups just hit the database.
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		fmt.Printf("Warning: failed to initialize redis, running without cache: %v\n", err)
		redisClient = nil
	}

	// Initialize asset store
	assets, err := miniostore.NewStore(context.Background(), &cfg.S3)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize asset store: %w", err)
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	uowFactory := postgres.NewUnitOfWorkFactory(db)

	// Initialize use cases
	userUseCase := users.NewUserUseCase(
		userRepo,
		uowFactory,
		assets,
		cache.NewGenderCache(redisClient),
	)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Initialize router
	router := http.NewRouter(
		userHandler,
		authMiddleware,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter)

	return &Container{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Assets: assets,
		Server: srv,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	// Close Redis
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			fmt.Printf("Error closing Redis: %v\n", err)
		}
	}

	// Close database
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
