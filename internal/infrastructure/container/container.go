package container

import (
	"context"
	"fmt"

	"github.com/gdugdh24/expo-networking/internal/config"
	"github.com/gdugdh24/expo-networking/internal/delivery/http"
	"github.com/gdugdh24/expo-networking/internal/delivery/http/handler"
	"github.com/gdugdh24/expo-networking/internal/delivery/http/middleware"
	"github.com/gdugdh24/expo-networking/internal/infrastructure/database"
	"github.com/gdugdh24/expo-networking/internal/infrastructure/gemini"
	"github.com/gdugdh24/expo-networking/internal/infrastructure/server"
	"github.com/gdugdh24/expo-networking/internal/repository/cache"
	"github.com/gdugdh24/expo-networking/internal/repository/postgres"
	"github.com/gdugdh24/expo-networking/internal/usecase/auth"
	"github.com/gdugdh24/expo-networking/internal/usecase/recommendation"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
	Gemini *gemini.IntroClient
	Logger *zap.Logger
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	db, err := database.NewPostgresDB(ctx, &cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient, err := database.NewRedisClient(ctx, &cfg.Redis, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	c := &Container{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Logger: logger,
	}

	var introGenerator recommendation.IntroGenerator = gemini.TemplateIntro{}
	if cfg.Gemini.APIKey != "" {
		geminiClient, err := gemini.NewIntroClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, logger)
		if err != nil {
			// Don't fail, intros fall back to templates
			logger.Warn("failed to initialize gemini client", zap.Error(err))
		} else {
			c.Gemini = geminiClient
			introGenerator = geminiClient
		}
	} else {
		logger.Info("GEMINI_API_KEY not set, intros use templates")
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	availabilityRepo := postgres.NewAvailabilityRepository(db)
	connectionRepo := postgres.NewConnectionRepository(db)
	recommendationCache := cache.NewRecommendationCache(redisClient)

	// Initialize use cases
	rc := cfg.Recommendation
	scorer := recommendation.NewMatchScorer(recommendation.ScorerConfig{
		MinScore:              rc.MinScore,
		MaxScore:              100,
		BidirectionalPriority: rc.BidirectionalPriority,
	}, logger)

	recommendationUseCase := recommendation.NewRecommendationUseCase(
		userRepo,
		availabilityRepo,
		connectionRepo,
		recommendationCache,
		scorer,
		introGenerator,
		recommendation.Config{
			MaxResults:         rc.MaxResults,
			PoolLimit:          rc.PoolLimit,
			CacheTTL:           rc.CacheTTL,
			AvailabilityWindow: rc.AvailabilityWindow,
		},
		logger,
	)

	tokenVerifier := auth.NewTokenVerifier(cfg.JWT.AccessSecret)

	// Initialize handlers and middleware
	recommendationHandler := handler.NewRecommendationHandler(recommendationUseCase, logger)
	authMiddleware := middleware.NewAuthMiddleware(tokenVerifier)

	router := http.NewRouter(
		recommendationHandler,
		authMiddleware,
		logger.With(zap.String("component", "http")),
	)

	c.Server = server.NewServer(&cfg.Server, router.Setup(), logger)
	return c, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Gemini != nil {
		if err := c.Gemini.Close(); err != nil {
			c.Logger.Warn("error closing gemini client", zap.Error(err))
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("error closing redis", zap.Error(err))
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
