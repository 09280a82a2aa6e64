package container

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"foodgram-backend/internal/config"
	infraCache "foodgram-backend/internal/infrastructure/cache"
	"foodgram-backend/internal/infrastructure/database"
	"foodgram-backend/internal/infrastructure/storage"
	"foodgram-backend/internal/shared/middleware"
	"foodgram-backend/migrations"
	"foodgram-backend/pkg/cache"
	"foodgram-backend/pkg/jwt"

	ingredientHandler "foodgram-backend/internal/domains/ingredient/handler"
	ingredientRepo "foodgram-backend/internal/domains/ingredient/repository"
	ingredientService "foodgram-backend/internal/domains/ingredient/service"
	recipeHandler "foodgram-backend/internal/domains/recipe/handler"
	recipeRepo "foodgram-backend/internal/domains/recipe/repository"
	recipeService "foodgram-backend/internal/domains/recipe/service"
	tagHandler "foodgram-backend/internal/domains/tag/handler"
	tagRepo "foodgram-backend/internal/domains/tag/repository"
	tagService "foodgram-backend/internal/domains/tag/service"
	userHandler "foodgram-backend/internal/domains/user/handler"
	userRepo "foodgram-backend/internal/domains/user/repository"
	userService "foodgram-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa tất cả dependencies của application (root của dependency graph)
type Container struct {
	// Infrastructure
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	redis       *infraCache.RedisCache
	Blocklist   *infraCache.TokenBlocklist
	JWTManager  *jwt.Manager
	Images      *storage.MinIOStorage
	ImageCodec  *storage.ImageProcessor
	Registry    *prometheus.Registry
	HTTPMetrics *middleware.HTTPMetrics

	// Repositories
	IngredientRepo ingredientRepo.Repository
	TagRepo        tagRepo.Repository
	UserRepo       userRepo.Repository
	RecipeRepo     recipeRepo.Repository

	// Services
	IngredientService ingredientService.ServiceInterface
	TagService        tagService.ServiceInterface
	UserService       userService.UserServiceInterface
	FollowService     userService.FollowServiceInterface
	RecipeService     recipeService.RecipeServiceInterface
	RelationService   recipeService.RelationServiceInterface

	// Handlers
	IngredientHandler *ingredientHandler.IngredientHandler
	TagHandler        *tagHandler.TagHandler
	UserHandler       *userHandler.UserHandler
	RecipeHandler     *recipeHandler.RecipeHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer khởi tạo theo thứ tự: config -> infrastructure -> repositories -> services -> handlers
func NewContainer() (*Container, error) {
	c := &Container{}

	if err := c.initConfig(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := c.initInfrastructure(); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("infrastructure: %w", err)
	}

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().
		Str("app", c.Config.App.Name).
		Str("env", c.Config.App.Environment).
		Msg("[CONTAINER] Dependencies initialized")
	return c, nil
}

// ========================================
// STEP 1: CONFIG
// ========================================

func (c *Container) initConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

// ========================================
// STEP 2: INFRASTRUCTURE
// ========================================

func (c *Container) initInfrastructure() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// PostgreSQL
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("load database config: %w", err)
	}
	c.DB = database.NewPostgresDB(dbConfig)
	if err := c.DB.Connect(ctx); err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if c.Config.Database.AutoMigrate {
		if err := database.RunMigrations(ctx, c.DB.Pool, migrations.FS); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
	}

	// Redis, fallback sang memory cache khi không kết nối được
	c.redis = infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := c.redis.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("[CONTAINER] Redis unavailable, falling back to in-memory cache")
		c.redis = nil
		c.Cache = cache.NewMemoryCache()
	} else {
		c.Cache = c.redis
	}
	c.Blocklist = infraCache.NewTokenBlocklist(c.Cache)

	c.JWTManager = jwt.NewManager(c.Config.JWT.Secret, c.Config.JWT.AccessTTL())

	// MinIO
	c.Images, err = storage.NewMinIOStorage(ctx, c.Config.MinIO)
	if err != nil {
		return fmt.Errorf("connect minio: %w", err)
	}
	c.ImageCodec = storage.NewImageProcessor(c.Config.MinIO.MaxImage)

	// Metrics
	c.Registry = prometheus.NewRegistry()
	c.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.HTTPMetrics = middleware.NewHTTPMetrics(c.Registry)

	return nil
}

// ========================================
// STEP 3: REPOSITORIES
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool
	c.IngredientRepo = ingredientRepo.NewPostgresRepository(pool)
	c.TagRepo = tagRepo.NewPostgresRepository(pool)
	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.RecipeRepo = recipeRepo.NewPostgresRepository(pool)
}

// ========================================
// STEP 4: SERVICES
// ========================================

func (c *Container) initServices() {
	ttl := c.Config.Redis.CacheTTL

	c.IngredientService = ingredientService.NewIngredientService(c.IngredientRepo, c.Cache, ttl)
	c.TagService = tagService.NewTagService(c.TagRepo, c.Cache, ttl)

	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, c.Blocklist)
	c.FollowService = userService.NewFollowService(c.UserRepo)

	c.RecipeService = recipeService.NewRecipeService(
		c.RecipeRepo,
		c.IngredientRepo,
		c.TagRepo,
		c.UserRepo,
		c.ImageCodec,
		c.Images,
		decimal.NewFromInt(int64(c.Config.Recipe.MinIngredientAmount)),
	)
	c.RelationService = recipeService.NewRelationService(c.RecipeRepo)
}

// ========================================
// STEP 5: HANDLERS
// ========================================

func (c *Container) initHandlers() {
	pageSize, maxPageSize := c.Config.Pagination.PageSize, c.Config.Pagination.MaxPageSize

	c.IngredientHandler = ingredientHandler.NewIngredientHandler(c.IngredientService)
	c.TagHandler = tagHandler.NewTagHandler(c.TagService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService, c.FollowService, pageSize, maxPageSize)
	c.RecipeHandler = recipeHandler.NewRecipeHandler(c.RecipeService, c.RelationService, pageSize, maxPageSize)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup đóng connections theo thứ tự ngược lại lúc khởi tạo
func (c *Container) Cleanup() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Error().Err(err).Msg("[CONTAINER] Failed to close Redis")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	log.Info().Msg("[CONTAINER] Cleanup completed")
}
