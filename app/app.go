package app

import (
	"context"
	"fmt"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yashrajoria/streetwear-backend/auth"
	commonmw "github.com/yashrajoria/streetwear-backend/common/middleware"
	"github.com/yashrajoria/streetwear-backend/config"
	"github.com/yashrajoria/streetwear-backend/controllers"
	"github.com/yashrajoria/streetwear-backend/database"
	"github.com/yashrajoria/streetwear-backend/events"
	"github.com/yashrajoria/streetwear-backend/models"
	awspkg "github.com/yashrajoria/streetwear-backend/pkg/aws"
	"github.com/yashrajoria/streetwear-backend/repository"
	"github.com/yashrajoria/streetwear-backend/routes"
	"github.com/yashrajoria/streetwear-backend/services"
	"github.com/yashrajoria/streetwear-backend/validation"
)

// App owns every long-lived connection of the API process.
type App struct {
	Router *gin.Engine

	logger  *zap.Logger
	closers []func() error
}

// New connects the stores, wires services and controllers and builds the
// router. Redis is optional unless AUTH_MODE=session.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{logger: logger}

	db, err := database.ConnectPostgres(cfg.PostgresDSN(), logger)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() error { return database.ClosePostgres(db) })
	if err := database.Migrate(db); err != nil {
		a.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	mongoClient, mongoDB, err := database.ConnectMongo(ctx, cfg.MongoURL, cfg.MongoDB)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.closers = append(a.closers, func() error { return database.CloseMongo(mongoClient) })

	rdb, err := database.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		if cfg.AuthMode == config.AuthModeSession {
			a.Close()
			return nil, err
		}
		logger.Warn("Redis unavailable, running without cache and idempotency", zap.Error(err))
	} else {
		a.closers = append(a.closers, rdb.Close)
	}

	awsCfg, err := awspkg.LoadAWSConfig(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	// Repositories
	productRepo := repository.NewGormProductRepository(db)
	categoryRepo := repository.NewGormCategoryRepository(db)
	cartRepo := repository.NewGormCartRepository(db)
	orderRepo := repository.NewGormOrderRepository(db)
	userRepo := repository.NewGormUserRepository(db)
	contactRepo := repository.NewGormContactRepository(db)
	bulkRepo := repository.NewGormBulkOrderRepository(db)
	announcementRepo := repository.NewGormAnnouncementRepository(db)
	designRepo := repository.NewMongoDesignRequestRepository(mongoDB)
	if err := designRepo.EnsureIndexes(ctx); err != nil {
		logger.Warn("Failed to ensure design request indexes", zap.Error(err))
	}

	var (
		productCache services.ProductCache
		idempotency  repository.IdempotencyStore
	)
	if rdb != nil {
		productCache = repository.NewCacheManager(rdb)
		idempotency = repository.NewRedisIdempotencyStore(rdb, cfg.IdempotencyTTL)
	}

	var counters repository.AnalyticsRepository
	if cfg.AnalyticsTable != "" {
		counters = repository.NewDynamoAnalyticsRepository(awspkg.NewDynamoDBClient(awsCfg), cfg.AnalyticsTable)
	}

	sessions := newSessionManager(cfg, rdb, userRepo)
	identity := auth.NewIdentityVerifier(cfg.IdentityJWTSecret, userRepo, logger)

	publisher := a.newPublisher(cfg, awsCfg)

	// Services
	productService := services.NewProductService(productRepo, categoryRepo, productCache, logger)
	categoryService := services.NewCategoryService(categoryRepo, productCache, logger)
	cartService := services.NewCartService(cartRepo, productRepo, logger)
	orderService := services.NewOrderService(services.OrderServiceDeps{
		Orders:                orderRepo,
		Products:              productRepo,
		Cart:                  cartRepo,
		Idempotency:           idempotency,
		Publisher:             publisher,
		PermissiveTransitions: cfg.OrderStatusPolicy == config.StatusPolicyPermissive,
	}, logger)
	designService := services.NewDesignRequestService(designRepo, logger)
	contactService := services.NewContactService(contactRepo, logger)
	bulkService := services.NewBulkOrderService(bulkRepo, logger)
	announcementService := services.NewAnnouncementService(announcementRepo, logger)
	authService := services.NewAdminAuthService(userRepo, sessions, logger)
	uploadService := services.NewUploadService(
		awspkg.NewObjectStore(awsCfg, cfg.S3Bucket, cfg.CDNDomain), cfg.S3Prefix, cfg.MaxUploadBytes, logger)
	analyticsService := services.NewAnalyticsService(services.AnalyticsDeps{
		Counters:       counters,
		Orders:         orderRepo,
		Products:       productRepo,
		Contacts:       contactRepo,
		DesignRequests: designRepo,
	}, logger)

	// Controllers
	v := validation.New()
	ctrls := routes.Controllers{
		Health:         controllers.NewHealthController(healthChecks(db, mongoClient, rdb)),
		Products:       controllers.NewProductController(productService, v),
		Categories:     controllers.NewCategoryController(categoryService, v),
		Cart:           controllers.NewCartController(cartService, v, cfg.CartCookieName),
		Orders:         controllers.NewOrderController(orderService, v, cfg.CartCookieName),
		Customizations: controllers.NewDesignRequestController(designService, models.KindCustomization, v),
		CustomPrints:   controllers.NewDesignRequestController(designService, models.KindCustomPrint, v),
		Contact:        controllers.NewContactController(contactService, v),
		BulkOrders:     controllers.NewBulkOrderController(bulkService, v),
		Announcement:   controllers.NewAnnouncementController(announcementService, v),
		AdminAuth: controllers.NewAdminAuthController(authService, v, controllers.CookieOptions{
			Domain: cfg.CookieDomain,
			Secure: cfg.CookieSecure,
		}),
		Uploads:   controllers.NewUploadController(uploadService, v, cfg.MaxUploadBytes),
		Analytics: controllers.NewAnalyticsController(analyticsService, v),
	}

	loginLimiter := commonmw.NewRateLimiter(commonmw.PerMinute(cfg.LoginRatePerMinute), cfg.LoginRatePerMinute, 10*time.Minute)
	a.closers = append(a.closers, func() error { loginLimiter.Stop(); return nil })

	a.Router = NewRouter(cfg, logger, RouterDeps{
		Sessions:     sessions,
		Identity:     identity,
		Metrics:      awspkg.NewMetricsClient(awsCfg, cfg.MetricsNamespace, cfg.MetricsEnabled),
		LoginLimiter: loginLimiter,
	}, ctrls)

	return a, nil
}

// Close releases connections in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Error("Failed to close resource", zap.Error(err))
		}
	}
	a.closers = nil
}

func newSessionManager(cfg *config.Config, rdb *redis.Client, users auth.UserLookup) auth.SessionManager {
	if cfg.AuthMode == config.AuthModeSession && rdb != nil {
		return auth.NewRedisSessionManager(rdb, cfg.SessionTTL)
	}
	return auth.NewJWTSessionManager(cfg.JWTSecret, cfg.SessionTTL).WithUserLookup(users)
}

// newPublisher leaves a sink nil when it is not configured; the fan-out
// skips nil sinks.
func (a *App) newPublisher(cfg *config.Config, awsCfg sdkaws.Config) events.Publisher {
	var kafka events.KafkaPublisher
	if len(cfg.KafkaBrokers) > 0 {
		producer := events.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		a.closers = append(a.closers, producer.Close)
		kafka = producer
	}

	var sns awspkg.SNSPublisher
	if cfg.OrderEventsTopicARN != "" {
		sns = awspkg.NewSNSClient(awsCfg)
	}

	if kafka == nil && sns == nil {
		return events.NopPublisher{}
	}
	fanout := events.NewFanoutPublisher(kafka, sns, cfg.OrderEventsTopicARN, a.logger)
	a.closers = append(a.closers, fanout.Close)
	return fanout
}

func healthChecks(db *gorm.DB, mongoClient *mongo.Client, rdb *redis.Client) map[string]controllers.HealthCheck {
	checks := map[string]controllers.HealthCheck{
		"postgres": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"mongo": func(ctx context.Context) error {
			return mongoClient.Ping(ctx, nil)
		},
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	}
	return checks
}
