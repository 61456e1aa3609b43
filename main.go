package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Akashx1550/TrendMart-backend/common/auth"
	"github.com/Akashx1550/TrendMart-backend/common/logger"
	commonmw "github.com/Akashx1550/TrendMart-backend/common/middleware"
	"github.com/Akashx1550/TrendMart-backend/controllers"
	"github.com/Akashx1550/TrendMart-backend/database"
	awspkg "github.com/Akashx1550/TrendMart-backend/pkg/aws"
	"github.com/Akashx1550/TrendMart-backend/pkg/cloudinary"
	ddbpkg "github.com/Akashx1550/TrendMart-backend/pkg/dynamodb"
	"github.com/Akashx1550/TrendMart-backend/repository"
	"github.com/Akashx1550/TrendMart-backend/routes"
	"github.com/Akashx1550/TrendMart-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const serviceName = "storefront"

func main() {
	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// --- 1. AWS, secrets and logging ---

	awsCfg, err := awspkg.LoadAWSConfig(ctx, awspkg.Options{
		Region:          cfg.AWSRegion,
		Endpoint:        cfg.AWSEndpoint,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load AWS config: %v\n", err)
		os.Exit(1)
	}

	var secretErrs []error
	if cfg.UseSecrets {
		secretErrs = cfg.ApplySecrets(ctx, awspkg.NewSecretsClient(awsCfg))
	}

	var sink io.Writer
	cwLogs, cwErr := awspkg.NewCloudWatchLogsClient(ctx, awsCfg, cfg.CloudWatchLogGroup, serviceName, cfg.CloudWatchEnabled)
	if cwErr == nil && cwLogs.IsEnabled() {
		sink = cwLogs
	}

	log, err := logger.New(cfg.Env, sink)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	if cwErr != nil {
		log.Warn("CloudWatch Logs disabled", zap.Error(cwErr))
	}
	for _, e := range secretErrs {
		log.Warn("Secrets Manager lookup failed, using environment value", zap.Error(e))
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", zap.Error(err))
	}

	log.Info("AWS Configuration",
		zap.String("AWS_ENDPOINT", cfg.AWSEndpoint),
		zap.String("AWS_S3_ENDPOINT", cfg.S3Endpoint),
		zap.String("AWS_REGION", cfg.AWSRegion),
	)

	// --- 2. Stores ---

	mongoClient, db, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Warn("Failed to ensure indexes", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)

	var productRepo repository.ProductRepo
	switch cfg.CatalogBackend {
	case CatalogBackendDynamo:
		ddbClient := ddbpkg.NewClientFromConfig(awsCfg, cfg.DynamoEndpoint)
		productRepo = repository.NewDynamoProductRepository(ddbClient, cfg.DynamoProductsTable, cfg.DynamoCountersTable, cfg.ProductIDMode)
	default:
		productRepo = repository.NewProductRepository(db, cfg.ProductIDMode)
	}
	if err := productRepo.SyncSequence(ctx); err != nil {
		log.Warn("Failed to sync product id sequence", zap.Error(err))
	}
	log.Info("Catalog backend selected",
		zap.String("backend", cfg.CatalogBackend),
		zap.String("id_mode", string(cfg.ProductIDMode)),
	)

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn("Catalog cache disabled", zap.Error(err))
			redisClient = nil
		}
	}

	// --- 3. Dependency Injection ---

	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		log.Fatal("Failed to initialize token service", zap.Error(err))
	}

	events := services.NewSNSEventPublisher(awspkg.NewSNSClient(awsCfg), cfg.EventsTopicARN, log)
	var objectStore services.ObjectStorage
	switch cfg.ImageBackend {
	case ImageBackendCloudinary:
		cldStore, err := cloudinary.NewStore(cfg.CloudinaryURL)
		if err != nil {
			log.Fatal("Failed to initialize Cloudinary", zap.Error(err))
		}
		objectStore = cldStore
	default:
		objectStore = awspkg.NewObjectStore(awsCfg, cfg.S3Bucket, cfg.S3Endpoint, cfg.CloudFrontDomain)
	}

	authService := services.NewAuthService(userRepo, tokens, services.NewBcryptHasher(0), events, log)
	cartService := services.NewCartService(userRepo)
	productService := services.NewProductService(productRepo, events, log)
	imageService := services.NewImageService(objectStore, cfg.UploadMaxBytes)

	controllers.RegisterValidators()
	catalogCache := controllers.NewCatalogCache(redisClient, cfg.CatalogCacheTTL)

	// --- 4. HTTP Server & Middleware ---

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsClient := awspkg.NewMetricsClient(awsCfg, cfg.CloudWatchNamespace, cfg.CloudWatchEnabled)
	prom := commonmw.NewPrometheusMetrics("trendmart")

	r := gin.New()
	r.MaxMultipartMemory = cfg.UploadMaxBytes
	r.Use(gin.Recovery())
	r.Use(logger.RequestID())
	r.Use(commonmw.RequestLogger(log))
	r.Use(commonmw.MetricsMiddleware(metricsClient, serviceName))
	r.Use(prom.Middleware())
	r.Use(commonmw.SecurityHeaders())
	r.Use(commonmw.CORS(cfg.AllowedOrigins))
	r.Use(commonmw.RequestTimeout(cfg.RequestTimeout))

	limiterCtx, stopLimiter := context.WithCancel(ctx)
	defer stopLimiter()
	authLimiter := commonmw.NewRateLimiter(limiterCtx, rate.Limit(cfg.AuthRateLimit), cfg.AuthRateBurst, 10*time.Minute)

	routes.RegisterRoutes(r, routes.Handlers{
		Auth:        controllers.NewAuthController(authService),
		Cart:        controllers.NewCartController(cartService),
		Product:     controllers.NewProductController(productService, catalogCache),
		Upload:      controllers.NewUploadController(imageService),
		Verifier:    tokens,
		AuthLimiter: authLimiter.Middleware(),
		Metrics:     prom.Handler(),
	})

	// --- 5. Graceful Shutdown ---

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Storefront starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down storefront...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	events.Wait()

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}
	if err := database.Close(mongoClient); err != nil {
		log.Error("Failed to close MongoDB", zap.Error(err))
	}

	log.Info("Storefront stopped gracefully")
}
