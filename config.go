package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	awspkg "github.com/Akashx1550/TrendMart-backend/pkg/aws"
	"github.com/Akashx1550/TrendMart-backend/repository"
)

const (
	CatalogBackendMongo  = "mongo"
	CatalogBackendDynamo = "dynamodb"

	ImageBackendS3         = "s3"
	ImageBackendCloudinary = "cloudinary"
)

var defaultAllowedOrigins = []string{
	"https://trend-mart-frontend.vercel.app",
	"https://trend-mart-admin.vercel.app",
}

// Config holds all environment variables for the storefront service.
type Config struct {
	Port          string
	Env           string
	MongoURI      string
	MongoDatabase string
	JWTSecret     string

	ProductIDMode  repository.IDMode
	CatalogBackend string

	RedisURL        string
	CatalogCacheTTL time.Duration

	AWSRegion          string
	AWSEndpoint        string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	UseSecrets         bool

	ImageBackend     string
	S3Bucket         string
	S3Endpoint       string
	CloudFrontDomain string
	CloudinaryURL    string
	UploadMaxBytes   int64

	DynamoEndpoint      string
	DynamoProductsTable string
	DynamoCountersTable string

	EventsTopicARN string

	CloudWatchEnabled   bool
	CloudWatchNamespace string
	CloudWatchLogGroup  string

	AllowedOrigins []string
	RequestTimeout time.Duration
	AuthRateLimit  float64
	AuthRateBurst  int
}

// SecretLoader reads the values kept in the secret store.
type SecretLoader interface {
	LoadStorefront(ctx context.Context) (awspkg.StorefrontSecrets, []error)
}

// LoadConfig reads the environment into a Config without validating it.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "5000"),
		Env:                 getEnv("APP_ENV", "development"),
		MongoURI:            os.Getenv("MONGODB_URI"),
		MongoDatabase:       getEnv("MONGODB_DATABASE", "trendmart"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		ProductIDMode:       repository.IDMode(strings.ToLower(getEnv("PRODUCT_ID_MODE", string(repository.IDModeSequence)))),
		CatalogBackend:      strings.ToLower(getEnv("CATALOG_BACKEND", CatalogBackendMongo)),
		RedisURL:            os.Getenv("REDIS_URL"),
		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSEndpoint:         os.Getenv("AWS_ENDPOINT"),
		AWSAccessKeyID:      os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey:  os.Getenv("AWS_SECRET_ACCESS_KEY"),
		UseSecrets:          os.Getenv("AWS_USE_SECRETS") == "true",
		ImageBackend:        strings.ToLower(getEnv("IMAGE_BACKEND", ImageBackendS3)),
		S3Bucket:            getEnv("AWS_S3_BUCKET", "trendmart"),
		S3Endpoint:          os.Getenv("AWS_S3_ENDPOINT"),
		CloudFrontDomain:    os.Getenv("AWS_CLOUDFRONT_DOMAIN"),
		CloudinaryURL:       os.Getenv("CLOUDINARY_URL"),
		DynamoEndpoint:      os.Getenv("DYNAMODB_ENDPOINT"),
		DynamoProductsTable: getEnv("DYNAMODB_PRODUCTS_TABLE", "products"),
		DynamoCountersTable: getEnv("DYNAMODB_COUNTERS_TABLE", "counters"),
		EventsTopicARN:      os.Getenv("EVENTS_SNS_TOPIC_ARN"),
		CloudWatchEnabled:   os.Getenv("CLOUDWATCH_ENABLED") == "true",
		CloudWatchNamespace: getEnv("CLOUDWATCH_NAMESPACE", "TrendMart"),
		CloudWatchLogGroup:  getEnv("CLOUDWATCH_LOG_GROUP", "/trendmart/storefront"),
		AllowedOrigins:      splitList(os.Getenv("ALLOWED_ORIGINS"), defaultAllowedOrigins),
	}

	if cfg.S3Endpoint == "" {
		cfg.S3Endpoint = cfg.AWSEndpoint
	}
	if cfg.DynamoEndpoint == "" {
		cfg.DynamoEndpoint = cfg.AWSEndpoint
	}

	var err error
	if cfg.CatalogCacheTTL, err = getDuration("CATALOG_CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.UploadMaxBytes, err = getInt64("UPLOAD_MAX_BYTES", 5<<20); err != nil {
		return nil, err
	}
	if cfg.AuthRateLimit, err = getFloat("AUTH_RATE_LIMIT", 5); err != nil {
		return nil, err
	}
	burst, err := getInt64("AUTH_RATE_BURST", 10)
	if err != nil {
		return nil, err
	}
	cfg.AuthRateBurst = int(burst)

	return cfg, nil
}

// ApplySecrets overrides the JWT secret and MongoDB URI from the secret
// store. Lookup failures keep the environment values.
func (c *Config) ApplySecrets(ctx context.Context, sm SecretLoader) []error {
	secrets, errs := sm.LoadStorefront(ctx)
	if secrets.JWTSecret != "" {
		c.JWTSecret = secrets.JWTSecret
	}
	if secrets.MongoURI != "" {
		c.MongoURI = secrets.MongoURI
	}
	return errs
}

func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.ProductIDMode {
	case repository.IDModeSequence, repository.IDModeLegacy:
	default:
		return fmt.Errorf("PRODUCT_ID_MODE must be %q or %q, got %q", repository.IDModeSequence, repository.IDModeLegacy, c.ProductIDMode)
	}
	switch c.CatalogBackend {
	case CatalogBackendMongo, CatalogBackendDynamo:
	default:
		return fmt.Errorf("CATALOG_BACKEND must be %q or %q, got %q", CatalogBackendMongo, CatalogBackendDynamo, c.CatalogBackend)
	}
	switch c.ImageBackend {
	case ImageBackendS3:
	case ImageBackendCloudinary:
		if c.CloudinaryURL == "" {
			return fmt.Errorf("CLOUDINARY_URL is required when IMAGE_BACKEND is %q", ImageBackendCloudinary)
		}
	default:
		return fmt.Errorf("IMAGE_BACKEND must be %q or %q, got %q", ImageBackendS3, ImageBackendCloudinary, c.ImageBackend)
	}
	if c.UploadMaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getInt64(key string, defaultVal int64) (int64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, defaultVal float64) (float64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func splitList(val string, defaultVal []string) []string {
	if strings.TrimSpace(val) == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
