package config

import (
	"github.com/joho/godotenv"
	"log"
	"os"
	"strconv"
	"time"
)

type DB struct {
	DbHOST         string
	DbPORT         string
	DbUSER         string
	DbPASSWORD     string
	DbNAME         string
	DbSSLMODE      string
	MigrationsPath string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	PublicURL  string
}

// Pagination holds list defaults shared by every paginated endpoint.
type Pagination struct {
	DefaultLimit int
	MaxLimit     int
}

type Blog struct {
	SlugMaxAttempts   int
	CommentReplyDepth int
	StatsCacheTTL     time.Duration
	StatsCacheSize    int
}

type Config struct {
	ServerPort           int
	DB                   DB
	MinIO                MinIO
	Pagination           Pagination
	Blog                 Blog
	JWTSecretKey         string
	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
	MaxUploadSize        int64
	CORSAllowedOrigin    string
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func LoadDB() DB {
	return DB{
		DbHOST:         getEnv("DB_HOST", "localhost"),
		DbPORT:         getEnv("DB_PORT", "5432"),
		DbUSER:         getEnv("DB_USER", "postgres"),
		DbPASSWORD:     getEnv("DB_PASSWORD", "password"),
		DbNAME:         getEnv("DB_NAME", "bloghub"),
		DbSSLMODE:      getEnv("DB_SSLMODE", "disable"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations/001_create_tables.sql"),
	}
}

func LoadMinIO() MinIO {
	endpoint := getEnv("MINIO_ENDPOINT", "localhost:9000")
	useSSL := getEnvBool("MINIO_USE_SSL", false)

	scheme := "http"
	if useSSL {
		scheme = "https"
	}

	return MinIO{
		Endpoint:   endpoint,
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "blog-images"),
		UseSSL:     useSSL,
		Region:     getEnv("MINIO_REGION", "us-east-1"),
		PublicURL:  getEnv("MINIO_PUBLIC_URL", scheme+"://"+endpoint),
	}
}

func LoadPagination() Pagination {
	p := Pagination{
		DefaultLimit: getEnvAsInt("DEFAULT_PAGE_LIMIT", 10),
		MaxLimit:     getEnvAsInt("MAX_PAGE_LIMIT", 100),
	}
	if p.DefaultLimit < 1 {
		p.DefaultLimit = 10
	}
	if p.MaxLimit < p.DefaultLimit {
		p.MaxLimit = p.DefaultLimit
	}
	return p
}

func LoadBlog() Blog {
	b := Blog{
		SlugMaxAttempts:   getEnvAsInt("SLUG_MAX_ATTEMPTS", 100),
		CommentReplyDepth: getEnvAsInt("COMMENT_REPLY_DEPTH", 1),
		StatsCacheTTL:     parseDuration(getEnv("STATS_CACHE_TTL", "30s"), 30*time.Second),
		StatsCacheSize:    getEnvAsInt("STATS_CACHE_SIZE", 16),
	}
	if b.CommentReplyDepth < 1 {
		b.CommentReplyDepth = 1
	}
	if b.SlugMaxAttempts < 1 {
		b.SlugMaxAttempts = 1
	}
	return b
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort:           getEnvAsInt("SERVER_PORT", 8080),
		DB:                   LoadDB(),
		MinIO:                LoadMinIO(),
		Pagination:           LoadPagination(),
		Blog:                 LoadBlog(),
		JWTSecretKey:         getEnv("JWT_SECRET_KEY", ""),
		AccessTokenDuration:  parseDuration(getEnv("ACCESS_TOKEN_DURATION", "2h"), 2*time.Hour),
		RefreshTokenDuration: parseDuration(getEnv("REFRESH_TOKEN_DURATION", "168h"), 168*time.Hour),
		MaxUploadSize:        parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "5242880")),
		CORSAllowedOrigin:    getEnv("CORS_ALLOWED_ORIGIN", "*"),
	}
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil || size <= 0 {
		return 5 * 1024 * 1024
	}
	return size
}
