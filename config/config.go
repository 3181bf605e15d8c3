package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	JWTSecret     string
	AdminEmails   []string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPass        string
	DBName        string
	DBNameTest    string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	MinioHost      string
	MinioPort      string
	MinioUsername  string
	MinioPassword  string
	BucketName     string

	RabbitMQURL      string
	RabbitMQHost     string
	RabbitMQPort     string
	RabbitMQUser     string
	RabbitMQPass     string
	RabbitMQVhost    string
	RabbitMQPrefetch int

	SignedURLExpiry  time.Duration
	FundsHold        time.Duration
	ArchiveRetention time.Duration

	EmbeddingAPIURL string
	EmbeddingAPIKey string
	EmbeddingModel  string
	EmbeddingRate   float64
	EmbeddingBurst  int

	EngineAPIURL string
	EngineAPIKey string

	ExternalHTTPTimeout time.Duration

	MailWorkerConcurrency int
	MailRate              float64
	MailBurst             int
	MailRetryMax          int
	MailRetryDelays       []time.Duration
}

var AppConfig Config

// getEnv returns the environment value or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvList(key string, defaultValue []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getEnvDurationList(key string, defaultValue []time.Duration) []time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	parts := strings.Split(raw, ",")
	out := make([]time.Duration, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		parsed, err := time.ParseDuration(part)
		if err != nil {
			return defaultValue
		}
		out = append(out, parsed)
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// IsAdminEmail reports whether the email is on the admin allow-list.
func IsAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, admin := range AppConfig.AdminEmails {
		if strings.ToLower(admin) == email {
			return true
		}
	}
	return false
}

// InitConfig loads configuration from the environment.
func InitConfig() {
	rabbitHost := getEnv("RABBITMQ_HOST", "localhost")
	rabbitPort := getEnv("RABBITMQ_PORT", "5672")
	rabbitUser := getEnv("RABBITMQ_USER", "guest")
	rabbitPass := getEnv("RABBITMQ_PASSWORD", "guest")
	rabbitVhost := getEnv("RABBITMQ_VHOST", "/")
	rabbitURL := getEnv("RABBITMQ_URL", "")
	if rabbitURL == "" {
		rabbitURL = fmt.Sprintf(
			"amqp://%s:%s@%s:%s/%s",
			url.PathEscape(rabbitUser),
			url.PathEscape(rabbitPass),
			rabbitHost,
			rabbitPort,
			url.PathEscape(rabbitVhost),
		)
	}
	retryDelays := getEnvDurationList(
		"MAIL_RETRY_DELAYS",
		[]time.Duration{10 * time.Second, 30 * time.Second, 2 * time.Minute, 10 * time.Minute, 30 * time.Minute},
	)
	AppConfig = Config{
		JWTSecret:     getEnv("JWT_SECRET", "l=ax+b"),
		AdminEmails:   getEnvList("ADMIN_EMAILS", nil),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "root"),
		DBPass:        getEnv("DB_PASS", "root"),
		DBName:        getEnv("DB_NAME", "ModelFlow"),
		DBNameTest:    getEnv("DB_NAME_TEST", "ModelFlow_Test"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       0,

		MinioHost:      getEnv("MINIO_HOST", "localhost"),
		MinioPort:      getEnv("MINIO_PORT", "9000"),
		MinioUsername:  getEnv("MINIO_USERNAME", "minioadmin"),
		MinioPassword:  getEnv("MINIO_PASSWORD", "minioadmin"),
		BucketName:     getEnv("BUCKET_NAME", "modelflow"),

		RabbitMQURL:      rabbitURL,
		RabbitMQHost:     rabbitHost,
		RabbitMQPort:     rabbitPort,
		RabbitMQUser:     rabbitUser,
		RabbitMQPass:     rabbitPass,
		RabbitMQVhost:    rabbitVhost,
		RabbitMQPrefetch: getEnvInt("RABBITMQ_PREFETCH", 8),

		SignedURLExpiry:  getEnvDuration("SIGNED_URL_EXPIRY", time.Hour),
		FundsHold:        getEnvDuration("FUNDS_HOLD", 14*24*time.Hour),
		ArchiveRetention: getEnvDuration("ARCHIVE_RETENTION", 30*24*time.Hour),

		EmbeddingAPIURL: getEnv("EMBEDDING_API_URL", ""),
		EmbeddingAPIKey: getEnv("EMBEDDING_API_KEY", ""),
		EmbeddingModel:  getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		EmbeddingRate:   getEnvFloat("EMBEDDING_RATE", 5),
		EmbeddingBurst:  getEnvInt("EMBEDDING_BURST", 5),

		EngineAPIURL: getEnv("ENGINE_API_URL", ""),
		EngineAPIKey: getEnv("ENGINE_API_KEY", ""),

		ExternalHTTPTimeout: getEnvDuration("EXTERNAL_HTTP_TIMEOUT", 15*time.Second),

		MailWorkerConcurrency: getEnvInt("MAIL_WORKER_CONCURRENCY", 4),
		MailRate:              getEnvFloat("MAIL_RATE", 2),
		MailBurst:             getEnvInt("MAIL_BURST", 4),
		MailRetryMax:          getEnvInt("MAIL_RETRY_MAX", 5),
		MailRetryDelays:       retryDelays,
	}
}
