package config

import (
	"os"
	"strconv"
	"strings"
)

type EnvConfig struct {
	Postgres struct {
		Host     string
		Database string
		Username string
		Password string
		Port     string
	}
	JWT struct {
		SecretKey           string
		Algorithm           string
		AccessExpireMinutes int
		RefreshExpireDays   int
	}
	CORS struct {
		AllowedOrigins string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
		Database int
	}
	RabbitMQ struct {
		Host     string
		Port     string
		Username string
		Password string
	}
	Minio struct {
		Endpoint  string
		AccessKey string
		SecretKey string
		UseSSL    bool
	}
	BucketName string
	Extraction struct {
		ServiceURL string
		AuthToken  string
	}
	AI struct {
		Provider       string
		TogetherAPIKey string
		HyperbolicKey  string
		GoogleAPIKey   string
	}
	Grafana struct {
		OTLPEndpoint string
		ServiceName  string
	}
	Environment struct {
		Mode string
	}
}

func LoadEnvConfig() *EnvConfig {
	var config EnvConfig

	// Postgres
	config.Postgres.Host = os.Getenv("PG_HOST")
	config.Postgres.Database = os.Getenv("PG_DB")
	config.Postgres.Username = os.Getenv("PG_USER")
	config.Postgres.Password = os.Getenv("PG_PASSWORD")
	config.Postgres.Port = os.Getenv("PG_PORT")
	if config.Postgres.Port == "" {
		config.Postgres.Port = "5432"
	}

	// JWT
	config.JWT.SecretKey = os.Getenv("JWT_SECRET_KEY")
	config.JWT.Algorithm = os.Getenv("JWT_ALGORITHM")
	if config.JWT.Algorithm == "" {
		config.JWT.Algorithm = "HS256"
	}
	config.JWT.AccessExpireMinutes, _ = strconv.Atoi(os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"))
	if config.JWT.AccessExpireMinutes == 0 {
		config.JWT.AccessExpireMinutes = 30
	}
	config.JWT.RefreshExpireDays, _ = strconv.Atoi(os.Getenv("REFRESH_TOKEN_EXPIRE_DAYS"))
	if config.JWT.RefreshExpireDays == 0 {
		config.JWT.RefreshExpireDays = 7
	}

	config.CORS.AllowedOrigins = os.Getenv("ALLOWED_ORIGINS")

	// Redis
	config.Redis.Host = os.Getenv("REDIS_HOST")
	if config.Redis.Host == "" {
		config.Redis.Host = "localhost"
	}
	config.Redis.Port = os.Getenv("REDIS_PORT")
	if config.Redis.Port == "" {
		config.Redis.Port = "6379"
	}
	config.Redis.Password = os.Getenv("REDIS_PASSWORD")
	config.Redis.Database, _ = strconv.Atoi(os.Getenv("REDIS_DB"))

	// RabbitMQ
	config.RabbitMQ.Host = os.Getenv("RABBITMQ_HOST")
	if config.RabbitMQ.Host == "" {
		config.RabbitMQ.Host = "localhost"
	}
	config.RabbitMQ.Port = os.Getenv("RABBITMQ_PORT")
	if config.RabbitMQ.Port == "" {
		config.RabbitMQ.Port = "5672"
	}
	config.RabbitMQ.Username = os.Getenv("RABBITMQ_USER")
	if config.RabbitMQ.Username == "" {
		config.RabbitMQ.Username = "guest"
	}
	config.RabbitMQ.Password = os.Getenv("RABBITMQ_PASSWORD")
	if config.RabbitMQ.Password == "" {
		config.RabbitMQ.Password = "guest"
	}

	// Object storage
	config.Minio.Endpoint = os.Getenv("MINIO_ENDPOINT")
	config.Minio.AccessKey = os.Getenv("MINIO_ROOT_USER")
	config.Minio.SecretKey = os.Getenv("MINIO_ROOT_PASSWORD")
	config.Minio.UseSSL = strings.EqualFold(os.Getenv("MINIO_USE_SSL"), "true")
	config.BucketName = os.Getenv("BUCKET_NAME")
	if config.BucketName == "" {
		config.BucketName = "atlas-projects"
	}

	// Document extraction service
	config.Extraction.ServiceURL = os.Getenv("EXTRACTION_SERVICE_URL")
	config.Extraction.AuthToken = os.Getenv("EXTRACTION_AUTH_TOKEN")

	// AI vision provider
	config.AI.Provider = os.Getenv("AI_PROVIDER")
	if config.AI.Provider == "" {
		config.AI.Provider = "together"
	}
	config.AI.TogetherAPIKey = os.Getenv("TOGETHER_API_KEY")
	config.AI.HyperbolicKey = os.Getenv("HYPERBOLIC_API_KEY")
	config.AI.GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")

	// Grafana/OpenTelemetry
	grafanaEndpoint := os.Getenv("GRAFANA_OTLP_ENDPOINT")
	if strings.HasPrefix(grafanaEndpoint, "https://") {
		grafanaEndpoint = strings.TrimPrefix(grafanaEndpoint, "https://")
	} else if strings.HasPrefix(grafanaEndpoint, "http://") {
		grafanaEndpoint = strings.TrimPrefix(grafanaEndpoint, "http://")
	}
	config.Grafana.OTLPEndpoint = grafanaEndpoint
	config.Grafana.ServiceName = os.Getenv("SERVICE_NAME")
	if config.Grafana.ServiceName == "" {
		config.Grafana.ServiceName = "atlas-project-service"
	}

	config.Environment.Mode = os.Getenv("DEPLOY_ENV")
	if config.Environment.Mode == "" {
		config.Environment.Mode = "development"
	}

	return &config
}
