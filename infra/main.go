package infra

import (
	"context"

	"github.com/atlashq/atlas-project-service/config"
	"github.com/atlashq/atlas-project-service/infra/produce"
)

type Infra struct {
	Postgres   *PostgresClient
	Logger     *LoggerClient
	Redis      *RedisClient
	Cache      KeyValueStore
	RabbitMQ   *RabbitMQClient
	Minio      *MinioClient
	Storage    ObjectStorage
	Extraction DocumentExtractor
	Vision     VisionService
	Produce    *produce.Produce
}

var infraInstance *Infra

func InitInfra(cfg *config.Config) *Infra {
	if infraInstance != nil {
		return infraInstance
	}

	postgres := InitPostgresClient(cfg.EnvConfig)
	if postgres == nil {
		panic("Failed to initialize Postgres service")
	}

	logger := InitLoggerClient(cfg.EnvConfig)
	if logger == nil {
		panic("Failed to initialize Logger service")
	}

	redis := InitRedisClient(cfg.EnvConfig)
	if redis == nil {
		panic("Failed to initialize Redis service")
	}

	rabbitMQ := InitRabbitMQClient(cfg.EnvConfig)
	if rabbitMQ == nil {
		panic("Failed to initialize RabbitMQ service")
	}

	minio := InitMinioClient(cfg.EnvConfig)
	if minio == nil {
		panic("Failed to initialize MinIO service")
	}
	if err := minio.EnsureBucket(context.Background()); err != nil {
		panic("Failed to ensure storage bucket: " + err.Error())
	}

	extraction := InitExtractionService(cfg.EnvConfig)
	if extraction == nil {
		panic("Failed to initialize Extraction service")
	}

	vision := InitVisionService(cfg.EnvConfig)
	if vision == nil {
		panic("Failed to initialize Vision service")
	}

	produceService := produce.InitProduce(rabbitMQ.Channel)
	if produceService == nil {
		panic("Failed to initialize Produce service")
	}

	infraInstance = &Infra{
		Postgres:   postgres,
		Logger:     logger,
		Redis:      redis,
		Cache:      redis,
		RabbitMQ:   rabbitMQ,
		Minio:      minio,
		Storage:    minio,
		Extraction: extraction,
		Vision:     vision,
		Produce:    produceService,
	}

	return infraInstance
}
