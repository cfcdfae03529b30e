package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/atlashq/atlas-project-service/config"
	"github.com/atlashq/atlas-project-service/consumer/worker"
	infraPkg "github.com/atlashq/atlas-project-service/infra"
	"github.com/atlashq/atlas-project-service/repository"
)

func main() {
	err := godotenv.Load("../.env")
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	infra := infraPkg.InitInfra(cfg)
	repo := repository.InitRepository(infra)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	extractionConsumer := worker.NewExtractionConsumer(infra.RabbitMQ.Channel, infra, repo)
	if err := extractionConsumer.Start(ctx); err != nil {
		infra.Logger.ErrorWithContextf(ctx, err, "Failed to start extraction consumer: %v", err)
		log.Fatalf("Failed to start extraction consumer: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	infra.Logger.InfoWithContextf(ctx, "Shutting down consumer...")
	cancel()

	infra.Logger.InfoWithContextf(ctx, "Consumer exited properly")
}
