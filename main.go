package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/atlashq/atlas-project-service/config"
	"github.com/atlashq/atlas-project-service/controller"
	"github.com/atlashq/atlas-project-service/infra"
	"github.com/atlashq/atlas-project-service/repository"
	routes "github.com/atlashq/atlas-project-service/route"
)

func main() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	infra := infra.InitInfra(cfg)
	repo := repository.InitRepository(infra)

	ctrl := controller.NewController(cfg, infra, repo)

	router := routes.SetupRouter(ctrl)
	if err := router.Run(":8080"); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
