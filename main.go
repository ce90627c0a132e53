package main

import (
	"cyberar_admin_backend/internal/app"
	"cyberar_admin_backend/internal/config"
	"cyberar_admin_backend/pkg/logger"
	"flag"
	"log"

	"github.com/joho/godotenv"
)

func main() {
	configDir := flag.String("config", "configs", "directory holding config.yaml")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer logger.Log.Sync()

	application.Run()
}
