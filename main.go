package main

import (
	"log"

	"ai_tutor_backend/internal/app"
	"ai_tutor_backend/internal/config"
	"ai_tutor_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
