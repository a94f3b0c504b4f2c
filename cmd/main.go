package main

import (
	"github.com/stratolab/strato/config"
	"github.com/stratolab/strato/internal/app"
	"github.com/stratolab/strato/internal/db"
	"github.com/stratolab/strato/internal/logger"
)

func main() {
	logger.Initialize()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration: ", err)
	}

	database, err := db.New(cfg.DB)
	if err != nil {
		logger.Fatal("failed to connect to database: ", err)
	}

	application := app.New(cfg, database)

	logger.Infof("Starting API on port %s", cfg.Port)
	logger.Fatal(application.Listen(":" + cfg.Port))
}
