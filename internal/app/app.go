// Package app wires the service components into a Fiber application
package app

import (
	fiber "github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/stratolab/strato/config"
	"github.com/stratolab/strato/internal/api/v1/middleware"
	"github.com/stratolab/strato/internal/db/repos"
	"github.com/stratolab/strato/internal/quota"
	"github.com/stratolab/strato/internal/services"
	"github.com/stratolab/strato/pkg/api/v1/handlers"
	"github.com/stratolab/strato/pkg/api/v1/routes"
)

// New builds the Fiber application with all repositories, services and
// handlers wired up.
func New(cfg *config.Config, database *gorm.DB) *fiber.App {
	instanceRepo := repos.NewInstanceRepository(database)
	snapshotRepo := repos.NewSnapshotRepository(database)

	instanceService := services.NewInstanceService(instanceRepo)
	snapshotService := services.NewSnapshotService(snapshotRepo, instanceRepo)

	api := handlers.NewAPIHandler(cfg, instanceService, snapshotService, quota.AllowedMetadataItems(cfg))

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})
	app.Use(middleware.Logger())

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	routes.RegisterRoutes(app, api)

	return app
}
