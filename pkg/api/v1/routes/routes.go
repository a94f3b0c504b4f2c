// Package routes defines the API routes and URL structure
package routes

import (
	"fmt"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/stratolab/strato/pkg/api/v1/handlers"
)

/*

To keep this file organized, routes should be organized in the following way:

1. Smallest scope first (metadata routes before instance routes).
2. For similar scopes, order routes in GET, POST, PUT, DELETE order.
3. Param urls (ie /:id) go after their literal siblings, otherwise fiber
   will interpret the route slug as that param.

*/

// API base configuration
const (
	// DefaultPort is the default port for the API
	DefaultPort = "8080"
	// APIv1Prefix is the prefix for all API endpoints
	APIv1Prefix = "/api/v1"
)

// DefaultBaseURL is the default base URL for the API
var DefaultBaseURL = fmt.Sprintf("http://localhost:%s", DefaultPort)

// RegisterRoutes configures all the v1 routes
func RegisterRoutes(app *fiber.App, api *handlers.APIHandler) {
	v1 := app.Group(APIv1Prefix)

	// Metadata sub-resource
	v1.Get("/instances/:id/metadata", api.Metadata.ListMetadata).Name("ListMetadata")
	v1.Post("/instances/:id/metadata", api.Metadata.CreateMetadata).Name("CreateMetadata")
	v1.Put("/instances/:id/metadata", api.Metadata.ReplaceMetadata).Name("ReplaceMetadata")
	v1.Get("/instances/:id/metadata/:key", api.Metadata.GetMetadataItem).Name("GetMetadataItem")
	v1.Put("/instances/:id/metadata/:key", api.Metadata.UpdateMetadataItem).Name("UpdateMetadataItem")
	v1.Delete("/instances/:id/metadata/:key", api.Metadata.DeleteMetadataItem).Name("DeleteMetadataItem")

	// Snapshots
	v1.Get("/instances/:id/snapshots", api.Snapshot.ListSnapshots).Name("ListSnapshots")
	v1.Post("/instances/:id/snapshot", api.Snapshot.CreateSnapshotHandler()).Name("CreateSnapshot")

	// Instances
	v1.Get("/instances", api.Instance.ListInstances).Name("ListInstances")
	v1.Post("/instances", api.Instance.CreateInstance).Name("CreateInstance")
	v1.Get("/instances/:id", api.Instance.GetInstance).Name("GetInstance")
	v1.Delete("/instances/:id", api.Instance.DeleteInstance).Name("DeleteInstance")
}
