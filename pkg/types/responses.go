// Package types provides the response envelopes exposed by the API
package types

import "github.com/stratolab/strato/internal/db/models"

// PaginationResponse represents pagination information for list endpoints
type PaginationResponse struct {
	// Total number of items returned in this page
	Total int `json:"total"`

	// Maximum number of items per page
	Limit int `json:"limit,omitempty"`

	// Number of items skipped from the beginning of the result set
	Offset int `json:"offset,omitempty"`

	// Marker the page resumed after, when marker pagination was used
	Marker string `json:"marker,omitempty"`
}

// ListResponse defines a generic response structure for listing resources
type ListResponse[T any] struct {
	// Array of resource items
	Rows []T `json:"rows"`

	// Pagination information for the result set
	Pagination PaginationResponse `json:"pagination"`
}

// InstanceView is the user-facing representation of an instance. Status
// is derived from the stored power state.
type InstanceView struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Region   string          `json:"region,omitempty"`
	Size     string          `json:"size,omitempty"`
	Image    string          `json:"image,omitempty"`
	Status   string          `json:"status"`
	Metadata models.Metadata `json:"metadata"`
}

// SnapshotResponse represents the response when a snapshot is created
type SnapshotResponse struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// ErrorResponse is the envelope for error payloads
type ErrorResponse struct {
	Error string `json:"error"`
}
