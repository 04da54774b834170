package usecase

import (
	"context"
)

// GeocodeInput carries the address parts forwarded to the geocoding service.
// All fields are optional; present parts are joined into a single query.
type GeocodeInput struct {
	Address    string
	City       string
	PostalCode string
	Kommun     string
}

// GeocodeOutput is the resolution result. On a miss, Success is false and
// Error carries a user-facing message; the coordinate fields are omitted.
type GeocodeOutput struct {
	Success     bool     `json:"success"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	DisplayName *string  `json:"displayName,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// GeocodeUsecase defines the interface for address resolution.
type GeocodeUsecase interface {
	Geocode(ctx context.Context, input GeocodeInput) (*GeocodeOutput, error)
}
