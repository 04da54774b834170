package service

import "context"

// GeocodeQuery describes a free-text address lookup. Every field is optional;
// present fields are joined in order with the configured country appended.
type GeocodeQuery struct {
	Address    string
	PostalCode string
	City       string
	Kommun     string
}

// GeocodeResult is the outcome of a lookup. Found is false when the upstream
// service answered but had no match; that case is not an error.
type GeocodeResult struct {
	Found       bool
	Latitude    float64
	Longitude   float64
	DisplayName string
}

// Geocoder translates a free-text address into coordinates via an external
// lookup. Implementations must bound the call with a timeout; expiry and
// transport failures are returned as errors, zero matches are not.
type Geocoder interface {
	Geocode(ctx context.Context, query GeocodeQuery) (*GeocodeResult, error)
}
