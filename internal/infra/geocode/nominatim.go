// Package geocode implements the Geocoder domain service against the
// Nominatim (OpenStreetMap) search API.
package geocode

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"registry/config"
	"registry/internal/domain/service"
	"registry/internal/errors"

	"github.com/paulmach/orb"
)

// swedenBound is a rough bounding box for Sweden. Nominatim already restricts
// results with countrycodes; this is a sanity check on what comes back.
var swedenBound = orb.Bound{
	Min: orb.Point{10.0, 55.0},
	Max: orb.Point{24.2, 69.1},
}

// nominatimResult mirrors one element of the Nominatim search response.
// Coordinates arrive as strings.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// nominatimGeocoder is a concrete implementation of the Geocoder interface.
type nominatimGeocoder struct {
	endpoint     string
	country      string
	countryCodes string
	userAgent    string
	client       *http.Client
	logger       *slog.Logger
}

// NewNominatimGeocoder is the constructor for nominatimGeocoder. The HTTP
// client timeout comes from configuration; an expired call surfaces as an
// upstream failure, never as a hang.
func NewNominatimGeocoder(cfg *config.Config, logger *slog.Logger) service.Geocoder {
	gc := cfg.Geocoding

	return &nominatimGeocoder{
		endpoint:     strings.TrimRight(gc.Endpoint, "/"),
		country:      gc.Country,
		countryCodes: gc.CountryCodes,
		userAgent:    gc.UserAgent,
		client:       &http.Client{Timeout: gc.Timeout},
		logger:       logger,
	}
}

// Geocode issues one lookup for the free-text query and returns the first
// match. Zero matches yield Found=false with a nil error.
func (g *nominatimGeocoder) Geocode(ctx context.Context, query service.GeocodeQuery) (*service.GeocodeResult, error) {
	searchQuery := g.buildQuery(query)

	g.logger.Debug("Geocoding query", slog.String("query", searchQuery))

	reqURL := g.endpoint + "/search?" + url.Values{
		"format":       {"json"},
		"q":            {searchQuery},
		"limit":        {"1"},
		"countrycodes": {g.countryCodes},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build geocoding request")
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "geocoding request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)

		return nil, errors.Errorf("geocoding service error: %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, errors.Wrap(err, "failed to decode geocoding response")
	}

	if len(results) == 0 {
		g.logger.Debug("No geocoding results", slog.String("query", searchQuery))

		return &service.GeocodeResult{Found: false}, nil
	}

	latitude, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, errors.Wrap(err, "invalid latitude in geocoding response")
	}
	longitude, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, errors.Wrap(err, "invalid longitude in geocoding response")
	}

	if !swedenBound.Contains(orb.Point{longitude, latitude}) {
		g.logger.Warn("Geocoding result outside country bound, treating as miss",
			slog.Float64("latitude", latitude),
			slog.Float64("longitude", longitude),
		)

		return &service.GeocodeResult{Found: false}, nil
	}

	return &service.GeocodeResult{
		Found:       true,
		Latitude:    latitude,
		Longitude:   longitude,
		DisplayName: results[0].DisplayName,
	}, nil
}

// buildQuery joins the present fields in a fixed order and always appends the
// configured country.
func (g *nominatimGeocoder) buildQuery(query service.GeocodeQuery) string {
	parts := make([]string, 0, 5)
	for _, part := range []string{query.Address, query.PostalCode, query.City, query.Kommun, g.country} {
		if strings.TrimSpace(part) != "" {
			parts = append(parts, part)
		}
	}

	return strings.Join(parts, ", ")
}
