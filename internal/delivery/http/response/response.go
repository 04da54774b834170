// Package response renders the unified API envelope.
package response

import (
	"time"

	"github.com/labstack/echo/v4"
)

// Envelope is the unified API response structure. Count appears only on list
// responses and Timestamp on resource responses; token responses carry
// neither.
type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Count     *int   `json:"count,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Success renders a timestamped success response.
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, Envelope{
		Success:   true,
		Data:      data,
		Timestamp: now(),
	})
}

// List renders a timestamped success response with an element count.
func List(c echo.Context, statusCode int, data any, count int) error {
	return c.JSON(statusCode, Envelope{
		Success:   true,
		Data:      data,
		Count:     &count,
		Timestamp: now(),
	})
}

// Data renders a bare success response, used for token payloads.
func Data(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, Envelope{
		Success: true,
		Data:    data,
	})
}

// Error renders a failure response.
func Error(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, Envelope{
		Success: false,
		Error:   message,
	})
}
