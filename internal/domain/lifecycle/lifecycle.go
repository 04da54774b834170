// Package lifecycle holds shared timeouts for fx lifecycle hooks.
package lifecycle

import "time"

// DefaultTimeout bounds startup and shutdown work such as the database ping
// and the HTTP server drain.
const DefaultTimeout = 10 * time.Second
