//go:build !windows

package debug

import (
	"log/slog"
	"time"
)

// StartMemLogger is a no-op outside Windows; goroutine and heap numbers
// are already covered by StartGoroutineLogger.
func StartMemLogger(interval time.Duration, logger *slog.Logger) {}
