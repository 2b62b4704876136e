package engine

import (
	"log/slog"

	"github.com/ironsheep/image-filters-mcp/internal/compute"
)

// SetLogger configures logging for the engine and the compute devices it
// drives. Pass nil to silence both again.
//
// Warnings report a parallel backend that was requested but not usable.
func SetLogger(l *slog.Logger) {
	compute.SetLogger(l)
}

// Logger returns the logger shared with package compute.
func Logger() *slog.Logger {
	return compute.Logger()
}
