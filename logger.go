package folio

import (
	"log/slog"

	"github.com/phanxgames/folio/internal/logging"
)

// SetLogger configures the logger for folio, the portfolio package and the
// preview server. By default folio produces no log output. Pass nil to
// restore that.
//
// Levels used:
//   - [slog.LevelDebug]: per-frame stats in debug mode, layout rebuilds
//   - [slog.LevelInfo]: lifecycle events (window opened, page mounted)
//   - [slog.LevelWarn]: tree depth and child count warnings, asset fallbacks
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Get()
}
