package svgdraw

import (
	"log/slog"

	"github.com/benoitkugler/svgcompose/internal/logx"
)

// SetLogger sets the logger used by the svgcompose packages.
// By default, nothing is logged. Passing nil restores this default.
func SetLogger(l *slog.Logger) { logx.Set(l) }
