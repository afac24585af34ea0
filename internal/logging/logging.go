// Package logging builds the structured logger shared by the CLI and the
// library packages.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
)

const (
	// FormatText writes human-readable console lines.
	FormatText = "text"
	// FormatJSON writes one JSON object per line.
	FormatJSON = "json"
)

// New returns a logger writing to w at the given level ("debug", "info",
// "warn", "error", "disabled") in the given format.
func New(w io.Writer, level, format string) (log.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	opts := []log.Option{
		log.LevelOption(lvl),
		log.TimeFormatOption(time.RFC3339),
	}
	switch strings.ToLower(format) {
	case "", FormatText:
		opts = append(opts, log.ColorOption(false))
	case FormatJSON:
		opts = append(opts, log.OutputJSONOption())
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}

	return log.NewLogger(w, opts...), nil
}
