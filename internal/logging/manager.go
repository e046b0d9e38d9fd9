package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
)

// LevelTrace sits below slog.LevelDebug for very chatty parser output.
const LevelTrace = slog.Level(-8)

// Manager owns the process-wide slog logger and its output fan-out.
type Manager struct {
	logger     *slog.Logger
	gelfWriter *gelf.Writer
}

// NewManager creates an unconfigured logging manager. Call Setup before
// Logger for anything beyond the slog default.
func NewManager() *Manager {
	return &Manager{}
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "TRACE":
		return LevelTrace
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup initializes logging with console output, an optional log file, and
// an optional Graylog GELF endpoint. gelfAddress is "" when Graylog is
// disabled. Setup never fails hard on the GELF connection, a broken
// Graylog address only costs that one output.
func (m *Manager) Setup(file io.Writer, level, gelfAddress string) {
	lvl := parseLevel(level)

	handlerOpts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.UTC().Format(time.RFC3339))
				}
			}
			return a
		},
	}

	var handlers []slog.Handler
	handlers = append(handlers, slog.NewTextHandler(os.Stdout, handlerOpts))

	if file != nil {
		handlers = append(handlers, slog.NewTextHandler(file, handlerOpts))
	}

	if gelfAddress != "" {
		if w, err := gelf.NewWriter(gelfAddress); err == nil {
			m.gelfWriter = w
			handlers = append(handlers, slog.NewJSONHandler(w, handlerOpts))
		} else {
			slog.Warn("graylog output disabled", "address", gelfAddress, "error", err)
		}
	}

	m.logger = slog.New(NewMultiHandler(handlers...))
	m.logger.Info("logging initialized", "level", level)
}

// Logger returns the configured slog.Logger, or the slog default before
// Setup has run.
func (m *Manager) Logger() *slog.Logger {
	if m.logger == nil {
		return slog.Default()
	}
	return m.logger
}

// Close releases the GELF connection if one was opened.
func (m *Manager) Close() error {
	if m.gelfWriter != nil {
		return m.gelfWriter.Close()
	}
	return nil
}
