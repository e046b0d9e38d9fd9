package logging

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// LogFilePath builds a session log file path using OS-appropriate path
// separators, one file per editing session.
func LogFilePath(logsDir, appName string, sessionStart time.Time) string {
	return filepath.Join(
		logsDir,
		fmt.Sprintf("%s.%s.log", appName, sessionStart.Format("20060102_150405")),
	)
}

// NewComponentLogger builds a zerolog logger for subsystems that log
// through zerolog rather than slog (the history database and the influx
// client). The component name appears on every record.
func NewComponentLogger(component string, w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().
		Timestamp().
		Str("component", component).
		Logger()
}
