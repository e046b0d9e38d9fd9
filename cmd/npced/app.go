package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/bhrm-tools/npced/internal/config"
	"github.com/bhrm-tools/npced/internal/logging"
	"github.com/bhrm-tools/npced/internal/session"
	"github.com/bhrm-tools/npced/internal/telemetry"
)

// app wires together the pieces every subcommand needs.
type app struct {
	logManager *logging.Manager
	logger     *slog.Logger
	sess       *session.Session
	metrics    *telemetry.Metrics
	dataFile   string
}

// setup loads config, initializes logging, and prepares an empty session.
// Subcommands that operate on a file call loadSession afterwards.
func setup(cmd *cli.Command) (*app, error) {
	if err := config.Load(cmd.String("config")); err != nil {
		return nil, err
	}

	logsDir := config.GetString("logsDir")
	var logFile *os.File
	if err := os.MkdirAll(logsDir, 0o755); err == nil {
		path := logging.LogFilePath(logsDir, "npced", time.Now())
		logFile, _ = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	}

	gelfAddress := ""
	if config.GetBool("graylog.enabled") {
		gelfAddress = config.GetString("graylog.address")
	}

	manager := logging.NewManager()
	if logFile != nil {
		manager.Setup(logFile, config.GetString("logLevel"), gelfAddress)
	} else {
		manager.Setup(nil, config.GetString("logLevel"), gelfAddress)
	}

	a := &app{logManager: manager}

	// Stamp every log line with the map file currently loaded.
	handler := logging.NewContextHandler(manager.Logger().Handler(), func() []slog.Attr {
		if a.sess == nil || a.sess.File() == "" {
			return nil
		}
		return []slog.Attr{slog.String("map_file", a.sess.File())}
	})
	a.logger = slog.New(handler)
	a.sess = session.New(a.logger)

	metrics, err := telemetry.NewMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	a.metrics = metrics

	a.dataFile = cmd.String("file")
	if a.dataFile == "" {
		a.dataFile = config.GetString("dataFile")
	}

	return a, nil
}

// loadSession loads the selected command file into the session.
func (a *app) loadSession() error {
	_, err := a.sess.Load(a.dataFile)
	return err
}

func (a *app) close() {
	a.logManager.Close()
}
