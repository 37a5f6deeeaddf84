// Package logging configures the application-wide zap logger and the
// append-only error log file used for per-file processing failures.
package logging

import (
	"go.uber.org/zap"
)

// New builds the application logger. Debug mode switches to the development
// config with human-readable output; otherwise production JSON is used.
func New(debug bool, appName, appVersion string) (*zap.Logger, error) {
	var cfg zap.Config

	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewExample(), err
	}

	zap.ReplaceGlobals(logger)
	return logger, nil
}
