// Package logging builds the process-wide structured logger.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New returns a configured zap logger. Verbose mode uses the development
// configuration with debug-level, human-readable output; otherwise the
// production JSON configuration is used.
func New(verbose bool) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
