// Package logger constructs the application zap logger.
package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds a logger. Verbose mode uses the human-readable development
// config at debug level; otherwise the JSON production config is used.
func New(verbose bool) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)
	if verbose {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return log, nil
}
