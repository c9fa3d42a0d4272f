package main

import (
	"errors"
	"os"

	"go.uber.org/zap"

	"github.com/bonofiglio/matcha/cmd/matcha"
	"github.com/bonofiglio/matcha/internal/gate"
)

func main() {
	logger := zap.Must(zap.NewProduction())

	executionErr := matcha.Execute()
	if executionErr != nil {
		if errors.Is(executionErr, gate.ErrFilesNotFormatted) {
			// The gate already printed its verdict on stdout.
			_ = logger.Sync()
			os.Exit(1)
		}
		logger.Error("command execution failed", zap.Error(executionErr))
		_ = logger.Sync()
		os.Exit(1)
	}

	syncErr := logger.Sync()
	if syncErr != nil {
		os.Exit(1)
	}
}
