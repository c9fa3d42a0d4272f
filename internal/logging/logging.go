// Package logging builds the command logger from configuration.
package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// FormatConsole renders human-readable log lines.
	FormatConsole = "console"
	// FormatJSON renders one JSON object per line.
	FormatJSON = "json"

	unknownFormatErrorFormat = "unknown logging format %q"
	parseLevelErrorFormat    = "parse logging level %q: %w"
)

// New constructs a logger writing to stderr so diagnostics never pollute
// the stdout contract of the gate. An empty level means info; an empty
// format means console.
func New(level string, format string) (*zap.Logger, error) {
	trimmedLevel := strings.TrimSpace(level)
	if trimmedLevel == "" {
		trimmedLevel = zapcore.InfoLevel.String()
	}
	parsedLevel, parseErr := zapcore.ParseLevel(trimmedLevel)
	if parseErr != nil {
		return nil, fmt.Errorf(parseLevelErrorFormat, level, parseErr)
	}

	trimmedFormat := strings.TrimSpace(format)
	if trimmedFormat == "" {
		trimmedFormat = FormatConsole
	}

	var encoder zapcore.Encoder
	switch trimmedFormat {
	case FormatConsole:
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	case FormatJSON:
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	default:
		return nil, fmt.Errorf(unknownFormatErrorFormat, format)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), parsedLevel)
	return zap.New(core), nil
}
