package utils

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevelEnvironmentVariable overrides the default info level, e.g. GITCAT_LOG_LEVEL=debug.
const LogLevelEnvironmentVariable = "GITCAT_LOG_LEVEL"

const invalidLogLevelMessageFormat = "invalid %s value %q: %w"

// NewApplicationLogger constructs a message-only zap console logger writing to stderr.
func NewApplicationLogger() (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if configuredLevel := strings.TrimSpace(os.Getenv(LogLevelEnvironmentVariable)); configuredLevel != "" {
		parsedLevel, parseError := zapcore.ParseLevel(configuredLevel)
		if parseError != nil {
			return nil, fmt.Errorf(invalidLogLevelMessageFormat, LogLevelEnvironmentVariable, configuredLevel, parseError)
		}
		level = parsedLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.Encoding = "console"
	config.DisableCaller = true
	config.DisableStacktrace = true
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.EncoderConfig.TimeKey = ""
	config.EncoderConfig.LevelKey = ""
	config.EncoderConfig.NameKey = ""
	config.EncoderConfig.CallerKey = ""
	config.EncoderConfig.MessageKey = "message"
	config.EncoderConfig.StacktraceKey = ""
	return config.Build()
}
