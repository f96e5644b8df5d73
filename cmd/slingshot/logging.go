package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

const (
	logDir      = "logs"
	logFileName = "slingshot.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging writes logs to logDir only in debug mode, the terminal belongs to the game
// Returns the open log file, nil when logging is disabled
func setupLogging(debug bool, level zerolog.Level) (zerolog.Logger, *os.File) {
	log.SetOutput(io.Discard)
	if !debug {
		return zerolog.Nop(), nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return zerolog.Nop(), nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("slingshot_%s.log", time.Now().Format("20060102_150405")))
		_ = os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), nil
	}
	log.SetOutput(f)

	logger := zerolog.New(f).Level(level).With().Timestamp().Logger()
	logger.Info().Str("level", level.String()).Msg("logging started")
	return logger, f
}
