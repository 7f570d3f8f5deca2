package demoseason

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/halleloo/fantasy-league/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "replay_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the demo season tool.
func ShowHelp() {
	os.Stdout.WriteString(`Fantasy League Demo Season
==========================

Replays a recorded eight-episode season against a running scoring
service and verifies the resulting leaderboard.

Usage:
  go run cmd/demo-season/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -episodes int
        Number of recorded episodes to replay, 1-8 (default 8)
  -timeout duration
        HTTP request timeout (default 30s)
  -log string
        Log file for replay output (default: replay_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Replay the full recorded season
  go run cmd/demo-season/main.go

  # Replay the first four episodes against a custom address
  go run cmd/demo-season/main.go -episodes 4 -url http://localhost:8080

  # Replay with verbose output
  go run cmd/demo-season/main.go -verbose
`)
}
