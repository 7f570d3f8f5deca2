package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/halleloo/fantasy-league/internal/demoseason"
)

// Default configuration constants.
const (
	defaultEpisodes      = demoseason.RecordedEps
	defaultTimeout       = 30 * time.Second
	defaultReplayTimeout = 5 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:9080", "Base URL of the service")
		episodes = flag.Int("episodes", defaultEpisodes, "Number of recorded episodes to replay")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile  = flag.String("log", "", "Log file for replay output (default: replay_log_TIMESTAMP.log)")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		demoseason.ShowHelp()
		return
	}

	if *episodes < 1 || *episodes > demoseason.RecordedEps {
		os.Stderr.WriteString("episodes must be between 1 and 8\n")
		return
	}

	if err := demoseason.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultReplayTimeout)
	defer cancel()

	config := &demoseason.Config{
		BaseURL:  *baseURL,
		Episodes: *episodes,
		Timeout:  *timeout,
		LogFile:  *logFile,
		Verbose:  *verbose,
	}

	if err := demoseason.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Replay failed: " + err.Error() + "\n")
		return
	}
}
