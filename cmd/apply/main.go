package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oreline/careers-api/config"
	"github.com/oreline/careers-api/internal/form"
	"github.com/oreline/careers-api/internal/submission"
	"github.com/oreline/careers-api/internal/tui"
	"github.com/oreline/careers-api/pkg/httpclient"
	"github.com/oreline/careers-api/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	answersPath := flag.String("answers", "", "YAML answers file; the application is submitted without prompting")
	cvPath := flag.String("cv", "", "path to the CV (PDF) used with -answers")
	flag.Parse()

	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Prompts own stdout, so only warnings and errors are logged
	err = logger.Initialize(logger.Config{
		Level:       "warn",
		Environment: "development",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := submission.NewClient(cfg.Client.CareersAPIURL,
		httpclient.NewClientWithTimeout(time.Duration(cfg.Client.TimeoutSeconds)*time.Second))
	controller := form.NewController(client)
	runner := tui.NewRunner(tui.NewSurveyDriver(), controller)

	if *answersPath != "" {
		os.Exit(submitAnswers(ctx, runner, controller, *answersPath, *cvPath))
	}

	if _, err := runner.Run(ctx); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			os.Exit(130)
		}
		logger.Error("Application form failed", zap.Error(err))
		os.Exit(1)
	}
}

// submitAnswers sends a prefilled application once and returns the exit code
func submitAnswers(ctx context.Context, runner *tui.Runner, controller *form.Controller, answersPath, cvPath string) int {
	app, err := form.LoadAnswers(answersPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if cvPath != "" {
		cv, err := form.LoadAttachment(cvPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		app.CV = cv
	}
	controller.Prefill(app)

	_, done, err := runner.Submit(ctx)
	if err != nil {
		logger.Error("Failed to report submission", zap.Error(err))
		return 1
	}
	if !done {
		return 1
	}
	return 0
}
