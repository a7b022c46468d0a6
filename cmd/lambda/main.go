package main

import (
	"context"
	"log/slog"
	"os"

	awslambda "github.com/aws/aws-lambda-go/lambda"

	"github.com/angeloszaimis/edge-worker/config"
	"github.com/angeloszaimis/edge-worker/internal/apigw"
	"github.com/angeloszaimis/edge-worker/internal/background"
	"github.com/angeloszaimis/edge-worker/internal/env"
	"github.com/angeloszaimis/edge-worker/internal/worker"
	"github.com/angeloszaimis/edge-worker/pkg/logger"
)

// Background tasks run on the warm execution environment between
// invocations and may be frozen with it; they are best effort here too.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, false, cfg.Server.Environment)

	vars, err := env.Load(cfg.Worker.EnvFiles)
	if err != nil {
		log.Error("Failed to load environment", slog.Any("err", err))
		os.Exit(1)
	}

	queue := background.NewQueue(cfg.Background.QueueSize, cfg.Background.Workers, log)
	queue.Start(context.Background())

	wk := worker.New(log, vars, queue, nil)

	awslambda.Start(apigw.New(wk, log).Handle)
}
