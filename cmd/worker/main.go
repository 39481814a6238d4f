package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/wildsight/wildsight/internal/setup"
	"github.com/wildsight/wildsight/internal/worker/reputation"
	"go.uber.org/zap"
)

// WorkerLogDir specifies where worker log files are stored.
const WorkerLogDir = "logs/worker_logs"

// DefaultSchedule runs the catch-up once a minute when no schedule is configured.
const DefaultSchedule = "@every 1m"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize application with required dependencies
	app, err := setup.InitializeApp(ctx, WorkerLogDir)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.Cleanup()

	worker := reputation.New(app.DB, app.Config.Worker.BatchSize, app.Logger)

	schedule := app.Config.Worker.Schedule
	if schedule == "" {
		schedule = DefaultSchedule
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(schedule, func() {
		worker.Run(ctx)
	}); err != nil {
		app.Logger.Fatal("Invalid worker schedule",
			zap.String("schedule", schedule),
			zap.Error(err))
	}

	// Apply anything left over from before the last shutdown, then run on
	// the schedule.
	worker.Run(ctx)
	scheduler.Start()

	app.Logger.Info("Reputation catch-up worker started", zap.String("schedule", schedule))

	// Wait for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	app.Logger.Info("Shutting down worker...")
	cancel()
	<-scheduler.Stop().Done()

	app.Logger.Info("Worker gracefully stopped")
}
