package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/uniquest/uniquest-backend/internal/data/repos"
	"github.com/uniquest/uniquest-backend/internal/db"
	pkgerrors "github.com/uniquest/uniquest-backend/internal/pkg/errors"
	"github.com/uniquest/uniquest-backend/internal/platform/logger"
	"github.com/uniquest/uniquest-backend/internal/services"
)

// Trains the grade prediction model from the current database state and
// writes the bundle plus metrics next to it. Interruptible via SIGINT
// and SIGTERM.
func main() {
	savePath := flag.String("save-path", "models/grade_model.json", "path for the model bundle")
	flag.Parse()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	enrollmentRepo := repos.NewEnrollmentRepo(thePG, log)
	gradeRepo := repos.NewGradeRepo(thePG, log)
	attendanceRepo := repos.NewAttendanceRepo(thePG, log)
	trainer := services.NewTrainerService(thePG, log, enrollmentRepo, gradeRepo, attendanceRepo)

	metricsPath := filepath.Join(filepath.Dir(*savePath), "metrics.json")
	result, err := trainer.TrainAndSave(ctx, nil, *savePath, metricsPath)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrDataInsufficient) {
			log.Warn("Not enough data to train; no artifacts written", "error", err)
			os.Exit(0)
		}
		if errors.Is(err, context.Canceled) {
			log.Warn("Training interrupted; no artifacts written")
			os.Exit(1)
		}
		log.Error("Training failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Model saved to %s, metrics to %s (RMSE=%.2f, R2=%.3f)\n",
		*savePath, metricsPath, result.Metrics.RMSE, result.Metrics.R2)
}
