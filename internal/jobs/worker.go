package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/gradpath/gradpath-backend/internal/logger"
	"github.com/gradpath/gradpath-backend/internal/repos"
	"github.com/gradpath/gradpath-backend/internal/services"
	"github.com/gradpath/gradpath-backend/internal/types"
)

// Worker drains pending extraction jobs. One claim per tick is plenty;
// advising sheets arrive at human speed.
type Worker struct {
	log          *logger.Logger
	jobRepo      repos.ExtractionJobRepo
	sheetService services.SheetService
	pollInterval time.Duration
}

func NewWorker(baseLog *logger.Logger, jobRepo repos.ExtractionJobRepo, sheetService services.SheetService) *Worker {
	return &Worker{
		log:          baseLog.With("component", "ExtractionWorker"),
		jobRepo:      jobRepo,
		sheetService: sheetService,
		pollInterval: 1 * time.Second,
	}
}

func (w *Worker) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(w.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				job, err := w.jobRepo.ClaimNextPending(ctx, nil)
				if err != nil {
					w.log.Warn("ClaimNextPending failed", "error", err)
					continue
				}
				if job == nil {
					continue
				}
				w.runJob(ctx, job)
			}
		}
	}()
}

// runJob marks the job failed when the pipeline panics; an abandoned
// "running" row would otherwise sit there forever.
func (w *Worker) runJob(ctx context.Context, job *types.ExtractionJob) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("Job handler panic", "job_id", job.ID, "panic", r)
			fields := map[string]interface{}{
				"status":      types.ExtractionJobFailed,
				"last_error":  fmt.Sprintf("panic: %v", r),
				"finished_at": time.Now(),
			}
			if uErr := w.jobRepo.UpdateFields(ctx, nil, job.ID, fields); uErr != nil {
				w.log.Error("Failed to mark panicked job failed", "job_id", job.ID, "error", uErr)
			}
		}
	}()

	if err := w.sheetService.ProcessJob(ctx, job); err != nil {
		w.log.Warn("Extraction job failed", "job_id", job.ID, "filename", job.Filename, "error", err)
		return
	}
	w.log.Info("Extraction job complete", "job_id", job.ID, "filename", job.Filename)
}
