package workers

import (
	"context"
	"time"

	"audition_backend/internal/logger"
	"audition_backend/internal/metrics"
	"audition_backend/internal/repositories"

	"gorm.io/gorm"
)

const auditionWorkerName = "audition-close"

// AuditionWorker переводит завершившиеся прослушивания в UNDER_SCREENING
type AuditionWorker struct {
	db      *gorm.DB
	repo    repositories.AuditionRepository
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewAuditionWorker(db *gorm.DB, repo repositories.AuditionRepository, m *metrics.Metrics) *AuditionWorker {
	return &AuditionWorker{db: db, repo: repo, metrics: m, now: time.Now}
}

func (w *AuditionWorker) Name() string { return auditionWorkerName }

// Run закрывает ONGOING прослушивания с end_date раньше сегодняшнего дня
func (w *AuditionWorker) Run(ctx context.Context) (int64, error) {
	affected, err := w.repo.CloseEnded(w.db.WithContext(ctx), w.now())

	logger.WorkerLog(auditionWorkerName, "close_ended_auditions", affected, err)
	w.metrics.WorkerRun(auditionWorkerName, affected, err)
	return affected, err
}
