package workers

import (
	"context"
	"time"

	"audition_backend/internal/logger"
	"audition_backend/internal/metrics"
	"audition_backend/internal/repositories"

	"gorm.io/gorm"
)

const offerWorkerName = "offer-expiry"

// OfferWorker помечает старые PENDING офферы как EXPIRED
type OfferWorker struct {
	db      *gorm.DB
	repo    repositories.OfferRepository
	ttl     time.Duration
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewOfferWorker(db *gorm.DB, repo repositories.OfferRepository, ttl time.Duration, m *metrics.Metrics) *OfferWorker {
	return &OfferWorker{db: db, repo: repo, ttl: ttl, metrics: m, now: time.Now}
}

func (w *OfferWorker) Name() string { return offerWorkerName }

func (w *OfferWorker) Run(ctx context.Context) (int64, error) {
	if w.ttl <= 0 {
		return 0, nil
	}

	affected, err := w.repo.ExpireOlderThan(w.db.WithContext(ctx), w.now().Add(-w.ttl))

	logger.WorkerLog(offerWorkerName, "expire_pending_offers", affected, err)
	w.metrics.WorkerRun(offerWorkerName, affected, err)
	return affected, err
}
