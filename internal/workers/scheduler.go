package workers

import (
	"context"
	"fmt"

	"audition_backend/internal/logger"

	"github.com/robfig/cron/v3"
)

// Job - фоновая задача, которую запускает Scheduler
type Job interface {
	Name() string
	Run(ctx context.Context) (int64, error)
}

// Scheduler запускает задачи по cron-расписанию
type Scheduler struct {
	cron  *cron.Cron
	ctx   context.Context
	stop  context.CancelFunc
	names []string
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		// SkipIfStillRunning: долгий прогон не накладывается на следующий
		cron: cron.New(cron.WithChain(cron.Recover(cronLogger{}), cron.SkipIfStillRunning(cronLogger{}))),
		ctx:  ctx,
		stop: cancel,
	}
}

// Add регистрирует задачу. schedule - стандартное cron-выражение или @every/@hourly.
func (s *Scheduler) Add(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		_, _ = job.Run(logger.WithWorker(s.ctx, job.Name()))
	})
	if err != nil {
		return fmt.Errorf("schedule %s (%q): %w", job.Name(), schedule, err)
	}
	s.names = append(s.names, job.Name())
	logger.Info("Worker scheduled", "worker", job.Name(), "schedule", schedule)
	return nil
}

// AddFunc - задача без результата (например, очистка лимитеров)
func (s *Scheduler) AddFunc(name, schedule string, fn func()) error {
	if _, err := s.cron.AddFunc(schedule, fn); err != nil {
		return fmt.Errorf("schedule %s (%q): %w", name, schedule, err)
	}
	s.names = append(s.names, name)
	return nil
}

// Jobs - имена зарегистрированных задач в порядке добавления
func (s *Scheduler) Jobs() []string {
	return append([]string(nil), s.names...)
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop останавливает расписание и ждет завершения текущих задач
func (s *Scheduler) Stop(ctx context.Context) {
	s.stop()
	done := s.cron.Stop()
	select {
	case <-done.Done():
		logger.Info("Workers stopped")
	case <-ctx.Done():
		logger.Warn("Workers did not stop in time")
	}
}

// cronLogger направляет сообщения cron в slog
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.WithError(err).Error("cron: "+msg, keysAndValues...)
}
