package cron

import (
	"context"
	"time"

	"github.com/See2Code/transport-platform-sub000/config"
	metricsRepo "github.com/See2Code/transport-platform-sub000/database/repository/metrics"
	"github.com/See2Code/transport-platform-sub000/services/dispatch"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	cronlib "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const leaseKeyPrefix = "dispatch:lease:"

// Worker owns the periodic triggering of the dispatch jobs and the hourly
// metrics-day initializer. The trigger guarantees "at least once per
// interval"; the Redis lease below only damps accidental overlap — the
// document-level claim remains the sole correctness boundary.
type Worker struct {
	cron        *cronlib.Cron
	jobs        []*dispatch.Job
	metrics     metricsRepo.MetricsRepository
	lease       *redis.Client
	logger      *zap.Logger
	tickTimeout time.Duration
}

func NewWorker(
	jobs []*dispatch.Job,
	metrics metricsRepo.MetricsRepository,
	lease *redis.Client,
	loc *time.Location,
	tickTimeout time.Duration,
	logger *zap.Logger,
) *Worker {
	return &Worker{
		cron:        cronlib.New(cronlib.WithLocation(loc)),
		jobs:        jobs,
		metrics:     metrics,
		lease:       lease,
		logger:      logger,
		tickTimeout: tickTimeout,
	}
}

// Start registers the cron entries and begins triggering in the background.
func (w *Worker) Start() error {
	for _, job := range w.jobs {
		job := job
		if _, err := w.cron.AddFunc(config.AppConfig.DispatchCron, func() {
			w.tick(job)
		}); err != nil {
			return err
		}
	}

	if _, err := w.cron.AddFunc(config.AppConfig.MetricsCron, w.initMetricsDay); err != nil {
		return err
	}

	w.cron.Start()
	w.logger.Info("dispatch worker started",
		zap.String("dispatchCron", config.AppConfig.DispatchCron),
		zap.String("metricsCron", config.AppConfig.MetricsCron))
	return nil
}

// Stop halts triggering and waits for running ticks to finish or the context
// to expire.
func (w *Worker) Stop(ctx context.Context) {
	stopped := w.cron.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
		w.logger.Warn("shutdown deadline reached with ticks still running")
	}
}

func (w *Worker) tick(job *dispatch.Job) {
	ctx, cancel := context.WithTimeout(context.Background(), w.tickTimeout)
	defer cancel()

	key := leaseKeyPrefix + string(job.Kind())
	token, acquired := w.acquireLease(ctx, key)
	if !acquired {
		// A previous tick of this job is still inside its lease window.
		w.logger.Debug("skipping tick, lease held", zap.String("lease", key))
		return
	}
	defer w.releaseLease(key, token)

	job.RunOnce(ctx, time.Now())
}

func (w *Worker) initMetricsDay() {
	ctx, cancel := context.WithTimeout(context.Background(), w.tickTimeout)
	defer cancel()

	if err := w.metrics.InitializeDay(ctx, time.Now()); err != nil {
		w.logger.Error("failed to initialize metrics day", zap.Error(err))
	}
}

// acquireLease takes a best-effort SetNX lease. When Redis is unreachable
// the tick proceeds anyway: the lease is an optimization, not a lock.
func (w *Worker) acquireLease(ctx context.Context, key string) (string, bool) {
	token := uuid.New().String()
	ok, err := w.lease.SetNX(ctx, key, token, w.tickTimeout).Result()
	if err != nil {
		w.logger.Warn("lease unavailable, proceeding without overlap damping",
			zap.String("lease", key), zap.Error(err))
		return token, true
	}
	return token, ok
}

// releaseLease drops the lease if it is still ours. Best effort: an expired
// or lost lease is simply left alone.
func (w *Worker) releaseLease(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	current, err := w.lease.Get(ctx, key).Result()
	if err != nil || current != token {
		return
	}
	w.lease.Del(ctx, key)
}
