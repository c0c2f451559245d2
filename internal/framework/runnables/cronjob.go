package runnables

import (
	"context"
	"time"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/util/wait"
)

// CronJobConfig is the configuration of a CronJob.
type CronJobConfig struct {
	// Worker is run on every tick. A failed run is logged and doesn't stop the CronJob.
	Worker func(context.Context) error
	// Logger is the logger.
	Logger logr.Logger
	// Period is the time between the end of one run and the start of the next one.
	Period time.Duration
	// JitterFactor, if positive, lengthens every Period by a random duration of up to JitterFactor*Period.
	JitterFactor float64
}

// CronJob runs a worker right after the start and then every Period, until stopped.
type CronJob struct {
	cfg CronJobConfig
	// runs and failures are only used by the goroutine of Start.
	runs     int
	failures int
}

// NewCronJob creates a new CronJob.
func NewCronJob(cfg CronJobConfig) *CronJob {
	return &CronJob{
		cfg: cfg,
	}
}

// Start runs the worker until the ctx is closed. Start must be called once.
func (j *CronJob) Start(ctx context.Context) error {
	j.cfg.Logger.Info("Starting cronjob", "period", j.cfg.Period.String())

	// sliding: the next period starts when the worker returns
	wait.JitterUntilWithContext(ctx, j.run, j.cfg.Period, j.cfg.JitterFactor, true)

	j.cfg.Logger.Info("Stopping cronjob", "runs", j.runs)
	return nil
}

func (j *CronJob) run(ctx context.Context) {
	j.runs++

	if err := j.cfg.Worker(ctx); err != nil {
		j.failures++
		j.cfg.Logger.Error(err, "Cronjob run failed", "run", j.runs, "consecutive failures", j.failures)
		return
	}

	if j.failures > 0 {
		j.cfg.Logger.Info("Cronjob recovered", "run", j.runs, "failed runs", j.failures)
		j.failures = 0
	}
}

var _ Runnable = &CronJob{}
