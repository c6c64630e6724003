package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/culinary/backend/internal/infrastructure/config"
	"github.com/culinary/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ErrInvalidConfig is returned when the trigger time is out of range
var ErrInvalidConfig = errors.New("invalid scheduler configuration")

// Job is work run by the trigger once per calendar day
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// JobFunc adapts a function to Job
type JobFunc struct {
	JobName string
	Fn      func(ctx context.Context) error
}

// Name returns the job name
func (f JobFunc) Name() string { return f.JobName }

// Run calls the function
func (f JobFunc) Run(ctx context.Context) error { return f.Fn(ctx) }

// CronTriggerConfig holds configuration for the cron trigger
type CronTriggerConfig struct {
	// DailyHour and DailyMinute are the wall-clock time to run at (24h)
	DailyHour   int
	DailyMinute int

	// CheckInterval is how often to check if it's time to run
	CheckInterval time.Duration

	// JobTimeout bounds a single run
	JobTimeout time.Duration
}

// DefaultCronTriggerConfig returns default cron trigger configuration
func DefaultCronTriggerConfig() CronTriggerConfig {
	return CronTriggerConfig{
		DailyHour:     1,
		DailyMinute:   0,
		CheckInterval: time.Minute,
		JobTimeout:    30 * time.Minute,
	}
}

// CronTriggerConfigFrom builds the trigger configuration from the scheduler section
func CronTriggerConfigFrom(cfg config.SchedulerConfig) CronTriggerConfig {
	c := DefaultCronTriggerConfig()
	c.DailyHour = cfg.DailyHour
	c.DailyMinute = cfg.DailyMin
	if cfg.JobTimeout > 0 {
		c.JobTimeout = cfg.JobTimeout
	}
	return c
}

func (c CronTriggerConfig) validate() error {
	if c.DailyHour < 0 || c.DailyHour > 23 || c.DailyMinute < 0 || c.DailyMinute > 59 {
		return ErrInvalidConfig
	}
	if c.CheckInterval <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

// JobObserver is told how every run ended
type JobObserver func(ctx context.Context, job string, d time.Duration, err error)

// CronTrigger runs jobs once a day at a fixed time
type CronTrigger struct {
	config   CronTriggerConfig
	jobs     []Job
	logger   *zap.Logger
	now      func() time.Time
	observer JobObserver

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string
}

// NewCronTrigger creates a new cron trigger
func NewCronTrigger(config CronTriggerConfig, logger *zap.Logger, jobs ...Job) (*CronTrigger, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CronTrigger{
		config: config,
		jobs:   jobs,
		logger: logger,
		now:    time.Now,
	}, nil
}

// SetJobObserver installs fn to be called after each job run
func (c *CronTrigger) SetJobObserver(fn JobObserver) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observer = fn
}

// Start starts the cron trigger
func (c *CronTrigger) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = true
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	c.wg.Add(1)
	go c.runLoop(ctx)

	c.logger.Info("Cron trigger started",
		zap.Int("daily_hour", c.config.DailyHour),
		zap.Int("daily_minute", c.config.DailyMinute),
		zap.Duration("check_interval", c.config.CheckInterval),
		zap.Int("jobs", len(c.jobs)),
	)
	return nil
}

// Stop stops the cron trigger and waits for a running job to return
func (c *CronTrigger) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = false
	cancel := c.cancel
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("Cron trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsRunning reports whether the trigger loop is active
func (c *CronTrigger) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isRunning
}

func (c *CronTrigger) runLoop(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.checkAndTrigger(ctx)
		}
	}
}

// checkAndTrigger runs the jobs if the configured time has been reached and
// they have not run yet today. Reports whether it ran them.
func (c *CronTrigger) checkAndTrigger(ctx context.Context) bool {
	now := c.now()
	currentDate := now.Format("2006-01-02")

	c.mu.Lock()
	if c.lastRunDate == currentDate {
		c.mu.Unlock()
		return false
	}
	due := now.Hour() > c.config.DailyHour ||
		(now.Hour() == c.config.DailyHour && now.Minute() >= c.config.DailyMinute)
	if !due {
		c.mu.Unlock()
		return false
	}
	c.lastRunDate = currentDate
	c.mu.Unlock()

	c.RunNow(ctx)
	return true
}

// RunNow runs every job immediately. A failing job is logged and does not stop the others.
func (c *CronTrigger) RunNow(ctx context.Context) {
	for _, job := range c.jobs {
		if ctx.Err() != nil {
			return
		}
		c.runJob(ctx, job)
	}
}

func (c *CronTrigger) runJob(ctx context.Context, job Job) {
	jobCtx := ctx
	if c.config.JobTimeout > 0 {
		var cancel context.CancelFunc
		jobCtx, cancel = context.WithTimeout(ctx, c.config.JobTimeout)
		defer cancel()
	}

	start := c.now()
	c.logger.Info("Running scheduled job", zap.String("job", job.Name()))

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Scheduled job panicked",
				zap.String("job", job.Name()),
				zap.Any("panic", r),
			)
		}
	}()

	var err error
	telemetry.WithProfilingLabels(jobCtx, map[string]string{telemetry.ProfilingLabelJob: job.Name()}, func(ctx context.Context) {
		err = job.Run(ctx)
	})

	c.mu.Lock()
	observer := c.observer
	c.mu.Unlock()
	if observer != nil {
		observer(ctx, job.Name(), c.now().Sub(start), err)
	}

	if err != nil {
		c.logger.Error("Scheduled job failed",
			zap.String("job", job.Name()),
			zap.Error(err),
		)
		return
	}
	c.logger.Info("Scheduled job completed",
		zap.String("job", job.Name()),
		zap.Duration("duration", c.now().Sub(start)),
	)
}
