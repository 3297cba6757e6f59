package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-manager/internal/logger"
	"github.com/BruksfildServices01/barbershop-manager/internal/metrics"
)

const jobTimeout = 5 * time.Minute

type Job interface {
	Name() string
	Run(ctx context.Context) (int, error)
}

// Scheduler runs jobs on cron specs in the shop's timezone.
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler(loc *time.Location) *Scheduler {
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.Recover(cronLogger{})),
		),
	}
}

// Add registers job under spec (standard five-field cron syntax).
func (s *Scheduler) Add(spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() { runJob(job) })
	return err
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs or until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		logger.Log.Warn("scheduler stop timed out")
	}
}

func runJob(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	n, err := job.Run(ctx)
	metrics.RecordJobRun(job.Name(), err == nil)

	if err != nil {
		logger.Log.Error("job failed",
			zap.String("job", job.Name()),
			zap.Duration("took", time.Since(start)),
			zap.Error(err),
		)
		return
	}

	logger.Log.Info("job finished",
		zap.String("job", job.Name()),
		zap.Int("processed", n),
		zap.Duration("took", time.Since(start)),
	)
}

// cronLogger routes cron's own messages to zap.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.SLog.Infow(msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.SLog.Errorw(msg, append(keysAndValues, "error", err)...)
}
