package schedule

import (
	"context"
	"sync/atomic"

	"github.com/robfig/cron/v3"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

// Job is a unit of periodic background work.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

type CronScheduler struct {
	cron *cron.Cron
}

func NewCronScheduler() *CronScheduler {
	return &CronScheduler{cron: cron.New()}
}

// Add registers a job on a cron spec. A job still running when its next tick
// arrives is skipped, not stacked.
func (s *CronScheduler) Add(spec string, job Job) error {
	var running atomic.Bool
	_, err := s.cron.AddFunc(spec, func() {
		if !running.CompareAndSwap(false, true) {
			logutil.GetLogger(context.Background()).Warn("job still running, skip tick",
				zap.String("job", job.Name()))
			return
		}
		defer running.Store(false)
		ctx := context.Background()
		if err := job.Run(ctx); err != nil {
			logutil.GetLogger(ctx).Error("job failed",
				zap.String("job", job.Name()), zap.Error(err))
		}
	})
	return err
}

func (s *CronScheduler) Start() {
	s.cron.Start()
}

func (s *CronScheduler) Stop() {
	<-s.cron.Stop().Done()
}
