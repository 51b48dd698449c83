package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
)

// IJob job scheduled by cron
type IJob interface {
	Start(ctx context.Context) error
	Run()
	Stop() error
}

// OnWork one round of a job
type OnWork func(ctx context.Context) error

// BaseJob runs OnWork on a cron schedule, a round still running skips the next tick
type BaseJob struct {
	Name   string
	Cron   *cron.Cron
	OnWork OnWork

	ctx     context.Context
	running int32
}

// Schedule builds the cron of the job in location, an unknown location falls back to UTC
func (job *BaseJob) Schedule(location, spec string) error {
	l, err := time.LoadLocation(location)
	if err != nil {
		l = time.UTC
	}

	job.Cron = cron.New(cron.WithLocation(l))
	_, err = job.Cron.AddFunc(spec, job.Run)
	return err
}

func (job *BaseJob) Start(ctx context.Context) error {
	job.ctx = logger.WithContext(ctx, logger.FromContext(ctx).WithField("worker", job.Name))
	job.Cron.Start()
	return nil
}

func (job *BaseJob) Stop() error {
	<-job.Cron.Stop().Done()
	return nil
}

func (job *BaseJob) Run() {
	if !atomic.CompareAndSwapInt32(&job.running, 0, 1) {
		return
	}
	defer atomic.StoreInt32(&job.running, 0)

	ctx := job.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	if err := job.OnWork(ctx); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("work failed")
	}
}
