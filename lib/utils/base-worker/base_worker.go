package baseworker

import (
	"context"
	"runtime/debug"
	"time"

	log "github.com/sirupsen/logrus"
)

type BaseImpl struct {
	WorkerName    string
	firstRunDelay time.Duration
	runInterval   time.Duration
}

func NewInstance(WorkerName string, firstRunDelay, runInterval time.Duration) *BaseImpl {
	return &BaseImpl{
		WorkerName:    WorkerName,
		firstRunDelay: firstRunDelay,
		runInterval:   runInterval,
	}
}

func (i BaseImpl) GetLogger() *log.Entry {
	return log.WithField("worker_name", i.WorkerName)
}

// Run выполняет jobFunc по расписанию до завершения контекста,
// паника в одном запуске не останавливает задачу
func (i BaseImpl) Run(ctx context.Context, jobFunc func(ctx context.Context)) {
	logger := i.GetLogger()
	timer := time.NewTimer(i.firstRunDelay)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("Задача остановлена")
			return
		case <-timer.C:
			i.RunOnce(ctx, jobFunc)
			timer.Reset(i.runInterval)
		}
	}
}

func (i BaseImpl) RunOnce(ctx context.Context, jobFunc func(ctx context.Context)) {
	logger := i.GetLogger()
	defer func() {
		if r := recover(); r != nil {
			logger.
				WithField("panic_stack", string(debug.Stack())).
				Errorf("panic: (%v)", r)
		}
	}()
	started := time.Now()
	logger.Debug("Задача запущена")
	jobFunc(ctx)
	logger.WithField("duration", time.Since(started).String()).Info("Задача выполнена")
}
