package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler 按 cron 表达式定期重新生成摘要。
// 同一时刻最多只有一轮在执行，重叠的触发直接跳过。
type Scheduler struct {
	cron    *cron.Cron
	job     func()
	running sync.Mutex
	initial sync.WaitGroup
	log     *slog.Logger
}

func New(spec string, loc *time.Location, job func(), log *slog.Logger) (*Scheduler, error) {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = slog.Default()
	}

	cronLog := cron.PrintfLogger(slog.NewLogLogger(log.Handler(), slog.LevelInfo))
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cronLog),
		cron.WithChain(cron.Recover(cronLog)),
	)

	s := &Scheduler{
		cron: c,
		job:  job,
		log:  log,
	}

	if _, err := c.AddFunc(spec, s.runOnce); err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}

	return s, nil
}

// Start 启动定时器，并立即在后台执行首轮
func (s *Scheduler) Start() {
	s.cron.Start()
	s.initial.Add(1)
	go func() {
		defer s.initial.Done()
		s.runOnce()
	}()
	s.log.Info("scheduler started", slog.Time("next", s.Next()))
}

// Stop 停止定时器，返回的 context 在所有进行中的任务（包括启动时的首轮）结束后关闭
func (s *Scheduler) Stop() context.Context {
	cronDone := s.cron.Stop()
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-cronDone.Done()
		s.initial.Wait()
		cancel()
	}()
	return ctx
}

// RunOnce 对外暴露的单次执行入口，方便手动触发
func (s *Scheduler) RunOnce() {
	s.runOnce()
}

// Next 返回下一次计划执行的时间；未启动时为零值
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

func (s *Scheduler) runOnce() {
	if !s.running.TryLock() {
		s.log.Warn("previous digest run still in progress, skipped")
		return
	}
	defer s.running.Unlock()

	start := time.Now()
	s.job()
	s.log.Info("scheduled digest done", slog.Duration("took", time.Since(start)))
}
