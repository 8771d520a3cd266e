package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/newsclip/newsclip/app/cfg"
	"github.com/newsclip/newsclip/app/config"
	"github.com/newsclip/newsclip/app/crawler"
	"github.com/newsclip/newsclip/app/database"
	"github.com/newsclip/newsclip/app/deliver"
	"github.com/newsclip/newsclip/app/report"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

type Scheduler struct {
	crawler        *crawler.Crawler
	builder        *report.Builder
	runner         *deliver.Runner
	keywordRepo    database.KeywordRepository
	seeds          []config.Seed
	crawlInterval  time.Duration
	reportInterval time.Duration
	workerCount    int
	ctx            context.Context
	cancel         context.CancelFunc
	wg             sync.WaitGroup
	taskQueue      chan TaskInterface
}

func NewScheduler(c *crawler.Crawler, builder *report.Builder, runner *deliver.Runner,
	keywordRepo database.KeywordRepository, seeds []config.Seed) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	conf := cfg.Get()

	return &Scheduler{
		crawler:        c,
		builder:        builder,
		runner:         runner,
		keywordRepo:    keywordRepo,
		seeds:          seeds,
		crawlInterval:  time.Duration(conf.CrawlIntervalMinutes) * time.Minute,
		reportInterval: time.Duration(conf.ReportIntervalMinutes) * time.Minute,
		workerCount:    conf.WorkerCount,
		ctx:            ctx,
		cancel:         cancel,
		taskQueue:      make(chan TaskInterface, 100),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		crawlTicker := time.NewTicker(s.crawlInterval)
		defer crawlTicker.Stop()

		// A non-positive report interval disables scheduled digests; a nil
		// channel never fires.
		var reportTick <-chan time.Time
		if s.reportInterval > 0 {
			reportTicker := time.NewTicker(s.reportInterval)
			defer reportTicker.Stop()
			reportTick = reportTicker.C
		} else {
			slog.Debug("Scheduled digests disabled")
		}

		s.enqueueStartupTasks()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-crawlTicker.C:
				if err := s.EnqueueTask(NewCrawlTask(s.crawler)); err != nil {
					slog.Warn("Failed to enqueue CrawlTask", "error", err)
				}
			case <-reportTick:
				if err := s.EnqueueTask(NewReportTask(s.builder, s.runner)); err != nil {
					slog.Warn("Failed to enqueue ReportTask", "error", err)
				}
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

// enqueueStartupTasks seeds the keyword store and kicks off the first crawl.
// The seed sync runs before the crawl is picked up in the common single-worker
// case; the crawl itself tolerates an empty keyword list either way.
func (s *Scheduler) enqueueStartupTasks() {
	if len(s.seeds) > 0 {
		syncTask := NewSyncKeywordsTask(s.seeds, s.keywordRepo)
		if err := s.EnqueueTask(syncTask); err != nil {
			slog.Warn("Failed to enqueue SyncKeywordsTask", "error", err)
		}
	} else {
		slog.Debug("No keyword seeds found")
	}

	if err := s.EnqueueTask(NewCrawlTask(s.crawler)); err != nil {
		slog.Warn("Failed to enqueue CrawlTask", "error", err)
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)

	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

		if task.CanRetry() {
			task.IncrementRetryCount()
			retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
			if retryDelay > 30*time.Second {
				retryDelay = 30 * time.Second
			}

			slog.Warn("Task retry scheduled", "type", string(task.GetType()), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

			go func() {
				time.Sleep(retryDelay)
				select {
				case <-s.ctx.Done():
					slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
					return
				default:
					if retryErr := s.EnqueueTask(task); retryErr != nil {
						slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
					}
				}
			}()
		} else {
			slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		}
	}
}
