package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/newsclip/newsclip/app/crawler"
)

type CrawlTask struct {
	Task
	crawler *crawler.Crawler
}

func NewCrawlTask(c *crawler.Crawler) *CrawlTask {
	return &CrawlTask{
		Task:    NewTask(TaskTypeCrawl),
		crawler: c,
	}
}

func (t *CrawlTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	result, err := t.crawler.Run(ctx)
	if err != nil {
		return fmt.Errorf("failed to run crawl: %w", err)
	}

	slog.Info("Task completed",
		"type", "Crawl",
		"duration", t.GetDuration(),
		"keywords", result.ScannedKeywords,
		"new", result.NewArticles,
		"failures", len(result.Failures))

	return nil
}
