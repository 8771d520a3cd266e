package crawler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/newsclip/newsclip/app/database"
	"github.com/newsclip/newsclip/app/dedup"
	"github.com/newsclip/newsclip/app/sources"
)

// Deps wires the collaborators the crawl orchestration needs. Source order
// matters: items are concatenated in slice order before dedup, which defines
// the earliest-first tie-break.
type Deps struct {
	Keywords  database.KeywordRepository
	Articles  database.ArticleRepository
	Sources   []sources.Source
	Threshold float64
}

type Crawler struct {
	keywords database.KeywordRepository
	articles database.ArticleRepository
	sources  []sources.Source
	deduper  *dedup.Deduper
}

func New(deps Deps) *Crawler {
	return &Crawler{
		keywords: deps.Keywords,
		articles: deps.Articles,
		sources:  deps.Sources,
		deduper:  dedup.NewDeduper(deps.Threshold),
	}
}

type sourceResult struct {
	name  string
	items []sources.RawItem
	err   error
}

// Run crawls every active keyword. The only error it can return is an
// unreachable keyword store; per-keyword and per-source failures are captured
// in the result instead.
func (c *Crawler) Run(ctx context.Context) (*Result, error) {
	keywords, err := c.keywords.ListActive()
	if err != nil {
		return nil, fmt.Errorf("failed to list active keywords: %w", err)
	}

	result := &Result{
		ScannedKeywords: len(keywords),
		PerKeyword:      make([]KeywordStats, 0, len(keywords)),
	}

	seenTerms := make(map[string]struct{}, len(keywords))

	for _, keyword := range keywords {
		if _, ok := seenTerms[keyword.Term]; ok {
			slog.Warn("Skipping repeated active keyword term", "term", keyword.Term)
			continue
		}
		seenTerms[keyword.Term] = struct{}{}

		stats, failures := c.crawlKeyword(ctx, keyword)
		result.NewArticles += stats.Inserted
		result.PerKeyword = append(result.PerKeyword, stats)
		result.Failures = append(result.Failures, failures...)
	}

	return result, nil
}

// crawlKeyword fetches from every source concurrently, joins, dedupes, and
// persists. A failing source contributes zero items and a failure record.
func (c *Crawler) crawlKeyword(ctx context.Context, keyword database.Keyword) (KeywordStats, []Failure) {
	stats := KeywordStats{Term: keyword.Term}

	results := make([]sourceResult, len(c.sources))
	var wg sync.WaitGroup
	for i, source := range c.sources {
		wg.Add(1)
		go func(i int, source sources.Source) {
			defer wg.Done()
			items, err := source.Fetch(ctx, keyword.Term)
			results[i] = sourceResult{name: source.Name(), items: items, err: err}
		}(i, source)
	}
	wg.Wait()

	var failures []Failure
	var articles []database.NewArticle
	var candidates []dedup.Candidate

	for _, res := range results {
		if res.err != nil {
			if errors.Is(res.err, sources.ErrUnconfigured) {
				slog.Debug("Source not configured, skipping", "source", res.name, "keyword", keyword.Term)
			} else {
				slog.Warn("Source fetch failed", "source", res.name, "keyword", keyword.Term, "error", res.err)
				failures = append(failures, Failure{
					Keyword: keyword.Term,
					Source:  res.name,
					Reason:  res.err.Error(),
				})
			}
			continue
		}

		for _, item := range res.items {
			// Items without a usable URL or a parseable publish date never
			// reach dedup or the store.
			if item.URL == "" || item.Title == "" || item.PublishedAt == nil {
				continue
			}

			candidates = append(candidates, dedup.Candidate{
				Title: item.Title,
				URL:   item.URL,
				Index: len(articles),
			})
			articles = append(articles, database.NewArticle{
				KeywordID:   keyword.ID,
				Title:       item.Title,
				URL:         item.URL,
				Source:      item.Source,
				PublishedAt: *item.PublishedAt,
			})
		}
	}

	unique := dedup.UniqueByURL(candidates)
	stats.Fetched = len(unique)

	deduped := c.deduper.Run(unique)
	stats.Deduped = len(deduped)

	if len(deduped) == 0 {
		// Nothing survived; skip the insert call entirely.
		return stats, failures
	}

	batch := make([]database.NewArticle, 0, len(deduped))
	for _, candidate := range deduped {
		batch = append(batch, articles[candidate.Index])
	}

	inserted, err := c.articles.BulkInsert(batch)
	if err != nil {
		slog.Error("Failed to persist articles", "keyword", keyword.Term, "batch", len(batch), "error", err)
		failures = append(failures, Failure{
			Keyword: keyword.Term,
			Source:  "store",
			Reason:  err.Error(),
		})
		return stats, failures
	}

	stats.Inserted = inserted

	slog.Debug("Keyword crawled",
		"keyword", keyword.Term,
		"fetched", stats.Fetched,
		"deduped", stats.Deduped,
		"inserted", stats.Inserted)

	return stats, failures
}
