package crawler

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/newsclip/newsclip/app/database"
	"github.com/newsclip/newsclip/app/sources"
)

type fakeKeywordRepo struct {
	keywords []database.Keyword
	err      error
}

func (f *fakeKeywordRepo) ListActive() ([]database.Keyword, error) { return f.keywords, f.err }
func (f *fakeKeywordRepo) List() ([]database.Keyword, error)       { return f.keywords, f.err }
func (f *fakeKeywordRepo) Create(term, note string) (*database.Keyword, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeKeywordRepo) SetActive(id string, active bool) error              { return nil }
func (f *fakeKeywordRepo) UpsertSeed(term string, active bool, note string) error { return nil }
func (f *fakeKeywordRepo) GetKeywordCount() (int, error)                       { return len(f.keywords), nil }

type fakeArticleRepo struct {
	batches  [][]database.NewArticle
	inserted func(batch []database.NewArticle) int
	err      error
}

func (f *fakeArticleRepo) BulkInsert(articles []database.NewArticle) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.batches = append(f.batches, articles)
	if f.inserted != nil {
		return f.inserted(articles), nil
	}
	return len(articles), nil
}

func (f *fakeArticleRepo) GetRecent(since time.Time, limit int) ([]database.ReportArticle, error) {
	return nil, nil
}
func (f *fakeArticleRepo) GetArticleCount() (int, error) { return 0, nil }

type fakeSource struct {
	name  string
	items map[string][]sources.RawItem
	errs  map[string]error
}

func (f *fakeSource) Name() string { return f.name }
func (f *fakeSource) Fetch(ctx context.Context, keyword string) ([]sources.RawItem, error) {
	if err, ok := f.errs[keyword]; ok {
		return nil, err
	}
	return f.items[keyword], nil
}

func ts(t *testing.T) *time.Time {
	t.Helper()
	v := time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC)
	return &v
}

func keyword(id, term string) database.Keyword {
	return database.Keyword{ID: id, Term: term, Active: true}
}

func TestRun_CrossSourceURLDedup(t *testing.T) {
	when := ts(t)

	naver := &fakeSource{name: sources.SourceNaver, items: map[string][]sources.RawItem{
		"삼성전자": {
			{Title: "삼성전자 실적 발표", URL: "https://x/1", PublishedAt: when, Source: sources.SourceNaver},
		},
	}}
	google := &fakeSource{name: sources.SourceGoogle, items: map[string][]sources.RawItem{
		"삼성전자": {
			{Title: "삼성전자, 실적 발표", URL: "https://x/1", PublishedAt: when, Source: sources.SourceGoogle},
			{Title: "전혀다른기사", URL: "https://y/2", PublishedAt: when, Source: sources.SourceGoogle},
		},
	}}

	articleRepo := &fakeArticleRepo{}
	c := New(Deps{
		Keywords:  &fakeKeywordRepo{keywords: []database.Keyword{keyword("k1", "삼성전자")}},
		Articles:  articleRepo,
		Sources:   []sources.Source{naver, google},
		Threshold: 0.82,
	})

	result, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.NewArticles != 2 {
		t.Errorf("Expected 2 new articles, got %d", result.NewArticles)
	}
	if result.ScannedKeywords != 1 {
		t.Errorf("Expected 1 scanned keyword, got %d", result.ScannedKeywords)
	}
	if len(result.PerKeyword) != 1 {
		t.Fatalf("Expected 1 per-keyword entry, got %d", len(result.PerKeyword))
	}

	stats := result.PerKeyword[0]
	if stats.Fetched != 2 {
		t.Errorf("Expected 2 fetched after URL dedup, got %d", stats.Fetched)
	}
	if stats.Deduped != 2 {
		t.Errorf("Expected 2 deduped, got %d", stats.Deduped)
	}
	if stats.Inserted != 2 {
		t.Errorf("Expected 2 inserted, got %d", stats.Inserted)
	}

	if len(articleRepo.batches) != 1 {
		t.Fatalf("Expected 1 insert call, got %d", len(articleRepo.batches))
	}
	batch := articleRepo.batches[0]
	// Naver's item came first, so the duplicate URL resolved to its title.
	if batch[0].URL != "https://x/1" || batch[0].Source != sources.SourceNaver {
		t.Errorf("Expected naver item to win the URL collision, got %+v", batch[0])
	}
	if batch[1].URL != "https://y/2" {
		t.Errorf("Expected second article y/2, got %+v", batch[1])
	}
	if batch[0].KeywordID != "k1" {
		t.Errorf("Expected keyword reference on persisted article, got '%s'", batch[0].KeywordID)
	}
}

func TestRun_SourceFailureIsIsolated(t *testing.T) {
	when := ts(t)

	naver := &fakeSource{name: sources.SourceNaver, errs: map[string]error{
		"삼성전자": errors.New("naver api error: 500"),
	}}
	google := &fakeSource{
		name: sources.SourceGoogle,
		items: map[string][]sources.RawItem{
			"삼성전자": {{Title: "삼성전자 기사", URL: "https://y/1", PublishedAt: when, Source: sources.SourceGoogle}},
			"한화생명": {{Title: "한화생명 기사", URL: "https://y/2", PublishedAt: when, Source: sources.SourceGoogle}},
		},
	}

	articleRepo := &fakeArticleRepo{}
	c := New(Deps{
		Keywords: &fakeKeywordRepo{keywords: []database.Keyword{
			keyword("k1", "삼성전자"),
			keyword("k2", "한화생명"),
		}},
		Articles:  articleRepo,
		Sources:   []sources.Source{naver, google},
		Threshold: 0.82,
	})

	result, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run must not fail on a source error, got %v", err)
	}

	if result.NewArticles != 2 {
		t.Errorf("Expected both keywords to yield their google items, got %d new articles", result.NewArticles)
	}
	if len(result.Failures) != 1 {
		t.Fatalf("Expected 1 failure record, got %d", len(result.Failures))
	}
	failure := result.Failures[0]
	if failure.Keyword != "삼성전자" || failure.Source != sources.SourceNaver {
		t.Errorf("Unexpected failure record: %+v", failure)
	}
	if failure.Reason == "" {
		t.Error("Failure must carry a reason")
	}
}

func TestRun_UnconfiguredSourceIsNotAFailure(t *testing.T) {
	when := ts(t)

	naver := &fakeSource{name: sources.SourceNaver, errs: map[string]error{
		"삼성전자": sources.ErrUnconfigured,
	}}
	google := &fakeSource{name: sources.SourceGoogle, items: map[string][]sources.RawItem{
		"삼성전자": {{Title: "삼성전자 기사", URL: "https://y/1", PublishedAt: when, Source: sources.SourceGoogle}},
	}}

	c := New(Deps{
		Keywords:  &fakeKeywordRepo{keywords: []database.Keyword{keyword("k1", "삼성전자")}},
		Articles:  &fakeArticleRepo{},
		Sources:   []sources.Source{naver, google},
		Threshold: 0.82,
	})

	result, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Failures) != 0 {
		t.Errorf("Unconfigured source must not produce a failure record, got %+v", result.Failures)
	}
	if result.NewArticles != 1 {
		t.Errorf("Expected 1 new article from the configured source, got %d", result.NewArticles)
	}
}

func TestRun_DropsItemsWithoutDateOrURL(t *testing.T) {
	when := ts(t)

	google := &fakeSource{name: sources.SourceGoogle, items: map[string][]sources.RawItem{
		"삼성전자": {
			{Title: "날짜 없는 기사", URL: "https://y/1", Source: sources.SourceGoogle},
			{Title: "정상 기사", URL: "https://y/2", PublishedAt: when, Source: sources.SourceGoogle},
			{Title: "URL 없는 기사", PublishedAt: when, Source: sources.SourceGoogle},
		},
	}}

	articleRepo := &fakeArticleRepo{}
	c := New(Deps{
		Keywords:  &fakeKeywordRepo{keywords: []database.Keyword{keyword("k1", "삼성전자")}},
		Articles:  articleRepo,
		Sources:   []sources.Source{google},
		Threshold: 0.82,
	})

	result, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.PerKeyword[0].Fetched != 1 {
		t.Errorf("Expected only the usable item to be counted, got %d", result.PerKeyword[0].Fetched)
	}
	if len(articleRepo.batches) != 1 || len(articleRepo.batches[0]) != 1 {
		t.Fatalf("Expected a single one-article insert, got %+v", articleRepo.batches)
	}
}

func TestRun_SkipsInsertWhenNothingSurvives(t *testing.T) {
	google := &fakeSource{name: sources.SourceGoogle, items: map[string][]sources.RawItem{
		"삼성전자": {{Title: "날짜 없는 기사", URL: "https://y/1", Source: sources.SourceGoogle}},
	}}

	articleRepo := &fakeArticleRepo{}
	c := New(Deps{
		Keywords:  &fakeKeywordRepo{keywords: []database.Keyword{keyword("k1", "삼성전자")}},
		Articles:  articleRepo,
		Sources:   []sources.Source{google},
		Threshold: 0.82,
	})

	result, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(articleRepo.batches) != 0 {
		t.Errorf("Expected no insert call for an empty batch, got %d", len(articleRepo.batches))
	}
	if len(result.PerKeyword) != 1 {
		t.Errorf("Stats must still be recorded for the keyword, got %+v", result.PerKeyword)
	}
}

func TestRun_InsertedCountComesFromStore(t *testing.T) {
	when := ts(t)

	google := &fakeSource{name: sources.SourceGoogle, items: map[string][]sources.RawItem{
		"삼성전자": {
			{Title: "첫번째 기사", URL: "https://y/1", PublishedAt: when, Source: sources.SourceGoogle},
			{Title: "전혀 다른 두번째 기사", URL: "https://y/2", PublishedAt: when, Source: sources.SourceGoogle},
		},
	}}

	// The store reports one row skipped as a duplicate URL.
	articleRepo := &fakeArticleRepo{inserted: func(batch []database.NewArticle) int {
		return len(batch) - 1
	}}

	c := New(Deps{
		Keywords:  &fakeKeywordRepo{keywords: []database.Keyword{keyword("k1", "삼성전자")}},
		Articles:  articleRepo,
		Sources:   []sources.Source{google},
		Threshold: 0.82,
	})

	result, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.NewArticles != 1 {
		t.Errorf("New-article count must come from the store, got %d", result.NewArticles)
	}
	if result.PerKeyword[0].Deduped != 2 {
		t.Errorf("Expected deduped batch of 2, got %d", result.PerKeyword[0].Deduped)
	}
}

func TestRun_KeywordStoreErrorIsFatal(t *testing.T) {
	c := New(Deps{
		Keywords:  &fakeKeywordRepo{err: fmt.Errorf("connection refused")},
		Articles:  &fakeArticleRepo{},
		Threshold: 0.82,
	})

	if _, err := c.Run(context.Background()); err == nil {
		t.Error("Expected run-level error when the keyword store is unavailable")
	}
}

func TestRun_InsertErrorRecordedNotFatal(t *testing.T) {
	when := ts(t)

	google := &fakeSource{name: sources.SourceGoogle, items: map[string][]sources.RawItem{
		"삼성전자": {{Title: "기사", URL: "https://y/1", PublishedAt: when, Source: sources.SourceGoogle}},
	}}

	c := New(Deps{
		Keywords:  &fakeKeywordRepo{keywords: []database.Keyword{keyword("k1", "삼성전자")}},
		Articles:  &fakeArticleRepo{err: errors.New("insert failed")},
		Sources:   []sources.Source{google},
		Threshold: 0.82,
	})

	result, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run must not fail on an insert error, got %v", err)
	}

	if len(result.Failures) != 1 {
		t.Fatalf("Expected 1 failure record, got %d", len(result.Failures))
	}
	if result.NewArticles != 0 {
		t.Errorf("Failed insert must not count new articles, got %d", result.NewArticles)
	}
}
