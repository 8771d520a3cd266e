package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/newsclip/newsclip/app/config"
	"github.com/newsclip/newsclip/app/database"
)

func TestTaskRetryAccounting(t *testing.T) {
	task := NewTask(TaskTypeCrawl)

	if task.ID == "" {
		t.Error("Task must get a unique ID")
	}
	if !task.CanRetry() {
		t.Error("Fresh task must be retryable")
	}

	for i := 0; i < DefaultMaxRetries; i++ {
		task.IncrementRetryCount()
	}

	if task.CanRetry() {
		t.Errorf("Task must not retry past %d attempts", DefaultMaxRetries)
	}
}

func TestTaskDurationBeforeStart(t *testing.T) {
	task := NewTask(TaskTypeReport)

	if task.GetDuration() != 0 {
		t.Error("Unstarted task must report zero duration")
	}
}

type fakeKeywordRepo struct {
	upserted []string
	err      error
}

func (r *fakeKeywordRepo) ListActive() ([]database.Keyword, error) { return nil, nil }
func (r *fakeKeywordRepo) List() ([]database.Keyword, error)       { return nil, nil }
func (r *fakeKeywordRepo) Create(term, note string) (*database.Keyword, error) {
	return nil, nil
}
func (r *fakeKeywordRepo) SetActive(id string, active bool) error { return nil }
func (r *fakeKeywordRepo) GetKeywordCount() (int, error)          { return 0, nil }
func (r *fakeKeywordRepo) UpsertSeed(term string, active bool, note string) error {
	if r.err != nil {
		return r.err
	}
	r.upserted = append(r.upserted, term)
	return nil
}

func TestSyncKeywordsTaskExecute(t *testing.T) {
	repo := &fakeKeywordRepo{}
	inactive := false
	seeds := []config.Seed{
		{Term: "삼성전자"},
		{Term: "현대차", Active: &inactive},
	}

	task := NewSyncKeywordsTask(seeds, repo)
	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(repo.upserted) != 2 {
		t.Errorf("Expected 2 upserts, got %d", len(repo.upserted))
	}
}

func TestSyncKeywordsTaskExecute_RepoError(t *testing.T) {
	repo := &fakeKeywordRepo{err: errors.New("connection refused")}
	seeds := []config.Seed{{Term: "삼성전자"}}

	task := NewSyncKeywordsTask(seeds, repo)
	if err := task.Execute(context.Background()); err == nil {
		t.Error("Expected error from failing keyword store")
	}
}

func TestSyncKeywordsTaskExecute_CancelledContext(t *testing.T) {
	repo := &fakeKeywordRepo{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	task := NewSyncKeywordsTask([]config.Seed{{Term: "삼성전자"}}, repo)
	if err := task.Execute(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}

	if len(repo.upserted) != 0 {
		t.Error("Cancelled task must not touch the store")
	}
}
