package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/newsclip/newsclip/app/config"
	"github.com/newsclip/newsclip/app/database"
)

type SyncKeywordsTask struct {
	Task
	seeds       []config.Seed
	keywordRepo database.KeywordRepository
}

func NewSyncKeywordsTask(seeds []config.Seed, keywordRepo database.KeywordRepository) *SyncKeywordsTask {
	return &SyncKeywordsTask{
		Task:        NewTask(TaskTypeSyncKeywords),
		seeds:       seeds,
		keywordRepo: keywordRepo,
	}
}

func (t *SyncKeywordsTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	for _, seed := range t.seeds {
		err := t.keywordRepo.UpsertSeed(seed.Term, seed.IsActive(), seed.Note)
		if err != nil {
			slog.Error("Task failed", "type", "SyncKeywords", "term", seed.Term, "error", err)
			return fmt.Errorf("failed to sync keyword seed %q: %w", seed.Term, err)
		}
	}

	slog.Info("Task completed",
		"type", "SyncKeywords",
		"duration", t.GetDuration(),
		"seeds", len(t.seeds))

	return nil
}
