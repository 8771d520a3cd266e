package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/newsclip/newsclip/app/cfg"
	"github.com/newsclip/newsclip/app/deliver"
	"github.com/newsclip/newsclip/app/report"
)

type ReportTask struct {
	Task
	builder *report.Builder
	runner  *deliver.Runner
}

func NewReportTask(builder *report.Builder, runner *deliver.Runner) *ReportTask {
	return &ReportTask{
		Task:    NewTask(TaskTypeReport),
		builder: builder,
		runner:  runner,
	}
}

func (t *ReportTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	conf := cfg.Get()

	rep, err := t.builder.Build(conf.ReportWindowHours, conf.ReportMaxItems)
	if err != nil {
		return fmt.Errorf("failed to build digest: %w", err)
	}

	outcomes := t.runner.Run(ctx, rep)

	sent := 0
	for _, outcome := range outcomes {
		if outcome.Sent {
			sent++
		}
	}

	slog.Info("Task completed",
		"type", "Report",
		"duration", t.GetDuration(),
		"articles", rep.Total,
		"channels_sent", sent,
		"channels_total", len(outcomes))

	return nil
}
