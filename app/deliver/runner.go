package deliver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"

	"github.com/newsclip/newsclip/app/report"
)

// Runner fans a digest out to every configured channel. Channels succeed or
// fail independently; the caller receives one outcome per attempted channel.
type Runner struct {
	dispatchers []Dispatcher
}

func NewRunner(dispatchers ...Dispatcher) *Runner {
	return &Runner{dispatchers: dispatchers}
}

func (r *Runner) Run(ctx context.Context, rep *report.Report) []Outcome {
	outcomes := make([]Outcome, 0, len(r.dispatchers))

	var failures *multierror.Error
	for _, dispatcher := range r.dispatchers {
		outcome := dispatcher.Send(ctx, rep)
		outcomes = append(outcomes, outcome)

		if outcome.OK {
			slog.Info("Digest delivered", "channel", outcome.Channel, "count", outcome.Count)
		} else if outcome.Reason == ReasonMissingConfig {
			slog.Debug("Channel not configured, skipping", "channel", outcome.Channel)
		} else {
			failures = multierror.Append(failures,
				fmt.Errorf("channel %s: %s", outcome.Channel, outcome.Reason))
		}
	}

	if err := failures.ErrorOrNil(); err != nil {
		slog.Warn("Digest delivery partially failed", "error", err)
	}

	return outcomes
}
