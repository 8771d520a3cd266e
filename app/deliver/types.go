package deliver

import (
	"context"

	"github.com/newsclip/newsclip/app/report"
)

const (
	ChannelEmail = "email"
	ChannelLark  = "lark"
)

// ReasonMissingConfig marks a channel skipped because its configuration is
// incomplete. This is a normal outcome, not an error state.
const ReasonMissingConfig = "missing_config"

// ReasonTransportError marks a request that failed before any HTTP status
// was received (including timeouts).
const ReasonTransportError = "transport_error"

// Outcome is the per-channel delivery result. Failures carry a
// machine-readable reason code; no dispatcher ever returns an error.
type Outcome struct {
	Channel string `json:"channel"`
	OK      bool   `json:"ok"`
	Sent    bool   `json:"sent"`
	Reason  string `json:"reason,omitempty"`
	Count   int    `json:"count"`
}

// Dispatcher delivers a rendered digest through one notification channel.
// Each dispatcher resolves its own configuration.
type Dispatcher interface {
	Name() string
	Send(ctx context.Context, r *report.Report) Outcome
}
