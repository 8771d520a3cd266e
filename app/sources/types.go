package sources

import (
	"context"
	"errors"
	"time"
)

const (
	SourceNaver  = "naver"
	SourceGoogle = "google"
)

// ErrUnconfigured marks a source disabled by missing credentials. The crawl
// treats it as an empty result, not a failure, so call sites can tell
// "no results" apart from "source disabled".
var ErrUnconfigured = errors.New("source is not configured")

// RawItem is a normalized article as returned by a source adapter. Text
// fields are plain text with markup stripped. PublishedAt is nil when the
// provider's timestamp was absent or unparseable; such items are dropped
// before persistence.
type RawItem struct {
	Title       string
	URL         string
	PublishedAt *time.Time
	Source      string
}

// Source fetches raw articles for a keyword from one external provider.
// Implementations are stateless and safe for concurrent use.
type Source interface {
	Name() string
	Fetch(ctx context.Context, keyword string) ([]RawItem, error)
}
