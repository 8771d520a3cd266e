package report

import (
	"time"
)

// Article is one digest entry: a persisted article with its owning keyword
// term (empty when the article has no keyword).
type Article struct {
	Title       string
	URL         string
	Source      string
	PublishedAt time.Time
	Keyword     string
}

// RiskEntry is an article flagged by one or more risk terms.
type RiskEntry struct {
	Article Article
	Hits    []string
}

// Group is a keyword section of the digest.
type Group struct {
	Keyword  string
	Articles []Article
}

// Report is a fully rendered digest. It is built fresh per trigger and never
// persisted.
type Report struct {
	Headline    string
	Subject     string
	Total       int
	WindowHours int
	Risk        []RiskEntry
	Groups      []Group
	Text        string
	HTML        string
}

// fallbackGroup collects articles without a keyword.
const fallbackGroup = "기타"
