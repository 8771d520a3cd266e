package database

import (
	"time"
)

// Keyword is a tracked search term. Keywords are created by the admin API or
// synced from seed files; the crawl pipeline only reads them.
type Keyword struct {
	ID        string
	Term      string
	Active    bool
	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewArticle is a deduplicated candidate ready for insertion.
type NewArticle struct {
	KeywordID   string
	Title       string
	URL         string
	Source      string
	PublishedAt time.Time
}

// Article is a persisted article row.
type Article struct {
	ID          string
	KeywordID   *string
	Title       string
	URL         string
	Source      string
	PublishedAt time.Time
	CreatedAt   time.Time
}

// ReportArticle is an article joined with its owning keyword term for the
// digest report. KeywordTerm is empty for articles without a keyword.
type ReportArticle struct {
	Title       string
	URL         string
	Source      string
	PublishedAt time.Time
	KeywordTerm string
}
