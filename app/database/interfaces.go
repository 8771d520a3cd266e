package database

import (
	"time"
)

type KeywordRepository interface {
	ListActive() ([]Keyword, error)
	List() ([]Keyword, error)
	Create(term, note string) (*Keyword, error)
	SetActive(id string, active bool) error
	UpsertSeed(term string, active bool, note string) error
	GetKeywordCount() (int, error)
}

type ArticleRepository interface {
	// BulkInsert inserts the batch in one statement; rows violating the URL
	// uniqueness constraint are skipped. Returns the number of rows actually
	// inserted.
	BulkInsert(articles []NewArticle) (int, error)
	GetRecent(since time.Time, limit int) ([]ReportArticle, error)
	GetArticleCount() (int, error)
}
