package database

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// ArticleRepositoryImpl handles database operations for articles
type ArticleRepositoryImpl struct {
	db *DB
}

var _ ArticleRepository = (*ArticleRepositoryImpl)(nil)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func NewArticleRepository(db *DB) *ArticleRepositoryImpl {
	return &ArticleRepositoryImpl{db: db}
}

// BulkInsert stores a deduplicated batch in a single statement. Rows whose
// URL already exists are skipped by the database, so concurrent writers from
// different keywords never conflict. The returned count reflects rows
// actually written, which is the authoritative new-article figure.
func (r *ArticleRepositoryImpl) BulkInsert(articles []NewArticle) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	builder := psql.Insert("articles").
		Columns("keyword_id", "title", "url", "source", "published_at")

	for _, a := range articles {
		builder = builder.Values(nullableID(a.KeywordID), a.Title, a.URL, a.Source, a.PublishedAt)
	}

	query, args, err := builder.Suffix("ON CONFLICT (url) DO NOTHING").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert query: %w", err)
	}

	result, err := r.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk insert articles: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted count: %w", err)
	}

	return int(inserted), nil
}

// GetRecent returns articles ingested since the given time, newest publish
// time first, joined with their owning keyword term.
func (r *ArticleRepositoryImpl) GetRecent(since time.Time, limit int) ([]ReportArticle, error) {
	query, args, err := psql.Select(
		"a.title", "a.url", "a.source", "a.published_at", "COALESCE(k.term, '')").
		From("articles a").
		LeftJoin("keywords k ON k.id = a.keyword_id").
		Where(sq.GtOrEq{"a.created_at": since}).
		OrderBy("a.published_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build recent articles query: %w", err)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent articles: %w", err)
	}
	defer rows.Close()

	var articles []ReportArticle
	for rows.Next() {
		var a ReportArticle
		if err := rows.Scan(&a.Title, &a.URL, &a.Source, &a.PublishedAt, &a.KeywordTerm); err != nil {
			return nil, fmt.Errorf("failed to scan article row: %w", err)
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article rows: %w", err)
	}

	return articles, nil
}

func (r *ArticleRepositoryImpl) GetArticleCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM articles").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get article count: %w", err)
	}
	return count, nil
}

// nullableID maps an empty string to NULL for optional UUID columns.
func nullableID(id string) interface{} {
	if id == "" {
		return nil
	}
	return id
}
