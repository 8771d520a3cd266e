package database

import (
	"fmt"
)

// KeywordRepositoryImpl handles database operations for keywords
type KeywordRepositoryImpl struct {
	db *DB
}

var _ KeywordRepository = (*KeywordRepositoryImpl)(nil)

func NewKeywordRepository(db *DB) *KeywordRepositoryImpl {
	return &KeywordRepositoryImpl{db: db}
}

// ListActive returns active keywords ordered by creation time. This is the
// read path the crawl run fans out over.
func (r *KeywordRepositoryImpl) ListActive() ([]Keyword, error) {
	return r.list("SELECT id, term, active, note, created_at, updated_at FROM keywords WHERE active = TRUE ORDER BY created_at")
}

func (r *KeywordRepositoryImpl) List() ([]Keyword, error) {
	return r.list("SELECT id, term, active, note, created_at, updated_at FROM keywords ORDER BY created_at")
}

func (r *KeywordRepositoryImpl) list(query string) ([]Keyword, error) {
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list keywords: %w", err)
	}
	defer rows.Close()

	var keywords []Keyword
	for rows.Next() {
		var k Keyword
		if err := rows.Scan(&k.ID, &k.Term, &k.Active, &k.Note, &k.CreatedAt, &k.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan keyword row: %w", err)
		}
		keywords = append(keywords, k)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating keyword rows: %w", err)
	}

	return keywords, nil
}

func (r *KeywordRepositoryImpl) Create(term, note string) (*Keyword, error) {
	var k Keyword
	err := r.db.QueryRow(`
		INSERT INTO keywords (term, note)
		VALUES ($1, $2)
		RETURNING id, term, active, note, created_at, updated_at
	`, term, note).Scan(&k.ID, &k.Term, &k.Active, &k.Note, &k.CreatedAt, &k.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTerm, term)
		}
		return nil, fmt.Errorf("failed to create keyword: %w", err)
	}

	return &k, nil
}

func (r *KeywordRepositoryImpl) SetActive(id string, active bool) error {
	result, err := r.db.Exec(`
		UPDATE keywords
		SET active = $2, updated_at = NOW()
		WHERE id = $1
	`, id, active)
	if err != nil {
		return fmt.Errorf("failed to update keyword: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return nil
}

// UpsertSeed registers a seed keyword, updating the active flag and note when
// the term already exists.
func (r *KeywordRepositoryImpl) UpsertSeed(term string, active bool, note string) error {
	_, err := r.db.Exec(`
		INSERT INTO keywords (term, active, note)
		VALUES ($1, $2, $3)
		ON CONFLICT (term) DO UPDATE SET
			active = EXCLUDED.active,
			note = EXCLUDED.note,
			updated_at = NOW()
	`, term, active, note)
	if err != nil {
		return fmt.Errorf("failed to upsert keyword seed: %w", err)
	}

	return nil
}

func (r *KeywordRepositoryImpl) GetKeywordCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM keywords").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get keyword count: %w", err)
	}
	return count, nil
}
