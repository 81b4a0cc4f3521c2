package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// RenderRepository handles database operations for cached renders
type RenderRepository struct {
	db  *DB
	now func() time.Time
}

// NewRenderRepository creates a new render repository
func NewRenderRepository(db *DB) *RenderRepository {
	return &RenderRepository{db: db, now: time.Now}
}

// GetRender returns the cached render for key, or nil when it is missing or
// expired
func (r *RenderRepository) GetRender(key string) (*Render, error) {
	var (
		render     Render
		scriptURLs string
		createdAt  int64
		expiresAt  int64
	)

	err := r.db.QueryRow(`
		SELECT cache_key, html, script_urls, created_at, expires_at
		FROM renders
		WHERE cache_key = ? AND expires_at > ?
	`, key, r.now().Unix()).Scan(&render.Key, &render.HTML, &scriptURLs, &createdAt, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get render: %w", err)
	}

	if err := json.Unmarshal([]byte(scriptURLs), &render.ScriptURLs); err != nil {
		return nil, fmt.Errorf("failed to decode script URLs: %w", err)
	}
	render.CreatedAt = time.Unix(createdAt, 0)
	render.ExpiresAt = time.Unix(expiresAt, 0)

	return &render, nil
}

// SaveRender inserts or replaces a cached render
func (r *RenderRepository) SaveRender(render Render) error {
	scriptURLs := render.ScriptURLs
	if scriptURLs == nil {
		scriptURLs = []string{}
	}
	encoded, err := json.Marshal(scriptURLs)
	if err != nil {
		return fmt.Errorf("failed to encode script URLs: %w", err)
	}

	createdAt := render.CreatedAt
	if createdAt.IsZero() {
		createdAt = r.now()
	}

	_, err = r.db.Exec(`
		INSERT INTO renders (cache_key, html, script_urls, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (cache_key) DO UPDATE SET
			html = excluded.html,
			script_urls = excluded.script_urls,
			created_at = excluded.created_at,
			expires_at = excluded.expires_at
	`, render.Key, render.HTML, string(encoded), createdAt.Unix(), render.ExpiresAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to save render: %w", err)
	}

	return nil
}

// DeleteExpired removes renders that expired at or before now
func (r *RenderRepository) DeleteExpired(now time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM renders WHERE expires_at <= ?`, now.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired renders: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted renders: %w", err)
	}

	return deleted, nil
}

// GetRenderCount returns the number of cached renders, expired or not
func (r *RenderRepository) GetRenderCount() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM renders`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count renders: %w", err)
	}
	return count, nil
}
