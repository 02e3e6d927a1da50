package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"primehavenwebserver/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SiteContentStore struct {
	pool *pgxpool.Pool
}

func NewSiteContentStore(pool *pgxpool.Pool) *SiteContentStore {
	return &SiteContentStore{pool: pool}
}

func (s *SiteContentStore) GetContent(ctx context.Context, key string) (domain.SiteContent, error) {
	const q = `
		SELECT key, value, updated_at, updated_by
		FROM site_content
		WHERE key = $1
	`

	var (
		c         domain.SiteContent
		updatedBy pgtype.UUID
	)
	err := s.pool.QueryRow(ctx, q, key).Scan(&c.Key, &c.Value, &c.UpdatedAt, &updatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.SiteContent{}, domain.ErrNotFound
		}
		return domain.SiteContent{}, fmt.Errorf("get site content: %w", err)
	}

	c.UpdatedBy = uuidOrEmpty(updatedBy)
	return c, nil
}

// ListContent returns all site copy as a key/value map, the shape the
// public pages consume in a single request.
func (s *SiteContentStore) ListContent(ctx context.Context) (map[string]string, error) {
	const q = `SELECT key, value FROM site_content`

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list site content: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan site content: %w", err)
		}
		out[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list site content: %w", err)
	}
	return out, nil
}

// SetContent upserts a site copy entry, attributing the write to the
// acting admin.
func (s *SiteContentStore) SetContent(ctx context.Context, key, value, updatedBy string, when time.Time) (domain.SiteContent, error) {
	const q = `
		INSERT INTO site_content (key, value, updated_at, updated_by)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at, updated_by = EXCLUDED.updated_by
		RETURNING key, value, updated_at, updated_by
	`

	var (
		c         domain.SiteContent
		updatedUU pgtype.UUID
	)
	err := s.pool.QueryRow(ctx, q, key, value, when, updatedBy).Scan(&c.Key, &c.Value, &c.UpdatedAt, &updatedUU)
	if err != nil {
		return domain.SiteContent{}, fmt.Errorf("set site content: %w", err)
	}

	c.UpdatedBy = uuidOrEmpty(updatedUU)
	return c, nil
}
