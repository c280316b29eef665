package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/innergraph/internal/core/domain"
	"github.com/custodia-labs/innergraph/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.BookmarkStore = (*bookmarkStore)(nil)

type bookmarkStore struct {
	store *Store
}

// Save stores or updates a bookmark.
func (b *bookmarkStore) Save(ctx context.Context, bm domain.Bookmark) error {
	if err := bm.Validate(); err != nil {
		return err
	}
	params, err := json.Marshal(bm.Request.Params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}
	if bm.Request.Params == nil {
		params = []byte("{}")
	}

	_, err = b.store.db.ExecContext(ctx, `
		INSERT INTO bookmarks (id, name, endpoint, client, params, token, pages, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			endpoint = excluded.endpoint,
			client = excluded.client,
			params = excluded.params,
			token = excluded.token,
			pages = excluded.pages,
			updated_at = excluded.updated_at
	`,
		bm.ID,
		bm.Name,
		bm.Request.Endpoint,
		bm.Request.Client,
		string(params),
		bm.Token,
		bm.Pages,
		bm.CreatedAt.UTC().Format(time.RFC3339Nano),
		bm.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save bookmark %q: %w", bm.Name, err)
	}
	return nil
}

// Get retrieves a bookmark by name.
func (b *bookmarkStore) Get(ctx context.Context, name string) (*domain.Bookmark, error) {
	row := b.store.db.QueryRowContext(ctx, `
		SELECT id, name, endpoint, client, params, token, pages, created_at, updated_at
		FROM bookmarks WHERE name = ?
	`, name)

	bm, err := scanBookmark(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bookmark %q: %w", name, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get bookmark %q: %w", name, err)
	}
	return bm, nil
}

// Delete removes a bookmark.
func (b *bookmarkStore) Delete(ctx context.Context, name string) error {
	if _, err := b.store.db.ExecContext(ctx, "DELETE FROM bookmarks WHERE name = ?", name); err != nil {
		return fmt.Errorf("delete bookmark %q: %w", name, err)
	}
	return nil
}

// List returns all bookmarks ordered by name.
func (b *bookmarkStore) List(ctx context.Context) ([]domain.Bookmark, error) {
	rows, err := b.store.db.QueryContext(ctx, `
		SELECT id, name, endpoint, client, params, token, pages, created_at, updated_at
		FROM bookmarks ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	defer rows.Close()

	var out []domain.Bookmark
	for rows.Next() {
		bm, err := scanBookmark(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		out = append(out, *bm)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBookmark(s scanner) (*domain.Bookmark, error) {
	var (
		bm               domain.Bookmark
		params           string
		created, updated string
	)
	err := s.Scan(
		&bm.ID,
		&bm.Name,
		&bm.Request.Endpoint,
		&bm.Request.Client,
		&params,
		&bm.Token,
		&bm.Pages,
		&created,
		&updated,
	)
	if err != nil {
		return nil, err
	}

	if params != "" && params != "{}" {
		if err := json.Unmarshal([]byte(params), &bm.Request.Params); err != nil {
			return nil, fmt.Errorf("decode params: %w", err)
		}
	}
	if bm.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if bm.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &bm, nil
}
