package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/awalczak/cardscan"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ cardscan.ItemService = (*ItemService)(nil)

// ItemService implements cardscan.ItemService using SQLite.
type ItemService struct {
	db *DB
}

// NewItemService creates a new ItemService.
func NewItemService(db *DB) *ItemService {
	return &ItemService{db: db}
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}

// SaveResult stores a result as a new run and returns the run ID.
func (s *ItemService) SaveResult(ctx context.Context, result *cardscan.Result) (string, error) {
	if result == nil || result.Site == "" {
		return "", cardscan.Errorf(cardscan.EINVALID, "result requires a site")
	}

	runID := uuid.New().String()
	createdAt := time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, site, item_count, created_at)
		VALUES (?, ?, ?, ?)
	`, runID, result.Site, len(result.Items), createdAt.Format(time.RFC3339))
	if err != nil {
		return "", err
	}

	for i, item := range result.Items {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO items (id, run_id, title, content, content_type, content_hash, source_url, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), runID, item.Title, item.Content, string(item.ContentType),
			hashContent(item.Content), item.SourceURL, i)
		if err != nil {
			return "", err
		}
	}

	return runID, nil
}

// FindResultByRunID reassembles the result saved under a run.
func (s *ItemService) FindResultByRunID(ctx context.Context, runID string) (*cardscan.Result, error) {
	var site string
	err := s.db.QueryRowContext(ctx, `
		SELECT site FROM runs WHERE id = ?
	`, runID).Scan(&site)
	if err == sql.ErrNoRows {
		return nil, cardscan.Errorf(cardscan.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT title, content, content_type, source_url
		FROM items
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := &cardscan.Result{Site: site}
	for rows.Next() {
		var item cardscan.StandardItem
		var contentType string
		if err := rows.Scan(&item.Title, &item.Content, &contentType, &item.SourceURL); err != nil {
			return nil, err
		}
		item.ContentType = cardscan.ContentType(contentType)
		result.Items = append(result.Items, &item)
	}

	return result, rows.Err()
}

// FindRuns lists saved runs, most recent first.
func (s *ItemService) FindRuns(ctx context.Context) ([]*cardscan.ScrapeRun, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, site, item_count, created_at
		FROM runs
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*cardscan.ScrapeRun
	for rows.Next() {
		var run cardscan.ScrapeRun
		var createdAt string
		if err := rows.Scan(&run.ID, &run.Site, &run.ItemCount, &createdAt); err != nil {
			return nil, err
		}
		var parseErr error
		run.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAt)
		if parseErr != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", parseErr)
		}
		runs = append(runs, &run)
	}

	return runs, rows.Err()
}
