package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/mgrzeszczak/unwall"
)

// Compile-time interface verification.
var _ unwall.ArchiveService = (*ArchiveService)(nil)

// ArchiveService implements unwall.ArchiveService using SQLite.
type ArchiveService struct {
	db *DB
}

// NewArchiveService creates a new ArchiveService.
func NewArchiveService(db *DB) *ArchiveService {
	return &ArchiveService{db: db}
}

// hashRecord computes xxHash of the record and returns a hex string.
func hashRecord(record []byte) string {
	h := xxhash.Sum64(record)
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

// SaveResult archives a new result, assigning its ID, content hash and
// fetch time.
func (s *ArchiveService) SaveResult(ctx context.Context, result *unwall.SavedResult) error {
	if err := result.Validate(); err != nil {
		return err
	}

	result.ID = uuid.New().String()
	result.FetchedAt = time.Now().UTC()
	result.ContentHash = hashRecord(result.Record)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO results (id, kind, source_url, content_hash, record, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, result.ID, string(result.Kind), result.SourceURL, result.ContentHash,
		result.Record, result.FetchedAt.Format(time.RFC3339))

	return err
}

// FindResultByID retrieves an archived result by ID.
func (s *ArchiveService) FindResultByID(ctx context.Context, id string) (*unwall.SavedResult, error) {
	var r unwall.SavedResult
	var kind, fetchedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, kind, source_url, content_hash, record, fetched_at
		FROM results
		WHERE id = ?
	`, id).Scan(&r.ID, &kind, &r.SourceURL, &r.ContentHash, &r.Record, &fetchedAt)

	if err == sql.ErrNoRows {
		return nil, unwall.Errorf(unwall.ENOTFOUND, "result not found")
	}
	if err != nil {
		return nil, err
	}

	r.Kind = unwall.Kind(kind)
	r.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fetched_at: %w", err)
	}

	return &r, nil
}

// FindResults retrieves archived results matching the filter, newest first.
func (s *ArchiveService) FindResults(ctx context.Context, filter unwall.ArchiveFilter) ([]*unwall.SavedResult, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, kind, source_url, content_hash, record, fetched_at FROM results WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Kind != nil {
		query.WriteString(" AND kind = ?")
		args = append(args, string(*filter.Kind))
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY fetched_at DESC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	} else if filter.Offset > 0 {
		// SQLite requires a LIMIT clause before OFFSET; -1 means unbounded.
		query.WriteString(" LIMIT -1")
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*unwall.SavedResult
	for rows.Next() {
		var r unwall.SavedResult
		var kind, fetchedAt string

		if err := rows.Scan(&r.ID, &kind, &r.SourceURL, &r.ContentHash, &r.Record, &fetchedAt); err != nil {
			return nil, err
		}

		r.Kind = unwall.Kind(kind)
		r.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse fetched_at: %w", err)
		}

		results = append(results, &r)
	}

	return results, rows.Err()
}

// DeleteResult permanently removes an archived result.
func (s *ArchiveService) DeleteResult(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM results WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return unwall.Errorf(unwall.ENOTFOUND, "result not found")
	}

	return nil
}
