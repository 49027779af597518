package unwall

import (
	"context"
	"time"
)

// SavedResult is an archived extraction result.
type SavedResult struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	SourceURL   string    `json:"sourceUrl"`
	ContentHash string    `json:"contentHash"`
	Record      []byte    `json:"record"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the saved result contains invalid fields.
func (r *SavedResult) Validate() error {
	if r.Kind == "" {
		return Errorf(EINVALID, "result kind required")
	}
	if r.SourceURL == "" {
		return Errorf(EINVALID, "result source URL required")
	}
	if len(r.Record) == 0 {
		return Errorf(EINVALID, "result record required")
	}
	return nil
}

// ArchiveFilter represents a filter for FindResults.
type ArchiveFilter struct {
	ID        *string `json:"id"`
	Kind      *Kind   `json:"kind"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ArchiveService persists extraction results.
type ArchiveService interface {
	// SaveResult archives a new result.
	SaveResult(ctx context.Context, result *SavedResult) error

	// FindResultByID retrieves an archived result by ID.
	// Returns ENOTFOUND if the result does not exist.
	FindResultByID(ctx context.Context, id string) (*SavedResult, error)

	// FindResults retrieves archived results matching the filter, newest
	// first.
	FindResults(ctx context.Context, filter ArchiveFilter) ([]*SavedResult, error)

	// DeleteResult permanently removes an archived result.
	// Returns ENOTFOUND if the result does not exist.
	DeleteResult(ctx context.Context, id string) error
}
