package mock

import (
	"context"

	"github.com/mgrzeszczak/unwall"
)

var _ unwall.ArchiveService = (*ArchiveService)(nil)

// ArchiveService is a mock implementation of unwall.ArchiveService.
type ArchiveService struct {
	SaveResultFn     func(ctx context.Context, result *unwall.SavedResult) error
	FindResultByIDFn func(ctx context.Context, id string) (*unwall.SavedResult, error)
	FindResultsFn    func(ctx context.Context, filter unwall.ArchiveFilter) ([]*unwall.SavedResult, error)
	DeleteResultFn   func(ctx context.Context, id string) error
}

func (s *ArchiveService) SaveResult(ctx context.Context, result *unwall.SavedResult) error {
	return s.SaveResultFn(ctx, result)
}

func (s *ArchiveService) FindResultByID(ctx context.Context, id string) (*unwall.SavedResult, error) {
	return s.FindResultByIDFn(ctx, id)
}

func (s *ArchiveService) FindResults(ctx context.Context, filter unwall.ArchiveFilter) ([]*unwall.SavedResult, error) {
	return s.FindResultsFn(ctx, filter)
}

func (s *ArchiveService) DeleteResult(ctx context.Context, id string) error {
	return s.DeleteResultFn(ctx, id)
}
