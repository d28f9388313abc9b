package repositories

import (
	"context"

	"github.com/rios0rios0/devops2blob/internal/domain/entities"
)

// SourceRepository abstracts the source-control side of a transfer.
// Implementations are built per run and must not cache across runs.
type SourceRepository interface {
	// ListItems returns every item under coords.RootPath at coords.Branch, recursing
	// into all subdirectories.
	ListItems(ctx context.Context, coords entities.RepositoryCoordinates) ([]entities.RepositoryItem, error)

	// GetItemContent returns the raw bytes of the file at path on coords.Branch.
	GetItemContent(ctx context.Context, coords entities.RepositoryCoordinates, path string) ([]byte, error)
}
