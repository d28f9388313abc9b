package devops

import (
	"context"

	"github.com/rios0rios0/devops2blob/internal/azuredevops"
	"github.com/rios0rios0/devops2blob/internal/domain/entities"
	"github.com/rios0rios0/devops2blob/internal/domain/repositories"
)

// SourceRepository reads repository items through the Azure DevOps REST API.
type SourceRepository struct {
	client *azuredevops.Client
}

var _ repositories.SourceRepository = (*SourceRepository)(nil)

// NewSourceRepository creates a SourceRepository on top of an authenticated client.
func NewSourceRepository(client *azuredevops.Client) *SourceRepository {
	return &SourceRepository{client: client}
}

func (it *SourceRepository) ListItems(
	ctx context.Context,
	coords entities.RepositoryCoordinates,
) ([]entities.RepositoryItem, error) {
	raw, err := it.client.GetItems(ctx, coords.Project, coords.Repository, azuredevops.ItemsQuery{
		ScopePath:      coords.ScopePath(),
		Branch:         coords.Branch,
		RecursionLevel: azuredevops.RecursionFull,
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.RepositoryItem, 0, len(raw))
	for _, item := range raw {
		items = append(items, entities.RepositoryItem{
			Path: item.Path,
			Kind: entities.ObjectKind(item.GitObjectType),
		})
	}
	return items, nil
}

func (it *SourceRepository) GetItemContent(
	ctx context.Context,
	coords entities.RepositoryCoordinates,
	path string,
) ([]byte, error) {
	return it.client.GetItemContent(ctx, coords.Project, coords.Repository, path, coords.Branch)
}
