//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/devops2blob/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// RepositoryItemBuilder helps create repository items with a fluent interface.
type RepositoryItemBuilder struct {
	*testkit.BaseBuilder
	path string
	kind entities.ObjectKind
}

// NewRepositoryItemBuilder creates a builder for a blob at /data/file.csv.
func NewRepositoryItemBuilder() *RepositoryItemBuilder {
	return &RepositoryItemBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		path:        "/data/file.csv",
		kind:        entities.ObjectKindBlob,
	}
}

// WithPath sets the item path.
func (b *RepositoryItemBuilder) WithPath(path string) *RepositoryItemBuilder {
	b.path = path
	return b
}

// AsTree marks the item as a folder.
func (b *RepositoryItemBuilder) AsTree() *RepositoryItemBuilder {
	b.kind = entities.ObjectKindTree
	return b
}

// Build creates the item (satisfies testkit.Builder interface).
func (b *RepositoryItemBuilder) Build() interface{} {
	return b.BuildItem()
}

// BuildItem creates the item with a concrete return type.
func (b *RepositoryItemBuilder) BuildItem() entities.RepositoryItem {
	return entities.RepositoryItem{Path: b.path, Kind: b.kind}
}

// Blobs is a shorthand for a listing made only of blobs.
func Blobs(paths ...string) []entities.RepositoryItem {
	items := make([]entities.RepositoryItem, 0, len(paths))
	for _, path := range paths {
		items = append(items, NewRepositoryItemBuilder().WithPath(path).BuildItem())
	}
	return items
}
