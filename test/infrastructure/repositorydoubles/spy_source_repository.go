//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations — no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"

	"github.com/rios0rios0/devops2blob/internal/domain/entities"
	"github.com/rios0rios0/devops2blob/internal/domain/repositories"
)

// SpySourceRepository implements repositories.SourceRepository as a configurable spy.
type SpySourceRepository struct {
	// --- ListItems ---
	Items     []entities.RepositoryItem
	ListErr   error
	ListCalls int

	// --- GetItemContent ---
	Contents     map[string][]byte // path -> content
	ContentErrs  map[string]error  // path -> error
	FetchedPaths []string

	// Log, when set, receives "list", "fetch:<path>" entries in call order.
	Log *[]string
}

var _ repositories.SourceRepository = (*SpySourceRepository)(nil)

func (s *SpySourceRepository) ListItems(
	_ context.Context, _ entities.RepositoryCoordinates,
) ([]entities.RepositoryItem, error) {
	s.ListCalls++
	s.record("list")
	return s.Items, s.ListErr
}

func (s *SpySourceRepository) GetItemContent(
	_ context.Context, _ entities.RepositoryCoordinates, path string,
) ([]byte, error) {
	s.FetchedPaths = append(s.FetchedPaths, path)
	s.record("fetch:" + path)
	if err, ok := s.ContentErrs[path]; ok {
		return nil, err
	}
	if content, ok := s.Contents[path]; ok {
		return content, nil
	}
	return []byte(fmt.Sprintf("content of %s", path)), nil
}

func (s *SpySourceRepository) record(entry string) {
	if s.Log != nil {
		*s.Log = append(*s.Log, entry)
	}
}
