package entities

import (
	"path"
	"strings"
)

// ObjectKind is the Git object type of a repository item.
type ObjectKind string

const (
	ObjectKindBlob ObjectKind = "blob"
	ObjectKindTree ObjectKind = "tree"
)

// CandidateExtensions are the suffixes of the files copied to storage. Matching is case-sensitive.
var CandidateExtensions = []string{".pdf", ".csv"} //nolint:gochecknoglobals // fixed allow-list

// RepositoryItem represents a file or folder returned by a repository listing.
type RepositoryItem struct {
	Path string
	Kind ObjectKind
}

// IsCandidate reports whether the item is a blob whose path ends with one of the
// CandidateExtensions, compared byte for byte ("Report.PDF" is not a candidate).
func (i RepositoryItem) IsCandidate() bool {
	if i.Kind != ObjectKindBlob {
		return false
	}
	for _, ext := range CandidateExtensions {
		if strings.HasSuffix(i.Path, ext) {
			return true
		}
	}
	return false
}

// BlobName returns the name the item is stored under: its final path segment.
func (i RepositoryItem) BlobName() string {
	return path.Base(i.Path)
}

// FilterCandidates keeps the candidate items, preserving listing order.
func FilterCandidates(items []RepositoryItem) []RepositoryItem {
	candidates := make([]RepositoryItem, 0, len(items))
	for _, item := range items {
		if item.IsCandidate() {
			candidates = append(candidates, item)
		}
	}
	return candidates
}
