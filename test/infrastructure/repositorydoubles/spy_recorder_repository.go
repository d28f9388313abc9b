//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"time"

	"github.com/rios0rios0/devops2blob/internal/domain/repositories"
)

// SpyRecorderRepository implements repositories.RecorderRepository as a spy.
type SpyRecorderRepository struct {
	Files    []string
	Bytes    int
	Outcomes []string
}

var _ repositories.RecorderRepository = (*SpyRecorderRepository)(nil)

func (r *SpyRecorderRepository) FileUploaded(blobName string, size int) {
	r.Files = append(r.Files, blobName)
	r.Bytes += size
}

func (r *SpyRecorderRepository) RunFinished(outcome string, _ time.Duration) {
	r.Outcomes = append(r.Outcomes, outcome)
}

// DummyRecorderRepository is a no-op implementation of repositories.RecorderRepository.
type DummyRecorderRepository struct{}

var _ repositories.RecorderRepository = (*DummyRecorderRepository)(nil)

func (d *DummyRecorderRepository) FileUploaded(_ string, _ int)            {}
func (d *DummyRecorderRepository) RunFinished(_ string, _ time.Duration) {}
