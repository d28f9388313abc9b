//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/devops2blob/internal/domain/repositories"
)

// SpySinkRepository implements repositories.SinkRepository as a configurable spy.
type SpySinkRepository struct {
	Handle          *SpySinkHandle // returned by Bind; a fresh one is created when nil
	BindErr         error
	BoundContainers []string
}

var _ repositories.SinkRepository = (*SpySinkRepository)(nil)

func (s *SpySinkRepository) Bind(_ context.Context, containerName string) (repositories.SinkHandle, error) {
	s.BoundContainers = append(s.BoundContainers, containerName)
	if s.BindErr != nil {
		return nil, s.BindErr
	}
	if s.Handle == nil {
		s.Handle = &SpySinkHandle{}
	}
	return s.Handle, nil
}

// SpySinkHandle implements repositories.SinkHandle and keeps uploaded blobs in memory.
type SpySinkHandle struct {
	Blobs      map[string][]byte // final container contents
	Uploads    []string          // blob names in upload order
	UploadErrs map[string]error  // blob name -> error

	// Log, when set, receives "upload:<name>" entries in call order.
	Log *[]string
}

var _ repositories.SinkHandle = (*SpySinkHandle)(nil)

func (h *SpySinkHandle) UploadAs(_ context.Context, blobName string, content []byte) error {
	if h.Log != nil {
		*h.Log = append(*h.Log, "upload:"+blobName)
	}
	if err, ok := h.UploadErrs[blobName]; ok {
		return err
	}
	if h.Blobs == nil {
		h.Blobs = map[string][]byte{}
	}
	h.Blobs[blobName] = content
	h.Uploads = append(h.Uploads, blobName)
	return nil
}
