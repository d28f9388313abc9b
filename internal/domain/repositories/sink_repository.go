package repositories

import (
	"context"
)

// SinkRepository binds object-storage containers.
type SinkRepository interface {
	// Bind makes sure the container exists, creating it when missing, and returns a
	// handle for uploads into it. Binding an existing container creates nothing.
	Bind(ctx context.Context, containerName string) (SinkHandle, error)
}

// SinkHandle uploads into a single, existing container.
type SinkHandle interface {
	// UploadAs stores content under blobName, replacing any existing blob of that name.
	UploadAs(ctx context.Context, blobName string, content []byte) error
}
