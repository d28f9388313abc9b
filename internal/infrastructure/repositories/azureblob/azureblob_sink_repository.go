package azureblob

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/devops2blob/internal/domain/repositories"
)

// containerAPI is the part of a container client the sink needs.
type containerAPI interface {
	Exists(ctx context.Context) (bool, error)
	Create(ctx context.Context) error
	Upload(ctx context.Context, blobName string, content []byte) error
}

// SinkRepository binds Azure Blob Storage containers.
type SinkRepository struct {
	open func(containerName string) containerAPI
}

var _ repositories.SinkRepository = (*SinkRepository)(nil)

// NewSinkRepository creates a SinkRepository on top of an authenticated service client.
func NewSinkRepository(client *azblob.Client) *SinkRepository {
	return &SinkRepository{
		open: func(containerName string) containerAPI {
			return &sdkContainer{client: client.ServiceClient().NewContainerClient(containerName)}
		},
	}
}

// Bind checks that the container exists and creates it when it does not.
func (it *SinkRepository) Bind(ctx context.Context, containerName string) (repositories.SinkHandle, error) {
	target := it.open(containerName)

	exists, err := target.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check container %q: %w", containerName, err)
	}
	if !exists {
		logger.Infof("Container %q does not exist, creating it", containerName)
		if createErr := target.Create(ctx); createErr != nil {
			return nil, fmt.Errorf("failed to create container %q: %w", containerName, createErr)
		}
	}

	logger.Debugf("Bound container %q", containerName)
	return &sinkHandle{name: containerName, target: target}, nil
}

type sinkHandle struct {
	name   string
	target containerAPI
}

func (h *sinkHandle) UploadAs(ctx context.Context, blobName string, content []byte) error {
	if err := h.target.Upload(ctx, blobName, content); err != nil {
		return fmt.Errorf("failed to upload %q to container %q: %w", blobName, h.name, err)
	}
	return nil
}

// sdkContainer adapts the SDK container client.
type sdkContainer struct {
	client *container.Client
}

func (c *sdkContainer) Exists(ctx context.Context) (bool, error) {
	_, err := c.client.GetProperties(ctx, nil)
	if err == nil {
		return true, nil
	}
	if bloberror.HasCode(err, bloberror.ContainerNotFound) {
		return false, nil
	}
	return false, err
}

func (c *sdkContainer) Create(ctx context.Context) error {
	_, err := c.client.Create(ctx, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		return err
	}
	return nil
}

// Upload writes a block blob in one request; Put Blob replaces any existing blob.
func (c *sdkContainer) Upload(ctx context.Context, blobName string, content []byte) error {
	_, err := c.client.NewBlockBlobClient(blobName).UploadBuffer(ctx, content, nil)
	return err
}
