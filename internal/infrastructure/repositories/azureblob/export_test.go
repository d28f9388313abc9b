package azureblob

// ContainerAPI exports containerAPI for testing.
type ContainerAPI = containerAPI

// NewSinkRepositoryWith builds a SinkRepository over a custom container opener for testing.
func NewSinkRepositoryWith(open func(containerName string) ContainerAPI) *SinkRepository {
	return &SinkRepository{open: open}
}
