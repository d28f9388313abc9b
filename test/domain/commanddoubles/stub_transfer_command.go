//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/devops2blob/internal/domain/commands"
	"github.com/rios0rios0/devops2blob/internal/domain/entities"
	"github.com/rios0rios0/devops2blob/internal/domain/repositories"
)

// StubTransferCommand is a stub implementation of commands.Transfer.
type StubTransferCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Report           entities.TransferReport
	LastCoords       entities.RepositoryCoordinates
	LastSink         repositories.SinkHandle
}

var _ commands.Transfer = (*StubTransferCommand)(nil)

func (s *StubTransferCommand) Execute(
	_ context.Context,
	coords entities.RepositoryCoordinates,
	_ repositories.SourceRepository,
	sink repositories.SinkHandle,
) (entities.TransferReport, error) {
	s.ExecuteCallCount++
	s.LastCoords = coords
	s.LastSink = sink
	return s.Report, s.ExecuteErr
}
