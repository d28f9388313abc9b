//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/devops2blob/internal/domain/commands"
	"github.com/rios0rios0/devops2blob/internal/domain/entities"
)

// StubSyncCommand is a stub implementation of commands.Sync.
type StubSyncCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Report           entities.TransferReport
	LastSettings     *entities.Settings
	ContextCancelled bool // whether ctx was already done when Execute ran
}

var _ commands.Sync = (*StubSyncCommand)(nil)

func (s *StubSyncCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
) (entities.TransferReport, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.ContextCancelled = ctx.Err() != nil
	return s.Report, s.ExecuteErr
}
