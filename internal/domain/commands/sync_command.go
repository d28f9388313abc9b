package commands

import (
	"context"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/devops2blob/internal/domain/entities"
	"github.com/rios0rios0/devops2blob/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/devops2blob/internal/infrastructure/repositories"
)

// Sync is the interface for one trigger invocation.
type Sync interface {
	Execute(ctx context.Context, settings *entities.Settings) (entities.TransferReport, error)
}

// SyncCommand orchestrates one invocation:
// connect -> bind the container -> run the transfer pipeline.
// Errors are returned as *entities.SyncError tagged with the failing phase.
type SyncCommand struct {
	connectors *infraRepos.ConnectorRegistry
	transfer   Transfer
	recorder   repositories.RecorderRepository
}

// NewSyncCommand creates a new SyncCommand.
func NewSyncCommand(
	connectors *infraRepos.ConnectorRegistry,
	transfer Transfer,
	recorder repositories.RecorderRepository,
) *SyncCommand {
	return &SyncCommand{
		connectors: connectors,
		transfer:   transfer,
		recorder:   recorder,
	}
}

// Execute binds the sink, then transfers. A binding failure means no listing happens.
func (it *SyncCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
) (entities.TransferReport, error) {
	started := time.Now()

	source, sink, err := it.connectors.Connect(settings)
	if err != nil {
		return entities.TransferReport{}, it.fail(entities.SyncPhaseBind, err, started)
	}

	logger.Infof("Connecting to Azure Blob Storage container %q...", settings.ContainerName)
	handle, err := sink.Bind(ctx, settings.ContainerName)
	if err != nil {
		logger.Errorf("An error occurred while connecting to Blob Storage: %v", err)
		return entities.TransferReport{}, it.fail(entities.SyncPhaseBind, err, started)
	}

	logger.Info("Starting to transfer files...")
	report, err := it.transfer.Execute(ctx, settings.Coordinates(), source, handle)
	if err != nil {
		logger.Errorf("An error occurred while transferring files: %v", err)
		return report, it.fail(entities.SyncPhaseTransfer, err, started)
	}

	it.recorder.RunFinished(entities.RunOutcomeSuccess, time.Since(started))
	logger.Infof(
		"All files have been transferred successfully: %d of %d items uploaded (%d bytes)",
		len(report.Uploaded), report.Listed, report.Bytes,
	)
	return report, nil
}

func (it *SyncCommand) fail(phase entities.SyncPhase, err error, started time.Time) error {
	outcome := entities.RunOutcomeTransferError
	if phase == entities.SyncPhaseBind {
		outcome = entities.RunOutcomeBindError
	}
	it.recorder.RunFinished(outcome, time.Since(started))
	return &entities.SyncError{Phase: phase, Err: err}
}
