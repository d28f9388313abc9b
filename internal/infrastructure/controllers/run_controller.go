package controllers

import (
	"context"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/devops2blob/internal/domain/commands"
	"github.com/rios0rios0/devops2blob/internal/domain/entities"
)

// RunController handles the "run" subcommand (one transfer from the command line).
type RunController struct {
	command commands.Sync
}

// NewRunController creates a new RunController.
func NewRunController(command commands.Sync) *RunController {
	return &RunController{command: command}
}

// GetBind returns the Cobra command metadata for the run controller.
func (it *RunController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "run",
		Short: "Transfer the repository files once",
		Long: `Copy the PDF and CSV files of the configured Azure DevOps repository
into the configured Blob Storage container, then exit.

This is the command intended to be used in a cronjob or locally.
It exits with a non-zero status when the transfer fails.`,
	}
}

// Execute runs one transfer and terminates the process on failure.
func (it *RunController) Execute(cmd *cobra.Command, _ []string) {
	if err := it.run(cmd); err != nil {
		logger.Fatalf("Run failed: %v", err)
	}
}

func (it *RunController) run(cmd *cobra.Command) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	report, err := it.command.Execute(context.Background(), settings)
	if err != nil {
		return err
	}

	logger.Infof("Listed %d items, %d candidates", report.Listed, len(report.Candidates))
	if len(report.Uploaded) > 0 {
		logger.Infof("Uploaded: %s", strings.Join(report.Uploaded, ", "))
	}
	return nil
}
