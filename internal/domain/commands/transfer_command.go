package commands

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/devops2blob/internal/domain/entities"
	"github.com/rios0rios0/devops2blob/internal/domain/repositories"
)

// Transfer is the interface for the transfer pipeline.
type Transfer interface {
	Execute(
		ctx context.Context,
		coords entities.RepositoryCoordinates,
		source repositories.SourceRepository,
		sink repositories.SinkHandle,
	) (entities.TransferReport, error)
}

// TransferCommand copies candidate files from a repository into a bound container:
// list -> filter -> (fetch -> upload) per candidate, strictly in order.
// The first failure aborts the run; uploads already done are left in place.
type TransferCommand struct {
	recorder repositories.RecorderRepository
}

// NewTransferCommand creates a new TransferCommand.
func NewTransferCommand(recorder repositories.RecorderRepository) *TransferCommand {
	return &TransferCommand{recorder: recorder}
}

// Execute runs the pipeline once.
func (it *TransferCommand) Execute(
	ctx context.Context,
	coords entities.RepositoryCoordinates,
	source repositories.SourceRepository,
	sink repositories.SinkHandle,
) (entities.TransferReport, error) {
	var report entities.TransferReport

	logger.Debugf(
		"Listing %s/%s at %q under %q",
		coords.Project, coords.Repository, coords.Branch, coords.ScopePath(),
	)

	items, err := source.ListItems(ctx, coords)
	if err != nil {
		logger.Errorf("Failed to list items of %s/%s: %v", coords.Project, coords.Repository, err)
		return report, &entities.TransferError{Op: entities.TransferOpList, Err: err}
	}
	report.Listed = len(items)

	candidates := entities.FilterCandidates(items)
	if len(candidates) == 0 {
		logger.Info("No PDF or CSV files found in the repository.")
		return report, nil
	}

	logger.Infof("Found %d candidate files out of %d items", len(candidates), len(items))

	for _, candidate := range candidates {
		report.Candidates = append(report.Candidates, candidate.Path)

		content, fetchErr := source.GetItemContent(ctx, coords, candidate.Path)
		if fetchErr != nil {
			logger.Errorf("Failed to fetch '%s': %v", candidate.Path, fetchErr)
			return report, &entities.TransferError{
				Op:   entities.TransferOpFetch,
				Path: candidate.Path,
				Err:  fetchErr,
			}
		}

		blobName := candidate.BlobName()
		logger.Infof("Uploading '%s'...", blobName)
		if uploadErr := sink.UploadAs(ctx, blobName, content); uploadErr != nil {
			logger.Errorf("Failed to upload '%s': %v", blobName, uploadErr)
			return report, &entities.TransferError{
				Op:   entities.TransferOpUpload,
				Path: candidate.Path,
				Err:  uploadErr,
			}
		}
		logger.Infof("Successfully uploaded '%s' to container.", blobName)

		report.Uploaded = append(report.Uploaded, blobName)
		report.Bytes += int64(len(content))
		it.recorder.FileUploaded(blobName, len(content))
	}

	return report, nil
}
