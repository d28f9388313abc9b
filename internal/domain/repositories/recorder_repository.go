package repositories

import "time"

// RecorderRepository receives transfer measurements.
type RecorderRepository interface {
	FileUploaded(blobName string, size int)
	RunFinished(outcome string, elapsed time.Duration)
}
