package entities

// TransferReport summarises a transfer run. It carries no success signal of its own:
// a run succeeded when no error was returned alongside it.
type TransferReport struct {
	Listed     int
	Candidates []string // source paths, in processing order
	Uploaded   []string // blob names, in upload order
	Bytes      int64
}

// Run outcomes reported to the recorder.
const (
	RunOutcomeSuccess       = "success"
	RunOutcomeBindError     = "bind_error"
	RunOutcomeTransferError = "transfer_error"
)
