package entities

import (
	"fmt"
)

// TransferOp names the pipeline step that failed.
type TransferOp string

const (
	TransferOpList   TransferOp = "list"
	TransferOpFetch  TransferOp = "fetch"
	TransferOpUpload TransferOp = "upload"
)

// TransferError is returned for any failure inside the transfer pipeline.
type TransferError struct {
	Op   TransferOp
	Path string // source path, empty for listing failures
	Err  error
}

func (e *TransferError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %q failed: %v", e.Op, e.Path, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }

// SyncPhase is the boundary phase a run failed in.
type SyncPhase string

const (
	SyncPhaseBind     SyncPhase = "bind"
	SyncPhaseTransfer SyncPhase = "transfer"
)

// SyncError wraps a failure with the phase it happened in. Only two phases are
// distinguished at the trigger boundary.
type SyncError struct {
	Phase SyncPhase
	Err   error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("%s phase: %v", e.Phase, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }
