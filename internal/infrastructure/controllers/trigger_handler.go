package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/devops2blob/internal/domain/commands"
	"github.com/rios0rios0/devops2blob/internal/domain/entities"
)

// InvocationHeader carries the Functions host invocation id on forwarded requests.
const InvocationHeader = "X-Azure-Functions-InvocationId"

const (
	successBody        = "Process completed successfully."
	bindFailurePrefix  = "An error occurred while connecting to Blob Storage: "
	transferFailPrefix = "An error occurred while transferring files: "
)

// TriggerHandler runs one sync per HTTP request. Method, query and body are ignored.
type TriggerHandler struct {
	command  commands.Sync
	settings *entities.Settings
}

// NewTriggerHandler creates a TriggerHandler bound to the process settings.
func NewTriggerHandler(command commands.Sync, settings *entities.Settings) *TriggerHandler {
	return &TriggerHandler{command: command, settings: settings}
}

func (it *TriggerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	invocation := r.Header.Get(InvocationHeader)
	if invocation == "" {
		invocation = uuid.NewString()
	}
	entry := logger.WithField("invocation", invocation)
	entry.Info("Transfer function processed a request")

	// the run continues when the caller disconnects
	ctx := context.WithoutCancel(r.Context())
	report, err := it.command.Execute(ctx, it.settings)
	if err != nil {
		entry.WithError(err).Error("Transfer function failed")
		writeText(w, http.StatusInternalServerError, failureBody(err))
		return
	}

	entry.WithFields(logger.Fields{
		"listed":   report.Listed,
		"uploaded": len(report.Uploaded),
		"bytes":    report.Bytes,
	}).Info("Transfer function completed")
	writeText(w, http.StatusOK, successBody)
}

func failureBody(err error) string {
	var syncErr *entities.SyncError
	if errors.As(err, &syncErr) {
		if syncErr.Phase == entities.SyncPhaseBind {
			return bindFailurePrefix + syncErr.Err.Error()
		}
		return transferFailPrefix + syncErr.Err.Error()
	}
	return transferFailPrefix + err.Error()
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
