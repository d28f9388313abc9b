package controllers

import (
	"errors"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/devops2blob/internal/domain/commands"
	"github.com/rios0rios0/devops2blob/internal/domain/entities"
)

const defaultPort = "8080"

// ServeController handles the "serve" subcommand (Azure Functions custom handler).
type ServeController struct {
	command  commands.Sync
	gatherer prometheus.Gatherer
}

// NewServeController creates a new ServeController.
func NewServeController(command commands.Sync, gatherer prometheus.Gatherer) *ServeController {
	return &ServeController{command: command, gatherer: gatherer}
}

// GetBind returns the Cobra command metadata for the serve controller.
func (it *ServeController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "serve",
		Short: "Serve the TransferFiles function as a custom handler",
		Long: `Start the HTTP server the Azure Functions host forwards requests to.

Every request to /api/TransferFiles copies the PDF and CSV files of the
configured Azure DevOps repository into the configured Blob Storage container.
The server listens on FUNCTIONS_CUSTOMHANDLER_PORT (default 8080) and also
exposes /metrics and /healthz.`,
	}
}

// Execute loads the settings and serves until the process is stopped.
func (it *ServeController) Execute(cmd *cobra.Command, _ []string) {
	settings, err := loadSettings(cmd)
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	addr := ListenAddress()
	//nolint:exhaustruct // Minimal Server initialization with required fields only
	server := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(NewTriggerHandler(it.command, settings), it.gatherer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Infof("Listening on %s", addr)
	if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
		logger.Fatalf("server stopped: %v", serveErr)
	}
}

// ListenAddress returns the address assigned by the Functions host.
func ListenAddress() string {
	port := os.Getenv("FUNCTIONS_CUSTOMHANDLER_PORT")
	if port == "" {
		port = defaultPort
	}
	return net.JoinHostPort("", port)
}
