package main

import (
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/devops2blob/internal"
)

func buildRootCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "devops2blob",
		Short: "Copy PDF and CSV files from Azure DevOps to Azure Blob Storage",
		Long: `Copies every PDF and CSV file of one Azure DevOps Git repository branch
into an Azure Blob Storage container, keyed by file name.

Usage modes:
  devops2blob serve   Azure Functions custom handler (HTTP trigger TransferFiles)
  devops2blob run     One transfer from the command line (cronjob or local use)`,
		PersistentPreRun: func(command *cobra.Command, _ []string) {
			if verbose, _ := command.Flags().GetBool("verbose"); verbose {
				logger.SetLevel(logger.DebugLevel)
			}
		},
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect, then environment only)")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Run: func(command *cobra.Command, arguments []string) {
				ctrl.Execute(command, arguments)
			},
		}
		rootCmd.AddCommand(subCmd)
	}
}

func configureLogger(log *logger.Logger) {
	if os.Getenv("LOG_FORMAT") == "json" {
		//nolint:exhaustruct // Minimal JSONFormatter initialization with required fields only
		log.SetFormatter(&logger.JSONFormatter{})
	} else {
		//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
		log.SetFormatter(&logger.TextFormatter{
			ForceColors:   true,
			FullTimestamp: true,
		})
	}
	if os.Getenv("DEBUG") == "true" {
		log.SetLevel(logger.DebugLevel)
	}
}

func main() {
	configureLogger(logger.StandardLogger())

	cobraRoot := buildRootCommand()

	// Add all subcommands
	appContext := injectAppContext()
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'devops2blob': %s", err)
	}
}
