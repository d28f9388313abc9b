package controllers

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/devops2blob/internal/domain/entities"
)

// loadSettings reads the settings once per process. Without --config the file is
// auto-detected; when none exists, only the environment is used.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			logger.Debugf("No config file found, using the environment only: %v", err)
		} else {
			cfgPath = found
		}
	}
	if cfgPath != "" {
		logger.Infof("Using config file: %s", cfgPath)
	}

	return entities.NewSettings(cfgPath)
}
