package controllers

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/poetryupdater/internal/domain/entities"
)

// loadSettings reads --config, falling back to an auto-detected config file
// and then to the built-in defaults.
func loadSettings(cmd *cobra.Command, loader entities.SettingsLoader) (*entities.Settings, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			logger.Debugf("No config file found, using defaults: %v", err)
			return loader("")
		}
		cfgPath = found
	}

	logger.Infof("Using config file: %s", cfgPath)
	return loader(cfgPath)
}
