package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Settings is the configuration of a run, read from an optional YAML file.
type Settings struct {
	Paths          []string               `yaml:"paths"`
	ExcludeDirs    []string               `yaml:"exclude_dirs"`
	PackageManager PackageManagerSettings `yaml:"package_manager"`
	SkipMajor      bool                   `yaml:"skip_major"`
	RequireClean   bool                   `yaml:"require_clean"`
	Changelog      bool                   `yaml:"changelog"`
}

// PackageManagerSettings describes how to invoke the package manager binary.
type PackageManagerSettings struct {
	Name         string   `yaml:"name"`
	Binary       string   `yaml:"binary"`
	LockArgs     []string `yaml:"lock_args"`
	OutdatedArgs []string `yaml:"outdated_args"`
	LockFile     string   `yaml:"lock_file"`
}

// SettingsLoader loads settings from a config file path.
type SettingsLoader func(path string) (*Settings, error)

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() *Settings {
	return &Settings{
		Paths:       []string{"."},
		ExcludeDirs: []string{".git", ".venv", "venv", ".tox", "node_modules", "__pycache__"},
		PackageManager: PackageManagerSettings{
			Name:         "poetry",
			Binary:       "poetry",
			LockArgs:     []string{"update", "--lock"},
			OutdatedArgs: []string{"show", "--outdated", "--no-ansi"},
			LockFile:     "poetry.lock",
		},
	}
}

// NewSettings reads the config file at path on top of DefaultSettings.
// An empty path returns the defaults.
func NewSettings(path string) (*Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.PackageManager.Binary = expandEnv(settings.PackageManager.Binary)
	for i := range settings.Paths {
		settings.Paths[i] = expandEnv(settings.Paths[i])
	}

	if validateErr := settings.validate(); validateErr != nil {
		return nil, validateErr
	}

	return settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".poetryupdater.yaml",
		".poetryupdater.yml",
		"poetryupdater.yaml",
		"poetryupdater.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// expandEnv replaces ${ENV_VAR} references with their values.
func expandEnv(raw string) string {
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

func (s *Settings) validate() error {
	if s.PackageManager.Name == "" {
		return errors.New("package_manager.name is required")
	}
	if s.PackageManager.Binary == "" {
		return errors.New("package_manager.binary is required")
	}
	if len(s.PackageManager.LockArgs) == 0 {
		return errors.New("package_manager.lock_args must have at least one entry")
	}
	if len(s.PackageManager.OutdatedArgs) == 0 {
		return errors.New("package_manager.outdated_args must have at least one entry")
	}
	if s.PackageManager.LockFile == "" {
		return errors.New("package_manager.lock_file is required")
	}
	return nil
}
