package repos

import (
	"strings"
	"time"
)

const (
	defaultStorageRootConstant    = "~/.reposync/versions"
	defaultBranchConstant         = "master"
	defaultCommandTimeoutConstant = 10 * time.Minute
	outputFormatYAMLConstant      = "yaml"
	outputFormatJSONConstant      = "json"
)

// SyncConfiguration describes where local copies live and how remotes are reached.
type SyncConfiguration struct {
	StorageRoot    string        `mapstructure:"storage_root"`
	DefaultBranch  string        `mapstructure:"default_branch"`
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
	Username       string        `mapstructure:"username"`
	Secret         string        `mapstructure:"secret"`
}

// DiffConfiguration describes how parsed diffs are rendered.
type DiffConfiguration struct {
	OutputFormat string `mapstructure:"output_format"`
}

// DefaultSyncConfiguration returns baseline values for repository synchronization.
func DefaultSyncConfiguration() SyncConfiguration {
	return SyncConfiguration{
		StorageRoot:    defaultStorageRootConstant,
		DefaultBranch:  defaultBranchConstant,
		CommandTimeout: defaultCommandTimeoutConstant,
	}
}

// DefaultDiffConfiguration returns baseline values for diff rendering.
func DefaultDiffConfiguration() DiffConfiguration {
	return DiffConfiguration{OutputFormat: outputFormatYAMLConstant}
}

// sanitize trims values and restores defaults for empty settings.
func (configuration SyncConfiguration) sanitize() SyncConfiguration {
	defaults := DefaultSyncConfiguration()
	sanitized := configuration

	sanitized.StorageRoot = strings.TrimSpace(configuration.StorageRoot)
	if len(sanitized.StorageRoot) == 0 {
		sanitized.StorageRoot = defaults.StorageRoot
	}
	sanitized.DefaultBranch = strings.TrimSpace(configuration.DefaultBranch)
	if len(sanitized.DefaultBranch) == 0 {
		sanitized.DefaultBranch = defaults.DefaultBranch
	}
	if sanitized.CommandTimeout < 0 {
		sanitized.CommandTimeout = 0
	}
	sanitized.Username = strings.TrimSpace(configuration.Username)

	return sanitized
}

// sanitize lower-cases the output format and falls back to YAML.
func (configuration DiffConfiguration) sanitize() DiffConfiguration {
	sanitized := configuration
	sanitized.OutputFormat = strings.ToLower(strings.TrimSpace(configuration.OutputFormat))
	if sanitized.OutputFormat != outputFormatJSONConstant {
		sanitized.OutputFormat = outputFormatYAMLConstant
	}
	return sanitized
}
