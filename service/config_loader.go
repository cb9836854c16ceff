package service

import (
	"fmt"

	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/config"
)

// ConfigurationLoaderImpl turns configuration files into review requests
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// Load loads the configuration for a run. An explicit path must exist;
// otherwise a config file is discovered from targetPath upward and the
// defaults apply when none is found.
func (c *ConfigurationLoaderImpl) Load(configPath, targetPath string) (*config.Config, error) {
	cfg, err := config.LoadConfigWithTarget(configPath, targetPath)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// ToRequest converts a Config into a review request without paths
func (c *ConfigurationLoaderImpl) ToRequest(cfg *config.Config) *domain.ReviewRequest {
	return &domain.ReviewRequest{
		OutputFormat:     domain.OutputFormat(cfg.Output.Format),
		ShowSuggestions:  cfg.Output.ShowSuggestions,
		ContextLines:     cfg.Output.ContextLines,
		Recursive:        cfg.Analysis.Recursive,
		RespectGitignore: cfg.Analysis.RespectGitignore,
		IncludePatterns:  append([]string(nil), cfg.Analysis.IncludePatterns...),
		ExcludePatterns:  append([]string(nil), cfg.Analysis.ExcludePatterns...),
	}
}

// MergeConfig merges CLI values over a request built from configuration.
// Zero values in override keep the base value.
func (c *ConfigurationLoaderImpl) MergeConfig(base, override *domain.ReviewRequest) *domain.ReviewRequest {
	merged := *base

	// Paths always come from command arguments
	if len(override.Paths) > 0 {
		merged.Paths = override.Paths
	}
	if len(override.Sources) > 0 {
		merged.Sources = override.Sources
	}

	if override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}
	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}
	if override.ContextLines > 0 {
		merged.ContextLines = override.ContextLines
	}

	if len(override.IncludePatterns) > 0 {
		merged.IncludePatterns = override.IncludePatterns
	}
	if len(override.ExcludePatterns) > 0 {
		merged.ExcludePatterns = append(merged.ExcludePatterns, override.ExcludePatterns...)
	}

	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}

	return &merged
}

// ValidateRequest validates a merged request
func (c *ConfigurationLoaderImpl) ValidateRequest(req *domain.ReviewRequest) error {
	if len(req.Paths) == 0 && len(req.Sources) == 0 {
		return domain.NewInvalidInputError("no input paths specified", nil)
	}

	switch req.OutputFormat {
	case domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatYAML, domain.OutputFormatMsgpack:
	default:
		return domain.NewUnsupportedFormatError(string(req.OutputFormat))
	}

	if req.ContextLines < 0 {
		return domain.NewInvalidInputError(fmt.Sprintf("context lines cannot be negative, got %d", req.ContextLines), nil)
	}
	if len(req.IncludePatterns) == 0 {
		return domain.NewInvalidInputError("at least one include pattern is required", nil)
	}

	return nil
}
