package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/constants"
)

// Default settings
const (
	// DefaultScorerProvider disables the remote classifier unless configured
	DefaultScorerProvider = constants.ScorerProviderNone

	// DefaultInterpreter is the Python used by the interpreter resolver
	DefaultInterpreter = "python3"

	// DefaultContextLines is the number of source lines shown around an issue
	DefaultContextLines = 1

	// DefaultFailOn is the severity threshold of the check command
	DefaultFailOn = "error"

	// DefaultTimeoutSeconds bounds a whole review run
	DefaultTimeoutSeconds = 300
)

// Config represents the main configuration structure
type Config struct {
	// Scorer holds quality classifier configuration
	Scorer ScorerConfig `json:"scorer" mapstructure:"scorer" yaml:"scorer" toml:"scorer"`

	// Resolver holds import resolution configuration
	Resolver ResolverConfig `json:"resolver" mapstructure:"resolver" yaml:"resolver" toml:"resolver"`

	// FileChecks holds open() path checking configuration
	FileChecks FileChecksConfig `json:"file_checks" mapstructure:"file_checks" yaml:"file_checks" toml:"file_checks"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output" toml:"output"`

	// Analysis holds file collection configuration
	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis" yaml:"analysis" toml:"analysis"`

	// Performance holds concurrency configuration
	Performance PerformanceConfig `json:"performance" mapstructure:"performance" yaml:"performance" toml:"performance"`

	// Check holds check command configuration
	Check CheckConfig `json:"check" mapstructure:"check" yaml:"check" toml:"check"`
}

// ScorerConfig holds configuration for the quality classifier
type ScorerConfig struct {
	// Provider selects the classifier: none, static, anthropic
	Provider string `json:"provider" mapstructure:"provider" yaml:"provider" toml:"provider"`

	// Model is the Anthropic model used by the anthropic provider
	Model string `json:"model" mapstructure:"model" yaml:"model" toml:"model"`

	// APIKeyEnv names the environment variable holding the API key
	APIKeyEnv string `json:"api_key_env" mapstructure:"api_key_env" yaml:"api_key_env" toml:"api_key_env"`

	// BaseURL overrides the API endpoint (empty = SDK default)
	BaseURL string `json:"base_url" mapstructure:"base_url" yaml:"base_url" toml:"base_url"`

	// StaticScore is the score returned by the static provider
	StaticScore float64 `json:"static_score" mapstructure:"static_score" yaml:"static_score" toml:"static_score"`

	// TimeoutSeconds bounds one classifier call
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds"`

	// MaxInputTokens truncates the text sent to the classifier
	MaxInputTokens int `json:"max_input_tokens" mapstructure:"max_input_tokens" yaml:"max_input_tokens" toml:"max_input_tokens"`
}

// ResolverConfig holds configuration for import resolution
type ResolverConfig struct {
	// Mode selects the resolver: static or interpreter
	Mode string `json:"mode" mapstructure:"mode" yaml:"mode" toml:"mode"`

	// Interpreter is the Python executable used in interpreter mode
	Interpreter string `json:"interpreter" mapstructure:"interpreter" yaml:"interpreter" toml:"interpreter"`

	// ExtraModules are third-party packages treated as installed
	ExtraModules []string `json:"extra_modules" mapstructure:"extra_modules" yaml:"extra_modules" toml:"extra_modules"`
}

// FileChecksConfig holds configuration for open() path checks
type FileChecksConfig struct {
	// BaseDir resolves relative paths (empty = working directory)
	BaseDir string `json:"base_dir" mapstructure:"base_dir" yaml:"base_dir" toml:"base_dir"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml, msgpack
	Format string `json:"format" mapstructure:"format" yaml:"format" toml:"format"`

	// Color enables ANSI colors in text output
	Color bool `json:"color" mapstructure:"color" yaml:"color" toml:"color"`

	// ShowSuggestions prints remediation text under each issue
	ShowSuggestions bool `json:"show_suggestions" mapstructure:"show_suggestions" yaml:"show_suggestions" toml:"show_suggestions"`

	// ContextLines is the number of lines shown around each issue (0 = no preview)
	ContextLines int `json:"context_lines" mapstructure:"context_lines" yaml:"context_lines" toml:"context_lines"`
}

// AnalysisConfig holds general analysis configuration
type AnalysisConfig struct {
	// IncludePatterns specifies file patterns to include
	IncludePatterns []string `json:"include_patterns" mapstructure:"include_patterns" yaml:"include_patterns" toml:"include_patterns"`

	// ExcludePatterns specifies file patterns to exclude
	ExcludePatterns []string `json:"exclude_patterns" mapstructure:"exclude_patterns" yaml:"exclude_patterns" toml:"exclude_patterns"`

	// Recursive controls whether to analyze directories recursively
	Recursive bool `json:"recursive" mapstructure:"recursive" yaml:"recursive" toml:"recursive"`

	// RespectGitignore skips files matched by .gitignore
	RespectGitignore bool `json:"respect_gitignore" mapstructure:"respect_gitignore" yaml:"respect_gitignore" toml:"respect_gitignore"`
}

// PerformanceConfig holds configuration for parallel execution
type PerformanceConfig struct {
	// MaxGoroutines limits concurrently reviewed files (0 = default)
	MaxGoroutines int `json:"max_goroutines" mapstructure:"max_goroutines" yaml:"max_goroutines" toml:"max_goroutines"`

	// TimeoutSeconds bounds the whole run
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds"`
}

// CheckConfig holds configuration for the check command
type CheckConfig struct {
	// FailOn is the least severe severity that fails the check
	FailOn string `json:"fail_on" mapstructure:"fail_on" yaml:"fail_on" toml:"fail_on"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Scorer: ScorerConfig{
			Provider:       DefaultScorerProvider,
			Model:          constants.DefaultScorerModel,
			APIKeyEnv:      constants.DefaultScorerAPIKeyEnv,
			StaticScore:    0,
			TimeoutSeconds: constants.DefaultScorerTimeout,
			MaxInputTokens: constants.DefaultMaxInputTokens,
		},
		Resolver: ResolverConfig{
			Mode:         constants.ResolverModeStatic,
			Interpreter:  DefaultInterpreter,
			ExtraModules: []string{},
		},
		FileChecks: FileChecksConfig{},
		Output: OutputConfig{
			Format:          constants.OutputFormatText,
			Color:           true,
			ShowSuggestions: true,
			ContextLines:    DefaultContextLines,
		},
		Analysis: AnalysisConfig{
			IncludePatterns: []string{"**/*.py"},
			ExcludePatterns: []string{
				// Virtual environments
				".venv",
				"venv",
				"env",
				// Caches and build outputs
				"__pycache__",
				".mypy_cache",
				".pytest_cache",
				".tox",
				"build",
				"dist",
				"*.egg-info",
				// Version control
				".git",
			},
			Recursive:        true,
			RespectGitignore: true,
		},
		Performance: PerformanceConfig{
			MaxGoroutines:  0,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Check: CheckConfig{
			FailOn: DefaultFailOn,
		},
	}
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration with target path context.
// Without an explicit path the file is discovered from targetPath upward.
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}

	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads and parses a configuration file. An empty path
// yields the defaults with environment overrides applied.
func loadConfigFromFile(configPath string) (*Config, error) {
	// Create a new viper instance to avoid race conditions
	v := viper.New()
	config := DefaultConfig()
	setDefaults(v, config)

	v.SetEnvPrefix(constants.EnvVarPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if filepath.Ext(configPath) == "" {
			v.SetConfigType("toml")
		}

		if err := v.ReadInConfig(); err != nil {
			return nil, domain.NewConfigError(fmt.Sprintf("failed to read config file %s", configPath), err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, domain.NewConfigError("failed to unmarshal config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, domain.NewConfigError("invalid configuration", err)
	}

	return config, nil
}

// setDefaults registers every key so that environment overrides apply
func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("scorer.provider", c.Scorer.Provider)
	v.SetDefault("scorer.model", c.Scorer.Model)
	v.SetDefault("scorer.api_key_env", c.Scorer.APIKeyEnv)
	v.SetDefault("scorer.base_url", c.Scorer.BaseURL)
	v.SetDefault("scorer.static_score", c.Scorer.StaticScore)
	v.SetDefault("scorer.timeout_seconds", c.Scorer.TimeoutSeconds)
	v.SetDefault("scorer.max_input_tokens", c.Scorer.MaxInputTokens)

	v.SetDefault("resolver.mode", c.Resolver.Mode)
	v.SetDefault("resolver.interpreter", c.Resolver.Interpreter)
	v.SetDefault("resolver.extra_modules", c.Resolver.ExtraModules)

	v.SetDefault("file_checks.base_dir", c.FileChecks.BaseDir)

	v.SetDefault("output.format", c.Output.Format)
	v.SetDefault("output.color", c.Output.Color)
	v.SetDefault("output.show_suggestions", c.Output.ShowSuggestions)
	v.SetDefault("output.context_lines", c.Output.ContextLines)

	v.SetDefault("analysis.include_patterns", c.Analysis.IncludePatterns)
	v.SetDefault("analysis.exclude_patterns", c.Analysis.ExcludePatterns)
	v.SetDefault("analysis.recursive", c.Analysis.Recursive)
	v.SetDefault("analysis.respect_gitignore", c.Analysis.RespectGitignore)

	v.SetDefault("performance.max_goroutines", c.Performance.MaxGoroutines)
	v.SetDefault("performance.timeout_seconds", c.Performance.TimeoutSeconds)

	v.SetDefault("check.fail_on", c.Check.FailOn)
}

// configCandidates are the recognized config file names in order of preference
var configCandidates = []string{
	".pyreview.toml",
	"pyreview.toml",
	"pyreview.yaml",
	"pyreview.yml",
	"pyreview.json",
	".pyreview.json",
}

// searchConfigInDirectory searches for configuration files in a specific directory
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for default configuration files in common locations.
// targetPath is the path being reviewed (a Python file or directory).
func findDefaultConfig(targetPath string) string {
	if targetPath != "" && targetPath != "-" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			// If it's a file, start from its directory
			info, err := os.Stat(absPath)
			if err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			volume := filepath.VolumeName(absPath)
			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir, configCandidates); config != "" {
					return config
				}

				parent := filepath.Dir(dir)
				if parent == dir || dir == volume ||
					(volume != "" && dir == volume+string(filepath.Separator)) {
					break
				}
			}
		}
	}

	// Fallback to current directory
	if config := searchConfigInDirectory(".", configCandidates); config != "" {
		return config
	}

	// Check XDG config directory (Linux/Mac standard)
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, constants.ToolName), configCandidates); config != "" {
			return config
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		configDir := filepath.Join(home, ".config", constants.ToolName)
		if config := searchConfigInDirectory(configDir, configCandidates); config != "" {
			return config
		}

		if config := searchConfigInDirectory(home, configCandidates); config != "" {
			return config
		}
	}

	// Check PYREVIEW_CONFIG environment variable as fallback
	if envConfig := os.Getenv(constants.EnvVarPrefix + "_CONFIG"); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	validProviders := map[string]bool{
		constants.ScorerProviderNone:      true,
		constants.ScorerProviderStatic:    true,
		constants.ScorerProviderAnthropic: true,
	}
	if !validProviders[c.Scorer.Provider] {
		return fmt.Errorf("invalid scorer.provider '%s', must be one of: none, static, anthropic", c.Scorer.Provider)
	}

	if c.Scorer.StaticScore < 0 || c.Scorer.StaticScore > 1 {
		return fmt.Errorf("scorer.static_score must be within [0, 1], got %v", c.Scorer.StaticScore)
	}

	if c.Scorer.TimeoutSeconds < 0 {
		return fmt.Errorf("scorer.timeout_seconds must be >= 0, got %d", c.Scorer.TimeoutSeconds)
	}

	if c.Scorer.MaxInputTokens < 0 {
		return fmt.Errorf("scorer.max_input_tokens must be >= 0, got %d", c.Scorer.MaxInputTokens)
	}

	if c.Resolver.Mode != constants.ResolverModeStatic && c.Resolver.Mode != constants.ResolverModeInterpreter {
		return fmt.Errorf("invalid resolver.mode '%s', must be one of: static, interpreter", c.Resolver.Mode)
	}

	validFormats := map[string]bool{
		constants.OutputFormatText:    true,
		constants.OutputFormatJSON:    true,
		constants.OutputFormatYAML:    true,
		constants.OutputFormatMsgpack: true,
	}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml, msgpack", c.Output.Format)
	}

	if c.Output.ContextLines < 0 {
		return fmt.Errorf("output.context_lines must be >= 0, got %d", c.Output.ContextLines)
	}

	if len(c.Analysis.IncludePatterns) == 0 {
		return fmt.Errorf("analysis.include_patterns cannot be empty")
	}

	if c.Performance.MaxGoroutines < 0 {
		return fmt.Errorf("performance.max_goroutines must be >= 0, got %d", c.Performance.MaxGoroutines)
	}

	if c.Performance.TimeoutSeconds < 0 {
		return fmt.Errorf("performance.timeout_seconds must be >= 0, got %d", c.Performance.TimeoutSeconds)
	}

	if _, err := domain.ParseSeverity(c.Check.FailOn); err != nil || c.Check.FailOn == string(domain.SeveritySuccess) {
		return fmt.Errorf("invalid check.fail_on '%s', must be one of: error, high, medium, low, warning", c.Check.FailOn)
	}

	return nil
}
