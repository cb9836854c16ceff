package config

import (
	"strings"

	"github.com/ludo-technologies/pyreview/internal/constants"
)

// ProjectType represents the type of Python project
type ProjectType string

const (
	ProjectTypeGeneric     ProjectType = "generic"
	ProjectTypeDataScience ProjectType = "datascience"
	ProjectTypeWeb         ProjectType = "web"
)

// ProjectPreset holds configuration presets for different project types
type ProjectPreset struct {
	ExcludePatterns []string
	ExtraModules    []string
}

// GetProjectPresets returns presets for different project types
func GetProjectPresets() map[ProjectType]ProjectPreset {
	base := DefaultConfig().Analysis.ExcludePatterns

	return map[ProjectType]ProjectPreset{
		ProjectTypeGeneric: {
			ExcludePatterns: base,
			ExtraModules:    []string{},
		},
		ProjectTypeDataScience: {
			ExcludePatterns: append(append([]string{}, base...), ".ipynb_checkpoints", "data", "models"),
			ExtraModules: []string{
				"numpy", "pandas", "scipy", "sklearn", "torch", "tensorflow",
				"keras", "matplotlib", "seaborn", "transformers",
			},
		},
		ProjectTypeWeb: {
			ExcludePatterns: append(append([]string{}, base...), "migrations", "static", "node_modules"),
			ExtraModules: []string{
				"django", "flask", "fastapi", "pydantic", "sqlalchemy",
				"requests", "celery", "jinja2", "werkzeug", "uvicorn",
			},
		},
	}
}

// sectionDocs documents each table of the generated config, in output order
var sectionDocs = []struct {
	name string
	doc  string
}{
	{"scorer", `# QUALITY CLASSIFIER
# provider: "none" (never raises a quality issue), "static" (fixed score,
# useful in CI) or "anthropic" (asks a Claude model; needs the API key in
# the environment variable named by api_key_env).
# A score above 0.5 adds a high severity "Potential code quality issues" issue.`},
	{"resolver", `# IMPORT RESOLUTION
# mode: "static" checks the standard library plus extra_modules,
# "interpreter" asks the Python interpreter whether each module is importable
# and reports syntax errors with the interpreter's own messages.`},
	{"file_checks", `# FILE CHECKS
# Relative open() paths are resolved against base_dir (empty = working directory).`},
	{"output", `# OUTPUT SETTINGS
# format: "text", "json", "yaml" or "msgpack"`},
	{"analysis", `# ANALYSIS SCOPE
# Controls which files are reviewed when a directory is given.`},
	{"performance", `# PERFORMANCE
# max_goroutines: files reviewed concurrently (0 = default)`},
	{"check", `# CHECK COMMAND
# fail_on: least severe severity that fails 'pyreview check'
# (error, high, medium, low, warning)`},
}

// BuildConfig returns the default configuration adjusted for a project type
// and scorer provider
func BuildConfig(projectType ProjectType, provider string) *Config {
	cfg := DefaultConfig()

	if preset, ok := GetProjectPresets()[projectType]; ok {
		cfg.Analysis.ExcludePatterns = preset.ExcludePatterns
		cfg.Resolver.ExtraModules = preset.ExtraModules
	}
	if provider != "" {
		cfg.Scorer.Provider = provider
	}

	return cfg
}

// GetFullConfigTemplate returns the documented config template as TOML
func GetFullConfigTemplate(projectType ProjectType, provider string) (string, error) {
	cfg := BuildConfig(projectType, provider)
	sections := map[string]any{
		"scorer":      cfg.Scorer,
		"resolver":    cfg.Resolver,
		"file_checks": cfg.FileChecks,
		"output":      cfg.Output,
		"analysis":    cfg.Analysis,
		"performance": cfg.Performance,
		"check":       cfg.Check,
	}

	var sb strings.Builder
	sb.WriteString("# " + constants.ToolName + " configuration\n")
	sb.WriteString("# Rule thresholds (line length, branches, parameters) are fixed.\n")
	sb.WriteString("# Every key can be overridden with " + constants.EnvVarPrefix + "_<SECTION>_<KEY>.\n")

	for _, s := range sectionDocs {
		body, err := encodeSection(s.name, sections[s.name])
		if err != nil {
			return "", err
		}
		sb.WriteString("\n")
		sb.WriteString(s.doc)
		sb.WriteString("\n")
		sb.WriteString(body)
	}

	return sb.String(), nil
}

// GetMinimalConfigTemplate returns a minimal config template
func GetMinimalConfigTemplate() string {
	return `# pyreview configuration (minimal)
# Run 'pyreview init' without --minimal for every option.

[scorer]
provider = "none"

[resolver]
mode = "static"
extra_modules = []

[output]
format = "text"

[check]
fail_on = "error"
`
}
