package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "pyreview"

	// ConfigFileName is the default config file name
	ConfigFileName = ".pyreview.toml"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "PYREVIEW"
)

// Output format constants
const (
	OutputFormatText    = "text"
	OutputFormatJSON    = "json"
	OutputFormatYAML    = "yaml"
	OutputFormatMsgpack = "msgpack"
)

// Quality thresholds
const (
	// MaxLineLength is the longest line accepted without an issue
	MaxLineLength = 79

	// IndentWidth is the required indentation prefix width
	IndentWidth = 4

	// MaxFunctionBranches is the branch count a function may reach
	MaxFunctionBranches = 5

	// MaxFunctionStatements is the body statement count a function may reach
	MaxFunctionStatements = 15

	// MaxFunctionParams is the positional parameter count a function may reach
	MaxFunctionParams = 5

	// ScorerThreshold is the score above which the classifier raises an issue
	ScorerThreshold = 0.5
)

// Classifier defaults
const (
	DefaultMaxInputTokens  = 512
	DefaultScorerTimeout   = 30 // seconds
	DefaultScorerModel     = "claude-sonnet-4-5"
	DefaultScorerAPIKeyEnv = "ANTHROPIC_API_KEY"
)

// Scorer providers
const (
	ScorerProviderNone      = "none"
	ScorerProviderStatic    = "static"
	ScorerProviderAnthropic = "anthropic"
)

// Resolver modes
const (
	ResolverModeStatic      = "static"
	ResolverModeInterpreter = "interpreter"
)
