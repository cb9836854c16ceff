package domain

import (
	"fmt"
	"regexp"
	"sort"
)

// Severity represents how urgent an issue is
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityHigh    Severity = "high"
	SeverityMedium  Severity = "medium"
	SeverityLow     Severity = "low"
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
)

// Rank returns the sort rank of the severity. Lower ranks sort first.
// Severities outside error/high/medium/low share the "other" rank.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	default:
		return 4
	}
}

// IsValid reports whether s is one of the known severities
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityHigh, SeverityMedium, SeverityLow, SeverityWarning, SeveritySuccess:
		return true
	}
	return false
}

// ParseSeverity converts a string into a Severity
func ParseSeverity(value string) (Severity, error) {
	s := Severity(value)
	if !s.IsValid() {
		return "", fmt.Errorf("unknown severity %q (must be one of: error, high, medium, low, warning, success)", value)
	}
	return s, nil
}

// Rule identifiers attached to issues
const (
	RuleSyntaxError         = "syntax-error"
	RuleUnresolvedImport    = "unresolved-import"
	RuleMissingFile         = "missing-file"
	RuleInfiniteLoop        = "infinite-loop"
	RuleBareExcept          = "bare-except"
	RuleGlobalStatement     = "global-statement"
	RuleShortName           = "short-name"
	RuleNamingConvention    = "naming-convention"
	RuleBranchComplexity    = "branch-complexity"
	RuleFunctionLength      = "function-length"
	RuleTooManyParameters   = "too-many-parameters"
	RuleNestedLoop          = "nested-loop"
	RuleLineTooLong         = "line-too-long"
	RuleBadIndentation      = "bad-indentation"
	RuleCommentedCode       = "commented-code"
	RuleQualityScore        = "quality-score"
	RuleEmptyInput          = "empty-input"
	RuleEngineUninitialized = "engine-uninitialized"
	RuleScorerUnavailable   = "scorer-unavailable"
	RuleNoIssues            = "no-issues"
)

// Issue is a single diagnostic produced by the review engine
type Issue struct {
	Severity   Severity `json:"severity" yaml:"severity"`
	Message    string   `json:"message" yaml:"message"`
	Line       int      `json:"line" yaml:"line"` // 1-based, 0 when not line-attributable
	Confidence float64  `json:"confidence" yaml:"confidence"`
	Suggestion string   `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
	Rule       string   `json:"rule,omitempty" yaml:"rule,omitempty"`
	Category   Category `json:"category,omitempty" yaml:"category,omitempty"`
}

// HasSuggestion reports whether a remediation has been attached
func (i Issue) HasSuggestion() bool {
	return i.Suggestion != ""
}

// SortIssues orders issues by line, then severity rank. The sort is stable so
// issues with equal keys keep the order in which detectors produced them.
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(a, b int) bool {
		if issues[a].Line != issues[b].Line {
			return issues[a].Line < issues[b].Line
		}
		return issues[a].Severity.Rank() < issues[b].Severity.Rank()
	})
}

// IsSuccessReport reports whether issues is the canonical "no issues" report
func IsSuccessReport(issues []Issue) bool {
	return len(issues) == 1 && issues[0].Severity == SeveritySuccess
}

// Category groups issues by topic for presentation
type Category string

const (
	CategoryData           Category = "data"
	CategoryModel          Category = "model"
	CategoryAlgorithm      Category = "algorithm"
	CategoryHyperparameter Category = "hyperparameter"
	CategoryEvaluation     Category = "evaluation"
	CategoryDeployment     Category = "deployment"
	CategorySyntax         Category = "syntax"
	CategoryRuntime        Category = "runtime"
)

// CategoryInfo describes how a category is presented
type CategoryInfo struct {
	Category Category
	Title    string
	Priority int
	pattern  *regexp.Regexp
}

// Categories lists every category in matching order. The first pattern that
// matches a message decides the category; runtime is the catch-all.
var Categories = []CategoryInfo{
	{CategoryData, "Data-Related Errors", 1, regexp.MustCompile(`(?i)data|input|output|format|missing|null|nan`)},
	{CategoryModel, "Model-Related Errors", 2, regexp.MustCompile(`(?i)model|prediction|inference|weights|bias`)},
	{CategoryAlgorithm, "Algorithm/Training Errors", 3, regexp.MustCompile(`(?i)algorithm|training|learning|gradient|loss`)},
	{CategoryHyperparameter, "Hyperparameter Tuning Errors", 4, regexp.MustCompile(`(?i)parameter|hyperparameter|tuning|optimization`)},
	{CategoryEvaluation, "Evaluation and Testing Errors", 5, regexp.MustCompile(`(?i)evaluation|testing|validation|accuracy|metrics`)},
	{CategoryDeployment, "Deployment Errors", 6, regexp.MustCompile(`(?i)deploy|production|service|api|endpoint`)},
	{CategorySyntax, "Code and Syntax Errors", 7, regexp.MustCompile(`(?i)syntax|indent|import|definition|naming`)},
	{CategoryRuntime, "Runtime Errors", 8, nil},
}

// Categorize derives the presentation category of a message
func Categorize(message string) Category {
	for _, info := range Categories {
		if info.pattern == nil || info.pattern.MatchString(message) {
			return info.Category
		}
	}
	return CategoryRuntime
}

// CategoryDetails returns the presentation info for a category
func CategoryDetails(c Category) CategoryInfo {
	for _, info := range Categories {
		if info.Category == c {
			return info
		}
	}
	return Categories[len(Categories)-1]
}
