package domain

import (
	"context"
	"io"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText    OutputFormat = "text"
	OutputFormatJSON    OutputFormat = "json"
	OutputFormatYAML    OutputFormat = "yaml"
	OutputFormatMsgpack OutputFormat = "msgpack"
)

// SourceInput is an in-memory compilation unit (e.g. read from stdin)
type SourceInput struct {
	Name    string
	Content []byte
}

// ReviewRequest represents a request to review one or more Python sources
type ReviewRequest struct {
	// Input files or directories to review
	Paths []string

	// In-memory sources reviewed alongside Paths
	Sources []SourceInput

	// Output configuration
	OutputFormat    OutputFormat
	OutputWriter    io.Writer
	ShowSuggestions bool
	ContextLines    int

	// File collection
	Recursive        bool
	RespectGitignore bool
	IncludePatterns  []string
	ExcludePatterns  []string

	// Configuration
	ConfigPath string
}

// FileReview holds the ordered issue report for one source
type FileReview struct {
	FilePath string  `json:"file_path" yaml:"file_path"`
	Issues   []Issue `json:"issues" yaml:"issues"`

	// Source lines, kept for code previews in text output
	Lines []string `json:"-" yaml:"-"`
}

// IsClean reports whether the review found nothing
func (f FileReview) IsClean() bool {
	return IsSuccessReport(f.Issues)
}

// ReviewSummary represents aggregate statistics over all reviewed sources
type ReviewSummary struct {
	FilesAnalyzed int     `json:"files_analyzed" yaml:"files_analyzed"`
	CleanFiles    int     `json:"clean_files" yaml:"clean_files"`
	TotalIssues   int     `json:"total_issues" yaml:"total_issues"`
	ErrorIssues   int     `json:"error_issues" yaml:"error_issues"`
	HighIssues    int     `json:"high_issues" yaml:"high_issues"`
	MediumIssues  int     `json:"medium_issues" yaml:"medium_issues"`
	LowIssues     int     `json:"low_issues" yaml:"low_issues"`
	WarningIssues int     `json:"warning_issues" yaml:"warning_issues"`
	AverageIssues float64 `json:"average_issues_per_file" yaml:"average_issues_per_file"`
}

// Add folds one file review into the summary
func (s *ReviewSummary) Add(review FileReview) {
	s.FilesAnalyzed++
	if review.IsClean() {
		s.CleanFiles++
	} else {
		for _, issue := range review.Issues {
			s.TotalIssues++
			switch issue.Severity {
			case SeverityError:
				s.ErrorIssues++
			case SeverityHigh:
				s.HighIssues++
			case SeverityMedium:
				s.MediumIssues++
			case SeverityLow:
				s.LowIssues++
			case SeverityWarning:
				s.WarningIssues++
			}
		}
	}
	s.AverageIssues = float64(s.TotalIssues) / float64(s.FilesAnalyzed)
}

// ReviewResponse represents the complete review result
type ReviewResponse struct {
	Files   []FileReview  `json:"files" yaml:"files"`
	Summary ReviewSummary `json:"summary" yaml:"summary"`

	// Files that could not be read
	Errors []string `json:"errors,omitempty" yaml:"errors,omitempty"`

	// Metadata
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Version     string `json:"version" yaml:"version"`
}

// ReviewService defines the core business logic for code review
type ReviewService interface {
	// Review reviews every path and in-memory source in the request
	Review(ctx context.Context, req ReviewRequest) (*ReviewResponse, error)

	// ReviewSource reviews a single in-memory source
	ReviewSource(ctx context.Context, name string, source []byte) (*FileReview, error)
}

// OutputFormatter defines the interface for formatting review results
type OutputFormatter interface {
	Write(response *ReviewResponse, format OutputFormat, writer io.Writer) error
}

// ModuleResolver answers whether an imported module can be resolved in the
// current environment. Unknown names resolve to false, never an error.
type ModuleResolver interface {
	IsResolvable(module string) bool
}

// FileChecker answers whether a literal path exists on the filesystem
type FileChecker interface {
	Exists(path string) bool
}

// QualityScorer is the opaque "general quality risk" classifier. Score
// returns a value in [0,1]; failures wrap ErrClassifierUnavailable.
type QualityScorer interface {
	Score(ctx context.Context, source string) (float64, error)
}
