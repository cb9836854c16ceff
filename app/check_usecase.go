package app

import (
	"fmt"
	"time"

	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/version"
)

// Check exit codes
const (
	ExitCodePass      = 0
	ExitCodeViolation = 1
	ExitCodeError     = 2
)

// EvaluateCheck compares a review against the failOn threshold. Every
// issue at or above the threshold becomes a violation.
func EvaluateCheck(response *domain.ReviewResponse, failOn domain.Severity, started time.Time) *domain.CheckResult {
	result := &domain.CheckResult{
		Passed:     true,
		ExitCode:   ExitCodePass,
		FailOn:     failOn,
		Violations: []domain.CheckViolation{},
		Version:    version.GetVersion(),
	}

	if response != nil {
		result.Summary.FilesAnalyzed = response.Summary.FilesAnalyzed
		result.Summary.TotalIssues = response.Summary.TotalIssues
		result.Summary.CleanFiles = response.Summary.CleanFiles

		for _, file := range response.Files {
			for _, issue := range file.Issues {
				if !domain.ViolatesThreshold(issue, failOn) {
					continue
				}
				location := file.FilePath
				if issue.Line > 0 {
					location = fmt.Sprintf("%s:%d", file.FilePath, issue.Line)
				}
				result.Violations = append(result.Violations, domain.CheckViolation{
					Category:   issue.Category,
					Rule:       issue.Rule,
					Severity:   issue.Severity,
					Message:    issue.Message,
					Location:   location,
					Suggestion: issue.Suggestion,
				})
			}
		}
	}

	result.Summary.TotalViolations = len(result.Violations)
	if len(result.Violations) > 0 {
		result.Passed = false
		result.ExitCode = ExitCodeViolation
	}

	result.Duration = time.Since(started).Milliseconds()
	result.GeneratedAt = time.Now().Format(time.RFC3339)
	return result
}
