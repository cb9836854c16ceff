package domain

// CheckResult represents the result of a quality check
type CheckResult struct {
	Passed      bool             `json:"passed"`
	ExitCode    int              `json:"exit_code"`
	FailOn      Severity         `json:"fail_on"`
	Violations  []CheckViolation `json:"violations"`
	Summary     CheckSummary     `json:"summary"`
	Duration    int64            `json:"duration_ms"`
	GeneratedAt string           `json:"generated_at"`
	Version     string           `json:"version"`
}

// CheckViolation represents a single issue at or above the failure threshold
type CheckViolation struct {
	Category   Category `json:"category"`             // data, syntax, runtime, ...
	Rule       string   `json:"rule"`                 // bare-except, line-too-long, etc.
	Severity   Severity `json:"severity"`             // error, high, medium, low, warning
	Message    string   `json:"message"`              // Human-readable description
	Location   string   `json:"location,omitempty"`   // File:line if applicable
	Suggestion string   `json:"suggestion,omitempty"` // Remediation text
}

// CheckSummary provides aggregate statistics
type CheckSummary struct {
	FilesAnalyzed   int `json:"files_analyzed"`
	TotalIssues     int `json:"total_issues"`
	TotalViolations int `json:"total_violations"`
	CleanFiles      int `json:"clean_files"`
}

// ViolatesThreshold reports whether an issue fails a check configured with
// failOn. Success issues never fail; other severities fail when their rank
// is at or below the threshold rank.
func ViolatesThreshold(issue Issue, failOn Severity) bool {
	if issue.Severity == SeveritySuccess {
		return false
	}
	return issue.Severity.Rank() <= failOn.Rank()
}
