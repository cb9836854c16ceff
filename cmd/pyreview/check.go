package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/pyreview/app"
	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/service"
)

// CheckExitError is a custom error type for check command exit codes
type CheckExitError struct {
	Code    int
	Message string
}

func (e *CheckExitError) Error() string {
	return e.Message
}

var (
	checkFailOn     string
	checkVerbose    bool
	checkJSON       bool
	checkConfigPath string
	checkExclude    []string
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Fast quality gate for CI/CD pipelines",
		Long: `Review Python files and fail when an issue reaches the severity threshold.

Exit codes:
  0 - No issue at or above the threshold
  1 - Threshold violated
  2 - Review error (file not found, unreadable input, etc.)

Examples:
  # Fail only on errors (default)
  pyreview check src/

  # Fail on high severity issues too
  pyreview check --fail-on high src/

  # JSON output for machine parsing
  pyreview check --json src/`,
		RunE:          runCheck,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVar(&checkFailOn, "fail-on", "",
		"Least severe severity that fails the check: error, high, medium, low, warning (default from config)")
	cmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false,
		"Show locations, suggestions and summary")
	cmd.Flags().BoolVar(&checkJSON, "json", false,
		"Output results as JSON")
	cmd.Flags().StringVarP(&checkConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().StringSliceVarP(&checkExclude, "exclude", "e", nil,
		"Additional exclude patterns (comma-separated)")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	startTime := time.Now()
	out := cmd.OutOrStdout()

	cfg, req, err := buildRequest(cmd, args, requestFlags{configPath: checkConfigPath, exclude: checkExclude})
	if err != nil {
		return &CheckExitError{Code: app.ExitCodeError, Message: err.Error()}
	}

	threshold := checkFailOn
	if threshold == "" {
		threshold = cfg.Check.FailOn
	}
	failOn, err := domain.ParseSeverity(threshold)
	if err != nil || failOn == domain.SeveritySuccess {
		return &CheckExitError{Code: app.ExitCodeError, Message: fmt.Sprintf("invalid --fail-on value %q", threshold)}
	}

	ctx, cancel := runContext(cmd.Context(), cfg)
	defer cancel()

	svc, err := service.NewReviewService(cfg, service.WithServiceLogger(newLogger()))
	if err != nil {
		return &CheckExitError{Code: app.ExitCodeError, Message: err.Error()}
	}
	uc, err := app.NewReviewUseCaseBuilder().
		WithService(svc).
		WithStdin(cmd.InOrStdin()).
		Build()
	if err != nil {
		return &CheckExitError{Code: app.ExitCodeError, Message: err.Error()}
	}

	spin := startSpinner(checkJSON)
	response, err := uc.Execute(ctx, *req)
	spin.Stop()
	if err != nil {
		return &CheckExitError{Code: app.ExitCodeError, Message: err.Error()}
	}

	if len(response.Errors) > 0 && !checkJSON {
		for _, e := range response.Errors {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", e)
		}
	}

	result := app.EvaluateCheck(response, failOn, startTime)
	if checkJSON {
		return outputCheckJSON(out, result)
	}
	return outputCheckText(out, result)
}

// startSpinner shows activity on stderr while files are reviewed. Remote
// classifier calls can take seconds per file.
func startSpinner(quiet bool) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " Reviewing..."
	if !quiet && service.IsInteractiveEnvironment() {
		s.Start()
	}
	return s
}

func outputCheckText(w io.Writer, result *domain.CheckResult) error {
	if result.Passed {
		fmt.Fprintf(w, "PASS: No issues at or above %s\n", result.FailOn)
		if checkVerbose {
			fmt.Fprintf(w, "  Files reviewed: %d\n", result.Summary.FilesAnalyzed)
			fmt.Fprintf(w, "  Issues below threshold: %d\n", result.Summary.TotalIssues)
			fmt.Fprintf(w, "  Duration: %dms\n", result.Duration)
		}
		return nil
	}

	fmt.Fprintln(w, "FAIL: Quality check failed")
	fmt.Fprintf(w, "  Violations: %d (fail-on: %s)\n", result.Summary.TotalViolations, result.FailOn)

	for _, v := range result.Violations {
		fmt.Fprintf(w, "  [%s] %s: %s\n", severityLabel(v.Severity), v.Location, v.Message)
		if checkVerbose && v.Suggestion != "" {
			fmt.Fprintf(w, "         suggestion: %s\n", v.Suggestion)
		}
	}

	if checkVerbose {
		fmt.Fprintf(w, "\nSummary:\n")
		fmt.Fprintf(w, "  Files: %d\n", result.Summary.FilesAnalyzed)
		fmt.Fprintf(w, "  Clean files: %d\n", result.Summary.CleanFiles)
		fmt.Fprintf(w, "  Total issues: %d\n", result.Summary.TotalIssues)
		fmt.Fprintf(w, "  Duration: %dms\n", result.Duration)
	}

	return &CheckExitError{Code: app.ExitCodeViolation, Message: ""}
}

func outputCheckJSON(w io.Writer, result *domain.CheckResult) error {
	if err := service.WriteJSON(w, result); err != nil {
		return &CheckExitError{Code: app.ExitCodeError, Message: fmt.Sprintf("failed to encode JSON: %v", err)}
	}

	if !result.Passed {
		return &CheckExitError{Code: app.ExitCodeViolation, Message: ""}
	}
	return nil
}

func severityLabel(s domain.Severity) string {
	switch s {
	case domain.SeverityError:
		return "ERROR"
	case domain.SeverityHigh:
		return "HIGH"
	case domain.SeverityMedium:
		return "MEDIUM"
	case domain.SeverityLow:
		return "LOW"
	default:
		return "WARN"
	}
}
