package analyzer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/constants"
	"github.com/ludo-technologies/pyreview/internal/parser"
)

var commentedCodeKeywords = []string{"def ", "class ", "if ", "for ", "while "}

// LineDetector checks physical lines for length, indentation and
// commented-out code. It does not need the syntax tree.
type LineDetector struct{}

// NewLineDetector creates a line-oriented detector
func NewLineDetector() *LineDetector {
	return &LineDetector{}
}

func (d *LineDetector) Name() string { return "lines" }

func (d *LineDetector) Detect(_ *parser.Node, source string) ([]domain.Issue, error) {
	var issues []domain.Issue
	indent := strings.Repeat(" ", constants.IndentWidth)

	for i, line := range strings.Split(source, "\n") {
		lineNo := i + 1

		if length := utf8.RuneCountInString(line); length > constants.MaxLineLength {
			issues = append(issues, lineIssue(domain.RuleLineTooLong, domain.SeverityLow, lineNo, 0.9,
				fmt.Sprintf("Line %d is too long (%d characters)", lineNo, length)))
		}

		if strings.HasPrefix(line, " ") && !strings.HasPrefix(line, indent) {
			issues = append(issues, lineIssue(domain.RuleBadIndentation, domain.SeverityMedium, lineNo, 0.9,
				fmt.Sprintf("Line %d has incorrect indentation - use 4 spaces", lineNo)))
		}

		if isCommentedCode(line) {
			issues = append(issues, lineIssue(domain.RuleCommentedCode, domain.SeverityLow, lineNo, 0.7,
				fmt.Sprintf("Line %d appears to contain commented-out code", lineNo)))
		}
	}

	return issues, nil
}

func isCommentedCode(line string) bool {
	if !strings.HasPrefix(strings.TrimSpace(line), "#") {
		return false
	}
	for _, kw := range commentedCodeKeywords {
		if strings.Contains(line, kw) {
			return true
		}
	}
	return false
}

func lineIssue(rule string, severity domain.Severity, line int, confidence float64, message string) domain.Issue {
	return domain.Issue{
		Severity:   severity,
		Message:    message,
		Line:       line,
		Confidence: confidence,
		Rule:       rule,
	}
}
