package analyzer

import (
	"fmt"
	"log/slog"

	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/parser"
)

// Detector scans a parsed module and its raw text for one family of issues.
// Detectors are stateless; a returned error means "found nothing".
type Detector interface {
	Name() string
	Detect(tree *parser.Node, source string) ([]domain.Issue, error)
}

// runDetector invokes d and flattens any error or panic into zero issues
func runDetector(d Detector, tree *parser.Node, source string, logger *slog.Logger) (issues []domain.Issue) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("detector panicked", "detector", d.Name(), "panic", r)
			issues = nil
		}
	}()

	found, err := d.Detect(tree, source)
	if err != nil {
		logger.Debug("detector failed", "detector", d.Name(), "error", err)
		return nil
	}
	return found
}

// newIssue builds an issue whose message is prefixed with its line
func newIssue(rule string, severity domain.Severity, line int, confidence float64, format string, args ...any) domain.Issue {
	return domain.Issue{
		Severity:   severity,
		Message:    fmt.Sprintf("Line %d: ", line) + fmt.Sprintf(format, args...),
		Line:       line,
		Confidence: confidence,
		Rule:       rule,
	}
}

// unwrapParens strips redundant parentheses around an expression
func unwrapParens(n *parser.Node) *parser.Node {
	for n != nil && n.Type == "parenthesized_expression" && len(n.Children) == 1 {
		n = n.Children[0]
	}
	return n
}

// insideFunction reports whether n is nested in a function body
func insideFunction(n *parser.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.IsFunction() {
			return true
		}
	}
	return false
}
