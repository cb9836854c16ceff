package analyzer

import (
	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/parser"
)

// CommonErrorDetector flags infinite loops, bare except clauses and global
// declarations inside functions
type CommonErrorDetector struct{}

// NewCommonErrorDetector creates a common-error detector
func NewCommonErrorDetector() *CommonErrorDetector {
	return &CommonErrorDetector{}
}

func (d *CommonErrorDetector) Name() string { return "common_errors" }

func (d *CommonErrorDetector) Detect(tree *parser.Node, _ string) ([]domain.Issue, error) {
	if tree == nil {
		return nil, errNoTree
	}

	var issues []domain.Issue
	tree.Walk(func(n *parser.Node) bool {
		switch n.Type {
		case parser.NodeWhile:
			if isInfiniteLoop(n) {
				issues = append(issues, newIssue(domain.RuleInfiniteLoop, domain.SeverityWarning, n.Line(), 0.9,
					"Potential infinite loop detected (while True without break)"))
			}
		case parser.NodeExceptHandler:
			if n.Test == nil {
				issues = append(issues, newIssue(domain.RuleBareExcept, domain.SeverityMedium, n.Line(), 0.95,
					"Bare except clause detected - consider catching specific exceptions"))
			}
		case parser.NodeGlobal:
			if insideFunction(n) {
				issues = append(issues, newIssue(domain.RuleGlobalStatement, domain.SeverityMedium, n.Line(), 0.9,
					"Use of global variables detected - consider alternative approaches"))
			}
		}
		return true
	})
	return issues, nil
}

// isInfiniteLoop matches "while True" with no break anywhere below it.
// A break belonging to a nested loop still counts.
func isInfiniteLoop(loop *parser.Node) bool {
	test := unwrapParens(loop.Test)
	if test == nil || test.Type != parser.NodeTrue {
		return false
	}
	return !loop.Contains(func(n *parser.Node) bool {
		return n.Type == parser.NodeBreak
	})
}
