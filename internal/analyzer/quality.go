package analyzer

import (
	"strings"
	"unicode"

	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/constants"
	"github.com/ludo-technologies/pyreview/internal/parser"
)

// loopIndexNames are single-letter names accepted by convention
var loopIndexNames = map[string]bool{"i": true, "j": true, "k": true, "n": true, "m": true}

// QualityDetector applies naming, function-size and loop-nesting heuristics
type QualityDetector struct{}

// NewQualityDetector creates a code-quality detector
func NewQualityDetector() *QualityDetector {
	return &QualityDetector{}
}

func (d *QualityDetector) Name() string { return "code_quality" }

func (d *QualityDetector) Detect(tree *parser.Node, _ string) ([]domain.Issue, error) {
	if tree == nil {
		return nil, errNoTree
	}

	var issues []domain.Issue
	tree.Walk(func(n *parser.Node) bool {
		switch {
		case n.Type == parser.NodeName:
			issues = append(issues, checkName(n)...)
		case n.IsFunction():
			issues = append(issues, checkFunction(n)...)
		case n.IsLoop():
			if n.Contains(func(c *parser.Node) bool { return c.IsLoop() }) {
				issues = append(issues, newIssue(domain.RuleNestedLoop, domain.SeverityMedium, n.Line(), 0.8,
					"Nested loop detected - consider refactoring"))
			}
		}
		return true
	})
	return issues, nil
}

func checkName(n *parser.Node) []domain.Issue {
	var issues []domain.Issue
	line := n.Line()

	if len([]rune(n.Name)) == 1 && !loopIndexNames[n.Name] {
		issues = append(issues, newIssue(domain.RuleShortName, domain.SeverityLow, line, 0.8,
			"Single letter variable '%s' detected - consider using more descriptive names", n.Name))
	}

	if !isLower(n.Name) && !strings.Contains(n.Name, "_") {
		issues = append(issues, newIssue(domain.RuleNamingConvention, domain.SeverityLow, line, 0.9,
			"Variable '%s' should use snake_case naming convention", n.Name))
	}

	return issues
}

func checkFunction(fn *parser.Node) []domain.Issue {
	var issues []domain.Issue
	line := fn.Line()

	branches := fn.Count(func(c *parser.Node) bool { return c.IsBranch() })
	if branches > constants.MaxFunctionBranches {
		issues = append(issues, newIssue(domain.RuleBranchComplexity, domain.SeverityMedium, line, 0.9,
			"Function '%s' has high cyclomatic complexity (%d branches)", fn.Name, branches))
	}

	if statements := len(fn.Body); statements > constants.MaxFunctionStatements {
		issues = append(issues, newIssue(domain.RuleFunctionLength, domain.SeverityMedium, line, 0.9,
			"Function '%s' is too long (%d lines)", fn.Name, statements))
	}

	if params := len(fn.PositionalParams()); params > constants.MaxFunctionParams {
		issues = append(issues, newIssue(domain.RuleTooManyParameters, domain.SeverityMedium, line, 0.9,
			"Function '%s' has too many parameters (%d)", fn.Name, params))
	}

	return issues
}

// isLower mirrors Python's str.islower: at least one cased rune and no
// upper or title case rune
func isLower(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			return false
		}
		if unicode.IsLower(r) {
			cased = true
		}
	}
	return cased
}
