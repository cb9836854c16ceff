package analyzer

import (
	"errors"

	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/parser"
)

var errNoTree = errors.New("no syntax tree")

// ImportDetector reports imports the resolver cannot find
type ImportDetector struct {
	resolver domain.ModuleResolver
}

// NewImportDetector creates an import detector backed by resolver
func NewImportDetector(resolver domain.ModuleResolver) *ImportDetector {
	return &ImportDetector{resolver: resolver}
}

func (d *ImportDetector) Name() string { return "imports" }

// Detect asks the resolver about every absolute module named by an import
// statement. Relative imports refer to the surrounding package and are
// not checked.
func (d *ImportDetector) Detect(tree *parser.Node, _ string) ([]domain.Issue, error) {
	if tree == nil {
		return nil, errNoTree
	}
	if d.resolver == nil {
		return nil, errors.New("no module resolver configured")
	}

	var issues []domain.Issue
	tree.Walk(func(n *parser.Node) bool {
		if n.Type != parser.NodeImport && n.Type != parser.NodeImportFrom {
			return true
		}
		for _, mod := range n.Modules {
			if mod.Level > 0 || mod.Name == "" {
				continue
			}
			if !d.resolver.IsResolvable(mod.Name) {
				issues = append(issues, newIssue(domain.RuleUnresolvedImport, domain.SeverityError, n.Line(), 1.0,
					"ModuleNotFoundError: No module named '%s'", mod.Name))
			}
		}
		return false
	})
	return issues, nil
}
