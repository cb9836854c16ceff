package analyzer

import (
	"errors"

	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/parser"
)

// FileOpDetector reports open() calls on literal paths that do not exist
type FileOpDetector struct {
	files domain.FileChecker
}

// NewFileOpDetector creates a file-operation detector backed by files
func NewFileOpDetector(files domain.FileChecker) *FileOpDetector {
	return &FileOpDetector{files: files}
}

func (d *FileOpDetector) Name() string { return "file_operations" }

// Detect checks calls of the builtin open whose first positional argument is
// a plain string literal. Computed paths, f-strings and bytes are skipped.
func (d *FileOpDetector) Detect(tree *parser.Node, _ string) ([]domain.Issue, error) {
	if tree == nil {
		return nil, errNoTree
	}
	if d.files == nil {
		return nil, errors.New("no file checker configured")
	}

	var issues []domain.Issue
	tree.Walk(func(n *parser.Node) bool {
		if n.Type != parser.NodeCall || n.Callee == nil {
			return true
		}
		if n.Callee.Type != parser.NodeName || n.Callee.Name != "open" {
			return true
		}

		arg := unwrapParens(firstPositionalArg(n))
		if arg == nil || arg.Type != parser.NodeString {
			return true
		}

		if !d.files.Exists(arg.StringValue) {
			issues = append(issues, newIssue(domain.RuleMissingFile, domain.SeverityWarning, n.Line(), 0.8,
				"FileNotFoundError: File '%s' might not exist", arg.StringValue))
		}
		return true
	})
	return issues, nil
}

func firstPositionalArg(call *parser.Node) *parser.Node {
	for _, arg := range call.Arguments {
		switch arg.Type {
		case parser.NodeKeywordArgument, "dictionary_splat":
			continue
		}
		return arg
	}
	return nil
}
