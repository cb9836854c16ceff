// Package testutil provides helper functions for testing pyreview components
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/parser"
)

// CreateTestAST creates a test AST from Python source code
func CreateTestAST(t *testing.T, source string) *parser.Node {
	t.Helper()
	p := parser.NewParser()
	defer p.Close()

	ast, err := p.ParseString(source)
	if err != nil {
		t.Fatalf("Failed to parse test code: %v", err)
	}
	return ast
}

// FindFunctionInAST finds the first function node with the given name
func FindFunctionInAST(ast *parser.Node, name string) *parser.Node {
	var found *parser.Node
	ast.Walk(func(n *parser.Node) bool {
		if found != nil {
			return false
		}
		if n.IsFunction() && n.Name == name {
			found = n
			return false
		}
		return true
	})
	return found
}

// CountNodesOfType counts nodes of a specific type in an AST
func CountNodesOfType(ast *parser.Node, nodeType parser.NodeType) int {
	count := 0
	ast.Walk(func(n *parser.Node) bool {
		if n.Type == nodeType {
			count++
		}
		return true
	})
	return count
}

// WriteFiles writes name -> content pairs below dir, creating parent
// directories as needed
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
}

// StaticResolver resolves exactly the listed modules
type StaticResolver map[string]bool

// IsResolvable implements domain.ModuleResolver
func (r StaticResolver) IsResolvable(module string) bool {
	return r[module]
}

// StaticFiles reports exactly the listed paths as existing
type StaticFiles map[string]bool

// Exists implements domain.FileChecker
func (f StaticFiles) Exists(path string) bool {
	return f[path]
}

// ScorerFunc adapts a function to domain.QualityScorer
type ScorerFunc func(ctx context.Context, source string) (float64, error)

// Score implements domain.QualityScorer
func (f ScorerFunc) Score(ctx context.Context, source string) (float64, error) {
	return f(ctx, source)
}

// FixedScorer always returns the same score
func FixedScorer(score float64) domain.QualityScorer {
	return ScorerFunc(func(context.Context, string) (float64, error) {
		return score, nil
	})
}

// FailingScorer always fails with err
func FailingScorer(err error) domain.QualityScorer {
	return ScorerFunc(func(context.Context, string) (float64, error) {
		return 0, err
	})
}
