package parser

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Parser wraps tree-sitter parser for Python. A Parser is not safe for
// concurrent use; create one per goroutine.
type Parser struct {
	parser   *sitter.Parser
	language *sitter.Language
}

// NewParser creates a new Python parser
func NewParser() *Parser {
	parser := sitter.NewParser()
	lang := python.GetLanguage()
	parser.SetLanguage(lang)

	return &Parser{
		parser:   parser,
		language: lang,
	}
}

// ParseFile parses a Python file. A source the grammar or CPython 3 rejects
// yields a *SyntaxError naming the first offending line.
func (p *Parser) ParseFile(ctx context.Context, filename string, source []byte) (*Node, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse file %s: %v", filename, err)
	}
	defer tree.Close()

	rootNode := tree.RootNode()
	if rootNode == nil {
		return nil, fmt.Errorf("no root node in parse tree for %s", filename)
	}

	if rootNode.HasError() {
		if synErr := findSyntaxError(rootNode, source); synErr != nil {
			return nil, synErr
		}
	}
	if synErr := validate(rootNode, source); synErr != nil {
		return nil, synErr
	}

	// Build our internal AST from tree-sitter CST
	builder := NewASTBuilder(filename, source)
	ast := builder.Build(rootNode)

	return ast, nil
}

// Parse parses Python source code
func (p *Parser) Parse(ctx context.Context, source []byte) (*Node, error) {
	return p.ParseFile(ctx, "<input>", source)
}

// ParseString parses Python source code from a string
func (p *Parser) ParseString(source string) (*Node, error) {
	return p.Parse(context.Background(), []byte(source))
}

// Close closes the parser and frees resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// ParseSource parses a single source with a throwaway parser
func ParseSource(ctx context.Context, filename string, source []byte) (*Node, error) {
	parser := NewParser()
	defer parser.Close()

	return parser.ParseFile(ctx, filename, source)
}

// findSyntaxError returns the first ERROR or MISSING node in document order
func findSyntaxError(n *sitter.Node, source []byte) *SyntaxError {
	if n == nil {
		return nil
	}

	line := int(n.StartPoint().Row) + 1

	if n.IsMissing() {
		return &SyntaxError{
			Line:    line,
			Column:  int(n.StartPoint().Column),
			Message: fmt.Sprintf("expected '%s'", n.Type()),
		}
	}

	if n.Type() == "ERROR" {
		return &SyntaxError{
			Line:    line,
			Column:  int(n.StartPoint().Column),
			Message: invalidSyntaxMessage(n.Content(source)),
		}
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || !(child.HasError() || child.IsMissing()) {
			continue
		}
		if synErr := findSyntaxError(child, source); synErr != nil {
			return synErr
		}
	}

	return nil
}

const maxSnippetLength = 20

func invalidSyntaxMessage(text string) string {
	snippet := strings.TrimSpace(strings.SplitN(text, "\n", 2)[0])
	if snippet == "" {
		return "invalid syntax"
	}
	if r := []rune(snippet); len(r) > maxSnippetLength {
		snippet = string(r[:maxSnippetLength]) + "..."
	}
	return fmt.Sprintf("invalid syntax near %q", snippet)
}
