package parser

import (
	"bytes"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// The tree-sitter grammar is more permissive than CPython: it keeps the
// Python 2 print and exec statements, recovers missing indentation as an
// empty block and accepts any indentation width. validate rejects what
// CPython 3 would reject.

const tabSize = 8

var clauseTypes = map[string]bool{
	"elif_clause":         true,
	"else_clause":         true,
	"except_clause":       true,
	"except_group_clause": true,
	"finally_clause":      true,
}

var clauseKeywords = map[string]bool{
	"elif":    true,
	"else":    true,
	"except":  true,
	"finally": true,
}

// headerNames name compound statements in "expected an indented block" errors
var headerNames = map[string]string{
	"function_definition": "function definition",
	"class_definition":    "class definition",
	"if_statement":        "'if' statement",
	"elif_clause":         "'elif' statement",
	"else_clause":         "'else' statement",
	"for_statement":       "'for' statement",
	"while_statement":     "'while' statement",
	"try_statement":       "'try' statement",
	"except_clause":       "'except' statement",
	"finally_clause":      "'finally' statement",
	"with_statement":      "'with' statement",
	"match_statement":     "'match' statement",
	"case_clause":         "'case' statement",
}

// validate checks an error-free tree for constructs CPython 3 rejects and
// returns the first one found
func validate(root *sitter.Node, source []byte) *SyntaxError {
	if synErr := checkNodes(root, source); synErr != nil {
		return synErr
	}
	return checkIndentation(root, source)
}

func checkNodes(n *sitter.Node, source []byte) *SyntaxError {
	if n == nil {
		return nil
	}

	switch n.Type() {
	case "print_statement", "exec_statement":
		if !isParenthesizedCall(n) {
			keyword := "print"
			if n.Type() == "exec_statement" {
				keyword = "exec"
			}
			return nodeError(n, fmt.Sprintf("Missing parentheses in call to '%s'. Did you mean %s(...)?", keyword, keyword))
		}
	case "block":
		if statementCount(n) == 0 {
			return emptyBlockError(n)
		}
	case "for_in_clause":
		if comma := unparenthesizedTuple(n); comma != nil {
			msg := "invalid syntax"
			if gen := n.Parent(); gen != nil && gen.Type() == "generator_expression" &&
				gen.Parent() != nil && gen.Parent().Type() == "call" {
				msg = "Generator expression must be parenthesized"
			}
			return nodeError(comma, msg)
		}
	}

	if clauseTypes[n.Type()] || (!n.IsNamed() && clauseKeywords[n.Type()]) {
		if p := n.Parent(); p != nil && (p.Type() == "module" || p.Type() == "block") {
			return nodeError(n, "invalid syntax")
		}
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		if synErr := checkNodes(n.Child(i), source); synErr != nil {
			return synErr
		}
	}
	return nil
}

// isParenthesizedCall reports a print or exec statement that Python 3 reads
// as a call, e.g. print ("x")
func isParenthesizedCall(n *sitter.Node) bool {
	if n.NamedChildCount() != 1 {
		return false
	}
	switch n.NamedChild(0).Type() {
	case "parenthesized_expression", "tuple":
		return true
	}
	return false
}

// unparenthesizedTuple returns the comma of "for x in a, b"
func unparenthesizedTuple(n *sitter.Node) *sitter.Node {
	seenIn := false
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "in":
			seenIn = true
		case ",":
			if seenIn {
				return child
			}
		}
	}
	return nil
}

func statementCount(block *sitter.Node) int {
	count := 0
	for i := 0; i < int(block.NamedChildCount()); i++ {
		if block.NamedChild(i).Type() != "comment" {
			count++
		}
	}
	return count
}

func emptyBlockError(block *sitter.Node) *SyntaxError {
	headerRow := block.StartPoint().Row
	if prev := block.PrevSibling(); prev != nil {
		headerRow = prev.EndPoint().Row
	}
	return &SyntaxError{
		Line:    int(headerRow) + 2,
		Message: indentedBlockMessage(block.Parent()),
	}
}

func indentedBlockMessage(header *sitter.Node) string {
	if header == nil {
		return "expected an indented block"
	}
	name, ok := headerNames[header.Type()]
	if !ok {
		return "expected an indented block"
	}
	return fmt.Sprintf("expected an indented block after %s on line %d", name, header.StartPoint().Row+1)
}

func nodeError(n *sitter.Node, msg string) *SyntaxError {
	return &SyntaxError{
		Line:    int(n.StartPoint().Row) + 1,
		Column:  int(n.StartPoint().Column),
		Message: msg,
	}
}

// logicalLine is a statement or clause that begins a physical line
type logicalLine struct {
	node       *sitter.Node
	firstInBlk bool
	block      *sitter.Node
}

// checkIndentation replays the tokenizer's indentation stack over the lines
// that start a statement or clause
func checkIndentation(root *sitter.Node, source []byte) *SyntaxError {
	lines := bytes.Split(source, []byte("\n"))

	var starts []logicalLine
	var collect func(n *sitter.Node)
	var collectBody func(container *sitter.Node)

	collect = func(n *sitter.Node) {
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			switch {
			case child == nil:
			case child.Type() == "block":
				collectBody(child)
			case clauseTypes[child.Type()]:
				starts = append(starts, logicalLine{node: child})
				collect(child)
			default:
				collect(child)
			}
		}
	}
	collectBody = func(container *sitter.Node) {
		first := true
		for i := 0; i < int(container.NamedChildCount()); i++ {
			stmt := container.NamedChild(i)
			if stmt == nil || stmt.Type() == "comment" {
				continue
			}
			starts = append(starts, logicalLine{
				node:       stmt,
				firstInBlk: first && container.Type() == "block",
				block:      container,
			})
			first = false
			collect(stmt)
		}
	}
	collectBody(root)

	stack := []int{0}
	for _, start := range starts {
		row := int(start.node.StartPoint().Row)
		if row >= len(lines) {
			continue
		}
		width, prefix, ok := indentation(lines[row])
		if !ok || prefix != int(start.node.StartPoint().Column) {
			// something precedes the node on its line
			continue
		}

		top := stack[len(stack)-1]
		switch {
		case start.firstInBlk:
			if width <= top {
				return &SyntaxError{Line: row + 1, Message: indentedBlockMessage(start.block.Parent())}
			}
			stack = append(stack, width)
		case width > top:
			return &SyntaxError{Line: row + 1, Column: prefix, Message: "unexpected indent"}
		case width < top:
			for len(stack) > 1 && width < stack[len(stack)-1] {
				stack = stack[:len(stack)-1]
			}
			if width != stack[len(stack)-1] {
				return &SyntaxError{Line: row + 1, Column: prefix, Message: "unindent does not match any outer indentation level"}
			}
		}
	}
	return nil
}

// indentation returns the column width of the leading whitespace of line
// and its length in bytes
func indentation(line []byte) (width, prefix int, ok bool) {
	for prefix < len(line) {
		switch line[prefix] {
		case ' ':
			width++
		case '\t':
			width = (width/tabSize + 1) * tabSize
		case '\f':
			width = 0
		default:
			return width, prefix, true
		}
		prefix++
	}
	return width, prefix, false
}
