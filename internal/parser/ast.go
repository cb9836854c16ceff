package parser

import "fmt"

// NodeType represents the type of AST node
type NodeType string

// Python AST node types
const (
	// Module and definitions
	NodeModule      NodeType = "Module"
	NodeFunctionDef NodeType = "FunctionDef"
	NodeClassDef    NodeType = "ClassDef"
	NodeLambda      NodeType = "Lambda"
	NodeParameter   NodeType = "Parameter"
	NodeDecorator   NodeType = "Decorator"

	// Control flow statements. An elif clause is represented as a nested If.
	NodeIf       NodeType = "If"
	NodeElse     NodeType = "Else"
	NodeFor      NodeType = "For"
	NodeWhile    NodeType = "While"
	NodeBreak    NodeType = "Break"
	NodeContinue NodeType = "Continue"
	NodeReturn   NodeType = "Return"
	NodeRaise    NodeType = "Raise"
	NodePass     NodeType = "Pass"
	NodeWith     NodeType = "With"

	// Exception handling
	NodeTry           NodeType = "Try"
	NodeExceptHandler NodeType = "ExceptHandler"
	NodeFinally       NodeType = "Finally"

	// Scope declarations
	NodeGlobal   NodeType = "Global"
	NodeNonlocal NodeType = "Nonlocal"

	// Imports
	NodeImport     NodeType = "Import"
	NodeImportFrom NodeType = "ImportFrom"

	// Expressions
	NodeExpressionStatement NodeType = "Expr"
	NodeAssign              NodeType = "Assign"
	NodeCall                NodeType = "Call"
	NodeAttribute           NodeType = "Attribute"
	NodeKeywordArgument     NodeType = "Keyword"
	NodeName                NodeType = "Name"

	// Literals
	NodeString   NodeType = "Str"
	NodeTrue     NodeType = "True"
	NodeFalse    NodeType = "False"
	NodeNone     NodeType = "None"
	NodeNumber   NodeType = "Num"
	NodeFString  NodeType = "JoinedStr"
	NodeBytes    NodeType = "Bytes"
	NodeEllipsis NodeType = "Ellipsis"
)

// ParamKind classifies a function parameter
type ParamKind int

const (
	// ParamPositional is a regular positional-or-keyword parameter
	ParamPositional ParamKind = iota
	// ParamPositionalOnly precedes a "/" separator
	ParamPositionalOnly
	// ParamVarArgs is *args
	ParamVarArgs
	// ParamKeywordOnly follows "*" or *args
	ParamKeywordOnly
	// ParamVarKeywords is **kwargs
	ParamVarKeywords
)

// Location represents the position of a node in the source code
type Location struct {
	File      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// String returns a string representation of the location
func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.StartLine, l.StartCol)
}

// ImportedModule is one module named by an import statement
type ImportedModule struct {
	Name  string // dotted module path, empty for "from . import x"
	Level int    // number of leading dots in a relative import
}

// Node represents an AST node
type Node struct {
	Type     NodeType
	Children []*Node
	Location Location
	Parent   *Node

	// Name of a definition, parameter or identifier reference
	Name string

	// Function-related fields
	Params     []*Node // Parameter nodes
	Decorators []*Node
	Async      bool
	ParamKind  ParamKind

	// Statement bodies. Body holds the direct statements of the node's block.
	Body      []*Node
	Orelse    []*Node // elif (nested If) / else clauses
	Handlers  []*Node // except clauses
	Finalizer *Node

	// Control flow fields
	Test   *Node // condition of if/while, filter of an except clause
	Target *Node // loop target
	Iter   *Node // loop iterable

	// Call fields
	Callee    *Node
	Arguments []*Node

	// Attribute fields
	Object *Node

	// Scope and import fields
	Names   []string
	Modules []ImportedModule

	// Literal fields
	Raw         string // source text of a literal
	StringValue string // decoded value of a plain string literal
}

// NewNode creates a new AST node
func NewNode(nodeType NodeType) *Node {
	return &Node{
		Type: nodeType,
	}
}

// AddChild adds a child node
func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Line returns the 1-based start line of the node
func (n *Node) Line() int {
	return n.Location.StartLine
}

// Walk traverses the AST depth-first and calls the visitor function for each node
// If the visitor returns false, traversal of that branch is stopped
func (n *Node) Walk(visitor func(*Node) bool) {
	if n == nil {
		return
	}

	if !visitor(n) {
		return
	}

	for _, dec := range n.Decorators {
		dec.Walk(visitor)
	}
	for _, param := range n.Params {
		param.Walk(visitor)
	}
	if n.Test != nil {
		n.Test.Walk(visitor)
	}
	if n.Target != nil {
		n.Target.Walk(visitor)
	}
	if n.Iter != nil {
		n.Iter.Walk(visitor)
	}
	if n.Callee != nil {
		n.Callee.Walk(visitor)
	}
	for _, arg := range n.Arguments {
		arg.Walk(visitor)
	}
	if n.Object != nil {
		n.Object.Walk(visitor)
	}
	for _, child := range n.Children {
		child.Walk(visitor)
	}
	for _, stmt := range n.Body {
		stmt.Walk(visitor)
	}
	for _, alt := range n.Orelse {
		alt.Walk(visitor)
	}
	for _, handler := range n.Handlers {
		handler.Walk(visitor)
	}
	if n.Finalizer != nil {
		n.Finalizer.Walk(visitor)
	}
}

// Contains reports whether any node strictly below n satisfies pred
func (n *Node) Contains(pred func(*Node) bool) bool {
	found := false
	n.Walk(func(c *Node) bool {
		if found {
			return false
		}
		if c != n && pred(c) {
			found = true
			return false
		}
		return true
	})
	return found
}

// Count returns how many nodes strictly below n satisfy pred
func (n *Node) Count(pred func(*Node) bool) int {
	count := 0
	n.Walk(func(c *Node) bool {
		if c != n && pred(c) {
			count++
		}
		return true
	})
	return count
}

// String returns a string representation of the node
func (n *Node) String() string {
	if n.Name != "" {
		return fmt.Sprintf("%s(%s) at %s", n.Type, n.Name, n.Location)
	}
	return fmt.Sprintf("%s at %s", n.Type, n.Location)
}

// IsLoop returns true if the node is a for or while loop
func (n *Node) IsLoop() bool {
	return n.Type == NodeFor || n.Type == NodeWhile
}

// IsBranch returns true if the node is an if/elif or a loop
func (n *Node) IsBranch() bool {
	return n.Type == NodeIf || n.IsLoop()
}

// IsFunction returns true if the node is a function definition
func (n *Node) IsFunction() bool {
	return n.Type == NodeFunctionDef
}

// PositionalParams returns the regular positional parameters, excluding
// positional-only, keyword-only and variadic ones
func (n *Node) PositionalParams() []*Node {
	var params []*Node
	for _, p := range n.Params {
		if p.ParamKind == ParamPositional {
			params = append(params, p)
		}
	}
	return params
}
