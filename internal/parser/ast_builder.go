package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// ASTBuilder builds our internal AST from tree-sitter CST
type ASTBuilder struct {
	filename string
	source   []byte
}

// NewASTBuilder creates a new AST builder
func NewASTBuilder(filename string, source []byte) *ASTBuilder {
	return &ASTBuilder{
		filename: filename,
		source:   source,
	}
}

// Build builds the AST from a tree-sitter node
func (b *ASTBuilder) Build(tsNode *sitter.Node) *Node {
	if tsNode == nil {
		return nil
	}

	return b.buildNode(tsNode)
}

// buildNode converts a tree-sitter node to our internal AST node
func (b *ASTBuilder) buildNode(tsNode *sitter.Node) *Node {
	if tsNode == nil {
		return nil
	}

	switch tsNode.Type() {
	case "module":
		return b.buildModule(tsNode)
	case "function_definition":
		return b.buildFunctionDefinition(tsNode)
	case "decorated_definition":
		return b.buildDecoratedDefinition(tsNode)
	case "class_definition":
		return b.buildClassDefinition(tsNode)
	case "lambda":
		return b.buildLambda(tsNode)
	case "if_statement", "elif_clause":
		return b.buildIf(tsNode)
	case "else_clause":
		return b.buildElse(tsNode)
	case "for_statement":
		return b.buildFor(tsNode)
	case "while_statement":
		return b.buildWhile(tsNode)
	case "try_statement":
		return b.buildTry(tsNode)
	case "except_clause", "except_group_clause":
		return b.buildExceptClause(tsNode)
	case "finally_clause":
		return b.buildFinally(tsNode)
	case "with_statement":
		return b.buildWith(tsNode)
	case "break_statement":
		return b.buildLeaf(tsNode, NodeBreak)
	case "continue_statement":
		return b.buildLeaf(tsNode, NodeContinue)
	case "pass_statement":
		return b.buildLeaf(tsNode, NodePass)
	case "return_statement":
		return b.buildWithChildren(tsNode, NodeReturn)
	case "raise_statement":
		return b.buildWithChildren(tsNode, NodeRaise)
	case "global_statement":
		return b.buildScopeDeclaration(tsNode, NodeGlobal)
	case "nonlocal_statement":
		return b.buildScopeDeclaration(tsNode, NodeNonlocal)
	case "import_statement":
		return b.buildImport(tsNode)
	case "import_from_statement":
		return b.buildImportFrom(tsNode)
	case "future_import_statement":
		return b.buildFutureImport(tsNode)
	case "expression_statement":
		return b.buildWithChildren(tsNode, NodeExpressionStatement)
	case "assignment", "augmented_assignment":
		return b.buildWithChildren(tsNode, NodeAssign)
	case "call":
		return b.buildCall(tsNode)
	case "attribute":
		return b.buildAttribute(tsNode)
	case "keyword_argument":
		return b.buildKeywordArgument(tsNode)
	case "identifier":
		return b.buildIdentifier(tsNode)
	case "string":
		return b.buildString(tsNode)
	case "concatenated_string":
		return b.buildConcatenatedString(tsNode)
	case "true":
		return b.buildLiteral(tsNode, NodeTrue)
	case "false":
		return b.buildLiteral(tsNode, NodeFalse)
	case "none":
		return b.buildLiteral(tsNode, NodeNone)
	case "integer", "float":
		return b.buildLiteral(tsNode, NodeNumber)
	case "ellipsis":
		return b.buildLiteral(tsNode, NodeEllipsis)
	default:
		// For unknown nodes, create a generic node and process named children
		return b.buildGenericNode(tsNode)
	}
}

// buildModule builds the root module node
func (b *ASTBuilder) buildModule(tsNode *sitter.Node) *Node {
	node := NewNode(NodeModule)
	node.Location = b.getLocation(tsNode)
	node.Body = b.buildStatements(tsNode, node)
	return node
}

// buildFunctionDefinition builds a def / async def node
func (b *ASTBuilder) buildFunctionDefinition(tsNode *sitter.Node) *Node {
	node := NewNode(NodeFunctionDef)
	node.Location = b.getLocation(tsNode)

	if first := tsNode.Child(0); first != nil && first.Type() == "async" {
		node.Async = true
	}

	if nameNode := b.getChildByFieldName(tsNode, "name"); nameNode != nil {
		node.Name = nameNode.Content(b.source)
	}

	if paramsNode := b.getChildByFieldName(tsNode, "parameters"); paramsNode != nil {
		node.Params = b.buildParameters(paramsNode, node)
	}

	if returnType := b.getChildByFieldName(tsNode, "return_type"); returnType != nil {
		node.AddChild(b.buildNode(returnType))
	}

	node.Body = b.buildStatements(b.getChildByFieldName(tsNode, "body"), node)
	return node
}

// buildDecoratedDefinition unwraps the definition and attaches its decorators
func (b *ASTBuilder) buildDecoratedDefinition(tsNode *sitter.Node) *Node {
	defNode := b.getChildByFieldName(tsNode, "definition")
	if defNode == nil {
		return b.buildGenericNode(tsNode)
	}

	node := b.buildNode(defNode)
	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if child == nil || child.Type() != "decorator" {
			continue
		}
		dec := NewNode(NodeDecorator)
		dec.Location = b.getLocation(child)
		for j := 0; j < int(child.NamedChildCount()); j++ {
			if expr := child.NamedChild(j); expr != nil && !b.isTrivia(expr) {
				dec.AddChild(b.buildNode(expr))
			}
		}
		dec.Parent = node
		node.Decorators = append(node.Decorators, dec)
	}
	return node
}

// buildClassDefinition builds a class node
func (b *ASTBuilder) buildClassDefinition(tsNode *sitter.Node) *Node {
	node := NewNode(NodeClassDef)
	node.Location = b.getLocation(tsNode)

	if nameNode := b.getChildByFieldName(tsNode, "name"); nameNode != nil {
		node.Name = nameNode.Content(b.source)
	}

	if supers := b.getChildByFieldName(tsNode, "superclasses"); supers != nil {
		node.Arguments = b.buildArguments(supers, node)
	}

	node.Body = b.buildStatements(b.getChildByFieldName(tsNode, "body"), node)
	return node
}

// buildLambda builds a lambda expression
func (b *ASTBuilder) buildLambda(tsNode *sitter.Node) *Node {
	node := NewNode(NodeLambda)
	node.Location = b.getLocation(tsNode)

	if paramsNode := b.getChildByFieldName(tsNode, "parameters"); paramsNode != nil {
		node.Params = b.buildParameters(paramsNode, node)
	}
	if bodyNode := b.getChildByFieldName(tsNode, "body"); bodyNode != nil {
		node.AddChild(b.buildNode(bodyNode))
	}
	return node
}

// buildIf builds an if statement or an elif clause
func (b *ASTBuilder) buildIf(tsNode *sitter.Node) *Node {
	node := NewNode(NodeIf)
	node.Location = b.getLocation(tsNode)

	if condNode := b.getChildByFieldName(tsNode, "condition"); condNode != nil {
		node.Test = b.attach(node, b.buildNode(condNode))
	}

	node.Body = b.buildStatements(b.getChildByFieldName(tsNode, "consequence"), node)

	for _, alt := range b.getChildrenByFieldName(tsNode, "alternative") {
		node.Orelse = append(node.Orelse, b.attach(node, b.buildNode(alt)))
	}

	return node
}

// buildElse builds an else clause
func (b *ASTBuilder) buildElse(tsNode *sitter.Node) *Node {
	node := NewNode(NodeElse)
	node.Location = b.getLocation(tsNode)
	node.Body = b.buildStatements(b.getChildByFieldName(tsNode, "body"), node)
	return node
}

// buildFor builds a for / async for statement
func (b *ASTBuilder) buildFor(tsNode *sitter.Node) *Node {
	node := NewNode(NodeFor)
	node.Location = b.getLocation(tsNode)

	if first := tsNode.Child(0); first != nil && first.Type() == "async" {
		node.Async = true
	}
	if left := b.getChildByFieldName(tsNode, "left"); left != nil {
		node.Target = b.attach(node, b.buildNode(left))
	}
	if right := b.getChildByFieldName(tsNode, "right"); right != nil {
		node.Iter = b.attach(node, b.buildNode(right))
	}

	node.Body = b.buildStatements(b.getChildByFieldName(tsNode, "body"), node)

	if alt := b.getChildByFieldName(tsNode, "alternative"); alt != nil {
		node.Orelse = append(node.Orelse, b.attach(node, b.buildNode(alt)))
	}
	return node
}

// buildWhile builds a while statement
func (b *ASTBuilder) buildWhile(tsNode *sitter.Node) *Node {
	node := NewNode(NodeWhile)
	node.Location = b.getLocation(tsNode)

	if condNode := b.getChildByFieldName(tsNode, "condition"); condNode != nil {
		node.Test = b.attach(node, b.buildNode(condNode))
	}

	node.Body = b.buildStatements(b.getChildByFieldName(tsNode, "body"), node)

	if alt := b.getChildByFieldName(tsNode, "alternative"); alt != nil {
		node.Orelse = append(node.Orelse, b.attach(node, b.buildNode(alt)))
	}
	return node
}

// buildTry builds a try statement with its handlers
func (b *ASTBuilder) buildTry(tsNode *sitter.Node) *Node {
	node := NewNode(NodeTry)
	node.Location = b.getLocation(tsNode)

	node.Body = b.buildStatements(b.getChildByFieldName(tsNode, "body"), node)

	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "except_clause", "except_group_clause":
			node.Handlers = append(node.Handlers, b.attach(node, b.buildNode(child)))
		case "else_clause":
			node.Orelse = append(node.Orelse, b.attach(node, b.buildNode(child)))
		case "finally_clause":
			node.Finalizer = b.attach(node, b.buildNode(child))
		}
	}
	return node
}

// buildExceptClause builds an except handler. Test holds the exception type
// filter and is nil for a bare "except:".
func (b *ASTBuilder) buildExceptClause(tsNode *sitter.Node) *Node {
	node := NewNode(NodeExceptHandler)
	node.Location = b.getLocation(tsNode)

	afterAs := false
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil || b.isTrivia(child) {
			continue
		}
		switch child.Type() {
		case "except", "except*", ":", ",":
		case "as":
			afterAs = true
		case "block":
			node.Body = b.buildStatements(child, node)
		case "as_pattern":
			// except E as name
			if child.NamedChildCount() > 0 {
				node.Test = b.attach(node, b.buildNode(child.NamedChild(0)))
			}
			if alias := b.getChildByFieldName(child, "alias"); alias != nil {
				node.Name = strings.TrimSpace(alias.Content(b.source))
			}
		default:
			if afterAs {
				node.Name = child.Content(b.source)
				continue
			}
			if node.Test == nil && child.IsNamed() {
				node.Test = b.attach(node, b.buildNode(child))
			}
		}
	}
	return node
}

// buildFinally builds a finally clause
func (b *ASTBuilder) buildFinally(tsNode *sitter.Node) *Node {
	node := NewNode(NodeFinally)
	node.Location = b.getLocation(tsNode)
	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		if child := tsNode.NamedChild(i); child != nil && child.Type() == "block" {
			node.Body = b.buildStatements(child, node)
		}
	}
	return node
}

// buildWith builds a with statement
func (b *ASTBuilder) buildWith(tsNode *sitter.Node) *Node {
	node := NewNode(NodeWith)
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if child == nil || b.isTrivia(child) {
			continue
		}
		if child.Type() == "block" {
			node.Body = b.buildStatements(child, node)
			continue
		}
		node.AddChild(b.buildNode(child))
	}
	return node
}

// buildScopeDeclaration builds a global or nonlocal statement
func (b *ASTBuilder) buildScopeDeclaration(tsNode *sitter.Node, nodeType NodeType) *Node {
	node := NewNode(nodeType)
	node.Location = b.getLocation(tsNode)
	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		if child := tsNode.NamedChild(i); child != nil && child.Type() == "identifier" {
			node.Names = append(node.Names, child.Content(b.source))
		}
	}
	return node
}

// buildImport builds an "import a, b.c as d" statement
func (b *ASTBuilder) buildImport(tsNode *sitter.Node) *Node {
	node := NewNode(NodeImport)
	node.Location = b.getLocation(tsNode)

	for _, nameNode := range b.getChildrenByFieldName(tsNode, "name") {
		if name := b.importedName(nameNode); name != "" {
			node.Modules = append(node.Modules, ImportedModule{Name: name})
		}
	}
	return node
}

// buildImportFrom builds a "from x import y" statement
func (b *ASTBuilder) buildImportFrom(tsNode *sitter.Node) *Node {
	node := NewNode(NodeImportFrom)
	node.Location = b.getLocation(tsNode)

	moduleNode := b.getChildByFieldName(tsNode, "module_name")
	if moduleNode == nil {
		return node
	}

	module := ImportedModule{}
	if moduleNode.Type() == "relative_import" {
		for i := 0; i < int(moduleNode.NamedChildCount()); i++ {
			child := moduleNode.NamedChild(i)
			if child == nil {
				continue
			}
			switch child.Type() {
			case "import_prefix":
				module.Level = strings.Count(child.Content(b.source), ".")
			case "dotted_name":
				module.Name = child.Content(b.source)
			}
		}
	} else {
		module.Name = moduleNode.Content(b.source)
	}

	node.Modules = append(node.Modules, module)
	return node
}

// buildFutureImport builds a "from __future__ import x" statement
func (b *ASTBuilder) buildFutureImport(tsNode *sitter.Node) *Node {
	node := NewNode(NodeImportFrom)
	node.Location = b.getLocation(tsNode)
	node.Modules = append(node.Modules, ImportedModule{Name: "__future__"})
	return node
}

// importedName returns the module path of a dotted_name or aliased_import
func (b *ASTBuilder) importedName(tsNode *sitter.Node) string {
	if tsNode.Type() == "aliased_import" {
		if nameNode := b.getChildByFieldName(tsNode, "name"); nameNode != nil {
			return nameNode.Content(b.source)
		}
		return ""
	}
	return tsNode.Content(b.source)
}

// buildCall builds a call expression
func (b *ASTBuilder) buildCall(tsNode *sitter.Node) *Node {
	node := NewNode(NodeCall)
	node.Location = b.getLocation(tsNode)

	if fn := b.getChildByFieldName(tsNode, "function"); fn != nil {
		node.Callee = b.attach(node, b.buildNode(fn))
	}

	if args := b.getChildByFieldName(tsNode, "arguments"); args != nil {
		if args.Type() == "argument_list" {
			node.Arguments = b.buildArguments(args, node)
		} else {
			// Bare generator argument: f(x for x in y)
			node.Arguments = []*Node{b.attach(node, b.buildNode(args))}
		}
	}
	return node
}

// buildArguments builds the entries of an argument_list
func (b *ASTBuilder) buildArguments(tsNode *sitter.Node, parent *Node) []*Node {
	var args []*Node
	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if child == nil || b.isTrivia(child) {
			continue
		}
		if arg := b.buildNode(child); arg != nil {
			args = append(args, b.attach(parent, arg))
		}
	}
	return args
}

// buildAttribute builds an attribute access. The attribute name is stored in
// Name and is not an identifier reference.
func (b *ASTBuilder) buildAttribute(tsNode *sitter.Node) *Node {
	node := NewNode(NodeAttribute)
	node.Location = b.getLocation(tsNode)

	if obj := b.getChildByFieldName(tsNode, "object"); obj != nil {
		node.Object = b.attach(node, b.buildNode(obj))
	}
	if attr := b.getChildByFieldName(tsNode, "attribute"); attr != nil {
		node.Name = attr.Content(b.source)
	}
	return node
}

// buildKeywordArgument builds name=value inside a call
func (b *ASTBuilder) buildKeywordArgument(tsNode *sitter.Node) *Node {
	node := NewNode(NodeKeywordArgument)
	node.Location = b.getLocation(tsNode)

	if name := b.getChildByFieldName(tsNode, "name"); name != nil {
		node.Name = name.Content(b.source)
	}
	if value := b.getChildByFieldName(tsNode, "value"); value != nil {
		node.AddChild(b.buildNode(value))
	}
	return node
}

// buildIdentifier builds an identifier reference
func (b *ASTBuilder) buildIdentifier(tsNode *sitter.Node) *Node {
	node := NewNode(NodeName)
	node.Location = b.getLocation(tsNode)
	node.Name = tsNode.Content(b.source)
	return node
}

// buildString builds a string, bytes or f-string literal
func (b *ASTBuilder) buildString(tsNode *sitter.Node) *Node {
	raw := tsNode.Content(b.source)
	value, nodeType := decodeStringLiteral(raw)

	node := NewNode(nodeType)
	node.Location = b.getLocation(tsNode)
	node.Raw = raw
	node.StringValue = value

	if nodeType == NodeFString {
		// Expressions inside {...} are regular expressions
		for i := 0; i < int(tsNode.NamedChildCount()); i++ {
			child := tsNode.NamedChild(i)
			if child != nil && child.Type() == "interpolation" {
				node.AddChild(b.buildGenericNode(child))
			}
		}
	}
	return node
}

// buildConcatenatedString folds implicitly concatenated literals into one
func (b *ASTBuilder) buildConcatenatedString(tsNode *sitter.Node) *Node {
	node := NewNode(NodeString)
	node.Location = b.getLocation(tsNode)
	node.Raw = tsNode.Content(b.source)

	var sb strings.Builder
	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if child == nil || child.Type() != "string" {
			continue
		}
		part := b.buildString(child)
		if part.Type != NodeString {
			// Any f-string or bytes part changes the literal kind
			node.Type = part.Type
		}
		for _, c := range part.Children {
			node.AddChild(c)
		}
		sb.WriteString(part.StringValue)
	}
	node.StringValue = sb.String()
	return node
}

// buildLiteral builds a constant literal
func (b *ASTBuilder) buildLiteral(tsNode *sitter.Node, nodeType NodeType) *Node {
	node := NewNode(nodeType)
	node.Location = b.getLocation(tsNode)
	node.Raw = tsNode.Content(b.source)
	return node
}

// buildLeaf builds a statement without children
func (b *ASTBuilder) buildLeaf(tsNode *sitter.Node, nodeType NodeType) *Node {
	node := NewNode(nodeType)
	node.Location = b.getLocation(tsNode)
	return node
}

// buildWithChildren builds a typed node whose named children are expressions
func (b *ASTBuilder) buildWithChildren(tsNode *sitter.Node, nodeType NodeType) *Node {
	node := b.buildGenericNode(tsNode)
	node.Type = nodeType
	return node
}

// buildGenericNode builds a generic node for unknown types
func (b *ASTBuilder) buildGenericNode(tsNode *sitter.Node) *Node {
	node := NewNode(NodeType(tsNode.Type()))
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if child != nil && !b.isTrivia(child) {
			node.AddChild(b.buildNode(child))
		}
	}

	return node
}

// buildStatements builds the direct statements of a block or module
func (b *ASTBuilder) buildStatements(tsNode *sitter.Node, parent *Node) []*Node {
	if tsNode == nil {
		return nil
	}

	var stmts []*Node
	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if child == nil || b.isTrivia(child) {
			continue
		}
		if stmt := b.buildNode(child); stmt != nil {
			stmts = append(stmts, b.attach(parent, stmt))
		}
	}
	return stmts
}

// buildParameters builds a parameter list, classifying each parameter by kind
func (b *ASTBuilder) buildParameters(tsNode *sitter.Node, parent *Node) []*Node {
	var params []*Node
	seenStar := false

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil || b.isTrivia(child) {
			continue
		}

		switch child.Type() {
		case "(", ")", ",", ":":
			continue
		case "positional_separator", "/":
			for _, p := range params {
				if p.ParamKind == ParamPositional {
					p.ParamKind = ParamPositionalOnly
				}
			}
			continue
		case "keyword_separator", "*":
			seenStar = true
			continue
		}

		param := b.buildParameter(child)
		switch param.ParamKind {
		case ParamVarArgs:
			seenStar = true
		case ParamPositional:
			if seenStar {
				param.ParamKind = ParamKeywordOnly
			}
		}
		params = append(params, b.attach(parent, param))
	}

	return params
}

// buildParameter builds one parameter. Default values and annotations become
// children so that the identifiers they reference are visited.
func (b *ASTBuilder) buildParameter(tsNode *sitter.Node) *Node {
	node := NewNode(NodeParameter)
	node.Location = b.getLocation(tsNode)
	node.ParamKind = ParamPositional

	switch tsNode.Type() {
	case "identifier":
		node.Name = tsNode.Content(b.source)
	case "list_splat_pattern":
		node.ParamKind = ParamVarArgs
		node.Name = b.splatName(tsNode)
	case "dictionary_splat_pattern":
		node.ParamKind = ParamVarKeywords
		node.Name = b.splatName(tsNode)
	case "default_parameter", "typed_default_parameter":
		if name := b.getChildByFieldName(tsNode, "name"); name != nil {
			node.Name = name.Content(b.source)
		}
		if typ := b.getChildByFieldName(tsNode, "type"); typ != nil {
			node.AddChild(b.buildNode(typ))
		}
		if value := b.getChildByFieldName(tsNode, "value"); value != nil {
			node.AddChild(b.buildNode(value))
		}
	case "typed_parameter":
		if tsNode.NamedChildCount() > 0 {
			inner := tsNode.NamedChild(0)
			switch inner.Type() {
			case "list_splat_pattern":
				node.ParamKind = ParamVarArgs
				node.Name = b.splatName(inner)
			case "dictionary_splat_pattern":
				node.ParamKind = ParamVarKeywords
				node.Name = b.splatName(inner)
			default:
				node.Name = inner.Content(b.source)
			}
		}
		if typ := b.getChildByFieldName(tsNode, "type"); typ != nil {
			node.AddChild(b.buildNode(typ))
		}
	default:
		// Tuple parameters and other legacy forms
		node.Name = tsNode.Content(b.source)
	}

	return node
}

// splatName returns the identifier of a *args / **kwargs pattern
func (b *ASTBuilder) splatName(tsNode *sitter.Node) string {
	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		if child := tsNode.NamedChild(i); child != nil && child.Type() == "identifier" {
			return child.Content(b.source)
		}
	}
	return strings.TrimLeft(tsNode.Content(b.source), "*")
}

// Helper methods

// attach sets the parent of child and returns it
func (b *ASTBuilder) attach(parent, child *Node) *Node {
	if child != nil {
		child.Parent = parent
	}
	return child
}

// getLocation extracts location information from a tree-sitter node
func (b *ASTBuilder) getLocation(tsNode *sitter.Node) Location {
	return Location{
		File:      b.filename,
		StartLine: int(tsNode.StartPoint().Row) + 1,
		StartCol:  int(tsNode.StartPoint().Column),
		EndLine:   int(tsNode.EndPoint().Row) + 1,
		EndCol:    int(tsNode.EndPoint().Column),
	}
}

// getChildByFieldName gets a child node by field name
func (b *ASTBuilder) getChildByFieldName(tsNode *sitter.Node, fieldName string) *sitter.Node {
	if tsNode == nil {
		return nil
	}
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && tsNode.FieldNameForChild(i) == fieldName {
			return child
		}
	}
	return nil
}

// getChildrenByFieldName gets every child node carrying a field name
func (b *ASTBuilder) getChildrenByFieldName(tsNode *sitter.Node, fieldName string) []*sitter.Node {
	var children []*sitter.Node
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && tsNode.FieldNameForChild(i) == fieldName {
			children = append(children, child)
		}
	}
	return children
}

// isTrivia checks if a node is trivia (comments, line continuations)
func (b *ASTBuilder) isTrivia(tsNode *sitter.Node) bool {
	nodeType := tsNode.Type()
	return nodeType == "comment" ||
		nodeType == "line_continuation" ||
		nodeType == ""
}
