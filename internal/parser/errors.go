package parser

import "fmt"

// SyntaxError reports source the Python grammar cannot parse
type SyntaxError struct {
	Line    int // 1-based
	Column  int // 0-based
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}
