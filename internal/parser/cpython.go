package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"time"
)

// compileScript parses stdin with the ast module. A rejected source exits 3
// after printing the SyntaxError as JSON.
const compileScript = `import ast, json, sys
try:
    ast.parse(sys.stdin.buffer.read())
except SyntaxError as e:
    json.dump({"line": e.lineno or 0, "column": e.offset or 0, "message": e.msg}, sys.stdout)
    sys.exit(3)`

const (
	syntaxErrorExitCode   = 3
	defaultCompileTimeout = 10 * time.Second
)

// CPythonChecker checks sources with a Python interpreter's own parser, so
// reported messages match what CPython prints
type CPythonChecker struct {
	command string
	timeout time.Duration
	logger  *slog.Logger
}

// NewCPythonChecker creates a checker that runs command (e.g. "python3")
func NewCPythonChecker(command string, logger *slog.Logger) *CPythonChecker {
	if command == "" {
		command = "python3"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CPythonChecker{
		command: command,
		timeout: defaultCompileTimeout,
		logger:  logger,
	}
}

// Available reports whether the interpreter is on PATH
func (c *CPythonChecker) Available() bool {
	_, err := exec.LookPath(c.command)
	return err == nil
}

// Check returns the interpreter's SyntaxError for source, or nil when it
// parses. err is set only when the interpreter could not give an answer.
func (c *CPythonChecker) Check(ctx context.Context, source []byte) (*SyntaxError, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, c.command, "-c", compileScript)
	cmd.Stdin = bytes.NewReader(source)
	cmd.Stdout = &stdout

	err := cmd.Run()
	if err == nil {
		return nil, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != syntaxErrorExitCode || ctx.Err() != nil {
		return nil, fmt.Errorf("running %s: %w", c.command, err)
	}

	var reported struct {
		Line    int    `json:"line"`
		Column  int    `json:"column"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &reported); err != nil {
		return nil, fmt.Errorf("decoding %s output: %w", c.command, err)
	}

	c.logger.Debug("interpreter rejected source", "line", reported.Line, "message", reported.Message)
	return &SyntaxError{
		Line:    reported.Line,
		Column:  reported.Column,
		Message: reported.Message,
	}, nil
}
