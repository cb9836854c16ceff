package resolver

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"sync"
	"time"
)

// findSpecScript exits 0 when the module named by argv[1] is importable
const findSpecScript = `import importlib.util, sys
try:
    sys.exit(0 if importlib.util.find_spec(sys.argv[1]) else 1)
except Exception:
    sys.exit(1)`

const defaultLookupTimeout = 5 * time.Second

// Interpreter asks a Python interpreter whether a module can be found.
// Answers are cached per module. When the interpreter cannot be run the
// static resolver answers instead.
type Interpreter struct {
	command  string
	timeout  time.Duration
	fallback *Static
	logger   *slog.Logger
	cache    sync.Map // module -> bool
}

// NewInterpreter creates a resolver that runs command (e.g. "python3")
func NewInterpreter(command string, fallback *Static, logger *slog.Logger) *Interpreter {
	if command == "" {
		command = "python3"
	}
	if fallback == nil {
		fallback = NewStatic(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Interpreter{
		command:  command,
		timeout:  defaultLookupTimeout,
		fallback: fallback,
		logger:   logger,
	}
}

// Available reports whether the interpreter is on PATH
func (r *Interpreter) Available() bool {
	_, err := exec.LookPath(r.command)
	return err == nil
}

// IsResolvable implements domain.ModuleResolver
func (r *Interpreter) IsResolvable(module string) bool {
	if module == "" {
		return false
	}
	if cached, ok := r.cache.Load(module); ok {
		return cached.(bool)
	}

	resolvable, err := r.findSpec(module)
	if err != nil {
		r.logger.Debug("interpreter lookup failed, using static module list",
			"interpreter", r.command, "module", module, "error", err)
		return r.fallback.IsResolvable(module)
	}

	r.cache.Store(module, resolvable)
	return resolvable
}

func (r *Interpreter) findSpec(module string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.command, "-c", findSpecScript, module)
	err := cmd.Run()
	if err == nil {
		return true, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 && ctx.Err() == nil {
		return false, nil
	}
	return false, err
}
