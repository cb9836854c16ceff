package resolver

import (
	"fmt"
	"log/slog"

	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/constants"
)

// New builds the resolver selected by mode
func New(mode, interpreter string, extra []string, logger *slog.Logger) (domain.ModuleResolver, error) {
	static := NewStatic(extra)

	switch mode {
	case "", constants.ResolverModeStatic:
		return static, nil
	case constants.ResolverModeInterpreter:
		return NewInterpreter(interpreter, static, logger), nil
	default:
		return nil, domain.NewConfigError(fmt.Sprintf("unknown resolver mode %q", mode), nil)
	}
}
