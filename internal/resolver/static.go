// Package resolver answers whether a Python module can be imported
package resolver

import "strings"

// Static resolves the standard library plus a configured set of extra
// top-level packages, without touching the environment
type Static struct {
	stdlib     map[string]bool
	submodules map[string]bool
	extra      map[string]bool
}

// NewStatic creates a static resolver. extra lists additional top-level
// packages (e.g. "numpy") to treat as installed.
func NewStatic(extra []string) *Static {
	s := &Static{
		stdlib:     make(map[string]bool, len(stdlibModules)),
		submodules: make(map[string]bool, len(stdlibSubmodules)),
		extra:      make(map[string]bool, len(extra)),
	}
	for _, m := range stdlibModules {
		s.stdlib[m] = true
	}
	for _, m := range stdlibSubmodules {
		s.submodules[m] = true
	}
	for _, m := range extra {
		if m = strings.TrimSpace(m); m != "" {
			s.extra[topLevel(m)] = true
		}
	}
	return s
}

// IsResolvable reports whether module can be imported. Any submodule of an
// extra package is accepted; standard library submodules must be known.
func (s *Static) IsResolvable(module string) bool {
	if module == "" {
		return false
	}
	top := topLevel(module)
	if s.extra[top] {
		return true
	}
	if !s.stdlib[top] {
		return false
	}
	return module == top || s.submodules[module]
}

func topLevel(module string) string {
	if i := strings.IndexByte(module, '.'); i >= 0 {
		return module[:i]
	}
	return module
}
