package service

import (
	"bytes"
	"testing"

	"github.com/ludo-technologies/pyreview/domain"
)

func TestNewProgressManager_NonInteractive(t *testing.T) {
	// When disabled, should return NoOpProgressManager
	pm := NewProgressManager(false)
	if pm.IsInteractive() {
		t.Error("expected non-interactive progress manager when disabled")
	}

	// Should implement the interface
	var _ domain.ProgressManager = pm
}

func TestNoOpProgressManager(t *testing.T) {
	pm := &NoOpProgressManager{}

	// IsInteractive should return false
	if pm.IsInteractive() {
		t.Error("expected NoOpProgressManager.IsInteractive() to return false")
	}

	// StartTask should return a no-op task
	task := pm.StartTask("test", 100)
	if task == nil {
		t.Fatal("expected non-nil task from StartTask")
	}

	// All operations should be no-ops (not panic)
	task.Increment(10)
	task.Describe("testing")
	task.Complete()

	// Close should be a no-op
	pm.Close()
}

func TestNoOpTaskProgress(t *testing.T) {
	tp := &NoOpTaskProgress{}

	// All operations should be no-ops (not panic)
	tp.Increment(10)
	tp.Describe("testing")
	tp.Complete()

	// Should implement the interface
	var _ domain.TaskProgress = tp
}

func TestProgressManagerImpl_Interface(t *testing.T) {
	// Verify ProgressManagerImpl implements the interface
	var _ domain.ProgressManager = &ProgressManagerImpl{}
	var _ domain.TaskProgress = &TaskProgressImpl{}
}

func TestProgressManagerImpl_WritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	pm := newProgressManager(&buf)

	task := pm.StartTask("Reviewing", 2)
	task.Describe("pkg/module.py")
	task.Increment(1)
	task.Increment(1)
	task.Complete()
	pm.Close()

	if !pm.IsInteractive() {
		t.Error("expected ProgressManagerImpl to be interactive")
	}
	if buf.Len() == 0 {
		t.Error("expected progress output to be written")
	}
}

func TestShortenPath(t *testing.T) {
	tests := []struct {
		path     string
		limit    int
		expected string
	}{
		{"main.py", 32, "main.py"},
		{"src/very/deeply/nested/package/dir/module.py", 32, ".../module.py"},
		{"a/extremely_long_module_name_for_testing.py", 20, "...me_for_testing.py"},
	}

	for _, tt := range tests {
		got := shortenPath(tt.path, tt.limit)
		if got != tt.expected {
			t.Errorf("shortenPath(%q, %d) = %q, expected %q", tt.path, tt.limit, got, tt.expected)
		}
		if len([]rune(got)) > tt.limit {
			t.Errorf("shortenPath(%q, %d) exceeds limit: %q", tt.path, tt.limit, got)
		}
	}
}
