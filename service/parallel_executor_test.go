package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/config"
)

// recordingProgress captures what the executor reports for each file
type recordingProgress struct {
	mu          sync.Mutex
	description string
	total       int
	described   []string
	increments  int
	completed   bool
}

func (p *recordingProgress) StartTask(description string, total int) domain.TaskProgress {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.description = description
	p.total = total
	return p
}

func (p *recordingProgress) IsInteractive() bool { return false }

func (p *recordingProgress) Close() {}

func (p *recordingProgress) Increment(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.increments += n
}

func (p *recordingProgress) Describe(description string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.described = append(p.described, description)
}

func (p *recordingProgress) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.completed = true
}

// skippedTask wraps a review task that the executor must not run
type skippedTask struct {
	domain.ExecutableTask
}

func (skippedTask) IsEnabled() bool { return false }

func sourceTasks(svc *ReviewServiceImpl, slots []*domain.FileReview, sources map[string]string, order []string) []domain.ExecutableTask {
	tasks := make([]domain.ExecutableTask, 0, len(order))
	for i, name := range order {
		content := sources[name]
		tasks = append(tasks, &reviewTask{
			name:    name,
			slot:    &slots[i],
			load:    func() ([]byte, error) { return []byte(content), nil },
			service: svc,
		})
	}
	return tasks
}

func TestNewParallelExecutorFromConfig(t *testing.T) {
	executor := NewParallelExecutorFromConfig(&config.PerformanceConfig{MaxGoroutines: 3, TimeoutSeconds: 30})
	if executor.maxConcurrency != 3 {
		t.Errorf("Expected max concurrency 3, got %d", executor.maxConcurrency)
	}
	if executor.timeout != 30*time.Second {
		t.Errorf("Expected timeout 30s, got %v", executor.timeout)
	}
}

func TestNewParallelExecutorFromConfigDefaults(t *testing.T) {
	for name, cfg := range map[string]*config.PerformanceConfig{
		"nil config":    nil,
		"zero values":   {},
		"negative caps": {MaxGoroutines: -2, TimeoutSeconds: -1},
	} {
		executor := NewParallelExecutorFromConfig(cfg)
		if executor.maxConcurrency != DefaultMaxConcurrency {
			t.Errorf("%s: expected max concurrency %d, got %d", name, DefaultMaxConcurrency, executor.maxConcurrency)
		}
		if executor.timeout != DefaultTimeout {
			t.Errorf("%s: expected timeout %v, got %v", name, DefaultTimeout, executor.timeout)
		}
		if executor.logger == nil {
			t.Errorf("%s: expected a discard logger", name)
		}
	}

	if got := NewParallelExecutor().maxConcurrency; got != runtime.NumCPU() {
		t.Errorf("Expected one worker per CPU, got %d", got)
	}
}

func TestParallelExecutor_ReviewTasksFillSlotsInOrder(t *testing.T) {
	svc := newMemService(t, nil)
	sources := map[string]string{
		"a.py": "value = 1\n",
		"b.py": "def f(:\n    pass\n",
		"c.py": "try:\n    run()\nexcept:\n    pass\n",
		"d.py": "import os\n",
	}
	order := []string{"c.py", "a.py", "d.py", "b.py"}
	slots := make([]*domain.FileReview, len(order))

	executor := NewParallelExecutorFromConfig(&config.PerformanceConfig{MaxGoroutines: 2})
	if err := executor.Execute(context.Background(), sourceTasks(svc, slots, sources, order)); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	for i, name := range order {
		if slots[i] == nil {
			t.Fatalf("Slot %d for %s was not filled", i, name)
		}
		if slots[i].FilePath != name {
			t.Errorf("Slot %d: expected %s, got %s", i, name, slots[i].FilePath)
		}
	}

	if slots[3].Issues[0].Rule != domain.RuleSyntaxError {
		t.Errorf("Expected syntax error for b.py, got %+v", slots[3].Issues)
	}
	if !slots[1].IsClean() || !slots[2].IsClean() {
		t.Error("Expected a.py and d.py to be clean")
	}
}

func TestParallelExecutor_DescribesEveryFile(t *testing.T) {
	svc := newMemService(t, nil)
	order := []string{"pkg/one.py", "pkg/two.py", "three.py"}
	sources := map[string]string{"pkg/one.py": "x = 1\n", "pkg/two.py": "y = 2\n", "three.py": "z = 3\n"}
	slots := make([]*domain.FileReview, len(order))
	progress := &recordingProgress{}

	executor := NewParallelExecutor().WithProgress(progress)
	if err := executor.Execute(context.Background(), sourceTasks(svc, slots, sources, order)); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if progress.description != "Reviewing" || progress.total != len(order) {
		t.Errorf("Expected Reviewing task of %d, got %q of %d", len(order), progress.description, progress.total)
	}
	if progress.increments != len(order) {
		t.Errorf("Expected %d increments, got %d", len(order), progress.increments)
	}
	if !progress.completed {
		t.Error("Expected progress to be completed")
	}

	described := append([]string(nil), progress.described...)
	sort.Strings(described)
	expected := append([]string(nil), order...)
	sort.Strings(expected)
	if strings.Join(described, ",") != strings.Join(expected, ",") {
		t.Errorf("Expected each file described once, got %v", progress.described)
	}
}

func TestParallelExecutor_CollectsLoadFailures(t *testing.T) {
	svc := newMemService(t, map[string]string{"/src/ok.py": "x = 1\n"})
	paths := []string{"/src/gone.py", "/src/ok.py", "/src/also_gone.py"}
	slots := make([]*domain.FileReview, len(paths))

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var tasks []domain.ExecutableTask
	for i, path := range paths {
		path := path
		tasks = append(tasks, &reviewTask{
			name: path,
			slot: &slots[i],
			load: func() ([]byte, error) {
				if path == "/src/ok.py" {
					return []byte("x = 1\n"), nil
				}
				return nil, domain.NewFileNotFoundError(path, errors.New("file does not exist"))
			},
			service: svc,
		})
	}

	err := NewParallelExecutor().WithLogger(logger).Execute(context.Background(), tasks)

	var aggErr *AggregatedError
	if !errors.As(err, &aggErr) {
		t.Fatalf("Expected *AggregatedError, got %v", err)
	}
	if len(aggErr.Errors) != 2 {
		t.Fatalf("Expected 2 task errors, got %d", len(aggErr.Errors))
	}
	if !strings.Contains(aggErr.Error(), "2 tasks failed") {
		t.Errorf("Expected summary of 2 failures, got %q", aggErr.Error())
	}
	if !domain.HasCode(aggErr, domain.ErrCodeFileNotFound) {
		t.Error("Expected the first failure to unwrap to a file-not-found error")
	}

	if slots[1] == nil || slots[1].FilePath != "/src/ok.py" {
		t.Errorf("Expected the readable file to be reviewed, got %+v", slots[1])
	}
	if slots[0] != nil || slots[2] != nil {
		t.Error("Expected failed files to leave their slots empty")
	}

	for _, path := range []string{"/src/gone.py", "/src/also_gone.py"} {
		if !strings.Contains(logs.String(), path) {
			t.Errorf("Expected debug log for %s, got %q", path, logs.String())
		}
	}
}

func TestParallelExecutor_SkipsDisabledTasks(t *testing.T) {
	svc := newMemService(t, nil)
	order := []string{"run.py", "skip.py"}
	slots := make([]*domain.FileReview, len(order))
	tasks := sourceTasks(svc, slots, map[string]string{"run.py": "x = 1\n", "skip.py": "y = 2\n"}, order)
	tasks[1] = skippedTask{tasks[1]}
	progress := &recordingProgress{}

	if err := NewParallelExecutor().WithProgress(progress).Execute(context.Background(), tasks); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if slots[0] == nil || slots[1] != nil {
		t.Errorf("Expected only run.py to be reviewed, got %v / %v", slots[0], slots[1])
	}
	if progress.total != 1 {
		t.Errorf("Expected progress total 1, got %d", progress.total)
	}

	progress = &recordingProgress{}
	all := []domain.ExecutableTask{skippedTask{tasks[0]}}
	if err := NewParallelExecutor().WithProgress(progress).Execute(context.Background(), all); err != nil {
		t.Errorf("Expected nil error when nothing is enabled, got %v", err)
	}
	if progress.description != "" {
		t.Error("Expected no progress task when nothing is enabled")
	}
}

func TestParallelExecutor_CancelledReview(t *testing.T) {
	svc := newMemService(t, nil)
	order := []string{"a.py", "b.py"}
	slots := make([]*domain.FileReview, len(order))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewParallelExecutor().Execute(ctx, sourceTasks(svc, slots, map[string]string{"a.py": "x = 1\n", "b.py": "y = 2\n"}, order))
	if err == nil {
		t.Fatal("Expected error for cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	for i, slot := range slots {
		if slot != nil {
			t.Errorf("Slot %d should stay empty after cancellation", i)
		}
	}
}

func TestParallelExecutor_Setters(t *testing.T) {
	executor := NewParallelExecutor()

	executor.SetMaxConcurrency(7)
	executor.SetMaxConcurrency(0)
	if executor.maxConcurrency != 7 {
		t.Errorf("Expected max concurrency 7, got %d", executor.maxConcurrency)
	}

	executor.SetTimeout(time.Second)
	executor.SetTimeout(-time.Second)
	if executor.timeout != time.Second {
		t.Errorf("Expected timeout 1s, got %v", executor.timeout)
	}

	executor.WithLogger(nil)
	if executor.logger == nil {
		t.Error("Expected nil logger to keep the default")
	}
}

func TestTaskError(t *testing.T) {
	inner := domain.NewFileNotFoundError("/src/gone.py", errors.New("missing"))
	taskErr := TaskError{TaskName: "/src/gone.py", Err: inner}

	if !strings.HasPrefix(taskErr.Error(), "[/src/gone.py] ") {
		t.Errorf("Expected task name prefix, got %q", taskErr.Error())
	}
	if !errors.Is(taskErr, inner) {
		t.Error("Expected TaskError to unwrap to its cause")
	}

	single := &AggregatedError{Errors: []TaskError{taskErr}}
	if single.Error() != taskErr.Error() {
		t.Errorf("Expected single failure message, got %q", single.Error())
	}
	if (&AggregatedError{}).Unwrap() != nil {
		t.Error("Expected empty aggregate to unwrap to nil")
	}
}
