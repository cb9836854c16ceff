package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/ludo-technologies/pyreview/domain"
)

var defaultIncludes = []string{"**/*.py"}

func newMemHelper(t *testing.T, files map[string]string) *FileHelper {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", path, err)
		}
	}
	return NewFileHelperWithFs(fs)
}

func TestFileHelperCollectPythonFiles(t *testing.T) {
	helper := newMemHelper(t, map[string]string{
		"/proj/main.py":                  "",
		"/proj/stubs.pyi":                "",
		"/proj/README.md":                "",
		"/proj/pkg/util.py":              "",
		"/proj/.venv/lib/site.py":        "",
		"/proj/pkg/__pycache__/util.py":  "",
		"/proj/build/generated.py":       "",
		"/proj/legacy/old/handler.py":    "",
		"/proj/foo.egg-info/setup.py":    "",
		"/proj/tests/test_util.py":       "",
		"/proj/tests/fixtures/sample.py": "",
	})

	files, err := helper.CollectPythonFiles([]string{"/proj"}, CollectOptions{
		Recursive:       true,
		IncludePatterns: []string{"**/*.py", "**/*.pyi"},
		ExcludePatterns: []string{".venv", "__pycache__", "build", "*.egg-info", "legacy/**", "tests/fixtures"},
	})
	if err != nil {
		t.Fatalf("CollectPythonFiles failed: %v", err)
	}

	expected := []string{"/proj/main.py", "/proj/pkg/util.py", "/proj/stubs.pyi", "/proj/tests/test_util.py"}
	sort.Strings(files)
	if strings.Join(files, ",") != strings.Join(expected, ",") {
		t.Errorf("Expected %v, got %v", expected, files)
	}
}

func TestFileHelperNonRecursive(t *testing.T) {
	helper := newMemHelper(t, map[string]string{
		"/proj/main.py":     "",
		"/proj/pkg/util.py": "",
	})

	files, err := helper.CollectPythonFiles([]string{"/proj"}, CollectOptions{IncludePatterns: defaultIncludes})
	if err != nil {
		t.Fatalf("CollectPythonFiles failed: %v", err)
	}
	if len(files) != 1 || files[0] != "/proj/main.py" {
		t.Errorf("Expected only top-level file, got %v", files)
	}
}

func TestFileHelperExplicitFiles(t *testing.T) {
	helper := newMemHelper(t, map[string]string{
		"/proj/a.py":     "",
		"/proj/notes.md": "",
	})

	files, err := helper.CollectPythonFiles([]string{"/proj/a.py", "/proj/notes.md", "/proj/a.py"}, CollectOptions{})
	if err != nil {
		t.Fatalf("CollectPythonFiles failed: %v", err)
	}
	if len(files) != 1 || files[0] != "/proj/a.py" {
		t.Errorf("Expected deduplicated Python file, got %v", files)
	}

	if _, err := helper.CollectPythonFiles([]string{"/proj/missing.py"}, CollectOptions{}); err == nil {
		t.Error("Expected error for missing path")
	}
}

func TestFileHelperRespectsGitignore(t *testing.T) {
	helper := newMemHelper(t, map[string]string{
		"/repo/.gitignore":           "generated/\n*_pb2.py\n",
		"/repo/.git/HEAD":            "ref: refs/heads/main\n",
		"/repo/src/app.py":           "",
		"/repo/src/api_pb2.py":       "",
		"/repo/src/generated/out.py": "",
	})

	opts := CollectOptions{Recursive: true, RespectGitignore: true, IncludePatterns: defaultIncludes}
	files, err := helper.CollectPythonFiles([]string{"/repo/src"}, opts)
	if err != nil {
		t.Fatalf("CollectPythonFiles failed: %v", err)
	}
	if len(files) != 1 || files[0] != filepath.Join("/repo/src", "app.py") {
		t.Errorf("Expected gitignored files to be skipped, got %v", files)
	}

	opts.RespectGitignore = false
	files, err = helper.CollectPythonFiles([]string{"/repo/src"}, opts)
	if err != nil {
		t.Fatalf("CollectPythonFiles failed: %v", err)
	}
	if len(files) != 3 {
		t.Errorf("Expected 3 files without gitignore, got %v", files)
	}
}

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		pattern  string
		rel      string
		expected bool
	}{
		{"**/*.py", "a/b/c.py", true},
		{"*.py", "c.py", true},
		{"*.py", "c.txt", false},
		{"build", "build", true},
		{"build/**", "build/x/y.py", true},
		{"build/**", "src/builder.py", false},
		{"tests/fixtures", "pkg/tests/fixtures", true},
		{"./scripts/*.py", "scripts/run.py", true},
	}

	for _, tt := range tests {
		if got := matchPattern(tt.pattern, tt.rel); got != tt.expected {
			t.Errorf("matchPattern(%q, %q) = %v, expected %v", tt.pattern, tt.rel, got, tt.expected)
		}
	}
}

// stubService records the request it receives
type stubService struct {
	req  domain.ReviewRequest
	resp *domain.ReviewResponse
	err  error
}

func (s *stubService) Review(_ context.Context, req domain.ReviewRequest) (*domain.ReviewResponse, error) {
	s.req = req
	if s.err != nil {
		return nil, s.err
	}
	if s.resp != nil {
		return s.resp, nil
	}
	return &domain.ReviewResponse{}, nil
}

func (s *stubService) ReviewSource(context.Context, string, []byte) (*domain.FileReview, error) {
	return nil, errors.New("not used")
}

type recordingFormatter struct {
	format domain.OutputFormat
	calls  int
}

func (f *recordingFormatter) Write(_ *domain.ReviewResponse, format domain.OutputFormat, w io.Writer) error {
	f.format = format
	f.calls++
	_, err := w.Write([]byte("report"))
	return err
}

func TestReviewUseCaseReadsStdin(t *testing.T) {
	helper := newMemHelper(t, map[string]string{
		"/proj/a.py":     "",
		"/proj/pkg/b.py": "",
	})
	svc := &stubService{}
	formatter := &recordingFormatter{}

	uc, err := NewReviewUseCaseBuilder().
		WithService(svc).
		WithFormatter(formatter).
		WithFileHelper(helper).
		WithStdin(strings.NewReader("x = 1\n")).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	var out bytes.Buffer
	_, err = uc.Execute(context.Background(), domain.ReviewRequest{
		Paths:           []string{"-", "/proj"},
		OutputFormat:    domain.OutputFormatJSON,
		OutputWriter:    &out,
		Recursive:       true,
		IncludePatterns: defaultIncludes,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if len(svc.req.Sources) != 1 || svc.req.Sources[0].Name != StdinName {
		t.Fatalf("Expected stdin source, got %+v", svc.req.Sources)
	}
	if string(svc.req.Sources[0].Content) != "x = 1\n" {
		t.Errorf("Unexpected stdin content %q", svc.req.Sources[0].Content)
	}
	if len(svc.req.Paths) != 2 {
		t.Errorf("Expected 2 collected paths, got %v", svc.req.Paths)
	}
	if formatter.calls != 1 || formatter.format != domain.OutputFormatJSON {
		t.Errorf("Expected one json write, got %d calls with %s", formatter.calls, formatter.format)
	}
	if out.String() != "report" {
		t.Errorf("Expected report output, got %q", out.String())
	}
}

func TestReviewUseCaseErrors(t *testing.T) {
	helper := newMemHelper(t, map[string]string{"/proj/README.md": ""})

	uc, err := NewReviewUseCaseBuilder().WithService(&stubService{}).WithFileHelper(helper).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if _, err := uc.Execute(context.Background(), domain.ReviewRequest{}); err == nil {
		t.Error("Expected error for empty request")
	}
	if _, err := uc.Execute(context.Background(), domain.ReviewRequest{Paths: []string{"-"}}); err == nil {
		t.Error("Expected error when stdin is not configured")
	}
	_, err = uc.Execute(context.Background(), domain.ReviewRequest{
		Paths:           []string{"/proj"},
		Recursive:       true,
		IncludePatterns: defaultIncludes,
	})
	if err == nil || !strings.Contains(err.Error(), "no Python files found") {
		t.Errorf("Expected no Python files error, got %v", err)
	}

	failing := &stubService{err: errors.New("boom")}
	uc, _ = NewReviewUseCaseBuilder().WithService(failing).Build()
	_, err = uc.Execute(context.Background(), domain.ReviewRequest{
		Sources: []domain.SourceInput{{Name: "mem.py", Content: []byte("x = 1")}},
	})
	if err == nil {
		t.Error("Expected service error to propagate")
	}
}

func TestReviewUseCaseBuilderRequiresService(t *testing.T) {
	if _, err := NewReviewUseCaseBuilder().Build(); err == nil {
		t.Error("Expected error when service is missing")
	}
}

func TestEvaluateCheck(t *testing.T) {
	response := &domain.ReviewResponse{
		Files: []domain.FileReview{
			{
				FilePath: "a.py",
				Issues: []domain.Issue{
					{Line: 3, Severity: domain.SeverityHigh, Category: domain.CategoryRuntime, Rule: "bare-except", Message: "Line 3: bare except"},
					{Line: 9, Severity: domain.SeverityLow, Category: domain.CategoryRuntime, Rule: "line-too-long", Message: "Line 9: long"},
				},
			},
			{
				FilePath: "b.py",
				Issues:   []domain.Issue{{Severity: domain.SeveritySuccess, Message: "No issues found", Rule: domain.RuleNoIssues}},
			},
		},
		Summary: domain.ReviewSummary{FilesAnalyzed: 2, CleanFiles: 1, TotalIssues: 2},
	}

	result := EvaluateCheck(response, domain.SeverityHigh, time.Now())
	if result.Passed {
		t.Error("Expected check to fail on high issue")
	}
	if result.ExitCode != ExitCodeViolation {
		t.Errorf("Expected exit code %d, got %d", ExitCodeViolation, result.ExitCode)
	}
	if len(result.Violations) != 1 || result.Violations[0].Location != "a.py:3" {
		t.Errorf("Expected one violation at a.py:3, got %+v", result.Violations)
	}
	if result.Summary.TotalViolations != 1 || result.Summary.FilesAnalyzed != 2 {
		t.Errorf("Unexpected summary %+v", result.Summary)
	}

	result = EvaluateCheck(response, domain.SeverityError, time.Now())
	if !result.Passed || result.ExitCode != ExitCodePass {
		t.Errorf("Expected pass with error threshold, got %+v", result)
	}
}
