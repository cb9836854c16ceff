package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/testutil"
)

const testConfig = `[scorer]
provider = "none"

[resolver]
mode = "static"

[output]
color = false
context_lines = 0

[check]
fail_on = "error"
`

const bareExceptSource = `def run():
    try:
        work()
    except:
        pass
`

// writeProject creates a project with a config file and the given sources
func writeProject(t *testing.T, files map[string]string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	configFile := filepath.Join(dir, ".pyreview.toml")
	if err := os.WriteFile(configFile, []byte(testConfig), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	testutil.WriteFiles(t, dir, files)
	return dir, configFile
}

func runRoot(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestReviewCmd_FlagsExist(t *testing.T) {
	cmd := reviewCmd()

	expectedFlags := []string{"format", "config", "context", "no-suggestions", "no-color", "exclude"}
	for _, flagName := range expectedFlags {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}

	shortFlags := map[string]string{"f": "format", "c": "config", "e": "exclude"}
	for short, long := range shortFlags {
		if cmd.Flags().ShorthandLookup(short) == nil {
			t.Errorf("Missing short flag -%s for --%s", short, long)
		}
	}
}

func TestReviewCmd_NoPathsError(t *testing.T) {
	if _, err := runRoot(t, "", "review"); err == nil {
		t.Error("Expected error when no paths specified")
	}
}

func TestReviewCmd_JSONOutput(t *testing.T) {
	dir, configFile := writeProject(t, map[string]string{
		"clean.py": "def add(first, second):\n    return first + second\n",
		"risky.py": bareExceptSource,
	})

	out, err := runRoot(t, "", "review", "--config", configFile, "--format", "json", dir)
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}

	var response domain.ReviewResponse
	if err := json.Unmarshal([]byte(out), &response); err != nil {
		t.Fatalf("Output is not JSON: %v\n%s", err, out)
	}
	if response.Summary.FilesAnalyzed != 2 {
		t.Errorf("Expected 2 files reviewed, got %d", response.Summary.FilesAnalyzed)
	}
	if response.Summary.CleanFiles != 1 {
		t.Errorf("Expected 1 clean file, got %d", response.Summary.CleanFiles)
	}
}

func TestReviewCmd_Stdin(t *testing.T) {
	_, configFile := writeProject(t, nil)

	out, err := runRoot(t, "def f(:\n  pass\n", "review", "--config", configFile, "-")
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if !strings.Contains(out, "<stdin>") {
		t.Errorf("Expected stdin report, got:\n%s", out)
	}
	if !strings.Contains(out, "Syntax Error on line 1") {
		t.Errorf("Expected syntax error in report, got:\n%s", out)
	}
}

func TestReviewCmd_UnsupportedFormat(t *testing.T) {
	dir, configFile := writeProject(t, map[string]string{"a.py": "value = 1\n"})

	if _, err := runRoot(t, "", "review", "--config", configFile, "--format", "html", dir); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestCheckCmd_FlagsExist(t *testing.T) {
	cmd := checkCmd()

	expectedFlags := []string{"fail-on", "verbose", "json", "config", "exclude"}
	for _, flagName := range expectedFlags {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
	if cmd.Flags().ShorthandLookup("v") == nil {
		t.Error("Missing short flag -v for --verbose")
	}
}

func TestCheckCmd_NoPathsError(t *testing.T) {
	_, err := runRoot(t, "", "check")
	var exitErr *CheckExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 2 {
		t.Errorf("Expected exit code 2, got %v", err)
	}
}

func TestCheckCmd_Thresholds(t *testing.T) {
	dir, configFile := writeProject(t, map[string]string{"risky.py": bareExceptSource})

	// The config fails on errors only; a bare except is medium
	out, err := runRoot(t, "", "check", "--config", configFile, dir)
	if err != nil {
		t.Fatalf("Expected pass, got %v\n%s", err, out)
	}
	if !strings.Contains(out, "PASS") {
		t.Errorf("Expected PASS, got:\n%s", out)
	}

	out, err = runRoot(t, "", "check", "--config", configFile, "--fail-on", "medium", dir)
	var exitErr *CheckExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("Expected exit code 1, got %v", err)
	}
	if !strings.Contains(out, "FAIL") || !strings.Contains(out, "risky.py:4") {
		t.Errorf("Expected violation at risky.py:4, got:\n%s", out)
	}
}

func TestCheckCmd_JSON(t *testing.T) {
	dir, configFile := writeProject(t, map[string]string{"risky.py": bareExceptSource})

	out, err := runRoot(t, "", "check", "--config", configFile, "--fail-on", "medium", "--json", dir)
	var exitErr *CheckExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("Expected exit code 1, got %v", err)
	}

	var result domain.CheckResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("Output is not JSON: %v\n%s", err, out)
	}
	if result.Passed || result.ExitCode != 1 {
		t.Errorf("Expected failed result with exit code 1, got %+v", result)
	}
	if result.FailOn != domain.SeverityMedium {
		t.Errorf("Expected fail_on medium, got %s", result.FailOn)
	}
}

func TestCheckCmd_InvalidFailOn(t *testing.T) {
	dir, configFile := writeProject(t, map[string]string{"a.py": "value = 1\n"})

	for _, value := range []string{"critical", "success"} {
		_, err := runRoot(t, "", "check", "--config", configFile, "--fail-on", value, dir)
		var exitErr *CheckExitError
		if !errors.As(err, &exitErr) || exitErr.Code != 2 {
			t.Errorf("Expected exit code 2 for --fail-on %s, got %v", value, err)
		}
	}
}

func TestCheckExitError_Error(t *testing.T) {
	err := &CheckExitError{Code: 1, Message: "test error"}
	if err.Error() != "test error" {
		t.Errorf("Error() should return message, got '%s'", err.Error())
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := runRoot(t, "", "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "pyreview version ") {
		t.Errorf("Unexpected version output: %s", out)
	}

	out, err = runRoot(t, "", "version", "--json")
	if err != nil {
		t.Fatalf("version --json failed: %v", err)
	}
	var info map[string]string
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("Output is not JSON: %v", err)
	}
	if info["version"] == "" || info["go_version"] == "" {
		t.Errorf("Missing version fields: %v", info)
	}
}
