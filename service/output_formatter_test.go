package service

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/pyreview/domain"
)

func sampleResponse() *domain.ReviewResponse {
	messy := domain.FileReview{
		FilePath: "pkg/train.py",
		Issues: []domain.Issue{
			{
				Severity:   domain.SeverityError,
				Message:    "Line 1: ModuleNotFoundError: No module named 'numpy'",
				Line:       1,
				Confidence: 1.0,
				Suggestion: "Add data validation checks using assert or if statements",
				Rule:       domain.RuleUnresolvedImport,
				Category:   domain.CategoryData,
			},
			{
				Severity:   domain.SeverityMedium,
				Message:    "Line 3: Bare except clause detected - consider catching specific exceptions",
				Line:       3,
				Confidence: 0.95,
				Suggestion: "Add proper error handling with try-except blocks",
				Rule:       domain.RuleBareExcept,
				Category:   domain.CategoryRuntime,
			},
		},
		Lines: []string{"import numpy", "try:", "except:", "    pass"},
	}
	clean := domain.FileReview{
		FilePath: "pkg/util.py",
		Issues: []domain.Issue{{
			Severity:   domain.SeveritySuccess,
			Message:    "No significant issues found",
			Confidence: 1.0,
			Suggestion: "Code looks good! Consider adding more tests and documentation.",
		}},
	}

	response := &domain.ReviewResponse{
		GeneratedAt: "2026-01-02T03:04:05Z",
		Version:     "v0.1.0",
		Errors:      []string{"[missing.py] file not found"},
	}
	for _, r := range []domain.FileReview{messy, clean} {
		response.Files = append(response.Files, r)
		response.Summary.Add(r)
	}
	return response
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, map[string]interface{}{"name": "test"}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse output as JSON: %v", err)
	}
	if result["name"] != "test" {
		t.Errorf("Expected name to be 'test', got %v", result["name"])
	}
}

func TestOutputFormatter_Text(t *testing.T) {
	formatter := NewOutputFormatter(FormatOptions{ShowSuggestions: true, ContextLines: 1})

	var buf bytes.Buffer
	if err := formatter.Write(sampleResponse(), domain.OutputFormatText, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := buf.String()

	expected := []string{
		"=== pyreview Review Report ===",
		"pkg/train.py",
		"Data-Related Errors",
		"Runtime Errors",
		"[ERROR] Line 1: ModuleNotFoundError: No module named 'numpy' (confidence 1.00)",
		"[MEDIUM] Line 3: Bare except clause detected",
		"> 1 | import numpy",
		"  2 | try:",
		"Suggestion: Add proper error handling with try-except blocks",
		"✓ No significant issues found",
		"Files reviewed: 2",
		"Clean files: 1",
		"Total issues: 2",
		"[missing.py] file not found",
	}
	for _, s := range expected {
		if !strings.Contains(out, s) {
			t.Errorf("Expected text output to contain %q\n%s", s, out)
		}
	}

	// Data sorts before runtime by category priority
	if strings.Index(out, "Data-Related Errors") > strings.Index(out, "Runtime Errors") {
		t.Error("Expected data category before runtime category")
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("Expected no ANSI codes with color disabled")
	}
}

func TestOutputFormatter_TextWithoutSuggestions(t *testing.T) {
	formatter := NewOutputFormatter(FormatOptions{})

	var buf bytes.Buffer
	if err := formatter.Write(sampleResponse(), domain.OutputFormatText, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := buf.String()

	if strings.Contains(out, "Suggestion:") {
		t.Error("Expected suggestions to be hidden")
	}
	if strings.Contains(out, "| import numpy") {
		t.Error("Expected no code preview with zero context lines")
	}
}

func TestOutputFormatter_TextColor(t *testing.T) {
	formatter := NewOutputFormatter(FormatOptions{Color: true})

	var buf bytes.Buffer
	if err := formatter.Write(sampleResponse(), domain.OutputFormatText, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Error("Expected ANSI codes with color enabled")
	}
}

func TestOutputFormatter_JSON(t *testing.T) {
	formatter := NewOutputFormatter(FormatOptions{})

	var buf bytes.Buffer
	if err := formatter.Write(sampleResponse(), domain.OutputFormatJSON, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var decoded domain.ReviewResponse
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Failed to parse JSON output: %v", err)
	}
	if len(decoded.Files) != 2 {
		t.Fatalf("Expected 2 files, got %d", len(decoded.Files))
	}
	if decoded.Files[0].Issues[0].Rule != domain.RuleUnresolvedImport {
		t.Errorf("Expected first rule %s, got %s", domain.RuleUnresolvedImport, decoded.Files[0].Issues[0].Rule)
	}
	if decoded.Files[0].Lines != nil {
		t.Error("Source lines should not be serialized")
	}
	if decoded.Summary.TotalIssues != 2 {
		t.Errorf("Expected 2 total issues, got %d", decoded.Summary.TotalIssues)
	}
}

func TestOutputFormatter_YAML(t *testing.T) {
	formatter := NewOutputFormatter(FormatOptions{})

	var buf bytes.Buffer
	if err := formatter.Write(sampleResponse(), domain.OutputFormatYAML, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var decoded domain.ReviewResponse
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Failed to parse YAML output: %v", err)
	}
	if decoded.Version != "v0.1.0" {
		t.Errorf("Expected version v0.1.0, got %s", decoded.Version)
	}
	if decoded.Files[1].Issues[0].Severity != domain.SeveritySuccess {
		t.Errorf("Expected success issue, got %s", decoded.Files[1].Issues[0].Severity)
	}
}

func TestOutputFormatter_Msgpack(t *testing.T) {
	formatter := NewOutputFormatter(FormatOptions{})

	var buf bytes.Buffer
	if err := formatter.Write(sampleResponse(), domain.OutputFormatMsgpack, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := msgpack.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Failed to parse msgpack output: %v", err)
	}
	for _, key := range []string{"files", "summary", "generated_at", "version"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("Expected msgpack key %q, got %v", key, decoded)
		}
	}
}

func TestOutputFormatter_UnsupportedFormat(t *testing.T) {
	formatter := NewOutputFormatter(FormatOptions{})

	err := formatter.Write(sampleResponse(), domain.OutputFormat("xml"), &bytes.Buffer{})
	if err == nil {
		t.Fatal("Expected error for unsupported format")
	}
	if !domain.HasCode(err, domain.ErrCodeUnsupportedFormat) {
		t.Errorf("Expected unsupported format error, got %v", err)
	}
}

func TestContextPreview(t *testing.T) {
	lines := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"}

	got := contextPreview(lines, 10, 1)
	expected := []string{"   9 | i", "> 10 | j", "  11 | k"}
	if len(got) != len(expected) {
		t.Fatalf("Expected %d lines, got %v", len(expected), got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Line %d: expected %q, got %q", i, expected[i], got[i])
		}
	}

	if got := contextPreview(lines, 0, 2); got != nil {
		t.Errorf("Expected no preview for line 0, got %v", got)
	}
	if got := contextPreview(lines, 20, 2); got != nil {
		t.Errorf("Expected no preview past the end, got %v", got)
	}
	if got := contextPreview(lines, 1, 2); len(got) != 3 {
		t.Errorf("Expected clamped preview of 3 lines, got %v", got)
	}
}
