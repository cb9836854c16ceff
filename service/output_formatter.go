package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/pyreview/domain"
)

// FormatOptions controls text rendering. Structured formats always carry
// every field.
type FormatOptions struct {
	ShowSuggestions bool
	ContextLines    int
	Color           bool
}

// OutputFormatterImpl implements domain.OutputFormatter
type OutputFormatterImpl struct {
	opts FormatOptions

	header  *color.Color
	file    *color.Color
	heading *color.Color
	dim     *color.Color
	success *color.Color
	badges  map[domain.Severity]*color.Color
}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter(opts FormatOptions) *OutputFormatterImpl {
	f := &OutputFormatterImpl{
		opts:    opts,
		header:  color.New(color.Bold),
		file:    color.New(color.FgCyan, color.Bold),
		heading: color.New(color.Underline),
		dim:     color.New(color.Faint),
		success: color.New(color.FgGreen, color.Bold),
		badges: map[domain.Severity]*color.Color{
			domain.SeverityError:   color.New(color.FgRed, color.Bold),
			domain.SeverityHigh:    color.New(color.FgRed),
			domain.SeverityMedium:  color.New(color.FgYellow),
			domain.SeverityLow:     color.New(color.FgBlue),
			domain.SeverityWarning: color.New(color.FgMagenta),
			domain.SeveritySuccess: color.New(color.FgGreen),
		},
	}

	all := []*color.Color{f.header, f.file, f.heading, f.dim, f.success}
	for _, c := range f.badges {
		all = append(all, c)
	}
	for _, c := range all {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return f
}

// WriteJSON writes data as JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteYAML writes data as YAML to the writer
func WriteYAML(writer io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}

// WriteMsgpack writes data as MessagePack, keyed like the JSON output
func WriteMsgpack(writer io.Writer, data interface{}) error {
	encoder := msgpack.NewEncoder(writer)
	encoder.SetCustomStructTag("json")
	return encoder.Encode(data)
}

// Write writes the review response in the requested format
func (f *OutputFormatterImpl) Write(response *domain.ReviewResponse, format domain.OutputFormat, writer io.Writer) error {
	if response == nil {
		return domain.NewOutputError("nothing to write", nil)
	}

	var err error
	switch format {
	case domain.OutputFormatText, "":
		err = f.writeText(response, writer)
	case domain.OutputFormatJSON:
		err = WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		err = WriteYAML(writer, response)
	case domain.OutputFormatMsgpack:
		err = WriteMsgpack(writer, response)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
	if err != nil {
		return domain.NewOutputError(fmt.Sprintf("failed to write %s output", format), err)
	}
	return nil
}

func (f *OutputFormatterImpl) writeText(response *domain.ReviewResponse, w io.Writer) error {
	fmt.Fprintf(w, "\n%s\n", f.header.Sprint("=== pyreview Review Report ==="))
	fmt.Fprintf(w, "Generated: %s\n", response.GeneratedAt)
	fmt.Fprintf(w, "Version: %s\n", response.Version)

	for _, review := range response.Files {
		f.writeFileText(review, w)
	}

	s := response.Summary
	fmt.Fprintf(w, "\n%s\n", f.header.Sprint("Summary:"))
	fmt.Fprintf(w, "  Files reviewed: %d\n", s.FilesAnalyzed)
	fmt.Fprintf(w, "  Clean files: %d\n", s.CleanFiles)
	fmt.Fprintf(w, "  Total issues: %d\n", s.TotalIssues)
	if s.TotalIssues > 0 {
		fmt.Fprintf(w, "  Error: %d  High: %d  Medium: %d  Low: %d  Warning: %d\n",
			s.ErrorIssues, s.HighIssues, s.MediumIssues, s.LowIssues, s.WarningIssues)
		fmt.Fprintf(w, "  Average issues per file: %.2f\n", s.AverageIssues)
	}

	if len(response.Errors) > 0 {
		fmt.Fprintf(w, "\n%s\n", f.header.Sprint("Errors:"))
		for _, e := range response.Errors {
			fmt.Fprintf(w, "  - %s\n", e)
		}
	}
	return nil
}

func (f *OutputFormatterImpl) writeFileText(review domain.FileReview, w io.Writer) {
	fmt.Fprintf(w, "\n%s\n", f.file.Sprint(review.FilePath))

	if review.IsClean() {
		issue := review.Issues[0]
		fmt.Fprintf(w, "  %s\n", f.success.Sprint("✓ "+issue.Message))
		if f.opts.ShowSuggestions && issue.HasSuggestion() {
			fmt.Fprintf(w, "    %s\n", f.dim.Sprint(issue.Suggestion))
		}
		return
	}

	for _, group := range groupByCategory(review.Issues) {
		fmt.Fprintf(w, "\n  %s\n", f.heading.Sprint(group.info.Title))
		for _, issue := range group.issues {
			f.writeIssueText(issue, review.Lines, w)
		}
	}
}

func (f *OutputFormatterImpl) writeIssueText(issue domain.Issue, lines []string, w io.Writer) {
	badge := fmt.Sprintf("[%s]", strings.ToUpper(string(issue.Severity)))
	if c, ok := f.badges[issue.Severity]; ok {
		badge = c.Sprint(badge)
	}
	fmt.Fprintf(w, "    %s %s %s\n", badge, issue.Message,
		f.dim.Sprintf("(confidence %.2f)", issue.Confidence))

	for _, line := range contextPreview(lines, issue.Line, f.opts.ContextLines) {
		fmt.Fprintf(w, "      %s\n", f.dim.Sprint(line))
	}

	if f.opts.ShowSuggestions && issue.HasSuggestion() {
		fmt.Fprintf(w, "      Suggestion: %s\n", issue.Suggestion)
	}
}

type categoryGroup struct {
	info   domain.CategoryInfo
	issues []domain.Issue
}

// groupByCategory buckets issues by category priority, keeping their
// relative order inside each bucket
func groupByCategory(issues []domain.Issue) []categoryGroup {
	var groups []categoryGroup
	for _, info := range domain.Categories {
		group := categoryGroup{info: info}
		for _, issue := range issues {
			category := issue.Category
			if category == "" {
				category = domain.Categorize(issue.Message)
			}
			if category == info.Category {
				group.issues = append(group.issues, issue)
			}
		}
		if len(group.issues) > 0 {
			groups = append(groups, group)
		}
	}
	return groups
}

// contextPreview renders the lines around line (1-based) with a marker on
// the line itself. Issues without a line get no preview.
func contextPreview(lines []string, line, radius int) []string {
	if radius <= 0 || line <= 0 || line > len(lines) {
		return nil
	}

	start := line - radius
	if start < 1 {
		start = 1
	}
	end := line + radius
	if end > len(lines) {
		end = len(lines)
	}

	width := len(fmt.Sprint(end))
	preview := make([]string, 0, end-start+1)
	for n := start; n <= end; n++ {
		marker := " "
		if n == line {
			marker = ">"
		}
		preview = append(preview, fmt.Sprintf("%s %*d | %s", marker, width, n, lines[n-1]))
	}
	return preview
}
