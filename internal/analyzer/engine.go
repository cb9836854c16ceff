package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"unicode"

	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/constants"
	"github.com/ludo-technologies/pyreview/internal/fscheck"
	"github.com/ludo-technologies/pyreview/internal/parser"
	"github.com/ludo-technologies/pyreview/internal/resolver"
)

// Fixed messages of the short-circuit reports
const (
	MessageUninitialized = "Model not properly initialized"
	MessageEmptyInput    = "Empty code submitted"
	MessageQualityRisk   = "Potential code quality issues detected"
	MessageNoIssues      = "No significant issues found"

	suggestionNoIssues      = "Code looks good! Consider adding more tests and documentation."
	suggestionScorerFailure = "Retry the analysis once the quality classifier is reachable"
)

// Engine runs the detector catalog and the quality scorer over one source
// at a time. An Engine is immutable after construction and safe for
// concurrent use when its collaborators are.
type Engine struct {
	scorer         domain.QualityScorer
	resolver       domain.ModuleResolver
	files          domain.FileChecker
	syntax         SyntaxChecker
	logger         *slog.Logger
	maxInputTokens int
	detectors      []Detector
}

// Option configures an Engine
type Option func(*Engine)

// WithResolver sets the module-resolution collaborator
func WithResolver(r domain.ModuleResolver) Option {
	return func(e *Engine) { e.resolver = r }
}

// WithFileChecker sets the filesystem-existence collaborator
func WithFileChecker(f domain.FileChecker) Option {
	return func(e *Engine) { e.files = f }
}

// SyntaxChecker validates a source before the tree-sitter parse. A nil
// *parser.SyntaxError with a nil error means the source is valid; an error
// means no verdict.
type SyntaxChecker interface {
	Check(ctx context.Context, source []byte) (*parser.SyntaxError, error)
}

// WithSyntaxChecker sets an external syntax checker whose messages take
// precedence over the parser's own
func WithSyntaxChecker(c SyntaxChecker) Option {
	return func(e *Engine) { e.syntax = c }
}

// WithLogger sets the logger used for swallowed failures
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMaxInputTokens bounds the text handed to the scorer
func WithMaxInputTokens(n int) Option {
	return func(e *Engine) { e.maxInputTokens = n }
}

// NewEngine creates an engine around scorer. A nil scorer leaves the engine
// permanently uninitialized: every Analyze call returns a single error issue.
func NewEngine(scorer domain.QualityScorer, opts ...Option) *Engine {
	e := &Engine{
		scorer:         scorer,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxInputTokens: constants.DefaultMaxInputTokens,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.resolver == nil {
		e.resolver = resolver.NewStatic(nil)
	}
	if e.files == nil {
		e.files = fscheck.NewOSChecker("")
	}

	e.detectors = []Detector{
		NewImportDetector(e.resolver),
		NewFileOpDetector(e.files),
		NewCommonErrorDetector(),
		NewQualityDetector(),
		NewLineDetector(),
	}
	return e
}

// Ready reports whether the engine has a quality scorer
func (e *Engine) Ready() bool {
	return e.scorer != nil
}

// Analyze reviews a single Python source and returns a non-empty, ordered
// issue list. It never fails: every failure is reported as an issue.
func (e *Engine) Analyze(ctx context.Context, source string) []domain.Issue {
	if !e.Ready() {
		return categorize([]domain.Issue{{
			Severity:   domain.SeverityError,
			Message:    MessageUninitialized,
			Confidence: 1.0,
			Suggestion: "Configure a quality scorer and restart the reviewer",
			Rule:       domain.RuleEngineUninitialized,
		}})
	}

	if strings.TrimFunc(source, unicode.IsSpace) == "" {
		return categorize([]domain.Issue{{
			Severity:   domain.SeverityHigh,
			Message:    MessageEmptyInput,
			Confidence: 1.0,
			Suggestion: "Submit Python source code to review",
			Rule:       domain.RuleEmptyInput,
		}})
	}

	if synErr := e.checkSyntax(ctx, source); synErr != nil {
		return categorize([]domain.Issue{syntaxIssue(synErr)})
	}

	tree, err := parser.ParseSource(ctx, "<input>", []byte(source))
	if err != nil {
		return categorize([]domain.Issue{syntaxIssue(err)})
	}

	var issues []domain.Issue
	for _, d := range e.detectors {
		issues = append(issues, runDetector(d, tree, source, e.logger)...)
	}

	scored, err := e.score(ctx, source)
	if err != nil {
		e.logger.Warn("quality scorer failed", "error", err)
		return categorize([]domain.Issue{{
			Severity:   domain.SeverityError,
			Message:    fmt.Sprintf("Error during analysis: %v", err),
			Confidence: 1.0,
			Suggestion: suggestionScorerFailure,
			Rule:       domain.RuleScorerUnavailable,
		}})
	}
	if scored != nil {
		issues = append(issues, *scored)
	}

	for i := range issues {
		if !issues[i].HasSuggestion() {
			issues[i].Suggestion = ResolveSuggestion(issues[i].Severity, issues[i].Message)
		}
	}

	domain.SortIssues(issues)

	if len(issues) == 0 {
		return categorize([]domain.Issue{{
			Severity:   domain.SeveritySuccess,
			Message:    MessageNoIssues,
			Confidence: 1.0,
			Suggestion: suggestionNoIssues,
			Rule:       domain.RuleNoIssues,
		}})
	}
	return categorize(issues)
}

// checkSyntax consults the external checker. Failures to reach it fall back
// to the parser.
func (e *Engine) checkSyntax(ctx context.Context, source string) *parser.SyntaxError {
	if e.syntax == nil {
		return nil
	}
	synErr, err := e.syntax.Check(ctx, []byte(source))
	if err != nil {
		e.logger.Debug("external syntax check failed, using parser", "error", err)
		return nil
	}
	return synErr
}

// score runs the classifier and converts its verdict into at most one issue
func (e *Engine) score(ctx context.Context, source string) (*domain.Issue, error) {
	value, err := e.scorer.Score(ctx, TruncateTokens(source, e.maxInputTokens))
	if err != nil {
		if !errors.Is(err, domain.ErrClassifierUnavailable) {
			err = fmt.Errorf("%w: %v", domain.ErrClassifierUnavailable, err)
		}
		return nil, err
	}
	if math.IsNaN(value) || value < 0 || value > 1 {
		return nil, fmt.Errorf("%w: score %v outside [0,1]", domain.ErrClassifierUnavailable, value)
	}
	if value <= constants.ScorerThreshold {
		return nil, nil
	}
	return &domain.Issue{
		Severity:   domain.SeverityHigh,
		Message:    MessageQualityRisk,
		Confidence: value,
		Rule:       domain.RuleQualityScore,
	}, nil
}

// syntaxIssue converts a parse failure into the single short-circuit issue.
// It carries no suggestion.
func syntaxIssue(err error) domain.Issue {
	var synErr *parser.SyntaxError
	if errors.As(err, &synErr) {
		return domain.Issue{
			Severity:   domain.SeverityError,
			Message:    fmt.Sprintf("Syntax Error on line %d: %s", synErr.Line, synErr.Message),
			Line:       synErr.Line,
			Confidence: 1.0,
			Rule:       domain.RuleSyntaxError,
		}
	}
	return domain.Issue{
		Severity:   domain.SeverityError,
		Message:    fmt.Sprintf("Parse Error: %v", err),
		Confidence: 1.0,
		Rule:       domain.RuleSyntaxError,
	}
}

func categorize(issues []domain.Issue) []domain.Issue {
	for i := range issues {
		if issues[i].Category == "" {
			issues[i].Category = domain.Categorize(issues[i].Message)
		}
	}
	return issues
}

// TruncateTokens keeps at most limit whitespace-separated tokens of text.
// A non-positive limit disables truncation.
func TruncateTokens(text string, limit int) string {
	if limit <= 0 {
		return text
	}

	count := 0
	inToken := false
	for i, r := range text {
		if unicode.IsSpace(r) {
			inToken = false
			continue
		}
		if !inToken {
			inToken = true
			count++
			if count > limit {
				return strings.TrimRightFunc(text[:i], unicode.IsSpace)
			}
		}
	}
	return text
}
