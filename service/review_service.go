package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/analyzer"
	"github.com/ludo-technologies/pyreview/internal/config"
	"github.com/ludo-technologies/pyreview/internal/constants"
	"github.com/ludo-technologies/pyreview/internal/fscheck"
	"github.com/ludo-technologies/pyreview/internal/parser"
	"github.com/ludo-technologies/pyreview/internal/resolver"
	"github.com/ludo-technologies/pyreview/internal/scorer"
	"github.com/ludo-technologies/pyreview/internal/version"
)

// ReviewServiceImpl implements domain.ReviewService on top of one engine
type ReviewServiceImpl struct {
	engine        *analyzer.Engine
	fs            afero.Fs
	progress      domain.ProgressManager
	performance   config.PerformanceConfig
	scorerTimeout time.Duration
	logger        *slog.Logger
}

// ReviewServiceOption configures a ReviewServiceImpl
type ReviewServiceOption func(*reviewServiceOptions)

type reviewServiceOptions struct {
	fs       afero.Fs
	progress domain.ProgressManager
	logger   *slog.Logger
	scorer   domain.QualityScorer
	resolver domain.ModuleResolver
	files    domain.FileChecker
}

// WithFs sets the filesystem sources are read from
func WithFs(fs afero.Fs) ReviewServiceOption {
	return func(o *reviewServiceOptions) { o.fs = fs }
}

// WithProgressManager sets the progress manager
func WithProgressManager(pm domain.ProgressManager) ReviewServiceOption {
	return func(o *reviewServiceOptions) { o.progress = pm }
}

// WithServiceLogger sets the logger
func WithServiceLogger(l *slog.Logger) ReviewServiceOption {
	return func(o *reviewServiceOptions) { o.logger = l }
}

// WithScorer overrides the scorer built from configuration
func WithScorer(s domain.QualityScorer) ReviewServiceOption {
	return func(o *reviewServiceOptions) { o.scorer = s }
}

// WithModuleResolver overrides the resolver built from configuration
func WithModuleResolver(r domain.ModuleResolver) ReviewServiceOption {
	return func(o *reviewServiceOptions) { o.resolver = r }
}

// WithFileExistence overrides the file checker built from configuration
func WithFileExistence(f domain.FileChecker) ReviewServiceOption {
	return func(o *reviewServiceOptions) { o.files = f }
}

// NewReviewService builds the engine and its collaborators from cfg.
// A scorer that cannot be created leaves the engine uninitialized, so every
// review reports it instead of failing the run.
func NewReviewService(cfg *config.Config, opts ...ReviewServiceOption) (*ReviewServiceImpl, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	o := reviewServiceOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.fs == nil {
		o.fs = afero.NewOsFs()
	}
	if o.progress == nil {
		o.progress = &NoOpProgressManager{}
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if o.scorer == nil {
		s, err := scorer.New(cfg.Scorer)
		if err != nil {
			o.logger.Warn("quality scorer unavailable, reviews will report an uninitialized engine", "error", err)
		} else {
			o.scorer = s
		}
	}

	if o.resolver == nil {
		r, err := resolver.New(cfg.Resolver.Mode, cfg.Resolver.Interpreter, cfg.Resolver.ExtraModules, o.logger)
		if err != nil {
			return nil, err
		}
		o.resolver = r
	}

	if o.files == nil {
		o.files = &fscheck.AferoChecker{Fs: o.fs, BaseDir: cfg.FileChecks.BaseDir}
	}

	engineOpts := []analyzer.Option{
		analyzer.WithResolver(o.resolver),
		analyzer.WithFileChecker(o.files),
		analyzer.WithLogger(o.logger),
		analyzer.WithMaxInputTokens(cfg.Scorer.MaxInputTokens),
	}
	if cfg.Resolver.Mode == constants.ResolverModeInterpreter {
		checker := parser.NewCPythonChecker(cfg.Resolver.Interpreter, o.logger)
		if checker.Available() {
			engineOpts = append(engineOpts, analyzer.WithSyntaxChecker(checker))
		} else {
			o.logger.Warn("python interpreter not found, syntax errors will use parser messages",
				"interpreter", cfg.Resolver.Interpreter)
		}
	}
	engine := analyzer.NewEngine(o.scorer, engineOpts...)

	return &ReviewServiceImpl{
		engine:        engine,
		fs:            o.fs,
		progress:      o.progress,
		performance:   cfg.Performance,
		scorerTimeout: time.Duration(cfg.Scorer.TimeoutSeconds) * time.Second,
		logger:        o.logger,
	}, nil
}

// Engine returns the underlying review engine
func (s *ReviewServiceImpl) Engine() *analyzer.Engine {
	return s.engine
}

// ReviewSource reviews a single in-memory source
func (s *ReviewServiceImpl) ReviewSource(ctx context.Context, name string, source []byte) (*domain.FileReview, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.scorerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.scorerTimeout)
		defer cancel()
	}

	text := string(source)
	issues := s.engine.Analyze(ctx, text)
	s.logger.Debug("reviewed source", "file", name, "issues", len(issues))

	return &domain.FileReview{
		FilePath: name,
		Issues:   issues,
		Lines:    strings.Split(text, "\n"),
	}, nil
}

// Review reviews every path and in-memory source of req concurrently.
// Reports keep the order of req.Paths followed by req.Sources; unreadable
// files are listed in the response errors.
func (s *ReviewServiceImpl) Review(ctx context.Context, req domain.ReviewRequest) (*domain.ReviewResponse, error) {
	total := len(req.Paths) + len(req.Sources)
	if total == 0 {
		return nil, domain.NewInvalidInputError("no Python sources to review", nil)
	}

	slots := make([]*domain.FileReview, total)
	tasks := make([]domain.ExecutableTask, 0, total)

	for i, path := range req.Paths {
		path := path
		tasks = append(tasks, &reviewTask{
			name: path,
			slot: &slots[i],
			load: func() ([]byte, error) {
				content, err := afero.ReadFile(s.fs, path)
				if err != nil {
					return nil, domain.NewFileNotFoundError(path, err)
				}
				return content, nil
			},
			service: s,
		})
	}
	for j, src := range req.Sources {
		src := src
		tasks = append(tasks, &reviewTask{
			name:    src.Name,
			slot:    &slots[len(req.Paths)+j],
			load:    func() ([]byte, error) { return src.Content, nil },
			service: s,
		})
	}

	executor := NewParallelExecutorFromConfig(&s.performance).
		WithProgress(s.progress).
		WithLogger(s.logger)

	response := &domain.ReviewResponse{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.GetVersion(),
	}

	if err := executor.Execute(ctx, tasks); err != nil {
		var aggErr *AggregatedError
		if !errors.As(err, &aggErr) {
			return nil, domain.NewAnalysisError("review failed", err)
		}
		for _, taskErr := range aggErr.Errors {
			response.Errors = append(response.Errors, taskErr.Error())
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, domain.NewAnalysisError("review cancelled", err)
	}

	for _, review := range slots {
		if review == nil {
			continue
		}
		response.Files = append(response.Files, *review)
		response.Summary.Add(*review)
	}

	if len(response.Files) == 0 {
		return response, domain.NewAnalysisError("no source could be reviewed", errors.New(strings.Join(response.Errors, "; ")))
	}
	return response, nil
}

// reviewTask reviews one source into its slot of the result slice
type reviewTask struct {
	name    string
	slot    **domain.FileReview
	load    func() ([]byte, error)
	service *ReviewServiceImpl
}

func (t *reviewTask) Name() string { return t.name }

func (t *reviewTask) IsEnabled() bool { return true }

func (t *reviewTask) Execute(ctx context.Context) (interface{}, error) {
	content, err := t.load()
	if err != nil {
		return nil, err
	}
	review, err := t.service.ReviewSource(ctx, t.name, content)
	if err != nil {
		return nil, err
	}
	*t.slot = review
	return review, nil
}
