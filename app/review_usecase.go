package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/pyreview/domain"
)

// StdinName is the report name of source read from standard input
const StdinName = "<stdin>"

// ReviewUseCase orchestrates the review workflow: collect files, review
// them and write the report
type ReviewUseCase struct {
	service    domain.ReviewService
	formatter  domain.OutputFormatter
	fileHelper *FileHelper
	stdin      io.Reader
}

// NewReviewUseCase creates a new review use case
func NewReviewUseCase(service domain.ReviewService, formatter domain.OutputFormatter) *ReviewUseCase {
	return &ReviewUseCase{
		service:    service,
		formatter:  formatter,
		fileHelper: NewFileHelper(),
	}
}

// Execute performs the complete review workflow. The report is written to
// req.OutputWriter when one is set.
func (uc *ReviewUseCase) Execute(ctx context.Context, req domain.ReviewRequest) (*domain.ReviewResponse, error) {
	if err := uc.prepare(&req); err != nil {
		return nil, err
	}

	response, err := uc.service.Review(ctx, req)
	if err != nil {
		return response, err
	}

	if req.OutputWriter != nil && uc.formatter != nil {
		if err := uc.formatter.Write(response, req.OutputFormat, req.OutputWriter); err != nil {
			return response, err
		}
	}
	return response, nil
}

// prepare expands directories and reads standard input into req
func (uc *ReviewUseCase) prepare(req *domain.ReviewRequest) error {
	if len(req.Paths) == 0 && len(req.Sources) == 0 {
		return domain.NewInvalidInputError("no input paths specified", nil)
	}

	var paths []string
	readStdin := false
	for _, p := range req.Paths {
		if p == StdinPath {
			readStdin = true
			continue
		}
		paths = append(paths, p)
	}

	if readStdin {
		if uc.stdin == nil {
			return domain.NewInvalidInputError("standard input is not available", nil)
		}
		content, err := io.ReadAll(uc.stdin)
		if err != nil {
			return domain.NewInvalidInputError("failed to read standard input", err)
		}
		req.Sources = append(req.Sources, domain.SourceInput{Name: StdinName, Content: content})
	}

	if len(paths) > 0 {
		files, err := uc.fileHelper.CollectPythonFiles(paths, CollectOptions{
			Recursive:        req.Recursive,
			RespectGitignore: req.RespectGitignore,
			IncludePatterns:  req.IncludePatterns,
			ExcludePatterns:  req.ExcludePatterns,
		})
		if err != nil {
			return domain.NewFileNotFoundError(fmt.Sprint(paths), err)
		}
		if len(files) == 0 && len(req.Sources) == 0 {
			return domain.NewInvalidInputError("no Python files found in the given paths", nil)
		}
		paths = files
	}

	req.Paths = paths
	return nil
}

// ReviewUseCaseBuilder provides a builder pattern for creating ReviewUseCase
type ReviewUseCaseBuilder struct {
	service    domain.ReviewService
	formatter  domain.OutputFormatter
	fileHelper *FileHelper
	stdin      io.Reader
}

// NewReviewUseCaseBuilder creates a new builder
func NewReviewUseCaseBuilder() *ReviewUseCaseBuilder {
	return &ReviewUseCaseBuilder{}
}

// WithService sets the review service
func (b *ReviewUseCaseBuilder) WithService(service domain.ReviewService) *ReviewUseCaseBuilder {
	b.service = service
	return b
}

// WithFormatter sets the output formatter
func (b *ReviewUseCaseBuilder) WithFormatter(formatter domain.OutputFormatter) *ReviewUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithFileHelper sets the file helper
func (b *ReviewUseCaseBuilder) WithFileHelper(fileHelper *FileHelper) *ReviewUseCaseBuilder {
	b.fileHelper = fileHelper
	return b
}

// WithStdin sets the reader used for the "-" path
func (b *ReviewUseCaseBuilder) WithStdin(r io.Reader) *ReviewUseCaseBuilder {
	b.stdin = r
	return b
}

// Build creates the ReviewUseCase with the configured dependencies
func (b *ReviewUseCaseBuilder) Build() (*ReviewUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("review service is required")
	}

	uc := NewReviewUseCase(b.service, b.formatter)
	if b.fileHelper != nil {
		uc.fileHelper = b.fileHelper
	}
	uc.stdin = b.stdin
	return uc, nil
}
