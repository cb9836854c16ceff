package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/pyreview/app"
	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/config"
	"github.com/ludo-technologies/pyreview/service"
)

var (
	outputFormat  string
	configPath    string
	contextLines  int
	noSuggestions bool
	noColor       bool
	excludeGlobs  []string
)

func reviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "review [path...]",
		Aliases: []string{"analyze"},
		Short:   "Review Python files",
		Long: `Review Python files and print every issue with its severity, confidence
and a remediation suggestion. Use "-" to read source from standard input.

Examples:
  pyreview review src/
  pyreview review --format json app.py
  cat script.py | pyreview review -
  pyreview review --context 2 --exclude "migrations/**" .`,
		RunE: runReview,
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "",
		"Output format: text, json, yaml, msgpack (default from config)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().IntVar(&contextLines, "context", 0,
		"Source lines shown around each issue (0 disables the preview)")
	cmd.Flags().BoolVar(&noSuggestions, "no-suggestions", false,
		"Hide remediation suggestions in text output")
	cmd.Flags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")
	cmd.Flags().StringSliceVarP(&excludeGlobs, "exclude", "e", nil,
		"Additional exclude patterns (comma-separated)")

	return cmd
}

func runReview(cmd *cobra.Command, args []string) error {
	cfg, req, err := buildRequest(cmd, args, requestFlags{
		configPath:    configPath,
		format:        outputFormat,
		exclude:       excludeGlobs,
		noSuggestions: noSuggestions,
		out:           cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}

	ctx, cancel := runContext(cmd.Context(), cfg)
	defer cancel()

	// Bars only for text reports on a terminal
	pm := service.NewProgressManager(req.OutputFormat == domain.OutputFormatText)
	defer pm.Close()

	svc, err := service.NewReviewService(cfg,
		service.WithProgressManager(pm),
		service.WithServiceLogger(newLogger()),
	)
	if err != nil {
		return err
	}

	uc, err := newUseCase(cmd, svc, cfg, req)
	if err != nil {
		return err
	}

	_, err = uc.Execute(ctx, *req)
	return err
}

// requestFlags are the command line values shared by review and check
type requestFlags struct {
	configPath    string
	format        string
	exclude       []string
	noSuggestions bool
	out           io.Writer
}

// buildRequest loads configuration and merges the command line over it
func buildRequest(cmd *cobra.Command, args []string, flags requestFlags) (*config.Config, *domain.ReviewRequest, error) {
	if len(args) == 0 {
		return nil, nil, fmt.Errorf("no paths specified (use \"-\" for standard input)")
	}

	target := args[0]
	if target == app.StdinPath {
		target = "."
	}

	loader := service.NewConfigurationLoader()
	cfg, err := loader.Load(flags.configPath, target)
	if err != nil {
		return nil, nil, err
	}

	req := loader.MergeConfig(loader.ToRequest(cfg), &domain.ReviewRequest{
		Paths:           args,
		OutputFormat:    domain.OutputFormat(flags.format),
		OutputWriter:    flags.out,
		ExcludePatterns: flags.exclude,
		ConfigPath:      flags.configPath,
	})
	if cmd.Flags().Changed("context") {
		req.ContextLines = contextLines
	}
	if flags.noSuggestions {
		req.ShowSuggestions = false
	}

	if err := loader.ValidateRequest(req); err != nil {
		return nil, nil, err
	}
	return cfg, req, nil
}

func newUseCase(cmd *cobra.Command, svc domain.ReviewService, cfg *config.Config, req *domain.ReviewRequest) (*app.ReviewUseCase, error) {
	color := cfg.Output.Color && !noColor
	if f, ok := req.OutputWriter.(*os.File); !ok || !service.IsTerminal(f) {
		color = false
	}

	formatter := service.NewOutputFormatter(service.FormatOptions{
		ShowSuggestions: req.ShowSuggestions,
		ContextLines:    req.ContextLines,
		Color:           color,
	})

	return app.NewReviewUseCaseBuilder().
		WithService(svc).
		WithFormatter(formatter).
		WithStdin(cmd.InOrStdin()).
		Build()
}

// runContext bounds a run by the configured timeout and cancels it on
// interrupt
func runContext(parent context.Context, cfg *config.Config) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	if cfg.Performance.TimeoutSeconds <= 0 {
		return ctx, stop
	}
	ctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Performance.TimeoutSeconds)*time.Second)
	return ctx, func() {
		cancel()
		stop()
	}
}
