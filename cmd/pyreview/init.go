package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/pyreview/internal/config"
	"github.com/ludo-technologies/pyreview/internal/constants"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a pyreview configuration file",
		Long: `Generate a documented pyreview configuration file with sensible defaults.

By default, creates .pyreview.toml in the current directory with full
documentation. Use --interactive for a guided setup wizard.

Examples:
  # Create .pyreview.toml in current directory
  pyreview init

  # Preset for a data science project using the Anthropic classifier
  pyreview init --project-type datascience --provider anthropic

  # Overwrite existing file
  pyreview init --force

  # Generate smaller config with essential options only
  pyreview init --minimal

  # Interactive setup wizard
  pyreview init -i`,
		RunE: runInit,
	}

	cmd.Flags().StringP("config", "c", constants.ConfigFileName,
		"Output path for the config file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing config file")
	cmd.Flags().Bool("minimal", false,
		"Generate minimal config with essential options only")
	cmd.Flags().BoolP("interactive", "i", false,
		"Interactive setup wizard")
	cmd.Flags().String("project-type", string(config.ProjectTypeGeneric),
		"Project preset: generic, datascience, web")
	cmd.Flags().String("provider", "",
		"Quality classifier: none, static, anthropic")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	force, _ := cmd.Flags().GetBool("force")
	minimal, _ := cmd.Flags().GetBool("minimal")
	interactive, _ := cmd.Flags().GetBool("interactive")
	projectFlag, _ := cmd.Flags().GetString("project-type")
	provider, _ := cmd.Flags().GetString("provider")

	projectType := config.ProjectType(projectFlag)
	if _, ok := config.GetProjectPresets()[projectType]; !ok {
		return fmt.Errorf("unknown project type %q (must be one of: generic, datascience, web)", projectFlag)
	}
	switch provider {
	case "", constants.ScorerProviderNone, constants.ScorerProviderStatic, constants.ScorerProviderAnthropic:
	default:
		return fmt.Errorf("unknown provider %q (must be one of: none, static, anthropic)", provider)
	}

	if interactive {
		var err error
		projectType, provider, configPath, err = runInteractiveSetup(configPath)
		if err != nil {
			return err
		}
	}

	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
		}
	}

	dir := filepath.Dir(configPath)
	if dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
	}

	var content string
	if minimal {
		content = config.GetMinimalConfigTemplate()
	} else {
		var err error
		content, err = config.GetFullConfigTemplate(projectType, provider)
		if err != nil {
			return fmt.Errorf("failed to render config: %w", err)
		}
	}

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	displayPath := configPath
	if absPath, err := filepath.Abs(configPath); err == nil {
		displayPath = absPath
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n", displayPath)
	fmt.Fprintln(out, "\nRun 'pyreview review .' to review your project.")

	return nil
}

func runInteractiveSetup(defaultConfigPath string) (config.ProjectType, string, string, error) {
	fmt.Println()
	fmt.Println("pyreview Configuration Setup")
	fmt.Println("============================")
	fmt.Println()

	projectTypes := []struct {
		Label string
		Value config.ProjectType
	}{
		{"Generic Python", config.ProjectTypeGeneric},
		{"Data science / ML (numpy, pandas, torch...)", config.ProjectTypeDataScience},
		{"Web backend (django, flask, fastapi...)", config.ProjectTypeWeb},
	}

	projectTemplates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "\U0001F449 {{ .Label | cyan }}",
		Inactive: "   {{ .Label | white }}",
		Selected: "\U00002705 {{ .Label | green }}",
	}

	projectPrompt := promptui.Select{
		Label:     "What type of project is this?",
		Items:     projectTypes,
		Templates: projectTemplates,
	}

	projectIdx, _, err := projectPrompt.Run()
	if err != nil {
		return "", "", "", fmt.Errorf("project selection cancelled: %w", err)
	}
	selectedProject := projectTypes[projectIdx].Value

	fmt.Println()

	providers := []struct {
		Label       string
		Description string
		Value       string
	}{
		{"None (recommended)", "No quality classifier, detectors only", constants.ScorerProviderNone},
		{"Anthropic", "Ask a Claude model for a quality risk score", constants.ScorerProviderAnthropic},
		{"Static", "Fixed score, for reproducible CI runs", constants.ScorerProviderStatic},
	}

	providerTemplates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "\U0001F449 {{ .Label | cyan }} - {{ .Description | faint }}",
		Inactive: "   {{ .Label | white }} - {{ .Description | faint }}",
		Selected: "\U00002705 {{ .Label | green }}",
	}

	providerPrompt := promptui.Select{
		Label:     "Which quality classifier should be used?",
		Items:     providers,
		Templates: providerTemplates,
	}

	providerIdx, _, err := providerPrompt.Run()
	if err != nil {
		return "", "", "", fmt.Errorf("provider selection cancelled: %w", err)
	}
	selectedProvider := providers[providerIdx].Value

	fmt.Println()

	outputPrompt := promptui.Prompt{
		Label:   "Output file path",
		Default: defaultConfigPath,
	}

	outputPath, err := outputPrompt.Run()
	if err != nil {
		return "", "", "", fmt.Errorf("output path input cancelled: %w", err)
	}
	if outputPath == "" {
		outputPath = defaultConfigPath
	}

	fmt.Println()
	fmt.Printf("Creating %s... ", outputPath)

	return selectedProject, selectedProvider, outputPath, nil
}
