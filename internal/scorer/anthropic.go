package scorer

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/constants"
	"github.com/ludo-technologies/pyreview/internal/version"
)

const systemPrompt = `You are a binary code quality classifier for Python source code.
Estimate the probability that the submitted code has general quality problems
(bugs, fragile structure, poor practices). Reply with a single number between
0 and 1 and nothing else.`

// scoreMaxTokens bounds the classifier reply, which is a single number
const scoreMaxTokens = 16

var numberPattern = regexp.MustCompile(`[-+]?(?:\d+\.?\d*|\.\d+)`)

// AnthropicConfig contains configuration for the Anthropic classifier
type AnthropicConfig struct {
	// APIKey for Anthropic (defaults to the APIKeyEnv env var)
	APIKey    string
	APIKeyEnv string
	Model     string
	BaseURL   string
}

// Anthropic scores code quality with a Claude model
type Anthropic struct {
	client anthropic.Client
	model  string
}

// NewAnthropic creates a new Anthropic classifier
func NewAnthropic(cfg AnthropicConfig, opts ...option.RequestOption) (*Anthropic, error) {
	envName := cfg.APIKeyEnv
	if envName == "" {
		envName = constants.DefaultScorerAPIKeyEnv
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv(envName)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%s environment variable not set", envName)
	}

	model := cfg.Model
	if model == "" {
		model = constants.DefaultScorerModel
	}

	clientOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHeader("User-Agent", version.UserAgent()),
	}
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(cfg.BaseURL))
	}
	clientOpts = append(clientOpts, opts...)

	return &Anthropic{
		client: anthropic.NewClient(clientOpts...),
		model:  model,
	}, nil
}

// Score implements domain.QualityScorer
func (a *Anthropic) Score(ctx context.Context, source string) (float64, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: scoreMaxTokens,
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(source)),
		},
	}

	resp, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("%w: API call failed: %v", domain.ErrClassifierUnavailable, err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	score, err := parseScore(text.String())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrClassifierUnavailable, err)
	}
	return score, nil
}

// parseScore extracts the first number of a classifier reply
func parseScore(reply string) (float64, error) {
	match := numberPattern.FindString(reply)
	if match == "" {
		return 0, fmt.Errorf("no score in classifier reply %q", strings.TrimSpace(reply))
	}

	score, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid score %q: %w", match, err)
	}
	if score < 0 || score > 1 {
		return 0, fmt.Errorf("score %v outside [0,1]", score)
	}
	return score, nil
}
