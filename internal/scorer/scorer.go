package scorer

import (
	"fmt"

	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/config"
	"github.com/ludo-technologies/pyreview/internal/constants"
)

// New builds the classifier selected by cfg.Provider
func New(cfg config.ScorerConfig) (domain.QualityScorer, error) {
	switch cfg.Provider {
	case "", constants.ScorerProviderNone:
		return Static{}, nil
	case constants.ScorerProviderStatic:
		return Static{Value: cfg.StaticScore}, nil
	case constants.ScorerProviderAnthropic:
		s, err := NewAnthropic(AnthropicConfig{
			APIKeyEnv: cfg.APIKeyEnv,
			Model:     cfg.Model,
			BaseURL:   cfg.BaseURL,
		})
		if err != nil {
			return nil, domain.NewConfigError("failed to initialize anthropic scorer", err)
		}
		return s, nil
	default:
		return nil, domain.NewConfigError(fmt.Sprintf("unknown scorer provider %q", cfg.Provider), nil)
	}
}
