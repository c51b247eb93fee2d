package detector

import (
	"fmt"
	"time"

	"github.com/ppiankov/thindex/internal/model"
)

// NewProvider selects the detector backend from configuration. A
// dedicated detector service wins over an LLM fallback; with neither
// configured the returned provider is nil and the remote signals
// degrade to their neutral defaults.
func NewProvider(cfg *model.Config) (Provider, error) {
	if cfg.Detectors.BaseURL != "" {
		return NewHTTPProvider(HTTPConfig{
			BaseURL:           cfg.Detectors.BaseURL,
			Timeout:           cfg.Detectors.Timeout,
			RequestsPerSecond: cfg.Detectors.RequestsPerSecond,
			Burst:             cfg.Detectors.Burst,
			HTTPProxy:         cfg.HTTP.HTTPProxy,
			HTTPSProxy:        cfg.HTTP.HTTPSProxy,
			NoProxy:           cfg.HTTP.NoProxy,
		})
	}

	switch cfg.LLM.Provider {
	case "openai":
		return NewOpenAIProvider(OpenAIConfig{
			APIKey:  cfg.LLM.APIKey,
			Model:   cfg.LLM.Model,
			BaseURL: cfg.LLM.BaseURL,
			Timeout: time.Duration(cfg.LLM.Timeout) * time.Second,
		})
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown detector provider: %s (supported: openai)", cfg.LLM.Provider)
	}
}
