package signal

import (
	"fmt"
	"time"

	"github.com/ppiankov/thindex/internal/cache"
	"github.com/ppiankov/thindex/internal/detector"
	"github.com/ppiankov/thindex/internal/model"
)

// NewSetFromConfig builds the five adapters from configuration.
//
// The contradiction, support and instability signals go through the
// detector provider (and the score cache when enabled); the speculative
// and numeric sanity signals are rules-based and run locally.
func NewSetFromConfig(cfg *model.Config, provider detector.Provider) (*Set, error) {
	rules := DefaultRules()
	if cfg.Scoring.RulesPath != "" {
		loaded, err := LoadRules(cfg.Scoring.RulesPath)
		if err != nil {
			return nil, fmt.Errorf("load rules: %w", err)
		}
		rules = loaded
	}

	paraphraser := NewParaphraser(rules)

	remote := []Adapter{
		NewContradictionAdapter(provider),
		NewSupportAdapter(provider),
		NewInstabilityAdapter(provider, paraphraser, cfg.Detectors.Paraphrases),
	}

	if cfg.Cache.Enabled && provider != nil {
		store := newScoreCache(cfg)
		for i, a := range remote {
			remote[i] = NewCachedAdapter(a, store, cfg.Cache.TTL)
		}
	}

	adapters := append(remote,
		NewSpeculativeAdapter(rules),
		NewSanityAdapter(rules),
	)

	return NewSet(cfg.Detectors.Timeout, adapters...), nil
}

func newScoreCache(cfg *model.Config) cache.Cache {
	if cfg.Cache.Dir != "" {
		return cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
	}
	return cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
}
