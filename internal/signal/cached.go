package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ppiankov/thindex/internal/cache"
	"github.com/ppiankov/thindex/internal/model"
)

// CachedAdapter memoizes detector answers keyed by (kind, claim,
// evidence). Only successful scores are cached; failures retry on the
// next request so a recovered detector is picked up immediately.
type CachedAdapter struct {
	inner Adapter
	store cache.Cache
	ttl   time.Duration
}

// NewCachedAdapter wraps an adapter with score caching
func NewCachedAdapter(inner Adapter, store cache.Cache, ttl time.Duration) *CachedAdapter {
	return &CachedAdapter{inner: inner, store: store, ttl: ttl}
}

// Kind returns the wrapped adapter's kind
func (a *CachedAdapter) Kind() model.SignalKind {
	return a.inner.Kind()
}

// Score serves from cache when possible, otherwise delegates and stores
func (a *CachedAdapter) Score(ctx context.Context, claim model.Claim) (model.SignalScore, error) {
	key := cache.ScoreKey(string(a.inner.Kind()), claim.Text, claim.Evidence)

	if data, found := a.store.Get(key); found {
		var score model.SignalScore
		if err := json.Unmarshal(data, &score); err == nil {
			return score, nil
		}
		_ = a.store.Delete(key)
	}

	score, err := a.inner.Score(ctx, claim)
	if err != nil {
		return score, err
	}

	if data, err := json.Marshal(score); err == nil {
		_ = a.store.Set(key, data, a.ttl)
	}

	return score, nil
}
