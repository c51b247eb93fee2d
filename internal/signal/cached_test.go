package signal

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/thindex/internal/cache"
	"github.com/ppiankov/thindex/internal/model"
)

// countingAdapter tracks delegate invocations
type countingAdapter struct {
	kind  model.SignalKind
	value float64
	err   error
	calls int32
}

func (a *countingAdapter) Kind() model.SignalKind {
	return a.kind
}

func (a *countingAdapter) Score(_ context.Context, _ model.Claim) (model.SignalScore, error) {
	atomic.AddInt32(&a.calls, 1)
	if a.err != nil {
		return model.SignalScore{}, a.err
	}
	return model.SignalScore{Kind: a.kind, Value: a.value, Rationale: "fresh"}, nil
}

func TestCachedAdapter_SecondCallServedFromCache(t *testing.T) {
	inner := &countingAdapter{kind: model.SignalContradiction, value: 0.4}
	store := cache.NewMemoryCache(time.Minute, time.Minute)
	adapter := NewCachedAdapter(inner, store, time.Minute)

	claim := model.Claim{Text: "The sky is green.", Evidence: "The sky is blue."}

	first, err := adapter.Score(context.Background(), claim)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	second, err := adapter.Score(context.Background(), claim)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if atomic.LoadInt32(&inner.calls) != 1 {
		t.Errorf("Expected 1 delegate call, got %d", inner.calls)
	}
	if first.Value != second.Value || first.Rationale != second.Rationale {
		t.Errorf("Expected identical scores, got %+v and %+v", first, second)
	}
}

func TestCachedAdapter_DifferentEvidenceMisses(t *testing.T) {
	inner := &countingAdapter{kind: model.SignalContradiction, value: 0.4}
	store := cache.NewMemoryCache(time.Minute, time.Minute)
	adapter := NewCachedAdapter(inner, store, time.Minute)

	if _, err := adapter.Score(context.Background(), model.Claim{Text: "x", Evidence: "a"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := adapter.Score(context.Background(), model.Claim{Text: "x", Evidence: "b"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if atomic.LoadInt32(&inner.calls) != 2 {
		t.Errorf("Expected 2 delegate calls for distinct evidence, got %d", inner.calls)
	}
}

func TestCachedAdapter_FailuresNotCached(t *testing.T) {
	inner := &countingAdapter{kind: model.SignalSupport, err: errors.New("detector down")}
	store := cache.NewMemoryCache(time.Minute, time.Minute)
	adapter := NewCachedAdapter(inner, store, time.Minute)

	claim := model.Claim{Text: "x"}

	if _, err := adapter.Score(context.Background(), claim); err == nil {
		t.Fatal("Expected error from failing delegate")
	}

	// Recovered detector answers on the next call instead of a cached failure
	inner.err = nil
	inner.value = 0.8

	score, err := adapter.Score(context.Background(), claim)
	if err != nil {
		t.Fatalf("Expected no error after recovery, got %v", err)
	}
	if score.Value != 0.8 {
		t.Errorf("Expected fresh score 0.8, got %f", score.Value)
	}
	if atomic.LoadInt32(&inner.calls) != 2 {
		t.Errorf("Expected 2 delegate calls, got %d", inner.calls)
	}
}

func TestCachedAdapter_CorruptEntryEvicted(t *testing.T) {
	inner := &countingAdapter{kind: model.SignalContradiction, value: 0.4}
	store := cache.NewMemoryCache(time.Minute, time.Minute)
	adapter := NewCachedAdapter(inner, store, time.Minute)

	claim := model.Claim{Text: "x", Evidence: "y"}
	key := cache.ScoreKey(string(model.SignalContradiction), claim.Text, claim.Evidence)
	if err := store.Set(key, []byte("not json"), time.Minute); err != nil {
		t.Fatalf("Expected no error seeding cache, got %v", err)
	}

	score, err := adapter.Score(context.Background(), claim)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if score.Value != 0.4 {
		t.Errorf("Expected fresh score after evicting corrupt entry, got %f", score.Value)
	}
	if atomic.LoadInt32(&inner.calls) != 1 {
		t.Errorf("Expected 1 delegate call, got %d", inner.calls)
	}
}
