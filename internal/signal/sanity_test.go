package signal

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/thindex/internal/model"
)

func newTestSanityAdapter() *SanityAdapter {
	adapter := NewSanityAdapter(DefaultRules())
	adapter.now = func() time.Time {
		return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	}
	return adapter
}

func TestSanityAdapter_Kind(t *testing.T) {
	adapter := newTestSanityAdapter()
	if adapter.Kind() != model.SignalNumericSanity {
		t.Errorf("Expected kind %s, got %s", model.SignalNumericSanity, adapter.Kind())
	}
}

func TestSanityAdapter_NoNumericClaims(t *testing.T) {
	adapter := newTestSanityAdapter()

	score, err := adapter.Score(context.Background(), model.Claim{
		Text: "The weather was pleasant and everyone enjoyed the walk.",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if score.Value != 0 {
		t.Errorf("Expected 0 with no numeric claims, got %f", score.Value)
	}
	if !strings.Contains(score.Rationale, "no numeric claims") {
		t.Errorf("Expected rationale to note missing numerics, got '%s'", score.Rationale)
	}
}

func TestSanityAdapter_PercentJump(t *testing.T) {
	adapter := newTestSanityAdapter()

	score, err := adapter.Score(context.Background(), model.Claim{
		Text: "The stock jumped 500% in one day.",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if score.Value == 0 {
		t.Error("Expected flag for 500% daily jump")
	}
	if !strings.Contains(score.Rationale, "percent_jump") {
		t.Errorf("Expected percent_jump flag in rationale, got '%s'", score.Rationale)
	}
}

func TestSanityAdapter_PercentJumpNeedsDailyContext(t *testing.T) {
	adapter := newTestSanityAdapter()

	score, err := adapter.Score(context.Background(), model.Claim{
		Text: "The stock rose 500% over the decade.",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if strings.Contains(score.Rationale, "percent_jump") {
		t.Errorf("Expected no percent_jump flag without daily context, got '%s'", score.Rationale)
	}
}

func TestSanityAdapter_CurrencyMismatch(t *testing.T) {
	adapter := newTestSanityAdapter()

	score, err := adapter.Score(context.Background(), model.Claim{
		Text: "The Indian subsidiary collected $5,000 in rupee-denominated fees.",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.Contains(score.Rationale, "currency_mismatch") {
		t.Errorf("Expected currency_mismatch flag, got '%s'", score.Rationale)
	}
}

func TestSanityAdapter_AbsurdHeight(t *testing.T) {
	adapter := newTestSanityAdapter()

	score, err := adapter.Score(context.Background(), model.Claim{
		Text: "The athlete stands 300 cm tall.",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.Contains(score.Rationale, "absurd_height") {
		t.Errorf("Expected absurd_height flag, got '%s'", score.Rationale)
	}

	score, err = adapter.Score(context.Background(), model.Claim{
		Text: "The athlete stands 190 cm tall.",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if strings.Contains(score.Rationale, "absurd_height") {
		t.Errorf("Expected no flag for plausible height, got '%s'", score.Rationale)
	}
}

func TestSanityAdapter_AbsurdTemperature(t *testing.T) {
	adapter := newTestSanityAdapter()

	score, err := adapter.Score(context.Background(), model.Claim{
		Text: "The temperature reached 95 celsius in the city center.",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.Contains(score.Rationale, "absurd_temperature") {
		t.Errorf("Expected absurd_temperature flag, got '%s'", score.Rationale)
	}
}

func TestSanityAdapter_TemporalConflict(t *testing.T) {
	adapter := newTestSanityAdapter()

	score, err := adapter.Score(context.Background(), model.Claim{
		Text: "Last year the company shipped its 2030 flagship model.",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.Contains(score.Rationale, "future_date_past_context") {
		t.Errorf("Expected future_date_past_context flag, got '%s'", score.Rationale)
	}
}

func TestSanityAdapter_ValueClamped(t *testing.T) {
	adapter := newTestSanityAdapter()

	// One percent span, two flags impossible here, but the ratio must
	// never exceed 1 even when flags outnumber facts
	score, err := adapter.Score(context.Background(), model.Claim{
		Text: "The stock jumped 900% in one day.",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if score.Value < 0 || score.Value > 1 {
		t.Errorf("Expected value in [0,1], got %f", score.Value)
	}
}

func TestParsePercent(t *testing.T) {
	cases := []struct {
		text string
		want float64
		ok   bool
	}{
		{"500%", 500, true},
		{"3.5 percent", 3.5, true},
		{"12 per cent", 12, true},
		{"no number", 0, false},
	}

	for _, tc := range cases {
		got, ok := parsePercent(tc.text)
		if ok != tc.ok {
			t.Errorf("parsePercent(%q): expected ok=%v, got %v", tc.text, tc.ok, ok)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("parsePercent(%q): expected %g, got %g", tc.text, tc.want, got)
		}
	}
}

func TestParseYear(t *testing.T) {
	cases := []struct {
		text string
		want int
		ok   bool
	}{
		{"2024", 2024, true},
		{"1899", 1899, true},
		{"0500", 0, false},
		{"3000", 0, false},
		{"Q1 2024", 0, false}, // Only bare years parse
	}

	for _, tc := range cases {
		got, ok := parseYear(tc.text)
		if ok != tc.ok {
			t.Errorf("parseYear(%q): expected ok=%v, got %v", tc.text, tc.ok, ok)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("parseYear(%q): expected %d, got %d", tc.text, tc.want, got)
		}
	}
}
