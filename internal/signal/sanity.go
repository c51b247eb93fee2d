package signal

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ppiankov/thindex/internal/extract"
	"github.com/ppiankov/thindex/internal/model"
)

// SanityAdapter flags unrealistic numbers, currencies, units and dates.
// Fully local: it never fails and needs no evidence.
type SanityAdapter struct {
	rules SanityRules
	now   func() time.Time
}

// NewSanityAdapter creates the numeric sanity adapter
func NewSanityAdapter(rules *Rules) *SanityAdapter {
	return &SanityAdapter{
		rules: rules.Sanity,
		now:   time.Now,
	}
}

// Kind returns the signal kind
func (a *SanityAdapter) Kind() model.SignalKind {
	return model.SignalNumericSanity
}

// Score runs all sanity rules against the quantities found in the claim.
// Value = flaggedRules / numericClaims, clamped to [0,1]. A claim with
// no checkable quantities scores zero.
func (a *SanityAdapter) Score(_ context.Context, claim model.Claim) (model.SignalScore, error) {
	facts := extract.ExtractFacts(claim.Text)
	if facts.Count() == 0 {
		return model.SignalScore{
			Kind:      model.SignalNumericSanity,
			Value:     0,
			Rationale: "fraction of flagged claims = 0.000 (no numeric claims)",
		}, nil
	}

	var flags []string
	flags = append(flags, a.checkPercentJumps(facts, claim.Text)...)
	flags = append(flags, a.checkCurrencyMismatch(facts, claim.Text)...)
	flags = append(flags, a.checkUnitAbsurdity(facts, claim.Text)...)
	flags = append(flags, a.checkTemporalConflicts(facts, claim.Text)...)

	value := float64(len(flags)) / float64(facts.Count())
	if value > 1 {
		value = 1
	}

	rationale := fmt.Sprintf("fraction of flagged claims = %.3f", value)
	if len(flags) > 0 {
		rationale += " [" + strings.Join(flags, ", ") + "]"
	}

	return model.SignalScore{
		Kind:      model.SignalNumericSanity,
		Value:     value,
		Rationale: rationale,
	}, nil
}

// checkPercentJumps flags implausible percentage moves in a daily context
func (a *SanityAdapter) checkPercentJumps(facts extract.Facts, text string) []string {
	var flags []string
	lower := strings.ToLower(text)

	dailyContext := strings.Contains(lower, "in one day") ||
		strings.Contains(lower, "in a single day") ||
		strings.Contains(lower, "daily")
	for _, d := range facts.Dates {
		if strings.Contains(strings.ToLower(d.Text), "day") {
			dailyContext = true
		}
	}
	if !dailyContext {
		return flags
	}

	for _, p := range facts.Percents {
		if value, ok := parsePercent(p.Text); ok && value > a.rules.PercentJumpThreshold {
			flags = append(flags, fmt.Sprintf("percent_jump_%g", value))
		}
	}
	return flags
}

// checkCurrencyMismatch flags currency symbols contradicting the context
func (a *SanityAdapter) checkCurrencyMismatch(facts extract.Facts, text string) []string {
	var flags []string
	lower := strings.ToLower(text)

	inrContext := strings.Contains(lower, "rupee") || strings.Contains(lower, "inr") || strings.Contains(lower, "indian")
	usdContext := strings.Contains(lower, "dollar") || strings.Contains(lower, "usd") || strings.Contains(lower, "american")

	for _, m := range facts.Money {
		if strings.Contains(m.Text, "$") && inrContext {
			flags = append(flags, "currency_mismatch_usd_inr_context")
		} else if strings.Contains(m.Text, "₹") && usdContext {
			flags = append(flags, "currency_mismatch_inr_usd_context")
		}
	}
	return flags
}

// checkUnitAbsurdity flags values outside physical plausibility for the
// measurement context
func (a *SanityAdapter) checkUnitAbsurdity(facts extract.Facts, text string) []string {
	var flags []string
	lower := strings.ToLower(text)

	heightContext := containsAny(lower, "height", "tall", " cm", "centimeter")
	weightContext := containsAny(lower, "weight", "weighs", " kg", "kilogram")
	tempContext := containsAny(lower, "temperature", "celsius", "°c")

	for _, n := range facts.Numbers {
		value, err := strconv.ParseFloat(strings.ReplaceAll(n.Text, ",", ""), 64)
		if err != nil {
			continue
		}
		if heightContext && value > a.rules.HumanHeightCM {
			flags = append(flags, fmt.Sprintf("absurd_height_%gcm", value))
		}
		if weightContext && value > a.rules.HumanWeightKG {
			flags = append(flags, fmt.Sprintf("absurd_weight_%gkg", value))
		}
		if tempContext && (value > a.rules.TemperatureCelsius || value < -a.rules.TemperatureCelsius-30) {
			flags = append(flags, fmt.Sprintf("absurd_temperature_%gc", value))
		}
	}
	return flags
}

// checkTemporalConflicts flags future years attached to past-tense context
func (a *SanityAdapter) checkTemporalConflicts(facts extract.Facts, text string) []string {
	var flags []string
	lower := strings.ToLower(text)

	pastContext := containsAny(lower, "yesterday", "last week", "last month", "last year", "previous", "past")
	if !pastContext {
		return flags
	}

	currentYear := a.now().Year()
	for _, d := range facts.Dates {
		if year, ok := parseYear(d.Text); ok && year > currentYear {
			flags = append(flags, fmt.Sprintf("future_date_past_context_%d", year))
		}
	}
	return flags
}

func parsePercent(text string) (float64, bool) {
	cleaned := strings.ToLower(strings.TrimSpace(text))
	cleaned = strings.TrimSuffix(cleaned, "%")
	cleaned = strings.TrimSuffix(cleaned, "per cent")
	cleaned = strings.TrimSuffix(cleaned, "percent")
	value, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	if err != nil {
		return 0, false
	}
	if value < 0 {
		value = -value
	}
	return value, true
}

func parseYear(text string) (int, bool) {
	cleaned := strings.TrimSpace(text)
	if len(cleaned) != 4 {
		return 0, false
	}
	year, err := strconv.Atoi(cleaned)
	if err != nil || year < 1800 || year > 2200 {
		return 0, false
	}
	return year, true
}

func containsAny(text string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
