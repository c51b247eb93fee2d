package extract

import "testing"

func TestExtractFacts_Percents(t *testing.T) {
	facts := ExtractFacts("The stock jumped 500% in one day, then fell 3.5 percent.")

	if len(facts.Percents) != 2 {
		t.Fatalf("Expected 2 percents, got %d: %v", len(facts.Percents), facts.Percents)
	}
	if facts.Percents[0].Text != "500%" {
		t.Errorf("Expected '500%%', got '%s'", facts.Percents[0].Text)
	}
}

func TestExtractFacts_Money(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"Apple reported $100 billion in revenue.", "$100 billion"},
		{"The project cost 5,000 dollars overall.", "5,000 dollars"},
		{"He paid ₹2,500 for the ticket.", "₹2,500"},
		{"The fine was €1,000.50 exactly.", "€1,000.50"},
	}

	for _, tc := range cases {
		facts := ExtractFacts(tc.text)
		if len(facts.Money) == 0 {
			t.Errorf("Expected money match in %q, got none", tc.text)
			continue
		}
		if facts.Money[0].Text != tc.want {
			t.Errorf("Expected %q, got %q", tc.want, facts.Money[0].Text)
		}
	}
}

func TestExtractFacts_Dates(t *testing.T) {
	facts := ExtractFacts("The results for Q1 2024 were published on March 5, 2024, not yesterday.")

	wantAtLeast := 3 // Q1 2024, March 5, 2024, yesterday (years matched separately)
	if len(facts.Dates) < wantAtLeast {
		t.Errorf("Expected at least %d dates, got %d: %v", wantAtLeast, len(facts.Dates), facts.Dates)
	}
}

func TestExtractFacts_PlausibleYearsOnly(t *testing.T) {
	facts := ExtractFacts("Model 3000 shipped 5150 units.")

	for _, d := range facts.Dates {
		t.Errorf("Expected no date matches for implausible years, got %q", d.Text)
	}
}

func TestExtractFacts_NoDuplicateSpans(t *testing.T) {
	// "1,000" matches both comma-number and plain-number patterns over
	// overlapping but distinct spans; identical spans must collapse
	facts := ExtractFacts("Exactly 42 and again 42.")

	seen := make(map[[2]int]bool)
	for _, n := range facts.Numbers {
		key := [2]int{n.Start, n.End}
		if seen[key] {
			t.Errorf("Duplicate span %v for %q", key, n.Text)
		}
		seen[key] = true
	}
	if len(facts.Numbers) != 2 {
		t.Errorf("Expected 2 number spans, got %d", len(facts.Numbers))
	}
}

func TestFacts_Count(t *testing.T) {
	facts := ExtractFacts("Revenue of $10 million rose 20% in 2024.")

	total := len(facts.Numbers) + len(facts.Percents) + len(facts.Money) + len(facts.Dates)
	if facts.Count() != total {
		t.Errorf("Expected Count() == %d, got %d", total, facts.Count())
	}
	if facts.Count() == 0 {
		t.Error("Expected non-zero fact count")
	}
}

func TestExtractFacts_PlainProse(t *testing.T) {
	facts := ExtractFacts("The weather was pleasant and everyone enjoyed the walk.")

	if facts.Count() != 0 {
		t.Errorf("Expected 0 facts in plain prose, got %d", facts.Count())
	}
}
