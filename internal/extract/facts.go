package extract

import "regexp"

// Span is a matched fragment with its position in the sentence
type Span struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Facts holds the checkable quantities found in one sentence. The
// numeric sanity signal runs its rules against these.
type Facts struct {
	Numbers  []Span `json:"numbers"`
	Percents []Span `json:"percents"`
	Money    []Span `json:"money"`
	Dates    []Span `json:"dates"`
}

// Count returns the total number of checkable quantities
func (f Facts) Count() int {
	return len(f.Numbers) + len(f.Percents) + len(f.Money) + len(f.Dates)
}

var (
	numberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b\d+(?:\.\d+)?\b`),              // 1, 1.5, 123
		regexp.MustCompile(`\b\d{1,3}(?:,\d{3})+(?:\.\d+)?\b`), // 1,000
		regexp.MustCompile(`\b\d+(?:\.\d+)?[kKmMbB]\b`),      // 1K, 1.5M
	}
	percentPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b\d+(?:\.\d+)?%`),
		regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*percent\b`),
		regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*per\s*cent\b`),
	}
	moneyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\$[\d,]+(?:\.\d+)?(?:\s*(?:billion|million|trillion))?`),
		regexp.MustCompile(`(?i)\b[\d,]+(?:\.\d+)?\s*dollars?\b`),
		regexp.MustCompile(`₹[\d,]+(?:\.\d+)?`),
		regexp.MustCompile(`(?i)\b[\d,]+(?:\.\d+)?\s*rupees?\b`),
		regexp.MustCompile(`€[\d,]+(?:\.\d+)?`),
		regexp.MustCompile(`(?i)\b[\d,]+(?:\.\d+)?\s*euros?\b`),
	}
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`),
		regexp.MustCompile(`(?i)\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{1,2},?\s+\d{4}\b`),
		regexp.MustCompile(`\b(?:1[89]|20)\d{2}\b`), // Plausible years only
		regexp.MustCompile(`(?i)\bQ[1-4]\s+\d{4}\b`),
		regexp.MustCompile(`(?i)\b(?:yesterday|today|tomorrow)\b`),
		regexp.MustCompile(`(?i)\b(?:last|next)\s+(?:week|month|year|quarter)\b`),
	}
)

// ExtractFacts pulls numbers, percentages, money and dates out of a
// sentence so the sanity rules can check them in context
func ExtractFacts(text string) Facts {
	return Facts{
		Numbers:  matchAll(text, numberPatterns),
		Percents: matchAll(text, percentPatterns),
		Money:    matchAll(text, moneyPatterns),
		Dates:    matchAll(text, datePatterns),
	}
}

func matchAll(text string, patterns []*regexp.Regexp) []Span {
	var spans []Span
	seen := make(map[[2]int]bool)

	for _, pattern := range patterns {
		for _, loc := range pattern.FindAllStringIndex(text, -1) {
			key := [2]int{loc[0], loc[1]}
			if seen[key] {
				continue
			}
			seen[key] = true
			spans = append(spans, Span{
				Text:  text[loc[0]:loc[1]],
				Start: loc[0],
				End:   loc[1],
			})
		}
	}

	return spans
}
