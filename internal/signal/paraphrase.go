package signal

import (
	"strings"
)

// Paraphraser generates deterministic restatements of a claim. The
// instability signal scores each restatement and measures variance, so
// generation must be reproducible across runs.
type Paraphraser struct {
	synonyms map[string]string
	hedges   []string
}

// NewParaphraser creates a paraphraser from the rule set
func NewParaphraser(rules *Rules) *Paraphraser {
	return &Paraphraser{
		synonyms: rules.Paraphrase.Synonyms,
		hedges:   rules.Speculative.Hedges,
	}
}

// Generate produces up to n paraphrases using three fixed strategies:
// synonym substitution, hedge insertion, and clause reordering.
// Paraphrases identical to the original are dropped.
func (p *Paraphraser) Generate(text string, n int) []string {
	if n <= 0 {
		return nil
	}

	candidates := []string{
		p.substituteSynonyms(text),
		p.insertHedge(text),
		p.reorderClauses(text),
	}

	var out []string
	seen := map[string]bool{strings.TrimSpace(text): true}
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
		if len(out) == n {
			break
		}
	}
	return out
}

// substituteSynonyms replaces known words with their fixed synonym
func (p *Paraphraser) substituteSynonyms(text string) string {
	words := strings.Fields(text)
	changed := false

	for i, word := range words {
		bare := strings.ToLower(strings.Trim(word, ".,!?;:"))
		replacement, ok := p.synonyms[bare]
		if !ok {
			continue
		}
		suffix := word[len(word)-len(trailingPunct(word)):]
		if strings.ToUpper(word[:1]) == word[:1] && word[:1] != strings.ToLower(word[:1]) {
			replacement = strings.ToUpper(replacement[:1]) + replacement[1:]
		}
		words[i] = replacement + suffix
		changed = true
	}

	if !changed {
		return ""
	}
	return strings.Join(words, " ")
}

// insertHedge prefixes the claim with the first hedge word, softening
// its modality without touching its content
func (p *Paraphraser) insertHedge(text string) string {
	if len(p.hedges) == 0 {
		return ""
	}
	hedge := p.hedges[0]

	lowered := strings.ToLower(text[:1]) + text[1:]
	return strings.ToUpper(hedge[:1]) + hedge[1:] + ", " + lowered
}

// reorderClauses swaps the halves of a two-clause sentence around the
// first comma
func (p *Paraphraser) reorderClauses(text string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(text), ".!?")
	idx := strings.Index(trimmed, ", ")
	if idx <= 0 || idx+2 >= len(trimmed) {
		return ""
	}

	first := trimmed[:idx]
	second := trimmed[idx+2:]
	first = strings.ToLower(first[:1]) + first[1:]
	second = strings.ToUpper(second[:1]) + second[1:]

	return second + ", " + first + "."
}

func trailingPunct(word string) string {
	return word[len(strings.TrimRight(word, ".,!?;:")):]
}
