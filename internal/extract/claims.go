package extract

import (
	"fmt"
	"strings"

	"github.com/ppiankov/thindex/internal/model"
	"golang.org/x/net/html"
)

// ClaimExtractor splits a response document into atomic claims
type ClaimExtractor struct{}

// NewClaimExtractor creates a new claim extractor
func NewClaimExtractor() *ClaimExtractor {
	return &ClaimExtractor{}
}

// Extract splits a document into sentence-level claims. Every claim
// carries the shared evidence string and its position in the source.
//
// Returns model.ErrEmptyDocument for empty/whitespace input. For any
// other input at least one claim is produced: if sentence segmentation
// yields nothing (no terminal punctuation), the whole document becomes
// a single claim.
func (e *ClaimExtractor) Extract(document, evidence string) ([]model.Claim, error) {
	trimmed := strings.TrimSpace(document)
	if trimmed == "" {
		return nil, fmt.Errorf("extract claims: %w", model.ErrEmptyDocument)
	}

	if looksLikeHTML(trimmed) {
		if text := visibleText(trimmed); strings.TrimSpace(text) != "" {
			trimmed = strings.TrimSpace(text)
		}
	}

	sentences := splitSentences(trimmed)
	if len(sentences) == 0 {
		sentences = []string{trimmed}
	}

	claims := make([]model.Claim, 0, len(sentences))
	for i, sentence := range sentences {
		claims = append(claims, model.Claim{
			Text:     sentence,
			Index:    i,
			Evidence: evidence,
		})
	}

	return claims, nil
}

// splitSentences splits text into sentences (simple heuristic)
func splitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)

		if r == '.' || r == '!' || r == '?' {
			// Look ahead to avoid splitting on abbreviations and decimals
			if i+1 >= len(text) || text[i+1] == ' ' || text[i+1] == '\t' {
				if sentence := strings.TrimSpace(current.String()); sentence != "" {
					sentences = append(sentences, sentence)
				}
				current.Reset()
			}
		}
	}

	// Trailing fragment without terminal punctuation still counts
	if sentence := strings.TrimSpace(current.String()); sentence != "" {
		sentences = append(sentences, sentence)
	}

	return sentences
}

// looksLikeHTML is a cheap check for markup input; pasted LLM responses
// are usually plain text, fetched evidence pages are not
func looksLikeHTML(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "<html") ||
		strings.Contains(lower, "<body") ||
		strings.Contains(lower, "<p>") ||
		strings.Contains(lower, "<div")
}

// visibleText extracts text nodes from HTML, skipping scripts/styles
func visibleText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return buf.String()
}

// VisibleText exposes HTML stripping for evidence fetched over HTTP
func VisibleText(htmlContent string) string {
	return visibleText(htmlContent)
}
