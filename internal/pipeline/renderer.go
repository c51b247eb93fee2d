package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Renderer writes analysis reports to JSON/Markdown and prints the
// stdout summary
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// RenderMarkdown writes a human-readable report
func (r *Renderer) RenderMarkdown(report *Report, path string) error {
	var b strings.Builder

	b.WriteString("# Hallucination Index Report\n\n")
	fmt.Fprintf(&b, "- **Overall index**: %.4f\n", report.OverallIndex)
	fmt.Fprintf(&b, "- **Label**: %s\n", report.Label)
	fmt.Fprintf(&b, "- **Threshold**: %.2f", report.Threshold)
	if report.MarginBand > 0 {
		fmt.Fprintf(&b, " (uncertain band %.2f)", report.MarginBand)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "- **Claims**: %d (%d high risk, %d medium, %d low)\n",
		report.TotalClaims, report.Summary.HighRisk, report.Summary.MediumRisk, report.Summary.LowRisk)
	fmt.Fprintf(&b, "- **Analyzed**: %s\n\n", report.AnalyzedAt.Format("2006-01-02 15:04:05 UTC"))

	b.WriteString("## Weights\n\n")
	names := make([]string, 0, len(report.Weights))
	for name := range report.Weights {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "- %s: %.2f\n", name, report.Weights[name])
	}
	b.WriteString("\n## Claims\n\n")

	for i, claim := range report.Claims {
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, claim.Claim)
		fmt.Fprintf(&b, "| Signal | Value |\n|---|---|\n")
		fmt.Fprintf(&b, "| contradiction | %.3f |\n", claim.Scores.Contradiction)
		fmt.Fprintf(&b, "| lack of support | %.3f |\n", claim.Scores.LackSupport)
		fmt.Fprintf(&b, "| instability | %.3f |\n", claim.Scores.Instability)
		fmt.Fprintf(&b, "| speculative | %.3f |\n", claim.Scores.Speculative)
		fmt.Fprintf(&b, "| numeric sanity | %.3f |\n", claim.Scores.Numeric)
		fmt.Fprintf(&b, "| **claim index** | **%.3f** |\n\n", claim.Scores.THIClaim)

		if len(claim.Unavailable) > 0 {
			fmt.Fprintf(&b, "Unavailable signals (neutral defaults applied): %s\n\n",
				strings.Join(claim.Unavailable, ", "))
		}

		kinds := make([]string, 0, len(claim.Rationale))
		for kind := range claim.Rationale {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)
		for _, kind := range kinds {
			if claim.Rationale[kind] != "" {
				fmt.Fprintf(&b, "- %s: %s\n", kind, claim.Rationale[kind])
			}
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\nGenerated by thindex. The index measures signal agreement, not truth.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}

	return nil
}

// RenderSummary prints the one-screen result to stdout
func (r *Renderer) RenderSummary(report *Report) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("  Overall index:  %.4f\n", report.OverallIndex)
	fmt.Printf("  Label:          %s\n", report.Label)
	fmt.Printf("  Threshold:      %.2f\n", report.Threshold)
	fmt.Printf("  Claims:         %d (high %d / medium %d / low %d)\n",
		report.TotalClaims, report.Summary.HighRisk, report.Summary.MediumRisk, report.Summary.LowRisk)
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Println()
}
