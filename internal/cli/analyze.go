package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/thindex/internal/model"
	"github.com/ppiankov/thindex/internal/pipeline"
	"github.com/ppiankov/thindex/internal/score"
	"github.com/spf13/cobra"
)

var (
	outJSON      string
	outMD        string
	inputFile    string
	evidenceText string
	evidenceURL  string
	threshold    float64
	marginBand   float64
	weightsFlag  []float64
	timeout      time.Duration
	noCache      bool
	noFooter     bool
	detectorURL  string
	llmProvider  string
	llmModel     string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Score a document for hallucination risk",
	Long: `Analyze splits a document into claims, scores each claim with the
five signals, and classifies the document against the threshold.

The text comes from the argument or --file. Evidence is optional; with
no detector configured the remote signals fall back to neutral defaults
and only the local signals (speculative, numeric sanity) contribute.

Example:
  thindex analyze "Apple Inc. definitely lost $3 trillion in one day."
  thindex analyze --file response.txt --evidence-url https://example.com/report
  thindex analyze "..." --detector-url http://localhost:8000 --threshold 0.6
  thindex analyze "..." --llm-provider openai --llm-model gpt-4o-mini`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Input flags
	analyzeCmd.Flags().StringVar(&inputFile, "file", "", "read the document from a file instead of the argument")
	analyzeCmd.Flags().StringVar(&evidenceText, "evidence", "", "evidence text to check claims against")
	analyzeCmd.Flags().StringVar(&evidenceURL, "evidence-url", "", "fetch evidence text from a URL")

	// Scoring flags
	analyzeCmd.Flags().Float64Var(&threshold, "threshold", 0.5, "classification threshold in [0,1]")
	analyzeCmd.Flags().Float64Var(&marginBand, "margin-band", 0, "width of the uncertain band below the threshold")
	analyzeCmd.Flags().Float64SliceVar(&weightsFlag, "weights", nil,
		"five weights: contradiction,support,instability,speculative,numeric (must sum to 1.0)")

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Detector flags
	analyzeCmd.Flags().StringVar(&detectorURL, "detector-url", "", "base URL of the NLI/embedding detector service")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM fallback detector (openai)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable detector score caching")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text, err := readDocument(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	req := pipeline.Request{
		Text:       text,
		Evidence:   evidenceText,
		Threshold:  &cfg.Scoring.Threshold,
		MarginBand: &cfg.Scoring.MarginBand,
	}

	if len(weightsFlag) > 0 {
		w, err := score.WeightsFromSlice(weightsFlag)
		if err != nil {
			return err
		}
		req.Weights = &w
	}

	if evidenceURL != "" {
		if verbose {
			fmt.Fprintf(os.Stderr, "Fetching evidence: %s\n", evidenceURL)
		}
		fetcher := pipeline.NewEvidenceFetcher(cfg.HTTP)
		evidence, err := fetcher.Fetch(ctx, evidenceURL)
		if err != nil {
			return fmt.Errorf("fetch evidence: %w", err)
		}
		req.Evidence = evidence
	}

	analyzer, err := pipeline.NewAnalyzer(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing %d bytes, threshold %.2f\n\n", len(text), cfg.Scoring.Threshold)
	}

	assessment, err := analyzer.Analyze(ctx, req)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	report := pipeline.BuildReport(assessment)

	renderer := pipeline.NewRenderer(!noFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(report, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", outMD)
		}
	}

	renderer.RenderSummary(report)

	return nil
}

func readDocument(args []string) (string, error) {
	if inputFile != "" {
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return "", fmt.Errorf("read input file: %w", err)
		}
		return string(data), nil
	}
	if len(args) == 1 {
		return args[0], nil
	}
	return "", fmt.Errorf("provide the text as an argument or via --file")
}

// buildConfig layers the configuration sources: defaults, then the
// config file and environment via viper, then flags the user actually
// passed on this command
func buildConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := applyFileConfig(cfg); err != nil {
		return nil, err
	}

	if verbose {
		cfg.Output.Verbose = true
	}
	if cmd.Flags().Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if cmd.Flags().Changed("no-footer") {
		cfg.Output.IncludeFooter = !noFooter
	}
	if cmd.Flags().Changed("threshold") {
		cfg.Scoring.Threshold = threshold
	}
	if cmd.Flags().Changed("margin-band") {
		cfg.Scoring.MarginBand = marginBand
	}

	if detectorURL != "" {
		cfg.Detectors.BaseURL = detectorURL
	} else if base := os.Getenv("THINDEX_DETECTOR_URL"); base != "" {
		cfg.Detectors.BaseURL = base
	}

	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel
	}

	switch cfg.LLM.Provider {
	case "", "openai":
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai)", cfg.LLM.Provider)
	}
	if cfg.LLM.Provider == "openai" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	return cfg, nil
}
