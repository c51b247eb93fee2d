package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/ppiankov/thindex/internal/pipeline"
	"github.com/ppiankov/thindex/internal/score"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Score multiple documents from a file in parallel",
	Long: `Batch analyzes many documents concurrently:
- Read documents from the input file (one per line, # comments skipped)
- Analyze documents in parallel with a configurable worker count
- Within each document, claims are scored concurrently as well
- Write one JSON report per document

Example:
  thindex batch responses.txt
  thindex batch responses.txt --concurrency 8 --output-dir ./reports
  thindex batch responses.txt --evidence "$(cat source.txt)" --threshold 0.6`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./thindex-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	batchCmd.Flags().StringVar(&evidenceText, "evidence", "", "evidence text shared by all documents")
	batchCmd.Flags().Float64Var(&threshold, "threshold", 0.5, "classification threshold in [0,1]")
	batchCmd.Flags().Float64Var(&marginBand, "margin-band", 0, "width of the uncertain band below the threshold")
	batchCmd.Flags().Float64SliceVar(&weightsFlag, "weights", nil,
		"five weights: contradiction,support,instability,speculative,numeric (must sum to 1.0)")
	batchCmd.Flags().StringVar(&detectorURL, "detector-url", "", "base URL of the NLI/embedding detector service")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM fallback detector (openai)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable detector score caching")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Thindex Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Concurrency.BatchWorkers = concurrency

	base := pipeline.Request{
		Evidence:   evidenceText,
		Threshold:  &cfg.Scoring.Threshold,
		MarginBand: &cfg.Scoring.MarginBand,
	}
	if len(weightsFlag) > 0 {
		w, err := score.WeightsFromSlice(weightsFlag)
		if err != nil {
			return err
		}
		base.Weights = &w
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	analyzer, err := pipeline.NewAnalyzer(cfg)
	if err != nil {
		return err
	}

	processor := pipeline.NewBatchProcessor(analyzer, concurrency)
	results, err := processor.ProcessFile(ctx, file, base)
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	renderer := pipeline.NewRenderer(!noFooter)
	var failed int
	for _, result := range results {
		if result.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ document %d: %v\n", result.Seq+1, result.Err)
			continue
		}

		path := filepath.Join(outputDir, fmt.Sprintf("report-%03d.json", result.Seq+1))
		if err := renderer.RenderJSON(result.Report, path); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ document %d: %v\n", result.Seq+1, err)
			continue
		}

		if verbose {
			fmt.Fprintf(os.Stderr, "✓ document %d: index %.4f (%s) -> %s\n",
				result.Seq+1, result.Report.OverallIndex, result.Report.Label, path)
		}
	}

	fmt.Fprintf(os.Stderr, "\nProcessed %d documents, %d failed\n", len(results), failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(results))
	}
	return nil
}
