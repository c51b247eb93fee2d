package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/thindex/internal/worker"
)

// AnalyzeJob is one document analysis submitted to the batch pool
type AnalyzeJob struct {
	Seq      int
	Text     string
	Analyzer *Analyzer
	Request  Request
}

// Execute runs the analysis for one document
func (j *AnalyzeJob) Execute(ctx context.Context) worker.Result {
	req := j.Request
	req.Text = j.Text

	assessment, err := j.Analyzer.Analyze(ctx, req)
	if err != nil {
		return &AnalyzeResult{Seq: j.Seq, Text: j.Text, Err: err}
	}
	return &AnalyzeResult{Seq: j.Seq, Text: j.Text, Report: BuildReport(assessment)}
}

// AnalyzeResult is the outcome of one batch document
type AnalyzeResult struct {
	Seq    int
	Text   string
	Report *Report
	Err    error
}

// GetError returns the analysis error, if any
func (r *AnalyzeResult) GetError() error {
	return r.Err
}

// BatchProcessor analyzes many documents with bounded concurrency
type BatchProcessor struct {
	analyzer    *Analyzer
	concurrency int
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(analyzer *Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessTexts analyzes the documents concurrently. Results come back
// ordered by input position regardless of completion order.
func (b *BatchProcessor) ProcessTexts(ctx context.Context, texts []string, base Request) []*AnalyzeResult {
	if len(texts) == 0 {
		return []*AnalyzeResult{}
	}

	pool := worker.NewPoolWithContext(ctx, b.concurrency)
	pool.Start()

	for i, text := range texts {
		pool.Submit(&AnalyzeJob{
			Seq:      i,
			Text:     text,
			Analyzer: b.analyzer,
			Request:  base,
		})
	}

	results := pool.Wait()

	ordered := make([]*AnalyzeResult, len(texts))
	for _, result := range results {
		r := result.(*AnalyzeResult)
		ordered[r.Seq] = r
	}
	// Cancellation drops queued jobs; surface that as per-document errors
	for i, r := range ordered {
		if r == nil {
			ordered[i] = &AnalyzeResult{Seq: i, Text: texts[i], Err: ctx.Err()}
		}
	}
	return ordered
}

// ProcessFile reads documents from a file (one per line, blank lines
// and # comments skipped) and analyzes them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string, base Request) ([]*AnalyzeResult, error) {
	texts, err := ReadTextsFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read texts: %w", err)
	}
	return b.ProcessTexts(ctx, texts, base), nil
}

// ReadTextsFromFile reads one document per line
func ReadTextsFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var texts []string

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		texts = append(texts, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return texts, nil
}
