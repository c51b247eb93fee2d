package cli

import (
	"fmt"
	"os"

	"github.com/ppiankov/thindex/internal/api"
	"github.com/ppiankov/thindex/internal/pipeline"
	"github.com/spf13/cobra"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analysis REST API",
	Long: `Serve exposes the scoring pipeline over HTTP:

  POST /v1/analyze   score one document
  POST /v1/batch     score multiple documents
  GET  /healthz      liveness and detector status

Example:
  thindex serve --addr :8080 --detector-url http://localhost:8000`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().StringVar(&detectorURL, "detector-url", "", "base URL of the NLI/embedding detector service")
	serveCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM fallback detector (openai)")
	serveCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
	serveCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable detector score caching")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.Server.Addr = serveAddr
	}

	analyzer, err := pipeline.NewAnalyzer(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Listening on %s\n", cfg.Server.Addr)

	server := api.NewServer(analyzer, cfg)
	return server.Run()
}
