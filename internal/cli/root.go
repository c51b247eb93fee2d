package cli

import (
	"fmt"
	"os"

	"github.com/go-viper/mapstructure/v2"
	"github.com/ppiankov/thindex/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "thindex",
	Short: "Thindex - Triangulated Hallucination Index for AI-generated text",
	Long: `Thindex scores AI-generated text for hallucination risk by
triangulating five independent signals per claim:

  contradiction    NLI contradiction probability against evidence
  support          entailment and semantic similarity with evidence
  instability      risk variance across deterministic paraphrases
  speculative      hedge and absolute language density
  numeric sanity   implausible numbers, currencies, units and dates

The signals combine into one weighted index per claim and per document.
Every sub-score, weight and rationale is surfaced in the report: the
index is explainable by construction, never a black-box verdict.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Thindex.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("thindex v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.thindex/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.thindex")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match THINDEX_*
	viper.SetEnvPrefix("THINDEX")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// applyFileConfig overlays the settings viper read (config file and
// bound environment variables) onto cfg. The config structs carry yaml
// tags only, so the decoder is pointed at those.
func applyFileConfig(cfg *model.Config) error {
	err := viper.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
	})
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
