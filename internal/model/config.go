package model

import "time"

// Config is the full runtime configuration. Per-request knobs (threshold,
// weights) are copied out of here and passed explicitly down the call
// chain so concurrent analyses stay independent.
type Config struct {
	Scoring     ScoringConfig     `yaml:"scoring"`
	Detectors   DetectorConfig    `yaml:"detectors"`
	LLM         LLMConfig         `yaml:"llm"`
	HTTP        HTTPConfig        `yaml:"http"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Cache       CacheConfig       `yaml:"cache"`
	Server      ServerConfig      `yaml:"server"`
	Output      OutputConfig      `yaml:"output"`
}

// ScoringConfig holds classification defaults
type ScoringConfig struct {
	Threshold  float64 `yaml:"threshold"`   // Document index at/above which label is hallucination
	MarginBand float64 `yaml:"margin_band"` // Width of the uncertain band below the threshold
	RulesPath  string  `yaml:"rules_path"`  // Optional YAML overriding built-in wordlists/thresholds
}

// DetectorConfig configures the remote NLI/embedding detector service
type DetectorConfig struct {
	BaseURL           string        `yaml:"base_url"`            // Empty disables remote detectors (fallback scores)
	Timeout           time.Duration `yaml:"timeout"`             // Per-signal call timeout
	RequestsPerSecond float64       `yaml:"requests_per_second"` // Per-host rate limit
	Burst             int           `yaml:"burst"`
	Paraphrases       int           `yaml:"paraphrases"` // Restatements scored by the instability signal
}

// LLMConfig configures the optional LLM-backed detector provider
type LLMConfig struct {
	Provider string `yaml:"provider"` // "openai" or "" (disabled)
	Model    string `yaml:"model"`
	APIKey   string `yaml:"-"`
	BaseURL  string `yaml:"base_url"`
	Timeout  int    `yaml:"timeout"` // seconds
}

// HTTPConfig configures the evidence fetcher
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy"`
}

// ConcurrencyConfig bounds parallel scoring work
type ConcurrencyConfig struct {
	ClaimWorkers int `yaml:"claim_workers"` // Claims scored in parallel per document
	BatchWorkers int `yaml:"batch_workers"` // Documents analyzed in parallel in batch mode
}

// CacheConfig controls detector score caching
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

// ServerConfig configures the REST API
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			Threshold:  0.5,
			MarginBand: 0.0,
		},
		Detectors: DetectorConfig{
			Timeout:           10 * time.Second,
			RequestsPerSecond: 5,
			Burst:             5,
			Paraphrases:       3,
		},
		LLM: LLMConfig{
			Timeout: 30,
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Thindex/0.1 (+https://github.com/ppiankov/thindex)",
			MaxBodyBytes: 2_000_000,
		},
		Concurrency: ConcurrencyConfig{
			ClaimWorkers: 4,
			BatchWorkers: 4,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     24 * time.Hour,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
