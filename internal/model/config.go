package model

import "time"

// Config is the complete kgenrich configuration
type Config struct {
	Wikibase    WikibaseConfig    `yaml:"wikibase" mapstructure:"wikibase"`
	Enrich      EnrichConfig      `yaml:"enrich" mapstructure:"enrich"`
	Boundaries  BoundariesConfig  `yaml:"boundaries" mapstructure:"boundaries"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
}

// WikibaseConfig configures the knowledge-base HTTP client
type WikibaseConfig struct {
	APIURL            string        `yaml:"api_url" mapstructure:"api_url"`
	EntityDataURL     string        `yaml:"entity_data_url" mapstructure:"entity_data_url"`
	UserAgent         string        `yaml:"user_agent" mapstructure:"user_agent"`
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int           `yaml:"burst" mapstructure:"burst"`
	RespectRobots     bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// EnrichConfig holds defaults for the enrichment pipeline
type EnrichConfig struct {
	Limit    int    `yaml:"limit" mapstructure:"limit"`
	Language string `yaml:"language" mapstructure:"language"`
}

// BoundariesConfig configures boundary dataset loading
type BoundariesConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"` // Directory of GeoJSON boundary files
}

// ConcurrencyConfig configures the batch worker pool
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig configures rendering
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
	YAML    bool `yaml:"yaml" mapstructure:"yaml"`
}

// LLMConfig configures the optional result summarizer.
// The summarizer never alters enrichment output.
type LLMConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	APIKey  string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Model   string `yaml:"model" mapstructure:"model"`
}

// DefaultConfig returns the built-in defaults (Wikidata endpoints)
func DefaultConfig() *Config {
	return &Config{
		Wikibase: WikibaseConfig{
			APIURL:            "https://www.wikidata.org/w/api.php",
			EntityDataURL:     "https://www.wikidata.org/wiki/Special:EntityData/",
			UserAgent:         "kgenrich/0.1 (+https://github.com/ubmlab/kgenrich)",
			Timeout:           30 * time.Second,
			MaxBodyBytes:      8_000_000,
			RequestsPerSecond: 2,
			Burst:             5,
			RespectRobots:     false,
		},
		Enrich: EnrichConfig{
			Limit:    1,
			Language: "en",
		},
		Boundaries: BoundariesConfig{
			Dir: "",
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Verbose: false,
			YAML:    false,
		},
		LLM: LLMConfig{
			Enabled: false,
			Model:   "gpt-4o-mini",
		},
	}
}
