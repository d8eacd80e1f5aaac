package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ubmlab/kgenrich/internal/enrich"
	"github.com/ubmlab/kgenrich/internal/geofence"
	"github.com/ubmlab/kgenrich/internal/llm"
	"github.com/ubmlab/kgenrich/internal/model"
	"github.com/ubmlab/kgenrich/internal/schema"
	"github.com/ubmlab/kgenrich/internal/wikibase"
)

var (
	limit         int
	language      string
	typeHint      string
	outJSON       string
	outYAML       bool
	boundariesDir string
	timeout       time.Duration
	userAgent     string
	respectRobots bool
	llmEnabled    bool
	llmModel      string
)

// enrichCmd represents the enrich command
var enrichCmd = &cobra.Command{
	Use:   "enrich <name>",
	Short: "Enrich a free-text name with knowledge-graph data",
	Long: `Enrich resolves a name to knowledge-base entities and extracts:
- Label, description and aliases in the requested language
- Person, organization or geographic attributes, chosen per entity
- For geographic entities, membership in the current German boundary
  and nine historical territorial boundaries

Example:
  kgenrich enrich "Mannheim" --type geo --boundaries ./boundaries
  kgenrich enrich "Albert Einstein" --type person
  kgenrich enrich "Mannheim University Library" --limit 3 --json results.json`,
	Args: cobra.ExactArgs(1),
	RunE: runEnrich,
}

func init() {
	rootCmd.AddCommand(enrichCmd)

	// Pipeline flags
	enrichCmd.Flags().IntVar(&limit, "limit", 1, "maximum number of candidate entities")
	enrichCmd.Flags().StringVar(&language, "language", "en", "language for labels, descriptions and aliases")
	enrichCmd.Flags().StringVar(&typeHint, "type", "", "entity type constraint (person, organization, geographic)")
	enrichCmd.Flags().StringVar(&boundariesDir, "boundaries", "", "directory of boundary GeoJSON files (enables geofencing)")

	// Output flags
	enrichCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (default: stdout)")
	enrichCmd.Flags().BoolVar(&outYAML, "yaml", false, "render YAML instead of JSON")

	// HTTP flags
	enrichCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "overall enrichment timeout")
	enrichCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent override")
	enrichCmd.Flags().BoolVar(&respectRobots, "robots", false, "check robots.txt before knowledge-base requests")

	// LLM flags
	enrichCmd.Flags().BoolVar(&llmEnabled, "llm", false, "print an LLM summary of each enriched entity")
	enrichCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runEnrich(cmd *cobra.Command, args []string) error {
	name := args[0]

	hint, ok := schema.ParseHint(typeHint)
	if !ok {
		return fmt.Errorf("unknown type %q (want person, organization or geographic)", typeHint)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := buildConfig()

	enricher, err := buildEnricher(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Enriching: %s\n", name)
		fmt.Fprintf(os.Stderr, "Limit: %d, language: %s\n", limit, language)
		if boundariesDir != "" {
			fmt.Fprintf(os.Stderr, "Boundaries: %s\n", boundariesDir)
		}
		fmt.Fprintln(os.Stderr)
	}

	results, err := enricher.Enrich(ctx, name, enrich.Options{
		Limit:    limit,
		Language: language,
		Hint:     hint,
	})
	if err != nil {
		return fmt.Errorf("enrich failed: %w", err)
	}

	renderer := enrich.NewRenderer(outYAML)
	if outJSON != "" {
		if err := renderer.RenderFile(results, outJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote: %s\n", outJSON)
		}
	} else {
		if err := renderer.Render(results, os.Stdout); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
	}

	if llmEnabled {
		summarizeResults(ctx, cfg, results)
	}

	return nil
}

// buildConfig merges defaults, config file values and flags
func buildConfig() *model.Config {
	cfg := loadConfig()
	if userAgent != "" {
		cfg.Wikibase.UserAgent = userAgent
	}
	cfg.Wikibase.Timeout = timeout
	cfg.Wikibase.RespectRobots = respectRobots
	if boundariesDir != "" {
		cfg.Boundaries.Dir = boundariesDir
	}
	if llmEnabled {
		cfg.LLM.Enabled = true
		cfg.LLM.Model = llmModel
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			cfg.LLM.APIKey = key
		}
	}
	return cfg
}

// buildEnricher wires the client, geofence engine and extractor
func buildEnricher(cfg *model.Config) (*enrich.Enricher, error) {
	var engine *geofence.Engine
	if cfg.Boundaries.Dir != "" {
		registry, err := geofence.LoadDir(cfg.Boundaries.Dir)
		if err != nil {
			return nil, fmt.Errorf("load boundaries: %w", err)
		}
		engine = geofence.NewEngine(registry)
	}

	client := wikibase.NewClient(cfg.Wikibase)
	extractor := enrich.NewExtractor(cfg.Wikibase.EntityDataURL, engine)
	return enrich.New(client, extractor), nil
}

// summarizeResults prints LLM abstracts for enriched entries; failures warn
// and never affect enrichment output
func summarizeResults(ctx context.Context, cfg *model.Config, results []model.Result) {
	summarizer, err := llm.NewSummarizer(cfg.LLM)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: LLM summarizer unavailable: %v\n", err)
		return
	}

	for _, result := range results {
		enriched, ok := result.(*model.EnrichedResult)
		if !ok {
			continue
		}
		summary, err := summarizer.Summarize(ctx, enriched)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM summary failed for %s: %v\n", enriched.ID, err)
			continue
		}
		fmt.Fprintf(os.Stderr, "\n--- Summary (%s) ---\n%s\n", enriched.ID, summary)
	}
}
